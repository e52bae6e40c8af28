package counter_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/youthpulse/internal/counter"
)

const frameInterval = 16 * time.Millisecond

type fakeClock struct {
	queue *counter.FrameQueue
	now   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		queue: counter.NewFrameQueue(),
		now:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeClock) frame(d time.Duration) int {
	f.now = f.now.Add(d)
	return f.queue.Flush(f.now)
}

// settle flushes frames until the counter stops asking for them.
func (f *fakeClock) settle(limit int) int {
	n := 0
	for f.queue.Pending() > 0 && n < limit {
		f.frame(frameInterval)
		n++
	}
	return n
}

// stubbornScheduler never forgets a request, even a cancelled one.
type stubbornScheduler struct {
	fns []counter.FrameFunc
}

func (s *stubbornScheduler) RequestFrame(fn counter.FrameFunc) counter.FrameID {
	s.fns = append(s.fns, fn)
	return counter.FrameID(len(s.fns))
}

func (s *stubbornScheduler) CancelFrame(counter.FrameID) {}

func (s *stubbornScheduler) flush(now time.Time) {
	fns := s.fns
	s.fns = nil
	for _, fn := range fns {
		fn(now)
	}
}

var _ = Describe("Counter", func() {
	var clock *fakeClock

	BeforeEach(func() {
		clock = newFakeClock()
	})

	It("is idle and shows zero before anything is bound", func() {
		c := counter.New(clock.queue, counter.WithDecimals(1))
		Expect(c.State()).To(Equal(counter.Idle))
		Expect(c.String()).To(Equal("0.0"))
		Expect(c.Run()).To(BeNil())
		Expect(clock.queue.Pending()).To(BeZero())
	})

	It("shows the formatted zero before the first tick", func() {
		var frames []counter.Frame
		c := counter.New(clock.queue,
			counter.WithDecimals(2),
			counter.WithObserver(func(f counter.Frame) { frames = append(frames, f) }),
		)
		c.Bind(1234.5)

		Expect(c.String()).To(Equal("0.00"))
		Expect(c.State()).To(Equal(counter.Running))
		Expect(frames).To(HaveLen(1))
		Expect(frames[0].Text).To(Equal("0.00"))
		Expect(clock.queue.Pending()).To(Equal(1))
	})

	It("records the start lazily on the first tick", func() {
		c := counter.Start(clock.queue, 100, time.Second, 0)
		clock.frame(10 * time.Second)
		Expect(c.State()).To(Equal(counter.Running))
		Expect(c.Value()).To(BeNumerically("==", 0))
		Expect(c.Run().Progress()).To(BeNumerically("==", 0))
	})

	DescribeTable("terminates exactly on the target",
		func(target float64, d time.Duration, decimals int, want string) {
			c := counter.Start(clock.queue, target, d, decimals)
			clock.settle(10000)

			Expect(c.State()).To(Equal(counter.Settled))
			Expect(c.Value()).To(Equal(target))
			Expect(c.String()).To(Equal(want))
			Expect(clock.queue.Pending()).To(BeZero())
		},
		Entry("large integer", 847293.0, 1500*time.Millisecond, 0, "847,293"),
		Entry("percentage", 34.2, 1500*time.Millisecond, 1, "34.2"),
		Entry("index", 0.73, 1500*time.Millisecond, 2, "0.73"),
		Entry("zero target", 0.0, 1500*time.Millisecond, 0, "0"),
		Entry("short duration", 15209.0, 20*time.Millisecond, 0, "15,209"),
		Entry("fractional target", 1.0/3.0, 800*time.Millisecond, 3, "0.333"),
	)

	It("never decreases for a non-negative target", func() {
		var values []float64
		c := counter.New(clock.queue,
			counter.WithObserver(func(f counter.Frame) { values = append(values, f.Value) }),
		)
		c.Bind(23847)
		clock.settle(1000)

		Expect(len(values)).To(BeNumerically(">", 10))
		for i := 1; i < len(values); i++ {
			Expect(values[i]).To(BeNumerically(">=", values[i-1]))
		}
	})

	It("front-loads progress at the halfway point", func() {
		c := counter.Start(clock.queue, 1000, time.Second, 0)
		clock.frame(0)
		clock.frame(500 * time.Millisecond)

		Expect(c.Run().Progress()).To(BeNumerically("~", 0.5, 1e-9))
		Expect(c.Value()).To(BeNumerically(">", 500))
	})

	It("plays the dashboard headline figure end to end", func() {
		var texts []string
		var values []float64
		c := counter.New(clock.queue,
			counter.WithDuration(1500*time.Millisecond),
			counter.WithObserver(func(f counter.Frame) {
				texts = append(texts, f.Text)
				values = append(values, f.Value)
			}),
		)
		c.Bind(847293)

		elapsed := time.Duration(0)
		clock.frame(0)
		for elapsed < 1500*time.Millisecond {
			clock.frame(frameInterval)
			elapsed += frameInterval
		}

		Expect(texts[0]).To(Equal("0"))
		Expect(texts[len(texts)-1]).To(Equal("847,293"))
		Expect(c.State()).To(Equal(counter.Settled))
		for _, v := range values {
			Expect(v).To(BeNumerically("<=", 847293))
		}
	})

	It("restarts from zero when rebound mid-run", func() {
		c := counter.Start(clock.queue, 1000, time.Second, 0)
		clock.frame(0)
		for i := 0; i < 10; i++ {
			clock.frame(frameInterval)
		}
		Expect(c.Value()).To(BeNumerically(">", 0))

		c.Bind(500)
		Expect(c.Value()).To(BeNumerically("==", 0))
		Expect(c.Target()).To(BeNumerically("==", 500))
		Expect(c.State()).To(Equal(counter.Running))
		Expect(clock.queue.Pending()).To(Equal(1))

		// The new run starts its clock on its own first tick.
		clock.frame(frameInterval)
		Expect(c.Value()).To(BeNumerically("==", 0))

		clock.settle(1000)
		Expect(c.String()).To(Equal("500"))
	})

	It("restarts from zero when rebound after settling", func() {
		c := counter.Start(clock.queue, 42, 100*time.Millisecond, 0)
		clock.settle(100)
		Expect(c.State()).To(Equal(counter.Settled))

		c.Bind(42)
		Expect(c.State()).To(Equal(counter.Running))
		Expect(c.Value()).To(BeNumerically("==", 0))
	})

	It("stops scheduling when cancelled", func() {
		c := counter.Start(clock.queue, 1000, time.Second, 0)
		clock.frame(0)
		clock.frame(frameInterval)
		before := c.Value()

		c.Cancel()
		Expect(c.State()).To(Equal(counter.Idle))
		Expect(clock.queue.Pending()).To(BeZero())

		clock.frame(time.Second)
		Expect(c.Value()).To(Equal(before))
	})

	It("ignores stale frames from a scheduler that cannot cancel", func() {
		s := &stubbornScheduler{}
		c := counter.Start(s, 1000, time.Second, 0)
		now := time.Unix(0, 0)

		c.Bind(10)
		Expect(s.fns).To(HaveLen(2))

		s.flush(now)
		Expect(s.fns).To(HaveLen(1))
		s.flush(now.Add(2 * time.Second))
		Expect(c.String()).To(Equal("10"))
		Expect(c.State()).To(Equal(counter.Settled))
	})

	It("snaps to the target when the duration is not positive", func() {
		for _, d := range []time.Duration{0, -time.Second} {
			c := counter.Start(clock.queue, 1500.25, d, 2)
			Expect(c.State()).To(Equal(counter.Settled))
			Expect(c.String()).To(Equal("1,500.25"))
			Expect(clock.queue.Pending()).To(BeZero())
		}
	})

	It("counts down towards a negative target", func() {
		var values []float64
		c := counter.New(clock.queue,
			counter.WithDuration(500*time.Millisecond),
			counter.WithObserver(func(f counter.Frame) { values = append(values, f.Value) }),
		)
		c.Bind(-2300)
		clock.settle(1000)

		Expect(c.String()).To(Equal("-2,300"))
		for i := 1; i < len(values); i++ {
			Expect(values[i]).To(BeNumerically("<=", values[i-1]))
		}
	})

	It("does not lose progress when the clock steps backwards", func() {
		c := counter.Start(clock.queue, 1000, time.Second, 0)
		clock.frame(0)
		clock.frame(400 * time.Millisecond)
		v := c.Value()

		clock.frame(-300 * time.Millisecond)
		Expect(c.Value()).To(BeNumerically(">=", v))
	})

	It("keeps independent counters on one queue independent", func() {
		a := counter.Start(clock.queue, 100, 200*time.Millisecond, 0)
		b := counter.Start(clock.queue, 9000, time.Second, 0)
		clock.frame(0)
		clock.frame(300 * time.Millisecond)

		Expect(a.State()).To(Equal(counter.Settled))
		Expect(b.State()).To(Equal(counter.Running))

		a.Bind(50)
		clock.settle(1000)
		Expect(a.String()).To(Equal("50"))
		Expect(b.String()).To(Equal("9,000"))
	})
})

var _ = Describe("FrameQueue", func() {
	It("defers frames requested during a flush", func() {
		q := counter.NewFrameQueue()
		calls := 0
		var again counter.FrameFunc
		again = func(time.Time) {
			calls++
			q.RequestFrame(again)
		}
		q.RequestFrame(again)

		Expect(q.Flush(time.Now())).To(Equal(1))
		Expect(calls).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))
	})

	It("skips a frame cancelled earlier in the same flush", func() {
		q := counter.NewFrameQueue()
		var second counter.FrameID
		ran := false
		q.RequestFrame(func(time.Time) { q.CancelFrame(second) })
		second = q.RequestFrame(func(time.Time) { ran = true })

		Expect(q.Flush(time.Now())).To(Equal(1))
		Expect(ran).To(BeFalse())
	})

	It("issues distinct non-zero ids", func() {
		q := counter.NewFrameQueue()
		a := q.RequestFrame(func(time.Time) {})
		b := q.RequestFrame(func(time.Time) {})
		Expect(a).NotTo(BeZero())
		Expect(b).NotTo(Equal(a))

		q.CancelFrame(a)
		Expect(q.Pending()).To(Equal(1))
	})
})
