package dashboard_test

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/san-kum/youthpulse/internal/assistant"
	"github.com/san-kum/youthpulse/internal/config"
	"github.com/san-kum/youthpulse/internal/counter"
	"github.com/san-kum/youthpulse/internal/dashboard"
	"github.com/san-kum/youthpulse/internal/dataset"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cardNamed(cards []*dashboard.KPICard, title string) *dashboard.KPICard {
	for _, c := range cards {
		if c.Title == title {
			return c
		}
	}
	Fail("no card titled " + title)
	return nil
}

var _ = Describe("Model", func() {
	var (
		m   dashboard.Model
		now time.Time
	)

	newModel := func(page string) dashboard.Model {
		cfg := config.DefaultConfig()
		cfg.Page = page
		a, err := assistant.New(assistant.WithDelay(0, 0))
		Expect(err).NotTo(HaveOccurred())
		model, err := dashboard.New(cfg, dataset.MustLoad(), a, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		return model
	}

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(dashboard.Model)
		return cmd
	}

	// settle runs the first frame, then one far enough ahead to finish
	// every count-up.
	settle := func() {
		update(dashboard.TickMsg(now))
		now = now.Add(10 * time.Second)
		update(dashboard.TickMsg(now))
	}

	BeforeEach(func() {
		now = time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
		m = newModel("overview")
	})

	It("rejects an unknown start page", func() {
		cfg := config.DefaultConfig()
		cfg.Page = "weather"
		a, err := assistant.New()
		Expect(err).NotTo(HaveOccurred())
		_, err = dashboard.New(cfg, dataset.MustLoad(), a, nil)
		Expect(err).To(MatchError(dashboard.ErrUnknownPage))
	})

	It("starts the count-up of the first page at zero", func() {
		Expect(m.Page()).To(Equal("overview"))
		for _, c := range m.Cards() {
			Expect(c.Counter().State()).To(Equal(counter.Running))
			Expect(c.Counter().Value()).To(BeZero())
		}
		for _, c := range m.CardsOf("employment") {
			Expect(c.Counter().State()).To(Equal(counter.Idle))
		}
	})

	It("keeps the frame loop going on every tick", func() {
		Expect(m.Init()).NotTo(BeNil())
		Expect(update(dashboard.TickMsg(now))).NotTo(BeNil())
	})

	It("lands every card exactly on its figure", func() {
		settle()
		Expect(cardNamed(m.Cards(), "Youth Registered").Text()).To(Equal("847,293"))
		Expect(cardNamed(m.Cards(), "Jobs Matched").Text()).To(Equal("23,847"))
		for _, c := range m.Cards() {
			Expect(c.Counter().State()).To(Equal(counter.Settled))
		}
		Expect(m.Frames().Pending()).To(BeZero())
	})

	It("shows intermediate values while counting", func() {
		update(dashboard.TickMsg(now))
		now = now.Add(300 * time.Millisecond)
		update(dashboard.TickMsg(now))

		c := cardNamed(m.Cards(), "Youth Registered")
		Expect(c.Counter().Value()).To(BeNumerically(">", 0))
		Expect(c.Counter().Value()).To(BeNumerically("<", 847293))
	})

	It("tears down the page left and replays the page entered", func() {
		settle()
		update(tea.KeyMsg{Type: tea.KeyTab})

		Expect(m.Page()).To(Equal("employment"))
		for _, c := range m.CardsOf("overview") {
			Expect(c.Counter().State()).To(Equal(counter.Idle))
		}
		for _, c := range m.Cards() {
			Expect(c.Counter().State()).To(Equal(counter.Running))
			Expect(c.Counter().Value()).To(BeZero())
		}

		update(tea.KeyMsg{Type: tea.KeyShiftTab})
		Expect(m.Page()).To(Equal("overview"))
		Expect(cardNamed(m.Cards(), "Youth Registered").Counter().Value()).To(BeZero())

		settle()
		Expect(cardNamed(m.Cards(), "Youth Registered").Text()).To(Equal("847,293"))
	})

	It("jumps to a page by number", func() {
		update(runes("3"))
		Expect(m.Page()).To(Equal("infrastructure"))
		settle()
		Expect(cardNamed(m.Cards(), "Sports Fund Budget").Text()).To(Equal("GH₵200M"))
		Expect(cardNamed(m.Cards(), "Fund Utilization").Text()).To(Equal("64.3%"))

		update(runes("5"))
		settle()
		Expect(cardNamed(m.Cards(), "NEET Rate").Text()).To(Equal("25.8%"))
		Expect(cardNamed(m.Cards(), "Districts Covered").Text()).To(Equal("198 / 261"))
	})

	It("wraps around when going back from the first page", func() {
		update(tea.KeyMsg{Type: tea.KeyShiftTab})
		Expect(m.Page()).To(Equal("ask"))
	})

	It("replays the current page on r", func() {
		settle()
		update(runes("r"))
		c := cardNamed(m.Cards(), "Athletes Tracked")
		Expect(c.Counter().State()).To(Equal(counter.Running))
		Expect(c.Counter().Value()).To(BeZero())
	})

	It("cycles themes", func() {
		Expect(m.Theme().Name).To(Equal("kente"))
		update(runes("t"))
		Expect(m.Theme().Name).To(Equal("volta"))
	})

	It("quits on q", func() {
		cmd := update(runes("q"))
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.QuitMsg{}))
	})

	It("renders the page", func() {
		update(tea.WindowSizeMsg{Width: 140, Height: 60})
		settle()
		view := m.View()
		Expect(view).To(ContainSubstring("YOUTHPULSE GHANA"))
		Expect(view).To(ContainSubstring("National Overview"))
		Expect(view).To(ContainSubstring("847,293"))
		Expect(view).To(ContainSubstring("Top Regions"))
	})

	It("divides the cards from the page body", func() {
		update(tea.WindowSizeMsg{Width: 140, Height: 60})
		settle()
		view := m.View()
		sep := strings.Index(view, "◆")
		Expect(sep).To(BeNumerically(">", strings.Index(view, "847,293")))
		Expect(sep).To(BeNumerically("<", strings.Index(view, "Top Regions")))
	})

	Describe("Ask AI", func() {
		BeforeEach(func() {
			update(runes("7"))
			Expect(m.Page()).To(Equal("ask"))
		})

		It("has no counters", func() {
			Expect(m.Cards()).To(BeEmpty())
		})

		It("sends a question and ignores input until the reply arrives", func() {
			q := "Which regions have the worst skills gaps?"
			update(runes(q))
			Expect(m.Chat().Value()).To(Equal(q))

			cmd := update(tea.KeyMsg{Type: tea.KeyEnter})
			Expect(cmd).NotTo(BeNil())
			Expect(m.Chat().Pending()).To(BeTrue())
			Expect(m.Chat().Len()).To(Equal(1))
			Expect(m.Chat().Value()).To(BeEmpty())

			update(runes("another one"))
			Expect(update(tea.KeyMsg{Type: tea.KeyEnter})).To(BeNil())
			Expect(m.Chat().Len()).To(Equal(1))

			update(assistant.ReplyMsg{Question: q, Text: "**Gaps** are widest up north.", Matched: true, At: now})
			Expect(m.Chat().Pending()).To(BeFalse())
			Expect(m.Chat().Len()).To(Equal(2))
		})

		It("offers follow-ups only once the reply is shown", func() {
			Expect(m.Chat().Options()).To(HaveLen(8))

			q := "How effective are our youth empowerment programmes?"
			update(runes(q))
			update(tea.KeyMsg{Type: tea.KeyEnter})
			Expect(m.Chat().Options()).To(BeEmpty())

			update(tea.KeyMsg{Type: tea.KeyDown})
			Expect(m.Chat().Value()).To(BeEmpty())

			update(assistant.ReplyMsg{Question: q, Text: "Strong results.", Matched: true, At: now})
			Expect(m.Chat().Options()).To(HaveLen(4))
			update(tea.KeyMsg{Type: tea.KeyDown})
			Expect(m.Chat().Value()).To(Equal(m.Chat().Options()[0]))
		})

		It("ignores a blank question", func() {
			update(runes("   "))
			Expect(update(tea.KeyMsg{Type: tea.KeyEnter})).To(BeNil())
			Expect(m.Chat().Len()).To(BeZero())
		})

		It("fills the input from the suggestions", func() {
			update(tea.KeyMsg{Type: tea.KeyDown})
			Expect(m.Chat().Value()).To(Equal("How many youth found jobs in Northern Region this quarter?"))
			update(tea.KeyMsg{Type: tea.KeyUp})
			Expect(m.Chat().Value()).To(Equal("Sɛn na adwuma hwehwɛ kɔ so wɔ Ashanti Region?"))
		})

		It("toggles the language label", func() {
			update(tea.KeyMsg{Type: tea.KeyCtrlL})
			Expect(m.Chat().Language()).To(Equal(assistant.Twi))
			Expect(m.View()).To(ContainSubstring("[TWI]"))
		})

		It("keeps letters for the input instead of shortcuts", func() {
			update(runes("q"))
			Expect(m.Page()).To(Equal("ask"))
			Expect(m.Chat().Value()).To(Equal("q"))
		})

		It("goes back to the overview on esc", func() {
			update(tea.KeyMsg{Type: tea.KeyEsc})
			Expect(m.Page()).To(Equal("overview"))
		})
	})
})
