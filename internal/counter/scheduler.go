package counter

import "time"

// FrameFunc is invoked with the timestamp of the frame it runs in.
type FrameFunc func(now time.Time)

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Scheduler requests and cancels callbacks for the next display refresh.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

// FrameQueue is a cooperative Scheduler driven by its host. The host calls
// Flush once per refresh; callbacks requested while a flush is running are
// deferred to the next flush. FrameQueue is not safe for concurrent use.
type FrameQueue struct {
	next     FrameID
	pending  []frameRequest
	inFlight map[FrameID]struct{}
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.next++
	q.pending = append(q.pending, frameRequest{id: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	delete(q.inFlight, id)
	for i, req := range q.pending {
		if req.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Flush runs every callback that was pending when it was called and returns
// how many ran. A callback cancelled by an earlier callback of the same
// flush is skipped.
func (q *FrameQueue) Flush(now time.Time) int {
	batch := q.pending
	q.pending = nil
	q.inFlight = make(map[FrameID]struct{}, len(batch))
	for _, req := range batch {
		q.inFlight[req.id] = struct{}{}
	}
	defer func() { q.inFlight = nil }()

	ran := 0
	for _, req := range batch {
		if _, ok := q.inFlight[req.id]; !ok {
			continue
		}
		delete(q.inFlight, req.id)
		req.fn(now)
		ran++
	}
	return ran
}

// Pending reports the number of callbacks waiting for the next flush.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
