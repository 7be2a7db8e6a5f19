// Package frame schedules per-refresh callbacks. A callback requested during
// a flush runs on the next flush, so a loop that re-requests itself runs
// exactly once per display refresh.
package frame

import "time"

// ID identifies a pending request.
type ID uint64

// Callback receives the flush timestamp.
type Callback func(now time.Time)

type request struct {
	id ID
	fn Callback
}

// Scheduler queues callbacks for the next refresh. It is not safe for
// concurrent use; it is driven from the render thread.
type Scheduler struct {
	next      ID
	queue     []request
	cancelled map[ID]struct{} // cancelled while their batch is flushing
	flushing  bool
	flushes   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request queues fn for the next flush.
func (s *Scheduler) Request(fn Callback) ID {
	s.next++
	s.queue = append(s.queue, request{id: s.next, fn: fn})
	return s.next
}

// Cancel drops a pending request. Cancelling an unknown or already-run ID
// is a no-op.
func (s *Scheduler) Cancel(id ID) {
	for i, r := range s.queue {
		if r.id == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
	if s.flushing {
		if s.cancelled == nil {
			s.cancelled = make(map[ID]struct{})
		}
		s.cancelled[id] = struct{}{}
	}
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Flushes returns how many refreshes have been run.
func (s *Scheduler) Flushes() uint64 {
	return s.flushes
}

// Flush runs every callback queued before the call, in request order, and
// returns how many ran. Requests made by those callbacks wait for the next
// flush; a request cancelled by an earlier callback in the same flush is
// skipped.
func (s *Scheduler) Flush(now time.Time) int {
	s.flushes++
	batch := s.queue
	s.queue = nil

	s.flushing = true
	defer func() {
		s.flushing = false
		clear(s.cancelled)
	}()

	ran := 0
	for _, r := range batch {
		if _, gone := s.cancelled[r.id]; gone {
			continue
		}
		r.fn(now)
		ran++
	}
	return ran
}
