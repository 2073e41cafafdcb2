package portal

import "container/heap"

// TimerID names a scheduled callback. Zero is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	deadline float64
	seq      uint64
	fn       func()
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(*timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler runs single-shot callbacks at simulation-time deadlines.
// It is advanced explicitly once per tick; callbacks run on the caller's
// goroutine, in deadline order.
type Scheduler struct {
	now   float64
	next  TimerID
	seq   uint64
	queue timerHeap
	live  map[TimerID]*timer
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{live: make(map[TimerID]*timer)}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once the clock reaches Now()+delay.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	s.next++
	s.seq++
	t := &timer{id: s.next, deadline: s.now + delay, seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	s.live[t.id] = t
	return t.id
}

// Deadline returns when id fires, if it is still pending.
func (s *Scheduler) Deadline(id TimerID) (float64, bool) {
	t, ok := s.live[id]
	if !ok {
		return 0, false
	}
	return t.deadline, true
}

// Cancel drops a pending callback. It reports whether id was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.live[id]
	if !ok {
		return false
	}
	delete(s.live, id)
	t.fn = nil
	return true
}

// Pending returns the number of callbacks still waiting.
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// Advance moves the clock to now and runs every callback whose deadline
// has passed. Callbacks may schedule further timers; those fire in the
// same call if already due. Returns the number of callbacks run.
func (s *Scheduler) Advance(now float64) int {
	if now > s.now {
		s.now = now
	}
	fired := 0
	for s.queue.Len() > 0 && s.queue[0].deadline <= s.now {
		t := heap.Pop(&s.queue).(*timer)
		if t.fn == nil {
			continue
		}
		delete(s.live, t.id)
		t.fn()
		fired++
	}
	return fired
}
