// Package countdown is a queue of one-shot timers keyed to participant IDs.
// Timers advance on simulated time only; nothing here sleeps.
package countdown

import (
	"container/heap"
	"time"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// Binding is one armed countdown: a target, an event tag and the simulated
// time at which it fires.
type Binding struct {
	Target object.ID
	Event  object.Event
	Due    time.Duration

	seq uint64
}

// Queue orders bindings by due time, then by the order they were scheduled.
type Queue struct {
	now   time.Duration
	seq   uint64
	items bindingHeap
}

// New returns an empty queue at time zero.
func New() *Queue {
	return &Queue{}
}

// Now is the queue's simulated time.
func (q *Queue) Now() time.Duration { return q.now }

// Len is the number of armed bindings.
func (q *Queue) Len() int { return len(q.items) }

// Schedule arms a countdown firing delay from now. Delays shorter than a
// millisecond are raised to one, so a binding never fires in the tick that
// scheduled it.
func (q *Queue) Schedule(target object.ID, event object.Event, delay time.Duration) {
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	q.seq++
	heap.Push(&q.items, Binding{
		Target: target,
		Event:  event,
		Due:    q.now + delay,
		seq:    q.seq,
	})
}

// Advance moves simulated time forward by interval and removes and returns
// every binding that became due, earliest first.
func (q *Queue) Advance(interval time.Duration) []Binding {
	q.now += interval
	var due []Binding
	for len(q.items) > 0 && q.items[0].Due <= q.now {
		due = append(due, heap.Pop(&q.items).(Binding))
	}
	return due
}

// Pending reports whether any binding for target and event is armed.
func (q *Queue) Pending(target object.ID, event object.Event) bool {
	for _, b := range q.items {
		if b.Target == target && b.Event == event {
			return true
		}
	}
	return false
}

// Reset drops every binding. Simulated time keeps running.
func (q *Queue) Reset() {
	q.items = q.items[:0]
}

// Dispatch delivers due bindings to their targets. Targets that are gone or
// expired are skipped.
func Dispatch(due []Binding, lookup func(object.ID) (object.Participant, bool), c object.Controller) {
	for _, b := range due {
		p, ok := lookup(b.Target)
		if !ok || p.Expired() {
			continue
		}
		p.CountdownComplete(b.Event, c)
	}
}

type bindingHeap []Binding

func (h bindingHeap) Len() int { return len(h) }

func (h bindingHeap) Less(i, j int) bool {
	if h[i].Due != h[j].Due {
		return h[i].Due < h[j].Due
	}
	return h[i].seq < h[j].seq
}

func (h bindingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *bindingHeap) Push(x any) { *h = append(*h, x.(Binding)) }

func (h *bindingHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
