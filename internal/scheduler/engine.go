package scheduler

import (
	"container/heap"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// TriggerEvent is one firing of a habit's weekly reminder trigger. ID is the
// serialized trigger key the event was registered under.
type TriggerEvent struct {
	ID        string
	HabitID   string
	Title     string
	Body      string
	Weekday   time.Weekday
	TriggerAt time.Time
}

type queueItem struct {
	event TriggerEvent
}

type triggerQueue []queueItem

func (q triggerQueue) Len() int { return len(q) }

func (q triggerQueue) Less(i, j int) bool {
	return q[i].event.TriggerAt.Before(q[j].event.TriggerAt)
}

func (q triggerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *triggerQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *triggerQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine delivers trigger events at their scheduled times. Triggers are
// recurring weekly: a fired event is re-armed one week ahead under the same
// id until cancelled. Events are delivered on C() without blocking; a slow
// consumer drops events rather than stalling the timer loop.
type Engine struct {
	mu      sync.Mutex
	queue   triggerQueue
	out     chan TriggerEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(triggerQueue, 0),
		out:    make(chan TriggerEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan TriggerEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule registers a trigger event. Any pending event with the same ID is
// replaced, so re-registering a weekday trigger cannot duplicate it.
func (e *Engine) Schedule(ev TriggerEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	e.removeLocked(func(item queueItem) bool { return item.event.ID == ev.ID })
	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// Cancel removes every pending trigger whose ID appears in ids. Unknown ids
// are ignored.
func (e *Engine) Cancel(ids []string) {
	if len(ids) == 0 {
		return
	}
	lookup := make(map[string]bool, len(ids))
	for _, id := range ids {
		lookup[id] = true
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(func(item queueItem) bool { return lookup[item.event.ID] })
	e.signalWakeup()
}

// Pending returns the ids of all registered triggers, sorted.
func (e *Engine) Pending() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.queue))
	for _, item := range e.queue {
		out = append(out, item.event.ID)
	}
	sort.Strings(out)
	return out
}

// NextFireTime reports the pending trigger time for id, if any.
func (e *Engine) NextFireTime(id string) (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.queue {
		if item.event.ID == id {
			return item.event.TriggerAt, true
		}
	}
	return time.Time{}, false
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) removeLocked(match func(queueItem) bool) {
	kept := e.queue[:0]
	for _, item := range e.queue {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	e.queue = kept
	heap.Init(&e.queue)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popAndRearmDue(time.Now())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (TriggerEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return TriggerEvent{}, false
	}
	return e.queue[0].event, true
}

// popAndRearmDue removes every due event and pushes its next weekly
// occurrence back onto the queue under the same id.
func (e *Engine) popAndRearmDue(now time.Time) []TriggerEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]TriggerEvent, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)

		rearmed := item.event
		rearmed.TriggerAt = nextWeeklyOccurrence(item.event.TriggerAt, now)
		heap.Push(&e.queue, queueItem{event: rearmed})
	}
	return out
}

// nextWeeklyOccurrence steps a trigger time forward in whole weeks until it
// is in the future, preserving the wall-clock time and weekday.
func nextWeeklyOccurrence(at, now time.Time) time.Time {
	next := at.AddDate(0, 0, 7)
	for !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
