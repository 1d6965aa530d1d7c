package timers

import (
	"sync"

	"github.com/liftlog-app/liftlog/internal/telemetry/metrics"
)

type EventKind string

const (
	EventWorkoutTick            EventKind = "workout-tick"
	EventRestTick               EventKind = "rest-tick"
	EventRestComplete           EventKind = "rest-complete"
	EventWarmupAdvanced         EventKind = "warmup-advanced"
	EventWarmupSequenceComplete EventKind = "warmup-sequence-complete"
)

// Event is one timer state change or tick. Tick events carry recomputed
// values, a rest completion carries whether the user stopped it by hand.
type Event struct {
	Kind             EventKind `json:"kind"`
	ElapsedSeconds   int       `json:"elapsedSeconds,omitempty"`
	RemainingSeconds int       `json:"remainingSeconds,omitempty"`
	Manual           bool      `json:"manual,omitempty"`
	WarmupIndex      int       `json:"warmupIndex,omitempty"`
	WarmupName       string    `json:"warmupName,omitempty"`
}

const subscriberBuffer = 16

// Events fans timer events out to subscribers. Publishing never blocks:
// an event for a subscriber with a full channel is dropped and counted.
type Events struct {
	metrics *metrics.Manager

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func NewEvents(metrics *metrics.Manager) *Events {
	return &Events{
		metrics: metrics,
		subs:    make(map[int]chan Event),
	}
}

func (e *Events) Subscribe() (int, <-chan Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	ch := make(chan Event, subscriberBuffer)
	e.subs[id] = ch
	return id, ch
}

func (e *Events) Unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ch, ok := e.subs[id]; ok {
		delete(e.subs, id)
		close(ch)
	}
}

func (e *Events) Publish(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- event:
		default:
			e.metrics.CounterTimerEventsDropped.Inc()
		}
	}
}

func (e *Events) SubscriberCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
