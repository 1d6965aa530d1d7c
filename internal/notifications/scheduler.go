package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog-app/liftlog/internal/telemetry/metrics"
)

const sendTimeout = 10 * time.Second

// DelayedScheduler fires one-shot notifications after a delay. A pending
// notification canceled before its delay runs out never reaches the
// sender.
type DelayedScheduler struct {
	sender  Sender
	metrics *metrics.Manager

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewDelayedScheduler(sender Sender, metrics *metrics.Manager) *DelayedScheduler {
	return &DelayedScheduler{
		sender:  sender,
		metrics: metrics,
		pending: make(map[string]*time.Timer),
	}
}

func (s *DelayedScheduler) ScheduleOneShot(_ context.Context, after time.Duration, title, body string) (string, error) {
	if after <= 0 {
		return "", fmt.Errorf("notification delay must be positive, got %s", after)
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = time.AfterFunc(after, func() {
		s.fire(id, title, body)
	})

	log.Debugf("notification [%s] scheduled in %s", id, after)
	return id, nil
}

func (s *DelayedScheduler) CancelPending(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.pending[id]
	if !ok {
		return
	}
	timer.Stop()
	delete(s.pending, id)
	log.Debugf("pending notification [%s] canceled", id)
}

// StopAll cancels everything still pending. Called on shutdown.
func (s *DelayedScheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
}

func (s *DelayedScheduler) fire(id, title, body string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := s.sender.Send(ctx, title, body); err != nil {
		s.metrics.CounterNotificationsFailed.Inc()
		log.Errorf("failed to send notification [%s]: %s", id, err)
		return
	}
	log.Debugf("notification [%s] sent", id)
}
