package timers

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/liftlog-app/liftlog/internal/clock"
	"github.com/liftlog-app/liftlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=coordinator_mocks_test.go -package=timers_test

var (
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrInvalidDuration   = errors.New("rest duration must be positive")
)

type WorkoutState string

const (
	WorkoutIdle    WorkoutState = "idle"
	WorkoutRunning WorkoutState = "running"
	WorkoutPaused  WorkoutState = "paused"
)

type WarmupPhase string

const (
	WarmupNotStarted  WarmupPhase = "not-started"
	WarmupEmpty       WarmupPhase = "empty"
	WarmupStepPaused  WarmupPhase = "step-paused"
	WarmupStepRunning WarmupPhase = "step-running"
	WarmupFinished    WarmupPhase = "finished"
)

type WarmupStep struct {
	Name            string `json:"name"`
	DurationSeconds int    `json:"durationSeconds"`
}

type restScheduler interface {
	ScheduleOneShot(ctx context.Context, after time.Duration, title, body string) (string, error)
	CancelPending(ctx context.Context, id string)
}

type Option func(*Coordinator)

func WithTickInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		c.tickInterval = d
	}
}

func WithRestNotification(title, body string) Option {
	return func(c *Coordinator) {
		c.restTitle = title
		c.restBody = body
	}
}

// Coordinator runs the workout count-up, the rest countdown and the
// sequenced warmup countdown. All values are recomputed from absolute
// timestamps taken from the clock, so elapsed and remaining stay correct
// across process restarts. Workout and rest state survive restarts through
// the snapshot store, the warmup sequence does not.
type Coordinator struct {
	clock     clock.Clock
	snapshots SnapshotStore
	scheduler restScheduler
	metrics   *metrics.Manager
	events    *Events

	tickInterval time.Duration
	restTitle    string
	restBody     string

	mu sync.Mutex

	workoutState        WorkoutState
	workoutAccumulated  time.Duration
	workoutSegmentStart *time.Time

	restActive         bool
	restInitial        time.Duration
	restSegmentStart   time.Time
	restNotificationID string

	warmupPhase        WarmupPhase
	warmupSteps        []WarmupStep
	warmupIndex        int
	warmupRemaining    time.Duration
	warmupSegmentStart time.Time

	loopRunning bool
	cancelLoop  context.CancelFunc
}

func NewCoordinator(
	clock clock.Clock,
	snapshots SnapshotStore,
	scheduler restScheduler,
	metrics *metrics.Manager,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		clock:        clock,
		snapshots:    snapshots,
		scheduler:    scheduler,
		metrics:      metrics,
		events:       NewEvents(metrics),
		tickInterval: time.Second,
		restTitle:    "Rest over",
		restBody:     "Time for the next set",
		workoutState: WorkoutIdle,
		warmupPhase:  WarmupNotStarted,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Events() *Events {
	return c.events
}

// Restore loads the persisted snapshot and rebuilds timer state from it.
// A rest countdown that ran out while the process was down resolves as a
// natural completion right here, without a late notification.
func (c *Coordinator) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, err := c.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		log.Debugf("no timer snapshot to restore")
		return nil
	}

	now := c.clock.Now().UTC()

	if snapshot.WorkoutTimerActive {
		c.workoutAccumulated = time.Duration(snapshot.WorkoutAccumulatedSeconds) * time.Second
		if snapshot.WorkoutSegmentStartAt != nil {
			segmentStart := snapshot.WorkoutSegmentStartAt.UTC()
			c.workoutSegmentStart = &segmentStart
			c.workoutState = WorkoutRunning
		} else {
			c.workoutSegmentStart = nil
			c.workoutState = WorkoutPaused
		}
		log.Debugf(
			"workout timer restored [%s], elapsed %ds",
			c.workoutState, int(c.workoutElapsedLocked(now).Seconds()),
		)
	}

	if snapshot.RestTimerActive {
		if snapshot.RestSegmentStartAt == nil {
			log.Errorf("rest timer snapshot has no segment start, dropping it")
			return nil
		}

		c.restInitial = time.Duration(snapshot.RestInitialDurationSeconds) * time.Second
		c.restSegmentStart = snapshot.RestSegmentStartAt.UTC()
		c.restActive = true

		remaining := c.restInitial - now.Sub(c.restSegmentStart)
		if remaining <= 0 {
			// ran out while the process was down
			c.completeRestLocked(ctx, false)
			return nil
		}

		c.scheduleRestNotificationLocked(ctx, remaining)
		log.Debugf("rest timer restored, %ds remaining", int(remaining.Seconds()))
	}

	return nil
}

// Start launches the tick loop. Non blocking.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loopRunning {
		log.Warnf("timer tick loop already running")
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancelLoop = cancel
	c.loopRunning = true

	go c.loop(loopCtx)

	log.Debugf("timer tick loop started, interval %s", c.tickInterval)
}

func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loopRunning {
		return
	}

	c.cancelLoop()
	c.loopRunning = false
	log.Debugf("timer tick loop stopped")
}

func (c *Coordinator) loop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick emits recomputed tick events and resolves expired countdowns. It
// never decrements anything.
func (c *Coordinator) tick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().UTC()

	if c.workoutState == WorkoutRunning {
		c.events.Publish(Event{
			Kind:           EventWorkoutTick,
			ElapsedSeconds: int(c.workoutElapsedLocked(now).Seconds()),
		})
	}

	remaining := c.checkRestLocked(ctx, now)
	if c.restActive {
		c.events.Publish(Event{
			Kind:             EventRestTick,
			RemainingSeconds: int(remaining.Seconds()),
		})
	}

	c.checkWarmupLocked(now)
}

func (c *Coordinator) StartWorkout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workoutState != WorkoutIdle {
		return ErrInvalidTransition
	}

	now := c.clock.Now().UTC()
	c.workoutAccumulated = 0
	c.workoutSegmentStart = &now
	c.workoutState = WorkoutRunning

	c.metrics.CounterTimerTransitions.WithLabelValues("workout", "start").Inc()
	c.persistLocked(ctx)
	log.Debugf("workout timer started")
	return nil
}

func (c *Coordinator) PauseWorkout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workoutState != WorkoutRunning {
		return ErrInvalidTransition
	}

	now := c.clock.Now().UTC()
	c.workoutAccumulated += now.Sub(*c.workoutSegmentStart)
	c.workoutSegmentStart = nil
	c.workoutState = WorkoutPaused

	c.metrics.CounterTimerTransitions.WithLabelValues("workout", "pause").Inc()
	c.persistLocked(ctx)
	log.Debugf("workout timer paused at %ds", int(c.workoutAccumulated.Seconds()))
	return nil
}

func (c *Coordinator) ResumeWorkout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workoutState != WorkoutPaused {
		return ErrInvalidTransition
	}

	now := c.clock.Now().UTC()
	c.workoutSegmentStart = &now
	c.workoutState = WorkoutRunning

	c.metrics.CounterTimerTransitions.WithLabelValues("workout", "resume").Inc()
	c.persistLocked(ctx)
	log.Debugf("workout timer resumed")
	return nil
}

// StopWorkout ends the count-up and returns the final total in seconds,
// the authoritative duration of the session.
func (c *Coordinator) StopWorkout(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workoutState == WorkoutIdle {
		return 0, ErrInvalidTransition
	}

	now := c.clock.Now().UTC()
	total := c.workoutElapsedLocked(now)

	c.workoutAccumulated = 0
	c.workoutSegmentStart = nil
	c.workoutState = WorkoutIdle

	c.metrics.CounterTimerTransitions.WithLabelValues("workout", "stop").Inc()
	c.persistLocked(ctx)
	log.Debugf("workout timer stopped, total %ds", int(total.Seconds()))
	return int(total.Seconds()), nil
}

func (c *Coordinator) WorkoutElapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.workoutElapsedLocked(c.clock.Now().UTC()).Seconds())
}

func (c *Coordinator) workoutElapsedLocked(now time.Time) time.Duration {
	elapsed := c.workoutAccumulated
	if c.workoutState == WorkoutRunning && c.workoutSegmentStart != nil {
		elapsed += now.Sub(*c.workoutSegmentStart)
	}
	return elapsed
}

// StartRest begins a rest countdown and schedules the best-effort push
// notification for its end. Starting while a countdown is already running
// is the preset-tap restart: the running one resolves as a manual stop
// first.
func (c *Coordinator) StartRest(ctx context.Context, durationSeconds int) error {
	if durationSeconds <= 0 {
		return ErrInvalidDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().UTC()
	if c.restActive {
		manual := c.restInitial-now.Sub(c.restSegmentStart) > 0
		c.completeRestLocked(ctx, manual)
	}

	c.restInitial = time.Duration(durationSeconds) * time.Second
	c.restSegmentStart = now
	c.restActive = true

	c.scheduleRestNotificationLocked(ctx, c.restInitial)

	c.metrics.CounterTimerTransitions.WithLabelValues("rest", "start").Inc()
	c.persistLocked(ctx)
	c.events.Publish(Event{Kind: EventRestTick, RemainingSeconds: durationSeconds})
	log.Debugf("rest timer started, %ds", durationSeconds)
	return nil
}

// RestRemaining reports the seconds left on the countdown, resolving it as
// naturally completed when it already ran out.
func (c *Coordinator) RestRemaining(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.checkRestLocked(ctx, c.clock.Now().UTC()).Seconds())
}

// StopRest ends the countdown with the given manual flag. A stop landing
// after the countdown already ran out resolves as the natural completion
// instead.
func (c *Coordinator) StopRest(ctx context.Context, manual bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.restActive {
		return ErrInvalidTransition
	}

	now := c.clock.Now().UTC()
	if remaining := c.restInitial - now.Sub(c.restSegmentStart); remaining <= 0 {
		c.completeRestLocked(ctx, false)
		return nil
	}

	c.completeRestLocked(ctx, manual)
	return nil
}

func (c *Coordinator) checkRestLocked(ctx context.Context, now time.Time) time.Duration {
	if !c.restActive {
		return 0
	}
	remaining := c.restInitial - now.Sub(c.restSegmentStart)
	if remaining <= 0 {
		c.completeRestLocked(ctx, false)
		return 0
	}
	return remaining
}

// completeRestLocked resolves the countdown exactly once, restActive
// guards against a second resolution.
func (c *Coordinator) completeRestLocked(ctx context.Context, manual bool) {
	if !c.restActive {
		return
	}

	if c.restNotificationID != "" {
		c.scheduler.CancelPending(ctx, c.restNotificationID)
		c.restNotificationID = ""
	}

	c.restActive = false
	c.restInitial = 0
	c.restSegmentStart = time.Time{}

	if manual {
		c.metrics.CounterTimerTransitions.WithLabelValues("rest", "stop-manual").Inc()
	} else {
		c.metrics.CounterTimerTransitions.WithLabelValues("rest", "complete-natural").Inc()
	}
	c.persistLocked(ctx)
	c.events.Publish(Event{Kind: EventRestComplete, Manual: manual})
	log.Debugf("rest timer completed, manual: %t", manual)
}

func (c *Coordinator) scheduleRestNotificationLocked(ctx context.Context, after time.Duration) {
	id, err := c.scheduler.ScheduleOneShot(ctx, after, c.restTitle, c.restBody)
	if err != nil {
		// countdown stays authoritative, the push is only a nudge
		c.metrics.CounterNotificationsFailed.Inc()
		log.Errorf("failed to schedule rest notification: %s", err)
		return
	}
	c.restNotificationID = id
	c.metrics.CounterNotificationsScheduled.Inc()
}

// persistLocked saves the current workout and rest state, or clears the
// snapshot when both are idle. Save failures are counted and logged, the
// timers keep running on the in-memory state.
func (c *Coordinator) persistLocked(ctx context.Context) {
	if c.workoutState == WorkoutIdle && !c.restActive {
		if err := c.snapshots.Clear(ctx); err != nil {
			c.metrics.CounterSnapshotSaveFailures.Inc()
			log.Errorf("failed to clear timer snapshot: %s", err)
		}
		return
	}

	snapshot := Snapshot{
		WorkoutTimerActive:        c.workoutState != WorkoutIdle,
		WorkoutAccumulatedSeconds: int(c.workoutAccumulated.Seconds()),
	}
	if c.workoutSegmentStart != nil {
		segmentStart := *c.workoutSegmentStart
		snapshot.WorkoutSegmentStartAt = &segmentStart
	}
	if c.restActive {
		restSegmentStart := c.restSegmentStart
		snapshot.RestTimerActive = true
		snapshot.RestInitialDurationSeconds = int(c.restInitial.Seconds())
		snapshot.RestSegmentStartAt = &restSegmentStart
	}

	if err := c.snapshots.Save(ctx, snapshot); err != nil {
		c.metrics.CounterSnapshotSaveFailures.Inc()
		log.Errorf("failed to save timer snapshot: %s", err)
	}
}

// BeginWarmups loads a warmup sequence, replacing whatever was there. An
// empty list lands in the distinguished active-but-empty state so the app
// can show that nothing is configured and let the user move on.
func (c *Coordinator) BeginWarmups(steps []WarmupStep) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warmupSteps = append([]WarmupStep(nil), steps...)
	c.warmupIndex = 0
	c.warmupSegmentStart = time.Time{}

	if len(c.warmupSteps) == 0 {
		c.warmupPhase = WarmupEmpty
		c.warmupRemaining = 0
	} else {
		c.warmupPhase = WarmupStepPaused
		c.warmupRemaining = time.Duration(c.warmupSteps[0].DurationSeconds) * time.Second
	}

	c.metrics.CounterTimerTransitions.WithLabelValues("warmup", "begin").Inc()
	log.Debugf("warmup sequence began, %d steps", len(c.warmupSteps))
}

// StartCurrentWarmup begins the countdown of the current step. Steps never
// auto start, each one waits for this call.
func (c *Coordinator) StartCurrentWarmup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.warmupPhase != WarmupStepPaused {
		return ErrInvalidTransition
	}

	c.warmupSegmentStart = c.clock.Now().UTC()
	c.warmupPhase = WarmupStepRunning

	c.metrics.CounterTimerTransitions.WithLabelValues("warmup", "start").Inc()
	return nil
}

// AdvanceWarmup skips to the next step, or finishes the sequence when
// there is none.
func (c *Coordinator) AdvanceWarmup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.warmupPhase {
	case WarmupStepPaused, WarmupStepRunning, WarmupEmpty:
	default:
		return ErrInvalidTransition
	}

	c.advanceWarmupLocked()
	return nil
}

// CancelWarmups skips the rest of the sequence. Subscribers see the same
// sequence-complete event as a naturally finished one.
func (c *Coordinator) CancelWarmups() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.warmupPhase {
	case WarmupStepPaused, WarmupStepRunning, WarmupEmpty:
	default:
		return ErrInvalidTransition
	}

	c.metrics.CounterTimerTransitions.WithLabelValues("warmup", "cancel").Inc()
	c.finishWarmupsLocked()
	return nil
}

func (c *Coordinator) advanceWarmupLocked() {
	c.warmupSegmentStart = time.Time{}
	c.warmupIndex++

	if c.warmupIndex < len(c.warmupSteps) {
		step := c.warmupSteps[c.warmupIndex]
		c.warmupRemaining = time.Duration(step.DurationSeconds) * time.Second
		c.warmupPhase = WarmupStepPaused

		c.metrics.CounterTimerTransitions.WithLabelValues("warmup", "advance").Inc()
		c.events.Publish(Event{
			Kind:             EventWarmupAdvanced,
			WarmupIndex:      c.warmupIndex,
			WarmupName:       step.Name,
			RemainingSeconds: step.DurationSeconds,
		})
		return
	}

	c.metrics.CounterTimerTransitions.WithLabelValues("warmup", "complete").Inc()
	c.finishWarmupsLocked()
}

func (c *Coordinator) finishWarmupsLocked() {
	c.warmupSteps = nil
	c.warmupIndex = 0
	c.warmupRemaining = 0
	c.warmupSegmentStart = time.Time{}
	c.warmupPhase = WarmupFinished

	c.events.Publish(Event{Kind: EventWarmupSequenceComplete})
	log.Debugf("warmup sequence complete")
}

func (c *Coordinator) checkWarmupLocked(now time.Time) {
	if c.warmupPhase != WarmupStepRunning {
		return
	}
	if c.warmupRemaining-now.Sub(c.warmupSegmentStart) <= 0 {
		c.advanceWarmupLocked()
	}
}

func (c *Coordinator) warmupRemainingLocked(now time.Time) time.Duration {
	switch c.warmupPhase {
	case WarmupStepRunning:
		remaining := c.warmupRemaining - now.Sub(c.warmupSegmentStart)
		if remaining < 0 {
			return 0
		}
		return remaining
	case WarmupStepPaused:
		return c.warmupRemaining
	default:
		return 0
	}
}

type WorkoutView struct {
	State          WorkoutState `json:"state"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
}

type RestView struct {
	Active                 bool `json:"active"`
	InitialDurationSeconds int  `json:"initialDurationSeconds"`
	RemainingSeconds       int  `json:"remainingSeconds"`
}

type WarmupView struct {
	Phase            WarmupPhase `json:"phase"`
	Index            int         `json:"index"`
	Name             string      `json:"name,omitempty"`
	RemainingSeconds int         `json:"remainingSeconds"`
	StepCount        int         `json:"stepCount"`
}

type State struct {
	Workout WorkoutView `json:"workout"`
	Rest    RestView    `json:"rest"`
	Warmup  WarmupView  `json:"warmup"`
}

// State returns the full recomputed timer view, the one call the app makes
// when it comes back to the foreground. Expired countdowns resolve on the
// way.
func (c *Coordinator) State(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().UTC()
	restRemaining := c.checkRestLocked(ctx, now)
	c.checkWarmupLocked(now)

	state := State{
		Workout: WorkoutView{
			State:          c.workoutState,
			ElapsedSeconds: int(c.workoutElapsedLocked(now).Seconds()),
		},
		Rest: RestView{
			Active:                 c.restActive,
			InitialDurationSeconds: int(c.restInitial.Seconds()),
			RemainingSeconds:       int(restRemaining.Seconds()),
		},
		Warmup: WarmupView{
			Phase:            c.warmupPhase,
			Index:            c.warmupIndex,
			RemainingSeconds: int(c.warmupRemainingLocked(now).Seconds()),
			StepCount:        len(c.warmupSteps),
		},
	}
	if c.warmupIndex < len(c.warmupSteps) {
		state.Warmup.Name = c.warmupSteps[c.warmupIndex].Name
	}
	return state
}
