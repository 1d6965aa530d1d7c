package timers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
)

const redisSnapshotKey = "liftlog::timer-snapshot"

// Snapshot is the durable timer state. Absolute segment start timestamps
// are stored so elapsed and remaining values can be recomputed after the
// process was dead for a while. The warmup sequence is deliberately not
// part of it.
type Snapshot struct {
	WorkoutTimerActive         bool       `json:"workoutTimerActive"`
	WorkoutAccumulatedSeconds  int        `json:"workoutAccumulatedSeconds"`
	WorkoutSegmentStartAt      *time.Time `json:"workoutSegmentStartAt,omitempty"`
	RestTimerActive            bool       `json:"restTimerActive"`
	RestInitialDurationSeconds int        `json:"restInitialDurationSeconds"`
	RestSegmentStartAt         *time.Time `json:"restSegmentStartAt,omitempty"`
}

type SnapshotStore interface {
	Save(ctx context.Context, snapshot Snapshot) error
	// Load returns nil when no snapshot was ever saved.
	Load(ctx context.Context) (*Snapshot, error)
	Clear(ctx context.Context) error
}

// RedisSnapshotStore keeps the snapshot as a JSON value at a fixed key.
type RedisSnapshotStore struct {
	redisClient *redis.Client
}

func NewRedisSnapshotStore(redisClient *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		redisClient: redisClient,
	}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot Snapshot) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "timers.snapshot.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := s.redisClient.Set(ctx, redisSnapshotKey, snapshotBytes, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot in redis: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "timers.snapshot.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cmd := s.redisClient.Get(ctx, redisSnapshotKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot from redis: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(cmd.Val()), &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *RedisSnapshotStore) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "timers.snapshot.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.redisClient.Del(ctx, redisSnapshotKey).Err(); err != nil {
		return fmt.Errorf("delete snapshot from redis: %w", err)
	}
	return nil
}

// MemorySnapshotStore holds the snapshot in memory, for tests and for
// running without redis.
type MemorySnapshotStore struct {
	mu       sync.Mutex
	snapshot *Snapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Save(_ context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snapshot
	return nil
}

func (s *MemorySnapshotStore) Load(_ context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, nil
	}
	snapshot := *s.snapshot
	return &snapshot, nil
}

func (s *MemorySnapshotStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	return nil
}
