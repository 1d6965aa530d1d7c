package sessions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=history_mocks_test.go -package=sessions_test

// DefaultHistoryWindow bounds the history search to this many most recent
// sessions per exercise. The bound is an explicit parameter of History: a
// window of 0 disables it and scans the whole history, which can matter
// for exercises performed rarely.
const DefaultHistoryWindow = 5

const historyCacheExpire = 60 * 10 // seconds

type historyRepo interface {
	RecentExerciseSets(ctx context.Context, name string, window int) ([]ExerciseHistory, error)
}

// History answers "what did the last session look like" questions for one
// exercise name. Results are cached until the next session write.
type History struct {
	repo   historyRepo
	cache  *freecache.Cache
	window int
}

func NewHistory(repo historyRepo, window int) *History {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &History{
		repo:   repo,
		cache:  freecache.NewCache(cacheSize),
		window: window,
	}
}

type cachedSetData struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Found  bool    `json:"found"`
}

// LastSetData returns the most recently recorded (reps, weight) pair for
// the given exercise name and set index. Zero valued sets count as never
// recorded: the search skips them and keeps going into older sessions,
// within the configured window.
func (h *History) LastSetData(ctx context.Context, name string, setIndex int) (reps int, weight float64, found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.history.lastsetdata")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))
	span.SetAttributes(attribute.Int("set.index", setIndex))

	cacheKey := fmt.Sprintf("lastset::%s::%d", name, setIndex)
	if cachedBytes, cacheErr := h.cache.Get([]byte(cacheKey)); cacheErr == nil {
		var cached cachedSetData
		if err := json.Unmarshal(cachedBytes, &cached); err == nil {
			return cached.Reps, cached.Weight, cached.Found, nil
		}
		log.Errorf("failed to unmarshal cached set data for [%s][%d]", name, setIndex)
	}

	history, err := h.repo.RecentExerciseSets(ctx, name, h.window)
	if err != nil {
		return 0, 0, false, fmt.Errorf("recent exercise sets: %w", err)
	}

	for _, occurrence := range history {
		for _, set := range occurrence.Sets {
			if set.SetIndex != setIndex {
				continue
			}
			if set.Recorded() {
				h.cacheSetData(cacheKey, cachedSetData{Reps: set.Reps, Weight: set.Weight, Found: true})
				return set.Reps, set.Weight, true, nil
			}
			// zero valued set at this index, keep searching older sessions
			break
		}
	}

	h.cacheSetData(cacheKey, cachedSetData{})
	return 0, 0, false, nil
}

// LastSetCount returns the number of sets of the most recent occurrence of
// the exercise, 0 when the exercise was never performed.
func (h *History) LastSetCount(ctx context.Context, name string) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.history.lastsetcount")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	cacheKey := fmt.Sprintf("setcount::%s", name)
	if cachedBytes, cacheErr := h.cache.Get([]byte(cacheKey)); cacheErr == nil {
		var cached int
		if err := json.Unmarshal(cachedBytes, &cached); err == nil {
			return cached, nil
		}
		log.Errorf("failed to unmarshal cached set count for [%s]", name)
	}

	history, err := h.repo.RecentExerciseSets(ctx, name, h.window)
	if err != nil {
		return 0, fmt.Errorf("recent exercise sets: %w", err)
	}

	if len(history) > 0 {
		count = len(history[0].Sets)
	}

	countBytes, err := json.Marshal(count)
	if err == nil {
		if err := h.cache.Set([]byte(cacheKey), countBytes, historyCacheExpire); err != nil {
			log.Errorf("failed to cache set count for [%s]: %s", name, err)
		}
	}

	return count, nil
}

// Invalidate drops all cached history. Called after any session write.
func (h *History) Invalidate() {
	h.cache.Clear()
}

func (h *History) cacheSetData(cacheKey string, data cachedSetData) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		log.Errorf("failed to marshal set data for cache [%s]: %s", cacheKey, err)
		return
	}
	if err := h.cache.Set([]byte(cacheKey), dataBytes, historyCacheExpire); err != nil {
		log.Errorf("failed to cache set data [%s]: %s", cacheKey, err)
	}
}
