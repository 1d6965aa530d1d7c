package templates

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrExerciseNotFound   = errors.New("template exercise not found")
	ErrWarmupStepNotFound = errors.New("warmup step not found")
)

// Warmup step durations are clamped to this range on write, so the timer
// side can trust whatever is stored.
const (
	MinWarmupSeconds = 5
	MaxWarmupSeconds = 60
)

type Template struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// ExerciseCount is filled by list queries, Exercises and Warmups by Get.
	ExerciseCount int          `json:"exerciseCount"`
	Exercises     []Exercise   `json:"exercises,omitempty"`
	Warmups       []WarmupStep `json:"warmups,omitempty"`
}

// Exercise is a single planned exercise of a template. Order is contiguous
// and zero based within the owning template.
type Exercise struct {
	ID             uuid.UUID `json:"id"`
	TemplateID     uuid.UUID `json:"templateId"`
	Name           string    `json:"name"`
	Order          int       `json:"order"`
	TargetSetCount int       `json:"targetSetCount"`
}

type WarmupStep struct {
	Name            string `json:"name"`
	DurationSeconds int    `json:"durationSeconds"`
}

func clampWarmupSeconds(seconds int) int {
	if seconds < MinWarmupSeconds {
		return MinWarmupSeconds
	}
	if seconds > MaxWarmupSeconds {
		return MaxWarmupSeconds
	}
	return seconds
}
