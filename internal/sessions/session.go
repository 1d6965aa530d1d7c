package sessions

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrExerciseNotFound = errors.New("session exercise not found")
	ErrSetNotFound      = errors.New("session set not found")
	ErrSessionFinished  = errors.New("session already finished")

	// ErrTemplateGone is returned when a session is started from a template
	// that is no longer in the store, i.e. the source is unavailable.
	ErrTemplateGone = errors.New("template source unavailable")
)

// DefaultSetCount is the number of sets an exercise added by hand to a live
// session starts with.
const DefaultSetCount = 3

// Session is one performed (or in progress) workout. DurationSeconds is set
// exactly once, when the session is finished. TemplateID is nil for blank
// sessions.
type Session struct {
	ID              uuid.UUID  `json:"id"`
	TemplateID      *uuid.UUID `json:"templateId,omitempty"`
	Name            string     `json:"name"`
	StartedAt       time.Time  `json:"startedAt"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`

	Exercises []SessionExercise `json:"exercises"`
}

// SessionExercise carries a snapshot of the exercise name taken at
// instantiation time. Renaming the template later must not rewrite history,
// so the name is copied, never referenced live.
type SessionExercise struct {
	ID                 uuid.UUID  `json:"id"`
	SessionID          uuid.UUID  `json:"sessionId"`
	TemplateExerciseID *uuid.UUID `json:"templateExerciseId,omitempty"`
	Name               string     `json:"name"`
	Order              int        `json:"order"`

	Sets []SessionSet `json:"sets"`
}

type SessionSet struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	SetIndex   int       `json:"setIndex"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	IsComplete bool      `json:"isComplete"`
}

// Recorded reports whether the set holds a meaningful measurement. Sets
// with zero reps and zero weight are treated as never recorded.
func (s SessionSet) Recorded() bool {
	return s.Reps > 0 || s.Weight > 0
}

func (s *Session) Finished() bool {
	return s.DurationSeconds != nil
}

// ProgressPoint is one point of the weight over time chart for an exercise:
// the heaviest recorded set weight of one day.
type ProgressPoint struct {
	Day       time.Time `json:"day"`
	MaxWeight float64   `json:"maxWeight"`
}
