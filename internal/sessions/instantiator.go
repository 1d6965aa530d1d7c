package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/liftlog-app/liftlog/internal/clock"
	"github.com/liftlog-app/liftlog/internal/telemetry/metrics"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/internal/templates"
)

//go:generate mockgen -source=$GOFILE -destination=instantiator_mocks_test.go -package=sessions_test

const blankSessionName = "Workout"

type templateSource interface {
	Get(ctx context.Context, id uuid.UUID) (*templates.Template, error)
}

type sessionStore interface {
	CreateGraph(ctx context.Context, session *Session) error
	AddExercise(ctx context.Context, exercise SessionExercise) (*SessionExercise, error)
}

type historySource interface {
	LastSetData(ctx context.Context, name string, setIndex int) (reps int, weight float64, found bool, err error)
	LastSetCount(ctx context.Context, name string) (int, error)
}

// Instantiator turns a template into a fully populated live session,
// carrying forward each exercise's most recent set data.
type Instantiator struct {
	templates templateSource
	store     sessionStore
	history   historySource
	clock     clock.Clock
	metrics   *metrics.Manager
}

func NewInstantiator(
	templates templateSource,
	store sessionStore,
	history historySource,
	clock clock.Clock,
	metrics *metrics.Manager,
) *Instantiator {
	return &Instantiator{
		templates: templates,
		store:     store,
		history:   history,
		clock:     clock,
		metrics:   metrics,
	}
}

// StartFromTemplate creates a session from the template as it exists in
// storage right now. Per exercise it creates
// max(targetSetCount, previous session set count) sets, so a session never
// has fewer sets than the user actually did last time. Set indexes below
// the previous count are seeded from history, and a seeded set is complete
// only when the carried reps are above zero. The whole graph is persisted
// atomically, a failure leaves nothing behind.
func (i *Instantiator) StartFromTemplate(ctx context.Context, templateID uuid.UUID) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.instantiator.startfromtemplate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", templateID.String()))

	tpl, err := i.templates.Get(ctx, templateID)
	if err != nil {
		i.metrics.CounterSessionsFailed.Inc()
		if errors.Is(err, templates.ErrTemplateNotFound) {
			log.Errorf("session instantiation failed, template [%s] gone", templateID)
			return nil, ErrTemplateGone
		}
		return nil, fmt.Errorf("get template: %w", err)
	}

	session := &Session{
		ID:         uuid.New(),
		TemplateID: &tpl.ID,
		Name:       tpl.Name,
		StartedAt:  i.clock.Now().UTC(),
	}

	var seeded int
	for _, tplExercise := range tpl.Exercises {
		exercise := SessionExercise{
			ID:                 uuid.New(),
			SessionID:          session.ID,
			TemplateExerciseID: &tplExercise.ID,
			Name:               tplExercise.Name,
			Order:              tplExercise.Order,
		}

		prevCount, err := i.history.LastSetCount(ctx, tplExercise.Name)
		if err != nil {
			i.metrics.CounterSessionsFailed.Inc()
			return nil, fmt.Errorf("last set count for %q: %w", tplExercise.Name, err)
		}

		setsToCreate := tplExercise.TargetSetCount
		if prevCount > setsToCreate {
			setsToCreate = prevCount
		}

		for setIndex := 0; setIndex < setsToCreate; setIndex++ {
			set := SessionSet{
				ID:         uuid.New(),
				ExerciseID: exercise.ID,
				SetIndex:   setIndex,
			}
			if setIndex < prevCount {
				reps, weight, found, err := i.history.LastSetData(ctx, tplExercise.Name, setIndex)
				if err != nil {
					i.metrics.CounterSessionsFailed.Inc()
					return nil, fmt.Errorf("last set data for %q [%d]: %w", tplExercise.Name, setIndex, err)
				}
				if found {
					set.Reps = reps
					set.Weight = weight
					set.IsComplete = reps > 0
					seeded++
				}
			}
			exercise.Sets = append(exercise.Sets, set)
		}

		session.Exercises = append(session.Exercises, exercise)
	}

	if err := i.store.CreateGraph(ctx, session); err != nil {
		i.metrics.CounterSessionsFailed.Inc()
		log.Errorf("session instantiation failed, persist graph: %s", err)
		return nil, fmt.Errorf("create session graph: %w", err)
	}

	i.metrics.CounterSessionsStarted.Inc()
	i.metrics.CounterSetsSeeded.Add(float64(seeded))
	log.Debugf(
		"session [%s] created from template [%s]: %d exercises, %d seeded sets",
		session.ID, tpl.ID, len(session.Exercises), seeded,
	)

	return session, nil
}

// CreateBlank creates a session with no template link and no exercises.
// Exercises get added ad hoc afterward.
func (i *Instantiator) CreateBlank(ctx context.Context) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.instantiator.createblank")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session := &Session{
		ID:        uuid.New(),
		Name:      blankSessionName,
		StartedAt: i.clock.Now().UTC(),
	}

	if err := i.store.CreateGraph(ctx, session); err != nil {
		i.metrics.CounterSessionsFailed.Inc()
		return nil, fmt.Errorf("create session: %w", err)
	}

	i.metrics.CounterSessionsStarted.Inc()
	log.Debugf("blank session [%s] created", session.ID)

	return session, nil
}

// AddExercise appends an ad hoc exercise with DefaultSetCount blank sets
// to a live session.
func (i *Instantiator) AddExercise(ctx context.Context, sessionID uuid.UUID, name string) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.instantiator.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID.String()))

	exercise := SessionExercise{
		ID:        uuid.New(),
		SessionID: sessionID,
		Name:      name,
	}
	for setIndex := 0; setIndex < DefaultSetCount; setIndex++ {
		exercise.Sets = append(exercise.Sets, SessionSet{
			ID:         uuid.New(),
			ExerciseID: exercise.ID,
			SetIndex:   setIndex,
		})
	}

	added, err := i.store.AddExercise(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}

	return added, nil
}
