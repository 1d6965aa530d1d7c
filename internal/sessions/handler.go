package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog-app/liftlog/internal/telemetry/metrics"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/internal/timers"
	"github.com/liftlog-app/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

const defaultListLimit = 20

type sessionsRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	ListRecent(ctx context.Context, limit int) ([]Session, error)
	AddSet(ctx context.Context, exerciseID uuid.UUID) (*SessionSet, error)
	UpdateSet(ctx context.Context, set *SessionSet) error
	Complete(ctx context.Context, id uuid.UUID, durationSeconds int) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExerciseProgress(ctx context.Context, name string) ([]ProgressPoint, error)
}

type sessionInstantiator interface {
	StartFromTemplate(ctx context.Context, templateID uuid.UUID) (*Session, error)
	CreateBlank(ctx context.Context) (*Session, error)
	AddExercise(ctx context.Context, sessionID uuid.UUID, name string) (*SessionExercise, error)
}

// workoutTimer is the slice of the timer coordinator the session lifecycle
// needs: finishing a session takes the stopped workout timer total as the
// authoritative duration, canceling shuts both timers down.
type workoutTimer interface {
	StopWorkout(ctx context.Context) (int, error)
	StopRest(ctx context.Context, manual bool) error
}

type historyCache interface {
	Invalidate()
}

type AddSessionExerciseRequest struct {
	Name string `json:"name"`
}

type UpdateSetRequest struct {
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	IsComplete bool    `json:"isComplete"`
}

type FinishSessionResponse struct {
	ID              string `json:"id"`
	DurationSeconds int    `json:"durationSeconds"`
}

type ListSessionsResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type ExerciseProgressResponse struct {
	Exercise string          `json:"exercise"`
	Points   []ProgressPoint `json:"points"`
}

type Handler struct {
	repo         sessionsRepo
	instantiator sessionInstantiator
	timers       workoutTimer
	history      historyCache
	metrics      *metrics.Manager
}

func NewHandler(
	repo sessionsRepo,
	instantiator sessionInstantiator,
	timers workoutTimer,
	history historyCache,
	metrics *metrics.Manager,
) *Handler {
	return &Handler{
		repo:         repo,
		instantiator: instantiator,
		timers:       timers,
		history:      history,
		metrics:      metrics,
	}
}

func (handler *Handler) HandleStartFromTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.startfromtemplate")
	defer span.End()

	templateID, err := uuid.Parse(mux.Vars(r)["templateId"])
	if err != nil {
		http.Error(w, "error, invalid template id", http.StatusBadRequest)
		return
	}

	session, err := handler.instantiator.StartFromTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, ErrTemplateGone) {
			http.Error(w, "template source unavailable", http.StatusConflict)
			return
		}
		log.Errorf("failed to start session from template %s: %s", templateID, err)
		http.Error(w, "error, failed to start session", http.StatusInternalServerError)
		return
	}

	handler.history.Invalidate()

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to start session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleCreateBlank(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.createblank")
	defer span.End()

	session, err := handler.instantiator.CreateBlank(ctx)
	if err != nil {
		log.Errorf("failed to create blank session: %s", err)
		http.Error(w, "error, failed to create session", http.StatusInternalServerError)
		return
	}

	handler.history.Invalidate()

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to create session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}

	session, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, "failed to marshal session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit < 1 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	sessions, err := handler.repo.ListRecent(ctx, limit)
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListSessionsResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.addexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}

	var req AddSessionExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add session exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	exercise, err := handler.instantiator.AddExercise(ctx, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			http.Error(w, "session not found", http.StatusNotFound)
		case errors.Is(err, ErrSessionFinished):
			http.Error(w, "session already finished", http.StatusConflict)
		default:
			log.Errorf("failed to add exercise to session %s: %s", id, err)
			http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		}
		return
	}

	handler.history.Invalidate()

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal new session exercise: %s", err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.addset")
	defer span.End()

	exerciseID, err := uuid.Parse(mux.Vars(r)["exerciseId"])
	if err != nil {
		http.Error(w, "error, invalid exercise id", http.StatusBadRequest)
		return
	}

	set, err := handler.repo.AddSet(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add set to exercise %s: %s", exerciseID, err)
		http.Error(w, "error, failed to add set", http.StatusInternalServerError)
		return
	}

	handler.history.Invalidate()

	setJson, err := json.Marshal(set)
	if err != nil {
		log.Errorf("failed to marshal new set: %s", err)
		http.Error(w, "error, failed to add set", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, setJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.updateset")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	setID, err := uuid.Parse(mux.Vars(r)["setId"])
	if err != nil {
		http.Error(w, "error, invalid set id", http.StatusBadRequest)
		return
	}

	var req UpdateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update set, unmarshal json params: %s", err)
		http.Error(w, "update set failed", http.StatusBadRequest)
		return
	}
	if req.Reps < 0 || req.Weight < 0 {
		http.Error(w, "error, reps and weight must not be negative", http.StatusBadRequest)
		return
	}

	err = handler.repo.UpdateSet(ctx, &SessionSet{
		ID:         setID,
		Reps:       req.Reps,
		Weight:     req.Weight,
		IsComplete: req.IsComplete,
	})
	if err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update set %s: %s", setID, err)
		http.Error(w, "error, failed to update set", http.StatusInternalServerError)
		return
	}

	handler.history.Invalidate()

	pkg.WriteJSONResponseOK(w, `{"updated":true}`)
}

// HandleFinish stops the workout timer and stamps its final total on the
// session. A session that never ran the timer gets duration 0.
func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.finish")
	defer span.End()

	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}

	durationSeconds, err := handler.timers.StopWorkout(ctx)
	if err != nil {
		// idle timer is fine, the session is finished without one
		if !errors.Is(err, timers.ErrInvalidTransition) {
			log.Errorf("failed to stop workout timer for session %s: %s", id, err)
		}
		durationSeconds = 0
	}

	if err := handler.repo.Complete(ctx, id, durationSeconds); err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			http.Error(w, "session not found", http.StatusNotFound)
		case errors.Is(err, ErrSessionFinished):
			http.Error(w, "session already finished", http.StatusConflict)
		default:
			log.Errorf("failed to finish session %s: %s", id, err)
			http.Error(w, "error, failed to finish session", http.StatusInternalServerError)
		}
		return
	}

	handler.metrics.CounterSessionsCompleted.Inc()
	log.Debugf("session [%s] finished, duration %ds", id, durationSeconds)

	respJson, err := json.Marshal(FinishSessionResponse{
		ID:              id.String(),
		DurationSeconds: durationSeconds,
	})
	if err != nil {
		log.Errorf("failed to marshal finish response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleCancel hard deletes the session and shuts down any timers that
// were running for it.
func (handler *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.cancel")
	defer span.End()

	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to cancel session %s: %s", id, err)
		http.Error(w, "session not canceled", http.StatusInternalServerError)
		return
	}

	if err := handler.timers.StopRest(ctx, true); err != nil && !errors.Is(err, timers.ErrInvalidTransition) {
		log.Errorf("failed to stop rest timer on cancel: %s", err)
	}
	if _, err := handler.timers.StopWorkout(ctx); err != nil && !errors.Is(err, timers.ErrInvalidTransition) {
		log.Errorf("failed to stop workout timer on cancel: %s", err)
	}

	handler.history.Invalidate()
	handler.metrics.CounterSessionsCanceled.Inc()

	deleteRespJson, err := json.Marshal(struct {
		DeletedID string `json:"deletedId"`
	}{DeletedID: id.String()})
	if err != nil {
		log.Errorf("failed to marshal cancel response: %s", err)
		http.Error(w, "failed to marshal cancel response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.progress")
	defer span.End()

	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		http.Error(w, "error, exercise param empty", http.StatusBadRequest)
		return
	}

	points, err := handler.repo.ExerciseProgress(ctx, exercise)
	if err != nil {
		log.Errorf("failed to get progress for [%s]: %s", exercise, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ExerciseProgressResponse{
		Exercise: exercise,
		Points:   points,
	})
	if err != nil {
		log.Errorf("failed to marshal progress: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func pathSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "error, invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
