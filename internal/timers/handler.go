package timers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"
)

type StartRestRequest struct {
	DurationSeconds int `json:"durationSeconds"`
}

type StopRestRequest struct {
	Manual bool `json:"manual"`
}

type BeginWarmupsRequest struct {
	Steps []WarmupStep `json:"steps"`
}

type StopWorkoutResponse struct {
	DurationSeconds int `json:"durationSeconds"`
}

type Handler struct {
	coordinator *Coordinator
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{
		coordinator: coordinator,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/timers/state", handler.handleState).Methods("GET").Name("timers-state")
	router.HandleFunc("/timers/events", handler.handleEvents).Methods("GET").Name("timers-events")
	router.HandleFunc("/timers/workout/start", handler.handleWorkoutStart).Methods("POST", "OPTIONS").Name("workout-start")
	router.HandleFunc("/timers/workout/pause", handler.handleWorkoutPause).Methods("POST", "OPTIONS").Name("workout-pause")
	router.HandleFunc("/timers/workout/resume", handler.handleWorkoutResume).Methods("POST", "OPTIONS").Name("workout-resume")
	router.HandleFunc("/timers/workout/stop", handler.handleWorkoutStop).Methods("POST", "OPTIONS").Name("workout-stop")
	router.HandleFunc("/timers/rest/start", handler.handleRestStart).Methods("POST", "OPTIONS").Name("rest-start")
	router.HandleFunc("/timers/rest/stop", handler.handleRestStop).Methods("POST", "OPTIONS").Name("rest-stop")
	router.HandleFunc("/timers/warmups/begin", handler.handleWarmupsBegin).Methods("POST", "OPTIONS").Name("warmups-begin")
	router.HandleFunc("/timers/warmups/start", handler.handleWarmupStart).Methods("POST", "OPTIONS").Name("warmup-start")
	router.HandleFunc("/timers/warmups/advance", handler.handleWarmupAdvance).Methods("POST", "OPTIONS").Name("warmup-advance")
	router.HandleFunc("/timers/warmups/cancel", handler.handleWarmupsCancel).Methods("POST", "OPTIONS").Name("warmups-cancel")
}

func (handler *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.state")
	defer span.End()

	handler.writeState(w, handler.coordinator.State(ctx))
}

// handleEvents streams timer events as newline delimited JSON until the
// client goes away.
func (handler *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id, events := handler.coordinator.Events().Subscribe()
	defer handler.coordinator.Events().Unsubscribe(id)

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	encoder := json.NewEncoder(w)
	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := encoder.Encode(event); err != nil {
				log.Debugf("timer event stream closed: %s", err)
				return
			}
			flusher.Flush()
		}
	}
}

func (handler *Handler) handleWorkoutStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.workoutstart")
	defer span.End()

	if err := handler.coordinator.StartWorkout(ctx); err != nil {
		handler.writeTransitionErr(w, "start workout timer", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWorkoutPause(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.workoutpause")
	defer span.End()

	if err := handler.coordinator.PauseWorkout(ctx); err != nil {
		handler.writeTransitionErr(w, "pause workout timer", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWorkoutResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.workoutresume")
	defer span.End()

	if err := handler.coordinator.ResumeWorkout(ctx); err != nil {
		handler.writeTransitionErr(w, "resume workout timer", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWorkoutStop(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.workoutstop")
	defer span.End()

	durationSeconds, err := handler.coordinator.StopWorkout(ctx)
	if err != nil {
		handler.writeTransitionErr(w, "stop workout timer", err)
		return
	}

	respJson, err := json.Marshal(StopWorkoutResponse{DurationSeconds: durationSeconds})
	if err != nil {
		log.Errorf("failed to marshal stop workout response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) handleRestStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.reststart")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req StartRestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("start rest timer, unmarshal json params: %s", err)
		http.Error(w, "start rest timer failed", http.StatusBadRequest)
		return
	}

	if err := handler.coordinator.StartRest(ctx, req.DurationSeconds); err != nil {
		if errors.Is(err, ErrInvalidDuration) {
			http.Error(w, "error, rest duration must be positive", http.StatusBadRequest)
			return
		}
		handler.writeTransitionErr(w, "start rest timer", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleRestStop(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.reststop")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req StopRestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("stop rest timer, unmarshal json params: %s", err)
		http.Error(w, "stop rest timer failed", http.StatusBadRequest)
		return
	}

	if err := handler.coordinator.StopRest(ctx, req.Manual); err != nil {
		handler.writeTransitionErr(w, "stop rest timer", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWarmupsBegin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.warmupsbegin")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req BeginWarmupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("begin warmups, unmarshal json params: %s", err)
		http.Error(w, "begin warmups failed", http.StatusBadRequest)
		return
	}

	handler.coordinator.BeginWarmups(req.Steps)
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWarmupStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.warmupstart")
	defer span.End()

	if err := handler.coordinator.StartCurrentWarmup(); err != nil {
		handler.writeTransitionErr(w, "start warmup", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWarmupAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.warmupadvance")
	defer span.End()

	if err := handler.coordinator.AdvanceWarmup(); err != nil {
		handler.writeTransitionErr(w, "advance warmup", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) handleWarmupsCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.timers.warmupscancel")
	defer span.End()

	if err := handler.coordinator.CancelWarmups(); err != nil {
		handler.writeTransitionErr(w, "cancel warmups", err)
		return
	}
	handler.writeState(w, handler.coordinator.State(ctx))
}

func (handler *Handler) writeState(w http.ResponseWriter, state State) {
	stateJson, err := json.Marshal(state)
	if err != nil {
		log.Errorf("failed to marshal timer state: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, stateJson, http.StatusOK)
}

func (handler *Handler) writeTransitionErr(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrInvalidTransition) {
		http.Error(w, "error, invalid timer transition", http.StatusConflict)
		return
	}
	log.Errorf("failed to %s: %s", op, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
