package templates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=templates_test

type templatesRepo interface {
	Create(ctx context.Context, template Template) (*Template, error)
	Get(ctx context.Context, id uuid.UUID) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	UpdateExercise(ctx context.Context, exercise *Exercise) error
	RemoveExercise(ctx context.Context, templateID, exerciseID uuid.UUID) error
	MoveExercise(ctx context.Context, templateID uuid.UUID, from, to int) error
	WarmupSteps(ctx context.Context, templateID uuid.UUID) ([]WarmupStep, error)
	SetWarmupSteps(ctx context.Context, templateID uuid.UUID, steps []WarmupStep) error
	DeleteWarmupStep(ctx context.Context, templateID uuid.UUID, index int) error
}

type CreateTemplateRequest struct {
	Name string `json:"name"`
}

type RenameTemplateRequest struct {
	Name string `json:"name"`
}

type AddExerciseRequest struct {
	Name           string `json:"name"`
	TargetSetCount int    `json:"targetSetCount"`
}

type UpdateExerciseRequest struct {
	Name           string `json:"name"`
	TargetSetCount int    `json:"targetSetCount"`
}

type MoveExerciseRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type DeletedResponse struct {
	DeletedID string `json:"deletedId"`
}

type ListTemplatesResponse struct {
	Templates []Template `json:"templates"`
	Total     int        `json:"total"`
}

type WarmupStepsResponse struct {
	Steps []WarmupStep `json:"steps"`
}

type Handler struct {
	repo templatesRepo
}

func NewHandler(repo templatesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new template, unmarshal json params: %s", err)
		http.Error(w, "create template failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, template name empty", http.StatusBadRequest)
		return
	}

	template, err := handler.repo.Create(ctx, Template{
		Name:      req.Name,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Errorf("failed to create template [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to create template", http.StatusInternalServerError)
		return
	}

	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("failed to marshal new template: %s", err)
		http.Error(w, "error, failed to create template", http.StatusInternalServerError)
		return
	}

	log.Debugf("new template created: %s", template.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templateJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	templates, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list templates error: %s", err)
		http.Error(w, "failed to get templates", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListTemplatesResponse{
		Templates: templates,
		Total:     len(templates),
	})
	if err != nil {
		log.Errorf("marshal templates error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.get")
	defer span.End()

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	template, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get template %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("failed to marshal template: %s", err)
		http.Error(w, "failed to marshal template", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templateJson, http.StatusOK)
}

func (handler *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.rename")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	var req RenameTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("rename template, unmarshal json params: %s", err)
		http.Error(w, "rename template failed", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "error, template name empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Rename(ctx, id, req.Name); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to rename template %s: %s", id, err)
		http.Error(w, "error, failed to rename template", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"renamed":true}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.delete")
	defer span.End()

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			log.Debugf("template %s not found", id)
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete template %s: %s", id, err)
		http.Error(w, "template not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedResponse{DeletedID: id.String()})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.addexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add template exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}
	if req.TargetSetCount < 1 {
		http.Error(w, "error, target set count must be positive", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.AddExercise(ctx, Exercise{
		TemplateID:     id,
		Name:           req.Name,
		TargetSetCount: req.TargetSetCount,
	})
	if err != nil {
		log.Errorf("failed to add exercise to template %s: %s", id, err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.updateexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	templateID, ok := pathTemplateID(w, r)
	if !ok {
		return
	}
	exerciseID, err := uuid.Parse(mux.Vars(r)["exerciseId"])
	if err != nil {
		http.Error(w, "error, invalid exercise id", http.StatusBadRequest)
		return
	}

	var req UpdateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update template exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}
	if req.TargetSetCount < 1 {
		http.Error(w, "error, target set count must be positive", http.StatusBadRequest)
		return
	}

	err = handler.repo.UpdateExercise(ctx, &Exercise{
		ID:             exerciseID,
		TemplateID:     templateID,
		Name:           req.Name,
		TargetSetCount: req.TargetSetCount,
	})
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update exercise %s: %s", exerciseID, err)
		http.Error(w, "error, failed to update exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"updated":true}`)
}

func (handler *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.removeexercise")
	defer span.End()

	templateID, ok := pathTemplateID(w, r)
	if !ok {
		return
	}
	exerciseID, err := uuid.Parse(mux.Vars(r)["exerciseId"])
	if err != nil {
		http.Error(w, "error, invalid exercise id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.RemoveExercise(ctx, templateID, exerciseID); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to remove exercise %s: %s", exerciseID, err)
		http.Error(w, "exercise not removed", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletedResponse{DeletedID: exerciseID.String()})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleMoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.moveexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	var req MoveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("move template exercise, unmarshal json params: %s", err)
		http.Error(w, "move exercise failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.MoveExercise(ctx, id, req.From, req.To); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to move exercise in template %s: %s", id, err)
		http.Error(w, "error, failed to move exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"moved":true}`)
}

func (handler *Handler) HandleGetWarmups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.warmups")
	defer span.End()

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	steps, err := handler.repo.WarmupSteps(ctx, id)
	if err != nil {
		log.Errorf("failed to get warmup steps for template %s: %s", id, err)
		http.Error(w, "failed to get warmup steps", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(WarmupStepsResponse{Steps: steps})
	if err != nil {
		log.Errorf("failed to marshal warmup steps: %s", err)
		http.Error(w, "failed to marshal warmup steps", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleSetWarmups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.setwarmups")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	var req WarmupStepsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set warmup steps, unmarshal json params: %s", err)
		http.Error(w, "set warmup steps failed", http.StatusBadRequest)
		return
	}

	for _, step := range req.Steps {
		if step.Name == "" {
			http.Error(w, "error, warmup step name empty", http.StatusBadRequest)
			return
		}
	}

	if err := handler.repo.SetWarmupSteps(ctx, id, req.Steps); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to set warmup steps for template %s: %s", id, err)
		http.Error(w, "error, failed to set warmup steps", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"saved":true}`)
}

func (handler *Handler) HandleDeleteWarmup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.deletewarmup")
	defer span.End()

	id, ok := pathTemplateID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteWarmupStep(ctx, id, index); err != nil {
		if errors.Is(err, ErrWarmupStepNotFound) {
			http.Error(w, "warmup step not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete warmup step %d of template %s: %s", index, id, err)
		http.Error(w, "warmup step not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"deleted":true}`)
}

func pathTemplateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
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
