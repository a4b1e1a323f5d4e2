package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingStore interface {
	Create(ctx context.Context, t *domain.Training) error
	FindAll(ctx context.Context) ([]*domain.Training, error)
	FindByName(ctx context.Context, name string) (*domain.Training, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.Training, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error)
}

type TrainingHandler struct {
	trainings TrainingStore
	timeout   time.Duration
	log       *slog.Logger
}

func NewTrainingHandler(trainings TrainingStore, timeout time.Duration, log *slog.Logger) *TrainingHandler {
	return &TrainingHandler{trainings: trainings, timeout: timeout, log: log}
}

func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var training domain.Training
	if err := decodeJSON(r, &training); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	training.ID = primitive.NilObjectID
	if err := training.Validate(); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	if err := h.trainings.Create(ctx, &training); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, training)
}

func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	trainings, err := h.trainings.FindAll(ctx)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, trainings)
}

func (h *TrainingHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	training, err := h.trainings.FindByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, training)
}

func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	patch, err := decodePatch(r)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	training, err := h.trainings.UpdateByID(ctx, id, patch)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, training)
}

func (h *TrainingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	if _, err := h.trainings.DeleteByID(ctx, id); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Training deleted successfully"})
}
