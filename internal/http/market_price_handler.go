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

type MarketPriceStore interface {
	Create(ctx context.Context, m *domain.MarketPrice) error
	FindAll(ctx context.Context) ([]*domain.MarketPrice, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MarketPrice, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.MarketPrice, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.MarketPrice, error)
}

type MarketPriceHandler struct {
	prices  MarketPriceStore
	timeout time.Duration
	log     *slog.Logger
}

func NewMarketPriceHandler(prices MarketPriceStore, timeout time.Duration, log *slog.Logger) *MarketPriceHandler {
	return &MarketPriceHandler{prices: prices, timeout: timeout, log: log}
}

func (h *MarketPriceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var price domain.MarketPrice
	if err := decodeJSON(r, &price); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	price.ID = primitive.NilObjectID
	if err := price.Validate(); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	if err := h.prices.Create(ctx, &price); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, price)
}

func (h *MarketPriceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	prices, err := h.prices.FindAll(ctx)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

func (h *MarketPriceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	price, err := h.prices.FindByID(ctx, id)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, price)
}

func (h *MarketPriceHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	price, err := h.prices.UpdateByID(ctx, id, patch)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, price)
}

func (h *MarketPriceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	if _, err := h.prices.DeleteByID(ctx, id); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "MarketPrice deleted successfully"})
}
