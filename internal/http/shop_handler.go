package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShopStore interface {
	Create(ctx context.Context, s *domain.Shop) error
	FindAll(ctx context.Context) ([]*domain.Shop, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Shop, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.Shop, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Shop, error)
}

type ShopHandler struct {
	shops   ShopStore
	timeout time.Duration
	log     *slog.Logger
}

func NewShopHandler(shops ShopStore, timeout time.Duration, log *slog.Logger) *ShopHandler {
	return &ShopHandler{shops: shops, timeout: timeout, log: log}
}

type ShopRequestDTO struct {
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	OwnerName string   `json:"ownerName"`
	Items     []string `json:"items"`
}

type ShopResponse struct {
	Message string       `json:"message"`
	Shop    *domain.Shop `json:"shop"`
}

// Create accepts multipart/form-data, where "items" is a JSON array of
// product ids and "image" an optional file, or JSON.
func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ShopRequestDTO
	var image []byte
	if isMultipart(r) {
		if err := parseMultipart(r); err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
		req = ShopRequestDTO{
			Title:     formValue(r, "title"),
			Location:  formValue(r, "location"),
			OwnerName: formValue(r, "ownerName"),
		}
		if raw := formValue(r, "items"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Items); err != nil {
				respondServiceError(w, r, h.log, fmt.Errorf("%w: items must be a JSON array of ids", domain.ErrInvalidArgument))
				return
			}
		}
		var err error
		if image, err = formFile(r, "image"); err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	items := make([]primitive.ObjectID, 0, len(req.Items))
	for _, raw := range req.Items {
		id, err := domain.ParseID("items", raw)
		if err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
		items = append(items, id)
	}

	shop := &domain.Shop{
		Title:     req.Title,
		Location:  req.Location,
		OwnerName: req.OwnerName,
		Items:     items,
		Image:     image,
	}
	if err := shop.Validate(); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	if err := h.shops.Create(ctx, shop); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, ShopResponse{Message: "Shop created successfully", Shop: shop})
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shops, err := h.shops.FindAll(ctx)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, shops)
}

func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	shop, err := h.shops.FindByID(ctx, id)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	shop, err := h.shops.UpdateByID(ctx, id, patch)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	if _, err := h.shops.DeleteByID(ctx, id); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Shop deleted successfully"})
}
