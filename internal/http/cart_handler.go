package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartManager interface {
	AddItem(ctx context.Context, productID, userID string, qty int) (*domain.CartItem, error)
	ListItems(ctx context.Context, userID string) ([]*domain.CartItemView, error)
	AdjustQuantity(ctx context.Context, cartItemID, direction string) (*domain.Adjustment, error)
	RemoveItem(ctx context.Context, cartItemID string) (*domain.CartItem, error)
}

type CartHandler struct {
	cart    CartManager
	timeout time.Duration
	log     *slog.Logger
}

func NewCartHandler(cart CartManager, timeout time.Duration, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
		log:     log,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId"`
	UserID    string `json:"user_id"`
	Quantity  int    `json:"qty"`
}

type CartItemsResponse struct {
	CartItems []*domain.CartItemView `json:"cartItems"`
}

type CartItemResponse struct {
	CartItem *domain.CartItem `json:"cartItem"`
}

type DeletedCartItemResponse struct {
	DeletedCartItem *domain.CartItem `json:"deletedCartItem"`
}

type CartItemRemovedResponse struct {
	Message    string `json:"message"`
	Removed    bool   `json:"removed"`
	CartItemID string `json:"cartItemId"`
}

func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.cart.ListItems(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, CartItemsResponse{CartItems: items})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	item, err := h.cart.AddItem(ctx, req.ProductID, req.UserID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, CartItemResponse{CartItem: item})
}

// AdjustQuantity handles PUT /cart/{cartItemId}?action=increment|decrement.
func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "cartItemId")
	adj, err := h.cart.AdjustQuantity(ctx, id, r.URL.Query().Get("action"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	if adj.Removed {
		respondJSON(w, http.StatusOK, CartItemRemovedResponse{
			Message:    "quantity reached zero, item removed from cart",
			Removed:    true,
			CartItemID: id,
		})
		return
	}
	respondJSON(w, http.StatusOK, CartItemResponse{CartItem: adj.Item})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	item, err := h.cart.RemoveItem(ctx, chi.URLParam(r, "cartItemId"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, DeletedCartItemResponse{DeletedCartItem: item})
}
