package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStore interface {
	Create(ctx context.Context, p *domain.Product) error
	FindAll(ctx context.Context) ([]*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	UpdateByCode(ctx context.Context, code string, patch map[string]any) (*domain.Product, error)
	DeleteByCode(ctx context.Context, code string) (*domain.Product, error)
}

// CartInvalidator is told when a product that carts may hold has changed.
type CartInvalidator interface {
	ProductChanged(ctx context.Context, productID primitive.ObjectID)
}

type ProductHandler struct {
	products ProductStore
	carts    CartInvalidator
	timeout  time.Duration
	log      *slog.Logger
}

func NewProductHandler(products ProductStore, carts CartInvalidator, timeout time.Duration, log *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, carts: carts, timeout: timeout, log: log}
}

type ProductRequestDTO struct {
	UserID      string          `json:"userId"`
	ProductName string          `json:"productName"`
	ProductID   string          `json:"productId"`
	ProductType string          `json:"productType"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type ProductResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

func productFromForm(r *http.Request) (ProductRequestDTO, error) {
	req := ProductRequestDTO{
		UserID:      formValue(r, "userId"),
		ProductName: formValue(r, "productName"),
		ProductID:   formValue(r, "productId"),
		ProductType: formValue(r, "productType"),
	}
	if s := formValue(r, "price"); s != "" {
		price, err := decimal.NewFromString(s)
		if err != nil {
			return req, fmt.Errorf("%w: price must be a number", domain.ErrInvalidArgument)
		}
		req.Price = price
	}
	if s := formValue(r, "quantity"); s != "" {
		qty, err := strconv.Atoi(s)
		if err != nil {
			return req, fmt.Errorf("%w: quantity must be an integer", domain.ErrInvalidArgument)
		}
		req.Quantity = qty
	}
	return req, nil
}

// Create accepts multipart/form-data with an optional "image" file, or JSON.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	var image []byte
	if isMultipart(r) {
		err := parseMultipart(r)
		if err == nil {
			req, err = productFromForm(r)
		}
		if err == nil {
			image, err = formFile(r, "image")
		}
		if err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	product := &domain.Product{
		Name:     req.ProductName,
		Code:     req.ProductID,
		Type:     domain.ProductType(req.ProductType),
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    image,
	}
	if req.UserID != "" {
		uid, err := domain.ParseID("userId", req.UserID)
		if err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
		product.UserID = uid
	}
	if err := product.Validate(); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	if err := h.products.Create(ctx, product); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, ProductResponse{Message: "Product created successfully", Product: product})
}

// List returns every product, or with ?productName= the products whose name
// contains it, ignoring case.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var products []*domain.Product
	var err error
	if name := r.URL.Query().Get("productName"); name != "" {
		products, err = h.products.SearchByName(ctx, name)
	} else {
		products, err = h.products.FindAll(ctx)
	}
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.FindByCode(ctx, chi.URLParam(r, "productId"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	patch, err := decodePatch(r)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	product, err := h.products.UpdateByCode(ctx, chi.URLParam(r, "productId"), patch)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	h.carts.ProductChanged(ctx, product.ID)
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.DeleteByCode(ctx, chi.URLParam(r, "productId"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	h.carts.ProductChanged(ctx, product.ID)
	respondJSON(w, http.StatusOK, ProductResponse{Message: "Product deleted successfully", Product: product})
}
