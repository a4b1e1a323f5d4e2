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

type BlogStore interface {
	Create(ctx context.Context, b *domain.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error)
	SearchByTitle(ctx context.Context, title string) ([]*domain.Blog, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.Blog, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error)
}

type BlogQueries interface {
	List(ctx context.Context) ([]*domain.BlogView, error)
	ByUsername(ctx context.Context, username string) ([]*domain.Blog, error)
	ByCategory(ctx context.Context, category string) ([]*domain.Blog, error)
}

type BlogHandler struct {
	blogs   BlogStore
	queries BlogQueries
	timeout time.Duration
	log     *slog.Logger
}

func NewBlogHandler(blogs BlogStore, queries BlogQueries, timeout time.Duration, log *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, queries: queries, timeout: timeout, log: log}
}

type BlogRequestDTO struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	UserID   string `json:"userId"`
	Category string `json:"category"`
}

// Create accepts multipart/form-data with up to five "images" files, or JSON
// without images.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req BlogRequestDTO
	images := [][]byte{}
	if isMultipart(r) {
		if err := parseMultipart(r); err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
		req = BlogRequestDTO{
			Title:    formValue(r, "title"),
			Content:  formValue(r, "content"),
			UserID:   formValue(r, "userId"),
			Category: formValue(r, "category"),
		}
		var err error
		if images, err = formFiles(r, "images", domain.MaxBlogImages); err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	blog := &domain.Blog{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Images:    images,
		CreatedAt: now(),
	}
	if req.UserID != "" {
		uid, err := domain.ParseID("userId", req.UserID)
		if err != nil {
			respondServiceError(w, r, h.log, err)
			return
		}
		blog.UserID = uid
	}
	if err := blog.Validate(); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}

	if err := h.blogs.Create(ctx, blog); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	blogs, err := h.queries.List(ctx)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	blog, err := h.blogs.FindByID(ctx, id)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	blogs, err := h.blogs.SearchByTitle(ctx, chi.URLParam(r, "title"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) ByUsername(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	blogs, err := h.queries.ByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	blogs, err := h.queries.ByCategory(ctx, chi.URLParam(r, "category"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	blog, err := h.blogs.UpdateByID(ctx, id, patch)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := domain.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	if _, err := h.blogs.DeleteByID(ctx, id); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Blog deleted"})
}
