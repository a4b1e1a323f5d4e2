package service

import (
	"context"
	"fmt"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BlogStore interface {
	FindAll(ctx context.Context) ([]*domain.Blog, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Blog, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Blog, error)
	FindOutsideCategories(ctx context.Context, excluded []string) ([]*domain.Blog, error)
}

type AuthorLookup interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.User, error)
}

// BlogService serves the blog views that need more than one lookup.
type BlogService struct {
	blogs BlogStore
	users AuthorLookup
}

func NewBlogService(blogs BlogStore, users AuthorLookup) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

// List returns every blog with its author reduced to id and username.
func (s *BlogService) List(ctx context.Context) ([]*domain.BlogView, error) {
	blogs, err := s.blogs.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(blogs))
	seen := make(map[primitive.ObjectID]bool, len(blogs))
	for _, b := range blogs {
		if !b.UserID.IsZero() && !seen[b.UserID] {
			seen[b.UserID] = true
			ids = append(ids, b.UserID)
		}
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve blog authors: %w", err)
	}
	byID := make(map[primitive.ObjectID]*domain.UserRef, len(authors))
	for _, a := range authors {
		byID[a.ID] = &domain.UserRef{ID: a.ID, Username: a.Username}
	}

	views := make([]*domain.BlogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, &domain.BlogView{Blog: *b, Author: byID[b.UserID]})
	}
	return views, nil
}

// ByUsername fails with ErrNotFound when the user does not exist and
// returns an empty list when the user has not written anything.
func (s *BlogService) ByUsername(ctx context.Context, username string) ([]*domain.Blog, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.blogs.FindByUser(ctx, u.ID)
}

// ByCategory treats domain.OtherCategory as every category outside the
// main set.
func (s *BlogService) ByCategory(ctx context.Context, category string) ([]*domain.Blog, error) {
	if category == domain.OtherCategory {
		return s.blogs.FindOutsideCategories(ctx, domain.MainBlogCategories)
	}
	return s.blogs.FindByCategory(ctx, category)
}
