package cache

import (
	"context"
	"errors"

	"github.com/fjod/agromarket/internal/domain"
)

// CartCache stores the resolved cart listing of a user. It is never the
// source of truth; every cart mutation deletes the user's entry.
//
// Each user has a generation that Delete advances. A reader takes the
// generation before loading from the store and passes it to Set, which
// refuses to store when an invalidation happened in between.
type CartCache interface {
	Get(ctx context.Context, userID string) ([]*domain.CartItemView, error)
	Generation(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, gen int64, items []*domain.CartItemView) error
	Delete(ctx context.Context, userID string) error
}

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleGeneration is returned by Set when the user's cart was
	// invalidated after the caller read its generation.
	ErrStaleGeneration = errors.New("cache generation changed")
)
