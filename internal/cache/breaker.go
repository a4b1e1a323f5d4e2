package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerCache guards a CartCache with a circuit breaker. While the breaker
// is open, calls fail fast instead of waiting on an unreachable Redis.
type BreakerCache struct {
	next CartCache
	cb   *gobreaker.CircuitBreaker[[]*domain.CartItemView]
}

func NewBreakerCache(next CartCache, log *slog.Logger) *BreakerCache {
	settings := gobreaker.Settings{
		Name:        "cart-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a miss or a refused stale write is a healthy answer
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCacheMiss) || errors.Is(err, ErrStaleGeneration)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerCache{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]*domain.CartItemView](settings),
	}
}

func (b *BreakerCache) Get(ctx context.Context, userID string) ([]*domain.CartItemView, error) {
	return b.cb.Execute(func() ([]*domain.CartItemView, error) {
		return b.next.Get(ctx, userID)
	})
}

func (b *BreakerCache) Generation(ctx context.Context, userID string) (int64, error) {
	var gen int64
	_, err := b.cb.Execute(func() ([]*domain.CartItemView, error) {
		var err error
		gen, err = b.next.Generation(ctx, userID)
		return nil, err
	})
	return gen, err
}

func (b *BreakerCache) Set(ctx context.Context, userID string, gen int64, items []*domain.CartItemView) error {
	_, err := b.cb.Execute(func() ([]*domain.CartItemView, error) {
		return nil, b.next.Set(ctx, userID, gen, items)
	})
	return err
}

// Delete bypasses the breaker: an invalidation skipped while the breaker is
// open would leave a stale cart once Redis is reachable again.
func (b *BreakerCache) Delete(ctx context.Context, userID string) error {
	return b.next.Delete(ctx, userID)
}

func (b *BreakerCache) State() gobreaker.State {
	return b.cb.State()
}
