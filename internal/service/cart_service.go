package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/agromarket/internal/cache"
	"github.com/fjod/agromarket/internal/domain"
	"github.com/fjod/agromarket/internal/publisher"
	"github.com/fjod/agromarket/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

// decrementAttempts bounds the retries when a concurrent increment lands
// between the guarded decrement and the guarded delete.
const decrementAttempts = 3

// listLoadTimeout bounds a cart load shared by collapsed ListItems calls.
const listLoadTimeout = 10 * time.Second

type ProductLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.User, error)
}

// CartService owns every cart state transition. No path through it leaves
// a cart item persisted with a quantity below one.
type CartService struct {
	repo     repository.CartRepository
	products ProductLookup
	users    UserLookup
	cache    cache.CartCache
	events   publisher.Publisher // called inline; wrap slow transports in publisher.AsyncPublisher
	log      *slog.Logger
	sfg      singleflight.Group // collapses concurrent cache misses per user
}

func NewCartService(
	repo repository.CartRepository,
	products ProductLookup,
	users UserLookup,
	cache cache.CartCache,
	events publisher.Publisher,
	log *slog.Logger,
) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		users:    users,
		cache:    cache,
		events:   events,
		log:      log.With("component", "cart"),
	}
}

// AddItem merges qty into the user's item for the product, creating it on
// first add. Product and user must exist; nothing is written otherwise.
func (s *CartService) AddItem(ctx context.Context, productID, userID string, qty int) (*domain.CartItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be a positive integer", domain.ErrInvalidArgument)
	}
	pid, err := domain.ParseID("productId", productID)
	if err != nil {
		return nil, err
	}
	uid, err := domain.ParseID("user_id", userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, pid); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, uid); err != nil {
		return nil, err
	}

	item, err := s.repo.AddQuantity(ctx, uid, pid, qty)
	if err != nil {
		s.log.ErrorContext(ctx, "add cart item failed", "user_id", userID, "product_id", productID, "error", err)
		return nil, err
	}

	s.committed(ctx, publisher.ItemAdded, item, item.Quantity)
	return item, nil
}

// ListItems returns the user's cart with products and product owners
// resolved. A user without items gets an empty list.
func (s *CartService) ListItems(ctx context.Context, userID string) ([]*domain.CartItemView, error) {
	uid, err := domain.ParseID("userId", userID)
	if err != nil {
		return nil, err
	}
	key := uid.Hex()

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := s.sfg.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listLoadTimeout)
		defer cancel()
		return s.load(loadCtx, uid)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*domain.CartItemView), nil
	}
}

// load reads through the cache. The generation is taken before the store
// read so a write committed in between keeps the result out of the cache.
func (s *CartService) load(ctx context.Context, uid primitive.ObjectID) ([]*domain.CartItemView, error) {
	key := uid.Hex()
	views, err := s.cache.Get(ctx, key)
	if err == nil {
		return views, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "cart cache get failed", "user_id", key, "error", err)
	}

	gen, genErr := s.cache.Generation(ctx, key)
	if genErr != nil {
		s.log.WarnContext(ctx, "cart cache generation failed", "user_id", key, "error", genErr)
	}

	items, err := s.repo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	views, err = s.resolve(ctx, items)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		err := s.cache.Set(ctx, key, gen, views)
		switch {
		case errors.Is(err, cache.ErrStaleGeneration):
			s.log.DebugContext(ctx, "cart changed during load, not cached", "user_id", key)
		case err != nil:
			s.log.WarnContext(ctx, "cart cache set failed", "user_id", key, "error", err)
		}
	}
	return views, nil
}

// resolve replaces the product reference of every item with the product
// and the product's owner, in two batched lookups.
func (s *CartService) resolve(ctx context.Context, items []*domain.CartItem) ([]*domain.CartItemView, error) {
	productIDs := make([]primitive.ObjectID, 0, len(items))
	seen := make(map[primitive.ObjectID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}
	productsByID := make(map[primitive.ObjectID]*domain.Product, len(products))
	ownerIDs := make([]primitive.ObjectID, 0, len(products))
	owners := make(map[primitive.ObjectID]*domain.User, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
		if _, ok := owners[p.UserID]; !ok && !p.UserID.IsZero() {
			owners[p.UserID] = nil
			ownerIDs = append(ownerIDs, p.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product owners: %w", err)
	}
	for _, u := range users {
		u.Password = ""
		owners[u.ID] = u
	}

	views := make([]*domain.CartItemView, 0, len(items))
	for _, item := range items {
		view := &domain.CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			UserID:    item.UserID,
			Quantity:  item.Quantity,
		}
		if p, ok := productsByID[item.ProductID]; ok {
			view.Product = &domain.ProductView{Product: *p, Owner: owners[p.UserID]}
		}
		views = append(views, view)
	}
	return views, nil
}

// AdjustQuantity moves an item's quantity by one. A decrement from one
// deletes the item and reports Removed.
func (s *CartService) AdjustQuantity(ctx context.Context, cartItemID, direction string) (*domain.Adjustment, error) {
	id, err := domain.ParseID("cartItemId", cartItemID)
	if err != nil {
		return nil, err
	}
	dir, ok := domain.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: action must be increment or decrement", domain.ErrInvalidArgument)
	}

	if dir == domain.Increment {
		item, err := s.repo.Increment(ctx, id)
		if err != nil {
			return nil, err
		}
		s.committed(ctx, publisher.ItemIncremented, item, item.Quantity)
		return &domain.Adjustment{Item: item}, nil
	}
	return s.decrement(ctx, id)
}

func (s *CartService) decrement(ctx context.Context, id primitive.ObjectID) (*domain.Adjustment, error) {
	for attempt := 0; attempt < decrementAttempts; attempt++ {
		item, err := s.repo.DecrementAbove(ctx, id, 1)
		if err == nil {
			s.committed(ctx, publisher.ItemDecremented, item, item.Quantity)
			return &domain.Adjustment{Item: item}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		removed, err := s.repo.DeleteAtOrBelow(ctx, id, 1)
		if err == nil {
			s.committed(ctx, publisher.ItemRemoved, removed, 0)
			return &domain.Adjustment{Item: removed, Removed: true}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		// Neither guard matched: the item is gone, or an increment moved
		// it above one between the two writes.
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("cart item %s kept changing during decrement", id.Hex())
}

// RemoveItem deletes the item regardless of its quantity.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID string) (*domain.CartItem, error) {
	id, err := domain.ParseID("cartItemId", cartItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.committed(ctx, publisher.ItemRemoved, item, 0)
	return item, nil
}

// ProductChanged drops the cached cart of every user holding the product,
// so a new price or a deletion shows on their next ListItems. Failures are
// logged only.
func (s *CartService) ProductChanged(ctx context.Context, productID primitive.ObjectID) {
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	users, err := s.repo.UsersWithProduct(sideCtx, productID)
	if err != nil {
		s.log.WarnContext(ctx, "list carts holding product failed", "product_id", productID.Hex(), "error", err)
		return
	}
	for _, uid := range users {
		if err := s.cache.Delete(sideCtx, uid.Hex()); err != nil {
			s.log.WarnContext(ctx, "cart cache invalidate failed", "user_id", uid.Hex(), "error", err)
		}
	}
}

// committed runs the side effects of a successful write. Their failures
// are logged only: the store already holds the new state.
func (s *CartService) committed(ctx context.Context, typ publisher.EventType, item *domain.CartItem, qty int) {
	userID := item.UserID.Hex()
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()

	if err := s.cache.Delete(sideCtx, userID); err != nil {
		s.log.WarnContext(ctx, "cart cache invalidate failed", "user_id", userID, "error", err)
	}

	event := publisher.CartEvent{
		Type:       typ,
		CartItemID: item.ID.Hex(),
		UserID:     userID,
		ProductID:  item.ProductID.Hex(),
		Quantity:   qty,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(sideCtx, event); err != nil {
		s.log.WarnContext(ctx, "cart event publish failed", "event_type", string(event.Type), "cart_item_id", event.CartItemID, "error", err)
	}
}
