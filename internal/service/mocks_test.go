package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/fjod/agromarket/internal/cache"
	"github.com/fjod/agromarket/internal/domain"
	"github.com/fjod/agromarket/internal/publisher"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryCartRepository keeps cart items in a map and applies the same
// guards as the Mongo repository.
type memoryCartRepository struct {
	m     sync.Mutex
	items map[primitive.ObjectID]*domain.CartItem
	err   error
	calls int

	// beforeDelete runs between a failed guarded decrement and the
	// guarded delete, to simulate a concurrent writer.
	beforeDelete func()
	// afterFindByUser runs once FindByUser has read the items, to land a
	// write between a cart load and its cache fill.
	afterFindByUser func()
}

func newMemoryCartRepository() *memoryCartRepository {
	return &memoryCartRepository{items: map[primitive.ObjectID]*domain.CartItem{}}
}

func (r *memoryCartRepository) put(item *domain.CartItem) {
	r.m.Lock()
	defer r.m.Unlock()
	cp := *item
	r.items[item.ID] = &cp
}

func (r *memoryCartRepository) get(id primitive.ObjectID) (*domain.CartItem, bool) {
	r.m.Lock()
	defer r.m.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, false
	}
	cp := *item
	return &cp, true
}

func (r *memoryCartRepository) writes() int {
	r.m.Lock()
	defer r.m.Unlock()
	return r.calls
}

func notFound() error {
	return fmt.Errorf("cart item %w", domain.ErrNotFound)
}

func (r *memoryCartRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.CartItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	item, ok := r.get(id)
	if !ok {
		return nil, notFound()
	}
	return item, nil
}

func (r *memoryCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.CartItem, error) {
	r.m.Lock()
	if r.err != nil {
		r.m.Unlock()
		return nil, r.err
	}
	items := []*domain.CartItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			cp := *item
			items = append(items, &cp)
		}
	}
	hook := r.afterFindByUser
	r.afterFindByUser = nil
	r.m.Unlock()

	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *memoryCartRepository) AddQuantity(_ context.Context, userID, productID primitive.ObjectID, qty int) (*domain.CartItem, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.calls++
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += qty
			cp := *item
			return &cp, nil
		}
	}
	item := &domain.CartItem{ID: primitive.NewObjectID(), UserID: userID, ProductID: productID, Quantity: qty}
	r.items[item.ID] = item
	cp := *item
	return &cp, nil
}

func (r *memoryCartRepository) Increment(_ context.Context, id primitive.ObjectID) (*domain.CartItem, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.calls++
	item, ok := r.items[id]
	if !ok {
		return nil, notFound()
	}
	item.Quantity++
	cp := *item
	return &cp, nil
}

func (r *memoryCartRepository) DecrementAbove(_ context.Context, id primitive.ObjectID, floor int) (*domain.CartItem, error) {
	r.m.Lock()
	if r.err != nil {
		r.m.Unlock()
		return nil, r.err
	}
	r.calls++
	item, ok := r.items[id]
	if !ok || item.Quantity <= floor {
		hook := r.beforeDelete
		r.m.Unlock()
		if hook != nil {
			hook()
		}
		return nil, notFound()
	}
	item.Quantity--
	cp := *item
	r.m.Unlock()
	return &cp, nil
}

func (r *memoryCartRepository) DeleteAtOrBelow(_ context.Context, id primitive.ObjectID, ceiling int) (*domain.CartItem, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.calls++
	item, ok := r.items[id]
	if !ok || item.Quantity > ceiling {
		return nil, notFound()
	}
	delete(r.items, id)
	return item, nil
}

func (r *memoryCartRepository) Delete(_ context.Context, id primitive.ObjectID) (*domain.CartItem, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.calls++
	item, ok := r.items[id]
	if !ok {
		return nil, notFound()
	}
	delete(r.items, id)
	return item, nil
}

func (r *memoryCartRepository) UsersWithProduct(_ context.Context, productID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	seen := map[primitive.ObjectID]bool{}
	users := []primitive.ObjectID{}
	for _, item := range r.items {
		if item.ProductID == productID && !seen[item.UserID] {
			seen[item.UserID] = true
			users = append(users, item.UserID)
		}
	}
	return users, nil
}

type mockProducts struct {
	products map[primitive.ObjectID]*domain.Product
	err      error
}

func (m *mockProducts) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %w", domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *mockProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	found := []*domain.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			cp := *p
			found = append(found, &cp)
		}
	}
	return found, nil
}

type mockUsers struct {
	users map[primitive.ObjectID]*domain.User
	err   error
}

func (m *mockUsers) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	found := []*domain.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			cp := *u
			found = append(found, &cp)
		}
	}
	return found, nil
}

type mockCache struct {
	m       sync.Mutex
	entries map[string][]*domain.CartItemView
	gens    map[string]int64
	deletes []string
	err     error
}

func newMockCache() *mockCache {
	return &mockCache{
		entries: map[string][]*domain.CartItemView{},
		gens:    map[string]int64{},
	}
}

func (m *mockCache) Get(_ context.Context, userID string) ([]*domain.CartItemView, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	views, ok := m.entries[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return views, nil
}

func (m *mockCache) Generation(_ context.Context, userID string) (int64, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.gens[userID], nil
}

func (m *mockCache) Set(_ context.Context, userID string, gen int64, views []*domain.CartItemView) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.gens[userID] != gen {
		return cache.ErrStaleGeneration
	}
	m.entries[userID] = views
	return nil
}

func (m *mockCache) Delete(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.deletes = append(m.deletes, userID)
	m.gens[userID]++
	delete(m.entries, userID)
	return m.err
}

func (m *mockCache) cached(userID string) bool {
	m.m.Lock()
	defer m.m.Unlock()
	_, ok := m.entries[userID]
	return ok
}

func (m *mockCache) invalidations() []string {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]string(nil), m.deletes...)
}

type mockPublisher struct {
	m      sync.Mutex
	events []publisher.CartEvent
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, events ...publisher.CartEvent) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *mockPublisher) Close() error { return nil }

func (p *mockPublisher) published() []publisher.CartEvent {
	p.m.Lock()
	defer p.m.Unlock()
	return append([]publisher.CartEvent(nil), p.events...)
}
