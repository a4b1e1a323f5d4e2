package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCart struct {
	items   []*domain.CartItemView
	item    *domain.CartItem
	adj     *domain.Adjustment
	err     error
	lastArg []any
	changed []primitive.ObjectID
}

func (f *fakeCart) ProductChanged(_ context.Context, productID primitive.ObjectID) {
	f.changed = append(f.changed, productID)
}

func (f *fakeCart) AddItem(_ context.Context, productID, userID string, qty int) (*domain.CartItem, error) {
	f.lastArg = []any{productID, userID, qty}
	return f.item, f.err
}

func (f *fakeCart) ListItems(_ context.Context, userID string) ([]*domain.CartItemView, error) {
	f.lastArg = []any{userID}
	return f.items, f.err
}

func (f *fakeCart) AdjustQuantity(_ context.Context, cartItemID, direction string) (*domain.Adjustment, error) {
	f.lastArg = []any{cartItemID, direction}
	return f.adj, f.err
}

func (f *fakeCart) RemoveItem(_ context.Context, cartItemID string) (*domain.CartItem, error) {
	f.lastArg = []any{cartItemID}
	return f.item, f.err
}

type fakeAccounts struct {
	signedUp *domain.User
	token    string
	err      error
}

func (f *fakeAccounts) Signup(_ context.Context, u *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.signedUp = u
	u.ID = primitive.NewObjectID()
	u.Password = ""
	return u, nil
}

func (f *fakeAccounts) Login(_ context.Context, mail, _ string) (*domain.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return &domain.User{ID: primitive.NewObjectID(), Mail: mail, Type: domain.RoleUser}, f.token, nil
}

// fakeBlogs serves both the blog store and the blog queries.
type fakeBlogs struct {
	created  *domain.Blog
	blogs    []*domain.Blog
	views    []*domain.BlogView
	category string
	err      error
}

func (f *fakeBlogs) Create(_ context.Context, b *domain.Blog) error {
	if f.err != nil {
		return f.err
	}
	b.ID = primitive.NewObjectID()
	f.created = b
	return nil
}

func (f *fakeBlogs) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	for _, b := range f.blogs {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("blog %w", domain.ErrNotFound)
}

func (f *fakeBlogs) SearchByTitle(context.Context, string) ([]*domain.Blog, error) {
	return f.blogs, f.err
}

func (f *fakeBlogs) UpdateByID(ctx context.Context, id primitive.ObjectID, _ map[string]any) (*domain.Blog, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBlogs) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBlogs) List(context.Context) ([]*domain.BlogView, error) {
	return f.views, f.err
}

func (f *fakeBlogs) ByUsername(context.Context, string) ([]*domain.Blog, error) {
	return f.blogs, f.err
}

func (f *fakeBlogs) ByCategory(_ context.Context, category string) ([]*domain.Blog, error) {
	f.category = category
	return f.blogs, f.err
}

type fakeProducts struct {
	m      sync.Mutex
	byCode map[string]*domain.Product
	search string
}

func newFakeProducts(products ...*domain.Product) *fakeProducts {
	f := &fakeProducts{byCode: map[string]*domain.Product{}}
	for _, p := range products {
		f.byCode[p.Code] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	f.m.Lock()
	defer f.m.Unlock()
	if _, ok := f.byCode[p.Code]; ok {
		return fmt.Errorf("product %w", domain.ErrAlreadyExists)
	}
	p.ID = primitive.NewObjectID()
	f.byCode[p.Code] = p
	return nil
}

func (f *fakeProducts) FindAll(context.Context) ([]*domain.Product, error) {
	f.m.Lock()
	defer f.m.Unlock()
	all := []*domain.Product{}
	for _, p := range f.byCode {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakeProducts) SearchByName(_ context.Context, name string) ([]*domain.Product, error) {
	f.search = name
	return []*domain.Product{}, nil
}

func (f *fakeProducts) FindByCode(_ context.Context, code string) (*domain.Product, error) {
	f.m.Lock()
	defer f.m.Unlock()
	p, ok := f.byCode[code]
	if !ok {
		return nil, fmt.Errorf("product %w", domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProducts) UpdateByCode(ctx context.Context, code string, _ map[string]any) (*domain.Product, error) {
	return f.FindByCode(ctx, code)
}

func (f *fakeProducts) DeleteByCode(ctx context.Context, code string) (*domain.Product, error) {
	p, err := f.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	f.m.Lock()
	delete(f.byCode, code)
	f.m.Unlock()
	return p, nil
}

type fakeShops struct {
	created *domain.Shop
}

func (f *fakeShops) Create(_ context.Context, s *domain.Shop) error {
	s.ID = primitive.NewObjectID()
	f.created = s
	return nil
}

func (f *fakeShops) FindAll(context.Context) ([]*domain.Shop, error) {
	return []*domain.Shop{}, nil
}

func (f *fakeShops) FindByID(context.Context, primitive.ObjectID) (*domain.Shop, error) {
	return nil, fmt.Errorf("shop %w", domain.ErrNotFound)
}

func (f *fakeShops) UpdateByID(context.Context, primitive.ObjectID, map[string]any) (*domain.Shop, error) {
	return nil, fmt.Errorf("shop %w", domain.ErrNotFound)
}

func (f *fakeShops) DeleteByID(context.Context, primitive.ObjectID) (*domain.Shop, error) {
	return &domain.Shop{}, nil
}

type fakeMarketPrices struct {
	created *domain.MarketPrice
}

func (f *fakeMarketPrices) Create(_ context.Context, m *domain.MarketPrice) error {
	m.ID = primitive.NewObjectID()
	f.created = m
	return nil
}

func (f *fakeMarketPrices) FindAll(context.Context) ([]*domain.MarketPrice, error) {
	return []*domain.MarketPrice{}, nil
}

func (f *fakeMarketPrices) FindByID(context.Context, primitive.ObjectID) (*domain.MarketPrice, error) {
	return nil, fmt.Errorf("market price %w", domain.ErrNotFound)
}

func (f *fakeMarketPrices) UpdateByID(context.Context, primitive.ObjectID, map[string]any) (*domain.MarketPrice, error) {
	return nil, fmt.Errorf("market price %w", domain.ErrNotFound)
}

func (f *fakeMarketPrices) DeleteByID(context.Context, primitive.ObjectID) (*domain.MarketPrice, error) {
	return &domain.MarketPrice{}, nil
}

type fakeTrainings struct {
	byName    map[string]*domain.Training
	updatedID primitive.ObjectID
	deletedID primitive.ObjectID
}

func (f *fakeTrainings) Create(_ context.Context, t *domain.Training) error {
	t.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeTrainings) FindAll(context.Context) ([]*domain.Training, error) {
	return []*domain.Training{}, nil
}

func (f *fakeTrainings) FindByName(_ context.Context, name string) (*domain.Training, error) {
	t, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("training %w", domain.ErrNotFound)
	}
	return t, nil
}

func (f *fakeTrainings) UpdateByID(_ context.Context, id primitive.ObjectID, _ map[string]any) (*domain.Training, error) {
	f.updatedID = id
	return &domain.Training{ID: id}, nil
}

func (f *fakeTrainings) DeleteByID(_ context.Context, id primitive.ObjectID) (*domain.Training, error) {
	f.deletedID = id
	return &domain.Training{ID: id}, nil
}
