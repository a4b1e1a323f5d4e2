package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var marketPricePatch = patchSpec{
	"item":     asRequiredString,
	"price":    asDecimal,
	"category": asEnum(func(s string) bool { return domain.MarketCategory(s).Valid() }),
}

type MarketPriceRepository struct {
	g gateway[domain.MarketPrice]
}

func NewMarketPriceRepository(db *mongo.Database) *MarketPriceRepository {
	return &MarketPriceRepository{g: newGateway[domain.MarketPrice](db, "market_prices", "market price", marketPricePatch)}
}

func (r *MarketPriceRepository) Create(ctx context.Context, m *domain.MarketPrice) error {
	id, err := r.g.insert(ctx, m)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *MarketPriceRepository) FindAll(ctx context.Context) ([]*domain.MarketPrice, error) {
	return r.g.findMany(ctx, NewFilter())
}

func (r *MarketPriceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MarketPrice, error) {
	return r.g.findOne(ctx, ByID(id))
}

func (r *MarketPriceRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.MarketPrice, error) {
	return r.g.updateOne(ctx, ByID(id), patch)
}

func (r *MarketPriceRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.MarketPrice, error) {
	return r.g.deleteOne(ctx, ByID(id))
}
