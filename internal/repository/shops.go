package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var shopPatch = patchSpec{
	"title":     asRequiredString,
	"location":  asRequiredString,
	"ownerName": asRequiredString,
	"items":     asObjectIDs,
}

type ShopRepository struct {
	g gateway[domain.Shop]
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{g: newGateway[domain.Shop](db, "shops", "shop", shopPatch)}
}

func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) error {
	if s.Items == nil {
		s.Items = []primitive.ObjectID{}
	}
	id, err := r.g.insert(ctx, s)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *ShopRepository) FindAll(ctx context.Context) ([]*domain.Shop, error) {
	return r.g.findMany(ctx, NewFilter())
}

func (r *ShopRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Shop, error) {
	return r.g.findOne(ctx, ByID(id))
}

func (r *ShopRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.Shop, error) {
	return r.g.updateOne(ctx, ByID(id), patch)
}

func (r *ShopRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Shop, error) {
	return r.g.deleteOne(ctx, ByID(id))
}
