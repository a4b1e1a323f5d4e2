package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var productPatch = patchSpec{
	"userId":      asObjectID,
	"productName": asRequiredString,
	"productId":   asRequiredString,
	"productType": asEnum(func(s string) bool { return domain.ProductType(s).Valid() }),
	"price":       asDecimal,
	"quantity":    asCount,
}

type ProductRepository struct {
	g gateway[domain.Product]
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{g: newGateway[domain.Product](db, "products", "product", productPatch)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	id, err := r.g.insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.g.findMany(ctx, NewFilter())
}

func (r *ProductRepository) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	return r.g.findMany(ctx, NewFilter().Contains("productName", name))
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return r.g.findOne(ctx, ByID(id))
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}
	return r.g.findMany(ctx, NewFilter().InIDs("_id", ids))
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	return r.g.findOne(ctx, NewFilter().Eq("productId", code))
}

func (r *ProductRepository) UpdateByCode(ctx context.Context, code string, patch map[string]any) (*domain.Product, error) {
	return r.g.updateOne(ctx, NewFilter().Eq("productId", code), patch)
}

func (r *ProductRepository) DeleteByCode(ctx context.Context, code string) (*domain.Product, error) {
	return r.g.deleteOne(ctx, NewFilter().Eq("productId", code))
}
