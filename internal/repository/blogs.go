package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var blogPatch = patchSpec{
	"title":    asRequiredString,
	"content":  asRequiredString,
	"category": asString,
	"userId":   asObjectID,
}

type BlogRepository struct {
	g gateway[domain.Blog]
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{g: newGateway[domain.Blog](db, "blogs", "blog", blogPatch)}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	id, err := r.g.insert(ctx, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *BlogRepository) FindAll(ctx context.Context) ([]*domain.Blog, error) {
	return r.g.findMany(ctx, NewFilter(), newestFirst())
}

func (r *BlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	return r.g.findOne(ctx, ByID(id))
}

func (r *BlogRepository) SearchByTitle(ctx context.Context, title string) ([]*domain.Blog, error) {
	return r.g.findMany(ctx, NewFilter().Contains("title", title), newestFirst())
}

func (r *BlogRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Blog, error) {
	return r.g.findMany(ctx, NewFilter().Eq("userId", userID), newestFirst())
}

func (r *BlogRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Blog, error) {
	return r.g.findMany(ctx, NewFilter().Eq("category", category), newestFirst())
}

// FindOutsideCategories returns blogs whose category is not one of
// excluded, including blogs with no category at all.
func (r *BlogRepository) FindOutsideCategories(ctx context.Context, excluded []string) ([]*domain.Blog, error) {
	return r.g.findMany(ctx, NewFilter().NotIn("category", excluded), newestFirst())
}

func (r *BlogRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.Blog, error) {
	return r.g.updateOne(ctx, ByID(id), patch)
}

func (r *BlogRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	return r.g.deleteOne(ctx, ByID(id))
}
