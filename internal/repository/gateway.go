package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// gateway holds the collection-level operations every entity gateway is
// built from. entity names the record kind in error messages.
type gateway[T any] struct {
	collection *mongo.Collection
	entity     string
	patch      patchSpec
}

func newGateway[T any](db *mongo.Database, collection, entity string, patch patchSpec) gateway[T] {
	return gateway[T]{
		collection: db.Collection(collection),
		entity:     entity,
		patch:      patch,
	}
}

func (g gateway[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := g.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%s %w", g.entity, domain.ErrAlreadyExists)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to insert %s: %w", g.entity, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected %s id type %T", g.entity, res.InsertedID)
	}
	return id, nil
}

func (g gateway[T]) findOne(ctx context.Context, filter Filter, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := g.collection.FindOne(ctx, filter.BSON(), opts...).Decode(&doc)
	if err != nil {
		return nil, g.wrapNotFound(err, "find")
	}
	return &doc, nil
}

// findMany never returns a nil slice so an empty result encodes as [].
func (g gateway[T]) findMany(ctx context.Context, filter Filter, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := g.collection.Find(ctx, filter.BSON(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", g.entity, err)
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", g.entity, err)
	}
	return docs, nil
}

// updateOne applies a sanitised partial update and returns the document
// as it is after the write.
func (g gateway[T]) updateOne(ctx context.Context, filter Filter, patch map[string]any) (*T, error) {
	set, err := g.patch.apply(patch)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return g.findOne(ctx, filter)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err = g.collection.FindOneAndUpdate(ctx, filter.BSON(), bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s %w", g.entity, domain.ErrAlreadyExists)
		}
		return nil, g.wrapNotFound(err, "update")
	}
	return &doc, nil
}

func (g gateway[T]) deleteOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	err := g.collection.FindOneAndDelete(ctx, filter.BSON()).Decode(&doc)
	if err != nil {
		return nil, g.wrapNotFound(err, "delete")
	}
	return &doc, nil
}

func (g gateway[T]) wrapNotFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %w", g.entity, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to %s %s: %w", op, g.entity, err)
}
