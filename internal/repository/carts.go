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

type mongoCartRepository struct {
	g gateway[domain.CartItem]
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{g: newGateway[domain.CartItem](db, "carts", "cart item", nil)}
}

func (m *mongoCartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.CartItem, error) {
	return m.g.findOne(ctx, ByID(id))
}

func (m *mongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.CartItem, error) {
	return m.g.findMany(ctx, NewFilter().Eq("user_id", userID), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (m *mongoCartRepository) UsersWithProduct(ctx context.Context, productID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := m.g.collection.Distinct(ctx, "user_id", NewFilter().Eq("productid", productID).BSON())
	if err != nil {
		return nil, fmt.Errorf("failed to list cart users for product: %w", err)
	}
	users := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			users = append(users, id)
		}
	}
	return users, nil
}

func (m *mongoCartRepository) AddQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*domain.CartItem, error) {
	filter := NewFilter().Eq("user_id", userID).Eq("productid", productID)
	update := bson.M{"$inc": bson.M{"qty": qty}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	item, err := m.findOneAndUpdate(ctx, filter, update, opts)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Two first-adds raced on the unique (user_id, productid) index;
		// the loser's retry matches the winner's document.
		item, err = m.findOneAndUpdate(ctx, filter, update, opts)
	}
	if err != nil {
		return nil, m.g.wrapNotFound(err, "upsert")
	}
	return item, nil
}

func (m *mongoCartRepository) Increment(ctx context.Context, id primitive.ObjectID) (*domain.CartItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	item, err := m.findOneAndUpdate(ctx, ByID(id), bson.M{"$inc": bson.M{"qty": 1}}, opts)
	if err != nil {
		return nil, m.g.wrapNotFound(err, "increment")
	}
	return item, nil
}

func (m *mongoCartRepository) DecrementAbove(ctx context.Context, id primitive.ObjectID, floor int) (*domain.CartItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	item, err := m.findOneAndUpdate(ctx, ByID(id).Gt("qty", floor), bson.M{"$inc": bson.M{"qty": -1}}, opts)
	if err != nil {
		return nil, m.g.wrapNotFound(err, "decrement")
	}
	return item, nil
}

func (m *mongoCartRepository) DeleteAtOrBelow(ctx context.Context, id primitive.ObjectID, ceiling int) (*domain.CartItem, error) {
	return m.g.deleteOne(ctx, ByID(id).Lte("qty", ceiling))
}

func (m *mongoCartRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.CartItem, error) {
	return m.g.deleteOne(ctx, ByID(id))
}

func (m *mongoCartRepository) findOneAndUpdate(ctx context.Context, filter Filter, update bson.M, opts *options.FindOneAndUpdateOptions) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := m.g.collection.FindOneAndUpdate(ctx, filter.BSON(), update, opts).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ErrDuplicateCartItem is reported when the unique (user, product) index
// cannot be built because the collection already violates it.
var ErrDuplicateCartItem = errors.New("carts collection holds duplicate (user_id, productid) pairs")

func wrapIndexError(collection string, err error) error {
	if mongo.IsDuplicateKeyError(err) && collection == "carts" {
		return ErrDuplicateCartItem
	}
	return fmt.Errorf("failed to create %s indexes: %w", collection, err)
}
