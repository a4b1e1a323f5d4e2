package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartRepository defines the store primitives the cart manager composes.
// Every mutation is a single-document atomic write.
type CartRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.CartItem, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.CartItem, error)
	// AddQuantity increments the (user, product) item by qty, creating it
	// when absent, and returns the item after the write.
	AddQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*domain.CartItem, error)
	Increment(ctx context.Context, id primitive.ObjectID) (*domain.CartItem, error)
	// DecrementAbove decrements only while qty > floor; ErrNotFound means
	// nothing matched that guard.
	DecrementAbove(ctx context.Context, id primitive.ObjectID, floor int) (*domain.CartItem, error)
	// DeleteAtOrBelow deletes only while qty <= ceiling.
	DeleteAtOrBelow(ctx context.Context, id primitive.ObjectID, ceiling int) (*domain.CartItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.CartItem, error)
	// UsersWithProduct lists the users holding the product in their cart.
	UsersWithProduct(ctx context.Context, productID primitive.ObjectID) ([]primitive.ObjectID, error)
}
