package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem links a user to a product. Quantity is at least 1 for as long
// as the document exists; a decrement that would reach zero deletes it.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID primitive.ObjectID `bson:"productid" json:"productid"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Quantity  int                `bson:"qty" json:"qty"`
}

// CartItemView is a cart item with product and product owner resolved.
// Product is nil when the referenced product no longer exists.
type CartItemView struct {
	ID        primitive.ObjectID `json:"_id"`
	ProductID primitive.ObjectID `json:"productid"`
	UserID    primitive.ObjectID `json:"user_id"`
	Quantity  int                `json:"qty"`
	Product   *ProductView       `json:"product"`
}

type Direction string

const (
	Increment Direction = "increment"
	Decrement Direction = "decrement"
)

func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case Increment, Decrement:
		return d, true
	}
	return "", false
}

// Adjustment is the outcome of an increment or decrement. When Removed is
// true, Item is the document as it was deleted.
type Adjustment struct {
	Item    *CartItem
	Removed bool
}
