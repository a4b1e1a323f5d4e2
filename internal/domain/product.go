package domain

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductType string

const (
	ProductTypeFertilizer ProductType = "fertilizer"
	ProductTypePesticide  ProductType = "pesticide"
	ProductTypeCrop       ProductType = "crop"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeFertilizer, ProductTypePesticide, ProductTypeCrop:
		return true
	}
	return false
}

// Product is a listing owned by a user. Code is the seller-facing product
// code the /products routes are keyed on; ID is the store identity that
// cart items reference.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID   primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name     string             `bson:"productName" json:"productName"`
	Code     string             `bson:"productId" json:"productId"`
	Type     ProductType        `bson:"productType,omitempty" json:"productType,omitempty"`
	Price    decimal.Decimal    `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Image    []byte             `bson:"image,omitempty" json:"image,omitempty"`
}

// ProductView is a product with its owner resolved inline.
type ProductView struct {
	Product
	Owner *User `json:"user,omitempty"`
}
