package domain

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MarketCategory string

const (
	MarketVegetable  MarketCategory = "vegetable"
	MarketFruits     MarketCategory = "fruits"
	MarketPaddyCrops MarketCategory = "paddycrops"
)

func (c MarketCategory) Valid() bool {
	switch c {
	case MarketVegetable, MarketFruits, MarketPaddyCrops:
		return true
	}
	return false
}

type MarketPrice struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Item     string             `bson:"item" json:"item"`
	Price    decimal.Decimal    `bson:"price" json:"price"`
	Category MarketCategory     `bson:"category,omitempty" json:"category,omitempty"`
}
