package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Shop struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title     string               `bson:"title" json:"title"`
	Image     []byte               `bson:"image,omitempty" json:"image,omitempty"`
	Items     []primitive.ObjectID `bson:"items" json:"items"`
	Location  string               `bson:"location" json:"location"`
	OwnerName string               `bson:"ownerName" json:"ownerName"`
}
