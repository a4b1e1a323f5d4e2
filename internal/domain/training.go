package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Training struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title  string             `bson:"title" json:"title"`
	Name   string             `bson:"name" json:"name"`
	Course string             `bson:"course" json:"course"`
	Link   string             `bson:"link" json:"link"`
}
