package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes builds the indexes the gateways rely on. It is safe to run
// on every start.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "mail", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "username", Value: 1}}},
		},
		"carts": {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "productid", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "productid", Value: 1}}},
		},
		"products": {
			{Keys: bson.D{{Key: "productId", Value: 1}}},
		},
		"blogs": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		"trainings": {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return wrapIndexError(collection, err)
		}
	}
	return nil
}
