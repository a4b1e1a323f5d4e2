package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID validates a store identifier before it is used in a lookup.
// field names the offending input in the returned error.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s must be a valid id", ErrInvalidArgument, field)
	}
	return id, nil
}
