package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter is an immutable conjunction of field conditions.
type Filter struct {
	conds bson.M
}

func NewFilter() Filter {
	return Filter{conds: bson.M{}}
}

func ByID(id primitive.ObjectID) Filter {
	return NewFilter().Eq("_id", id)
}

func (f Filter) with(field string, cond any) Filter {
	next := make(bson.M, len(f.conds)+1)
	for k, v := range f.conds {
		next[k] = v
	}
	next[field] = cond
	return Filter{conds: next}
}

// Eq matches documents whose field equals value.
func (f Filter) Eq(field string, value any) Filter {
	return f.with(field, value)
}

// Contains is a case-insensitive substring match. The needle is matched
// literally.
func (f Filter) Contains(field, needle string) Filter {
	return f.with(field, bson.M{"$regex": regexp.QuoteMeta(needle), "$options": "i"})
}

// NotIn matches documents whose field is absent or not one of values.
func (f Filter) NotIn(field string, values []string) Filter {
	return f.with(field, bson.M{"$nin": values})
}

func (f Filter) InIDs(field string, ids []primitive.ObjectID) Filter {
	return f.with(field, bson.M{"$in": ids})
}

func (f Filter) Gt(field string, value any) Filter {
	return f.with(field, bson.M{"$gt": value})
}

func (f Filter) Lte(field string, value any) Filter {
	return f.with(field, bson.M{"$lte": value})
}

func (f Filter) BSON() bson.M {
	if f.conds == nil {
		return bson.M{}
	}
	return f.conds
}
