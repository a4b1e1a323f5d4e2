package repository

import (
	"fmt"
	"math"
	"strings"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// patchSpec lists the fields a partial update may touch and how each raw
// JSON value is converted to its stored form. Unknown fields are dropped.
type patchSpec map[string]func(any) (any, error)

func (p patchSpec) apply(patch map[string]any) (bson.M, error) {
	set := bson.M{}
	for field, raw := range patch {
		conv, ok := p[field]
		if !ok {
			continue
		}
		v, err := conv(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArgument, field, err)
		}
		set[field] = v
	}
	return set, nil
}

func asString(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", raw)
	}
	return s, nil
}

func asRequiredString(raw any) (any, error) {
	v, err := asString(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(v.(string)) == "" {
		return nil, fmt.Errorf("must not be empty")
	}
	return v, nil
}

func asDecimal(raw any) (any, error) {
	var d decimal.Decimal
	switch v := raw.(type) {
	case float64:
		d = decimal.NewFromFloat(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("expected decimal: %v", err)
		}
		d = parsed
	default:
		return nil, fmt.Errorf("expected number, got %T", raw)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("must not be negative")
	}
	return d, nil
}

func asCount(raw any) (any, error) {
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return nil, fmt.Errorf("expected integer, got %v", raw)
	}
	if f < 0 {
		return nil, fmt.Errorf("must not be negative")
	}
	return int(f), nil
}

func asObjectID(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected id string, got %T", raw)
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func asObjectIDs(raw any) (any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array of ids, got %T", raw)
	}
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, item := range list {
		id, err := asObjectID(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func asEnum(valid func(string) bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok || !valid(s) {
			return nil, fmt.Errorf("unsupported value %v", raw)
		}
		return s, nil
	}
}
