package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// withoutCredentials keeps the password hash out of documents that are
// embedded into other responses.
var withoutCredentials = bson.M{"password": 0}

type UserRepository struct {
	g gateway[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{g: newGateway[domain.User](db, "users", "user", nil)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	id, err := r.g.insert(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.g.findOne(ctx, ByID(id), options.FindOne().SetProjection(withoutCredentials))
}

// FindByMail returns the full document including the password hash; it is
// the login lookup.
func (r *UserRepository) FindByMail(ctx context.Context, mail string) (*domain.User, error) {
	return r.g.findOne(ctx, NewFilter().Eq("mail", mail))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.g.findOne(ctx, NewFilter().Eq("username", username), options.FindOne().SetProjection(withoutCredentials))
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	return r.g.findMany(ctx, NewFilter().InIDs("_id", ids), options.Find().SetProjection(withoutCredentials))
}
