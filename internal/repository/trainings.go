package repository

import (
	"context"

	"github.com/fjod/agromarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var trainingPatch = patchSpec{
	"title":  asRequiredString,
	"name":   asRequiredString,
	"course": asRequiredString,
	"link":   asRequiredString,
}

type TrainingRepository struct {
	g gateway[domain.Training]
}

func NewTrainingRepository(db *mongo.Database) *TrainingRepository {
	return &TrainingRepository{g: newGateway[domain.Training](db, "trainings", "training", trainingPatch)}
}

func (r *TrainingRepository) Create(ctx context.Context, t *domain.Training) error {
	id, err := r.g.insert(ctx, t)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *TrainingRepository) FindAll(ctx context.Context) ([]*domain.Training, error) {
	return r.g.findMany(ctx, NewFilter())
}

func (r *TrainingRepository) FindByName(ctx context.Context, name string) (*domain.Training, error) {
	return r.g.findOne(ctx, NewFilter().Eq("name", name))
}

func (r *TrainingRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch map[string]any) (*domain.Training, error) {
	return r.g.updateOne(ctx, ByID(id), patch)
}

func (r *TrainingRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error) {
	return r.g.deleteOne(ctx, ByID(id))
}
