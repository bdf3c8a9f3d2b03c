package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
)

// ParentProfileRepository defines the interface for parent profile operations.
type ParentProfileRepository interface {
	CreateParentProfile(ctx context.Context, profile *model.ParentProfile) (*model.ParentProfile, error)
	GetParentProfile(ctx context.Context, id string) (*model.ParentProfile, error)
	DeleteParentProfile(ctx context.Context, id string) error
}

const parentProfileCollection = "parent_profiles"

type parentProfileMongoRepository struct {
	db *mongo.Database
}

func NewParentProfileMongoRepository(db *mongo.Database) ParentProfileRepository {
	return &parentProfileMongoRepository{db: db}
}

func (r *parentProfileMongoRepository) CreateParentProfile(
	ctx context.Context,
	profile *model.ParentProfile,
) (*model.ParentProfile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.db.Collection(parentProfileCollection).InsertOne(ctx, profile)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		profile.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return profile, nil
}

func (r *parentProfileMongoRepository) GetParentProfile(
	ctx context.Context,
	id string,
) (*model.ParentProfile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(parentProfileCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.ParentProfile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *parentProfileMongoRepository) DeleteParentProfile(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(parentProfileCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
