package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
)

// NotificationPreferencesRepository defines the interface for notification
// preferences operations.
type NotificationPreferencesRepository interface {
	CreatePreferences(ctx context.Context, prefs *model.NotificationPreferences) (*model.NotificationPreferences, error)
	GetPreferences(ctx context.Context, id string) (*model.NotificationPreferences, error)
	DeletePreferences(ctx context.Context, id string) error
}

const notificationPreferencesCollection = "notification_preferences"

type notificationPreferencesMongoRepository struct {
	db *mongo.Database
}

func NewNotificationPreferencesMongoRepository(db *mongo.Database) NotificationPreferencesRepository {
	return &notificationPreferencesMongoRepository{db: db}
}

func (r *notificationPreferencesMongoRepository) CreatePreferences(
	ctx context.Context,
	prefs *model.NotificationPreferences,
) (*model.NotificationPreferences, error) {
	now := time.Now()
	prefs.CreatedAt = now
	prefs.UpdatedAt = now

	result, err := r.db.Collection(notificationPreferencesCollection).InsertOne(ctx, prefs)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		prefs.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return prefs, nil
}

func (r *notificationPreferencesMongoRepository) GetPreferences(
	ctx context.Context,
	id string,
) (*model.NotificationPreferences, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(notificationPreferencesCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var prefs model.NotificationPreferences
	if err := result.Decode(&prefs); err != nil {
		return nil, err
	}

	return &prefs, nil
}

func (r *notificationPreferencesMongoRepository) DeletePreferences(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(notificationPreferencesCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
