package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
)

// ResetCodeRepository defines the interface for one-time verification codes.
//
// ConsumeCode is an atomic read-and-delete: racing consumers of the same
// record get the row exactly once, which is what guarantees single use.
// The TTL index only reaps records in the background; callers must still
// check expiry on the returned record.
type ResetCodeRepository interface {
	CreateCode(ctx context.Context, code *model.ResetCode) (*model.ResetCode, error)
	ConsumeCode(ctx context.Context, phone, code string) (*model.ResetCode, error)
	DeleteExpiredCodes(ctx context.Context) (int64, error)
}

const resetCodeCollection = "reset_codes"

type resetCodeMongoRepository struct {
	db *mongo.Database
}

// NewResetCodeMongoRepository creates a new MongoDB repository for one-time
// codes and ensures the lookup and TTL indexes exist.
func NewResetCodeMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ResetCodeRepository {
	collection := db.Collection(resetCodeCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "phone", Value: 1}, {Key: "code", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create reset code indexes")
	}

	return &resetCodeMongoRepository{db: db}
}

func (r *resetCodeMongoRepository) CreateCode(
	ctx context.Context,
	code *model.ResetCode,
) (*model.ResetCode, error) {
	code.CreatedAt = time.Now()

	result, err := r.db.Collection(resetCodeCollection).InsertOne(ctx, code)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		code.ID = objectID
	}

	return code, nil
}

func (r *resetCodeMongoRepository) ConsumeCode(
	ctx context.Context,
	phone, code string,
) (*model.ResetCode, error) {
	filter := bson.M{"phone": phone, "code": code}

	result := r.db.Collection(resetCodeCollection).FindOneAndDelete(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var record model.ResetCode
	if err := result.Decode(&record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *resetCodeMongoRepository) DeleteExpiredCodes(ctx context.Context) (int64, error) {
	filter := bson.M{
		"expires_at": bson.M{"$lt": time.Now()},
	}

	result, err := r.db.Collection(resetCodeCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
