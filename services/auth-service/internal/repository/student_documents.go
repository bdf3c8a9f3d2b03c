package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
)

// StudentDocumentsRepository defines the interface for student identity
// document records.
type StudentDocumentsRepository interface {
	CreateDocuments(ctx context.Context, docs *model.StudentDocuments) (*model.StudentDocuments, error)
	GetDocumentsByStudent(ctx context.Context, studentID string) (*model.StudentDocuments, error)
	DeleteDocuments(ctx context.Context, id string) error
}

const studentDocumentsCollection = "student_documents"

type studentDocumentsMongoRepository struct {
	db *mongo.Database
}

func NewStudentDocumentsMongoRepository(db *mongo.Database) StudentDocumentsRepository {
	return &studentDocumentsMongoRepository{db: db}
}

func (r *studentDocumentsMongoRepository) CreateDocuments(
	ctx context.Context,
	docs *model.StudentDocuments,
) (*model.StudentDocuments, error) {
	now := time.Now()
	docs.CreatedAt = now
	docs.UpdatedAt = now

	result, err := r.db.Collection(studentDocumentsCollection).InsertOne(ctx, docs)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		docs.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return docs, nil
}

func (r *studentDocumentsMongoRepository) GetDocumentsByStudent(
	ctx context.Context,
	studentID string,
) (*model.StudentDocuments, error) {
	objectID, err := bson.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(studentDocumentsCollection).FindOne(ctx, bson.M{"student_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var docs model.StudentDocuments
	if err := result.Decode(&docs); err != nil {
		return nil, err
	}

	return &docs, nil
}

func (r *studentDocumentsMongoRepository) DeleteDocuments(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(studentDocumentsCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
