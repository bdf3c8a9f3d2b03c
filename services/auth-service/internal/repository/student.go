package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
)

// StudentRepository defines the interface for student profile operations.
// DeleteStudent exists for registration compensation and must succeed even
// when the row was never linked to a user.
type StudentRepository interface {
	CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

const studentCollection = "students"

type studentMongoRepository struct {
	db *mongo.Database
}

func NewStudentMongoRepository(db *mongo.Database) StudentRepository {
	return &studentMongoRepository{db: db}
}

func (r *studentMongoRepository) CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error) {
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	result, err := r.db.Collection(studentCollection).InsertOne(ctx, student)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		student.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return student, nil
}

func (r *studentMongoRepository) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(studentCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var student model.Student
	if err := result.Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentMongoRepository) DeleteStudent(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(studentCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
