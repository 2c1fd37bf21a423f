package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hasibmuhammad/portal-server/internal/models"
)

type SubmissionRepository interface {
	Insert(ctx context.Context, submission models.Submission) (models.Submission, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error)
	ListBySubmitter(ctx context.Context, email string) ([]models.Submission, error)
	Grade(ctx context.Context, id primitive.ObjectID, grade models.Grade, allowRegrade bool) (int64, error)
}

type MongoSubmissionRepository struct {
	collection *mongo.Collection
}

func NewSubmissionRepository(client *mongo.Client, dbName string) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{
		collection: client.Database(dbName).Collection("submitted"),
	}
}

func (r *MongoSubmissionRepository) Insert(ctx context.Context, submission models.Submission) (models.Submission, error) {
	_, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *MongoSubmissionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var submission models.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *MongoSubmissionRepository) ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []models.Submission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *MongoSubmissionRepository) ListBySubmitter(ctx context.Context, email string) ([]models.Submission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"submitted_by": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []models.Submission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// Grade sets the marking fields and flips status to graded in one
// update; per-document atomicity comes from the store. When regrading
// is disallowed the status condition lives in the update filter, so a
// concurrent grade of the same submission matches at most once.
func (r *MongoSubmissionRepository) Grade(ctx context.Context, id primitive.ObjectID, grade models.Grade, allowRegrade bool) (int64, error) {
	filter := bson.M{"_id": id}
	if !allowRegrade {
		filter["status"] = models.StatusPending
	}

	update := bson.M{
		"$set": bson.M{
			"given_mark": grade.GivenMark,
			"feedback":   grade.Feedback,
			"graded_by":  grade.GradedBy,
			"status":     models.StatusGraded,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}
