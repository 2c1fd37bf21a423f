package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hasibmuhammad/portal-server/internal/models"
)

// BrowseOptions narrows an assignment listing. An empty Difficulty
// means no filter; Skip and Limit implement page*size pagination.
type BrowseOptions struct {
	Difficulty string
	Skip       int64
	Limit      int64
}

// UpsertResult reports the outcome of a full-field replace. UpsertedID
// is non-nil when the id did not exist and a new document was created.
type UpsertResult struct {
	MatchedCount int64       `json:"matchedCount"`
	UpsertedID   interface{} `json:"upsertedId,omitempty"`
}

type AssignmentRepository interface {
	Insert(ctx context.Context, assignment models.Assignment) (models.Assignment, error)
	ListAll(ctx context.Context) ([]models.Assignment, error)
	Browse(ctx context.Context, opts BrowseOptions) ([]models.Assignment, error)
	Featured(ctx context.Context, limit int64) ([]models.Assignment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	Replace(ctx context.Context, id primitive.ObjectID, assignment models.Assignment) (UpsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type MongoAssignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(client *mongo.Client, dbName string) *MongoAssignmentRepository {
	return &MongoAssignmentRepository{
		collection: client.Database(dbName).Collection("assignments"),
	}
}

func (r *MongoAssignmentRepository) Insert(ctx context.Context, assignment models.Assignment) (models.Assignment, error) {
	_, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (r *MongoAssignmentRepository) ListAll(ctx context.Context) ([]models.Assignment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *MongoAssignmentRepository) Browse(ctx context.Context, opts BrowseOptions) ([]models.Assignment, error) {
	filter := bson.M{}
	if opts.Difficulty != "" {
		filter["difficulty"] = opts.Difficulty
	}

	findOpts := options.Find().SetSkip(opts.Skip).SetLimit(opts.Limit)
	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *MongoAssignmentRepository) Featured(ctx context.Context, limit int64) ([]models.Assignment, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *MongoAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// Replace writes every assignment field under the given id, creating
// the document when it does not exist.
func (r *MongoAssignmentRepository) Replace(ctx context.Context, id primitive.ObjectID, assignment models.Assignment) (UpsertResult, error) {
	update := bson.M{
		"$set": bson.M{
			"title":       assignment.Title,
			"photo":       assignment.Photo,
			"marks":       assignment.Marks,
			"difficulty":  assignment.Difficulty,
			"due":         assignment.Due,
			"description": assignment.Description,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{MatchedCount: result.MatchedCount, UpsertedID: result.UpsertedID}, nil
}

func (r *MongoAssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
