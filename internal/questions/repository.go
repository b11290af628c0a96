package questions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qaforum/qaforum/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for questions
type Repository interface {
	Create(ctx context.Context, q *models.Question) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	// List returns questions newest first.
	List(ctx context.Context, opts models.ListOptions) ([]*models.Question, error)
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, q *models.Question) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// PushAnswer appends answerID to the answer list in a single atomic write
	// and returns the updated question.
	PushAnswer(ctx context.Context, id, answerID primitive.ObjectID) (*models.Question, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, q *models.Question) error {
	now := time.Now().UTC()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now
	q.UpdatedAt = now
	q.Normalize()
	if _, err := r.col.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return q.Normalize(), nil
}

func (r *MongoRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.Question, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cur.Close(ctx)
	out := []*models.Question{}
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		out = append(out, q.Normalize())
	}
	return out, cur.Err()
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepository) Replace(ctx context.Context, q *models.Question) error {
	q.UpdatedAt = time.Now().UTC()
	q.Version++
	q.Normalize()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	if err != nil {
		return fmt.Errorf("replace question: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) PushAnswer(ctx context.Context, id, answerID primitive.ObjectID) (*models.Question, error) {
	update := bson.M{
		"$push": bson.M{"answer": answerID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
		"$inc":  bson.M{"__v": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var q models.Question
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("push answer: %w", err)
	}
	return q.Normalize(), nil
}
