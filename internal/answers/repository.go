package answers

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

// Repository defines persistence operations for answers
type Repository interface {
	Create(ctx context.Context, a *models.Answer) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Answer, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Answer, error)
	// List returns answers in insertion order.
	List(ctx context.Context, opts models.ListOptions) ([]*models.Answer, error)
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, a *models.Answer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, a *models.Answer) error {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Answer, error) {
	var a models.Answer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}
	return &a, nil
}

func (r *MongoRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Answer, error) {
	if len(ids) == 0 {
		return []*models.Answer{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *MongoRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.Answer, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)
	return r.find(ctx, bson.M{}, findOpts)
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Answer, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find answers: %w", err)
	}
	out := []*models.Answer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepository) Replace(ctx context.Context, a *models.Answer) error {
	a.UpdatedAt = time.Now().UTC()
	a.Version++
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("replace answer: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
