package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

const reviewsCollection = "reviews"

// ReviewRepository implements ports.ReviewRepository.
type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewsCollection)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	MediaType string             `bson:"media_type"`
	MediaID   int64              `bson:"media_id"`
	Content   string             `bson:"content"`
	Rating    int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Upsert inserts or replaces the review keyed on (user_id, media_type,
// media_id) in one atomic operation and returns the stored document.
// created_at survives an update; content, rating and updated_at are replaced.
func (r *ReviewRepository) Upsert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id":    review.UserID,
		"media_type": string(review.MediaType),
		"media_id":   review.MediaID,
	}
	update := bson.M{
		"$set": bson.M{
			"content":    review.Content,
			"rating":     review.Rating,
			"updated_at": review.UpdatedAt.UTC(),
		},
		"$setOnInsert": bson.M{
			"user_id":    review.UserID,
			"media_type": string(review.MediaType),
			"media_id":   review.MediaID,
			"created_at": review.CreatedAt.UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mr mongoReview
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}
	return toDomainReview(&mr), nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	reviews := []domain.Review{}
	for cur.Next(ctx) {
		var mr mongoReview
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, *toDomainReview(&mr))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReview
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return toDomainReview(&mr), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// EnsureIndexes creates the unique compound index backing the
// one-review-per-media invariant. The user_id prefix also serves ListByUser.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "media_type", Value: 1},
			{Key: "media_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.coll.Indexes().CreateOne(ctx, index)
	return err
}

func toDomainReview(mr *mongoReview) *domain.Review {
	return &domain.Review{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		MediaType: domain.MediaType(mr.MediaType),
		MediaID:   mr.MediaID,
		Content:   mr.Content,
		Rating:    mr.Rating,
		CreatedAt: mr.CreatedAt,
		UpdatedAt: mr.UpdatedAt,
	}
}
