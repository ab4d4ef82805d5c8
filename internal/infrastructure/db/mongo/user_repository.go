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

const usersCollection = "users"

// UserRepository implements ports.UserRepository on the users collection.
// The watchlist lives as an array inside each user document, so every
// watchlist mutation is a single-document (and therefore atomic) write.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoWatchlistEntry struct {
	MediaType  string    `bson:"media_type"`
	MediaID    int64     `bson:"media_id"`
	Title      string    `bson:"title"`
	PosterPath string    `bson:"poster_path,omitempty"`
	AddedAt    time.Time `bson:"added_at"`
}

type mongoUser struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	Username     string                `bson:"username"`
	Email        string                `bson:"email"`
	PasswordHash string                `bson:"password_hash"`
	Watchlist    []mongoWatchlistEntry `bson:"watchlist"`
	CreatedAt    int64                 `bson:"created_at"`
	UpdatedAt    int64                 `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Pre-check so the caller gets a field-specific conflict; the unique
	// indexes remain the backstop under concurrent registration.
	var existing mongoUser
	err := r.coll.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": user.Email}, {"username": user.Username}},
	}).Decode(&existing)
	if err == nil {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Watchlist:    []mongoWatchlistEntry{},
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost the race against a concurrent insert
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) Watchlist(ctx context.Context, userID string) ([]domain.WatchlistEntry, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	opts := options.FindOne().SetProjection(bson.M{"watchlist": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find watchlist: %w", err)
	}
	return toDomainWatchlist(mu.Watchlist), nil
}

// PushWatchlistEntry appends entry in a single update whose filter excludes
// documents already holding the media key. A concurrent duplicate add can
// therefore never produce two entries: one update matches, the other doesn't.
func (r *UserRepository) PushWatchlistEntry(ctx context.Context, userID string, entry domain.WatchlistEntry) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id": oid,
		"watchlist": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"media_type": string(entry.MediaType),
			"media_id":   entry.MediaID,
		}}},
	}
	update := bson.M{
		"$push": bson.M{"watchlist": mongoWatchlistEntry{
			MediaType:  string(entry.MediaType),
			MediaID:    entry.MediaID,
			Title:      entry.Title,
			PosterPath: entry.PosterPath,
			AddedAt:    entry.AddedAt.UTC(),
		}},
		"$set": bson.M{"updated_at": time.Now().UTC().Unix()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("push watchlist entry: %w", err)
	}
	if res.MatchedCount == 0 {
		// no match means either the user is gone or the key already exists;
		// a second lookup disambiguates
		if _, err := r.FindByID(ctx, userID); err != nil {
			return err
		}
		return domain.ErrWatchlistDuplicate
	}
	return nil
}

func (r *UserRepository) PullWatchlistEntry(ctx context.Context, userID string, mediaID int64) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"watchlist": bson.M{"media_id": mediaID}},
		"$set":  bson.M{"updated_at": time.Now().UTC().Unix()},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("pull watchlist entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique indexes backing registration conflicts.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Watchlist:    toDomainWatchlist(mu.Watchlist),
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func toDomainWatchlist(entries []mongoWatchlistEntry) []domain.WatchlistEntry {
	out := make([]domain.WatchlistEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.WatchlistEntry{
			MediaType:  domain.MediaType(e.MediaType),
			MediaID:    e.MediaID,
			Title:      e.Title,
			PosterPath: e.PosterPath,
			AddedAt:    e.AddedAt,
		})
	}
	return out
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
