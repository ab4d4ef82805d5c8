package ports

import (
	"context"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

// CreateReviewInput carries a review submission for the authenticated user.
type CreateReviewInput struct {
	MediaType domain.MediaType
	MediaID   int64
	Content   string
	Rating    int
}

// ReviewService implements the review use cases. Create behaves as an upsert
// on (user, media key), so editing a review is a single atomic write.
type ReviewService interface {
	Create(ctx context.Context, userID string, input CreateReviewInput) (*domain.Review, error)
	ListMine(ctx context.Context, userID string) ([]domain.Review, error)
	Delete(ctx context.Context, userID, reviewID string) error
}
