package ports

import (
	"context"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

// ReviewRepository defines persistence for reviews.
type ReviewRepository interface {
	// Upsert atomically inserts or replaces the review identified by
	// (UserID, MediaType, MediaID) and returns the stored document.
	Upsert(ctx context.Context, review *domain.Review) (*domain.Review, error)
	// ListByUser returns the user's reviews, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}
