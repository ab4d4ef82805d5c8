package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinetrack/movie-system/internal/api/metrics"
	"github.com/cinetrack/movie-system/internal/core/domain"
	"github.com/cinetrack/movie-system/internal/core/ports"
)

// ReviewService implements the review use cases. A user holds at most one
// review per media key: Create is an atomic upsert, which also makes the
// client's edit flow a single write instead of delete-then-create.
type ReviewService struct {
	repo   ports.ReviewRepository
	logger zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

func (s *ReviewService) Create(ctx context.Context, userID string, input ports.CreateReviewInput) (*domain.Review, error) {
	now := time.Now().UTC()
	review := &domain.Review{
		UserID:    userID,
		MediaType: input.MediaType,
		MediaID:   input.MediaID,
		Content:   strings.TrimSpace(input.Content),
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, review)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("review upsert failed")
		return nil, err
	}

	metrics.ReviewsWrittenTotal.WithLabelValues("upsert").Inc()
	s.logger.Info().
		Str("user_id", userID).
		Str("media_type", string(stored.MediaType)).
		Int64("media_id", stored.MediaID).
		Int("rating", stored.Rating).
		Msg("review written")

	return stored, nil
}

func (s *ReviewService) ListMine(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes the review iff it exists and belongs to userID.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	metrics.ReviewsWrittenTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("user_id", userID).Str("review_id", reviewID).Msg("review deleted")
	return nil
}
