package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinetrack/movie-system/internal/api/metrics"
	"github.com/cinetrack/movie-system/internal/core/domain"
	"github.com/cinetrack/movie-system/internal/core/ports"
)

// WatchlistService mutates the per-user watchlist stored inside the user
// document. Uniqueness of (mediaType, mediaId) is enforced by the repository
// in a single atomic write, so two racing adds cannot both land.
type WatchlistService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewWatchlistService(repo ports.UserRepository, logger zerolog.Logger) *WatchlistService {
	return &WatchlistService{repo: repo, logger: logger}
}

func (s *WatchlistService) List(ctx context.Context, userID string) ([]domain.WatchlistEntry, error) {
	return s.repo.Watchlist(ctx, userID)
}

// Add appends the entry with a server-assigned timestamp and returns the full
// updated list. Duplicate media keys fail with domain.ErrWatchlistDuplicate.
func (s *WatchlistService) Add(ctx context.Context, userID string, input ports.AddWatchlistInput) ([]domain.WatchlistEntry, error) {
	if !input.MediaType.Valid() {
		return nil, domain.ErrInvalidMediaType
	}

	entry := domain.WatchlistEntry{
		MediaType:  input.MediaType,
		MediaID:    input.MediaID,
		Title:      input.Title,
		PosterPath: input.PosterPath,
		AddedAt:    time.Now().UTC(),
	}

	if err := s.repo.PushWatchlistEntry(ctx, userID, entry); err != nil {
		if errors.Is(err, domain.ErrWatchlistDuplicate) {
			metrics.WatchlistMutationsTotal.WithLabelValues("add", "duplicate").Inc()
			return nil, err
		}
		metrics.WatchlistMutationsTotal.WithLabelValues("add", "error").Inc()
		s.logger.Error().Err(err).Str("user_id", userID).Msg("watchlist add failed")
		return nil, err
	}

	metrics.WatchlistMutationsTotal.WithLabelValues("add", "ok").Inc()
	s.logger.Info().
		Str("user_id", userID).
		Str("media_key", entry.Key()).
		Msg("watchlist entry added")

	return s.repo.Watchlist(ctx, userID)
}

// Remove deletes any entry matching mediaID and returns the full updated
// list. Removing an absent id is a no-op, not an error.
func (s *WatchlistService) Remove(ctx context.Context, userID string, mediaID int64) ([]domain.WatchlistEntry, error) {
	if err := s.repo.PullWatchlistEntry(ctx, userID, mediaID); err != nil {
		metrics.WatchlistMutationsTotal.WithLabelValues("remove", "error").Inc()
		s.logger.Error().Err(err).Str("user_id", userID).Int64("media_id", mediaID).Msg("watchlist remove failed")
		return nil, err
	}

	metrics.WatchlistMutationsTotal.WithLabelValues("remove", "ok").Inc()
	return s.repo.Watchlist(ctx, userID)
}
