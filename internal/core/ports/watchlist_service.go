package ports

import (
	"context"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

// AddWatchlistInput carries a new watchlist entry; AddedAt is assigned by the
// service.
type AddWatchlistInput struct {
	MediaType  domain.MediaType
	MediaID    int64
	Title      string
	PosterPath string
}

// WatchlistService mutates the authenticated user's watchlist. Every
// operation returns the full list so the client can render without a second
// round trip.
type WatchlistService interface {
	List(ctx context.Context, userID string) ([]domain.WatchlistEntry, error)
	Add(ctx context.Context, userID string, input AddWatchlistInput) ([]domain.WatchlistEntry, error)
	Remove(ctx context.Context, userID string, mediaID int64) ([]domain.WatchlistEntry, error)
}
