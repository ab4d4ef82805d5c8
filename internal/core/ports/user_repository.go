package ports

import (
	"context"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their embedded
// watchlist.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken or
	// domain.ErrUsernameTaken when the corresponding field is already in use.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Watchlist returns the user's entries in insertion order.
	Watchlist(ctx context.Context, userID string) ([]domain.WatchlistEntry, error)
	// PushWatchlistEntry appends entry iff no entry with the same media key
	// exists yet; the check and the append are a single atomic write.
	// Returns domain.ErrWatchlistDuplicate on a key collision.
	PushWatchlistEntry(ctx context.Context, userID string, entry domain.WatchlistEntry) error
	// PullWatchlistEntry removes every entry whose MediaID matches. Removing
	// an absent id is a no-op.
	PullWatchlistEntry(ctx context.Context, userID string, mediaID int64) error
}
