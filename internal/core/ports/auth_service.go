package ports

import (
	"context"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

// AuthResult is returned after a successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService covers account creation, credential checks and profile reads.
// Tokens are stateless; validation happens in the HTTP middleware.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
