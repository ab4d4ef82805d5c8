package handler

import "github.com/cinetrack/movie-system/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse mirrors what the SPA persists after register/login.
type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type profileResponse struct {
	ID        string                  `json:"id"`
	Username  string                  `json:"username"`
	Email     string                  `json:"email"`
	Watchlist []domain.WatchlistEntry `json:"watchlist"`
}
