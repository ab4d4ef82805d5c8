package domain

import (
	"errors"
	"time"
)

const (
	RatingMin = 1
	RatingMax = 10
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrForbidden        = errors.New("access forbidden")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 10")
	ErrEmptyContent     = errors.New("review content cannot be empty")
)

// Review is a user-authored rating and write-up for a single media item.
// A user holds at most one review per (MediaType, MediaID); writing again
// replaces the previous one.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MediaType MediaType `json:"mediaType"`
	MediaID   int64     `json:"mediaId"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the invariants the server enforces regardless of
// client-side validation.
func (r *Review) Validate() error {
	if r.Rating < RatingMin || r.Rating > RatingMax {
		return ErrRatingOutOfRange
	}
	if r.Content == "" {
		return ErrEmptyContent
	}
	if !r.MediaType.Valid() {
		return ErrInvalidMediaType
	}
	return nil
}
