package domain

import (
	"errors"
	"strconv"
	"time"
)

var ErrWatchlistDuplicate = errors.New("item already in watchlist")

// WatchlistEntry is a media item a user has saved to view later.
// No two entries in the same user's list share (MediaType, MediaID).
type WatchlistEntry struct {
	MediaType  MediaType `json:"mediaType" bson:"media_type"`
	MediaID    int64     `json:"mediaId" bson:"media_id"`
	Title      string    `json:"title" bson:"title"`
	PosterPath string    `json:"posterPath,omitempty" bson:"poster_path,omitempty"`
	AddedAt    time.Time `json:"addedAt" bson:"added_at"`
}

// Key returns the media key identifying this entry within a list.
func (e WatchlistEntry) Key() string {
	return string(e.MediaType) + ":" + strconv.FormatInt(e.MediaID, 10)
}
