package domain

import "errors"

// MediaType distinguishes movies from TV shows. Together with the provider's
// numeric id it forms the media key used throughout the system.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether m is one of the two supported media types.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

var ErrInvalidMediaType = errors.New("invalid media type")

// ErrUpstream marks failures of the external metadata provider (unreachable
// or non-2xx response).
var ErrUpstream = errors.New("upstream provider error")
