package ports

import (
	"context"
	"net/url"
)

// MetadataClient fetches raw JSON from the external metadata provider. The
// gateway is a pass-through: responses are returned verbatim, with the
// provider credentials attached server-side.
type MetadataClient interface {
	// Get performs a GET against the provider path (e.g. "/movie/popular")
	// and returns the raw response body. Failures are reported as (wrapped)
	// domain.ErrUpstream.
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}
