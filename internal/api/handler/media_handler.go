package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinetrack/movie-system/internal/core/ports"
)

// MediaHandler is the metadata gateway: it translates API paths to provider
// paths and returns the provider's JSON verbatim. No caching, no retries.
type MediaHandler struct {
	provider ports.MetadataClient
}

func NewMediaHandler(provider ports.MetadataClient) *MediaHandler {
	return &MediaHandler{provider: provider}
}

// Popular handles GET /api/movies/popular.
func (h *MediaHandler) Popular(c echo.Context) error {
	return h.proxy(c, "/movie/popular", forwardQuery(c, "page", "language"))
}

// Trending handles GET /api/movies/trending/:window.
func (h *MediaHandler) Trending(c echo.Context) error {
	window := c.Param("window")
	if window != "day" && window != "week" {
		return echo.NewHTTPError(http.StatusBadRequest, "window must be day or week")
	}
	return h.proxy(c, "/trending/all/"+window, forwardQuery(c, "page", "language"))
}

// Search handles GET /api/movies/search.
func (h *MediaHandler) Search(c echo.Context) error {
	if c.QueryParam("query") == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	return h.proxy(c, "/search/movie", forwardQuery(c, "query", "page", "language"))
}

// Details handles GET /api/movies/:id. Credits and provider reviews ride
// along so the details page renders from a single response.
func (h *MediaHandler) Details(c echo.Context) error {
	id, err := mediaID(c)
	if err != nil {
		return err
	}

	q := forwardQuery(c, "language")
	q.Set("append_to_response", "credits,reviews")
	return h.proxy(c, "/movie/"+id, q)
}

// TVPopular handles GET /api/movies/tv/popular.
func (h *MediaHandler) TVPopular(c echo.Context) error {
	return h.proxy(c, "/tv/popular", forwardQuery(c, "page", "language"))
}

// TVDetails handles GET /api/movies/tv/:id.
func (h *MediaHandler) TVDetails(c echo.Context) error {
	id, err := mediaID(c)
	if err != nil {
		return err
	}

	q := forwardQuery(c, "language")
	q.Set("append_to_response", "credits,reviews")
	return h.proxy(c, "/tv/"+id, q)
}

// MovieReviews handles GET /api/movies/movie/:id/reviews. These are the
// provider's community reviews, distinct from this platform's own.
func (h *MediaHandler) MovieReviews(c echo.Context) error {
	id, err := mediaID(c)
	if err != nil {
		return err
	}
	return h.proxy(c, "/movie/"+id+"/reviews", forwardQuery(c, "page", "language"))
}

// TVReviews handles GET /api/movies/tv/:id/reviews.
func (h *MediaHandler) TVReviews(c echo.Context) error {
	id, err := mediaID(c)
	if err != nil {
		return err
	}
	return h.proxy(c, "/tv/"+id+"/reviews", forwardQuery(c, "page", "language"))
}

func (h *MediaHandler) proxy(c echo.Context, path string, query url.Values) error {
	body, err := h.provider.Get(c.Request().Context(), path, query)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// mediaID validates the :id path param as a positive integer before it is
// spliced into a provider path.
func mediaID(c echo.Context) (string, error) {
	raw := c.Param("id")
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid media id")
	}
	return raw, nil
}

func forwardQuery(c echo.Context, keys ...string) url.Values {
	q := url.Values{}
	for _, k := range keys {
		if v := c.QueryParam(k); v != "" {
			q.Set(k, v)
		}
	}
	return q
}
