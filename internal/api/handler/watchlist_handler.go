package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinetrack/movie-system/internal/core/domain"
	"github.com/cinetrack/movie-system/internal/core/ports"
)

type addWatchlistRequest struct {
	MediaType  string `json:"mediaType"   validate:"required,oneof=movie tv"`
	MediaID    int64  `json:"mediaId"     validate:"required,gt=0"`
	Title      string `json:"title"       validate:"required"`
	PosterPath string `json:"poster_path"`
}

// WatchlistHandler handles the authenticated user's watchlist routes.
type WatchlistHandler struct {
	service ports.WatchlistService
}

func NewWatchlistHandler(service ports.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// List handles GET /api/users/watchlist.
//
// @Summary      Get the watchlist
// @Tags         watchlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.WatchlistEntry
// @Router       /api/users/watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Add handles POST /api/users/watchlist. Responds with the full updated list.
//
// @Summary      Add an item to the watchlist
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addWatchlistRequest  true  "Item to add"
// @Success      201   {array}   domain.WatchlistEntry
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/users/watchlist [post]
func (h *WatchlistHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entries, err := h.service.Add(c.Request().Context(), userID, ports.AddWatchlistInput{
		MediaType:  domain.MediaType(req.MediaType),
		MediaID:    req.MediaID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entries)
}

// Remove handles DELETE /api/users/watchlist/:mediaId. Removing an id that is
// not on the list is a no-op returning the unchanged list.
//
// @Summary      Remove an item from the watchlist
// @Tags         watchlist
// @Produce      json
// @Security     BearerAuth
// @Param        mediaId  path     int  true  "Provider media id"
// @Success      200      {array}  domain.WatchlistEntry
// @Router       /api/users/watchlist/{mediaId} [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	mediaID, err := strconv.ParseInt(c.Param("mediaId"), 10, 64)
	if err != nil || mediaID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid media id")
	}

	entries, err := h.service.Remove(c.Request().Context(), userID, mediaID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
