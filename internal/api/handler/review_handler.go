package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinetrack/movie-system/internal/core/domain"
	"github.com/cinetrack/movie-system/internal/core/ports"
)

type createReviewRequest struct {
	MediaType string `json:"mediaType" validate:"required,oneof=movie tv"`
	MediaID   int64  `json:"mediaId"   validate:"required,gt=0"`
	Content   string `json:"content"   validate:"required"`
	Rating    int    `json:"rating"    validate:"required,gte=1,lte=10"`
}

// ReviewHandler handles the authenticated user's review routes.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create handles POST /api/reviews. Submitting for a media key the user has
// already reviewed replaces the previous review.
//
// @Summary      Write or replace a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      422   {object}  map[string]string
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	review, err := h.service.Create(c.Request().Context(), userID, ports.CreateReviewInput{
		MediaType: domain.MediaType(req.MediaType),
		MediaID:   req.MediaID,
		Content:   req.Content,
		Rating:    req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// List handles GET /api/reviews, the caller's own reviews only.
//
// @Summary      List the authenticated user's reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Review
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	reviews, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Delete handles DELETE /api/reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "review deleted"})
}
