package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cinetrack/movie-system/internal/core/domain"
	"github.com/cinetrack/movie-system/internal/core/ports"
)

type stubReviewService struct {
	createFn   func(ctx context.Context, userID string, input ports.CreateReviewInput) (*domain.Review, error)
	listMineFn func(ctx context.Context, userID string) ([]domain.Review, error)
	deleteFn   func(ctx context.Context, userID, reviewID string) error
}

func (s *stubReviewService) Create(ctx context.Context, userID string, input ports.CreateReviewInput) (*domain.Review, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubReviewService) ListMine(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.listMineFn(ctx, userID)
}

func (s *stubReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	return s.deleteFn(ctx, userID, reviewID)
}

func TestReviewHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		createFn: func(ctx context.Context, userID string, input ports.CreateReviewInput) (*domain.Review, error) {
			if input.MediaType != domain.MediaTypeMovie || input.MediaID != 603 || input.Rating != 9 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Review{
				ID:        "rev_1",
				UserID:    userID,
				MediaType: input.MediaType,
				MediaID:   input.MediaID,
				Content:   input.Content,
				Rating:    input.Rating,
			}, nil
		},
	}
	handler := NewReviewHandler(stub)

	body := strings.NewReader(`{"mediaType":"movie","mediaId":603,"content":"Great film","rating":9}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "rev_1" || resp.UserID != "user_1" {
		t.Fatalf("unexpected review: %+v", resp)
	}
}

func TestReviewHandler_Create_RatingOutOfRange(t *testing.T) {
	e := newTestEcho()
	handler := NewReviewHandler(&stubReviewService{
		createFn: func(ctx context.Context, userID string, input ports.CreateReviewInput) (*domain.Review, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	for _, rating := range []string{"0", "11", "-5"} {
		body := strings.NewReader(`{"mediaType":"movie","mediaId":603,"content":"x","rating":` + rating + `}`)
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", "user_1")

		err := handler.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("rating %s: expected 422 HTTPError, got %v", rating, err)
		}
	}
}

func TestReviewHandler_Create_MissingContent(t *testing.T) {
	e := newTestEcho()
	handler := NewReviewHandler(&stubReviewService{
		createFn: func(ctx context.Context, userID string, input ports.CreateReviewInput) (*domain.Review, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"mediaType":"movie","mediaId":603,"rating":7}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestReviewHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		listMineFn: func(ctx context.Context, userID string) ([]domain.Review, error) {
			return []domain.Review{
				{ID: "rev_2", UserID: userID, MediaType: domain.MediaTypeTV, MediaID: 1399, Content: "solid", Rating: 8},
				{ID: "rev_1", UserID: userID, MediaType: domain.MediaTypeMovie, MediaID: 603, Content: "great", Rating: 9},
			}, nil
		},
	}
	handler := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var reviews []domain.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &reviews); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(reviews) != 2 || reviews[0].ID != "rev_2" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}

func TestReviewHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		deleteFn: func(ctx context.Context, userID, reviewID string) error {
			if reviewID != "rev_1" {
				t.Fatalf("unexpected review id: %s", reviewID)
			}
			return nil
		},
	}
	handler := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/rev_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("rev_1")
	c.Set("user_id", "user_1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReviewHandler_Delete_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		deleteFn: func(ctx context.Context, userID, reviewID string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/rev_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("rev_1")
	c.Set("user_id", "user_2")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestReviewHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		deleteFn: func(ctx context.Context, userID, reviewID string) error {
			return domain.ErrReviewNotFound
		},
	}
	handler := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	c.Set("user_id", "user_1")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
