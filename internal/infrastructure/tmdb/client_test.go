package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cinetrack/movie-system/internal/core/domain"
)

func TestClient_Get_AttachesAPIKey(t *testing.T) {
	var gotQuery url.Values
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":603}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", 5*time.Second)

	body, err := client.Get(context.Background(), "/movie/popular", url.Values{"page": {"2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/movie/popular" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotQuery.Get("api_key") != "secret-key" {
		t.Fatalf("api key not attached: %v", gotQuery)
	}
	if gotQuery.Get("page") != "2" {
		t.Fatalf("query not forwarded: %v", gotQuery)
	}
	if string(body) != `{"results":[{"id":603}]}` {
		t.Fatalf("body not returned verbatim: %s", body)
	}
}

func TestClient_Get_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message":"not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", 5*time.Second)

	_, err := client.Get(context.Background(), "/movie/0", nil)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_Get_UnreachableIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "secret-key", time.Second)

	_, err := client.Get(context.Background(), "/movie/popular", nil)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_Get_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/movie/popular", nil)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "key", 0)
	if client.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", client.baseURL)
	}
	if client.http.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.http.Timeout)
	}
}
