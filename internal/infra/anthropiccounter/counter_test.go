package anthropiccounter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krishjag/tealeaf/internal/domain"
)

func TestCount_ReturnsEndpointFigure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"input_tokens": 1234}`))
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))

	n, err := c.Count(context.Background(), "claude-sonnet-4-5-20250929", "some prompt text")
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 1234 {
		t.Fatalf("expected 1234 tokens, got %d", n)
	}
}

func TestCount_AuthFailureIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := New("bad-key", WithBaseURL(srv.URL))

	_, err := c.Count(context.Background(), "claude-sonnet-4-5-20250929", "text")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !domain.IsKind(err, domain.KindService) {
		t.Fatalf("expected service kind, got: %v", err)
	}
	if domain.HintOf(err) == "" {
		t.Fatalf("expected an auth remedy hint on the error")
	}
}

func TestCount_ServerErrorIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))

	_, err := c.Count(context.Background(), "claude-sonnet-4-5-20250929", "text")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !domain.IsKind(err, domain.KindService) {
		t.Fatalf("expected service kind, got: %v", err)
	}
}
