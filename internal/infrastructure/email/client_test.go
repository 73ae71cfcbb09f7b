package email

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ArticleAllocator/internal/source"
)

func TestFetchReturnsEmailBodies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header: %q", got)
		}
		_, _ = w.Write([]byte(`{"emails":[{"body":"AB123 TEX 12"},{"body":""},{"body":"CD456 5"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "secret")

	bodies, err := client.Fetch(context.Background(), source.Request{SourceName: "inbox", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("expected 2 non-empty bodies, got %d", len(bodies))
	}
	if bodies[0] != "AB123 TEX 12" || bodies[1] != "CD456 5" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}

func TestFetchWebhookError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mailbox unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), "")

	if _, err := client.Fetch(context.Background(), source.Request{URL: server.URL}); err == nil {
		t.Fatal("expected error on webhook failure")
	}
}
