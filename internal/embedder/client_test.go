package embedder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestServer creates an httptest.Server that responds with the given
// status code and body bytes. The caller must call Close on the returned
// server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

func successBody(vector []float32) []byte {
	resp := embedResponse{}
	resp.Data = append(resp.Data, struct {
		Embedding []float32 `json:"embedding"`
	}{Embedding: vector})
	b, _ := json.Marshal(resp)
	return b
}

// TestEmbedSuccess verifies the happy path returns the service's vector.
func TestEmbedSuccess(t *testing.T) {
	want := []float32{0.1, -0.2, 0.3}
	srv := newTestServer(t, http.StatusOK, successBody(want))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model", 5*time.Second)
	got, err := c.Embed(context.Background(), "some article text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("vector length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vector[%d]: got %f, want %f", i, got[i], want[i])
		}
	}
}

// TestEmbedAPIError verifies non-200 responses surface as errors with the
// status code.
func TestEmbedAPIError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, []byte(`{"error":"overloaded"}`))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model", 5*time.Second)
	_, err := c.Embed(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("expected status error, got %v", err)
	}
}

// TestEmbedEmptyResponse verifies an empty data array is an error rather
// than a nil vector.
func TestEmbedEmptyResponse(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"data":[]}`))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model", 5*time.Second)
	if _, err := c.Embed(context.Background(), "text"); err == nil {
		t.Error("expected error for empty embedding data")
	}
}

// TestEmbedUnconfigured verifies the disabled client reports itself
// instead of dialing.
func TestEmbedUnconfigured(t *testing.T) {
	c := NewClient("", "", "", 0)
	if c.IsConfigured() {
		t.Error("expected IsConfigured() = false for empty base URL")
	}
	if _, err := c.Embed(context.Background(), "text"); err == nil {
		t.Error("expected error from unconfigured client")
	}
}

// TestEmbedHonoursContext verifies cancellation aborts the request.
func TestEmbedHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can detect the
		// client closing the connection; otherwise r.Context() is never
		// cancelled and srv.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model", 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := c.Embed(ctx, "text"); err == nil {
		t.Error("expected context deadline error")
	}
}
