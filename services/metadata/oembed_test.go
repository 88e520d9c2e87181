package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOEmbedProviderGetInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("expected format=json, got %q", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "Never Gonna Give You Up", "author_name": "Rick Astley"}`))
	}))
	defer server.Close()

	provider := NewOEmbedProvider(WithEndpoint(server.URL))

	info, err := provider.GetInfo(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetInfo() error = %v", err)
	}

	if info.Title != "Never Gonna Give You Up" {
		t.Errorf("expected title from oembed, got %q", info.Title)
	}

	wantThumb := "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	if info.Thumbnail != wantThumb {
		t.Errorf("expected thumbnail %q, got %q", wantThumb, info.Thumbnail)
	}
}

func TestOEmbedProviderDegradesOnFetchFailure(t *testing.T) {
	// Point at a server that is already closed to simulate a network
	// failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewOEmbedProvider(
		WithEndpoint(server.URL),
		WithHTTPClient(&http.Client{Timeout: time.Second}),
	)

	info, err := provider.GetInfo(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetInfo() should never fail, got error: %v", err)
	}

	if info.Title != "" {
		t.Errorf("expected empty title on fetch failure, got %q", info.Title)
	}

	wantThumb := "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	if info.Thumbnail != wantThumb {
		t.Errorf("expected deterministic thumbnail %q, got %q", wantThumb, info.Thumbnail)
	}
}

func TestOEmbedProviderDegradesOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOEmbedProvider(WithEndpoint(server.URL))

	info, err := provider.GetInfo(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetInfo() should never fail, got error: %v", err)
	}
	if info.Title != "" {
		t.Errorf("expected empty title on 404, got %q", info.Title)
	}
	if info.Thumbnail == "" {
		t.Error("expected thumbnail to survive fetch failure")
	}
}
