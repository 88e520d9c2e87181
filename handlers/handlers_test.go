package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
	"github.com/hassanaziz0012/yt-video-summarizer/pipeline"
)

type fakeMetadata struct {
	info models.VideoInfo
}

func (f *fakeMetadata) GetInfo(ctx context.Context, videoID string) (models.VideoInfo, error) {
	return f.info, nil
}

type fakeTranscript struct {
	text string
	err  error
}

func (f *fakeTranscript) GetTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	return f.text, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return f.summary, f.err
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	p := pipeline.New(
		&fakeMetadata{info: models.VideoInfo{Title: "A Video", Thumbnail: "https://img.example/t.jpg"}},
		&fakeTranscript{text: "spoken words"},
		&fakeSummarizer{summary: "- a point"},
		[]string{"en"},
	)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/api/summarize", NewSummarizeHandler(p).HandleSummarize)
	app.Get("/health", HealthCheck)
	return app
}

func postForm(t *testing.T, app *fiber.App, form url.Values, accept string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/summarize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	return resp, string(body)
}

func TestHandleSummarizeBatch(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"video_url": {"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}}
	resp, body := postForm(t, app, form, "")

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		VideoID   string `json:"video_id"`
		Title     string `json:"video_title"`
		Thumbnail string `json:"thumbnail"`
		Summary   string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if payload.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video_id dQw4w9WgXcQ, got %q", payload.VideoID)
	}
	if payload.Title != "A Video" {
		t.Errorf("expected video_title, got %q", payload.Title)
	}
	if payload.Summary != "- a point" {
		t.Errorf("expected summary, got %q", payload.Summary)
	}
}

func TestHandleSummarizeBadURL(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"video_url": {"https://example.com/not-a-video"}}
	resp, body := postForm(t, app, form, "")

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.Error == "" {
		t.Error("expected an error message")
	}
}

func TestHandleSummarizeRejectsNonHTTPURL(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"video_url": {"ftp://www.youtube.com/watch?v=dQw4w9WgXcQ"}}
	resp, body := postForm(t, app, form, "")

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "http") {
		t.Errorf("expected scheme rejection message, got %s", body)
	}
}

func TestHandleSummarizeMissingURL(t *testing.T) {
	app := newTestApp(t)

	resp, _ := postForm(t, app, url.Values{}, "")

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestHandleSummarizeStream(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"video_url": {"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}}
	resp, body := postForm(t, app, form, "text/event-stream")

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected event-stream content type, got %q", ct)
	}

	var eventNames []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "event: ") {
			eventNames = append(eventNames, strings.TrimPrefix(line, "event: "))
		}
	}

	want := []string{"progress", "progress", "progress", "complete"}
	if len(eventNames) != len(want) {
		t.Fatalf("expected events %v, got %v\nbody:\n%s", want, eventNames, body)
	}
	for i := range want {
		if eventNames[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], eventNames[i])
		}
	}

	if !strings.Contains(body, `"video_id":"dQw4w9WgXcQ"`) {
		t.Errorf("expected complete event payload in body:\n%s", body)
	}
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}
