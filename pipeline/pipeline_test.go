package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
	pkgerrors "github.com/pkg/errors"

	"github.com/hassanaziz0012/yt-video-summarizer/services/transcript"
)

type fakeMetadata struct {
	info models.VideoInfo
	err  error
}

func (f *fakeMetadata) GetInfo(ctx context.Context, videoID string) (models.VideoInfo, error) {
	return f.info, f.err
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
	calls   int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.summary, f.err
}

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func newTestPipeline(meta *fakeMetadata, tr *fakeTranscript, sum *fakeSummarizer) *Pipeline {
	return New(meta, tr, sum, []string{"en"})
}

func TestRunSuccess(t *testing.T) {
	p := newTestPipeline(
		&fakeMetadata{info: models.VideoInfo{Title: "A Video", Thumbnail: "https://img.example/t.jpg"}},
		&fakeTranscript{text: "some spoken words"},
		&fakeSummarizer{summary: "- a point"},
	)

	result, err := p.Run(context.Background(), testURL)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video ID dQw4w9WgXcQ, got %q", result.VideoID)
	}
	if result.Title != "A Video" {
		t.Errorf("expected title, got %q", result.Title)
	}
	if result.Summary != "- a point" {
		t.Errorf("expected summary, got %q", result.Summary)
	}
}

func TestRunInvalidURL(t *testing.T) {
	p := newTestPipeline(&fakeMetadata{}, &fakeTranscript{}, &fakeSummarizer{})

	_, err := p.Run(context.Background(), "https://example.com/nothing")
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRunMetadataFailureIsNotTerminal(t *testing.T) {
	sum := &fakeSummarizer{summary: "- a point"}
	p := newTestPipeline(
		&fakeMetadata{err: fmt.Errorf("network down")},
		&fakeTranscript{text: "words"},
		sum,
	)

	result, err := p.Run(context.Background(), testURL)
	if err != nil {
		t.Fatalf("Run() should survive metadata failure, got %v", err)
	}
	if result.Title != "" {
		t.Errorf("expected empty title after metadata failure, got %q", result.Title)
	}
	if sum.calls != 1 {
		t.Errorf("expected summarizer to be called once, got %d", sum.calls)
	}
}

func TestRunTranscriptErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantCode    int
	}{
		{
			name:        "disabled",
			err:         pkgerrors.Wrap(transcript.ErrTranscriptsDisabled, "video x"),
			wantMessage: "disabled",
			wantCode:    400,
		},
		{
			name:        "no transcript",
			err:         transcript.ErrNoTranscriptFound,
			wantMessage: "No transcript found",
			wantCode:    400,
		},
		{
			name:        "unavailable",
			err:         transcript.ErrVideoUnavailable,
			wantMessage: "unavailable",
			wantCode:    400,
		},
		{
			name:        "unexpected",
			err:         fmt.Errorf("connection reset"),
			wantMessage: "unexpected error",
			wantCode:    500,
		},
		{
			name:        "transport failure",
			err:         &url.Error{Op: "Get", URL: "https://www.youtube.com", Err: fmt.Errorf("connection refused")},
			wantMessage: "unexpected error",
			wantCode:    500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(&fakeMetadata{}, &fakeTranscript{err: tt.err}, &fakeSummarizer{})

			_, err := p.Run(context.Background(), testURL)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Code(err); got != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, got)
			}
			if msg := errors.ClientMessage(err); !strings.Contains(msg, tt.wantMessage) {
				t.Errorf("expected client message containing %q, got %q", tt.wantMessage, msg)
			}
		})
	}
}

func collectEvents(t *testing.T, p *Pipeline, url string) []models.Event {
	t.Helper()
	var events []models.Event
	p.Stream(context.Background(), url, func(ev models.Event) error {
		events = append(events, ev)
		return nil
	})
	return events
}

func TestStreamSuccessSequence(t *testing.T) {
	p := newTestPipeline(
		&fakeMetadata{info: models.VideoInfo{Title: "A Video"}},
		&fakeTranscript{text: "words"},
		&fakeSummarizer{summary: "- a point"},
	)

	events := collectEvents(t, p, testURL)

	want := []models.EventType{
		models.EventProgress,
		models.EventProgress,
		models.EventProgress,
		models.EventComplete,
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Errorf("event %d: expected %s, got %s", i, typ, events[i].Type)
		}
	}

	final := events[len(events)-1]
	if final.Result == nil || final.Result.Summary != "- a point" {
		t.Errorf("expected complete event to carry the payload, got %+v", final)
	}
}

func TestStreamFailureSequence(t *testing.T) {
	p := newTestPipeline(
		&fakeMetadata{},
		&fakeTranscript{err: transcript.ErrTranscriptsDisabled},
		&fakeSummarizer{},
	)

	events := collectEvents(t, p, testURL)

	if len(events) == 0 {
		t.Fatal("expected events")
	}
	final := events[len(events)-1]
	if final.Type != models.EventError {
		t.Fatalf("expected terminal error event, got %s", final.Type)
	}
	if !strings.Contains(final.Error, "disabled") {
		t.Errorf("expected error message containing 'disabled', got %q", final.Error)
	}

	for _, ev := range events[:len(events)-1] {
		if ev.Terminal() {
			t.Errorf("found terminal event before the last one: %+v", ev)
		}
	}
}

func TestStreamInvalidURLEmitsSingleError(t *testing.T) {
	p := newTestPipeline(&fakeMetadata{}, &fakeTranscript{}, &fakeSummarizer{})

	events := collectEvents(t, p, "not a url")

	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	if events[0].Type != models.EventError {
		t.Errorf("expected error event, got %s", events[0].Type)
	}
}

func TestStreamStopsWhenConsumerGone(t *testing.T) {
	sum := &fakeSummarizer{summary: "- a point"}
	p := newTestPipeline(&fakeMetadata{}, &fakeTranscript{text: "words"}, sum)

	var events []models.Event
	p.Stream(context.Background(), testURL, func(ev models.Event) error {
		events = append(events, ev)
		if len(events) == 2 {
			return fmt.Errorf("client disconnected")
		}
		return nil
	})

	if len(events) != 2 {
		t.Fatalf("expected event production to stop after disconnect, got %d events", len(events))
	}
	if sum.calls != 0 {
		t.Errorf("expected no summarizer call after disconnect, got %d", sum.calls)
	}
}
