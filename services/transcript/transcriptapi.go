package transcript

import (
	"context"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"
	pkgerrors "github.com/pkg/errors"
)

// transcriptFetcher is the slice of the yt_transcript client this
// provider needs. Narrowed so tests can inject fakes.
type transcriptFetcher interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// TranscriptAPIProvider fetches transcripts through the community
// transcript-API client library. Alternative public-profile
// implementation to InnertubeProvider.
type TranscriptAPIProvider struct {
	client transcriptFetcher
}

func NewTranscriptAPIProvider() *TranscriptAPIProvider {
	formatter := yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return &TranscriptAPIProvider{
		client: yt_transcript.NewClient(yt_transcript.WithFormatter(formatter)),
	}
}

func (p *TranscriptAPIProvider) GetTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	type result struct {
		text string
		err  error
	}

	resultCh := make(chan result, 1)

	// The client has no context parameter; race it against ctx.
	go func() {
		text, err := p.client.GetFormattedTranscripts(videoID, languages, false)
		resultCh <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		if res.err != nil {
			return "", classifyTranscriptAPIError(videoID, res.err)
		}
		text := strings.Join(strings.Fields(res.text), " ")
		if text == "" {
			return "", pkgerrors.Wrapf(ErrNoTranscriptFound, "video %s returned empty transcript", videoID)
		}
		return text, nil
	}
}

// classifyTranscriptAPIError maps the library's string errors onto the
// provider sentinels.
func classifyTranscriptAPIError(videoID string, err error) error {
	if isTransportError(err) {
		return pkgerrors.Wrapf(err, "fetching transcript for %s", videoID)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return pkgerrors.Wrapf(ErrTranscriptsDisabled, "video %s: %v", videoID, err)
	case strings.Contains(msg, "unavailable"):
		return pkgerrors.Wrapf(ErrVideoUnavailable, "video %s: %v", videoID, err)
	case strings.Contains(msg, "no transcript"):
		return pkgerrors.Wrapf(ErrNoTranscriptFound, "video %s: %v", videoID, err)
	default:
		return pkgerrors.Wrapf(err, "fetching transcript for %s", videoID)
	}
}
