package transcript

import (
	"context"
	"io"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ytapi "google.golang.org/api/youtube/v3"
)

const defaultCaptionFormat = "srt"

// APIClientSource builds an authenticated YouTube Data API client for
// the current request. Satisfied by auth.Manager.
type APIClientSource interface {
	YouTubeService(ctx context.Context) (*ytapi.Service, error)
}

// CaptionsProvider downloads caption tracks through the authenticated
// YouTube Data API. Used by the oauth deployment profile. Returns the
// raw subtitle content in srt format.
type CaptionsProvider struct {
	source APIClientSource
	format string
	logger *logrus.Logger
}

func NewCaptionsProvider(source APIClientSource) *CaptionsProvider {
	return &CaptionsProvider{
		source: source,
		format: defaultCaptionFormat,
		logger: logrus.StandardLogger(),
	}
}

func (p *CaptionsProvider) GetTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	svc, err := p.source.YouTubeService(ctx)
	if err != nil {
		return "", err
	}

	list, err := svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		if isTransportError(err) {
			return "", pkgerrors.Wrapf(err, "listing captions for %s", videoID)
		}
		return "", pkgerrors.Wrapf(ErrVideoUnavailable, "listing captions for %s: %v", videoID, err)
	}

	if len(list.Items) == 0 {
		return "", pkgerrors.Wrapf(ErrTranscriptsDisabled, "video %s has no caption tracks", videoID)
	}

	captionID, ok := findTrack(list.Items, languages)
	if !ok {
		return "", pkgerrors.Wrapf(ErrNoTranscriptFound, "video %s has no track for %v", videoID, languages)
	}

	p.logger.WithFields(logrus.Fields{
		"video_id":   videoID,
		"caption_id": captionID,
		"format":     p.format,
	}).Debug("Downloading caption track")

	resp, err := svc.Captions.Download(captionID).Tfmt(p.format).Context(ctx).Download()
	if err != nil {
		return "", pkgerrors.Wrapf(err, "downloading caption %s", captionID)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "reading caption %s", captionID)
	}

	return string(content), nil
}

// findTrack returns the ID of the first caption track whose language
// prefix-matches one of the requested tags, in request order.
func findTrack(items []*ytapi.Caption, languages []string) (string, bool) {
	for _, want := range languages {
		for _, item := range items {
			if item.Snippet == nil {
				continue
			}
			if strings.HasPrefix(item.Snippet.Language, want) {
				return item.Id, true
			}
		}
	}
	return "", false
}
