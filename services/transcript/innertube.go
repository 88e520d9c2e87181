package transcript

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const webshareProxyHost = "p.webshare.io:80"

// InnertubeProvider fetches caption tracks straight from YouTube's
// player API, no credentials required. An outbound rate limiter keeps
// request bursts below YouTube's IP-ban threshold; the optional
// Webshare proxy pool sidesteps it entirely.
type InnertubeProvider struct {
	client  *yt.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

func NewInnertubeProvider(cfg Config) *InnertubeProvider {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.ProxyUsername != "" && cfg.ProxyPassword != "" {
		proxyURL := &url.URL{
			Scheme: "http",
			User:   url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword),
			Host:   webshareProxyHost,
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &InnertubeProvider{
		client:  &yt.Client{HTTPClient: httpClient},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logrus.StandardLogger(),
	}
}

func (p *InnertubeProvider) GetTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		if isTransportError(err) {
			return "", pkgerrors.Wrapf(err, "fetching video %s", videoID)
		}
		return "", pkgerrors.Wrapf(ErrVideoUnavailable, "fetching video %s: %v", videoID, err)
	}

	if len(video.CaptionTracks) == 0 {
		return "", pkgerrors.Wrapf(ErrTranscriptsDisabled, "video %s has no caption tracks", videoID)
	}

	lang, ok := matchTrack(video.CaptionTracks, languages)
	if !ok {
		return "", pkgerrors.Wrapf(ErrNoTranscriptFound, "video %s has no track for %v", videoID, languages)
	}

	p.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": lang,
	}).Debug("Downloading caption track")

	segments, err := p.client.GetTranscriptCtx(ctx, video, lang)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "downloading transcript for %s", videoID)
	}

	texts := make([]string, 0, len(segments))
	for _, segment := range segments {
		texts = append(texts, segment.Text)
	}

	return JoinSegments(texts), nil
}

// matchTrack returns the language code of the first caption track
// whose code prefix-matches one of the requested language tags, in
// request order.
func matchTrack(tracks []yt.CaptionTrack, languages []string) (string, bool) {
	for _, want := range languages {
		for _, track := range tracks {
			if strings.HasPrefix(track.LanguageCode, want) {
				return track.LanguageCode, true
			}
		}
	}
	return "", false
}

// JoinSegments concatenates caption segment texts with single-space
// separators, preserving order and skipping empty segments. Pure
// function of its input.
func JoinSegments(texts []string) string {
	parts := make([]string, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
