package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hassanaziz0012/yt-video-summarizer/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultOEmbedEndpoint = "https://www.youtube.com/oembed"
	thumbnailTemplate     = "https://img.youtube.com/vi/%s/hqdefault.jpg"
)

// OEmbedProvider fetches the video title from YouTube's public oEmbed
// endpoint. The thumbnail URL is derived deterministically from the
// video ID, so it survives any fetch failure.
type OEmbedProvider struct {
	endpoint   string
	httpClient *http.Client
	logger     *logrus.Logger
}

type OEmbedOption func(*OEmbedProvider)

// WithEndpoint overrides the oEmbed endpoint. Used by tests.
func WithEndpoint(endpoint string) OEmbedOption {
	return func(p *OEmbedProvider) {
		p.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client used for title lookups.
func WithHTTPClient(client *http.Client) OEmbedOption {
	return func(p *OEmbedProvider) {
		p.httpClient = client
	}
}

func NewOEmbedProvider(opts ...OEmbedOption) *OEmbedProvider {
	p := &OEmbedProvider{
		endpoint:   defaultOEmbedEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetInfo never returns an error: on any fetch or decode failure the
// title is left empty and the deterministic thumbnail is kept.
func (p *OEmbedProvider) GetInfo(ctx context.Context, videoID string) (models.VideoInfo, error) {
	info := models.VideoInfo{
		Thumbnail: fmt.Sprintf(thumbnailTemplate, videoID),
	}

	title, err := p.fetchTitle(ctx, videoID)
	if err != nil {
		p.logger.WithError(err).WithField("video_id", videoID).
			Warn("Failed to fetch video title, continuing without it")
		return info, nil
	}

	info.Title = title
	return info, nil
}

func (p *OEmbedProvider) fetchTitle(ctx context.Context, videoID string) (string, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	reqURL := fmt.Sprintf("%s?url=%s&format=json", p.endpoint, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	return payload.Title, nil
}
