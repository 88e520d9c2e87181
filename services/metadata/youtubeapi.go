package metadata

import (
	"context"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
	"github.com/sirupsen/logrus"
	ytapi "google.golang.org/api/youtube/v3"
)

// APIClientSource builds an authenticated YouTube Data API client for
// the current request. Satisfied by auth.Manager.
type APIClientSource interface {
	YouTubeService(ctx context.Context) (*ytapi.Service, error)
}

// APIProvider reads metadata through the authenticated YouTube Data
// API. Used by the oauth deployment profile.
type APIProvider struct {
	source APIClientSource
	logger *logrus.Logger
}

func NewAPIProvider(source APIClientSource) *APIProvider {
	return &APIProvider{
		source: source,
		logger: logrus.StandardLogger(),
	}
}

func (p *APIProvider) GetInfo(ctx context.Context, videoID string) (models.VideoInfo, error) {
	const op = "metadata.APIProvider.GetInfo"

	svc, err := p.source.YouTubeService(ctx)
	if err != nil {
		return models.VideoInfo{}, err
	}

	resp, err := svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return models.VideoInfo{}, errors.Internal(op, err, "Failed to fetch video info")
	}

	// Video not found: empty title and thumbnail, not an error.
	if len(resp.Items) == 0 {
		return models.VideoInfo{}, nil
	}

	snippet := resp.Items[0].Snippet
	return models.VideoInfo{
		Title:     snippet.Title,
		Thumbnail: pickThumbnail(snippet.Thumbnails),
	}, nil
}

// pickThumbnail selects the thumbnail by descending resolution
// preference: high, then medium, then default.
func pickThumbnail(thumbnails *ytapi.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	for _, t := range []*ytapi.Thumbnail{thumbnails.High, thumbnails.Medium, thumbnails.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}
