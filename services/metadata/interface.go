package metadata

import (
	"context"

	"github.com/hassanaziz0012/yt-video-summarizer/models"
)

// Provider returns display metadata for a video ID. Implementations
// degrade gracefully: a missing or unreachable video yields empty
// fields, not an error, so the pipeline can still proceed to the
// transcript and summary stages.
type Provider interface {
	GetInfo(ctx context.Context, videoID string) (models.VideoInfo, error)
}
