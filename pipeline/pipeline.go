package pipeline

import (
	"context"
	stderrors "errors"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
	"github.com/hassanaziz0012/yt-video-summarizer/services/metadata"
	"github.com/hassanaziz0012/yt-video-summarizer/services/summarizer"
	"github.com/hassanaziz0012/yt-video-summarizer/services/transcript"
	"github.com/hassanaziz0012/yt-video-summarizer/validation"
	"github.com/sirupsen/logrus"
)

// Pipeline sequences one summarization request through its stages:
// extract ID, fetch info, fetch transcript, summarize. Stages run
// strictly in order, no stage is retried, and any failure is terminal
// for the request. Every error leaving the pipeline is an AppError.
type Pipeline struct {
	metadata   metadata.Provider
	transcript transcript.Provider
	summarizer summarizer.Client
	languages  []string
	logger     *logrus.Logger
}

func New(
	metadataProvider metadata.Provider,
	transcriptProvider transcript.Provider,
	summarizerClient summarizer.Client,
	languages []string,
) *Pipeline {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &Pipeline{
		metadata:   metadataProvider,
		transcript: transcriptProvider,
		summarizer: summarizerClient,
		languages:  languages,
		logger:     logrus.StandardLogger(),
	}
}

// Run executes all stages and returns the aggregate payload, or the
// first stage failure mapped onto the error taxonomy.
func (p *Pipeline) Run(ctx context.Context, videoURL string) (*models.Summary, error) {
	videoID, err := validation.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	logger := p.logger.WithField("video_id", videoID)

	info := p.fetchInfo(ctx, videoID)

	logger.Info("Fetching transcript")
	text, err := p.transcript.GetTranscript(ctx, videoID, p.languages)
	if err != nil {
		return nil, p.mapTranscriptError(videoID, err)
	}

	logger.WithField("transcript_length", len(text)).Info("Generating summary")
	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		VideoID:   videoID,
		Title:     info.Title,
		Thumbnail: info.Thumbnail,
		Summary:   summary,
	}, nil
}

// Stream runs the same stage sequence, emitting a Progress event
// before each network stage and exactly one terminal event. A non-nil
// error from emit means the consumer is gone; event production stops
// but the stage in flight is not interrupted.
func (p *Pipeline) Stream(ctx context.Context, videoURL string, emit func(models.Event) error) {
	videoID, err := validation.ExtractVideoID(videoURL)
	if err != nil {
		p.emitError(emit, err)
		return
	}

	if emit(models.Progress("Fetching video info...")) != nil {
		return
	}
	info := p.fetchInfo(ctx, videoID)

	if emit(models.Progress("Fetching transcript...")) != nil {
		return
	}
	text, err := p.transcript.GetTranscript(ctx, videoID, p.languages)
	if err != nil {
		p.emitError(emit, p.mapTranscriptError(videoID, err))
		return
	}

	if emit(models.Progress("Generating summary...")) != nil {
		return
	}
	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		p.emitError(emit, err)
		return
	}

	emit(models.Complete(&models.Summary{
		VideoID:   videoID,
		Title:     info.Title,
		Thumbnail: info.Thumbnail,
		Summary:   summary,
	}))
}

// fetchInfo is never terminal: providers already degrade to empty
// fields, and an unexpected provider error is logged and swallowed so
// the transcript and summary stages still run.
func (p *Pipeline) fetchInfo(ctx context.Context, videoID string) models.VideoInfo {
	info, err := p.metadata.GetInfo(ctx, videoID)
	if err != nil {
		p.logger.WithError(err).WithField("video_id", videoID).
			Warn("Failed to fetch video info, continuing without it")
		return models.VideoInfo{}
	}
	return info
}

func (p *Pipeline) mapTranscriptError(videoID string, err error) error {
	const op = "pipeline.FetchTranscript"

	logger := p.logger.WithError(err).WithField("video_id", videoID)

	switch {
	case stderrors.Is(err, transcript.ErrTranscriptsDisabled):
		logger.Info("Transcripts disabled")
		return errors.InvalidInput(op, err, "Transcripts are disabled for this video")
	case stderrors.Is(err, transcript.ErrNoTranscriptFound):
		logger.Info("No transcript in requested languages")
		return errors.InvalidInput(op, err, "No transcript found for this video in the requested languages")
	case stderrors.Is(err, transcript.ErrVideoUnavailable):
		logger.Info("Video unavailable")
		return errors.InvalidInput(op, err, "This video is unavailable")
	default:
		logger.Error("Transcript fetch failed")
		return errors.Internal(op, err, "Failed to fetch transcript")
	}
}

func (p *Pipeline) emitError(emit func(models.Event) error, err error) {
	if !errors.IsValidation(err) {
		p.logger.WithError(err).Error("Pipeline run failed")
	}
	emit(models.ErrorEvent(errors.ClientMessage(err)))
}
