package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hassanaziz0012/yt-video-summarizer/auth"
	"github.com/hassanaziz0012/yt-video-summarizer/config"
	"github.com/hassanaziz0012/yt-video-summarizer/logger"
	"github.com/hassanaziz0012/yt-video-summarizer/pipeline"
	"github.com/hassanaziz0012/yt-video-summarizer/services/metadata"
	"github.com/hassanaziz0012/yt-video-summarizer/services/summarizer"
	"github.com/hassanaziz0012/yt-video-summarizer/services/transcript"
)

func main() {
	// Load .env file if present (silently ignore if missing)
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "yt-summarizer",
		Short:         "Summarize YouTube videos from their transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <video_url>",
		Short: "Summarize a single video and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummarize,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Check the backend credential before any network call.
	summarizerClient, err := newSummarizer(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Summarizer configuration error")
		return err
	}

	// The CLI always runs the unauthenticated providers; the OAuth
	// profile only applies to the server, where a browser session
	// exists.
	p := pipeline.New(
		metadata.NewOEmbedProvider(),
		newPublicTranscriptProvider(cfg),
		summarizerClient,
		cfg.Transcript.Languages,
	)

	log.Info("Extracting video ID...")
	result, err := p.Run(ctx, args[0])
	if err != nil {
		log.WithError(err).Error("Summarization failed")
		return err
	}

	title := result.Title
	if title == "" {
		title = "Unknown Title"
	}

	divider := strings.Repeat("=", 50)
	fmt.Println("\n" + divider)
	fmt.Printf("SUMMARY: %s\n", title)
	fmt.Println(divider + "\n")
	fmt.Println(result.Summary)
	fmt.Println("\n" + divider)

	return nil
}

func newSummarizer(ctx context.Context, cfg *config.Config) (summarizer.Client, error) {
	switch cfg.Summarizer.Backend {
	case config.SummarizerRelay:
		return summarizer.NewRelayClient(summarizer.RelayConfig{
			URL:       cfg.Summarizer.RelayURL,
			AccessKey: cfg.Summarizer.RelayAccessKey,
			Model:     cfg.Summarizer.RelayModel,
			Timeout:   cfg.Summarizer.RequestTimeout,
		})
	default:
		return summarizer.NewGeminiClient(ctx, summarizer.GeminiConfig{
			APIKey: cfg.Summarizer.GeminiAPIKey,
			Model:  cfg.Summarizer.GeminiModel,
		})
	}
}

func newPublicTranscriptProvider(cfg *config.Config) transcript.Provider {
	if cfg.Transcript.Source == config.TranscriptSourceTranscriptAPI {
		return transcript.NewTranscriptAPIProvider()
	}
	return transcript.NewInnertubeProvider(transcript.Config{
		ProxyUsername:     cfg.Transcript.ProxyUsername,
		ProxyPassword:     cfg.Transcript.ProxyPassword,
		FetchTimeout:      cfg.Transcript.FetchTimeout,
		RequestsPerSecond: cfg.Transcript.RequestsPerSecond,
	})
}

// newProviders wires the provider implementations for the configured
// deployment profile. The oauth manager is only built for the oauth
// profile.
func newProviders(cfg *config.Config, manager *auth.Manager) (metadata.Provider, transcript.Provider) {
	if cfg.Profile == config.ProfileOAuth {
		return metadata.NewAPIProvider(manager), transcript.NewCaptionsProvider(manager)
	}
	return metadata.NewOEmbedProvider(), newPublicTranscriptProvider(cfg)
}

func initLogging(cfg *config.Config) {
	if err := logger.Init(cfg.LogDir, cfg.Debug); err != nil {
		logrus.WithError(err).Warn("Failed to initialize file logging, using stdout only")
	}
}
