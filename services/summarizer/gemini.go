package summarizer

import (
	"context"
	"strings"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClient calls the Gemini API directly through the official SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *logrus.Logger
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	const op = "summarizer.NewGeminiClient"

	if cfg.APIKey == "" {
		return nil, errors.InvalidInput(op, nil, "GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to initialize Gemini client")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logrus.StandardLogger(),
	}, nil
}

func (c *GeminiClient) Summarize(ctx context.Context, text string) (string, error) {
	const op = "summarizer.GeminiClient.Summarize"

	c.logger.WithField("model", c.model).Debug("Sending prompt to Gemini")

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(BuildPrompt(text)), nil)
	if err != nil {
		return "", errors.Internal(op, err, "Summarization request failed")
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", errors.Internal(op, nil, "Summarization backend returned an empty response")
	}

	return summary, nil
}
