package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type RelayConfig struct {
	URL          string
	AccessKey    string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// RelayClient posts prompts to an intermediary HTTP service that
// forwards them to a text-generation model and returns the generated
// text.
type RelayClient struct {
	config     RelayConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

type relayRequest struct {
	Prompt       string `json:"prompt"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

type relayResponse struct {
	Text string `json:"text"`
}

func NewRelayClient(cfg RelayConfig) (*RelayClient, error) {
	const op = "summarizer.NewRelayClient"

	if cfg.AccessKey == "" {
		return nil, errors.InvalidInput(op, nil, "ARMY_ACCESS_KEY environment variable is not set")
	}
	if cfg.URL == "" {
		return nil, errors.InvalidInput(op, nil, "RELAY_URL environment variable is not set")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &RelayClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logrus.StandardLogger(),
	}, nil
}

func (c *RelayClient) Summarize(ctx context.Context, text string) (string, error) {
	const op = "summarizer.RelayClient.Summarize"

	body, err := json.Marshal(relayRequest{
		Prompt:       BuildPrompt(text),
		Model:        c.config.Model,
		SystemPrompt: c.config.SystemPrompt,
	})
	if err != nil {
		return "", errors.Internal(op, err, "Failed to encode relay request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Internal(op, err, "Failed to build relay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AccessKey)

	c.logger.WithField("model", c.config.Model).Debug("Sending prompt to relay backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Internal(op, err, "Summarization request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.Internal(
			op,
			pkgerrors.Errorf("relay returned status %d: %s", resp.StatusCode, respBody),
			"Summarization request failed",
		)
	}

	var payload relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Internal(op, err, "Failed to decode relay response")
	}

	if payload.Text == "" {
		return "", errors.Internal(op, nil, "Summarization backend returned an empty response")
	}

	return payload.Text, nil
}
