package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/pipeline"
	"github.com/sirupsen/logrus"
)

// SummarizeHandler serves the summarization endpoint in both delivery
// modes: synchronous JSON and Server-Sent Events.
type SummarizeHandler struct {
	pipeline *pipeline.Pipeline
	logger   *logrus.Logger
}

func NewSummarizeHandler(p *pipeline.Pipeline) *SummarizeHandler {
	return &SummarizeHandler{
		pipeline: p,
		logger:   logrus.StandardLogger(),
	}
}

// ErrorHandler converts any error escaping a handler into the
// two-tier response shape: validation messages pass through with
// their 4xx status, everything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := errors.Code(err)
	message := errors.ClientMessage(err)

	entry := logrus.WithFields(logrus.Fields{
		"request_id": c.GetRespHeader("X-Request-ID"),
		"path":       c.Path(),
		"method":     c.Method(),
		"status":     code,
	})

	if code >= 500 {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithError(err).Info("Request rejected")
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

// HealthCheck handles GET /health.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
