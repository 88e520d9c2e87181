package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hassanaziz0012/yt-video-summarizer/auth"
	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
	"github.com/hassanaziz0012/yt-video-summarizer/validation"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// HandleSummarize handles POST /api/summarize. Clients that accept
// text/event-stream (or send stream=true) get incremental progress
// events; everyone else gets one JSON payload.
func (h *SummarizeHandler) HandleSummarize(c *fiber.Ctx) error {
	const op = "handlers.HandleSummarize"

	videoURL := c.FormValue("video_url")
	if videoURL == "" {
		return errors.InvalidInput(op, nil, "video_url is required")
	}

	if err := validation.ValidateURL(videoURL); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetRespHeader("X-Request-ID"),
		"video_url":  videoURL,
	}).Info("Received summarize request")

	if wantsEventStream(c) {
		return h.streamSummary(c, videoURL)
	}

	result, err := h.pipeline.Run(c.UserContext(), videoURL)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func wantsEventStream(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), "text/event-stream") ||
		c.FormValue("stream") == "true"
}

func (h *SummarizeHandler) streamSummary(c *fiber.Ctx, videoURL string) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// The fiber context is recycled once this handler returns, so the
	// stream writer must not touch it. Carry the logged-in user (if
	// any) over into a fresh context.
	ctx := context.Background()
	if user, ok := auth.UserFromContext(c.UserContext()); ok {
		ctx = auth.ContextWithUser(ctx, user)
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		h.pipeline.Stream(ctx, videoURL, func(ev models.Event) error {
			return writeEvent(w, ev)
		})
	}))

	return nil
}

// writeEvent writes one event-stream frame: an event name line, a
// data line of JSON, and a blank line. The flush error doubles as the
// disconnect signal for the producer.
func writeEvent(w *bufio.Writer, ev models.Event) error {
	var payload interface{}
	switch ev.Type {
	case models.EventComplete:
		payload = ev.Result
	case models.EventError:
		payload = fiber.Map{"error": ev.Error}
	default:
		payload = fiber.Map{"message": ev.Message}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return err
	}

	return w.Flush()
}
