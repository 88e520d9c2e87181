package transcript

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"
)

// Provider fetches the full spoken-text transcript for a video as a
// single string, trying languages in the order given.
type Provider interface {
	GetTranscript(ctx context.Context, videoID string, languages []string) (string, error)
}

// Sentinel failures every implementation maps its backend errors onto.
// The pipeline converts each into a user-facing validation error.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscriptFound   = errors.New("no transcript found in the requested languages")
	ErrVideoUnavailable    = errors.New("video is unavailable")
)

// isTransportError reports whether err describes a connectivity
// failure (DNS, refused connection, timeout, cancellation) rather
// than a verdict about the video. Transport failures must not map
// onto the sentinels: the sentinels become user-facing validation
// errors, and a broken connection is not the caller's mistake.
func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

type Config struct {
	// Optional residential proxy pool credentials. When both are set,
	// all requests route through the proxy instead of a direct
	// connection.
	ProxyUsername string
	ProxyPassword string

	FetchTimeout time.Duration

	// Outbound requests per second against YouTube.
	RequestsPerSecond float64
}
