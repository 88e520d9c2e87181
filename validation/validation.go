package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
)

// Recognized URL shapes, in priority order. Matching is substring
// search: a valid ID pattern anywhere in the string satisfies the
// shape. The video ID is always exactly 11 characters of
// [A-Za-z0-9_-].
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
//
// Supported formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID
//   - https://youtu.be/VIDEO_ID
//   - https://www.youtube.com/embed/VIDEO_ID
func ExtractVideoID(rawURL string) (string, error) {
	const op = "validation.ExtractVideoID"

	for _, pattern := range videoIDPatterns {
		if matches := pattern.FindStringSubmatch(rawURL); len(matches) > 1 {
			return matches[1], nil
		}
	}

	return "", errors.InvalidInput(
		op,
		nil,
		fmt.Sprintf("Could not extract video ID from URL: %s", rawURL),
	)
}

// ValidateURL performs basic sanity checks on a user-supplied URL
// before any extraction is attempted.
func ValidateURL(rawURL string) error {
	const op = "validation.ValidateURL"

	if strings.TrimSpace(rawURL) == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsed, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must start with http or https")
	}

	if parsed.Host == "" {
		return errors.InvalidInput(op, nil, "URL must have a host")
	}

	return nil
}
