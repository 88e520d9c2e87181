package repository

import (
	"context"

	"github.com/hassanaziz0012/yt-video-summarizer/models"
)

// UserRepository stores accounts created through the OAuth flow.
type UserRepository interface {
	// Save upserts the user keyed by email and fills in the assigned ID.
	Save(ctx context.Context, user *models.User) error

	// Find returns the user with the given ID.
	Find(ctx context.Context, id int64) (*models.User, error)
}
