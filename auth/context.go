package auth

import (
	"context"

	"github.com/hassanaziz0012/yt-video-summarizer/models"
)

type contextKey struct{}

// ContextWithUser returns a context carrying the logged-in user.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the logged-in user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*models.User)
	return user, ok && user != nil
}
