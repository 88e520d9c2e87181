package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hassanaziz0012/yt-video-summarizer/auth"
	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/repository"
	"github.com/sirupsen/logrus"
)

const (
	sessionCookieName = "session_user_id"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// AuthHandler serves the OAuth login flow (oauth profile only).
type AuthHandler struct {
	manager *auth.Manager
	logger  *logrus.Logger
}

func NewAuthHandler(manager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		manager: manager,
		logger:  logrus.StandardLogger(),
	}
}

// HandleLogin handles GET /auth/login.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	return c.Redirect(h.manager.AuthCodeURL("state"), fiber.StatusFound)
}

// HandleCallback handles GET /auth/google-oauth-callback.
func (h *AuthHandler) HandleCallback(c *fiber.Ctx) error {
	const op = "handlers.AuthHandler.HandleCallback"

	code := c.Query("code")
	if code == "" {
		return errors.InvalidInput(op, nil, "Missing authorization code")
	}

	user, err := h.manager.Exchange(c.UserContext(), code)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    strconv.FormatInt(user.ID, 10),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(sessionMaxAge.Seconds()),
	})

	return c.Redirect("/", fiber.StatusFound)
}

// HandleLogout handles GET /auth/logout.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   -1,
	})

	return c.Redirect("/", fiber.StatusFound)
}

// SessionMiddleware resolves the session cookie to a user and places
// it in the request context for the API providers. Requests without a
// valid session pass through anonymously.
func SessionMiddleware(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Cookies(sessionCookieName)
		if value == "" {
			return c.Next()
		}

		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return c.Next()
		}

		user, err := users.Find(c.UserContext(), id)
		if err != nil {
			return c.Next()
		}

		c.SetUserContext(auth.ContextWithUser(c.UserContext(), user))
		return c.Next()
	}
}
