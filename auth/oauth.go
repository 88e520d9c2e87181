package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/hassanaziz0012/yt-video-summarizer/config"
	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
	"github.com/hassanaziz0012/yt-video-summarizer/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

var oauthScopes = []string{
	"https://www.googleapis.com/auth/youtube.force-ssl",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"openid",
}

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Manager runs the OAuth consent flow and builds authenticated YouTube
// API clients for the logged-in user carried in the request context.
type Manager struct {
	config *oauth2.Config
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewManager(cfg config.OAuthConfig, users repository.UserRepository) (*Manager, error) {
	const op = "auth.NewManager"

	data, err := os.ReadFile(cfg.ClientSecretsFile)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to read OAuth client secrets file")
	}

	oauthConfig, err := google.ConfigFromJSON(data, oauthScopes...)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to parse OAuth client secrets file")
	}
	oauthConfig.RedirectURL = cfg.RedirectURL

	return &Manager{
		config: oauthConfig,
		users:  users,
		logger: logrus.StandardLogger(),
	}, nil
}

// AuthCodeURL returns the consent URL the user is redirected to.
func (m *Manager) AuthCodeURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades the authorization code for tokens, fetches the
// user's profile, and upserts the account.
func (m *Manager) Exchange(ctx context.Context, code string) (*models.User, error) {
	const op = "auth.Manager.Exchange"

	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to exchange authorization code")
	}

	profile, err := m.fetchUserinfo(ctx, token)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        profile.Email,
		Name:         profile.Name,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
	}

	if err := m.users.Save(ctx, user); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User authenticated")

	return user, nil
}

type userinfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (m *Manager) fetchUserinfo(ctx context.Context, token *oauth2.Token) (*userinfo, error) {
	const op = "auth.Manager.fetchUserinfo"

	resp, err := m.config.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to fetch user profile")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(op, nil, "Failed to fetch user profile")
	}

	var profile userinfo
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Internal(op, err, "Failed to decode user profile")
	}

	return &profile, nil
}

// YouTubeService builds a YouTube Data API client authenticated as the
// user in ctx. Tokens refresh transparently through the token source.
func (m *Manager) YouTubeService(ctx context.Context) (*ytapi.Service, error) {
	const op = "auth.Manager.YouTubeService"

	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, errors.Unauthorized(op, nil, "Not authenticated. Please log in via /auth/login first")
	}

	token := &oauth2.Token{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		Expiry:       user.TokenExpiry,
	}

	svc, err := ytapi.NewService(ctx, option.WithTokenSource(m.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to build YouTube API client")
	}

	return svc, nil
}
