package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Profile selects which provider implementations are wired at startup.
// The public and oauth profiles are mutually exclusive deployment
// modes; they are never combined in one process.
const (
	ProfilePublic = "public"
	ProfileOAuth  = "oauth"
)

// Transcript sources for the public profile.
const (
	TranscriptSourceInnertube     = "innertube"
	TranscriptSourceTranscriptAPI = "transcriptapi"
)

// Summarizer backends.
const (
	SummarizerGemini = "gemini"
	SummarizerRelay  = "relay"
)

type Config struct {
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Application paths
	LogDir    string `json:"log_dir"`
	StaticDir string `json:"static_dir"`

	// Deployment profile: public or oauth
	Profile string `json:"profile"`

	// Provider configuration
	Transcript TranscriptConfig `json:"transcript"`
	Summarizer SummarizerConfig `json:"summarizer"`
	OAuth      OAuthConfig      `json:"oauth"`

	// Rate limiting (inbound)
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Database settings (oauth profile only)
	Database DatabaseConfig `json:"database"`

	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type TranscriptConfig struct {
	// Source picks the public-profile implementation.
	Source    string   `json:"source"`
	Languages []string `json:"languages"`

	// Optional residential proxy pool credentials. When set, all
	// innertube requests route through the proxy instead of a direct
	// connection.
	ProxyUsername string `json:"-"`
	ProxyPassword string `json:"-"`

	FetchTimeout time.Duration `json:"fetch_timeout"`

	// Outbound requests per second against YouTube.
	RequestsPerSecond float64 `json:"requests_per_second"`
}

type SummarizerConfig struct {
	Backend string `json:"backend"`

	// Direct SDK backend
	GeminiAPIKey string `json:"-"`
	GeminiModel  string `json:"gemini_model"`

	// Relay backend
	RelayURL       string `json:"relay_url"`
	RelayAccessKey string `json:"-"`
	RelayModel     string `json:"relay_model"`

	RequestTimeout time.Duration `json:"request_timeout"`
}

type OAuthConfig struct {
	ClientSecretsFile string `json:"client_secrets_file"`
	RedirectURL       string `json:"redirect_url"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		LogDir:    getEnv("LOG_DIR", "./logs"),
		StaticDir: getEnv("STATIC_DIR", "./static"),

		Profile: getEnv("PROFILE", ProfilePublic),

		Transcript: TranscriptConfig{
			Source:            getEnv("TRANSCRIPT_SOURCE", TranscriptSourceInnertube),
			Languages:         getEnvAsStringSlice("TRANSCRIPT_LANGUAGES", []string{"en"}),
			ProxyUsername:     getEnv("WEBSHARE_PROXY_USERNAME", ""),
			ProxyPassword:     getEnv("WEBSHARE_PROXY_PASSWORD", ""),
			FetchTimeout:      getEnvAsDuration("TRANSCRIPT_FETCH_TIMEOUT", 30*time.Second),
			RequestsPerSecond: getEnvAsFloat("TRANSCRIPT_RPS", 2),
		},

		Summarizer: SummarizerConfig{
			Backend:        getEnv("SUMMARIZER_BACKEND", SummarizerGemini),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			RelayURL:       getEnv("RELAY_URL", ""),
			RelayAccessKey: getEnv("ARMY_ACCESS_KEY", ""),
			RelayModel:     getEnv("RELAY_MODEL", "gemini-2.0-flash"),
			RequestTimeout: getEnvAsDuration("SUMMARIZER_TIMEOUT", 120*time.Second),
		},

		OAuth: OAuthConfig{
			ClientSecretsFile: getEnv("CLIENT_SECRETS_FILE", "client.json"),
			RedirectURL: getEnv(
				"OAUTH_REDIRECT_URL",
				"http://localhost:8080/auth/google-oauth-callback",
			),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
		},

		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/users.db"),
		},

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Profile {
	case ProfilePublic, ProfileOAuth:
	default:
		return fmt.Errorf("unknown profile: %s", c.Profile)
	}

	switch c.Transcript.Source {
	case TranscriptSourceInnertube, TranscriptSourceTranscriptAPI:
	default:
		return fmt.Errorf("unknown transcript source: %s", c.Transcript.Source)
	}

	switch c.Summarizer.Backend {
	case SummarizerGemini, SummarizerRelay:
	default:
		return fmt.Errorf("unknown summarizer backend: %s", c.Summarizer.Backend)
	}

	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if len(c.Transcript.Languages) == 0 {
		return fmt.Errorf("at least one transcript language is required")
	}

	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return strings.Split(value, ",")
		}
	}
	return defaultValue
}
