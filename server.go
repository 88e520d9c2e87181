package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hassanaziz0012/yt-video-summarizer/auth"
	"github.com/hassanaziz0012/yt-video-summarizer/config"
	"github.com/hassanaziz0012/yt-video-summarizer/handlers"
	"github.com/hassanaziz0012/yt-video-summarizer/pipeline"
	"github.com/hassanaziz0012/yt-video-summarizer/repository"
	"github.com/hassanaziz0012/yt-video-summarizer/repository/sqlite"
)

func runServe(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		return err
	}

	initLogging(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summarizerClient, err := newSummarizer(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Summarizer configuration error")
		return err
	}

	// The oauth profile needs the user store and consent flow; the
	// public profile runs without either.
	var (
		manager *auth.Manager
		users   repository.UserRepository
	)
	if cfg.Profile == config.ProfileOAuth {
		db, err := sqlite.InitDB(cfg.Database.Path)
		if err != nil {
			log.WithError(err).Error("Failed to initialize database")
			return err
		}
		defer db.Close()

		users = sqlite.NewUserRepository(db)
		manager, err = auth.NewManager(cfg.OAuth, users)
		if err != nil {
			log.WithError(err).Error("Failed to initialize OAuth")
			return err
		}
	}

	metadataProvider, transcriptProvider := newProviders(cfg, manager)
	p := pipeline.New(metadataProvider, transcriptProvider, summarizerClient, cfg.Transcript.Languages)

	app := newApp(cfg, p, manager, users)

	// Graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	addr := ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("Server starting")

	if err := app.Listen(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Server error")
		return err
	}

	return nil
}

func newApp(
	cfg *config.Config,
	p *pipeline.Pipeline,
	manager *auth.Manager,
	users repository.UserRepository,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.Debug,
		AppName:               "yt-video-summarizer",
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.New().String()
		},
	}))

	app.Use(fiberlogger.New())

	app.Use(cors.New())

	if cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.RequestsPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}))
	}

	app.Use(compress.New())
	app.Use(etag.New())

	if users != nil {
		app.Use(handlers.SessionMiddleware(users))
	}

	summarizeHandler := handlers.NewSummarizeHandler(p)
	app.Post("/api/summarize", summarizeHandler.HandleSummarize)

	if manager != nil {
		authHandler := handlers.NewAuthHandler(manager)
		app.Get("/auth/login", authHandler.HandleLogin)
		app.Get("/auth/google-oauth-callback", authHandler.HandleCallback)
		app.Get("/auth/logout", authHandler.HandleLogout)
	}

	app.Get("/health", handlers.HealthCheck)

	// Static front-end shell
	app.Static("/", cfg.StaticDir)

	return app
}
