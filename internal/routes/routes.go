package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dialtag/dialtag/internal/config"
	"github.com/dialtag/dialtag/internal/middleware"
	"github.com/dialtag/dialtag/internal/notification"
	"github.com/dialtag/dialtag/internal/profile"
	"github.com/dialtag/dialtag/internal/session"
	"github.com/dialtag/dialtag/internal/tag"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce backing stores outside development, even though config also checks.
	if !d.Cfg.IsDevelopment() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Stores: Postgres when available, then Redis, then in-memory fallback.
	var profileRepo profile.Repository
	switch {
	case d.DB != nil:
		profileRepo = profile.NewPostgresRepository(d.DB)
	case d.Cache != nil:
		profileRepo = profile.NewRedisRepository(d.Cache)
	default:
		profileRepo = profile.NewMemoryRepository()
	}

	var sessionStore session.Store
	if d.Cache != nil {
		sessionStore = session.NewRedisStore(d.Cache)
	} else {
		sessionStore = session.NewMemoryStore()
	}
	sessions, err := session.NewHolder(context.Background(), sessionStore, d.Logger)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	profiles := profile.NewService(profileRepo, profile.UUIDGenerator)
	notifier := notification.NewLoggerNotifier(d.Logger)
	tags := tag.NewService(profiles, sessions, notifier, d.Logger)
	scanner := tag.NewSimulatedSource(profileRepo)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterProfileRoutes(api, profiles, sessions, d.Logger)
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit)
	RegisterAuthRoutes(api, profiles, sessions, rateLimiter)
	RegisterTagRoutes(api, tags, scanner)

	return nil
}
