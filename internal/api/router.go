package routes

import (
	"context"
	"time"

	"github.com/civicdev/civicboard/internal/auth"
	"github.com/civicdev/civicboard/internal/config"
	v1 "github.com/civicdev/civicboard/internal/api/v1"
	storage "github.com/civicdev/civicboard/internal/db"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewRoutes(ctx context.Context, app *fiber.App, cfg *config.Config, db *gorm.DB, log *logger.Logger, rclient *storage.RedisClient, users *user.Store) {
	app.Use(
		logger.SetupLogger(log),
		recover.New(),
		cors.New(
			cors.Config{
				AllowOrigins:     "http://localhost:3000",
				AllowCredentials: true,
				AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			},
		),
		compress.New(
			compress.Config{
				Level: compress.LevelBestCompression,
			},
		),
		limiter.New(
			limiter.Config{
				Expiration: 1 * time.Minute,
				Max:        60,
				KeyGenerator: func(c *fiber.Ctx) string {
					return c.IP()
				},
			},
		),
	)
	app.Use(log.Middleware())

	api := app.Group("/api/v1", auth.SessionMiddleware(auth.Options{
		Users:  users,
		Secret: cfg.JWTSecret,
		Logger: log,
	}))

	api.Get("/users", v1.ListUsers)
	api.Post("/session", v1.SelectUser)

	api.Get("/comments", v1.ListComments)
	api.Post("/comments", v1.CreateComment)
	api.Post("/comments/:id/flag", v1.FlagComment)
	api.Post("/comments/:id/unflag", v1.UnflagComment)

	api.Post("/moderate", v1.Moderate)

	go func() {
		<-ctx.Done()
		rclient.Close(log)
		log.Close()
	}()
}
