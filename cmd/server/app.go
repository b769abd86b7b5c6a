package main

import (
	"context"

	routes "github.com/civicdev/civicboard/internal/api"
	v1 "github.com/civicdev/civicboard/internal/api/v1"
	"github.com/civicdev/civicboard/internal/config"
	"github.com/civicdev/civicboard/internal/db"
	"github.com/civicdev/civicboard/internal/models"
	comments "github.com/civicdev/civicboard/internal/models/comments"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/internal/moderation"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	log, err := logger.NewLogger()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Close()

	redisClient, err := db.NewRedis(ctx, cfg.RedisAddr, "")
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize Redis")
		panic(err)
	}
	defer redisClient.Close(log)

	gormDB, err := db.NewDB(
		ctx,
		cfg.DSN(),
		models.RegisterModels(),
		db.WithLogger(log),
	)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize PostgreSQL database")
		panic("DB init failed")
	}
	defer db.CloseDB(log)

	if err := models.SeedDemo(ctx, redisClient, gormDB, log); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to seed demo data")
		panic("Seed failed")
	}

	users := user.NewStore(gormDB, redisClient)
	store := comments.NewStore(gormDB, redisClient)
	classifier := moderation.NewClient(cfg.Moderation, log)
	service := moderation.NewService(users, store, store, classifier, log)

	v1.Setup(gormDB, redisClient, log, users, service, cfg.JWTSecret)

	app := fiber.New()
	routes.NewRoutes(ctx, app, cfg, gormDB, log, redisClient, users)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Server stopped")
	}
}
