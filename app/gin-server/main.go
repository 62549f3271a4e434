package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/okembo/profilehub/config"
	"github.com/okembo/profilehub/internal/api/handlers"
	"github.com/okembo/profilehub/internal/api/middleware"
	"github.com/okembo/profilehub/internal/api/routes"
	"github.com/okembo/profilehub/internal/cache"
	"github.com/okembo/profilehub/internal/identity"
	"github.com/okembo/profilehub/internal/logger"
	"github.com/okembo/profilehub/internal/repositories/cached"
	pgrepo "github.com/okembo/profilehub/internal/repositories/postgres"
	"github.com/okembo/profilehub/internal/services"
	"github.com/okembo/profilehub/internal/storage"
)

const profileCacheTTL = 5 * time.Minute

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	log.Info("PostgreSQL connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	bucket := os.Getenv("AVATAR_BUCKET")
	if bucket == "" {
		bucket = "avatars"
	}
	objects, err := storage.NewGCSStore(context.Background(), bucket)
	if err != nil {
		log.Fatalf("object store init error: %v", err)
	}
	defer objects.Close()

	notifier := identity.NewNotifier()
	idc := identity.NewContextClient(notifier)

	profiles := cached.NewProfileRepository(
		pgrepo.NewProfileRepo(config.PostgresDB),
		cache.NewRedisCache(config.RedisClient),
		profileCacheTTL,
	)
	events := services.NewRedisEvents(config.RedisClient, log)

	workflows := services.NewRegistry(func() *services.Workflow {
		return services.NewWorkflow(idc, profiles, objects, events, log)
	})

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Profile:  handlers.NewProfileHandler(workflows, log),
		WS:       handlers.NewWSHandler(idc, config.RedisClient, log),
		Notifier: notifier,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
