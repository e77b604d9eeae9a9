package main

import (
	"cafeteria/internal/auth"
	"cafeteria/internal/config"
	"cafeteria/internal/database"
	"cafeteria/internal/handlers"
	"cafeteria/internal/migrations"
	"cafeteria/internal/models"
	"cafeteria/internal/redis"
	"cafeteria/internal/repository"
	"cafeteria/internal/services"
	"cafeteria/internal/session"
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// sessionBackend is what the server needs from redis or its in-memory stand-in.
type sessionBackend interface {
	session.Store
	services.ReconciliationStore
}

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ctx := context.Background()
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second

	// Initialize Redis, or keep sessions in memory when it is not configured
	var sessions sessionBackend
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL, sessionTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		sessions = redisClient
	} else {
		log.Println("REDIS_URL not set, sessions are kept in memory")
		sessions = session.NewMemoryStore(sessionTTL)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(menuRepo, cfg.LowStockThreshold)
	orderService := services.NewOrderService(db, menuRepo, orderRepo, orderItemRepo, models.OrderStatus(cfg.OrderInitialStatus))
	favoriteService := services.NewFavoriteService(favoriteRepo, menuRepo)
	ratingService := services.NewRatingService(ratingRepo, orderRepo)
	checkoutService := services.NewCheckoutService(menuRepo, orderService, sessions, sessions)
	reportService := services.NewReportService(orderRepo, menuRepo, userService, sessions, cfg.LowStockThreshold)

	if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	if err := migrations.SeedMenu(ctx, db); err != nil {
		log.Fatal("Failed to seed menu:", err)
	}

	// Initialize handlers
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Second)
	apiHandler := handlers.NewAPIHandler(
		catalogService,
		orderService,
		userService,
		favoriteService,
		ratingService,
		checkoutService,
		reportService,
		sessions,
		tokens,
	)

	// Setup routes
	router := gin.Default()
	apiHandler.Routes(router)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
