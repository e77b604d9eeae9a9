package main

import (
	"cafeteria/internal/config"
	"cafeteria/internal/database"
	"cafeteria/internal/migrations"
	"cafeteria/internal/repository"
	"cafeteria/internal/services"
	"context"
	"fmt"
	"log"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	// Create or update tables; existing orders are kept
	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	fmt.Println("Creating default admin user...")
	userService := services.NewUserService(repository.NewUserRepository(db))
	if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Println("Creating sample menu...")
	if err := migrations.SeedMenu(ctx, db); err != nil {
		log.Fatal("Failed to seed menu:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}
