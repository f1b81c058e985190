package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/linesheet-app/linesheet-golang/internal/auth"
	"github.com/linesheet-app/linesheet-golang/internal/config"
	"github.com/linesheet-app/linesheet-golang/internal/database"
	"github.com/linesheet-app/linesheet-golang/internal/email"
	"github.com/linesheet-app/linesheet-golang/internal/handlers"
	"github.com/linesheet-app/linesheet-golang/internal/routes"
	"github.com/linesheet-app/linesheet-golang/internal/shopify"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The JWT package signs and validates with this secret everywhere.
	auth.Init(cfg.JWTSecret)

	// 1. --- Database Connection ---
	db, err := database.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Shopify Admin API Client ---
	shopifyClient := shopify.NewClient(cfg.Shopify, nil)

	// 3. --- Outbound Email ---
	mailer := email.NewService(cfg.SendGrid.APIKey, cfg.SendGrid.FromAddress)

	// --- Application Setup ---
	// We inject ALL dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:      db,
		Shopify: shopifyClient,
		Mailer:  mailer,
	}

	// --- 4. Background Worker (Cron) ---
	// Runs every 1 hour to clear expired verification codes.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Background Worker Started: purging expired verification codes...")

		for range ticker.C {
			app.PurgeExpiredArtifacts()
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	log.Printf("Starting Linesheet API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
