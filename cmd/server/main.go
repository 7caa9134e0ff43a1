// EstateDesk API Server
//
// Usage:
//
//	server            Start the HTTP server
//	server -migrate   Run database migrations and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/estatedesk/estatedesk/internal/api"
	"github.com/estatedesk/estatedesk/internal/auth"
	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
	"github.com/estatedesk/estatedesk/internal/targets"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "Run migrations and exit")
	migrationsDir := flag.String("migrations-dir", "migrations", "Path to migrations directory")
	flag.Parse()

	ctx := context.Background()

	// Load config from environment
	databaseURL := requireEnv("DATABASE_URL")
	jwtSecret := requireEnv("JWT_SECRET")
	listenAddr := getEnv("LISTEN_ADDR", ":8080")
	targetsFile := os.Getenv("TARGETS_FILE")

	// Connect to database
	database, err := db.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(ctx, *migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete")

	if *migrateOnly {
		log.Println("Migration-only mode, exiting")
		return
	}

	// Initialize auth
	authSvc := auth.New(jwtSecret)

	// Bootstrap the first admin account if the user table is empty
	if err := bootstrapAdmin(ctx, database, authSvc); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	// Load monthly sales targets
	targetsCfg := targets.Default()
	if targetsFile != "" {
		targetsCfg, err = targets.Load(targetsFile)
		if err != nil {
			log.Fatalf("Failed to load targets file: %v", err)
		}
		log.Printf("Loaded sales targets from %s", targetsFile)
	}

	// Create API server
	apiServer := api.NewServer(database, authSvc, targetsCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      apiServer.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("EstateDesk API server starting on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// bootstrapAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no users exist yet. Every later account is created by
// an admin through the API.
func bootstrapAdmin(ctx context.Context, database *db.DB, authSvc *auth.Auth) error {
	count, err := database.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("No users exist and ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping bootstrap")
		return nil
	}

	hash, err := authSvc.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := database.CreateUser(ctx, email, hash, "Administrator", "", domain.RoleAdmin); err != nil {
		return err
	}
	log.Printf("Bootstrapped admin account %s", email)
	return nil
}

func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Fprintf(os.Stderr, "Required environment variable %s is not set\n", key)
		os.Exit(1)
	}
	return val
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
