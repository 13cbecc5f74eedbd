package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gleviosaa/expireTrack/config"
	"github.com/gleviosaa/expireTrack/internal/database"
	"github.com/gleviosaa/expireTrack/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Verify connectivity with a pinged connection before handing the DSN
	// to the ORM.
	sqlDB, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cache, err := database.NewRedisClient(cfg)
	if err != nil {
		// Catalog lookups degrade to direct fetches without the cache.
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		cache = nil
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
	if err != nil {
		log.Printf("S3 unavailable, uploads will fail: %v", err)
		s3cfg = nil
	}

	srv := server.New(cfg, db, cache, s3cfg)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
