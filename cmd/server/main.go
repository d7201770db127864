// Command main is the entry point for the Draftly backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MayankPrasher/draftly-backend/internal/bootstrap"
	"github.com/MayankPrasher/draftly-backend/internal/config"
	"github.com/MayankPrasher/draftly-backend/internal/media"
	"github.com/MayankPrasher/draftly-backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, redisClient, tracingShutdown, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	var uploader media.Uploader
	if cfg.CloudinaryURL != "" {
		up, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to configure Cloudinary: %v", err)
		}
		uploader = up
	} else {
		log.Println("CLOUDINARY_URL not set; image uploads disabled, posts fall back to the placeholder image")
	}

	srv, err := server.NewServerWithDeps(cfg, db, redisClient, uploader)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := tracingShutdown(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	log.Fatal(srv.Start())
}
