package main

import (
	"fmt"
	"log"

	"mediaup/internal/config"
	"mediaup/internal/handler"
	"mediaup/internal/router"
	"mediaup/internal/service"
	s3storage "mediaup/internal/storage/s3"
	"mediaup/internal/validate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.JWT)

	// Initialize handlers
	authH := handler.NewAuthHandler(tokenSvc)
	uploadH := handler.NewUploadHandler(s3Client, validate.New(), &cfg.S3)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(tokenSvc, authH, uploadH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
