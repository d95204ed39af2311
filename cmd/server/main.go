package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azurvoyages/tours-api/internal/auth"
	"github.com/azurvoyages/tours-api/internal/config"
	"github.com/azurvoyages/tours-api/internal/database"
	"github.com/azurvoyages/tours-api/internal/handlers"
	"github.com/azurvoyages/tours-api/internal/images"
	"github.com/azurvoyages/tours-api/internal/notifier"
	"github.com/azurvoyages/tours-api/internal/repository"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Notification channels, both optional
	discordNotifier, err := notifier.NewDiscordNotifier(cfg)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	}
	mailer, err := notifier.NewMailer(cfg)
	if err != nil {
		log.Printf("Mailer not initialized: %v", err)
	}

	// Repositories
	tourRepo := repository.NewTourRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	shuttleRepo := repository.NewShuttleRepository(db)

	// Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	tourHandler := handlers.NewTourHandler(tourRepo, authHandler)
	var bookingNotifier notifier.Notifier
	if discordNotifier != nil {
		bookingNotifier = discordNotifier
	}
	bookingHandler := handlers.NewBookingHandler(bookingRepo, tourRepo, bookingNotifier, authHandler)
	shuttleHandler := handlers.NewShuttleHandler(shuttleRepo, authHandler)
	emailHandler := handlers.NewEmailHandler(mailer)

	// Image pipeline
	imageStore := images.NewStore(cfg.ImagesDirectory)
	imageHandler := images.NewHandler(imageStore, images.DefaultConverter(), authHandler, cfg.PublicImagePath)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, authHandler, tourHandler, bookingHandler, shuttleHandler, emailHandler, imageHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
