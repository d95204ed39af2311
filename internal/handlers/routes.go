package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/azurvoyages/tours-api/internal/auth"
	"github.com/azurvoyages/tours-api/internal/config"
	"github.com/azurvoyages/tours-api/internal/images"
)

func bearerSecurity(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func RegisterRoutes(
	r *chi.Mux,
	cfg *config.Config,
	authHandler *auth.AuthHandler,
	tourHandler *TourHandler,
	bookingHandler *BookingHandler,
	shuttleHandler *ShuttleHandler,
	emailHandler *EmailHandler,
	imageHandler *images.Handler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}

	// Login throttling, by client IP. Stands in for the login firewall
	// limiter of conventional stacks.
	loginLimiter := httprate.LimitByIP(cfg.LoginRateLimit, time.Duration(cfg.LoginRateWindowSeconds)*time.Second)
	r.Use(func(next http.Handler) http.Handler {
		limited := loginLimiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodPost && req.URL.Path == "/api/login" {
				limited.ServeHTTP(w, req)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Azur Tours API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, humaConfig)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Image routes bypass the huma pipeline: retrieval is public and
	// upload/delete resolve the bearer token by hand.
	r.Route("/api/images", imageHandler.Routes)

	// Auth
	huma.Post(api, "/api/register", authHandler.HandleRegister, created)
	huma.Post(api, "/api/login", authHandler.HandleLogin)
	huma.Get(api, "/api/me", authHandler.HandleMe, bearerSecurity)
	huma.Post(api, "/api/refresh", authHandler.HandleRefresh, bearerSecurity)
	huma.Post(api, "/api/users/{id}/promote", authHandler.HandlePromote, bearerSecurity)

	// Tours
	huma.Get(api, "/api/tours", tourHandler.HandleList, bearerSecurity)
	huma.Post(api, "/api/tours", tourHandler.HandleCreate, bearerSecurity, created)
	huma.Get(api, "/api/tours/{id}", tourHandler.HandleGet, bearerSecurity)
	huma.Put(api, "/api/tours/{id}", tourHandler.HandleUpdate, bearerSecurity)
	huma.Patch(api, "/api/tours/{id}", tourHandler.HandleUpdate, bearerSecurity)
	huma.Delete(api, "/api/tours/{id}", tourHandler.HandleDelete, bearerSecurity)

	// Tour image associations
	huma.Post(api, "/api/tours/{id}/images", tourHandler.HandleAddImages, bearerSecurity)
	huma.Put(api, "/api/tours/{id}/images", tourHandler.HandleReplaceImages, bearerSecurity)
	huma.Patch(api, "/api/tours/{id}/images", tourHandler.HandleReplaceImages, bearerSecurity)
	huma.Delete(api, "/api/tours/{id}/images", tourHandler.HandleRemoveImage, bearerSecurity)

	// Bookings
	huma.Get(api, "/api/bookings", bookingHandler.HandleList, bearerSecurity)
	huma.Post(api, "/api/bookings", bookingHandler.HandleCreate, bearerSecurity, created)
	huma.Get(api, "/api/bookings/{id}", bookingHandler.HandleGet, bearerSecurity)
	huma.Put(api, "/api/bookings/{id}", bookingHandler.HandleUpdate, bearerSecurity)
	huma.Patch(api, "/api/bookings/{id}", bookingHandler.HandleUpdate, bearerSecurity)
	huma.Delete(api, "/api/bookings/{id}", bookingHandler.HandleDelete, bearerSecurity)

	// Shuttle schedules
	huma.Get(api, "/api/shuttle-schedules", shuttleHandler.HandleList, bearerSecurity)
	huma.Post(api, "/api/shuttle-schedules", shuttleHandler.HandleCreate, bearerSecurity, created)
	huma.Get(api, "/api/shuttle-schedules/{id}", shuttleHandler.HandleGet, bearerSecurity)
	huma.Put(api, "/api/shuttle-schedules/{id}", shuttleHandler.HandleUpdate, bearerSecurity)
	huma.Patch(api, "/api/shuttle-schedules/{id}", shuttleHandler.HandleUpdate, bearerSecurity)
	huma.Delete(api, "/api/shuttle-schedules/{id}", shuttleHandler.HandleDelete, bearerSecurity)

	// Email
	huma.Post(api, "/api/send-email", emailHandler.HandleSendEmail)
}
