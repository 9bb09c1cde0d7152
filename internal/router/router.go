package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/galagram/galagram-api/internal/api/auth"
	"github.com/galagram/galagram-api/internal/api/destination"
	"github.com/galagram/galagram-api/internal/api/itinerary"
	"github.com/galagram/galagram-api/internal/api/recommendation"
	"github.com/galagram/galagram-api/internal/api/review"
)

// Config carries the handlers and middleware the router mounts.
type Config struct {
	AuthHandler           *auth.Handler
	DestinationHandler    *destination.Handler
	ItineraryHandler      *itinerary.Handler
	RecommendationHandler *recommendation.Handler
	ReviewHandler         *review.Handler

	Authenticate func(http.Handler) http.Handler
	RequireAdmin func(http.Handler) http.Handler
}

// SetupRouter wires all API routes. Server-wide middleware (request ID,
// logging, recovery) is applied by the caller before mounting.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes.
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.Refresh)

			r.Get("/destinations", cfg.DestinationHandler.GetDestinations)
			r.Get("/destinations/{destinationID}", cfg.DestinationHandler.GetDestination)

			r.Get("/recommendations", cfg.RecommendationHandler.GetRecommendations)
			r.Get("/recommendations/search", cfg.RecommendationHandler.Search)
			r.Get("/recommendations/status", cfg.RecommendationHandler.Status)
			r.Post("/recommendations/itinerary", cfg.RecommendationHandler.SuggestItinerary)

			r.Get("/reviews", cfg.ReviewHandler.GetReviews)
		})

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Put("/auth/password", cfg.AuthHandler.UpdatePassword)

			r.Get("/itineraries", cfg.ItineraryHandler.GetItineraries)
			r.Post("/itineraries", cfg.ItineraryHandler.CreateItinerary)
			r.Get("/itineraries/{itineraryID}", cfg.ItineraryHandler.GetItinerary)
			r.Delete("/itineraries/{itineraryID}", cfg.ItineraryHandler.DeleteItinerary)
			r.Get("/itineraries/{itineraryID}/export", cfg.ItineraryHandler.ExportItinerary)
			r.Post("/itineraries/{itineraryID}/activities", cfg.ItineraryHandler.AddActivity)
			r.Delete("/itineraries/{itineraryID}/activities/{activityID}", cfg.ItineraryHandler.DeleteActivity)

			r.Get("/favorites", cfg.DestinationHandler.GetFavorites)
			r.Post("/favorites/{destinationID}", cfg.DestinationHandler.ToggleFavorite)

			r.Post("/chat", cfg.RecommendationHandler.Chat)
			r.Get("/chat/history", cfg.RecommendationHandler.ChatHistory)

			r.Post("/reviews", cfg.ReviewHandler.CreateReview)
			r.Put("/reviews/{reviewID}", cfg.ReviewHandler.UpdateReview)
			r.Delete("/reviews/{reviewID}", cfg.ReviewHandler.DeleteReview)
			r.Post("/reviews/{reviewID}/like", cfg.ReviewHandler.LikeReview)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Use(cfg.RequireAdmin)

			r.Post("/admin/destinations", cfg.DestinationHandler.CreateDestination)
			r.Put("/admin/destinations/{destinationID}", cfg.DestinationHandler.UpdateDestination)
			r.Delete("/admin/destinations/{destinationID}", cfg.DestinationHandler.DeleteDestination)
		})
	})

	return r
}
