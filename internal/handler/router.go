package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/driveeasy/driveeasy-api/internal/middleware"
	"github.com/driveeasy/driveeasy-api/shared/auth"
)

// NewRouter wires the REST routes. Listing and fetching cars is public;
// everything else requires a bearer token.
func NewRouter(
	jwtAuth auth.JWTAuthenticator,
	allowedOrigin string,
	authHandler *AuthHandler,
	carHandler *CarHandler,
	bookingHandler *BookingHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	requireAuth := middleware.RequireAuth(jwtAuth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.With(requireAuth).Post("/refresh", authHandler.Refresh)
		})

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", carHandler.List)
			r.With(requireAuth).Get("/owner", carHandler.ListByOwner)
			r.Get("/{id}", carHandler.GetByID)
			r.With(requireAuth).Post("/", carHandler.Create)
			r.With(requireAuth).Put("/{id}", carHandler.Update)
			r.With(requireAuth).Delete("/{id}", carHandler.Delete)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", bookingHandler.Create)
			r.Get("/user", bookingHandler.ListForUser)
			r.Get("/{id}", bookingHandler.GetByID)
		})
	})

	return r
}
