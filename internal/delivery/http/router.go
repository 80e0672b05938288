package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	bookingController *controllers.BookingController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)
	requireUser := middleware.RequireRole(domain.RoleUser)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /users/me", requireAuth(authController.Me))

	// Events
	mux.HandleFunc("POST /events", requireAuth(requireAdmin(eventController.CreateEvent)))
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)

	// Bookings
	mux.HandleFunc("POST /events/{eventID}/bookings", requireAuth(requireUser(bookingController.Book)))
	mux.HandleFunc("GET /users/me/bookings", requireAuth(bookingController.ListMyBookings))
	mux.HandleFunc("GET /admin/bookings", requireAuth(requireAdmin(bookingController.ListAllBookings)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
