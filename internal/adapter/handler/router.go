package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/middleware"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/response"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

type Handlers struct {
	Photographers *PhotographerHandler
	Bookings      *BookingHandler
	Messages      *MessageHandler
	Admin         *AdminHandler
}

type RouterConfig struct {
	Auth           *middleware.Authenticator
	Limiter        *middleware.RateLimiter
	Metrics        *middleware.Metrics
	AllowedOrigins []string
}

// NewRouter wires every route. Write routes are rate limited per caller
// after authentication.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	router := httprouter.New()

	route := func(method, path string, handle httprouter.Handle, mws ...func(httprouter.Handle) httprouter.Handle) {
		router.Handle(method, path, cfg.Metrics.Instrument(path, middleware.Chain(mws...)(handle)))
	}

	signedIn := cfg.Auth.Authenticate
	write := cfg.Limiter.Limit
	client := middleware.RequireRole(domain.RoleClient)
	photographer := middleware.RequireRole(domain.RolePhotographer)
	admin := middleware.RequireRole(domain.RoleAdmin)

	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handler(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	route(http.MethodGet, "/photographers", h.Photographers.Search)
	route(http.MethodGet, "/photographers/:id", h.Photographers.GetProfile)

	route(http.MethodPut, "/me/profile", h.Photographers.SaveProfile, signedIn, photographer, write)
	route(http.MethodPost, "/me/portfolio", h.Photographers.AddPortfolioImage, signedIn, photographer, write)
	route(http.MethodDelete, "/me/portfolio/:index", h.Photographers.RemovePortfolioImage, signedIn, photographer, write)

	route(http.MethodPost, "/bookings", h.Bookings.CreateBooking, signedIn, client, write)
	route(http.MethodGet, "/bookings", h.Bookings.ListBookings, signedIn)
	route(http.MethodPost, "/bookings/:id/confirm", h.Bookings.Confirm, signedIn, write)
	route(http.MethodPost, "/bookings/:id/cancel", h.Bookings.Cancel, signedIn, write)
	route(http.MethodPost, "/bookings/:id/complete", h.Bookings.Complete, signedIn, write)
	route(http.MethodPost, "/bookings/:id/review", h.Bookings.SubmitReview, signedIn, client, write)
	route(http.MethodGet, "/dashboard", h.Bookings.Dashboard, signedIn, photographer)

	route(http.MethodGet, "/messages", h.Messages.Inbox, signedIn)
	route(http.MethodGet, "/messages/:userId", h.Messages.Thread, signedIn)
	route(http.MethodPost, "/messages/:userId", h.Messages.Send, signedIn, write)

	route(http.MethodGet, "/admin/stats", h.Admin.PlatformStats, signedIn, admin)

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusNotFound, "route not found")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	return middleware.AccessLog(corsHandler)
}
