package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/eventflow-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
	secured(o)
}

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, eventHandler *EventHandler, registrationHandler *RegistrationHandler, checkInHandler *CheckInHandler) huma.API {
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(authHandler.SessionMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("EventFlow API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	huma.Post(api, "/auth/signup", authHandler.HandleSignUp)
	huma.Post(api, "/auth/signup/complete", authHandler.HandleCompleteSignUp)
	huma.Post(api, "/auth/signin", authHandler.HandleSignIn)
	huma.Post(api, "/auth/signout", authHandler.HandleSignOut)
	huma.Get(api, "/me", authHandler.HandleMe, secured)
	huma.Get(api, "/me/registrations", registrationHandler.HandleMine, secured)

	// Events
	huma.Get(api, "/events", eventHandler.HandleList)
	huma.Post(api, "/events", eventHandler.HandleCreate, created)
	huma.Get(api, "/events/{id}", eventHandler.HandleGet)
	huma.Patch(api, "/events/{id}", eventHandler.HandleUpdate, secured)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDelete, secured)
	huma.Post(api, "/events/{id}/toggle-registration", eventHandler.HandleToggleRegistration, secured)
	huma.Get(api, "/events/{id}/stats", eventHandler.HandleStats, secured)
	huma.Get(api, "/events/{id}/qr.png", eventHandler.HandleQR)
	huma.Get(api, "/organizer/events", eventHandler.HandleListMine, secured)

	// Registrations
	huma.Post(api, "/events/{id}/registrations", registrationHandler.HandleRegister)
	huma.Get(api, "/events/{id}/registrations", registrationHandler.HandleListForEvent, secured)
	huma.Get(api, "/events/{id}/registrations/lookup", registrationHandler.HandleLookup)
	huma.Get(api, "/registrations/{id}/qr.png", registrationHandler.HandleQR)

	// Check-in
	huma.Post(api, "/checkin", checkInHandler.HandleScan, secured)
	huma.Post(api, "/registrations/{id}/checkin", checkInHandler.HandleCheckInByID, secured)
	huma.Post(api, "/events/{id}/manual-checkin", checkInHandler.HandleManualCheckIn, created)

	return api
}
