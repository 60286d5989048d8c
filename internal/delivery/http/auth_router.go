package http

import (
	"net/http"

	"consultation-booking/internal/delivery/http/handler"
	"consultation-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// AuthRouter wires the identity service: public register/login plus the
// internal endpoint other services call to validate tokens.
type AuthRouter struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	corsMiddleware *middleware.CORSMiddleware
}

func NewAuthRouter(
	authHandler *handler.AuthHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *AuthRouter {
	return &AuthRouter{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		corsMiddleware: corsMiddleware,
	}
}

func (r *AuthRouter) Setup() *mux.Router {
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Service-to-service validation endpoint
	r.router.HandleFunc("/internal/validate-token", r.authHandler.ValidateToken).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *AuthRouter) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
