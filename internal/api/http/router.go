package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"carsharing-backend/internal/metrics"
	"carsharing-backend/internal/security"
	"carsharing-backend/internal/service"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Auth           service.AuthService
	Users          service.UserService
	Cars           service.CarService
	Rentals        service.RentalService
	Payments       service.PaymentService
	Tokens         security.TokenManager
	Metrics        *metrics.Metrics
	DB             Pinger
	AllowedOrigins []string
	RequestTimeout time.Duration
	// Extra registers routes that bypass authentication, such as the mock
	// checkout page.
	Extra func(r *mux.Router)
}

func NewRouter(d RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.Use(Recover, Observe(d.Metrics), Timeout(d.RequestTimeout))

	r.HandleFunc("/health", healthHandler(d.DB)).Methods(http.MethodGet)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}
	if d.Extra != nil {
		d.Extra(r)
	}

	api := r.PathPrefix("/").Subrouter()
	api.Use(NewAuthMiddleware(d.Tokens, d.Users).Handler)

	auth := NewAuthHandler(d.Auth)
	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	cars := NewCarHandler(d.Cars)
	api.HandleFunc("/cars", cars.Create).Methods(http.MethodPost)
	api.HandleFunc("/cars", cars.List).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", cars.Get).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", cars.Update).Methods(http.MethodPut)
	api.HandleFunc("/cars/{id}", cars.Delete).Methods(http.MethodDelete)

	rentals := NewRentalHandler(d.Rentals)
	api.HandleFunc("/rentals", rentals.Book).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/return", rentals.Return).Methods(http.MethodPost)

	payments := NewPaymentHandler(d.Payments)
	api.HandleFunc("/payments", payments.Create).Methods(http.MethodPost)
	api.HandleFunc("/payments", payments.List).Methods(http.MethodGet)
	api.HandleFunc("/payments/success/{sessionId}", payments.Success).Methods(http.MethodGet)
	api.HandleFunc("/payments/cancel/{sessionId}", payments.Cancel).Methods(http.MethodGet)

	users := NewUserHandler(d.Users)
	api.HandleFunc("/users/me", users.Me).Methods(http.MethodGet)
	api.HandleFunc("/users/me", users.UpdateMe).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}/role", users.ToggleRole).Methods(http.MethodPut)

	return cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(r)
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeErrorMessage(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
