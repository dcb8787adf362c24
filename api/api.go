// Package api provides the HTTP API for the payments backend: it brokers
// payment intent creation, subscription status lookups and processor webhook
// notifications between client applications and the payment processor.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/payments-backend/stripe"
	"github.com/vocdoni/payments-backend/validator"
	"go.vocdoni.io/dvote/log"
)

// requestTimeout bounds the handling of every non-webhook request, covering
// the processor round trip it may perform.
const requestTimeout = 30 * time.Second

// Config collects everything the API server needs. It is built once at
// process start and injected here; no component reads ambient globals.
type Config struct {
	Host        string
	Port        int
	Environment string
	// AllowedOrigins is the CORS allow-list for browser clients.
	AllowedOrigins []string
	// Stripe is the payment processor service. The API only brokers; all
	// payment state of record lives on the processor's side.
	Stripe *stripe.Service
	// StripeConfigured reports whether a processor API key was supplied,
	// exposed through the test endpoint.
	StripeConfigured bool
}

// API type represents the payments API HTTP server.
type API struct {
	stripe           *stripe.Service
	validator        *validator.Validator
	host             string
	port             int
	environment      string
	allowedOrigins   []string
	stripeConfigured bool
	router           *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	return &API{
		stripe:           conf.Stripe,
		validator:        validator.New(),
		host:             conf.Host,
		port:             conf.Port,
		environment:      conf.Environment,
		allowedOrigins:   conf.AllowedOrigins,
		stripeConfigured: conf.StripeConfigured,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.Router()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Router creates the router with all the routes and middleware.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(a.recoverer)
	r.Use(middleware.Throttle(100))

	// unmatched routes answer with a JSON 404 naming the method and path
	r.NotFound(a.notFoundHandler)
	r.MethodNotAllowed(a.notFoundHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		log.Infow("new route", "method", "GET", "path", healthEndpoint)
		r.Get(healthEndpoint, a.healthHandler)
		log.Infow("new route", "method", "GET", "path", testEndpoint)
		r.Get(testEndpoint, a.testHandler)
		log.Infow("new route", "method", "POST", "path", createPaymentIntentEndpoint)
		r.Post(createPaymentIntentEndpoint, a.createPaymentIntentHandler)
		log.Infow("new route", "method", "GET", "path", subscriptionStatusEndpoint)
		r.Get(subscriptionStatusEndpoint, a.subscriptionStatusHandler)
	})

	// The webhook route stays outside the timeout group: its handler needs
	// the raw body bytes and writes its own status codes.
	log.Infow("new route", "method", "POST", "path", webhookEndpoint)
	r.Post(webhookEndpoint, a.webhookHandler)

	a.router = r
	return r
}
