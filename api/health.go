package api

import (
	"net/http"
)

// healthHandler reports the service is up.
func (a *API) healthHandler(w http.ResponseWriter, _ *http.Request) {
	httpWriteJSON(w, &HealthResponse{
		Status:      "OK",
		Message:     "payments backend is running",
		Environment: a.environment,
	})
}

// testHandler reports whether the processor client is configured. It does not
// perform a processor round trip.
func (a *API) testHandler(w http.ResponseWriter, _ *http.Request) {
	stripeStatus := "Not connected"
	if a.stripeConfigured {
		stripeStatus = "Connected"
	}
	httpWriteJSON(w, &TestResponse{
		Message:     "payments backend test endpoint",
		Stripe:      stripeStatus,
		Environment: a.environment,
	})
}
