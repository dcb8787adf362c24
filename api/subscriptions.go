package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/payments-backend/errors"
)

// subscriptionStatusHandler looks up the customer matching the email path
// parameter and reports its first active subscription. A missing customer or
// an empty subscription list is a regular response, not an error.
func (a *API) subscriptionStatusHandler(w http.ResponseWriter, r *http.Request) {
	if a.stripe == nil {
		errors.ErrStripeError.Withf("payment processor is not configured").Write(w)
		return
	}
	email := chi.URLParam(r, "customerEmail")
	if email == "" {
		errors.ErrMalformedURLParam.Withf("customerEmail is required").Write(w)
		return
	}

	status, err := a.stripe.SubscriptionStatus(email)
	if err != nil {
		errors.ErrStripeError.Withf("cannot get subscription status: %v", err).Write(w)
		return
	}

	httpWriteJSON(w, status)
}
