package api

import (
	"io"
	"net/http"

	"github.com/vocdoni/payments-backend/errors"
	"github.com/vocdoni/payments-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

// MaxBodyBytes bounds the webhook request body size.
const MaxBodyBytes = int64(65536)

// webhookHandler handles the incoming webhook events from Stripe. The raw,
// unparsed body bytes are handed to signature verification together with the
// Stripe-Signature header; parsing the body first would re-serialize it and
// invalidate the signature. Verification failure is answered with a client
// error and no event processing occurs. A dispatch failure after successful
// verification is a server error, a distinct status class.
func (a *API) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if a.stripe == nil {
		errors.ErrStripeError.Withf("payment processor is not configured").Write(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("stripe webhook: error reading request body: %s", err.Error())
		errors.ErrMalformedBody.Write(w)
		return
	}

	signatureHeader := r.Header.Get("Stripe-Signature")
	if signatureHeader == "" {
		errors.ErrInvalidSignature.Withf("missing Stripe-Signature header").Write(w)
		return
	}

	if err := a.stripe.HandleWebhookEvent(payload, signatureHeader); err != nil {
		if stripe.IsValidationError(err) {
			errors.ErrInvalidSignature.WithErr(err).Write(w)
			return
		}
		errors.ErrStripeWebhookError.WithErr(err).Write(w)
		return
	}

	httpWriteJSON(w, &WebhookResponse{Received: true})
}
