package api

import (
	"encoding/json"
	"net/http"

	"github.com/vocdoni/payments-backend/errors"
	"github.com/vocdoni/payments-backend/stripe"
	"github.com/vocdoni/payments-backend/validator"
)

// createPaymentIntentHandler opens a payment intent on the processor for the
// requested plan and amount. The request is validated before any processor
// call: planType, currency and amount are mandatory. The returned client
// secret is consumed by the caller's client-side payment UI, which is also
// the one confirming the charge; this handler never confirms anything.
func (a *API) createPaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	if a.stripe == nil {
		errors.ErrStripeError.Withf("payment processor is not configured").Write(w)
		return
	}
	req := &PaymentIntentRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}

	if err := a.validator.Validate(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errors.ErrInvalidPaymentFields.WithErr(verrs).Write(w)
			return
		}
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return
	}

	result, err := a.stripe.CreatePaymentIntent(&stripe.PaymentIntentRequest{
		PlanType:      req.PlanType,
		Currency:      req.Currency,
		Amount:        req.Amount,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
	})
	if err != nil {
		errors.ErrStripeError.Withf("cannot create payment intent: %v", err).Write(w)
		return
	}

	data := &PaymentIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
	}
	if result.CustomerID != "" {
		data.CustomerID = &result.CustomerID
	}
	httpWriteJSON(w, data)
}
