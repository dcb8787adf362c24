package api

// PaymentIntentRequest is the body of a create-payment-intent request.
// PlanType, Currency and Amount are mandatory; Amount is a positive count of
// minor currency units (e.g. cents). CustomerEmail and CustomerName are
// optional hints for the best-effort customer association and are not
// validated here: a bad email fails on the processor side without blocking
// the charge.
type PaymentIntentRequest struct {
	PlanType      string `json:"planType" validate:"required"`
	Currency      string `json:"currency" validate:"required"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
}

// PaymentIntentResponse carries the client-usable payment handle back to the
// caller. CustomerID is null when no customer record was associated.
type PaymentIntentResponse struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	CustomerID      *string `json:"customerId"`
}

// WebhookResponse acknowledges receipt of a verified webhook event.
type WebhookResponse struct {
	Received bool `json:"received"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
}

// TestResponse reports whether the processor client is configured.
type TestResponse struct {
	Message     string `json:"message"`
	Stripe      string `json:"stripe"`
	Environment string `json:"environment"`
}
