// Package stripe provides integration with the Stripe payment service,
// handling payment intents, subscription lookups, and webhook events.
package stripe

import (
	"net/http"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	stripecustomer "github.com/stripe/stripe-go/v82/customer"
	stripepaymentintent "github.com/stripe/stripe-go/v82/paymentintent"
	stripesubscription "github.com/stripe/stripe-go/v82/subscription"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

// apiTimeout bounds every round trip to the Stripe API. A timed out call
// surfaces as a regular api_call_failed error.
const apiTimeout = 30 * time.Second

// PaymentIntentParams holds parameters for creating a payment intent.
// Amount is a count of minor currency units and Currency is expected to be
// lower-cased already by the caller.
type PaymentIntentParams struct {
	Amount      int64
	Currency    string
	CustomerID  string
	Description string
	Metadata    map[string]string
}

// Processor is the narrow surface of the payment processor consumed by the
// service layer. It exists so the orchestration logic can be exercised with a
// substitute implementation in tests.
type Processor interface {
	CreateCustomer(email, name string) (*stripeapi.Customer, error)
	FindCustomerByEmail(email string) (*stripeapi.Customer, error)
	CreatePaymentIntent(params *PaymentIntentParams) (*stripeapi.PaymentIntent, error)
	FirstActiveSubscription(customerID string) (*stripeapi.Subscription, error)
	ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error)
}

// Client wraps the Stripe API client with additional functionality
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config *Config) *Client {
	stripeapi.Key = config.APIKey
	stripeapi.SetBackend(stripeapi.APIBackend, stripeapi.GetBackendWithConfig(
		stripeapi.APIBackend,
		&stripeapi.BackendConfig{
			HTTPClient: &http.Client{Timeout: apiTimeout},
		},
	))

	return &Client{config: config}
}

// ValidateWebhookEvent validates and parses a webhook event. The payload must
// be the exact raw request body bytes; any re-serialization would change the
// byte layout and invalidate the signature.
func (c *Client) ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error) {
	event, err := stripewebhook.ConstructEvent(payload, signatureHeader, c.config.WebhookSecret)
	if err != nil {
		return nil, NewStripeError("webhook_validation", "webhook signature validation failed", err)
	}
	return &event, nil
}

// CreateCustomer creates a new customer with the given email and optional name.
func (*Client) CreateCustomer(email, name string) (*stripeapi.Customer, error) {
	params := &stripeapi.CustomerParams{
		Email: stripeapi.String(email),
	}
	if name != "" {
		params.Name = stripeapi.String(name)
	}

	customer, err := stripecustomer.New(params)
	if err != nil {
		return nil, NewStripeError("api_call_failed", "failed to create customer", err)
	}
	return customer, nil
}

// FindCustomerByEmail retrieves the first customer exactly matching the given
// email address.
func (*Client) FindCustomerByEmail(email string) (*stripeapi.Customer, error) {
	params := &stripeapi.CustomerListParams{
		Email: stripeapi.String(email),
	}
	params.Limit = stripeapi.Int64(1)

	customers := stripecustomer.List(params)
	if !customers.Next() {
		if err := customers.Err(); err != nil {
			return nil, NewStripeError("api_call_failed", "failed to list customers", err)
		}
		return nil, NewStripeError("customer_not_found", "customer with email "+email+" not found", nil)
	}

	return customers.Customer(), nil
}

// CreatePaymentIntent creates a payment intent for the given parameters. The
// intent is never confirmed here; confirmation is left to the caller's
// client-side payment UI, so automatic payment method selection is enabled.
func (*Client) CreatePaymentIntent(params *PaymentIntentParams) (*stripeapi.PaymentIntent, error) {
	intentParams := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(params.Amount),
		Currency: stripeapi.String(params.Currency),
		Confirm:  stripeapi.Bool(false),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		},
	}
	if params.CustomerID != "" {
		intentParams.Customer = stripeapi.String(params.CustomerID)
	}
	if params.Description != "" {
		intentParams.Description = stripeapi.String(params.Description)
	}
	for k, v := range params.Metadata {
		intentParams.AddMetadata(k, v)
	}

	intent, err := stripepaymentintent.New(intentParams)
	if err != nil {
		return nil, NewStripeError("api_call_failed", "failed to create payment intent", err)
	}
	return intent, nil
}

// FirstActiveSubscription returns the customer's first active subscription
// following the processor's default ordering (most recently created first),
// or nil when the customer has none.
func (*Client) FirstActiveSubscription(customerID string) (*stripeapi.Subscription, error) {
	params := &stripeapi.SubscriptionListParams{
		Customer: stripeapi.String(customerID),
		Status:   stripeapi.String(string(stripeapi.SubscriptionStatusActive)),
	}
	params.Limit = stripeapi.Int64(10)

	subscriptions := stripesubscription.List(params)
	if !subscriptions.Next() {
		if err := subscriptions.Err(); err != nil {
			return nil, NewStripeError("api_call_failed", "failed to list subscriptions", err)
		}
		return nil, nil
	}

	return subscriptions.Subscription(), nil
}
