package stripe

import (
	"fmt"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.vocdoni.io/dvote/log"
)

// defaultPlanName is used when the subscription price carries no nickname.
const defaultPlanName = "Premium"

// paymentSource tags created payment intents so they can be traced back to
// this backend on the processor's side.
const paymentSource = "payments-backend"

// PaymentIntentRequest carries a validated charge request into the service.
type PaymentIntentRequest struct {
	PlanType      string
	Currency      string
	Amount        int64
	CustomerEmail string
	CustomerName  string
}

// PaymentIntentResult is returned to the caller after an intent is created.
// ClientSecret is an opaque token consumed by the caller's client-side payment
// UI. It must never be logged or persisted.
type PaymentIntentResult struct {
	ClientSecret    string
	PaymentIntentID string
	CustomerID      string
}

// SubscriptionStatus is the response shape of a subscription status lookup.
type SubscriptionStatus struct {
	HasSubscription bool                 `json:"hasSubscription"`
	Message         string               `json:"message,omitempty"`
	Subscription    *SubscriptionDetails `json:"subscription,omitempty"`
}

// SubscriptionDetails describes a single active subscription.
type SubscriptionDetails struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"currentPeriodEnd"`
	PlanName         string `json:"planName"`
}

// Service provides the main business logic for Stripe operations
type Service struct {
	client          Processor
	config          *Config
	processedEvents *MemoryEventStore
}

// NewService creates a new Stripe service backed by the given processor
// client. Pass NewClient(config) for the real SDK-backed client.
func NewService(config *Config, client Processor) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("processor client is required")
	}

	return &Service{
		client:          client,
		config:          config,
		processedEvents: NewMemoryEventStore(24 * time.Hour),
	}, nil
}

// Close releases the service's background resources.
func (s *Service) Close() {
	s.processedEvents.Close()
}

// CreatePaymentIntent creates a payment intent for the given request. When a
// customer email is provided, the customer record is created or reused on a
// best-effort basis: a failure there is logged and the payment flow proceeds
// without a customer association, since payment capability must not be
// blocked by customer-record bookkeeping.
func (s *Service) CreatePaymentIntent(req *PaymentIntentRequest) (*PaymentIntentResult, error) {
	var customerID string
	if req.CustomerEmail != "" {
		customer, err := s.ensureCustomer(req.CustomerEmail, req.CustomerName)
		if err != nil {
			log.Warnw("proceeding without customer association",
				"email", req.CustomerEmail, "error", err.Error())
		} else if customer != nil {
			customerID = customer.ID
		}
	}

	metadata := map[string]string{
		"plan_type": req.PlanType,
		"source":    paymentSource,
	}
	if req.CustomerEmail != "" {
		metadata["customer_email"] = req.CustomerEmail
	}

	intent, err := s.client.CreatePaymentIntent(&PaymentIntentParams{
		Amount:      req.Amount,
		Currency:    strings.ToLower(req.Currency),
		CustomerID:  customerID,
		Description: fmt.Sprintf("Payment for %s plan", req.PlanType),
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	log.Infow("payment intent created",
		"paymentIntent", intent.ID, "plan", req.PlanType, "amount", req.Amount)
	return &PaymentIntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		CustomerID:      customerID,
	}, nil
}

// ensureCustomer reuses an existing customer matching the email, creating a
// new one when none exists.
func (s *Service) ensureCustomer(email, name string) (*stripeapi.Customer, error) {
	existing, err := s.client.FindCustomerByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !isCode(err, "customer_not_found") {
		return nil, err
	}
	return s.client.CreateCustomer(email, name)
}

// SubscriptionStatus looks up the customer matching the given email and
// reports its first active subscription, following the processor's default
// ordering. Absence of a customer or of active subscriptions is a regular
// response, not an error.
func (s *Service) SubscriptionStatus(email string) (*SubscriptionStatus, error) {
	customer, err := s.client.FindCustomerByEmail(email)
	if err != nil || customer == nil {
		if err == nil || isCode(err, "customer_not_found") {
			return &SubscriptionStatus{
				HasSubscription: false,
				Message:         "Customer not found",
			}, nil
		}
		return nil, err
	}

	subscription, err := s.client.FirstActiveSubscription(customer.ID)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return &SubscriptionStatus{
			HasSubscription: false,
			Message:         "No active subscriptions found",
		}, nil
	}

	details := &SubscriptionDetails{
		ID:       subscription.ID,
		Status:   string(subscription.Status),
		PlanName: defaultPlanName,
	}
	if subscription.Items != nil && len(subscription.Items.Data) > 0 {
		item := subscription.Items.Data[0]
		details.CurrentPeriodEnd = item.CurrentPeriodEnd
		if item.Price != nil && item.Price.Nickname != "" {
			details.PlanName = item.Price.Nickname
		}
	}

	return &SubscriptionStatus{
		HasSubscription: true,
		Subscription:    details,
	}, nil
}
