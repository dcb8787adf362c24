package stripe

import (
	"encoding/json"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.vocdoni.io/dvote/log"
)

// HandleWebhookEvent verifies and dispatches a webhook event. The payload must
// be the exact raw request body bytes. Signature verification failure is a
// hard rejection: no event processing occurs. Events that were already
// dispatched are acknowledged without dispatching again.
func (s *Service) HandleWebhookEvent(payload []byte, signatureHeader string) error {
	event, err := s.client.ValidateWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	if s.processedEvents.EventExists(event.ID) {
		log.Debugf("stripe webhook: event %s already processed, skipping", event.ID)
		return nil
	}

	if err := s.HandleEvent(event); err != nil {
		return err
	}

	if err := s.processedEvents.MarkProcessed(event.ID); err != nil {
		log.Warnw("failed to mark webhook event as processed", "event", event.ID, "error", err.Error())
	}
	return nil
}

// HandleEvent dispatches a verified event on its type tag. Every recognized
// type only observes and logs; none mutate state. These are the hook points
// for future persistence. Unrecognized types are logged and ignored, never an
// error.
func (s *Service) HandleEvent(event *stripeapi.Event) error {
	switch event.Type {
	case stripeapi.EventTypePaymentIntentSucceeded:
		return s.handlePaymentIntentSucceeded(event)
	case stripeapi.EventTypePaymentIntentPaymentFailed:
		return s.handlePaymentIntentFailed(event)
	case stripeapi.EventTypeInvoicePaymentSucceeded:
		return s.handleInvoicePayment(event)
	case stripeapi.EventTypeCustomerSubscriptionDeleted:
		return s.handleSubscriptionDeleted(event)
	default:
		log.Debugf("stripe webhook: received unhandled event type %s (id %s)", event.Type, event.ID)
		return nil
	}
}

// handlePaymentIntentSucceeded observes a completed payment.
func (*Service) handlePaymentIntentSucceeded(event *stripeapi.Event) error {
	intent, err := parsePaymentIntentFromEvent(event)
	if err != nil {
		return err
	}
	log.Infow("stripe webhook: payment succeeded",
		"paymentIntent", intent.ID, "amount", intent.Amount, "currency", string(intent.Currency))
	return nil
}

// handlePaymentIntentFailed observes a failed payment.
func (*Service) handlePaymentIntentFailed(event *stripeapi.Event) error {
	intent, err := parsePaymentIntentFromEvent(event)
	if err != nil {
		return err
	}
	reason := ""
	if intent.LastPaymentError != nil {
		reason = intent.LastPaymentError.Msg
	}
	log.Infow("stripe webhook: payment failed",
		"paymentIntent", intent.ID, "amount", intent.Amount, "reason", reason)
	return nil
}

// handleInvoicePayment observes a successful invoice payment.
func (*Service) handleInvoicePayment(event *stripeapi.Event) error {
	var invoice stripeapi.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return NewStripeError("invalid_event", "failed to parse invoice from event", err)
	}
	log.Infow("stripe webhook: invoice payment succeeded",
		"invoice", invoice.ID, "amountPaid", invoice.AmountPaid)
	return nil
}

// handleSubscriptionDeleted observes a canceled subscription.
func (*Service) handleSubscriptionDeleted(event *stripeapi.Event) error {
	var subscription stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return NewStripeError("invalid_event", "failed to parse subscription from event", err)
	}
	log.Infow("stripe webhook: subscription deleted",
		"subscription", subscription.ID, "status", string(subscription.Status))
	return nil
}

// parsePaymentIntentFromEvent extracts the payment intent carried by a
// webhook event. The client secret inside the payload is never logged.
func parsePaymentIntentFromEvent(event *stripeapi.Event) (*stripeapi.PaymentIntent, error) {
	var intent stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, NewStripeError("invalid_event", "failed to parse payment intent from event", err)
	}
	return &intent, nil
}
