package api

const (
	// GET /health to check the service is up
	healthEndpoint = "/health"
	// POST /create-payment-intent to open a payment intent on the processor
	createPaymentIntentEndpoint = "/create-payment-intent"
	// GET /subscription-status/{customerEmail} to look up an active subscription
	subscriptionStatusEndpoint = "/subscription-status/{customerEmail}"
	// POST /webhook to receive asynchronous processor notifications
	webhookEndpoint = "/webhook"
	// GET /test to check the processor connection configuration
	testEndpoint = "/test"
)
