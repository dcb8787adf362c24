package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/vocdoni/payments-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

func TestMain(m *testing.M) {
	log.Init("debug", "stdout", nil)
	os.Exit(m.Run())
}

// stubProcessor substitutes the payment processor for HTTP layer tests.
type stubProcessor struct {
	customer        *stripeapi.Customer
	findErr         error
	intent          *stripeapi.PaymentIntent
	intentErr       error
	subscription    *stripeapi.Subscription
	subscriptionErr error
	event           *stripeapi.Event
	validateErr     error

	intentCalls      int
	lastIntentParams *stripe.PaymentIntentParams
}

func (p *stubProcessor) FindCustomerByEmail(string) (*stripeapi.Customer, error) {
	if p.findErr != nil {
		return nil, p.findErr
	}
	return p.customer, nil
}

func (p *stubProcessor) CreateCustomer(email, name string) (*stripeapi.Customer, error) {
	return &stripeapi.Customer{ID: "cus_created", Email: email, Name: name}, nil
}

func (p *stubProcessor) CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripeapi.PaymentIntent, error) {
	p.intentCalls++
	p.lastIntentParams = params
	if p.intentErr != nil {
		return nil, p.intentErr
	}
	return p.intent, nil
}

func (p *stubProcessor) FirstActiveSubscription(string) (*stripeapi.Subscription, error) {
	if p.subscriptionErr != nil {
		return nil, p.subscriptionErr
	}
	return p.subscription, nil
}

func (p *stubProcessor) ValidateWebhookEvent([]byte, string) (*stripeapi.Event, error) {
	if p.validateErr != nil {
		return nil, p.validateErr
	}
	return p.event, nil
}

// newTestServer spins up an httptest server backed by the stub processor.
func newTestServer(c *qt.C, stub *stubProcessor) *httptest.Server {
	service, err := stripe.NewService(
		&stripe.Config{APIKey: "sk_test", WebhookSecret: "whsec_test"}, stub)
	c.Assert(err, qt.IsNil)
	c.Cleanup(service.Close)

	a := New(&Config{
		Host:             "127.0.0.1",
		Port:             0,
		Environment:      "test",
		AllowedOrigins:   []string{"http://localhost:5173"},
		Stripe:           service,
		StripeConfigured: true,
	})
	server := httptest.NewServer(a.Router())
	c.Cleanup(server.Close)
	return server
}

func doRequest(c *qt.C, method, url, body string, headers map[string]string) (int, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	c.Assert(err, qt.IsNil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	defer func() {
		c.Assert(resp.Body.Close(), qt.IsNil)
	}()
	respBody, err := io.ReadAll(resp.Body)
	c.Assert(err, qt.IsNil)
	return resp.StatusCode, respBody
}

func TestHealthEndpoint(t *testing.T) {
	c := qt.New(t)
	server := newTestServer(c, &stubProcessor{})

	status, body := doRequest(c, http.MethodGet, server.URL+"/health", "", nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	var health HealthResponse
	c.Assert(json.Unmarshal(body, &health), qt.IsNil)
	c.Assert(health.Status, qt.Equals, "OK")
	c.Assert(health.Environment, qt.Equals, "test")
}

func TestTestEndpoint(t *testing.T) {
	c := qt.New(t)
	server := newTestServer(c, &stubProcessor{})

	status, body := doRequest(c, http.MethodGet, server.URL+"/test", "", nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	var test TestResponse
	c.Assert(json.Unmarshal(body, &test), qt.IsNil)
	c.Assert(test.Stripe, qt.Equals, "Connected")
	c.Assert(test.Environment, qt.Equals, "test")
}

func TestUnconfiguredProcessor(t *testing.T) {
	c := qt.New(t)
	a := New(&Config{
		Host:        "127.0.0.1",
		Environment: "test",
	})
	server := httptest.NewServer(a.Router())
	c.Cleanup(server.Close)

	status, body := doRequest(c, http.MethodGet, server.URL+"/test", "", nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	var test TestResponse
	c.Assert(json.Unmarshal(body, &test), qt.IsNil)
	c.Assert(test.Stripe, qt.Equals, "Not connected")

	status, body = doRequest(c, http.MethodPost, server.URL+"/create-payment-intent",
		`{"planType":"premium","currency":"usd","amount":999}`, nil)
	c.Assert(status, qt.Equals, http.StatusInternalServerError)
	c.Assert(string(body), qt.Contains, "payment processor is not configured")

	status, _ = doRequest(c, http.MethodGet, server.URL+"/subscription-status/a@b.com", "", nil)
	c.Assert(status, qt.Equals, http.StatusInternalServerError)

	status, _ = doRequest(c, http.MethodPost, server.URL+"/webhook", `{}`,
		map[string]string{"Stripe-Signature": "t=1,v1=abc"})
	c.Assert(status, qt.Equals, http.StatusInternalServerError)
}

func TestUnmatchedRouteNamesMethodAndPath(t *testing.T) {
	c := qt.New(t)
	server := newTestServer(c, &stubProcessor{})

	status, body := doRequest(c, http.MethodGet, server.URL+"/does-not-exist", "", nil)
	c.Assert(status, qt.Equals, http.StatusNotFound)
	c.Assert(string(body), qt.Contains, "GET /does-not-exist")

	// a known path with the wrong method is just as unmatched
	status, body = doRequest(c, http.MethodPut, server.URL+"/health", "", nil)
	c.Assert(status, qt.Equals, http.StatusNotFound)
	c.Assert(string(body), qt.Contains, "PUT /health")
}
