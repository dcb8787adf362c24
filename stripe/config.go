package stripe

// Config holds the complete Stripe configuration
type Config struct {
	APIKey        string `yaml:"api_key" json:"api_key"`
	WebhookSecret string `yaml:"webhook_secret" json:"webhook_secret"`
}

// Validate checks that the configuration carries everything the client needs.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfiguration
	}
	if c.APIKey == "" {
		return NewStripeError("invalid_configuration", "API key is required", nil)
	}
	if c.WebhookSecret == "" {
		return NewStripeError("invalid_configuration", "webhook secret is required", nil)
	}
	return nil
}
