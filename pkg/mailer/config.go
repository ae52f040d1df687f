package mailer

// Config represents the configuration for the transactional email client
type Config struct {
	// BaseURL is the send endpoint of the email API
	BaseURL string

	// ServiceID selects the sending service configured in the provider
	ServiceID string

	// TemplateID is the template rendered for every message
	TemplateID string

	// PublicKey identifies the account
	PublicKey string

	// PrivateKey authorizes server-side sends
	PrivateKey string

	// Recipients receive every notification
	Recipients []string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" || c.ServiceID == "" || c.TemplateID == "" || c.PublicKey == "" {
		return ErrInvalidConfig
	}
	if len(c.Recipients) == 0 {
		return ErrNoRecipients
	}
	return nil
}
