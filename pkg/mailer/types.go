package mailer

// SendRequest is the provider's send payload
type SendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// SaleNotification is the content of the "new sale" template
type SaleNotification struct {
	Description string
	Value       string // already formatted, e.g. "R$ 77,00"
	Date        string
}

func (n SaleNotification) params(recipient string) map[string]string {
	return map[string]string{
		"to_email":    recipient,
		"description": n.Description,
		"value":       n.Value,
		"date":        n.Date,
	}
}
