package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
)

// Client sends templated notifications through the email API
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// NotifySale sends the sale template to every configured recipient. All
// recipients are attempted; the returned error joins every failure.
func (c *Client) NotifySale(ctx context.Context, n SaleNotification) error {
	var errs []error
	for _, recipient := range c.config.Recipients {
		req := SendRequest{
			ServiceID:      c.config.ServiceID,
			TemplateID:     c.config.TemplateID,
			UserID:         c.config.PublicKey,
			AccessToken:    c.config.PrivateKey,
			TemplateParams: n.params(recipient),
		}
		if err := c.doRequest(ctx, req); err != nil {
			logger.Warn("Sale notification failed", map[string]interface{}{
				"recipient": recipient,
				"error":     err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s: %w", recipient, err))
		}
	}
	return errors.Join(errs...)
}

// doRequest performs one send call
func (c *Client) doRequest(ctx context.Context, payload SendRequest) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	logger.Debug("Sending email notification", map[string]interface{}{
		"url":         c.config.BaseURL,
		"template_id": payload.TemplateID,
		"recipient":   payload.TemplateParams["to_email"],
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errorMsg := fmt.Sprintf("status: %d, body: %s", resp.StatusCode, string(body))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, errorMsg)
		default:
			return fmt.Errorf("%w: %s", ErrSendFailed, errorMsg)
		}
	}

	return nil
}
