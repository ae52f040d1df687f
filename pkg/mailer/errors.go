package mailer

import "errors"

var (
	// ErrInvalidConfig is returned when required credentials are missing
	ErrInvalidConfig = errors.New("mailer: invalid config")

	// ErrNoRecipients is returned when there is nobody to notify
	ErrNoRecipients = errors.New("mailer: no recipients configured")

	// ErrUnauthorized is returned when the provider rejects the credentials
	ErrUnauthorized = errors.New("mailer: unauthorized")

	// ErrSendFailed is returned when the provider refuses the message
	ErrSendFailed = errors.New("mailer: send failed")

	// ErrNetworkError is returned when the provider cannot be reached
	ErrNetworkError = errors.New("mailer: network error")
)
