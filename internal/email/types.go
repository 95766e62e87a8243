package email

import "errors"

// Message is one outbound email, provider-agnostic.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

var (
	ErrNoProviders    = errors.New("no email providers configured")
	ErrAllProviders   = errors.New("all email providers failed")
	ErrSuppressed     = errors.New("recipient is on the bounce suppression list")
	ErrUnknownBackend = errors.New("unknown email provider backend")
)
