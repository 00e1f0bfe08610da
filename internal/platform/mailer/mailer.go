// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package mailer delivers transactional email.

Two providers exist:
  - resend: the Resend REST API (production).
  - log: writes the message to the structured log (development).
*/
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Provider names accepted by [New].
const (
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// ErrNotConfigured is returned by a provider missing its credentials.
var ErrNotConfigured = errors.New("mailer_not_configured")

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends a [Message] and returns the provider's message ID.
type Mailer interface {
	Send(context context.Context, message Message) (string, error)
}

/*
New selects a provider by name. Unknown names fall back to resend.

Parameters:
  - provider: string ("resend" or "log")
  - apiKey: string (Resend API key)
  - from: string (sender address)
  - logger: *slog.Logger
*/
func New(provider, apiKey, from string, logger *slog.Logger) Mailer {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderLog:
		return NewLogMailer(logger)
	default:
		if apiKey == "" {
			logger.Warn("mailer_resend_key_missing")
		}
		return NewResend(apiKey, from)
	}
}

// # Log Provider

// LogMailer records messages in the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer].
func (mailer *LogMailer) Send(context context.Context, message Message) (string, error) {
	mailer.logger.InfoContext(context, "email_logged",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.Int("html_bytes", len(message.HTML)),
	)
	return "", nil
}
