// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	requestTimeout = 10 * time.Second

	// Transient failures (429, 5xx, network) are retried with exponential backoff.
	maxRetries  = 2
	backoffBase = 250 * time.Millisecond

	errorBodyLimit = 4 << 10
)

// resendRequest is the POST /emails payload.
type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// ResendMailer sends mail through the Resend REST API.
type ResendMailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	backoff  time.Duration
}

// ResendOption customizes a [ResendMailer].
type ResendOption func(*ResendMailer)

// WithEndpoint overrides the API URL.
func WithEndpoint(endpoint string) ResendOption {
	return func(mailer *ResendMailer) { mailer.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) ResendOption {
	return func(mailer *ResendMailer) { mailer.client = client }
}

// WithBackoff overrides the base retry delay.
func WithBackoff(base time.Duration) ResendOption {
	return func(mailer *ResendMailer) { mailer.backoff = base }
}

// NewResend constructs a [ResendMailer].
func NewResend(apiKey, from string, options ...ResendOption) *ResendMailer {
	mailer := &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
		backoff:  backoffBase,
	}
	for _, option := range options {
		option(mailer)
	}
	return mailer
}

/*
Send implements [Mailer].

Returns:
  - string: Resend message ID
  - error: ErrNotConfigured without an API key, otherwise the last delivery error
*/
func (mailer *ResendMailer) Send(ctx context.Context, message Message) (string, error) {
	if mailer.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(resendRequest{
		From:    mailer.from,
		To:      message.To,
		Subject: message.Subject,
		HTML:    message.HTML,
		Text:    message.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend_encode_failed: %w", err)
	}

	var messageID string
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(mailer.backoff))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		id, err := mailer.post(ctx, payload)
		if err != nil {
			return err
		}
		messageID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return messageID, nil
}

// post performs one delivery attempt, marking transient failures retryable.
func (mailer *ResendMailer) post(context context.Context, payload []byte) (string, error) {
	request, err := http.NewRequestWithContext(context, http.MethodPost, mailer.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("resend_request_failed: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+mailer.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := mailer.client.Do(request)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("resend_unreachable: %w", err))
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, errorBodyLimit))
		failure := fmt.Errorf("resend_rejected: status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))

		if response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500 {
			return "", retry.RetryableError(failure)
		}
		return "", failure
	}

	var decoded resendResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("resend_decode_failed: %w", err)
	}
	return decoded.ID, nil
}
