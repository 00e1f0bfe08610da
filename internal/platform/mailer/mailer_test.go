// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package mailer_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/platform/mailer"
)

var message = mailer.Message{
	To:      "marile@example.com",
	Subject: "Nuevo mensaje de contacto",
	HTML:    "<p>Hola</p>",
	Text:    "Hola",
}

/*
TestResend_Send posts the payload with the bearer key and returns the message ID.
*/
func TestResend_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer re_test", request.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "noreply@marilesetrini.com", body["from"])
		assert.Equal(t, "marile@example.com", body["to"])
		assert.Equal(t, "<p>Hola</p>", body["html"])

		_, _ = writer.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	sender := mailer.NewResend("re_test", "noreply@marilesetrini.com", mailer.WithEndpoint(server.URL))

	id, err := sender.Send(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
}

/*
TestResend_RetriesServerErrors retries 5xx responses and eventually succeeds.
*/
func TestResend_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			writer.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = writer.Write([]byte(`{"id":"msg_retry"}`))
	}))
	defer server.Close()

	sender := mailer.NewResend("re_test", "noreply@marilesetrini.com",
		mailer.WithEndpoint(server.URL),
		mailer.WithBackoff(time.Millisecond),
	)

	id, err := sender.Send(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "msg_retry", id)
	assert.Equal(t, int32(3), calls.Load())
}

/*
TestResend_CancelledContextStops never reaches the endpoint once the caller has gone.
*/
func TestResend_CancelledContextStops(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = writer.Write([]byte(`{"id":"msg_late"}`))
	}))
	defer server.Close()

	sender := mailer.NewResend("re_test", "noreply@marilesetrini.com",
		mailer.WithEndpoint(server.URL),
		mailer.WithBackoff(time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sender.Send(ctx, message)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

/*
TestResend_ClientErrorNotRetried fails fast on 4xx.
*/
func TestResend_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writer.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = writer.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer server.Close()

	sender := mailer.NewResend("re_test", "bad", mailer.WithEndpoint(server.URL), mailer.WithBackoff(time.Millisecond))

	_, err := sender.Send(context.Background(), message)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
	assert.Equal(t, int32(1), calls.Load())
}

/*
TestResend_NotConfigured refuses to send without an API key.
*/
func TestResend_NotConfigured(t *testing.T) {
	_, err := mailer.NewResend("", "noreply@marilesetrini.com").Send(context.Background(), message)
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
}

/*
TestNew_SelectsProvider maps provider names to implementations.
*/
func TestNew_SelectsProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.IsType(t, &mailer.LogMailer{}, mailer.New("LOG", "", "", logger))
	assert.IsType(t, &mailer.ResendMailer{}, mailer.New("resend", "key", "from", logger))
	assert.IsType(t, &mailer.ResendMailer{}, mailer.New("smtp", "key", "from", logger))

	id, err := mailer.New("log", "", "", logger).Send(context.Background(), message)
	assert.NoError(t, err)
	assert.Empty(t, id)
}
