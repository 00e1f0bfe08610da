// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/core/contact"
	"github.com/setrini/inmobiliaria/internal/core/property"
	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/mailer"
	"github.com/setrini/inmobiliaria/internal/platform/metrics"
	"github.com/setrini/inmobiliaria/pkg/pagination"
)

const listingID = "0195f0a2-6c1e-7b3a-9d41-2f6a8e5c7b10"

type fakeRepository struct {
	mu       sync.Mutex
	messages []*contact.Message
	notified map[string]time.Time
	err      error
}

func (repository *fakeRepository) Create(_ context.Context, message *contact.Message) error {
	if repository.err != nil {
		return repository.err
	}
	repository.mu.Lock()
	defer repository.mu.Unlock()

	message.CreatedAt = time.Now()
	repository.messages = append(repository.messages, message)
	return nil
}

func (repository *fakeRepository) MarkNotified(_ context.Context, id string, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.notified == nil {
		repository.notified = map[string]time.Time{}
	}
	repository.notified[id] = at
	return nil
}

func (repository *fakeRepository) List(_ context.Context, limit, offset int) ([]*contact.Message, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	start := min(offset, len(repository.messages))
	end := min(start+limit, len(repository.messages))
	return repository.messages[start:end], len(repository.messages), nil
}

type fakeFinder struct{}

func (fakeFinder) Get(_ context.Context, id string) (*property.Property, error) {
	if id == listingID {
		return &property.Property{ID: listingID, Title: "Casa <b>quinta</b> en Berazategui"}, nil
	}
	return nil, apperr.NotFound("Property")
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (sender *fakeMailer) Send(_ context.Context, message mailer.Message) (string, error) {
	if sender.err != nil {
		return "", sender.err
	}
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.sent = append(sender.sent, message)
	return "msg_1", nil
}

func newService(repository contact.Repository, sender mailer.Mailer) *contact.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return contact.NewService(repository, fakeFinder{}, sender, "marile@example.com", logger)
}

func validInput() contact.Input {
	return contact.Input{
		Name:    "Ana Pérez",
		Email:   "ana@example.com",
		Phone:   "+54 11 5555-0000",
		Message: "Quisiera coordinar una visita el sábado.",
	}
}

/*
TestSubmit_StoresAndNotifies persists the enquiry and emails the inbox.
*/
func TestSubmit_StoresAndNotifies(t *testing.T) {
	repository := &fakeRepository{}
	sender := &fakeMailer{}
	before := testutil.ToFloat64(metrics.ContactMessagesTotal)

	input := validInput()
	input.PropertyID = listingID

	receipt, err := newService(repository, sender).Submit(context.Background(), input, "203.0.113.7")
	require.NoError(t, err)

	assert.True(t, receipt.Notified)
	require.Len(t, repository.messages, 1)
	stored := repository.messages[0]
	assert.Equal(t, receipt.ID, stored.ID)
	assert.Equal(t, listingID, *stored.PropertyID)
	assert.Equal(t, "203.0.113.7", stored.IPAddress)
	assert.Contains(t, repository.notified, receipt.ID)

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "marile@example.com", email.To)
	assert.Equal(t, "Nuevo mensaje de contacto - Ana Pérez", email.Subject)
	assert.Contains(t, email.HTML, "Casa &lt;b&gt;quinta&lt;/b&gt; en Berazategui")
	assert.Contains(t, email.Text, "Propiedad: Casa <b>quinta</b> en Berazategui")

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ContactMessagesTotal))
}

/*
TestSubmit_MailerFailureIsNotFatal keeps the stored message when delivery fails.
*/
func TestSubmit_MailerFailureIsNotFatal(t *testing.T) {
	repository := &fakeRepository{}

	receipt, err := newService(repository, &fakeMailer{err: errors.New("resend down")}).
		Submit(context.Background(), validInput(), "")
	require.NoError(t, err)

	assert.False(t, receipt.Notified)
	assert.Len(t, repository.messages, 1)
	assert.Empty(t, repository.notified)
}

/*
TestSubmit_UnknownPropertyDropped stores the enquiry without the dangling reference.
*/
func TestSubmit_UnknownPropertyDropped(t *testing.T) {
	repository := &fakeRepository{}

	input := validInput()
	input.PropertyID = "0195f0a2-0000-7000-8000-000000000000"

	_, err := newService(repository, &fakeMailer{}).Submit(context.Background(), input, "")
	require.NoError(t, err)
	assert.Nil(t, repository.messages[0].PropertyID)
}

/*
TestSubmit_Validation rejects each broken field.
*/
func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*contact.Input)
		field  string
	}{
		{"short_name", func(input *contact.Input) { input.Name = "A" }, contact.FieldName},
		{"bad_email", func(input *contact.Input) { input.Email = "ana@" }, contact.FieldEmail},
		{"short_message", func(input *contact.Input) { input.Message = "Hola" }, contact.FieldMessage},
		{"bad_property", func(input *contact.Input) { input.PropertyID = "casa-1" }, contact.FieldPropertyID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := newService(&fakeRepository{}, &fakeMailer{}).Submit(context.Background(), input, "")
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

/*
TestSubmit_PersistenceFailure does not notify when nothing was stored.
*/
func TestSubmit_PersistenceFailure(t *testing.T) {
	sender := &fakeMailer{}

	_, err := newService(&fakeRepository{err: apperr.Internal(errors.New("db down"))}, sender).
		Submit(context.Background(), validInput(), "")
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

/*
TestBuildNotification_OmitsEmptyOptionalFields leaves phone and listing out when absent.
*/
func TestBuildNotification_OmitsEmptyOptionalFields(t *testing.T) {
	email, err := contact.BuildNotification("inbox@example.com", &contact.Message{
		Name:    "Juan\nPérez",
		Email:   "juan@example.com",
		Message: "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Nuevo mensaje de contacto - Juan Pérez", email.Subject)
	assert.NotContains(t, email.HTML, "Teléfono")
	assert.NotContains(t, email.HTML, "Propiedad de Interés")
	assert.NotContains(t, email.HTML, "<script>")
}

/*
TestBuildNotification_IncludesPhone renders the phone in both bodies when given.
*/
func TestBuildNotification_IncludesPhone(t *testing.T) {
	phone := "011 5555-0000"
	email, err := contact.BuildNotification("inbox@example.com", &contact.Message{
		Name:    "Ana",
		Email:   "ana@example.com",
		Phone:   &phone,
		Message: "Quisiera visitar la casa.",
	})
	require.NoError(t, err)

	assert.Contains(t, email.HTML, "Teléfono")
	assert.Contains(t, email.HTML, phone)
	assert.Contains(t, email.Text, "tel. "+phone)
}

/*
TestHandler_Submit answers 201 with the receipt.
*/
func TestHandler_Submit(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/contact", contact.NewHandler(newService(&fakeRepository{}, &fakeMailer{})).RegisterRoutes)

	payload, _ := json.Marshal(validInput())
	request := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewReader(payload))
	request.RemoteAddr = "198.51.100.4:52311"

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var body struct {
		Data contact.Receipt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.ID)
	assert.True(t, body.Data.Notified)
}

/*
TestList_PastTheEnd returns an empty page with the inbox total intact.
*/
func TestList_PastTheEnd(t *testing.T) {
	repository := &fakeRepository{messages: []*contact.Message{{ID: "m1"}, {ID: "m2"}}}
	service := newService(repository, &fakeMailer{})

	page, err := service.List(context.Background(), pagination.Params{Page: 5, Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
