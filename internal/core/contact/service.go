// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package contact

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/setrini/inmobiliaria/internal/core/property"
	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/mailer"
	"github.com/setrini/inmobiliaria/internal/platform/metrics"
	"github.com/setrini/inmobiliaria/internal/platform/validate"
	"github.com/setrini/inmobiliaria/pkg/pagination"
	"github.com/setrini/inmobiliaria/pkg/pointer"
	"github.com/setrini/inmobiliaria/pkg/uuid"
)

const (
	maxNameLength    = 120
	maxEmailLength   = 254
	maxPhoneLength   = 40
	maxMessageLength = 5000

	// notifyTimeout bounds delivery, which outlives a disconnected client.
	notifyTimeout = 20 * time.Second
)

// PropertyFinder resolves the listing an enquiry refers to.
type PropertyFinder interface {
	Get(context context.Context, id string) (*property.Property, error)
}

// Service stores enquiries and notifies the agency.
type Service struct {
	repository Repository
	properties PropertyFinder
	mailer     mailer.Mailer
	inbox      string
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a [Service]. inbox is the address notifications go to.
func NewService(repository Repository, properties PropertyFinder, sender mailer.Mailer, inbox string, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		properties: properties,
		mailer:     sender,
		inbox:      inbox,
		logger:     logger,
		now:        time.Now,
	}
}

/*
Submit validates, stores and forwards an enquiry.

Description: The enquiry is persisted before any email is attempted. A failed
notification is logged and reported in the receipt, never as an error. An
unknown propertyId is dropped rather than rejected, so a listing deleted while
the visitor was typing does not lose the message.

Parameters:
  - context: context.Context
  - input: Input
  - ipAddress: string (client address, stored for abuse review)

Returns:
  - Receipt: Stored ID and whether the inbox was notified
  - error: Validation or persistence errors
*/
func (service *Service) Submit(context context.Context, input Input, ipAddress string) (Receipt, error) {

	// 1. Validate
	if err := validateInput(input); err != nil {
		return Receipt{}, err
	}

	message := &Message{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     pointer.NilIfZero(pointer.To(strings.TrimSpace(input.Phone))),
		Message:   strings.TrimSpace(input.Message),
		IPAddress: ipAddress,
	}

	// 2. Resolve the referenced listing
	if propertyID := strings.TrimSpace(input.PropertyID); propertyID != "" {
		listing, err := service.properties.Get(context, propertyID)
		switch {
		case err == nil:
			message.PropertyID = pointer.To(listing.ID)
			message.PropertyTitle = listing.Title
		case apperr.IsNotFound(err):
			service.logger.WarnContext(context, "contact_property_not_found", slog.String("property_id", propertyID))
		default:
			return Receipt{}, err
		}
	}

	// 3. Persist
	if err := service.repository.Create(context, message); err != nil {
		return Receipt{}, err
	}
	metrics.ContactMessagesTotal.Inc()

	// 4. Notify (best effort)
	notified := service.notify(context, message)

	return Receipt{ID: message.ID, Notified: notified}, nil
}

// List returns a page of stored enquiries for the back-office.
func (service *Service) List(context context.Context, params pagination.Params) (pagination.Page[*Message], error) {
	messages, total, err := service.repository.List(context, params.Limit, params.Offset())
	if err != nil {
		return pagination.Page[*Message]{}, err
	}
	return pagination.NewPage(messages, params, total), nil
}

// notify emails the inbox and records the delivery time. It reports success.
func (service *Service) notify(parent context.Context, message *Message) bool {
	context, cancel := contextWithTimeout(parent)
	defer cancel()

	email, err := BuildNotification(service.inbox, message)
	if err != nil {
		service.logger.ErrorContext(context, "contact_notification_render_failed",
			slog.String("message_id", message.ID),
			slog.Any("error", err),
		)
		return false
	}

	providerID, err := service.mailer.Send(context, email)
	if err != nil {
		service.logger.WarnContext(context, "contact_notification_failed",
			slog.String("message_id", message.ID),
			slog.Any("error", err),
		)
		return false
	}

	if err := service.repository.MarkNotified(context, message.ID, service.now()); err != nil {
		service.logger.WarnContext(context, "contact_mark_notified_failed",
			slog.String("message_id", message.ID),
			slog.Any("error", err),
		)
	}

	service.logger.InfoContext(context, "contact_notification_sent",
		slog.String("message_id", message.ID),
		slog.String("provider_id", providerID),
	)
	return true
}

func validateInput(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, 2).
		MaxLen(FieldName, input.Name, maxNameLength)

	validator.Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, maxEmailLength)
	if strings.TrimSpace(input.Email) != "" {
		validator.Email(FieldEmail, strings.TrimSpace(input.Email))
	}

	validator.MaxLen(FieldPhone, input.Phone, maxPhoneLength)

	validator.Required(FieldMessage, input.Message).
		MinLen(FieldMessage, input.Message, 10).
		MaxLen(FieldMessage, input.Message, maxMessageLength)

	if propertyID := strings.TrimSpace(input.PropertyID); propertyID != "" {
		validator.UUID(FieldPropertyID, propertyID)
	}

	return validator.Err()
}

func contextWithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), notifyTimeout)
}
