// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package contact

import (
	"context"
	"time"
)

// Repository defines the data access contract for enquiries.
type Repository interface {
	// Create persists a new enquiry and fills CreatedAt.
	Create(context context.Context, message *Message) error

	// MarkNotified records when the inbox notification was delivered.
	MarkNotified(context context.Context, id string, at time.Time) error

	// List returns a page of enquiries, newest first, and the total count even
	// when the page is past the end.
	List(context context.Context, limit, offset int) ([]*Message, int, error)
}
