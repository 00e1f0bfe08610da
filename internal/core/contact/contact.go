// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package contact handles enquiries sent from the public site.

Every enquiry is stored first and then forwarded to the agency's inbox by
email. Delivery problems never lose an enquiry: the stored message stays
visible in the back-office with its notification time left empty.
*/
package contact

import "time"

// Message is a stored enquiry.
type Message struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	Message       string     `json:"message"`
	PropertyID    *string    `json:"propertyId"`
	PropertyTitle string     `json:"propertyTitle,omitempty"`
	IPAddress     string     `json:"-"`
	NotifiedAt    *time.Time `json:"notifiedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Input is the public contact form.
type Input struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId"`
}

// Receipt acknowledges a stored enquiry.
type Receipt struct {
	ID       string `json:"id"`
	Notified bool   `json:"notified"`
}

const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldMessage    = "message"
	FieldPropertyID = "propertyId"
)
