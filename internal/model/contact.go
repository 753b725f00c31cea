package model

import (
	"slices"
	"time"
)

// ContactStatus represents the lifecycle state of a support ticket.
type ContactStatus string

const (
	ContactStatusOpen       ContactStatus = "open"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusClosed     ContactStatus = "closed"
)

// ContactStatuses contains all valid contact request statuses.
var ContactStatuses = []ContactStatus{
	ContactStatusOpen,
	ContactStatusInProgress,
	ContactStatusResolved,
	ContactStatusClosed,
}

// IsValid checks if the status is a member of the contact enumeration.
func (s ContactStatus) IsValid() bool {
	return slices.Contains(ContactStatuses, s)
}

// ContactRequest represents a contact-support ticket.
type ContactRequest struct {
	ID          string        `json:"-"`
	ReferenceID string        `json:"id"`
	UserID      string        `json:"-"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	OrderNumber string        `json:"orderNumber,omitempty"`
	Status      ContactStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
