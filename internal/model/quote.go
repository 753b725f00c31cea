package model

import (
	"slices"
	"time"
)

// QuoteStatus represents the lifecycle state of a quote request.
type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
	QuoteStatusReviewing QuoteStatus = "reviewing"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
)

// QuoteStatuses contains all valid quote statuses.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusSubmitted,
	QuoteStatusReviewing,
	QuoteStatusQuoted,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

// IsValid checks if the status is a member of the quote enumeration.
func (s QuoteStatus) IsValid() bool {
	return slices.Contains(QuoteStatuses, s)
}

// Quote represents a quote request submitted through the storefront.
type Quote struct {
	ID           string      `json:"-"`
	ReferenceID  string      `json:"id"`
	UserID       string      `json:"-"`
	PartType     string      `json:"partType"`
	PartNumber   string      `json:"partNumber,omitempty"`
	Quantity     int         `json:"quantity"`
	Urgency      string      `json:"urgency"`
	Description  string      `json:"description,omitempty"`
	EmailUpdates bool        `json:"emailUpdates"`
	Newsletter   bool        `json:"newsletter"`
	Status       QuoteStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
