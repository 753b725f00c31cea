package model

import (
	"slices"
	"time"
)

// SuggestionStatus represents the lifecycle state of a part suggestion.
type SuggestionStatus string

const (
	SuggestionStatusSubmitted   SuggestionStatus = "submitted"
	SuggestionStatusReviewing   SuggestionStatus = "reviewing"
	SuggestionStatusApproved    SuggestionStatus = "approved"
	SuggestionStatusRejected    SuggestionStatus = "rejected"
	SuggestionStatusImplemented SuggestionStatus = "implemented"
)

// SuggestionStatuses contains all valid suggestion statuses.
var SuggestionStatuses = []SuggestionStatus{
	SuggestionStatusSubmitted,
	SuggestionStatusReviewing,
	SuggestionStatusApproved,
	SuggestionStatusRejected,
	SuggestionStatusImplemented,
}

// IsValid checks if the status is a member of the suggestion enumeration.
func (s SuggestionStatus) IsValid() bool {
	return slices.Contains(SuggestionStatuses, s)
}

// Suggestion represents a customer proposal for a part to stock.
type Suggestion struct {
	ID           string           `json:"-"`
	ReferenceID  string           `json:"id"`
	UserID       string           `json:"-"`
	PartName     string           `json:"partName"`
	Manufacturer string           `json:"manufacturer,omitempty"`
	PartNumber   string           `json:"partNumber,omitempty"`
	Category     string           `json:"category,omitempty"`
	Description  string           `json:"description,omitempty"`
	Reason       string           `json:"reason,omitempty"`
	Status       SuggestionStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
