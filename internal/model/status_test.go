package model

import "testing"

func TestQuoteStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range QuoteStatuses {
		if !s.IsValid() {
			t.Errorf("Status %q should be valid", s)
		}
	}

	invalid := []QuoteStatus{"", "pending", "SUBMITTED", "done"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Status %q should not be valid", s)
		}
	}
}

func TestSuggestionStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range SuggestionStatuses {
		if !s.IsValid() {
			t.Errorf("Status %q should be valid", s)
		}
	}

	invalid := []SuggestionStatus{"", "open", "Approved"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Status %q should not be valid", s)
		}
	}
}

func TestContactStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range ContactStatuses {
		if !s.IsValid() {
			t.Errorf("Status %q should be valid", s)
		}
	}

	invalid := []ContactStatus{"", "submitted", "in-progress"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Status %q should not be valid", s)
		}
	}
}

func TestPart_InStock(t *testing.T) {
	t.Parallel()

	if (&Part{StockQuantity: 0}).InStock() {
		t.Error("Zero stock should not be in stock")
	}
	if !(&Part{StockQuantity: 3}).InStock() {
		t.Error("Positive stock should be in stock")
	}
}
