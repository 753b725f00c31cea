package dto

import (
	"strings"
	"testing"
)

func validQuoteRequest() SubmitQuoteRequest {
	return SubmitQuoteRequest{
		Email:     "buyer@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		PartType:  "hydraulic pump",
		Quantity:  2,
		Urgency:   "standard",
	}
}

func TestValidate_ValidQuote(t *testing.T) {
	t.Parallel()

	if errs := Validate(validQuoteRequest()); len(errs) != 0 {
		t.Fatalf("Expected no errors, got: %+v", errs)
	}
}

func TestValidate_QuoteFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*SubmitQuoteRequest)
		wantField string
		wantCode  string
	}{
		{
			name:      "missing email",
			mutate:    func(r *SubmitQuoteRequest) { r.Email = "" },
			wantField: "email",
			wantCode:  "REQUIRED",
		},
		{
			name:      "malformed email",
			mutate:    func(r *SubmitQuoteRequest) { r.Email = "not-an-email" },
			wantField: "email",
			wantCode:  "EMAIL",
		},
		{
			name:      "missing first name",
			mutate:    func(r *SubmitQuoteRequest) { r.FirstName = "" },
			wantField: "firstName",
			wantCode:  "REQUIRED",
		},
		{
			name:      "zero quantity",
			mutate:    func(r *SubmitQuoteRequest) { r.Quantity = 0 },
			wantField: "quantity",
			wantCode:  "REQUIRED",
		},
		{
			name:      "negative quantity",
			mutate:    func(r *SubmitQuoteRequest) { r.Quantity = -5 },
			wantField: "quantity",
			wantCode:  "MIN",
		},
		{
			name:      "unknown urgency",
			mutate:    func(r *SubmitQuoteRequest) { r.Urgency = "yesterday" },
			wantField: "urgency",
			wantCode:  "ONEOF",
		},
		{
			name:      "oversize description",
			mutate:    func(r *SubmitQuoteRequest) { r.Description = strings.Repeat("x", 5001) },
			wantField: "description",
			wantCode:  "MAX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validQuoteRequest()
			tt.mutate(&req)

			errs := Validate(req)
			if len(errs) == 0 {
				t.Fatal("Expected validation errors")
			}

			found := false
			for _, fe := range errs {
				if fe.Field == tt.wantField && fe.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on %s with code %s, got: %+v", tt.wantField, tt.wantCode, errs)
			}
		})
	}
}

func TestValidate_MultipleFailuresReported(t *testing.T) {
	t.Parallel()

	errs := Validate(SubmitQuoteRequest{})
	if len(errs) < 5 {
		t.Errorf("Empty quote should fail several fields, got %d errors: %+v", len(errs), errs)
	}
}

func TestValidate_ContactRequest(t *testing.T) {
	t.Parallel()

	req := SubmitContactRequest{
		Email:     "buyer@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Subject:   "Order status",
		Message:   "Where is my order?",
	}
	if errs := Validate(req); len(errs) != 0 {
		t.Fatalf("Expected no errors, got: %+v", errs)
	}

	req.Message = ""
	errs := Validate(req)
	if len(errs) != 1 || errs[0].Field != "message" {
		t.Errorf("Expected a single message error, got: %+v", errs)
	}
}

func TestValidate_SuggestionRequest(t *testing.T) {
	t.Parallel()

	req := SubmitSuggestionRequest{
		Email:     "buyer@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		PartName:  "Spindle bearing kit",
	}
	if errs := Validate(req); len(errs) != 0 {
		t.Fatalf("Expected no errors, got: %+v", errs)
	}

	req.PartName = ""
	errs := Validate(req)
	if len(errs) != 1 || errs[0].Field != "partName" {
		t.Errorf("Expected a single partName error, got: %+v", errs)
	}
}

func TestValidate_UpdateStatusRequest(t *testing.T) {
	t.Parallel()

	if errs := Validate(UpdateStatusRequest{Status: "reviewing"}); len(errs) != 0 {
		t.Fatalf("Expected no errors, got: %+v", errs)
	}
	if errs := Validate(UpdateStatusRequest{}); len(errs) != 1 {
		t.Errorf("Missing status should fail, got: %+v", errs)
	}
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		page, limit    int
		total          int64
		wantTotalPages int
	}{
		{"empty", 1, 20, 0, 0},
		{"exact multiple", 1, 20, 40, 2},
		{"partial last page", 1, 20, 41, 3},
		{"single item", 1, 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.Total != tt.total {
				t.Errorf("Total = %d, want %d", p.Total, tt.total)
			}
		})
	}
}
