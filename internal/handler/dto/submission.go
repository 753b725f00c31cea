package dto

// SubmitQuoteRequest is the body of POST /api/quotes.
type SubmitQuoteRequest struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	Company      string `json:"company" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=50"`
	PartType     string `json:"partType" validate:"required,max=200"`
	PartNumber   string `json:"partNumber" validate:"max=100"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=1000000"`
	Urgency      string `json:"urgency" validate:"required,oneof=urgent standard flexible"`
	Description  string `json:"description" validate:"max=5000"`
	EmailUpdates bool   `json:"emailUpdates"`
	Newsletter   bool   `json:"newsletter"`
}

// SubmitSuggestionRequest is the body of POST /api/suggestions.
type SubmitSuggestionRequest struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	Company      string `json:"company" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=50"`
	PartName     string `json:"partName" validate:"required,max=200"`
	Manufacturer string `json:"manufacturer" validate:"max=200"`
	PartNumber   string `json:"partNumber" validate:"max=100"`
	Category     string `json:"category" validate:"max=100"`
	Description  string `json:"description" validate:"max=5000"`
	Reason       string `json:"reason" validate:"max=5000"`
}

// SubmitContactRequest is the body of POST /api/contact-support.
type SubmitContactRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Company     string `json:"company" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=50"`
	Subject     string `json:"subject" validate:"required,max=300"`
	Message     string `json:"message" validate:"required,max=10000"`
	OrderNumber string `json:"orderNumber" validate:"max=100"`
}

// UpdateStatusRequest is the body of the admin PATCH endpoints.
// Membership in the per-type enumeration is validated by the service.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=500"`
}
