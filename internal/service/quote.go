package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/partsdesk/partsdesk/internal/metrics"
	"github.com/partsdesk/partsdesk/internal/model"
	"github.com/partsdesk/partsdesk/internal/repository"
)

// Service errors.
var (
	ErrInvalidStatus = errors.New("invalid status value")
	ErrNotFound      = errors.New("record not found")
)

// QuoteService handles quote request business logic.
type QuoteService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
	now     func() time.Time
}

// NewQuoteService creates a QuoteService.
func NewQuoteService(repo *repository.Repository, recorder metrics.Recorder) *QuoteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &QuoteService{repo: repo, metrics: recorder, now: time.Now}
}

// SubmitQuoteInput defines input for submitting a quote request.
type SubmitQuoteInput struct {
	Email        string
	FirstName    string
	LastName     string
	Company      string
	Phone        string
	PartType     string
	PartNumber   string
	Quantity     int
	Urgency      string
	Description  string
	EmailUpdates bool
	Newsletter   bool
}

// Submit atomically upserts the user by email and inserts a new quote
// referencing it, both inside one transaction. On a reference id
// collision the insert is retried with a regenerated id.
func (s *QuoteService) Submit(ctx context.Context, in SubmitQuoteInput) (*model.Quote, error) {
	user := &model.User{
		ID:        newULID(),
		Email:     normalizeEmail(in.Email),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Phone:     in.Phone,
	}

	var lastErr error
	for attempt := 0; attempt < maxReferenceRetries; attempt++ {
		if attempt > 0 {
			// A fresh millisecond yields a fresh reference id.
			time.Sleep(time.Millisecond)
		}

		q := &model.Quote{
			ID:           newULID(),
			ReferenceID:  newReferenceID(quoteRefPrefix, s.now),
			PartType:     in.PartType,
			PartNumber:   in.PartNumber,
			Quantity:     in.Quantity,
			Urgency:      in.Urgency,
			Description:  in.Description,
			EmailUpdates: in.EmailUpdates,
			Newsletter:   in.Newsletter,
			Status:       model.QuoteStatusSubmitted,
		}

		err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
			if err := repository.UpsertUser(ctx, tx, user); err != nil {
				return err
			}
			q.UserID = user.ID
			return repository.CreateQuote(ctx, tx, q)
		})
		if err == nil {
			s.metrics.IncSubmissionCreated("quote")
			return q, nil
		}

		lastErr = err
		if !errors.Is(err, repository.ErrReferenceExists) {
			return nil, err
		}
		s.metrics.IncSubmissionConflict("quote")
	}

	return nil, fmt.Errorf("exhausted reference id retries: %w", lastErr)
}

// Get retrieves a quote by reference id.
func (s *QuoteService) Get(ctx context.Context, referenceID string) (*model.Quote, error) {
	q, err := s.repo.GetQuoteByReference(ctx, referenceID)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

// List retrieves a page of quotes matching the filter plus the total count.
func (s *QuoteService) List(ctx context.Context, f repository.SubmissionFilter, page repository.Page) ([]*model.Quote, int64, error) {
	return s.repo.ListQuotes(ctx, f, page)
}

// UpdateStatus validates the status against the quote enumeration and
// applies it. Transitions are unrestricted among enumeration members.
func (s *QuoteService) UpdateStatus(ctx context.Context, referenceID, status string) (*model.Quote, error) {
	next := model.QuoteStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidStatus
	}

	q, err := s.repo.UpdateQuoteStatus(ctx, referenceID, next)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.metrics.IncStatusUpdated("quote")
	return q, nil
}

// normalizeEmail lowercases and trims the natural key before upsert.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
