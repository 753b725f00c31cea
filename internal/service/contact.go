package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/partsdesk/partsdesk/internal/metrics"
	"github.com/partsdesk/partsdesk/internal/model"
	"github.com/partsdesk/partsdesk/internal/repository"
)

// ContactService handles contact-support ticket business logic.
type ContactService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
	now     func() time.Time
}

// NewContactService creates a ContactService.
func NewContactService(repo *repository.Repository, recorder metrics.Recorder) *ContactService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ContactService{repo: repo, metrics: recorder, now: time.Now}
}

// SubmitContactInput defines input for opening a support ticket.
type SubmitContactInput struct {
	Email       string
	FirstName   string
	LastName    string
	Company     string
	Phone       string
	Subject     string
	Message     string
	OrderNumber string
}

// Submit atomically upserts the user and inserts a new support ticket
// inside one transaction, retrying reference id collisions.
func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*model.ContactRequest, error) {
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
			time.Sleep(time.Millisecond)
		}

		c := &model.ContactRequest{
			ID:          newULID(),
			ReferenceID: newReferenceID(contactRefPrefix, s.now),
			Subject:     in.Subject,
			Message:     in.Message,
			OrderNumber: in.OrderNumber,
			Status:      model.ContactStatusOpen,
		}

		err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
			if err := repository.UpsertUser(ctx, tx, user); err != nil {
				return err
			}
			c.UserID = user.ID
			return repository.CreateContactRequest(ctx, tx, c)
		})
		if err == nil {
			s.metrics.IncSubmissionCreated("contact")
			return c, nil
		}

		lastErr = err
		if !errors.Is(err, repository.ErrReferenceExists) {
			return nil, err
		}
		s.metrics.IncSubmissionConflict("contact")
	}

	return nil, fmt.Errorf("exhausted reference id retries: %w", lastErr)
}

// Get retrieves a support ticket by reference id.
func (s *ContactService) Get(ctx context.Context, referenceID string) (*model.ContactRequest, error) {
	c, err := s.repo.GetContactByReference(ctx, referenceID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List retrieves a page of support tickets matching the filter plus the total count.
func (s *ContactService) List(ctx context.Context, f repository.SubmissionFilter, page repository.Page) ([]*model.ContactRequest, int64, error) {
	return s.repo.ListContacts(ctx, f, page)
}

// UpdateStatus validates the status against the contact enumeration and applies it.
func (s *ContactService) UpdateStatus(ctx context.Context, referenceID, status string) (*model.ContactRequest, error) {
	next := model.ContactStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidStatus
	}

	c, err := s.repo.UpdateContactStatus(ctx, referenceID, next)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.metrics.IncStatusUpdated("contact")
	return c, nil
}
