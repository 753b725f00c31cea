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

// SuggestionService handles part suggestion business logic.
type SuggestionService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
	now     func() time.Time
}

// NewSuggestionService creates a SuggestionService.
func NewSuggestionService(repo *repository.Repository, recorder metrics.Recorder) *SuggestionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SuggestionService{repo: repo, metrics: recorder, now: time.Now}
}

// SubmitSuggestionInput defines input for submitting a part suggestion.
type SubmitSuggestionInput struct {
	Email        string
	FirstName    string
	LastName     string
	Company      string
	Phone        string
	PartName     string
	Manufacturer string
	PartNumber   string
	Category     string
	Description  string
	Reason       string
}

// Submit atomically upserts the user and inserts a new suggestion
// inside one transaction, retrying reference id collisions.
func (s *SuggestionService) Submit(ctx context.Context, in SubmitSuggestionInput) (*model.Suggestion, error) {
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

		sub := &model.Suggestion{
			ID:           newULID(),
			ReferenceID:  newReferenceID(suggestionRefPrefix, s.now),
			PartName:     in.PartName,
			Manufacturer: in.Manufacturer,
			PartNumber:   in.PartNumber,
			Category:     in.Category,
			Description:  in.Description,
			Reason:       in.Reason,
			Status:       model.SuggestionStatusSubmitted,
		}

		err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
			if err := repository.UpsertUser(ctx, tx, user); err != nil {
				return err
			}
			sub.UserID = user.ID
			return repository.CreateSuggestion(ctx, tx, sub)
		})
		if err == nil {
			s.metrics.IncSubmissionCreated("suggestion")
			return sub, nil
		}

		lastErr = err
		if !errors.Is(err, repository.ErrReferenceExists) {
			return nil, err
		}
		s.metrics.IncSubmissionConflict("suggestion")
	}

	return nil, fmt.Errorf("exhausted reference id retries: %w", lastErr)
}

// Get retrieves a suggestion by reference id.
func (s *SuggestionService) Get(ctx context.Context, referenceID string) (*model.Suggestion, error) {
	sub, err := s.repo.GetSuggestionByReference(ctx, referenceID)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

// List retrieves a page of suggestions matching the filter plus the total count.
func (s *SuggestionService) List(ctx context.Context, f repository.SubmissionFilter, page repository.Page) ([]*model.Suggestion, int64, error) {
	return s.repo.ListSuggestions(ctx, f, page)
}

// UpdateStatus validates the status against the suggestion enumeration
// and applies it.
func (s *SuggestionService) UpdateStatus(ctx context.Context, referenceID, status string) (*model.Suggestion, error) {
	next := model.SuggestionStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidStatus
	}

	sub, err := s.repo.UpdateSuggestionStatus(ctx, referenceID, next)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.metrics.IncStatusUpdated("suggestion")
	return sub, nil
}
