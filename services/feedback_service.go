package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"
	"folio-gate/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type IFeedbackService interface {
	Submit(feedback domain.Feedback) (domain.Feedback, error)
	List() ([]domain.Feedback, error)
}

type FeedbackService struct {
	log        *slog.Logger
	repository repositories.IFeedbackRepository
	validate   *validator.Validate
	now        func() time.Time
}

func NewFeedbackService(log *slog.Logger, repository repositories.IFeedbackRepository, now func() time.Time) *FeedbackService {
	if now == nil {
		now = time.Now
	}
	return &FeedbackService{log: log, repository: repository, validate: validator.New(), now: now}
}

// Submit trims and validates a submission, stamps it and stores it.
func (s *FeedbackService) Submit(feedback domain.Feedback) (domain.Feedback, error) {
	feedback.Name = strings.TrimSpace(feedback.Name)
	feedback.Design = strings.TrimSpace(feedback.Design)
	feedback.Usability = strings.TrimSpace(feedback.Usability)
	feedback.Content = strings.TrimSpace(feedback.Content)
	feedback.AdditionalSuggestions = strings.TrimSpace(feedback.AdditionalSuggestions)

	if err := s.validate.Struct(feedback); err != nil {
		return domain.Feedback{}, fmt.Errorf("%w: %v", errors.ErrFeedbackIncomplete, err)
	}

	feedback.ID = uuid.New()
	feedback.Date = s.now().UTC()
	if err := s.repository.StoreFeedback(feedback); err != nil {
		return domain.Feedback{}, fmt.Errorf("storing feedback: %w", err)
	}
	s.log.Info("Feedback stored", "id", feedback.ID)
	return feedback, nil
}

func (s *FeedbackService) List() ([]domain.Feedback, error) {
	return s.repository.ListFeedback()
}
