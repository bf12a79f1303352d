package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
	"github.com/chitchat-app/chitchat/internal/repository"
)

var ErrEmptyQuestion = errors.New("question is required")

// QuotaExceededError is returned when the user's window is exhausted.
// ResetIn is how long until the window rolls over.
type QuotaExceededError struct {
	ResetIn time.Duration
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("question limit reached, resets in %s", e.ResetIn.Round(time.Second))
}

// Generator is the AI upstream behind the assistant.
type Generator interface {
	Generate(ctx context.Context, question string) (string, error)
}

type AssistantService struct {
	limitRepo repository.AIChatLimitRepository
	generator Generator

	now func() time.Time
}

func NewAssistantService(limitRepo repository.AIChatLimitRepository, generator Generator) *AssistantService {
	return &AssistantService{
		limitRepo: limitRepo,
		generator: generator,
		now:       time.Now,
	}
}

type QuotaStatus struct {
	QuestionsCount int   `json:"questions_count"`
	Limit          int   `json:"limit"`
	Remaining      int   `json:"remaining"`
	ResetIn        int64 `json:"reset_in"` // seconds until the window rolls over
}

type AskResult struct {
	Answer string      `json:"answer"`
	Quota  QuotaStatus `json:"quota"`
}

// Quota reports the user's current window. An absent record is created on
// first touch; an expired window is collapsed to a fresh counter before
// any value is read.
func (s *AssistantService) Quota(ctx context.Context, userID uuid.UUID) (*QuotaStatus, error) {
	limit, err := s.touch(ctx, userID)
	if err != nil {
		return nil, err
	}
	status := s.status(limit)
	return &status, nil
}

// Ask charges one question against the quota and forwards it upstream.
// The counter is persisted BEFORE the upstream call and is not rolled
// back if the call fails, so a failed answer still consumes quota.
func (s *AssistantService) Ask(ctx context.Context, userID uuid.UUID, question string) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	limit, err := s.touch(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit.StateAt(s.now()) == domain.QuotaExhausted {
		return nil, &QuotaExceededError{ResetIn: limit.ResetIn(s.now())}
	}

	limit.QuestionsCount++
	if err := s.limitRepo.Update(ctx, limit); err != nil {
		return nil, fmt.Errorf("charging quota: %w", err)
	}

	answer, err := s.generator.Generate(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("asking assistant: %w", err)
	}

	return &AskResult{Answer: answer, Quota: s.status(limit)}, nil
}

// touch loads the user's record, creating it on first activation and
// collapsing an expired window in place.
func (s *AssistantService) touch(ctx context.Context, userID uuid.UUID) (*domain.AIChatLimit, error) {
	now := s.now()

	limit, err := s.limitRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit == nil {
		limit = &domain.AIChatLimit{
			UserID:         userID,
			QuestionsCount: 0,
			LastResetAt:    now,
		}
		if err := s.limitRepo.Create(ctx, limit); err != nil {
			return nil, fmt.Errorf("creating chat limit: %w", err)
		}
		return limit, nil
	}

	if limit.StateAt(now) == domain.QuotaExpired {
		limit.Reset(now)
		if err := s.limitRepo.Update(ctx, limit); err != nil {
			return nil, fmt.Errorf("resetting chat limit: %w", err)
		}
	}

	return limit, nil
}

func (s *AssistantService) status(limit *domain.AIChatLimit) QuotaStatus {
	return QuotaStatus{
		QuestionsCount: limit.QuestionsCount,
		Limit:          domain.QuestionLimit,
		Remaining:      limit.Remaining(),
		ResetIn:        int64(limit.ResetIn(s.now()).Seconds()),
	}
}
