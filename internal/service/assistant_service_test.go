package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
	"github.com/chitchat-app/chitchat/internal/gemini"
)

func newAssistantFixture(t *testing.T) (*AssistantService, *fakeLimitRepo, *fakeGenerator, *time.Time) {
	t.Helper()
	limitRepo := &fakeLimitRepo{}
	gen := &fakeGenerator{answer: "sure!"}
	svc := NewAssistantService(limitRepo, gen)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	svc.now = func() time.Time { return *clock }
	return svc, limitRepo, gen, clock
}

func TestQuotaCreatesRecordOnFirstActivation(t *testing.T) {
	svc, limitRepo, _, clock := newAssistantFixture(t)
	user := uuid.New()

	status, err := svc.Quota(context.Background(), user)
	if err != nil {
		t.Fatalf("quota failed: %v", err)
	}
	if status.QuestionsCount != 0 || status.Remaining != domain.QuestionLimit {
		t.Fatalf("fresh record must start empty, got %+v", status)
	}
	if limitRepo.record == nil || !limitRepo.record.LastResetAt.Equal(*clock) {
		t.Fatal("record must be persisted with window-start = now")
	}
}

func TestAskExhaustsAfterLimit(t *testing.T) {
	svc, _, gen, _ := newAssistantFixture(t)
	user := uuid.New()

	for i := 0; i < domain.QuestionLimit; i++ {
		result, err := svc.Ask(context.Background(), user, "what is chitchat?")
		if err != nil {
			t.Fatalf("ask %d failed: %v", i+1, err)
		}
		if result.Answer != "sure!" {
			t.Fatalf("unexpected answer %q", result.Answer)
		}
	}

	_, err := svc.Ask(context.Background(), user, "one more?")
	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if quotaErr.ResetIn <= 0 || quotaErr.ResetIn > domain.ResetInterval {
		t.Fatalf("implausible ResetIn %s", quotaErr.ResetIn)
	}
	if gen.calls != domain.QuestionLimit {
		t.Fatalf("upstream must not be contacted when exhausted, got %d calls", gen.calls)
	}
}

func TestExpiredWindowCollapsesBeforeSend(t *testing.T) {
	svc, limitRepo, _, clock := newAssistantFixture(t)
	user := uuid.New()

	limitRepo.record = &domain.AIChatLimit{
		UserID:         user,
		QuestionsCount: domain.QuestionLimit,
		LastResetAt:    clock.Add(-domain.ResetInterval),
	}

	status, err := svc.Quota(context.Background(), user)
	if err != nil {
		t.Fatalf("quota failed: %v", err)
	}
	if status.QuestionsCount != 0 {
		t.Fatalf("expired window must collapse to 0, got %d", status.QuestionsCount)
	}
	if !limitRepo.record.LastResetAt.Equal(*clock) {
		t.Fatal("window-start must be rewritten to now")
	}

	// A send right after the collapse is permitted.
	if _, err := svc.Ask(context.Background(), user, "hello again"); err != nil {
		t.Fatalf("ask after reset failed: %v", err)
	}
}

func TestWindowJustInsideIntervalStaysExhausted(t *testing.T) {
	svc, limitRepo, gen, clock := newAssistantFixture(t)
	user := uuid.New()

	limitRepo.record = &domain.AIChatLimit{
		UserID:         user,
		QuestionsCount: domain.QuestionLimit,
		LastResetAt:    clock.Add(-domain.ResetInterval + time.Minute),
	}

	_, err := svc.Ask(context.Background(), user, "please?")
	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("upstream must not be contacted")
	}
}

func TestFailedUpstreamStillChargesQuota(t *testing.T) {
	svc, limitRepo, gen, _ := newAssistantFixture(t)
	user := uuid.New()
	gen.err = gemini.ErrUpstream

	_, err := svc.Ask(context.Background(), user, "does this count?")
	if !errors.Is(err, gemini.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if limitRepo.record == nil || limitRepo.record.QuestionsCount != 1 {
		t.Fatal("the persisted increment must survive the failed call")
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc, limitRepo, _, _ := newAssistantFixture(t)

	_, err := svc.Ask(context.Background(), uuid.New(), "   ")
	if !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	if limitRepo.record != nil {
		t.Fatal("empty question must not touch the quota record")
	}
}
