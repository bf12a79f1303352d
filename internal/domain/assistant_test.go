package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestQuotaStateAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	l := &AIChatLimit{UserID: uuid.New(), QuestionsCount: 0, LastResetAt: now}
	if got := l.StateAt(now); got != QuotaActive {
		t.Fatalf("fresh window: got %s", got)
	}

	l.QuestionsCount = QuestionLimit
	if got := l.StateAt(now); got != QuotaExhausted {
		t.Fatalf("at limit: got %s", got)
	}

	// Exactly at the interval boundary the window is expired.
	l.LastResetAt = now.Add(-ResetInterval)
	if got := l.StateAt(now); got != QuotaExpired {
		t.Fatalf("at boundary: got %s", got)
	}

	l.LastResetAt = now.Add(-ResetInterval + time.Second)
	if got := l.StateAt(now); got != QuotaExhausted {
		t.Fatalf("just inside boundary: got %s", got)
	}
}

func TestQuotaResetAndRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &AIChatLimit{UserID: uuid.New(), QuestionsCount: 2, LastResetAt: now.Add(-time.Hour)}

	if l.Remaining() != QuestionLimit-2 {
		t.Fatalf("remaining: got %d", l.Remaining())
	}
	if got := l.ResetIn(now); got != ResetInterval-time.Hour {
		t.Fatalf("reset in: got %s", got)
	}

	l.Reset(now)
	if l.QuestionsCount != 0 || !l.LastResetAt.Equal(now) {
		t.Fatalf("reset did not collapse the window: %+v", l)
	}

	stale := &AIChatLimit{LastResetAt: now.Add(-2 * ResetInterval)}
	if stale.ResetIn(now) != 0 {
		t.Fatal("expired window must report zero remaining time")
	}
}
