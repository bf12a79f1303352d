package domain

import (
	"time"

	"github.com/google/uuid"
)

// Quota for the AI assistant: QuestionLimit questions per ResetInterval
// window, tracked per user in ai_chat_limits.
const (
	QuestionLimit = 3
	ResetInterval = 5 * time.Hour
)

type QuotaState string

const (
	// QuotaActive: the window is current and questions remain.
	QuotaActive QuotaState = "active"
	// QuotaExhausted: the window is current but the limit is reached.
	QuotaExhausted QuotaState = "exhausted"
	// QuotaExpired: the window is older than ResetInterval and must be
	// collapsed to a fresh counter before any read is trusted.
	QuotaExpired QuotaState = "expired"
)

type AIChatLimit struct {
	UserID         uuid.UUID `json:"user_id"`
	QuestionsCount int       `json:"questions_count"`
	LastResetAt    time.Time `json:"last_reset_at"`
}

// StateAt classifies the record relative to now.
func (l *AIChatLimit) StateAt(now time.Time) QuotaState {
	if now.Sub(l.LastResetAt) >= ResetInterval {
		return QuotaExpired
	}
	if l.QuestionsCount >= QuestionLimit {
		return QuotaExhausted
	}
	return QuotaActive
}

// ResetIn returns the time until the current window expires. Zero for an
// already-expired window.
func (l *AIChatLimit) ResetIn(now time.Time) time.Duration {
	remaining := ResetInterval - now.Sub(l.LastResetAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Remaining returns how many questions are left in the current window.
func (l *AIChatLimit) Remaining() int {
	if l.QuestionsCount >= QuestionLimit {
		return 0
	}
	return QuestionLimit - l.QuestionsCount
}

// Reset collapses the record to a fresh window starting at now.
func (l *AIChatLimit) Reset(now time.Time) {
	l.QuestionsCount = 0
	l.LastResetAt = now
}
