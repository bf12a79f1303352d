package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerifyToken(ctx context.Context, token string) (*domain.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	GetByUniqueNumber(ctx context.Context, uniqueNumber string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// GetByParticipants matches the pair in either slot order.
	GetByParticipants(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error)
	// ListByUser returns conversations with peer profile fields joined,
	// most recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	// SetLabel writes one participant's private label slot (1 or 2).
	SetLabel(ctx context.Context, id uuid.UUID, slot int, name *string) error
	// UpdatePreview writes the denormalized last-message summary.
	UpdatePreview(ctx context.Context, id uuid.UUID, preview string, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListByConversation returns the full history in chronological order.
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
	// MarkRead flags every message in the conversation not sent by readerID.
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) error
}

type AIChatLimitRepository interface {
	Create(ctx context.Context, limit *domain.AIChatLimit) error
	Get(ctx context.Context, userID uuid.UUID) (*domain.AIChatLimit, error)
	Update(ctx context.Context, limit *domain.AIChatLimit) error
}
