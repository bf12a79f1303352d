package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
	"github.com/chitchat-app/chitchat/internal/repository"
)

var ErrBadMessageBody = errors.New("message must be text with content or image with a reference")

// Notifier pushes real-time events to conversation participants. Wired
// after construction to break the service↔transport cycle.
type Notifier interface {
	NotifyNewMessage(conv *domain.Conversation, msg *domain.Message)
}

type MessageService struct {
	msgRepo  repository.MessageRepository
	convRepo repository.ConversationRepository
	notifier Notifier

	now func() time.Time
}

func NewMessageService(msgRepo repository.MessageRepository, convRepo repository.ConversationRepository) *MessageService {
	return &MessageService{
		msgRepo:  msgRepo,
		convRepo: convRepo,
		now:      time.Now,
	}
}

func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendInput struct {
	Kind     domain.MessageKind `json:"message_type"`
	Content  string             `json:"content"`
	ImageURL string             `json:"image_url"`
}

// History returns the full message history in chronological order.
func (s *MessageService) History(ctx context.Context, viewerID, conversationID uuid.UUID) ([]domain.Message, error) {
	if _, err := s.participantCheck(ctx, viewerID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.msgRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// Send appends a message and then refreshes the conversation's
// denormalized preview. The two steps are not atomic: if the insert fails
// nothing happened; if the preview update fails the message is already
// durable and the list preview goes stale until the next send. The detail
// view reads messages directly, so a stale preview is accepted rather
// than compensated.
func (s *MessageService) Send(ctx context.Context, senderID, conversationID uuid.UUID, input SendInput) (*domain.Message, error) {
	conv, err := s.participantCheck(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var msg *domain.Message
	switch input.Kind {
	case domain.MessageText:
		msg, err = domain.NewTextMessage(conversationID, senderID, input.Content, now)
	case domain.MessageImage:
		msg, err = domain.NewImageMessage(conversationID, senderID, input.ImageURL, now)
	default:
		return nil, ErrBadMessageBody
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMessageBody, err)
	}

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if err := s.convRepo.UpdatePreview(ctx, conversationID, msg.Preview(), now); err != nil {
		log.Printf("WARN message %s sent but preview update failed: %v", msg.ID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(conv, msg)
	}

	return msg, nil
}

// MarkRead flags every message from the peer as read.
func (s *MessageService) MarkRead(ctx context.Context, readerID, conversationID uuid.UUID) error {
	if _, err := s.participantCheck(ctx, readerID, conversationID); err != nil {
		return err
	}
	return s.msgRepo.MarkRead(ctx, conversationID, readerID)
}

func (s *MessageService) participantCheck(ctx context.Context, userID, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}
