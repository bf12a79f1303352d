package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	MessageText  MessageKind = "text"
	MessageImage MessageKind = "image"
)

// ImagePreview is the fixed conversation-list preview for image messages.
const ImagePreview = "📷"

var (
	ErrEmptyContent   = errors.New("text message requires content")
	ErrEmptyImageRef  = errors.New("image message requires an image reference")
	ErrInvalidMessage = errors.New("message content does not match its kind")
	ErrUnknownMessage = errors.New("unknown message kind")
)

// Message is a single chat message. A message is either text or image;
// Content is set only for text, ImageURL only for image. Use the
// constructors so the two never mix. Messages are created on send and
// mutated only by the read flag, never deleted.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	SenderID       uuid.UUID   `json:"sender_id"`
	Kind           MessageKind `json:"message_type"`
	Content        *string     `json:"content,omitempty"`
	ImageURL       *string     `json:"image_url,omitempty"`
	IsRead         bool        `json:"is_read"`
	CreatedAt      time.Time   `json:"created_at"`
}

func NewTextMessage(conversationID, senderID uuid.UUID, content string, at time.Time) (*Message, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Kind:           MessageText,
		Content:        &content,
		CreatedAt:      at,
	}, nil
}

func NewImageMessage(conversationID, senderID uuid.UUID, imageURL string, at time.Time) (*Message, error) {
	if imageURL == "" {
		return nil, ErrEmptyImageRef
	}
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Kind:           MessageImage,
		ImageURL:       &imageURL,
		CreatedAt:      at,
	}, nil
}

// Validate rejects field combinations the constructors cannot produce.
func (m *Message) Validate() error {
	switch m.Kind {
	case MessageText:
		if m.Content == nil || *m.Content == "" {
			return ErrEmptyContent
		}
		if m.ImageURL != nil {
			return ErrInvalidMessage
		}
	case MessageImage:
		if m.ImageURL == nil || *m.ImageURL == "" {
			return ErrEmptyImageRef
		}
		if m.Content != nil {
			return ErrInvalidMessage
		}
	default:
		return ErrUnknownMessage
	}
	return nil
}

// Preview returns the denormalized conversation-list preview text.
func (m *Message) Preview() string {
	if m.Kind == MessageImage {
		return ImagePreview
	}
	if m.Content != nil {
		return *m.Content
	}
	return ""
}
