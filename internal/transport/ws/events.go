package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeConversationSubscribe   = "conversation.subscribe"
	EventTypeConversationUnsubscribe = "conversation.unsubscribe"
	EventTypePing                    = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew          = "message.new"
	EventTypeConversationUpdated = "conversation.updated"
	EventTypePresence            = "presence"
	EventTypePong                = "pong"
	EventTypeError               = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type           string          `json:"type"`
	ConversationID *uuid.UUID      `json:"conversation_id,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	Timestamp      int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type ConversationPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.Message
}

// ConversationUpdatedPayload carries the refreshed list-view preview.
type ConversationUpdatedPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	LastMessage    string    `json:"last_message"`
	LastMessageAt  time.Time `json:"last_message_at"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"` // "online" | "offline"
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, conversationID *uuid.UUID, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:           eventType,
		ConversationID: conversationID,
		Payload:        data,
		Timestamp:      time.Now().Unix(),
	}, nil
}
