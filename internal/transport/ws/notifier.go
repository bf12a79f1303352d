package ws

import (
	"log"

	"github.com/chitchat-app/chitchat/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// NotifyNewMessage pushes the message to subscribers of the conversation
// and a preview update directly to both participants, so an open list
// view refreshes without a refetch.
func (n *HubNotifier) NotifyNewMessage(conv *domain.Conversation, msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageNew, &msg.ConversationID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToConversation(msg.ConversationID, evt, nil)

	updated, err := NewEvent(EventTypeConversationUpdated, &msg.ConversationID, ConversationUpdatedPayload{
		ConversationID: msg.ConversationID,
		LastMessage:    msg.Preview(),
		LastMessageAt:  msg.CreatedAt,
	})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToUser(conv.Participant1ID, updated)
	n.hub.BroadcastToUser(conv.Participant2ID, updated)
}
