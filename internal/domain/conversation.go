package domain

import (
	"time"

	"github.com/google/uuid"
)

// FallbackDisplayName is shown when a conversation has no label and the
// peer has neither a display name nor a resolvable handle.
const FallbackDisplayName = "User"

// Conversation is a one-to-one chat between two participants. Participant
// order is creation order: participant1 started the chat. Each side keeps
// its own private label in its own name slot; a rename is never visible to
// the other side.
type Conversation struct {
	ID               uuid.UUID  `json:"id"`
	Participant1ID   uuid.UUID  `json:"participant1_id"`
	Participant2ID   uuid.UUID  `json:"participant2_id"`
	Participant1Name *string    `json:"participant1_name,omitempty"`
	Participant2Name *string    `json:"participant2_name,omitempty"`
	LastMessage      *string    `json:"last_message,omitempty"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined fields for the list view
	PeerID           uuid.UUID `json:"peer_id"`
	PeerUniqueNumber string    `json:"peer_unique_number,omitempty"`
	PeerDisplayName  *string   `json:"peer_display_name,omitempty"`
	PeerAvatarURL    *string   `json:"peer_avatar_url,omitempty"`

	// DisplayName is resolved per viewer, see DisplayNameFor.
	DisplayName string `json:"display_name,omitempty"`
}

// HasParticipant reports whether userID occupies either participant slot.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// PeerOf returns the other participant's ID.
func (c *Conversation) PeerOf(viewerID uuid.UUID) uuid.UUID {
	if c.Participant1ID == viewerID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// LabelFor returns the viewer's private label, or nil if unset.
func (c *Conversation) LabelFor(viewerID uuid.UUID) *string {
	if c.Participant1ID == viewerID {
		return c.Participant1Name
	}
	return c.Participant2Name
}

// SlotOf returns 1 or 2 for the viewer's participant slot, 0 otherwise.
func (c *Conversation) SlotOf(userID uuid.UUID) int {
	switch userID {
	case c.Participant1ID:
		return 1
	case c.Participant2ID:
		return 2
	}
	return 0
}

// DisplayNameFor resolves the name the viewer sees for this conversation:
// the viewer's own private label, else the peer's display name, else the
// peer's unique number, else a generic placeholder.
func (c *Conversation) DisplayNameFor(viewerID uuid.UUID) string {
	if label := c.LabelFor(viewerID); label != nil && *label != "" {
		return *label
	}
	if c.PeerDisplayName != nil && *c.PeerDisplayName != "" {
		return *c.PeerDisplayName
	}
	if c.PeerUniqueNumber != "" {
		return c.PeerUniqueNumber
	}
	return FallbackDisplayName
}
