package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
	"github.com/chitchat-app/chitchat/internal/repository"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrBadUniqueNumber      = errors.New("unique number must be 9 digits starting with 73")
	ErrNumberNotFound       = errors.New("no user with this unique number")
	ErrCannotMessageSelf    = errors.New("cannot start a conversation with yourself")
)

var uniqueNumberShape = regexp.MustCompile(`^73\d{7}$`)

type ConversationService struct {
	convRepo    repository.ConversationRepository
	profileRepo repository.ProfileRepository

	now func() time.Time
}

func NewConversationService(convRepo repository.ConversationRepository, profileRepo repository.ProfileRepository) *ConversationService {
	return &ConversationService{
		convRepo:    convRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// List returns the viewer's conversations, most recently active first,
// with the display name resolved per viewer.
func (s *ConversationService) List(ctx context.Context, viewerID uuid.UUID) ([]domain.Conversation, error) {
	convs, err := s.convRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	for i := range convs {
		convs[i].DisplayName = convs[i].DisplayNameFor(viewerID)
	}
	return convs, nil
}

// StartConversation resolves a peer by unique number and joins or creates
// the conversation between the two users.
//
// The shape check runs before any store call. The existing-conversation
// lookup matches either slot order, so starting the same chat twice (from
// either side) yields the same conversation. The check-then-insert is not
// atomic; two simultaneous starts from both peers can still create a
// duplicate.
func (s *ConversationService) StartConversation(ctx context.Context, viewerID uuid.UUID, uniqueNumber, name string) (*domain.Conversation, bool, error) {
	uniqueNumber = strings.TrimSpace(uniqueNumber)
	if !uniqueNumberShape.MatchString(uniqueNumber) {
		return nil, false, ErrBadUniqueNumber
	}

	peer, err := s.profileRepo.GetByUniqueNumber(ctx, uniqueNumber)
	if err != nil {
		return nil, false, fmt.Errorf("looking up unique number: %w", err)
	}
	if peer == nil {
		return nil, false, ErrNumberNotFound
	}
	if peer.UserID == viewerID {
		return nil, false, ErrCannotMessageSelf
	}

	existing, err := s.convRepo.GetByParticipants(ctx, viewerID, peer.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("checking existing conversation: %w", err)
	}
	if existing != nil {
		if err := s.fillPeer(ctx, existing, viewerID); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	now := s.now()
	conv := &domain.Conversation{
		ID:             uuid.New(),
		Participant1ID: viewerID,
		Participant2ID: peer.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if name = strings.TrimSpace(name); name != "" {
		conv.Participant1Name = &name
	}

	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, false, fmt.Errorf("creating conversation: %w", err)
	}

	conv.PeerID = peer.UserID
	conv.PeerUniqueNumber = peer.UniqueNumber
	conv.PeerDisplayName = peer.DisplayName
	conv.PeerAvatarURL = peer.AvatarURL
	conv.DisplayName = conv.DisplayNameFor(viewerID)

	return conv, true, nil
}

// Get returns one conversation after a participant check. The peer's
// public profile fields are filled for the detail view.
func (s *ConversationService) Get(ctx context.Context, viewerID, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(viewerID) {
		return nil, ErrNotParticipant
	}

	if err := s.fillPeer(ctx, conv, viewerID); err != nil {
		return nil, err
	}

	return conv, nil
}

// IsParticipant reports whether userID occupies either slot of the
// conversation. The realtime layer uses this to authorize subscriptions.
func (s *ConversationService) IsParticipant(ctx context.Context, userID, conversationID uuid.UUID) (bool, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return false, err
	}
	if conv == nil {
		return false, nil
	}
	return conv.HasParticipant(userID), nil
}

// fillPeer joins the peer's public profile fields and resolves the
// viewer's display name onto conv.
func (s *ConversationService) fillPeer(ctx context.Context, conv *domain.Conversation, viewerID uuid.UUID) error {
	peer, err := s.profileRepo.GetByUserID(ctx, conv.PeerOf(viewerID))
	if err != nil {
		return err
	}
	if peer != nil {
		conv.PeerID = peer.UserID
		conv.PeerUniqueNumber = peer.UniqueNumber
		conv.PeerDisplayName = peer.DisplayName
		conv.PeerAvatarURL = peer.AvatarURL
	}
	conv.DisplayName = conv.DisplayNameFor(viewerID)
	return nil
}

// Rename writes the viewer's private label slot only; the peer's label is
// never touched. An empty name clears the label.
func (s *ConversationService) Rename(ctx context.Context, viewerID, conversationID uuid.UUID, name string) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	slot := conv.SlotOf(viewerID)
	if slot == 0 {
		return nil, ErrNotParticipant
	}

	var label *string
	if name = strings.TrimSpace(name); name != "" {
		label = &name
	}

	if err := s.convRepo.SetLabel(ctx, conversationID, slot, label); err != nil {
		return nil, fmt.Errorf("renaming conversation: %w", err)
	}

	// Patch in memory so callers don't need a refetch.
	if slot == 1 {
		conv.Participant1Name = label
	} else {
		conv.Participant2Name = label
	}
	return conv, nil
}
