package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chitchat-app/chitchat/internal/domain"
)

// In-memory repositories for service tests. Error fields inject failures
// per operation.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByVerifyToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.VerifyToken != nil && *u.VerifyToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, id uuid.UUID, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.VerifiedAt = &at
		u.VerifyToken = nil
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
	lookups  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProfileRepo) GetByUniqueNumber(_ context.Context, uniqueNumber string) (*domain.Profile, error) {
	r.lookups++
	for _, p := range r.profiles {
		if p.UniqueNumber == uniqueNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

type fakeConversationRepo struct {
	convs map[uuid.UUID]*domain.Conversation

	createErr  error
	previewErr error
	created    int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[uuid.UUID]*domain.Conversation)}
}

func (r *fakeConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *conv
	r.convs[conv.ID] = &cp
	r.created++
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if c, ok := r.convs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeConversationRepo) GetByParticipants(_ context.Context, userA, userB uuid.UUID) (*domain.Conversation, error) {
	for _, c := range r.convs {
		if (c.Participant1ID == userA && c.Participant2ID == userB) ||
			(c.Participant1ID == userB && c.Participant2ID == userA) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, c := range r.convs {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) SetLabel(_ context.Context, id uuid.UUID, slot int, name *string) error {
	c, ok := r.convs[id]
	if !ok {
		return nil
	}
	if slot == 1 {
		c.Participant1Name = name
	} else {
		c.Participant2Name = name
	}
	return nil
}

func (r *fakeConversationRepo) UpdatePreview(_ context.Context, id uuid.UUID, preview string, at time.Time) error {
	if r.previewErr != nil {
		return r.previewErr
	}
	if c, ok := r.convs[id]; ok {
		c.LastMessage = &preview
		c.LastMessageAt = &at
		c.UpdatedAt = at
	}
	return nil
}

type fakeMessageRepo struct {
	messages []domain.Message

	createErr error
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, conversationID, readerID uuid.UUID) error {
	for i := range r.messages {
		if r.messages[i].ConversationID == conversationID && r.messages[i].SenderID != readerID {
			r.messages[i].IsRead = true
		}
	}
	return nil
}

type fakeLimitRepo struct {
	record *domain.AIChatLimit

	createErr error
	updateErr error
}

func (r *fakeLimitRepo) Create(_ context.Context, limit *domain.AIChatLimit) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *limit
	r.record = &cp
	return nil
}

func (r *fakeLimitRepo) Get(_ context.Context, userID uuid.UUID) (*domain.AIChatLimit, error) {
	if r.record == nil || r.record.UserID != userID {
		return nil, nil
	}
	cp := *r.record
	return &cp, nil
}

func (r *fakeLimitRepo) Update(_ context.Context, limit *domain.AIChatLimit) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *limit
	r.record = &cp
	return nil
}

type fakeGenerator struct {
	answer string
	err    error
	calls  int
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}
