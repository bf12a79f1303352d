package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/chitchat-app/chitchat/internal/domain"
	"github.com/chitchat-app/chitchat/internal/repository"
)

var ErrProfileNotFound = errors.New("profile not found")

// qrSize is the pixel width of the generated share code.
const qrSize = 256

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			profile.DisplayName = nil
		} else {
			profile.DisplayName = &name
		}
	}
	if input.AvatarURL != nil {
		url := strings.TrimSpace(*input.AvatarURL)
		if url == "" {
			profile.AvatarURL = nil
		} else {
			profile.AvatarURL = &url
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// ShareQR renders the user's unique number as a PNG QR code so it can be
// shared with a contact instead of typing the 9 digits.
func (s *ProfileService) ShareQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(profile.UniqueNumber, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	return png, nil
}
