package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/chitchat-app/chitchat/internal/domain"
	"github.com/chitchat-app/chitchat/internal/repository"
)

var (
	ErrEmailTaken      = errors.New("email already taken")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrInvalidToken    = errors.New("invalid or expired verification token")
	ErrNoUniqueNumber  = errors.New("could not allocate a unique number")
	ErrSessionNotFound = errors.New("session user not found")
)

// uniqueNumberAttempts bounds the collision retry loop for handle
// generation. With 10^7 possible suffixes this is effectively never hit.
const uniqueNumberAttempts = 10

type AuthService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtSecret   []byte

	now func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSecret:   []byte(jwtSecret),
		now:         time.Now,
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User    `json:"user"`
	Profile     *domain.Profile `json:"profile,omitempty"`
	AccessToken string          `json:"access_token"`

	// VerifyToken is returned directly because email delivery is out of
	// scope for this service; a mail sender would consume it instead.
	VerifyToken string `json:"verify_token,omitempty"`
}

type Session struct {
	User     *domain.User    `json:"user"`
	Profile  *domain.Profile `json:"profile"`
	Verified bool            `json:"verified"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	verifyToken, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generating verify token: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		VerifyToken:  &verifyToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	profile, err := s.createProfile(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		Profile:     profile,
		AccessToken: token,
		VerifyToken: verifyToken,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: user, Profile: profile, AccessToken: token}, nil
}

// VerifyEmail consumes a verification token and marks the user verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByVerifyToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	return s.userRepo.MarkVerified(ctx, user.ID, s.now())
}

// GetSession resolves the current user and profile for a valid token.
// The client's verification poll reads Verified from here.
func (s *AuthService) GetSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Profile: profile, Verified: user.Verified()}, nil
}

func (s *AuthService) createProfile(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Profile, error) {
	for range uniqueNumberAttempts {
		number, err := generateUniqueNumber()
		if err != nil {
			return nil, fmt.Errorf("generating unique number: %w", err)
		}

		taken, err := s.profileRepo.GetByUniqueNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			continue
		}

		profile := &domain.Profile{
			UserID:       userID,
			UniqueNumber: number,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("creating profile: %w", err)
		}
		return profile, nil
	}
	return nil, ErrNoUniqueNumber
}

// generateUniqueNumber produces the 9-digit handle: the reserved 73 prefix
// plus 7 random digits.
func generateUniqueNumber() (string, error) {
	suffixDigits := domain.UniqueNumberLength - len(domain.UniqueNumberPrefix)

	max := big.NewInt(1)
	for range suffixDigits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%0*d", domain.UniqueNumberPrefix, suffixDigits, n), nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": s.now().Add(24 * time.Hour).Unix(),
		"iat": s.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
