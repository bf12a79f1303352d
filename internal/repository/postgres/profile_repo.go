package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chitchat-app/chitchat/internal/domain"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, unique_number, display_name, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		profile.UserID, profile.UniqueNumber,
		profile.DisplayName, profile.AvatarURL,
		profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return r.scanProfile(ctx, "SELECT user_id, unique_number, display_name, avatar_url, created_at, updated_at FROM profiles WHERE user_id = $1", userID)
}

func (r *ProfileRepo) GetByUniqueNumber(ctx context.Context, uniqueNumber string) (*domain.Profile, error) {
	return r.scanProfile(ctx, "SELECT user_id, unique_number, display_name, avatar_url, created_at, updated_at FROM profiles WHERE unique_number = $1", uniqueNumber)
}

func (r *ProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE profiles SET display_name = $1, avatar_url = $2, updated_at = $3 WHERE user_id = $4`
	_, err := r.pool.Exec(ctx, query, profile.DisplayName, profile.AvatarURL, time.Now(), profile.UserID)
	return err
}

func (r *ProfileRepo) scanProfile(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.UserID, &p.UniqueNumber, &p.DisplayName, &p.AvatarURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &p, err
}
