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

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, verify_token, verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash,
		user.VerifyToken, user.VerifiedAt, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, email, password_hash, verify_token, verified_at, created_at, updated_at FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, email, password_hash, verify_token, verified_at, created_at, updated_at FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByVerifyToken(ctx context.Context, token string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, email, password_hash, verify_token, verified_at, created_at, updated_at FROM users WHERE verify_token = $1", token)
}

func (r *UserRepo) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET verified_at = $1, verify_token = NULL, updated_at = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, at, id)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.VerifyToken, &u.VerifiedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &u, err
}
