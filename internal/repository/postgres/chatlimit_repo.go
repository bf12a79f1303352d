package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chitchat-app/chitchat/internal/domain"
)

type AIChatLimitRepo struct {
	pool *pgxpool.Pool
}

func NewAIChatLimitRepo(pool *pgxpool.Pool) *AIChatLimitRepo {
	return &AIChatLimitRepo{pool: pool}
}

func (r *AIChatLimitRepo) Create(ctx context.Context, limit *domain.AIChatLimit) error {
	query := `
		INSERT INTO ai_chat_limits (user_id, questions_count, last_reset_at)
		VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, limit.UserID, limit.QuestionsCount, limit.LastResetAt)
	return err
}

func (r *AIChatLimitRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.AIChatLimit, error) {
	query := `SELECT user_id, questions_count, last_reset_at FROM ai_chat_limits WHERE user_id = $1`
	var l domain.AIChatLimit
	err := r.pool.QueryRow(ctx, query, userID).Scan(&l.UserID, &l.QuestionsCount, &l.LastResetAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &l, err
}

func (r *AIChatLimitRepo) Update(ctx context.Context, limit *domain.AIChatLimit) error {
	query := `UPDATE ai_chat_limits SET questions_count = $1, last_reset_at = $2 WHERE user_id = $3`
	_, err := r.pool.Exec(ctx, query, limit.QuestionsCount, limit.LastResetAt, limit.UserID)
	return err
}
