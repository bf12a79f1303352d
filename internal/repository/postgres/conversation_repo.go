package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chitchat-app/chitchat/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, participant1_id, participant2_id, participant1_name, participant2_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		conv.ID, conv.Participant1ID, conv.Participant2ID,
		conv.Participant1Name, conv.Participant2Name,
		conv.CreatedAt, conv.UpdatedAt,
	)
	return err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, participant1_id, participant2_id, participant1_name, participant2_name,
			last_message, last_message_at, created_at, updated_at
		FROM conversations
		WHERE id = $1`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&conv.ID, &conv.Participant1ID, &conv.Participant2ID,
		&conv.Participant1Name, &conv.Participant2Name,
		&conv.LastMessage, &conv.LastMessageAt, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}

// GetByParticipants matches the unordered pair: either user may occupy
// either slot. Uniqueness of the pair is not enforced by the schema; the
// existence check before Create is best-effort and two concurrent starts
// can still race a duplicate in.
func (r *ConversationRepo) GetByParticipants(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, participant1_id, participant2_id, participant1_name, participant2_name,
			last_message, last_message_at, created_at, updated_at
		FROM conversations
		WHERE (participant1_id = $1 AND participant2_id = $2)
			OR (participant1_id = $2 AND participant2_id = $1)
		LIMIT 1`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, userA, userB).Scan(
		&conv.ID, &conv.Participant1ID, &conv.Participant2ID,
		&conv.Participant1Name, &conv.Participant2Name,
		&conv.LastMessage, &conv.LastMessageAt, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}

func (r *ConversationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	query := `
		SELECT c.id, c.participant1_id, c.participant2_id, c.participant1_name, c.participant2_name,
			c.last_message, c.last_message_at, c.created_at, c.updated_at,
			CASE WHEN c.participant1_id = $1 THEN c.participant2_id ELSE c.participant1_id END AS peer_id,
			CASE WHEN c.participant1_id = $1 THEN p2.unique_number ELSE p1.unique_number END AS peer_unique_number,
			CASE WHEN c.participant1_id = $1 THEN p2.display_name ELSE p1.display_name END AS peer_display_name,
			CASE WHEN c.participant1_id = $1 THEN p2.avatar_url ELSE p1.avatar_url END AS peer_avatar_url
		FROM conversations c
		JOIN profiles p1 ON c.participant1_id = p1.user_id
		JOIN profiles p2 ON c.participant2_id = p2.user_id
		WHERE c.participant1_id = $1 OR c.participant2_id = $1
		ORDER BY c.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(
			&conv.ID, &conv.Participant1ID, &conv.Participant2ID,
			&conv.Participant1Name, &conv.Participant2Name,
			&conv.LastMessage, &conv.LastMessageAt, &conv.CreatedAt, &conv.UpdatedAt,
			&conv.PeerID, &conv.PeerUniqueNumber, &conv.PeerDisplayName, &conv.PeerAvatarURL,
		); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

func (r *ConversationRepo) SetLabel(ctx context.Context, id uuid.UUID, slot int, name *string) error {
	var column string
	switch slot {
	case 1:
		column = "participant1_name"
	case 2:
		column = "participant2_name"
	default:
		return fmt.Errorf("invalid participant slot %d", slot)
	}
	query := fmt.Sprintf(`UPDATE conversations SET %s = $1 WHERE id = $2`, column)
	_, err := r.pool.Exec(ctx, query, name, id)
	return err
}

func (r *ConversationRepo) UpdatePreview(ctx context.Context, id uuid.UUID, preview string, at time.Time) error {
	query := `UPDATE conversations SET last_message = $1, last_message_at = $2, updated_at = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, preview, at, id)
	return err
}
