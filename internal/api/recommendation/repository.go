package recommendation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/galagram/galagram-api/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists chat transcripts and a log row per resolver call.
type Repository interface {
	SaveChatMessage(ctx context.Context, userID uuid.UUID, role, content string) error
	GetChatHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error)
	LogRecommendation(ctx context.Context, userID *uuid.UUID, destination, category string, fallback bool, latencyMs int64) error
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewRepository(pgpool *pgxpool.Pool, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *RepositoryImpl) SaveChatMessage(ctx context.Context, userID uuid.UUID, role, content string) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO chat_messages (user_id, role, content) VALUES ($1, $2, $3)`,
		userID, role, content)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetChatHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pgpool.Query(ctx, `
        SELECT role, content FROM (
            SELECT role, content, created_at
            FROM chat_messages
            WHERE user_id = $1
            ORDER BY created_at DESC
            LIMIT $2
        ) recent
        ORDER BY created_at ASC`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var messages []types.ChatMessage
	for rows.Next() {
		var m types.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading chat history rows: %w", err)
	}
	return messages, nil
}

func (r *RepositoryImpl) LogRecommendation(ctx context.Context, userID *uuid.UUID, destination, category string, fallback bool, latencyMs int64) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO recommendation_logs (user_id, destination, category, fallback, latency_ms) VALUES ($1, $2, $3, $4, $5)`,
		userID, destination, category, fallback, latencyMs)
	if err != nil {
		return fmt.Errorf("failed to log recommendation: %w", err)
	}
	return nil
}
