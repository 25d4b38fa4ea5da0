package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/infra/postgres"
)

// ResultRepository stores completed quiz results for history and review.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided database pool.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResult records one completed session.
func (r *ResultRepository) SaveResult(ctx context.Context, sessionID uuid.UUID, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (
			session_id, player_id, page_number, score, total_questions,
			xp_earned, duration_seconds, error_log, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (session_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		sessionID,
		result.PlayerID,
		result.PageNumber,
		result.Score,
		result.TotalQuestions,
		result.XPEarned,
		result.DurationSeconds,
		result.ErrorLog,
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	return nil
}

// RecentForPlayer retrieves the player's latest results, newest first.
func (r *ResultRepository) RecentForPlayer(ctx context.Context, playerID int64, limit int) ([]entities.QuizResult, error) {
	query := `
		SELECT player_id, page_number, score, total_questions, xp_earned,
			duration_seconds, error_log
		FROM quiz_results
		WHERE player_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var results []entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		err := rows.Scan(
			&res.PlayerID,
			&res.PageNumber,
			&res.Score,
			&res.TotalQuestions,
			&res.XPEarned,
			&res.DurationSeconds,
			&res.ErrorLog,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}

	return results, nil
}
