package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/infra/postgres"
)

var ErrDuelNotFound = errors.New("duel not found")

// DuelRepository provides access to head-to-head duel records.
type DuelRepository struct {
	db postgres.DBTX
}

// NewDuelRepository creates a new DuelRepository with the provided database pool.
func NewDuelRepository(db postgres.DBTX) *DuelRepository {
	return &DuelRepository{db: db}
}

// Create opens a pending duel between two players and returns its id.
func (r *DuelRepository) Create(ctx context.Context, challengerID, opponentID int64) (int64, error) {
	query := `
		INSERT INTO duels (challenger_id, opponent_id, status, created_at)
		VALUES ($1, $2, 'pending', NOW())
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, challengerID, opponentID).Scan(&id); err != nil {
		return 0, fmt.Errorf("create duel: %w", err)
	}
	return id, nil
}

// Get retrieves a duel by id.
func (r *DuelRepository) Get(ctx context.Context, duelID int64) (*entities.Duel, error) {
	query := `
		SELECT id, challenger_id, opponent_id, challenger_score, opponent_score,
			winner_id, is_draw, status
		FROM duels
		WHERE id = $1
	`

	var d entities.Duel
	err := r.db.QueryRow(ctx, query, duelID).Scan(
		&d.ID,
		&d.ChallengerID,
		&d.OpponentID,
		&d.ChallengerScore,
		&d.OpponentScore,
		&d.Winner,
		&d.Draw,
		&d.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuelNotFound
		}
		return nil, fmt.Errorf("get duel: %w", err)
	}

	return &d, nil
}

// Update writes the duel's scores and resolution state.
func (r *DuelRepository) Update(ctx context.Context, d *entities.Duel) error {
	query := `
		UPDATE duels
		SET challenger_score = $2,
			opponent_score = $3,
			winner_id = $4,
			is_draw = $5,
			status = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		d.ID,
		d.ChallengerScore,
		d.OpponentScore,
		d.Winner,
		d.Draw,
		d.Status,
	)
	if err != nil {
		return fmt.Errorf("update duel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuelNotFound
	}

	return nil
}

// PendingForOpponent lists duels waiting for the given player to play.
func (r *DuelRepository) PendingForOpponent(ctx context.Context, playerID int64) ([]entities.Duel, error) {
	query := `
		SELECT id, challenger_id, opponent_id, challenger_score, opponent_score,
			winner_id, is_draw, status
		FROM duels
		WHERE opponent_id = $1 AND status = 'pending' AND opponent_score IS NULL
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("query pending duels: %w", err)
	}
	defer rows.Close()

	var duels []entities.Duel
	for rows.Next() {
		var d entities.Duel
		err := rows.Scan(
			&d.ID,
			&d.ChallengerID,
			&d.OpponentID,
			&d.ChallengerScore,
			&d.OpponentScore,
			&d.Winner,
			&d.Draw,
			&d.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan duel: %w", err)
		}
		duels = append(duels, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate duels: %w", err)
	}

	return duels, nil
}
