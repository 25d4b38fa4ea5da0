package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/infra/postgres"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository provides access to player gamification state in the
// database.
type PlayerRepository struct {
	db postgres.DBTX
}

// NewPlayerRepository creates a new PlayerRepository with the provided database pool.
func NewPlayerRepository(db postgres.DBTX) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `
	id, username, xp, seasonal_xp, diamonds, skill_points, energy_stars,
	test_attempts, last_daily_reset, inventory, achievements, unlocked_skills,
	page_high_scores, total_quizzes_completed, total_correct_answers,
	total_questions_answered, total_play_time_seconds, companion_xp
`

// Get retrieves a player by id.
func (r *PlayerRepository) Get(ctx context.Context, playerID int64) (*entities.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	var p entities.Player
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&p.ID,
		&p.Username,
		&p.XP,
		&p.SeasonalXP,
		&p.Diamonds,
		&p.SkillPoints,
		&p.EnergyStars,
		&p.TestAttempts,
		&p.LastDailyReset,
		&p.Inventory,
		&p.Achievements,
		&p.UnlockedSkills,
		&p.PageHighScores,
		&p.TotalQuizzesCompleted,
		&p.TotalCorrectAnswers,
		&p.TotalQuestionsAnswered,
		&p.TotalPlayTimeSeconds,
		&p.CompanionXP,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}

	p.Normalize()
	return &p, nil
}

// Save inserts a new player or replaces the stored state of an existing one.
// Returns true when the row was created.
func (r *PlayerRepository) Save(ctx context.Context, p *entities.Player) (bool, error) {
	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			xp = EXCLUDED.xp,
			seasonal_xp = EXCLUDED.seasonal_xp,
			diamonds = EXCLUDED.diamonds,
			skill_points = EXCLUDED.skill_points,
			energy_stars = EXCLUDED.energy_stars,
			test_attempts = EXCLUDED.test_attempts,
			last_daily_reset = EXCLUDED.last_daily_reset,
			inventory = EXCLUDED.inventory,
			achievements = EXCLUDED.achievements,
			unlocked_skills = EXCLUDED.unlocked_skills,
			page_high_scores = EXCLUDED.page_high_scores,
			total_quizzes_completed = EXCLUDED.total_quizzes_completed,
			total_correct_answers = EXCLUDED.total_correct_answers,
			total_questions_answered = EXCLUDED.total_questions_answered,
			total_play_time_seconds = EXCLUDED.total_play_time_seconds,
			companion_xp = EXCLUDED.companion_xp
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.Username,
		p.XP,
		p.SeasonalXP,
		p.Diamonds,
		p.SkillPoints,
		p.EnergyStars,
		p.TestAttempts,
		p.LastDailyReset,
		p.Inventory,
		p.Achievements,
		p.UnlockedSkills,
		p.PageHighScores,
		p.TotalQuizzesCompleted,
		p.TotalCorrectAnswers,
		p.TotalQuestionsAnswered,
		p.TotalPlayTimeSeconds,
		p.CompanionXP,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("save player: %w", err)
	}

	return created, nil
}

// Exists checks if a player with the given id exists in the database.
func (r *PlayerRepository) Exists(ctx context.Context, playerID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)"

	var exists bool
	err := r.db.QueryRow(ctx, query, playerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check player existence: %w", err)
	}

	return exists, nil
}
