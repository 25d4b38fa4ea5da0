package repository

import (
	"context"
	"fmt"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/infra/postgres"
)

// GameConfigRepository provides access to the static game configuration
// tables: level thresholds and question-type eligibility.
type GameConfigRepository struct {
	db postgres.DBTX
}

// NewGameConfigRepository creates a new GameConfigRepository with the provided database pool.
func NewGameConfigRepository(db postgres.DBTX) *GameConfigRepository {
	return &GameConfigRepository{db: db}
}

// LevelThresholds retrieves the full level table, sorted ascending by level.
func (r *GameConfigRepository) LevelThresholds(ctx context.Context) ([]entities.LevelThreshold, error) {
	query := `
		SELECT level, xp_required, title, questions_per_test, diamond_reward
		FROM level_thresholds
		ORDER BY level
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query level thresholds: %w", err)
	}
	defer rows.Close()

	var thresholds []entities.LevelThreshold
	for rows.Next() {
		var t entities.LevelThreshold
		if err := rows.Scan(&t.Level, &t.XPRequired, &t.Title, &t.QuestionsPerTest, &t.DiamondReward); err != nil {
			return nil, fmt.Errorf("scan level threshold: %w", err)
		}
		thresholds = append(thresholds, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level thresholds: %w", err)
	}

	return thresholds, nil
}

// QuestionEligibility retrieves the progression gate for every question type.
func (r *GameConfigRepository) QuestionEligibility(ctx context.Context) ([]entities.QuestionTypeConfig, error) {
	query := `
		SELECT id, required_level, required_path
		FROM question_types
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query question types: %w", err)
	}
	defer rows.Close()

	var configs []entities.QuestionTypeConfig
	for rows.Next() {
		var c entities.QuestionTypeConfig
		if err := rows.Scan(&c.ID, &c.RequiredLevel, &c.RequiredPath); err != nil {
			return nil, fmt.Errorf("scan question type: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question types: %w", err)
	}

	return configs, nil
}

// StoreItems retrieves the purchasable item catalog.
func (r *GameConfigRepository) StoreItems(ctx context.Context) ([]entities.StoreItem, error) {
	query := `
		SELECT id, name, type, price, value, icon, is_recommended
		FROM store_items
		ORDER BY sort_order, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query store items: %w", err)
	}
	defer rows.Close()

	var items []entities.StoreItem
	for rows.Next() {
		var item entities.StoreItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Price, &item.Value, &item.Icon, &item.Recommended); err != nil {
			return nil, fmt.Errorf("scan store item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store items: %w", err)
	}

	return items, nil
}
