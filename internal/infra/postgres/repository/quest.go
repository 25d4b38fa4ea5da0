package repository

import (
	"context"
	"fmt"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/infra/postgres"
)

// QuestRepository provides access to quest configuration and per-player quest
// progress records.
type QuestRepository struct {
	db postgres.DBTX
}

// NewQuestRepository creates a new QuestRepository with the provided database pool.
func NewQuestRepository(db postgres.DBTX) *QuestRepository {
	return &QuestRepository{db: db}
}

// ConfigsForPeriod retrieves the quest definitions for one period kind
// ("daily" or "weekly").
func (r *QuestRepository) ConfigsForPeriod(ctx context.Context, period string) ([]entities.QuestConfig, error) {
	query := `
		SELECT id, type, title, description, target_value, xp_reward, diamond_reward, period
		FROM quest_configs
		WHERE period = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("query quest configs: %w", err)
	}
	defer rows.Close()

	var configs []entities.QuestConfig
	for rows.Next() {
		var c entities.QuestConfig
		if err := rows.Scan(&c.ID, &c.Type, &c.Title, &c.Description, &c.TargetValue, &c.XPReward, &c.DiamondReward, &c.Period); err != nil {
			return nil, fmt.Errorf("scan quest config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quest configs: %w", err)
	}

	return configs, nil
}

// AssignForPeriod creates progress records for the player from the given
// configs, skipping quests already assigned for the period key.
func (r *QuestRepository) AssignForPeriod(ctx context.Context, playerID int64, periodKey string, configs []entities.QuestConfig) error {
	query := `
		INSERT INTO player_quests (player_id, quest_id, period_key, progress, completed)
		VALUES ($1, $2, $3, 0, FALSE)
		ON CONFLICT (player_id, quest_id, period_key) DO NOTHING
	`

	for _, c := range configs {
		if _, err := r.db.Exec(ctx, query, playerID, c.ID, periodKey); err != nil {
			return fmt.Errorf("assign quest %d: %w", c.ID, err)
		}
	}
	return nil
}

// ActiveForPeriod retrieves the player's quest records for the given period
// keys, joined with their configuration.
func (r *QuestRepository) ActiveForPeriod(ctx context.Context, playerID int64, periodKeys ...string) ([]entities.QuestRecord, error) {
	query := `
		SELECT pq.id, pq.player_id, pq.period_key, pq.progress, pq.completed,
			qc.id, qc.type, qc.title, qc.description, qc.target_value,
			qc.xp_reward, qc.diamond_reward, qc.period
		FROM player_quests pq
		JOIN quest_configs qc ON qc.id = pq.quest_id
		WHERE pq.player_id = $1 AND pq.period_key = ANY($2)
		ORDER BY pq.id
	`

	rows, err := r.db.Query(ctx, query, playerID, periodKeys)
	if err != nil {
		return nil, fmt.Errorf("query player quests: %w", err)
	}
	defer rows.Close()

	var records []entities.QuestRecord
	for rows.Next() {
		var rec entities.QuestRecord
		err := rows.Scan(
			&rec.ID,
			&rec.PlayerID,
			&rec.PeriodKey,
			&rec.Progress,
			&rec.Completed,
			&rec.Config.ID,
			&rec.Config.Type,
			&rec.Config.Title,
			&rec.Config.Description,
			&rec.Config.TargetValue,
			&rec.Config.XPReward,
			&rec.Config.DiamondReward,
			&rec.Config.Period,
		)
		if err != nil {
			return nil, fmt.Errorf("scan player quest: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player quests: %w", err)
	}

	return records, nil
}

// ReportProgress writes a batch of progress updates.
func (r *QuestRepository) ReportProgress(ctx context.Context, updates []entities.QuestProgressUpdate) error {
	query := `
		UPDATE player_quests
		SET progress = $2, completed = $3
		WHERE id = $1
	`

	for _, u := range updates {
		if _, err := r.db.Exec(ctx, query, u.ID, u.Progress, u.Completed); err != nil {
			return fmt.Errorf("update quest %d: %w", u.ID, err)
		}
	}
	return nil
}
