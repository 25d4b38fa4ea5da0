package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

type PlayerRepository interface {
	Get(ctx context.Context, playerID int64) (*entities.Player, error)
	Save(ctx context.Context, p *entities.Player) (bool, error)
}

type GameConfigRepository interface {
	LevelThresholds(ctx context.Context) ([]entities.LevelThreshold, error)
	QuestionEligibility(ctx context.Context) ([]entities.QuestionTypeConfig, error)
	StoreItems(ctx context.Context) ([]entities.StoreItem, error)
}

type ContentRepository interface {
	Page(ctx context.Context, pageNumber int) ([]entities.Ayah, error)
	Pages() []int
}

type QuestRepository interface {
	ConfigsForPeriod(ctx context.Context, period string) ([]entities.QuestConfig, error)
	AssignForPeriod(ctx context.Context, playerID int64, periodKey string, configs []entities.QuestConfig) error
	ActiveForPeriod(ctx context.Context, playerID int64, periodKeys ...string) ([]entities.QuestRecord, error)
	ReportProgress(ctx context.Context, updates []entities.QuestProgressUpdate) error
}

type ResultRepository interface {
	SaveResult(ctx context.Context, sessionID uuid.UUID, result *entities.QuizResult) error
	RecentForPlayer(ctx context.Context, playerID int64, limit int) ([]entities.QuizResult, error)
}

type DuelRepository interface {
	Create(ctx context.Context, challengerID, opponentID int64) (int64, error)
	Get(ctx context.Context, duelID int64) (*entities.Duel, error)
	Update(ctx context.Context, d *entities.Duel) error
	PendingForOpponent(ctx context.Context, playerID int64) ([]entities.Duel, error)
}

// Notifier pushes out-of-band notifications (toasts) to the player: grants,
// level-ups, companion evolutions.
type Notifier interface {
	AchievementUnlocked(playerID int64, rule entities.AchievementRule)
	QuestCompleted(playerID int64, config entities.QuestConfig)
	LevelUp(playerID int64, newLevel int, title string, diamonds int)
	CompanionEvolved(playerID int64, stage entities.CompanionStage)
}
