package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/game/skills"
)

// baseDailyAttempts is the quiz attempt allowance restored by each daily
// rollover, before the extra-attempt skill effect.
const baseDailyAttempts = 3

// DailyKey buckets a moment into its UTC day, e.g. "2026-09-01".
func DailyKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeeklyKey buckets a moment into its ISO year-week, e.g. "2026-W36".
func WeeklyKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ResetService rolls players over into new daily and weekly periods:
// attempts are refilled and period quests assigned. Rollover runs lazily on
// login and quiz start, plus on a midnight cron for players with a live
// context.
type ResetService struct {
	questRepo QuestRepository
	tree      *skills.Tree
	logger    *zap.Logger
	now       func() time.Time // injectable for period-boundary tests
}

// NewResetService creates a new reset service.
func NewResetService(questRepo QuestRepository, tree *skills.Tree, logger *zap.Logger) *ResetService {
	return &ResetService{
		questRepo: questRepo,
		tree:      tree,
		logger:    logger,
		now:       time.Now,
	}
}

// RolloverIfDue refreshes the player when their last rollover happened in an
// earlier period. Returns true when anything changed.
func (s *ResetService) RolloverIfDue(ctx context.Context, player *entities.Player) (bool, error) {
	now := s.now()
	if player.LastDailyReset != nil && DailyKey(*player.LastDailyReset) == DailyKey(now) {
		return false, nil
	}

	player.TestAttempts = baseDailyAttempts + int(s.tree.Effect(player, entities.EffectExtraDailyAttempt))

	if err := s.assignPeriodQuests(ctx, player.ID, "daily", DailyKey(now)); err != nil {
		return false, err
	}

	newWeek := player.LastDailyReset == nil || WeeklyKey(*player.LastDailyReset) != WeeklyKey(now)
	if newWeek {
		if err := s.assignPeriodQuests(ctx, player.ID, "weekly", WeeklyKey(now)); err != nil {
			return false, err
		}
	}

	player.LastDailyReset = &now
	s.logger.Info("player rolled over",
		zap.Int64("player_id", player.ID),
		zap.Int("attempts", player.TestAttempts),
		zap.Bool("new_week", newWeek),
	)
	return true, nil
}

func (s *ResetService) assignPeriodQuests(ctx context.Context, playerID int64, period, periodKey string) error {
	configs, err := s.questRepo.ConfigsForPeriod(ctx, period)
	if err != nil {
		return fmt.Errorf("load %s quest configs: %w", period, err)
	}
	if len(configs) == 0 {
		return nil
	}
	if err := s.questRepo.AssignForPeriod(ctx, playerID, periodKey, configs); err != nil {
		return fmt.Errorf("assign %s quests: %w", period, err)
	}
	return nil
}

// Start schedules the midnight rollover and blocks until the context is
// cancelled. rollover is called once per trigger with a fresh context.
func (s *ResetService) Start(ctx context.Context, rollover func(ctx context.Context)) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("0 0 * * *", func() {
		s.logger.Info("cron triggered: midnight rollover")
		rollover(ctx)
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("reset scheduler started")

	<-ctx.Done()

	c.Stop()
	s.logger.Info("reset scheduler stopped")
}
