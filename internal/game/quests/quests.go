// Package quests tracks repeatable period-scoped quests, advancing their
// progress from gameplay events and handling reward claims.
package quests

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
)

var (
	ErrQuestNotFound = errors.New("quest not found")
	ErrQuestNotReady = errors.New("quest not ready to claim")
)

// Store receives progress batches and claim confirmations. Event-driven
// progress reports are fire-and-forget: failures are logged, not surfaced
// back into game state, so local and remote progress may diverge.
type Store interface {
	ReportProgress(ctx context.Context, updates []entities.QuestProgressUpdate) error
}

// Events a tracker listens to. Quest configs reference a subset of these by
// type; subscribing to the fixed superset keeps config changes out of the
// subscription logic.
var trackedEvents = []string{
	eventbus.EventQuizCompleted,
	eventbus.EventPerfectQuiz,
	eventbus.EventQuestionAnsweredCorrectly,
	eventbus.EventItemPurchased,
	eventbus.EventFriendAdded,
	eventbus.EventLevelUp,
	eventbus.EventEnergyStarUsed,
}

// Tracker holds the active quest records of one player for the current
// period.
type Tracker struct {
	active []*entities.QuestRecord
	player *entities.Player
	store  Store
	logger *zap.Logger
}

// NewTracker builds a tracker over the period's active quest list. Records
// already claimed are filtered out up front.
func NewTracker(active []*entities.QuestRecord, player *entities.Player, store Store, logger *zap.Logger) *Tracker {
	open := make([]*entities.QuestRecord, 0, len(active))
	for _, q := range active {
		if q != nil && !q.Completed {
			open = append(open, q)
		}
	}

	return &Tracker{
		active: open,
		player: player,
		store:  store,
		logger: logger,
	}
}

// Attach subscribes the tracker to every gameplay event that can advance a
// quest.
func (t *Tracker) Attach(bus *eventbus.Bus) {
	for _, event := range trackedEvents {
		ev := event
		bus.Subscribe(ev, func(payload eventbus.Payload) {
			t.handleEvent(ev, payload)
		})
	}
}

// Active returns the current open quest records.
func (t *Tracker) Active() []*entities.QuestRecord {
	return t.active
}

// Reload swaps in a new period's quest records, dropping the old period's.
// Claimed records are filtered out the same way the constructor does.
func (t *Tracker) Reload(active []*entities.QuestRecord) {
	open := make([]*entities.QuestRecord, 0, len(active))
	for _, q := range active {
		if q != nil && !q.Completed {
			open = append(open, q)
		}
	}
	t.active = open
}

func (t *Tracker) handleEvent(event string, payload eventbus.Payload) {
	amount := payload.Amount()

	var updates []entities.QuestProgressUpdate
	for _, q := range t.active {
		if q.Config.Type != event {
			continue
		}
		if q.Advance(amount) {
			updates = append(updates, entities.QuestProgressUpdate{ID: q.ID, Progress: q.Progress})
		}
	}

	if len(updates) == 0 {
		return
	}

	t.logger.Debug("quest progress advanced",
		zap.String("event", event),
		zap.Int("quests", len(updates)),
	)

	// Reported as an unawaited task; a silent write failure means the next
	// period sync wins.
	go func() {
		if err := t.store.ReportProgress(context.Background(), updates); err != nil {
			t.logger.Warn("failed to report quest progress", zap.Error(err))
		}
	}()
}

// Claim grants the quest's rewards to the player, confirms completion with
// the store, and removes the record from the local active list. The removal
// is what prevents a double-claim within this process lifetime; there is no
// server-side idempotence behind it.
func (t *Tracker) Claim(ctx context.Context, questID int64) (*entities.QuestConfig, error) {
	idx := -1
	for i, q := range t.active {
		if q.ID == questID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrQuestNotFound
	}

	quest := t.active[idx]
	if !quest.ReadyToClaim() {
		return nil, ErrQuestNotReady
	}

	update := entities.QuestProgressUpdate{ID: quest.ID, Progress: quest.Progress, Completed: true}
	if err := t.store.ReportProgress(ctx, []entities.QuestProgressUpdate{update}); err != nil {
		return nil, err
	}

	quest.Completed = true
	t.player.XP += quest.Config.XPReward
	t.player.SeasonalXP += quest.Config.XPReward
	t.player.Diamonds += quest.Config.DiamondReward

	t.active = append(t.active[:idx], t.active[idx+1:]...)

	t.logger.Info("quest claimed",
		zap.Int64("player_id", t.player.ID),
		zap.Int64("quest_id", quest.ID),
		zap.String("title", quest.Config.Title),
	)

	cfg := quest.Config
	return &cfg, nil
}
