// Package achievements evaluates declarative one-shot achievement rules
// against gameplay events and grants rewards at most once per rule.
package achievements

import (
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
	"github.com/aminsalih/hifzquest-bot/internal/game/progression"
)

// Notifier receives unlock notifications for the presentation layer. Grants
// happen regardless of what the notifier does with them.
type Notifier interface {
	AchievementUnlocked(playerID int64, rule entities.AchievementRule)
}

// Engine holds the static rule set and evaluates it for one player. It
// mutates the player directly on a grant; persisting the mutation is the
// caller's concern (the grant is not retried or reversible).
type Engine struct {
	rules    []entities.AchievementRule
	byEvent  map[string][]entities.AchievementRule
	player   *entities.Player
	calc     *progression.Calculator
	notifier Notifier
	logger   *zap.Logger
}

// NewEngine builds an engine over a static rule set for the given player.
func NewEngine(
	rules []entities.AchievementRule,
	player *entities.Player,
	calc *progression.Calculator,
	notifier Notifier,
	logger *zap.Logger,
) *Engine {
	byEvent := make(map[string][]entities.AchievementRule)
	for _, r := range rules {
		byEvent[r.TriggerEvent] = append(byEvent[r.TriggerEvent], r)
	}

	return &Engine{
		rules:    rules,
		byEvent:  byEvent,
		player:   player,
		calc:     calc,
		notifier: notifier,
		logger:   logger,
	}
}

// Attach subscribes the engine once per distinct trigger event found in the
// rule set.
func (e *Engine) Attach(bus *eventbus.Bus) {
	for event := range e.byEvent {
		ev := event
		bus.Subscribe(ev, func(payload eventbus.Payload) {
			e.handleEvent(ev, payload)
		})
	}
}

func (e *Engine) handleEvent(event string, payload eventbus.Payload) {
	rules := e.byEvent[event]
	if len(rules) == 0 {
		return
	}

	ctx := buildContext(payload, e.player, e.calc)

	for _, rule := range rules {
		if e.player.HasAchievement(rule.ID) {
			continue
		}
		if !conditionMet(rule, ctx) {
			continue
		}
		e.grant(rule)
	}
}

// conditionMet applies the rule's comparator against the evaluation context.
// A property absent from the context fails the condition rather than
// erroring.
func conditionMet(rule entities.AchievementRule, ctx map[string]float64) bool {
	value, ok := ctx[rule.TargetProperty]
	if !ok {
		return false
	}
	return rule.Comparator.Apply(value, rule.TargetValue)
}

func (e *Engine) grant(rule entities.AchievementRule) {
	e.player.Achievements = append(e.player.Achievements, rule.ID)
	e.player.XP += rule.XPReward
	e.player.Diamonds += rule.DiamondReward

	e.logger.Info("achievement unlocked",
		zap.Int64("player_id", e.player.ID),
		zap.Int("achievement_id", rule.ID),
		zap.String("name", rule.Name),
	)

	if e.notifier != nil {
		e.notifier.AchievementUnlocked(e.player.ID, rule)
	}
}
