package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
	"github.com/aminsalih/hifzquest-bot/internal/game/progression"
)

type recordingNotifier struct {
	unlocked []int
}

func (n *recordingNotifier) AchievementUnlocked(_ int64, rule entities.AchievementRule) {
	n.unlocked = append(n.unlocked, rule.ID)
}

func levelUpRule() entities.AchievementRule {
	return entities.AchievementRule{
		ID:             1,
		Name:           "Reach level 5",
		TriggerEvent:   eventbus.EventLevelUp,
		TargetProperty: "newLevel",
		Comparator:     entities.CompareGTE,
		TargetValue:    5,
		XPReward:       50,
		DiamondReward:  25,
	}
}

func testCalc(t *testing.T) *progression.Calculator {
	t.Helper()
	c, err := progression.NewCalculator([]entities.LevelThreshold{
		{Level: 1, XPRequired: 0},
		{Level: 5, XPRequired: 100},
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func setup(t *testing.T, rules []entities.AchievementRule) (*entities.Player, *eventbus.Bus, *recordingNotifier) {
	t.Helper()
	player := &entities.Player{ID: 7}
	player.Normalize()

	notifier := &recordingNotifier{}
	bus := eventbus.New(zap.NewNop())

	engine := NewEngine(rules, player, testCalc(t), notifier, zap.NewNop())
	engine.Attach(bus)

	return player, bus, notifier
}

func TestLevelUpRule_FiresOnAndAboveTarget(t *testing.T) {
	cases := []struct {
		newLevel int
		fired    bool
	}{
		{4, false},
		{5, true},
		{7, true},
	}
	for _, tc := range cases {
		player, bus, notifier := setup(t, []entities.AchievementRule{levelUpRule()})

		bus.Publish(eventbus.EventLevelUp, eventbus.Payload{"newLevel": tc.newLevel})

		if tc.fired {
			assert.Equal(t, []int{1}, notifier.unlocked, "newLevel=%d", tc.newLevel)
			assert.Equal(t, 50, player.XP)
			assert.Equal(t, 25, player.Diamonds)
		} else {
			assert.Empty(t, notifier.unlocked, "newLevel=%d", tc.newLevel)
			assert.Zero(t, player.XP)
		}
	}
}

func TestGrant_IsIdempotent(t *testing.T) {
	player, bus, notifier := setup(t, []entities.AchievementRule{levelUpRule()})

	bus.Publish(eventbus.EventLevelUp, eventbus.Payload{"newLevel": 5})
	bus.Publish(eventbus.EventLevelUp, eventbus.Payload{"newLevel": 6})

	assert.Equal(t, []int{1}, notifier.unlocked, "second matching event must not re-grant")
	assert.Equal(t, 50, player.XP)
	assert.Equal(t, []int{1}, player.Achievements)
}

func TestAbsentProperty_FailsClosed(t *testing.T) {
	rule := levelUpRule()
	rule.TargetProperty = "somethingNobodySets"

	_, bus, notifier := setup(t, []entities.AchievementRule{rule})
	require.NotPanics(t, func() {
		bus.Publish(eventbus.EventLevelUp, eventbus.Payload{})
	})
	assert.Empty(t, notifier.unlocked)
}

func TestComputedFieldsWinOverPayload(t *testing.T) {
	rule := entities.AchievementRule{
		ID:             2,
		TriggerEvent:   eventbus.EventQuizCompleted,
		TargetProperty: "totalQuizzes",
		Comparator:     entities.CompareEq,
		TargetValue:    1,
	}

	player, bus, notifier := setup(t, []entities.AchievementRule{rule})
	player.TotalQuizzesCompleted = 1

	// The payload lies about the counter; the computed field must win.
	bus.Publish(eventbus.EventQuizCompleted, eventbus.Payload{"totalQuizzes": 999})

	assert.Equal(t, []int{2}, notifier.unlocked)
}

func TestPerfectQuizRule_BoolCoercion(t *testing.T) {
	rule := entities.AchievementRule{
		ID:             5,
		TriggerEvent:   eventbus.EventPerfectQuiz,
		TargetProperty: "isPerfect",
		Comparator:     entities.CompareEq,
		TargetValue:    1,
	}

	_, bus, notifier := setup(t, []entities.AchievementRule{rule})

	bus.Publish(eventbus.EventPerfectQuiz, eventbus.Payload{"isPerfect": true})
	assert.Equal(t, []int{5}, notifier.unlocked)
}

func TestQariCollectorRule(t *testing.T) {
	rule := entities.AchievementRule{
		ID:             8,
		TriggerEvent:   eventbus.EventItemPurchased,
		TargetProperty: "qariCount",
		Comparator:     entities.CompareEq,
		TargetValue:    3,
	}

	player, bus, notifier := setup(t, []entities.AchievementRule{rule})
	player.Inventory = []string{"qari_alafasy", "qari_husary", "qari_minshawi", "page_3"}

	bus.Publish(eventbus.EventItemPurchased, eventbus.Payload{"itemId": "qari_minshawi"})

	assert.Equal(t, []int{8}, notifier.unlocked)
}

func TestDefaultRules_SubscribeOncePerDistinctEvent(t *testing.T) {
	rules := DefaultRules()

	events := map[string]bool{}
	for _, r := range rules {
		events[r.TriggerEvent] = true
	}
	// level_up, quiz_completed, perfect_quiz, item_purchased
	assert.Len(t, events, 4)
	assert.Len(t, rules, 8)
}
