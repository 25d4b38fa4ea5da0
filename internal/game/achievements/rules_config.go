package achievements

import (
	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
)

// DefaultRules is the shipped achievement set: level milestones, quiz
// milestones, and store milestones.
func DefaultRules() []entities.AchievementRule {
	return []entities.AchievementRule{
		{ID: 1, Name: "الوصول للمستوى 5", TriggerEvent: eventbus.EventLevelUp,
			TargetProperty: "newLevel", Comparator: entities.CompareGTE, TargetValue: 5,
			XPReward: 50, DiamondReward: 25},
		{ID: 2, Name: "الوصول للمستوى 10", TriggerEvent: eventbus.EventLevelUp,
			TargetProperty: "newLevel", Comparator: entities.CompareGTE, TargetValue: 10,
			XPReward: 100, DiamondReward: 50},
		{ID: 3, Name: "الوصول للمستوى 20", TriggerEvent: eventbus.EventLevelUp,
			TargetProperty: "newLevel", Comparator: entities.CompareGTE, TargetValue: 20,
			XPReward: 200, DiamondReward: 100},

		{ID: 4, Name: "أول اختبار ناجح", TriggerEvent: eventbus.EventQuizCompleted,
			TargetProperty: "totalQuizzes", Comparator: entities.CompareEq, TargetValue: 1,
			XPReward: 20, DiamondReward: 10},
		{ID: 5, Name: "أداء مثالي!", TriggerEvent: eventbus.EventPerfectQuiz,
			TargetProperty: "isPerfect", Comparator: entities.CompareEq, TargetValue: 1,
			XPReward: 30, DiamondReward: 15},
		{ID: 6, Name: "خبير الاختبارات", TriggerEvent: eventbus.EventQuizCompleted,
			TargetProperty: "totalQuizzes", Comparator: entities.CompareEq, TargetValue: 50,
			XPReward: 150, DiamondReward: 75},

		{ID: 7, Name: "المشتري الأول", TriggerEvent: eventbus.EventItemPurchased,
			TargetProperty: "inventorySize", Comparator: entities.CompareEq, TargetValue: 1,
			XPReward: 10, DiamondReward: 5},
		{ID: 8, Name: "جامع القراء", TriggerEvent: eventbus.EventItemPurchased,
			TargetProperty: "qariCount", Comparator: entities.CompareEq, TargetValue: 3,
			XPReward: 40, DiamondReward: 20},
	}
}
