package skills

import "github.com/aminsalih/hifzquest-bot/internal/domain/entities"

// DefaultNodes is the shipped skill tree: three paths (wisdom, mastery,
// social), each a short dependency chain.
func DefaultNodes() []entities.SkillNode {
	return []entities.SkillNode{
		// Wisdom path: bigger rewards.
		{
			ID:          "xp_boost_1",
			Name:        "حكمة الحافظ",
			Description: "زيادة الخبرة المكتسبة من كل إجابة صحيحة بنسبة 10%.",
			Cost:        1,
			Icon:        "🧠",
			Effect:      entities.SkillEffect{Type: entities.EffectXPModifier, Value: 0.10},
		},
		{
			ID:           "xp_boost_2",
			Name:         "بركة العلم",
			Description:  "زيادة الخبرة المكتسبة من كل إجابة صحيحة بنسبة 20% إضافية.",
			Cost:         2,
			Icon:         "📚",
			Dependencies: []string{"xp_boost_1"},
			Effect:       entities.SkillEffect{Type: entities.EffectXPModifier, Value: 0.20},
		},
		{
			ID:           "diamond_boost_1",
			Name:         "كنز المعرفة",
			Description:  "فرصة 5% للحصول على ألماسة إضافية عند إكمال اختبار.",
			Cost:         3,
			Icon:         "💎",
			Dependencies: []string{"xp_boost_2"},
			Effect:       entities.SkillEffect{Type: entities.EffectBonusDiamondChance, Value: 0.05},
		},

		// Mastery path: better quizzes.
		{
			ID:          "perfect_bonus_1",
			Name:        "نور الإتقان",
			Description: "زيادة مكافأة الخبرة للاختبار المتقن بمقدار 25 نقطة.",
			Cost:        1,
			Icon:        "✨",
			Effect:      entities.SkillEffect{Type: entities.EffectPerfectBonusXP, Value: 25},
		},
		{
			ID:           "extra_attempt_1",
			Name:         "نَفَسٌ إضافي",
			Description:  "الحصول على محاولة اختبار يومية إضافية.",
			Cost:         2,
			Icon:         "🔄",
			Dependencies: []string{"perfect_bonus_1"},
			Effect:       entities.SkillEffect{Type: entities.EffectExtraDailyAttempt, Value: 1},
		},
		{
			ID:           "error_forgiveness_1",
			Name:         "فرصة ثانية",
			Description:  "في كل اختبار، يتم التغاضي عن أول خطأ ولا يتم احتسابه.",
			Cost:         3,
			Icon:         "❤️",
			Dependencies: []string{"extra_attempt_1"},
			Effect:       entities.SkillEffect{Type: entities.EffectErrorForgiveness, Value: 1},
		},

		// Social path: clan and duel boosts.
		{
			ID:          "clan_raid_boost_1",
			Name:        "همة القبيلة",
			Description: "مساهمتك في غزوات القبيلة تحتسب مرتين.",
			Cost:        2,
			Icon:        "🛡️",
			Effect:      entities.SkillEffect{Type: entities.EffectRaidContribution, Value: 2},
		},
		{
			ID:           "duel_reward_boost_1",
			Name:         "شرف المبارزة",
			Description:  "الحصول على 10 نقاط خبرة إضافية عند الفوز في مبارزة.",
			Cost:         2,
			Icon:         "⚔️",
			Dependencies: []string{"clan_raid_boost_1"},
			Effect:       entities.SkillEffect{Type: entities.EffectDuelWinBonusXP, Value: 10},
		},
	}
}

// DefaultTree builds the shipped tree. The configuration is static, so a
// failure here is a programming error.
func DefaultTree() *Tree {
	t, err := NewTree(DefaultNodes())
	if err != nil {
		panic(err)
	}
	return t
}
