package entities

// SkillEffectType identifies a numeric game-math modifier contributed by an
// unlocked skill node.
type SkillEffectType string

const (
	EffectXPModifier         SkillEffectType = "xp_modifier"                      // multiplier added to per-answer xp
	EffectBonusDiamondChance SkillEffectType = "bonus_diamond_chance"             // chance of an extra diamond per quiz
	EffectPerfectBonusXP     SkillEffectType = "perfect_bonus_xp"                 // flat xp added to the perfect-quiz bonus
	EffectExtraDailyAttempt  SkillEffectType = "extra_daily_attempt"              // extra quiz attempts per day
	EffectErrorForgiveness   SkillEffectType = "error_forgiveness"                // first wrong answer per quiz is forgiven
	EffectRaidContribution   SkillEffectType = "clan_raid_contribution_multiplier" // raid points counted this many times
	EffectDuelWinBonusXP     SkillEffectType = "duel_win_bonus_xp"                // flat xp for winning a duel
)

// SkillEffect is the modifier a skill node contributes once unlocked.
type SkillEffect struct {
	Type  SkillEffectType
	Value float64
}

// SkillNode is a node in the skill tree. Dependencies reference other node
// ids and must form a DAG; a node is unlockable only when every dependency is
// already unlocked and the player can afford the cost.
type SkillNode struct {
	ID           string
	Name         string
	Description  string
	Cost         int
	Icon         string
	Dependencies []string
	Effect       SkillEffect
}
