package entities

// LevelThreshold is one row of the level configuration table. The table is
// sorted ascending by level and level 1 must exist before any lookup.
type LevelThreshold struct {
	Level            int    // unique, ascending
	XPRequired       int    // monotonic non-decreasing in level
	Title            string // player title shown at this level
	QuestionsPerTest int    // quiz length unlocked at this level
	DiamondReward    int    // diamonds granted on reaching this level
}

// LevelInfo describes the player's position within the level table for a
// given amount of experience.
type LevelInfo struct {
	Level          int
	Title          string
	Progress       float64 // percent of the way to the next level, 0-100
	CurrentLevelXP int     // xp required for the current level
	NextLevelXP    int     // xp required for the next level (current if maxed)
}

// LevelUp describes a level transition, including the diamond reward attached
// to the new level.
type LevelUp struct {
	LevelInfo
	DiamondReward int
}
