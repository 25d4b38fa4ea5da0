// Package progression maps accumulated experience to levels, titles and
// questions-per-test counts using the ordered threshold table loaded from
// game configuration.
package progression

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

// ErrNoLevelConfig is returned when the threshold table is missing or empty.
// Initialization fails fast on it; lookups on an uninitialized calculator
// degrade to safe defaults instead.
var ErrNoLevelConfig = errors.New("no level thresholds configured")

// Learning paths unlocked as the player levels up. Question types are gated
// on a path, so higher paths widen the eligible generator set.
const (
	PathBasic  = "basic"
	PathHafez  = "hafez"
	PathMutqen = "mutqen"
	PathMujaz  = "mujaz"
)

const defaultQuestionsPerTest = 5

// Rules are the flat xp amounts the reward math starts from, before skill
// modifiers apply.
type Rules struct {
	XPPerCorrectAnswer int
	PerfectQuizBonus   int
}

// DefaultRules returns the base reward amounts.
func DefaultRules() Rules {
	return Rules{
		XPPerCorrectAnswer: 5,
		PerfectQuizBonus:   50,
	}
}

// Calculator answers level questions against a fixed threshold table.
type Calculator struct {
	levels []entities.LevelThreshold
	rules  Rules
	logger *zap.Logger
}

// NewCalculator validates and sorts the threshold table. An empty table is a
// configuration error and blocks entering gameplay.
func NewCalculator(levels []entities.LevelThreshold, logger *zap.Logger) (*Calculator, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevelConfig
	}

	sorted := make([]entities.LevelThreshold, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	return &Calculator{
		levels: sorted,
		rules:  DefaultRules(),
		logger: logger,
	}, nil
}

// Rules returns the base reward amounts.
func (c *Calculator) Rules() Rules {
	return c.rules
}

// LevelInfo returns the level the given experience falls into: the highest
// threshold whose required xp does not exceed xp. A calculator without a
// table logs and returns a conservative default instead of failing, so
// already-rendered UI keeps working after a transient config failure.
func (c *Calculator) LevelInfo(xp int) entities.LevelInfo {
	if c == nil || len(c.levels) == 0 {
		if c != nil && c.logger != nil {
			c.logger.Error("level lookup before progression was initialized")
		}
		return entities.LevelInfo{Level: 1, Title: "مبتدئ", Progress: 0, NextLevelXP: 100}
	}
	if xp < 0 {
		xp = 0
	}

	current := c.levels[0]
	for i := len(c.levels) - 1; i >= 0; i-- {
		if xp >= c.levels[i].XPRequired {
			current = c.levels[i]
			break
		}
	}

	info := entities.LevelInfo{
		Level:          current.Level,
		Title:          current.Title,
		CurrentLevelXP: current.XPRequired,
		NextLevelXP:    current.XPRequired,
		Progress:       100,
	}

	if next, ok := c.threshold(current.Level + 1); ok {
		info.NextLevelXP = next.XPRequired
		if next.XPRequired > current.XPRequired {
			progress := float64(xp-current.XPRequired) / float64(next.XPRequired-current.XPRequired) * 100
			info.Progress = clampPercent(progress)
		}
	}

	return info
}

// CheckForLevelUp reports the level transition between two xp values,
// including the diamond reward of the reached level, or nil if the level did
// not change.
func (c *Calculator) CheckForLevelUp(oldXP, newXP int) *entities.LevelUp {
	oldInfo := c.LevelInfo(oldXP)
	newInfo := c.LevelInfo(newXP)
	if newInfo.Level <= oldInfo.Level {
		return nil
	}

	up := &entities.LevelUp{LevelInfo: newInfo}
	if t, ok := c.threshold(newInfo.Level); ok {
		up.DiamondReward = t.DiamondReward
	}
	return up
}

// MaxQuestionsForLevel returns the quiz length configured for the exact
// level, falling back to a fixed minimum when the table has no such level.
func (c *Calculator) MaxQuestionsForLevel(level int) int {
	if c == nil || len(c.levels) == 0 {
		return defaultQuestionsPerTest
	}
	if t, ok := c.threshold(level); ok && t.QuestionsPerTest > 0 {
		return t.QuestionsPerTest
	}
	return defaultQuestionsPerTest
}

// AvailablePaths lists the learning paths open at the given level.
func AvailablePaths(level int) []string {
	paths := []string{PathBasic}
	if level >= 21 {
		paths = append(paths, PathHafez)
	}
	if level >= 41 {
		paths = append(paths, PathMutqen)
	}
	if level >= 61 {
		paths = append(paths, PathMujaz)
	}
	return paths
}

func (c *Calculator) threshold(level int) (entities.LevelThreshold, bool) {
	for _, t := range c.levels {
		if t.Level == level {
			return t, true
		}
	}
	return entities.LevelThreshold{}, false
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
