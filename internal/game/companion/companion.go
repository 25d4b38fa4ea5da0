// Package companion maps player level to the memorization companion's
// evolution stage and detects stage changes.
package companion

import (
	"sort"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

// DefaultStages are the shipped evolution stages, from seed to lantern.
func DefaultStages() []entities.CompanionStage {
	return []entities.CompanionStage{
		{Name: "بذرة المعرفة", LevelRequired: 1, Image: "images/companion_stage1.png"},
		{Name: "برعم النور", LevelRequired: 10, Image: "images/companion_stage2.png"},
		{Name: "شتلة الإتقان", LevelRequired: 25, Image: "images/companion_stage3.png"},
		{Name: "شجرة الحكمة", LevelRequired: 50, Image: "images/companion_stage4.png"},
		{Name: "فانوس المعرفة", LevelRequired: 75, Image: "images/companion_stage5.png"},
	}
}

// Tracker remembers the last seen stage for one player so a level change can
// be reported as an evolution exactly once.
type Tracker struct {
	stages  []entities.CompanionStage
	current string
}

// NewTracker sorts the stages ascending by required level.
func NewTracker(stages []entities.CompanionStage) *Tracker {
	sorted := make([]entities.CompanionStage, len(stages))
	copy(sorted, stages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LevelRequired < sorted[j].LevelRequired
	})
	return &Tracker{stages: sorted}
}

// StageFor returns the highest stage the level has reached. Levels below the
// first stage map to the first stage.
func (t *Tracker) StageFor(level int) entities.CompanionStage {
	stage := t.stages[0]
	for _, s := range t.stages {
		if level >= s.LevelRequired {
			stage = s
		}
	}
	return stage
}

// CheckEvolution updates the tracked stage for the given level. It reports an
// evolution only on a change after the initial sighting, so loading a player
// does not fire a spurious notification.
func (t *Tracker) CheckEvolution(level int) (entities.CompanionStage, bool) {
	stage := t.StageFor(level)
	if stage.Name == t.current {
		return stage, false
	}

	first := t.current == ""
	t.current = stage.Name
	return stage, !first
}
