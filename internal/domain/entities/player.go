// Package entities contains domain entities used across the application.
package entities

import "time"

// Player holds the full gamification state for a single player: experience,
// currencies, inventory, unlocked achievements and skills, and lifetime
// counters. The engine mutates it in memory; persistence is owned by the
// player repository.
type Player struct {
	ID       int64
	Username string

	XP          int // lifetime experience, drives level lookup
	SeasonalXP  int // experience accrued within the current season
	Diamonds    int // secondary reward currency
	SkillPoints int // currency spent on skill tree nodes
	EnergyStars int // consumable quiz attempts bought in the store

	TestAttempts   int        // remaining quiz attempts for the current day
	LastDailyReset *time.Time // when attempts/quests were last rolled over

	Inventory      []string // owned item ids (page_N, qari_*, theme_*)
	Achievements   []int    // unlocked achievement ids, append-only
	UnlockedSkills []string // unlocked skill node ids, append-only

	PageHighScores map[int]int // page number -> best score percentage

	TotalQuizzesCompleted  int
	TotalCorrectAnswers    int
	TotalQuestionsAnswered int
	TotalPlayTimeSeconds   int

	CompanionXP int
}

// Normalize fills in zero values for collection fields so callers can index
// them without nil checks. Mirrors the defaulting done when a player record
// is loaded.
func (p *Player) Normalize() {
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []int{}
	}
	if p.UnlockedSkills == nil {
		p.UnlockedSkills = []string{}
	}
	if p.PageHighScores == nil {
		p.PageHighScores = map[int]int{}
	}
}

// HasItem reports whether the player owns the given inventory item.
func (p *Player) HasItem(itemID string) bool {
	for _, id := range p.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// AddItem appends an item to the inventory if it is not already owned.
func (p *Player) AddItem(itemID string) {
	if !p.HasItem(itemID) {
		p.Inventory = append(p.Inventory, itemID)
	}
}

// HasAchievement reports whether the achievement id has already been granted.
func (p *Player) HasAchievement(id int) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// HasSkill reports whether the skill node id has been unlocked.
func (p *Player) HasSkill(skillID string) bool {
	for _, s := range p.UnlockedSkills {
		if s == skillID {
			return true
		}
	}
	return false
}

// UpdatePageHighScore records a new high score for a page and reports whether
// the stored value changed. Scores are monotonic per page: only a strictly
// greater percentage replaces the stored one.
func (p *Player) UpdatePageHighScore(page, percentage int) bool {
	if p.PageHighScores == nil {
		p.PageHighScores = map[int]int{}
	}
	if percentage > p.PageHighScores[page] {
		p.PageHighScores[page] = percentage
		return true
	}
	return false
}
