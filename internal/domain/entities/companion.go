package entities

// CompanionStage is one evolution stage of the memorization companion,
// reached at a player level.
type CompanionStage struct {
	Name          string
	LevelRequired int
	Image         string
}
