package entities

// Comparator is the comparison operator of an achievement rule.
type Comparator string

const (
	CompareEq  Comparator = "eq"
	CompareGTE Comparator = "gte"
	CompareLTE Comparator = "lte"
)

// Apply evaluates the comparator against a property value from the
// evaluation context. Unknown comparators evaluate to false.
func (c Comparator) Apply(value, target float64) bool {
	switch c {
	case CompareEq:
		return value == target
	case CompareGTE:
		return value >= target
	case CompareLTE:
		return value <= target
	default:
		return false
	}
}

// AchievementRule is a declarative one-shot achievement definition. Rules are
// static configuration: loaded once, evaluated on every publish of their
// trigger event, and granted to a given player at most once.
type AchievementRule struct {
	ID             int
	Name           string
	TriggerEvent   string
	TargetProperty string
	Comparator     Comparator
	TargetValue    float64
	XPReward       int
	DiamondReward  int
}
