package entities

// QuestConfig is the static definition of a quest: which event advances it,
// how much progress completes it, and what it pays out.
type QuestConfig struct {
	ID            int64
	Type          string // trigger event name, e.g. "quiz_completed"
	Title         string
	Description   string
	TargetValue   int
	XPReward      int
	DiamondReward int
	Period        string // "daily" or "weekly"
}

// QuestRecord is a player's progress against one quest within a period.
// Progress grows via matching events, clamped to the target, and the record
// is terminal once claimed.
type QuestRecord struct {
	ID        int64
	PlayerID  int64
	PeriodKey string
	Config    QuestConfig
	Progress  int
	Completed bool
}

// Advance increases progress by amount, clamped to the configured target, and
// reports whether the stored progress changed. Completed quests never
// advance.
func (q *QuestRecord) Advance(amount int) bool {
	if q.Completed || q.Progress >= q.Config.TargetValue {
		return false
	}
	next := q.Progress + amount
	if next > q.Config.TargetValue {
		next = q.Config.TargetValue
	}
	if next == q.Progress {
		return false
	}
	q.Progress = next
	return true
}

// ReadyToClaim reports whether the quest has reached its target and has not
// been claimed yet.
func (q *QuestRecord) ReadyToClaim() bool {
	return !q.Completed && q.Progress >= q.Config.TargetValue
}

// QuestProgressUpdate is one element of a progress batch reported to the
// quest repository after an event is handled.
type QuestProgressUpdate struct {
	ID        int64
	Progress  int
	Completed bool
}
