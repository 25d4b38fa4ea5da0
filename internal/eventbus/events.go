package eventbus

// Canonical gameplay event names. Achievement rules and quest configs refer
// to these by string, so the values are part of stored configuration.
const (
	EventLogin                     = "login"
	EventLevelUp                   = "level_up"
	EventQuizCompleted             = "quiz_completed"
	EventPerfectQuiz               = "perfect_quiz"
	EventQuestionAnsweredCorrectly = "question_answered_correctly"
	EventQuestionAnsweredWrongly   = "question_answered_wrongly"
	EventItemPurchased             = "item_purchased"
	EventFriendAdded               = "friend_added"
	EventEnergyStarUsed            = "energy_star_used"
	EventXPEarned                  = "xp_earned"
	EventSpecialChallengeCompleted = "special_challenge_completed"
)
