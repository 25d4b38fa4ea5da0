package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizMode is the variant a quiz session runs in.
type QuizMode string

const (
	ModeNormal           QuizMode = "normal_test"
	ModeTimedEvent       QuizMode = "timed_event"
	ModeDuel             QuizMode = "duel"
	ModeSpecialChallenge QuizMode = "special_challenge"
)

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateActive    SessionState = "active"
	StateCompleted SessionState = "completed"
)

// QuizError is one missed question recorded for post-quiz review.
type QuizError struct {
	Prompt        string
	CorrectAnswer string
	QuestionType  string
}

// Duel is a head-to-head contest record. Scores are nil until the respective
// side has played; the winner is decided only once both scores exist.
type Duel struct {
	ID              int64
	ChallengerID    int64
	OpponentID      int64
	ChallengerScore *int
	OpponentScore   *int
	Winner          *int64 // nil until decided; nil with Draw=true on a tie
	Draw            bool
	Status          string // "pending" or "completed"
}

// ScoreFor returns the already-recorded score of the given player, if any.
func (d *Duel) ScoreFor(playerID int64) *int {
	if d.ChallengerID == playerID {
		return d.ChallengerScore
	}
	return d.OpponentScore
}

// OpponentScoreFor returns the other side's score relative to playerID.
func (d *Duel) OpponentScoreFor(playerID int64) *int {
	if d.ChallengerID == playerID {
		return d.OpponentScore
	}
	return d.ChallengerScore
}

// SetScoreFor records the given player's score on their side of the duel.
func (d *Duel) SetScoreFor(playerID int64, score int) {
	if d.ChallengerID == playerID {
		d.ChallengerScore = &score
	} else {
		d.OpponentScore = &score
	}
}

// QuizSession is the transient state of one quiz run. It is created on start,
// reset by the next start, and never persisted mid-session.
type QuizSession struct {
	ID         uuid.UUID
	PlayerID   int64
	PageNumber int    // 0 for pools not tied to a single page
	Ayahs      []Ayah // the content pool questions are generated from
	Qari       string // recitation voice for audio variants

	TotalQuestions int
	CurrentIndex   int
	Score          int
	XPEarned       int
	ErrorLog       []QuizError

	Mode        QuizMode
	ChallengeID int64 // set for special challenges
	Duel        *Duel // set for duel sessions

	ForgivenessUsed bool
	StartedAt       time.Time
	State           SessionState
}

// NewQuizSession creates an active session over the given content pool.
func NewQuizSession(playerID int64, pageNumber int, pool []Ayah, totalQuestions int, qari string) *QuizSession {
	return &QuizSession{
		ID:             uuid.New(),
		PlayerID:       playerID,
		PageNumber:     pageNumber,
		Ayahs:          pool,
		Qari:           qari,
		TotalQuestions: totalQuestions,
		ErrorLog:       []QuizError{},
		Mode:           ModeNormal,
		StartedAt:      time.Now(),
		State:          StateActive,
	}
}

// IsPerfect reports whether every question was answered correctly.
func (s *QuizSession) IsPerfect() bool {
	return s.Score == s.TotalQuestions
}

// Percentage returns the score as a rounded percentage of the total.
func (s *QuizSession) Percentage() int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return int(float64(s.Score)/float64(s.TotalQuestions)*100 + 0.5)
}

// QuizResult is the summary persisted after a completed session.
type QuizResult struct {
	PlayerID        int64
	PageNumber      int
	Score           int
	TotalQuestions  int
	XPEarned        int
	DurationSeconds int
	ErrorLog        []QuizError
}
