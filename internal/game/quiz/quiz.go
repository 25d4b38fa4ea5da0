// Package quiz runs the quiz session state machine: generator selection and
// retry, answer handling with skill-modified rewards, and terminal event
// emission when a session completes.
package quiz

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
	"github.com/aminsalih/hifzquest-bot/internal/game/progression"
	"github.com/aminsalih/hifzquest-bot/internal/game/questions"
	"github.com/aminsalih/hifzquest-bot/internal/game/skills"
)

var (
	ErrNoQuestionConfig     = errors.New("no question eligibility configured")
	ErrNoActiveSession      = errors.New("no active quiz session")
	ErrNoEligibleGenerators = errors.New("no question types eligible at current level")
	ErrGeneratorsExhausted  = errors.New("no generator produced a question for this pool")
)

// mushafPages is the page count of the standard mushaf; intruder content is
// sampled from this range.
const mushafPages = 604

// ContentSource fetches the ayah pool of a page. Used to pull intruder
// content from a foreign page.
type ContentSource interface {
	Page(ctx context.Context, pageNumber int) ([]entities.Ayah, error)
}

// Outcome is what a single handled answer did to the session.
type Outcome struct {
	Correct   bool // post-forgiveness outcome
	Forgiven  bool // true when the forgiveness skill flipped a wrong answer
	XPAwarded int
	Done      bool // true when this answer completed the session
}

// Machine drives one player's quiz sessions. It mutates the player and the
// session in memory and publishes gameplay events; persistence belongs to the
// caller.
type Machine struct {
	catalog     *questions.Catalog
	eligibility []entities.QuestionTypeConfig
	calc        *progression.Calculator
	tree        *skills.Tree
	bus         *eventbus.Bus
	content     ContentSource
	rng         *rand.Rand
	logger      *zap.Logger

	player  *entities.Player
	session *entities.QuizSession
}

// NewMachine wires a session machine for one player. Fails fast when the
// question eligibility config is empty, since no quiz could ever start.
func NewMachine(
	catalog *questions.Catalog,
	eligibility []entities.QuestionTypeConfig,
	calc *progression.Calculator,
	tree *skills.Tree,
	bus *eventbus.Bus,
	content ContentSource,
	player *entities.Player,
	logger *zap.Logger,
) (*Machine, error) {
	if len(eligibility) == 0 {
		return nil, ErrNoQuestionConfig
	}

	return &Machine{
		catalog:     catalog,
		eligibility: eligibility,
		calc:        calc,
		tree:        tree,
		bus:         bus,
		content:     content,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      logger,
		player:      player,
	}, nil
}

// Start begins a new session over the given pool, discarding any session in
// progress.
func (m *Machine) Start(session *entities.QuizSession) {
	session.Score = 0
	session.CurrentIndex = 0
	session.XPEarned = 0
	session.ErrorLog = session.ErrorLog[:0]
	session.ForgivenessUsed = false
	session.State = entities.StateActive
	m.session = session
}

// Session returns the session currently attached to the machine, nil when
// none has been started.
func (m *Machine) Session() *entities.QuizSession { return m.session }

// NextQuestion runs one selection cycle: filter the catalog by the player's
// level and path, shuffle, and try generators until one yields a question.
func (m *Machine) NextQuestion(ctx context.Context) (*entities.Question, error) {
	if m.session == nil || m.session.State != entities.StateActive {
		return nil, ErrNoActiveSession
	}

	eligible := m.eligibleSpecs()
	if len(eligible) == 0 {
		return nil, ErrNoEligibleGenerators
	}
	m.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	// Fetch foreign content once per cycle if any candidate needs it. A
	// failed fetch is not fatal: intruder generators report absence and the
	// retry loop moves on.
	var intruders []entities.Ayah
	for _, spec := range eligible {
		if spec.NeedsIntruder {
			intruders = m.fetchIntruders(ctx)
			break
		}
	}

	in := questions.Input{
		Pool:      m.session.Ayahs,
		Intruders: intruders,
		Qari:      m.session.Qari,
		Rng:       m.rng,
	}
	for _, spec := range eligible {
		if q := spec.Generate(in); q != nil {
			return q, nil
		}
	}
	return nil, ErrGeneratorsExhausted
}

// eligibleSpecs resolves the eligibility config against the catalog for the
// player's current level.
func (m *Machine) eligibleSpecs() []questions.Spec {
	level := m.calc.LevelInfo(m.player.XP).Level
	paths := make(map[string]bool)
	for _, p := range progression.AvailablePaths(level) {
		paths[p] = true
	}

	var eligible []questions.Spec
	for _, cfg := range m.eligibility {
		if cfg.RequiredLevel > level || !paths[cfg.RequiredPath] {
			continue
		}
		spec, ok := m.catalog.Get(cfg.ID)
		if !ok {
			m.logger.Warn("eligibility config names unknown question type", zap.String("id", cfg.ID))
			continue
		}
		eligible = append(eligible, spec)
	}
	return eligible
}

// fetchIntruders samples a page outside the session's page and loads its
// pool. Returns nil when no foreign content could be fetched.
func (m *Machine) fetchIntruders(ctx context.Context) []entities.Ayah {
	page := m.session.PageNumber
	for page == m.session.PageNumber {
		page = m.rng.Intn(mushafPages) + 1
	}

	pool, err := m.content.Page(ctx, page)
	if err != nil {
		m.logger.Warn("intruder page fetch failed",
			zap.Int("page", page),
			zap.Error(err),
		)
		return nil
	}
	return pool
}

// HandleResult records the player's answer to the given question and advances
// the session. When the answer fills the last slot, the session completes and
// the returned result is non-nil; the caller persists it together with the
// mutated player.
func (m *Machine) HandleResult(rawCorrect bool, q *entities.Question) (Outcome, *entities.QuizResult) {
	if m.session == nil || m.session.State != entities.StateActive {
		return Outcome{}, nil
	}
	s := m.session

	var out Outcome
	out.Correct = rawCorrect

	// One flip per session: the forgiveness skill turns the first wrong
	// answer into a correct one.
	if !rawCorrect && !s.ForgivenessUsed && m.tree.Effect(m.player, entities.EffectErrorForgiveness) > 0 {
		s.ForgivenessUsed = true
		out.Correct = true
		out.Forgiven = true
	}

	if out.Correct {
		s.Score++
		out.XPAwarded = m.modifiedXP(m.calc.Rules().XPPerCorrectAnswer)
		s.XPEarned += out.XPAwarded
		m.bus.Publish(eventbus.EventQuestionAnsweredCorrectly, eventbus.Payload{
			"questionType": q.TypeID,
		})
	} else {
		s.ErrorLog = append(s.ErrorLog, entities.QuizError{
			Prompt:        q.Prompt,
			CorrectAnswer: q.CorrectAnswer,
			QuestionType:  q.TypeID,
		})
		m.bus.Publish(eventbus.EventQuestionAnsweredWrongly, eventbus.Payload{
			"questionType": q.TypeID,
		})
	}

	s.CurrentIndex++
	if s.CurrentIndex < s.TotalQuestions {
		return out, nil
	}

	out.Done = true
	return out, m.complete()
}

// modifiedXP applies the summed xp_modifier skill effect to a base amount.
func (m *Machine) modifiedXP(base int) int {
	mod := m.tree.Effect(m.player, entities.EffectXPModifier)
	return int(math.Round(float64(base) * (1 + mod)))
}

// complete finalizes the session: perfect bonus, duel resolution, counters,
// high score, xp application, and the terminal event fan-out.
func (m *Machine) complete() *entities.QuizResult {
	s := m.session
	s.State = entities.StateCompleted
	perfect := s.IsPerfect()

	if perfect {
		bonus := m.calc.Rules().PerfectQuizBonus
		bonus += int(math.Round(m.tree.Effect(m.player, entities.EffectPerfectBonusXP)))
		s.XPEarned += bonus
	}
	if s.Duel != nil {
		m.resolveDuel(s.Duel, s.Score)
	}

	m.player.TotalQuizzesCompleted++
	m.player.TotalCorrectAnswers += s.Score
	m.player.TotalQuestionsAnswered += s.TotalQuestions

	if chance := m.tree.Effect(m.player, entities.EffectBonusDiamondChance); chance > 0 && m.rng.Float64() < chance {
		m.player.Diamonds++
	}
	if s.PageNumber > 0 {
		m.player.UpdatePageHighScore(s.PageNumber, s.Percentage())
	}

	oldXP := m.player.XP
	m.player.XP += s.XPEarned
	m.player.SeasonalXP += s.XPEarned

	// Level-up is announced before quiz_completed so rules keyed on the new
	// level see it first.
	if up := m.calc.CheckForLevelUp(oldXP, m.player.XP); up != nil {
		m.player.Diamonds += up.DiamondReward
		m.bus.Publish(eventbus.EventLevelUp, eventbus.Payload{
			"newLevel": up.Level,
			"title":    up.Title,
			"diamonds": up.DiamondReward,
		})
	}

	m.bus.Publish(eventbus.EventQuizCompleted, eventbus.Payload{
		"score":          s.Score,
		"totalQuestions": s.TotalQuestions,
		"isPerfect":      perfect,
		"page":           s.PageNumber,
	})
	if perfect {
		m.bus.Publish(eventbus.EventPerfectQuiz, eventbus.Payload{
			"page": s.PageNumber,
		})
	}
	if s.XPEarned > 0 {
		m.bus.Publish(eventbus.EventXPEarned, eventbus.Payload{
			"amount": s.XPEarned,
		})
	}
	if s.Mode == entities.ModeSpecialChallenge {
		m.bus.Publish(eventbus.EventSpecialChallengeCompleted, eventbus.Payload{
			"challengeId": s.ChallengeID,
		})
	}

	return &entities.QuizResult{
		PlayerID:        s.PlayerID,
		PageNumber:      s.PageNumber,
		Score:           s.Score,
		TotalQuestions:  s.TotalQuestions,
		XPEarned:        s.XPEarned,
		DurationSeconds: int(time.Since(s.StartedAt).Seconds()),
		ErrorLog:        s.ErrorLog,
	}
}

// resolveDuel records this side's score and, once both sides have played,
// decides the winner. The winner's side earns the duel win bonus effect.
func (m *Machine) resolveDuel(d *entities.Duel, score int) {
	d.SetScoreFor(m.player.ID, score)

	theirs := d.OpponentScoreFor(m.player.ID)
	if theirs == nil {
		return
	}

	d.Status = "completed"
	switch {
	case score > *theirs:
		id := m.player.ID
		d.Winner = &id
		m.session.XPEarned += int(math.Round(m.tree.Effect(m.player, entities.EffectDuelWinBonusXP)))
	case score < *theirs:
		other := d.ChallengerID
		if other == m.player.ID {
			other = d.OpponentID
		}
		d.Winner = &other
	default:
		d.Draw = true
	}
}
