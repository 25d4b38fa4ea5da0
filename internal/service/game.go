// Package service composes the game engine with its collaborators: it owns
// the per-player contexts (event bus, rule engines, quiz machine) and the
// persistence flow around every gameplay operation.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
	"github.com/aminsalih/hifzquest-bot/internal/game/achievements"
	"github.com/aminsalih/hifzquest-bot/internal/game/companion"
	"github.com/aminsalih/hifzquest-bot/internal/game/progression"
	"github.com/aminsalih/hifzquest-bot/internal/game/questions"
	"github.com/aminsalih/hifzquest-bot/internal/game/quests"
	"github.com/aminsalih/hifzquest-bot/internal/game/quiz"
	"github.com/aminsalih/hifzquest-bot/internal/game/skills"
	"github.com/aminsalih/hifzquest-bot/internal/game/store"
	pgrepo "github.com/aminsalih/hifzquest-bot/internal/infra/postgres/repository"
	"github.com/aminsalih/hifzquest-bot/internal/storage"
)

var (
	ErrNotLoggedIn    = errors.New("player has no active game context")
	ErrPageNotOwned   = errors.New("page not owned")
	ErrNoAttemptsLeft = errors.New("no quiz attempts left today")
	ErrNoActiveQuiz   = errors.New("no question awaiting an answer")
	ErrNotInDuel      = errors.New("player is not a side of this duel")
)

// PlayerContext bundles everything stateful about one logged-in player. The
// bus, engines, and machine all reference the same Player value, so a single
// context is the unit of consistency.
type PlayerContext struct {
	Player       *entities.Player
	Bus          *eventbus.Bus
	Machine      *quiz.Machine
	Quests       *quests.Tracker
	Achievements *achievements.Engine
	Companion    *companion.Tracker

	pending *entities.Question // question awaiting an answer
}

// GameService is the application-facing surface of the game. Every operation
// runs against a player context created by Login.
type GameService struct {
	playerRepo PlayerRepository
	questRepo  QuestRepository
	resultRepo ResultRepository
	duelRepo   DuelRepository
	content    ContentRepository

	catalog     *questions.Catalog
	eligibility []entities.QuestionTypeConfig
	calc        *progression.Calculator
	tree        *skills.Tree
	rules       []entities.AchievementRule
	items       *store.Catalog
	stages      []entities.CompanionStage
	reset       *ResetService

	contexts *storage.Storage[*PlayerContext]
	notifier Notifier
	logger   *zap.Logger
}

// NewGameService loads the static game configuration and wires the service.
// Missing level configuration fails fast; a missing question eligibility or
// store table degrades to the shipped defaults with a warning.
func NewGameService(
	ctx context.Context,
	playerRepo PlayerRepository,
	configRepo GameConfigRepository,
	contentRepo ContentRepository,
	questRepo QuestRepository,
	resultRepo ResultRepository,
	duelRepo DuelRepository,
	logger *zap.Logger,
) (*GameService, error) {
	thresholds, err := configRepo.LevelThresholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("load level thresholds: %w", err)
	}
	calc, err := progression.NewCalculator(thresholds, logger)
	if err != nil {
		return nil, err
	}

	catalog := questions.NewCatalog()
	eligibility, err := configRepo.QuestionEligibility(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question eligibility: %w", err)
	}
	if len(eligibility) == 0 {
		logger.Warn("question eligibility table empty, using shipped defaults")
		eligibility = questions.DefaultEligibility(catalog)
	}

	storeItems, err := configRepo.StoreItems(ctx)
	if err != nil || len(storeItems) == 0 {
		logger.Warn("store catalog unavailable, using shipped defaults", zap.Error(err))
		storeItems = store.DefaultItems()
	}

	tree := skills.DefaultTree()

	return &GameService{
		playerRepo:  playerRepo,
		questRepo:   questRepo,
		resultRepo:  resultRepo,
		duelRepo:    duelRepo,
		content:     contentRepo,
		catalog:     catalog,
		eligibility: eligibility,
		calc:        calc,
		tree:        tree,
		rules:       achievements.DefaultRules(),
		items:       store.NewCatalog(storeItems, logger),
		stages:      companion.DefaultStages(),
		reset:       NewResetService(questRepo, tree, logger),
		contexts:    storage.New[*PlayerContext](),
		logger:      logger,
	}, nil
}

// SetNotifier sets the notifier (called after the delivery handler exists).
func (s *GameService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Tree exposes the skill tree for rendering.
func (s *GameService) Tree() *skills.Tree { return s.tree }

// StoreCatalog exposes the purchasable items for rendering.
func (s *GameService) StoreCatalog() *store.Catalog { return s.items }

// Calculator exposes the progression calculator for rendering.
func (s *GameService) Calculator() *progression.Calculator { return s.calc }

// Login loads or creates the player, applies any due period rollover, and
// builds a fresh game context. A previous context for the player is
// discarded.
func (s *GameService) Login(ctx context.Context, playerID int64, username string) (*PlayerContext, error) {
	player, err := s.playerRepo.Get(ctx, playerID)
	switch {
	case errors.Is(err, pgrepo.ErrPlayerNotFound):
		player = s.newPlayer(playerID, username)
	case err != nil:
		return nil, fmt.Errorf("load player: %w", err)
	default:
		player.Username = username
	}

	if _, err := s.reset.RolloverIfDue(ctx, player); err != nil {
		return nil, err
	}

	pc, err := s.buildContext(ctx, player)
	if err != nil {
		return nil, err
	}

	pc.Bus.Publish(eventbus.EventLogin, eventbus.Payload{})

	if _, err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, fmt.Errorf("save player: %w", err)
	}

	s.contexts.Store(playerID, pc)
	return pc, nil
}

func (s *GameService) newPlayer(playerID int64, username string) *entities.Player {
	p := &entities.Player{
		ID:           playerID,
		Username:     username,
		TestAttempts: baseDailyAttempts,
		Inventory:    []string{"page_1", "qari_ar.alafasy"},
	}
	p.Normalize()
	return p
}

func (s *GameService) buildContext(ctx context.Context, player *entities.Player) (*PlayerContext, error) {
	bus := eventbus.New(s.logger)

	engine := achievements.NewEngine(s.rules, player, s.calc, notifierAdapter{s}, s.logger)
	engine.Attach(bus)

	now := s.reset.now()
	records, err := s.questRepo.ActiveForPeriod(ctx, player.ID, DailyKey(now), WeeklyKey(now))
	if err != nil {
		return nil, fmt.Errorf("load active quests: %w", err)
	}
	active := make([]*entities.QuestRecord, len(records))
	for i := range records {
		active[i] = &records[i]
	}
	tracker := quests.NewTracker(active, player, s.questRepo, s.logger)
	tracker.Attach(bus)

	machine, err := quiz.NewMachine(s.catalog, s.eligibility, s.calc, s.tree, bus, s.content, player, s.logger)
	if err != nil {
		return nil, err
	}

	comp := companion.NewTracker(s.stages)
	comp.CheckEvolution(s.calc.LevelInfo(player.XP).Level)

	pc := &PlayerContext{
		Player:       player,
		Bus:          bus,
		Machine:      machine,
		Quests:       tracker,
		Achievements: engine,
		Companion:    comp,
	}

	// Level-ups grant a skill point and may evolve the companion.
	bus.Subscribe(eventbus.EventLevelUp, func(p eventbus.Payload) {
		player.SkillPoints++

		newLevel, _ := p["newLevel"].(int)
		title, _ := p["title"].(string)
		diamonds, _ := p["diamonds"].(int)
		if s.notifier != nil {
			s.notifier.LevelUp(player.ID, newLevel, title, diamonds)
		}
		if stage, evolved := comp.CheckEvolution(newLevel); evolved {
			if s.notifier != nil {
				s.notifier.CompanionEvolved(player.ID, stage)
			}
		}
	})

	return pc, nil
}

// Context returns the live game context for a player.
func (s *GameService) Context(playerID int64) (*PlayerContext, error) {
	pc, ok := s.contexts.Get(playerID)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return pc, nil
}

// Logout drops the player's context. In-memory quiz state is discarded.
func (s *GameService) Logout(playerID int64) {
	s.contexts.Delete(playerID)
}

// StartQuiz begins a normal quiz over one owned page and returns the first
// question. Starting consumes a daily attempt, or an energy star once the
// attempts run out.
func (s *GameService) StartQuiz(ctx context.Context, playerID int64, pageNumber int) (*entities.Question, error) {
	return s.startSession(ctx, playerID, pageNumber, entities.ModeNormal, 0, nil)
}

// StartDuelQuiz begins the player's side of a duel.
func (s *GameService) StartDuelQuiz(ctx context.Context, playerID int64, duelID int64, pageNumber int) (*entities.Question, error) {
	duel, err := s.duelRepo.Get(ctx, duelID)
	if err != nil {
		return nil, err
	}
	if duel.ChallengerID != playerID && duel.OpponentID != playerID {
		return nil, ErrNotInDuel
	}
	return s.startSession(ctx, playerID, pageNumber, entities.ModeDuel, 0, duel)
}

// StartChallengeQuiz begins a special challenge session.
func (s *GameService) StartChallengeQuiz(ctx context.Context, playerID int64, challengeID int64, pageNumber int) (*entities.Question, error) {
	return s.startSession(ctx, playerID, pageNumber, entities.ModeSpecialChallenge, challengeID, nil)
}

func (s *GameService) startSession(ctx context.Context, playerID int64, pageNumber int, mode entities.QuizMode, challengeID int64, duel *entities.Duel) (*entities.Question, error) {
	pc, err := s.Context(playerID)
	if err != nil {
		return nil, err
	}
	player := pc.Player

	// Page 1 is the free starter page.
	if pageNumber != 1 && !player.HasItem(fmt.Sprintf("page_%d", pageNumber)) {
		return nil, ErrPageNotOwned
	}

	changed, err := s.reset.RolloverIfDue(ctx, player)
	if err != nil {
		return nil, err
	}
	if changed {
		s.refreshQuests(ctx, pc)
	}
	if err := s.consumeAttempt(pc); err != nil {
		return nil, err
	}

	pool, err := s.content.Page(ctx, pageNumber)
	if err != nil {
		return nil, fmt.Errorf("load page %d: %w", pageNumber, err)
	}

	level := s.calc.LevelInfo(player.XP).Level
	session := entities.NewQuizSession(playerID, pageNumber, pool, s.calc.MaxQuestionsForLevel(level), s.selectedQari(player))
	session.Mode = mode
	session.ChallengeID = challengeID
	session.Duel = duel

	pc.Machine.Start(session)

	question, err := pc.Machine.NextQuestion(ctx)
	if err != nil {
		return nil, err
	}
	pc.pending = question

	if _, err := s.playerRepo.Save(ctx, player); err != nil {
		s.logger.Error("save player after quiz start", zap.Int64("player_id", playerID), zap.Error(err))
	}
	return question, nil
}

func (s *GameService) consumeAttempt(pc *PlayerContext) error {
	switch {
	case pc.Player.TestAttempts > 0:
		pc.Player.TestAttempts--
	case pc.Player.EnergyStars > 0:
		pc.Player.EnergyStars--
		pc.Bus.Publish(eventbus.EventEnergyStarUsed, eventbus.Payload{})
	default:
		return ErrNoAttemptsLeft
	}
	return nil
}

// selectedQari returns the first owned recitation voice. Ownership ids use
// the "qari_" prefix; the suffix is the CDN voice identifier.
func (s *GameService) selectedQari(player *entities.Player) string {
	for _, id := range player.Inventory {
		if len(id) > 5 && id[:5] == "qari_" {
			return id[5:]
		}
	}
	return "ar.alafasy"
}

// AnswerFeedback is what one submitted answer produced: the recorded outcome,
// the next question while the quiz continues, and the final result once it
// completes.
type AnswerFeedback struct {
	Outcome       quiz.Outcome
	CorrectAnswer string
	Next          *entities.Question
	Result        *entities.QuizResult
}

// SubmitAnswer records the player's answer to the pending question. On
// completion the player, the result, and any duel are persisted.
func (s *GameService) SubmitAnswer(ctx context.Context, playerID int64, correct bool) (*AnswerFeedback, error) {
	pc, err := s.Context(playerID)
	if err != nil {
		return nil, err
	}
	if pc.pending == nil {
		return nil, ErrNoActiveQuiz
	}

	question := pc.pending
	pc.pending = nil

	outcome, result := pc.Machine.HandleResult(correct, question)
	feedback := &AnswerFeedback{
		Outcome:       outcome,
		CorrectAnswer: question.CorrectAnswer,
		Result:        result,
	}

	if result != nil {
		session := pc.Machine.Session()
		if _, err := s.playerRepo.Save(ctx, pc.Player); err != nil {
			s.logger.Error("save player after quiz", zap.Int64("player_id", playerID), zap.Error(err))
		}
		if err := s.resultRepo.SaveResult(ctx, session.ID, result); err != nil {
			s.logger.Error("save quiz result", zap.Int64("player_id", playerID), zap.Error(err))
		}
		if session.Duel != nil {
			if err := s.duelRepo.Update(ctx, session.Duel); err != nil {
				s.logger.Error("update duel", zap.Int64("duel_id", session.Duel.ID), zap.Error(err))
			}
		}
		return feedback, nil
	}

	next, err := pc.Machine.NextQuestion(ctx)
	if err != nil {
		return feedback, err
	}
	pc.pending = next
	feedback.Next = next
	return feedback, nil
}

// ClaimQuest claims a completed quest and persists the reward.
func (s *GameService) ClaimQuest(ctx context.Context, playerID int64, questID int64) (*entities.QuestConfig, error) {
	pc, err := s.Context(playerID)
	if err != nil {
		return nil, err
	}

	config, err := pc.Quests.Claim(ctx, questID)
	if err != nil {
		return nil, err
	}

	if _, err := s.playerRepo.Save(ctx, pc.Player); err != nil {
		s.logger.Error("save player after quest claim", zap.Int64("player_id", playerID), zap.Error(err))
	}
	if s.notifier != nil {
		s.notifier.QuestCompleted(playerID, *config)
	}
	return config, nil
}

// UnlockSkill spends skill points on a tree node and persists the change.
func (s *GameService) UnlockSkill(ctx context.Context, playerID int64, skillID string) (*skills.UnlockResult, error) {
	pc, err := s.Context(playerID)
	if err != nil {
		return nil, err
	}

	result, err := s.tree.Unlock(pc.Player, skillID)
	if err != nil {
		return nil, err
	}

	if _, err := s.playerRepo.Save(ctx, pc.Player); err != nil {
		s.logger.Error("save player after skill unlock", zap.Int64("player_id", playerID), zap.Error(err))
	}
	return result, nil
}

// PurchaseItem buys a store item and persists the change.
func (s *GameService) PurchaseItem(ctx context.Context, playerID int64, itemID string) (entities.StoreItem, error) {
	pc, err := s.Context(playerID)
	if err != nil {
		return entities.StoreItem{}, err
	}

	item, err := s.items.Purchase(pc.Player, itemID, pc.Bus)
	if err != nil {
		return item, err
	}

	if _, err := s.playerRepo.Save(ctx, pc.Player); err != nil {
		s.logger.Error("save player after purchase", zap.Int64("player_id", playerID), zap.Error(err))
	}
	return item, nil
}

// CreateDuel opens a duel challenge against another player.
func (s *GameService) CreateDuel(ctx context.Context, challengerID, opponentID int64) (int64, error) {
	return s.duelRepo.Create(ctx, challengerID, opponentID)
}

// PendingDuels lists duels waiting for the player to answer the challenge.
func (s *GameService) PendingDuels(ctx context.Context, playerID int64) ([]entities.Duel, error) {
	return s.duelRepo.PendingForOpponent(ctx, playerID)
}

// RecentResults lists the player's latest quiz results for review.
func (s *GameService) RecentResults(ctx context.Context, playerID int64, limit int) ([]entities.QuizResult, error) {
	return s.resultRepo.RecentForPlayer(ctx, playerID, limit)
}

// Profile is the aggregated snapshot the presentation layer renders.
type Profile struct {
	Player    *entities.Player
	LevelInfo entities.LevelInfo
	Paths     []string
	Quests    []*entities.QuestRecord
	Companion entities.CompanionStage
}

// Profile assembles the player's current snapshot.
func (s *GameService) Profile(playerID int64) (*Profile, error) {
	pc, err := s.Context(playerID)
	if err != nil {
		return nil, err
	}

	info := s.calc.LevelInfo(pc.Player.XP)
	return &Profile{
		Player:    pc.Player,
		LevelInfo: info,
		Paths:     progression.AvailablePaths(info.Level),
		Quests:    pc.Quests.Active(),
		Companion: pc.Companion.StageFor(info.Level),
	}, nil
}

// RolloverActive applies the period rollover to every player with a live
// context. Scheduled by StartResetLoop at midnight UTC.
func (s *GameService) RolloverActive(ctx context.Context) {
	s.contexts.Range(func(playerID int64, pc *PlayerContext) {
		changed, err := s.reset.RolloverIfDue(ctx, pc.Player)
		if err != nil {
			s.logger.Error("rollover failed", zap.Int64("player_id", playerID), zap.Error(err))
			return
		}
		if changed {
			s.refreshQuests(ctx, pc)
			if _, err := s.playerRepo.Save(ctx, pc.Player); err != nil {
				s.logger.Error("save player after rollover", zap.Int64("player_id", playerID), zap.Error(err))
			}
		}
	})
}

// refreshQuests reloads the tracker with the current period's quest records,
// discarding the previous period's after a rollover.
func (s *GameService) refreshQuests(ctx context.Context, pc *PlayerContext) {
	now := s.reset.now()
	records, err := s.questRepo.ActiveForPeriod(ctx, pc.Player.ID, DailyKey(now), WeeklyKey(now))
	if err != nil {
		s.logger.Error("reload quests after rollover", zap.Int64("player_id", pc.Player.ID), zap.Error(err))
		return
	}
	active := make([]*entities.QuestRecord, len(records))
	for i := range records {
		active[i] = &records[i]
	}
	pc.Quests.Reload(active)
}

// StartResetLoop blocks on the midnight rollover scheduler until ctx is
// cancelled.
func (s *GameService) StartResetLoop(ctx context.Context) {
	s.reset.Start(ctx, s.RolloverActive)
}

// notifierAdapter forwards achievement grants to the service notifier, which
// may be attached after the engines are built.
type notifierAdapter struct {
	s *GameService
}

func (a notifierAdapter) AchievementUnlocked(playerID int64, rule entities.AchievementRule) {
	if a.s.notifier != nil {
		a.s.notifier.AchievementUnlocked(playerID, rule)
	}
}
