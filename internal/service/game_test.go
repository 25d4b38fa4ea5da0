package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	pgrepo "github.com/aminsalih/hifzquest-bot/internal/infra/postgres/repository"
)

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[int64]entities.Player
	saves   int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int64]entities.Player)}
}

func (f *fakePlayerRepo) Get(_ context.Context, id int64) (*entities.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return nil, pgrepo.ErrPlayerNotFound
	}
	clone := p
	return &clone, nil
}

func (f *fakePlayerRepo) Save(_ context.Context, p *entities.Player) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, existed := f.players[p.ID]
	f.players[p.ID] = *p
	f.saves++
	return !existed, nil
}

type fakeConfigRepo struct {
	thresholds []entities.LevelThreshold
}

func (f *fakeConfigRepo) LevelThresholds(context.Context) ([]entities.LevelThreshold, error) {
	return f.thresholds, nil
}

func (f *fakeConfigRepo) QuestionEligibility(context.Context) ([]entities.QuestionTypeConfig, error) {
	return nil, nil // falls back to shipped defaults
}

func (f *fakeConfigRepo) StoreItems(context.Context) ([]entities.StoreItem, error) {
	return nil, nil
}

type fakeContentRepo struct{}

func (fakeContentRepo) Page(_ context.Context, n int) ([]entities.Ayah, error) {
	pool := make([]entities.Ayah, 8)
	for i := range pool {
		pool[i] = entities.Ayah{
			Number: n*100 + i + 1,
			Text:   fmt.Sprintf("نص الآية رقم %d في هذه الصفحة", i+1),
			Page:   n,
		}
	}
	return pool, nil
}

func (fakeContentRepo) Pages() []int { return []int{1, 2, 3} }

type fakeQuestRepo struct {
	mu      sync.Mutex
	nextID  int64
	configs map[string][]entities.QuestConfig
	records []entities.QuestRecord
	reports []entities.QuestProgressUpdate
}

func newFakeQuestRepo() *fakeQuestRepo {
	return &fakeQuestRepo{
		nextID: 1,
		configs: map[string][]entities.QuestConfig{
			"daily": {{ID: 1, Type: "quiz_completed", Title: "أكمل اختبارين", TargetValue: 2, XPReward: 30, Period: "daily"}},
		},
	}
}

func (f *fakeQuestRepo) ConfigsForPeriod(_ context.Context, period string) ([]entities.QuestConfig, error) {
	return f.configs[period], nil
}

func (f *fakeQuestRepo) AssignForPeriod(_ context.Context, playerID int64, periodKey string, configs []entities.QuestConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range configs {
		exists := false
		for _, r := range f.records {
			if r.PlayerID == playerID && r.Config.ID == c.ID && r.PeriodKey == periodKey {
				exists = true
			}
		}
		if !exists {
			f.records = append(f.records, entities.QuestRecord{
				ID: f.nextID, PlayerID: playerID, PeriodKey: periodKey, Config: c,
			})
			f.nextID++
		}
	}
	return nil
}

func (f *fakeQuestRepo) ActiveForPeriod(_ context.Context, playerID int64, periodKeys ...string) ([]entities.QuestRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.QuestRecord
	for _, r := range f.records {
		for _, key := range periodKeys {
			if r.PlayerID == playerID && r.PeriodKey == key {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeQuestRepo) ReportProgress(_ context.Context, updates []entities.QuestProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, updates...)
	return nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []entities.QuizResult
}

func (f *fakeResultRepo) SaveResult(_ context.Context, _ uuid.UUID, r *entities.QuizResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, *r)
	return nil
}

func (f *fakeResultRepo) RecentForPlayer(_ context.Context, playerID int64, _ int) ([]entities.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.QuizResult
	for _, r := range f.results {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDuelRepo struct {
	mu    sync.Mutex
	duels map[int64]*entities.Duel
	next  int64
}

func newFakeDuelRepo() *fakeDuelRepo {
	return &fakeDuelRepo{duels: make(map[int64]*entities.Duel), next: 1}
}

func (f *fakeDuelRepo) Create(_ context.Context, challengerID, opponentID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.duels[id] = &entities.Duel{ID: id, ChallengerID: challengerID, OpponentID: opponentID, Status: "pending"}
	return id, nil
}

func (f *fakeDuelRepo) Get(_ context.Context, id int64) (*entities.Duel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.duels[id]
	if !ok {
		return nil, pgrepo.ErrDuelNotFound
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDuelRepo) Update(_ context.Context, d *entities.Duel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *d
	f.duels[d.ID] = &clone
	return nil
}

func (f *fakeDuelRepo) PendingForOpponent(_ context.Context, playerID int64) ([]entities.Duel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Duel
	for _, d := range f.duels {
		if d.OpponentID == playerID && d.Status == "pending" && d.OpponentScore == nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fixture struct {
	svc     *GameService
	players *fakePlayerRepo
	quests  *fakeQuestRepo
	results *fakeResultRepo
	duels   *fakeDuelRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	players := newFakePlayerRepo()
	questRepo := newFakeQuestRepo()
	resultRepo := &fakeResultRepo{}
	duelRepo := newFakeDuelRepo()

	cfg := &fakeConfigRepo{thresholds: []entities.LevelThreshold{
		{Level: 1, XPRequired: 0, Title: "مبتدئ", QuestionsPerTest: 3},
		{Level: 5, XPRequired: 100, Title: "مجتهد", QuestionsPerTest: 4, DiamondReward: 20},
	}}

	svc, err := NewGameService(context.Background(), players, cfg, fakeContentRepo{}, questRepo, resultRepo, duelRepo, zap.NewNop())
	require.NoError(t, err)

	return &fixture{svc: svc, players: players, quests: questRepo, results: resultRepo, duels: duelRepo}
}

func TestPeriodKeys(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-01", DailyKey(ts))
	assert.Equal(t, "2026-W36", WeeklyKey(ts))
}

func TestLoginCreatesPlayerAndAssignsQuests(t *testing.T) {
	f := newFixture(t)

	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	assert.Equal(t, int64(42), pc.Player.ID)
	assert.Equal(t, baseDailyAttempts, pc.Player.TestAttempts)
	assert.True(t, pc.Player.HasItem("page_1"))

	// The daily quest from config was assigned and loaded into the tracker.
	require.Len(t, pc.Quests.Active(), 1)
	assert.Equal(t, "أكمل اختبارين", pc.Quests.Active()[0].Config.Title)

	// The player was persisted.
	stored, err := f.players.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "ahmad", stored.Username)
}

func TestLoginSameDayDoesNotRefillAttempts(t *testing.T) {
	f := newFixture(t)

	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	_, err = f.svc.StartQuiz(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, baseDailyAttempts-1, pc.Player.TestAttempts)

	// Logging in again the same day keeps the spent attempt spent.
	pc2, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)
	assert.Equal(t, baseDailyAttempts-1, pc2.Player.TestAttempts)
}

func TestStartQuizRequiresOwnedPage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	_, err = f.svc.StartQuiz(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrPageNotOwned)

	// Page 1 is always playable.
	q, err := f.svc.StartQuiz(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.NotNil(t, q)
}

func TestAttemptGating(t *testing.T) {
	f := newFixture(t)
	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	for i := 0; i < baseDailyAttempts; i++ {
		_, err := f.svc.StartQuiz(context.Background(), 42, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, pc.Player.TestAttempts)

	// Attempts exhausted: the next start burns an energy star instead.
	pc.Player.EnergyStars = 1
	_, err = f.svc.StartQuiz(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, pc.Player.EnergyStars)

	_, err = f.svc.StartQuiz(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrNoAttemptsLeft)
}

func TestQuizFlowToCompletion(t *testing.T) {
	f := newFixture(t)
	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	q, err := f.svc.StartQuiz(context.Background(), 42, 1)
	require.NoError(t, err)
	require.NotNil(t, q)

	// Level 1 plays 3 questions per test.
	var fb *AnswerFeedback
	for i := 0; i < 3; i++ {
		fb, err = f.svc.SubmitAnswer(context.Background(), 42, true)
		require.NoError(t, err)
	}

	require.NotNil(t, fb.Result)
	assert.Nil(t, fb.Next)
	assert.Equal(t, 3, fb.Result.Score)

	// Result persisted, xp applied and saved.
	results, err := f.svc.RecentResults(context.Background(), 42, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	stored, err := f.players.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, pc.Player.XP, stored.XP)
	assert.Greater(t, stored.XP, 0)

	// Answering again with no pending question is an error.
	_, err = f.svc.SubmitAnswer(context.Background(), 42, true)
	assert.ErrorIs(t, err, ErrNoActiveQuiz)
}

func TestQuestProgressAndClaimThroughService(t *testing.T) {
	f := newFixture(t)
	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	playQuiz := func() {
		_, err := f.svc.StartQuiz(context.Background(), 42, 1)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err = f.svc.SubmitAnswer(context.Background(), 42, true)
			require.NoError(t, err)
		}
	}

	playQuiz()
	playQuiz()

	quest := pc.Quests.Active()[0]
	require.True(t, quest.ReadyToClaim())

	xpBefore := pc.Player.XP
	config, err := f.svc.ClaimQuest(context.Background(), 42, quest.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, config.XPReward)
	assert.Equal(t, xpBefore+30, pc.Player.XP)
	assert.Empty(t, pc.Quests.Active())
}

func TestMidnightRolloverRefreshesQuests(t *testing.T) {
	f := newFixture(t)

	day1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f.svc.reset.now = func() time.Time { return day1 }

	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	// Burn an attempt and progress the daily quest before midnight.
	_, err = f.svc.StartQuiz(context.Background(), 42, 1)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.svc.SubmitAnswer(context.Background(), 42, true)
		require.NoError(t, err)
	}
	require.Equal(t, baseDailyAttempts-1, pc.Player.TestAttempts)
	require.Equal(t, 1, pc.Quests.Active()[0].Progress)

	day2 := time.Date(2026, 9, 2, 0, 0, 5, 0, time.UTC)
	f.svc.reset.now = func() time.Time { return day2 }
	f.svc.RolloverActive(context.Background())

	// Attempts refilled and the live tracker now holds the new day's quests.
	assert.Equal(t, baseDailyAttempts, pc.Player.TestAttempts)
	active := pc.Quests.Active()
	require.NotEmpty(t, active)
	for _, q := range active {
		assert.Equal(t, DailyKey(day2), q.PeriodKey)
		assert.Equal(t, 0, q.Progress)
	}
}

func TestUnlockSkillThroughService(t *testing.T) {
	f := newFixture(t)
	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	pc.Player.SkillPoints = 1
	result, err := f.svc.UnlockSkill(context.Background(), 42, "xp_boost_1")
	require.NoError(t, err)
	assert.Equal(t, "xp_boost_1", result.SkillID)

	stored, err := f.players.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Contains(t, stored.UnlockedSkills, "xp_boost_1")
}

func TestPurchaseThroughService(t *testing.T) {
	f := newFixture(t)
	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)

	pc.Player.Diamonds = 100
	item, err := f.svc.PurchaseItem(context.Background(), 42, "page_2")
	require.NoError(t, err)
	assert.Equal(t, "page_2", item.ID)

	// The bought page is immediately playable.
	_, err = f.svc.StartQuiz(context.Background(), 42, 2)
	require.NoError(t, err)
}

func TestDuelLifecycleThroughService(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Login(context.Background(), 1, "challenger")
	require.NoError(t, err)
	_, err = f.svc.Login(context.Background(), 2, "opponent")
	require.NoError(t, err)

	duelID, err := f.svc.CreateDuel(context.Background(), 1, 2)
	require.NoError(t, err)

	play := func(playerID int64) {
		_, err := f.svc.StartDuelQuiz(context.Background(), playerID, duelID, 1)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err = f.svc.SubmitAnswer(context.Background(), playerID, playerID == 1)
			require.NoError(t, err)
		}
	}

	play(1) // challenger answers everything correctly

	pending, err := f.svc.PendingDuels(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	play(2) // opponent misses everything

	duel, err := f.duels.Get(context.Background(), duelID)
	require.NoError(t, err)
	assert.Equal(t, "completed", duel.Status)
	require.NotNil(t, duel.Winner)
	assert.Equal(t, int64(1), *duel.Winner)
}

func TestStartDuelQuizRejectsOutsider(t *testing.T) {
	f := newFixture(t)
	for id, name := range map[int64]string{1: "challenger", 2: "opponent", 3: "bystander"} {
		_, err := f.svc.Login(context.Background(), id, name)
		require.NoError(t, err)
	}

	duelID, err := f.svc.CreateDuel(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = f.svc.StartDuelQuiz(context.Background(), 3, duelID, 1)
	assert.ErrorIs(t, err, ErrNotInDuel)
}

func TestProfileSnapshot(t *testing.T) {
	f := newFixture(t)
	pc, err := f.svc.Login(context.Background(), 42, "ahmad")
	require.NoError(t, err)
	pc.Player.XP = 150

	profile, err := f.svc.Profile(42)
	require.NoError(t, err)
	assert.Equal(t, 5, profile.LevelInfo.Level)
	assert.Equal(t, []string{"basic"}, profile.Paths)
	assert.Equal(t, "بذرة المعرفة", profile.Companion.Name)
	require.Len(t, profile.Quests, 1)
}

func TestContextRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.StartQuiz(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = f.svc.Profile(99)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
