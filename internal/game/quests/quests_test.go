package quests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/eventbus"
)

type fakeStore struct {
	mu      sync.Mutex
	batches [][]entities.QuestProgressUpdate
	err     error
	done    chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{done: make(chan struct{}, 16)}
}

func (s *fakeStore) ReportProgress(_ context.Context, updates []entities.QuestProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, updates)
	s.done <- struct{}{}
	return nil
}

func (s *fakeStore) waitForBatch(t *testing.T) []entities.QuestProgressUpdate {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("no progress batch reported")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches[len(s.batches)-1]
}

func quizQuest(id int64, target int) *entities.QuestRecord {
	return &entities.QuestRecord{
		ID:       id,
		PlayerID: 7,
		Config: entities.QuestConfig{
			ID:            id,
			Type:          eventbus.EventQuizCompleted,
			Title:         "Complete quizzes",
			TargetValue:   target,
			XPReward:      40,
			DiamondReward: 10,
		},
	}
}

func setupTracker(t *testing.T, records ...*entities.QuestRecord) (*Tracker, *entities.Player, *eventbus.Bus, *fakeStore) {
	t.Helper()
	player := &entities.Player{ID: 7}
	player.Normalize()

	store := newFakeStore()
	bus := eventbus.New(zap.NewNop())

	tracker := NewTracker(records, player, store, zap.NewNop())
	tracker.Attach(bus)

	return tracker, player, bus, store
}

func TestProgress_ClampedAtTarget(t *testing.T) {
	quest := quizQuest(1, 5)
	_, _, bus, store := setupTracker(t, quest)

	for _, amount := range []int{2, 1, 3} {
		bus.Publish(eventbus.EventQuizCompleted, eventbus.Payload{"amount": amount})
		store.waitForBatch(t)
	}

	assert.Equal(t, 5, quest.Progress, "progress is clamped, not 6")
	assert.True(t, quest.ReadyToClaim())
}

func TestProgress_DefaultAmountIsOne(t *testing.T) {
	quest := quizQuest(1, 3)
	_, _, bus, store := setupTracker(t, quest)

	bus.Publish(eventbus.EventQuizCompleted, nil)
	batch := store.waitForBatch(t)

	require.Len(t, batch, 1)
	assert.Equal(t, 1, batch[0].Progress)
	assert.Equal(t, 1, quest.Progress)
}

func TestProgress_IgnoresOtherEvents(t *testing.T) {
	quest := quizQuest(1, 3)
	_, _, bus, _ := setupTracker(t, quest)

	bus.Publish(eventbus.EventItemPurchased, nil)

	assert.Zero(t, quest.Progress)
}

func TestProgress_CompletedQuestDoesNotAdvance(t *testing.T) {
	quest := quizQuest(1, 3)
	quest.Completed = true

	tracker, _, bus, _ := setupTracker(t, quest)
	assert.Empty(t, tracker.Active(), "claimed quests are filtered on init")

	bus.Publish(eventbus.EventQuizCompleted, nil)
	assert.Zero(t, quest.Progress)
}

func TestClaim_GrantsAndRemovesFromActiveList(t *testing.T) {
	quest := quizQuest(1, 2)
	quest.Progress = 2

	tracker, player, _, store := setupTracker(t, quest)

	cfg, err := tracker.Claim(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 40, player.XP)
	assert.Equal(t, 40, player.SeasonalXP)
	assert.Equal(t, 10, player.Diamonds)
	assert.Equal(t, "Complete quizzes", cfg.Title)
	assert.Empty(t, tracker.Active(), "claimed quest leaves the local list immediately")

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.batches, 1)
	assert.True(t, store.batches[0][0].Completed)
}

func TestClaim_SecondClaimFails(t *testing.T) {
	quest := quizQuest(1, 2)
	quest.Progress = 2

	tracker, player, _, _ := setupTracker(t, quest)

	_, err := tracker.Claim(context.Background(), 1)
	require.NoError(t, err)

	_, err = tracker.Claim(context.Background(), 1)
	require.ErrorIs(t, err, ErrQuestNotFound)
	assert.Equal(t, 40, player.XP, "no double grant")
}

func TestClaim_NotReady(t *testing.T) {
	quest := quizQuest(1, 5)
	quest.Progress = 3

	tracker, _, _, _ := setupTracker(t, quest)

	_, err := tracker.Claim(context.Background(), 1)
	require.ErrorIs(t, err, ErrQuestNotReady)
}

func TestClaim_StoreFailureBlocksGrant(t *testing.T) {
	quest := quizQuest(1, 1)
	quest.Progress = 1

	player := &entities.Player{ID: 7}
	player.Normalize()
	store := newFakeStore()
	store.err = context.DeadlineExceeded

	tracker := NewTracker([]*entities.QuestRecord{quest}, player, store, zap.NewNop())

	_, err := tracker.Claim(context.Background(), 1)
	require.Error(t, err)
	assert.Zero(t, player.XP, "rewards are not granted when the claim write fails")
	assert.Len(t, tracker.Active(), 1, "quest stays claimable")
}
