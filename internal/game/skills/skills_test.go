package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

func newPlayer(points int, unlocked ...string) *entities.Player {
	p := &entities.Player{SkillPoints: points, UnlockedSkills: unlocked}
	p.Normalize()
	return p
}

func TestNewTree_RejectsUnknownDependency(t *testing.T) {
	_, err := NewTree([]entities.SkillNode{
		{ID: "a", Dependencies: []string{"ghost"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestNewTree_RejectsCycle(t *testing.T) {
	_, err := NewTree([]entities.SkillNode{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestNewTree_RejectsDuplicateID(t *testing.T) {
	_, err := NewTree([]entities.SkillNode{{ID: "a"}, {ID: "a"}})
	require.Error(t, err)
}

func TestDefaultTree_Valid(t *testing.T) {
	tree := DefaultTree()
	assert.Len(t, tree.Nodes(), 8)
}

func TestEffect_SumsMatchingUnlockedNodes(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(0, "xp_boost_1", "xp_boost_2")
	assert.InDelta(t, 0.30, tree.Effect(p, entities.EffectXPModifier), 1e-9)
}

func TestEffect_NoUnlockedSkillsIsZero(t *testing.T) {
	tree := DefaultTree()

	assert.Zero(t, tree.Effect(newPlayer(0), entities.EffectXPModifier))
	assert.Zero(t, tree.Effect(nil, entities.EffectXPModifier))
}

func TestEffect_IgnoresOtherTypes(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(0, "perfect_bonus_1")
	assert.Zero(t, tree.Effect(p, entities.EffectXPModifier))
	assert.InDelta(t, 25, tree.Effect(p, entities.EffectPerfectBonusXP), 1e-9)
}

func TestUnlock_Success(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(3)
	res, err := tree.Unlock(p, "xp_boost_1")
	require.NoError(t, err)

	assert.Equal(t, "xp_boost_1", res.SkillID)
	assert.Equal(t, 2, res.RemainingPoints)
	assert.Equal(t, 2, p.SkillPoints)
	assert.True(t, p.HasSkill("xp_boost_1"))
}

func TestUnlock_UnknownSkill(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(5)
	_, err := tree.Unlock(p, "time_travel")
	require.ErrorIs(t, err, ErrUnknownSkill)
	assert.Equal(t, 5, p.SkillPoints)
}

func TestUnlock_InsufficientPoints(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(0)
	_, err := tree.Unlock(p, "xp_boost_1")
	require.ErrorIs(t, err, ErrInsufficientSkillPoints)
	assert.Empty(t, p.UnlockedSkills)
}

func TestUnlock_UnmetDependencyLeavesPointsUnchanged(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(10)
	_, err := tree.Unlock(p, "xp_boost_2")
	require.ErrorIs(t, err, ErrUnmetDependency)

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "xp_boost_1", depErr.Missing)

	assert.Equal(t, 10, p.SkillPoints, "failed unlock must not debit points")
	assert.Empty(t, p.UnlockedSkills)
}

func TestUnlock_AlreadyUnlocked(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(10, "xp_boost_1")
	_, err := tree.Unlock(p, "xp_boost_1")
	require.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.Equal(t, 10, p.SkillPoints)
}

func TestUnlock_ChainInOrder(t *testing.T) {
	tree := DefaultTree()

	p := newPlayer(6)
	_, err := tree.Unlock(p, "perfect_bonus_1")
	require.NoError(t, err)
	_, err = tree.Unlock(p, "extra_attempt_1")
	require.NoError(t, err)
	_, err = tree.Unlock(p, "error_forgiveness_1")
	require.NoError(t, err)

	assert.Zero(t, p.SkillPoints)
	assert.InDelta(t, 1, tree.Effect(p, entities.EffectErrorForgiveness), 1e-9)
}
