// Package skills implements the skill tree: a dependency-constrained set of
// nodes whose unlocked effects modify the game math elsewhere in the engine.
package skills

import (
	"errors"
	"fmt"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

var (
	ErrUnknownSkill            = errors.New("unknown skill")
	ErrAlreadyUnlocked         = errors.New("skill already unlocked")
	ErrInsufficientSkillPoints = errors.New("insufficient skill points")
	ErrUnmetDependency         = errors.New("unmet skill dependency")
)

// DependencyError names the first missing prerequisite of a failed unlock so
// the UI can render a reason.
type DependencyError struct {
	SkillID string
	Missing string // id of the first prerequisite not yet unlocked
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("skill %s requires %s to be unlocked first", e.SkillID, e.Missing)
}

func (e *DependencyError) Unwrap() error { return ErrUnmetDependency }

// UnlockResult describes a successful unlock.
type UnlockResult struct {
	SkillID         string
	Name            string
	RemainingPoints int
}

// Tree is a validated, read-only skill tree. Node dependencies form a DAG;
// NewTree rejects cycles and references to unknown nodes.
type Tree struct {
	nodes map[string]entities.SkillNode
	order []string // stable iteration order for rendering
}

// NewTree validates the node set and builds the tree.
func NewTree(nodes []entities.SkillNode) (*Tree, error) {
	t := &Tree{nodes: make(map[string]entities.SkillNode, len(nodes))}
	for _, n := range nodes {
		if _, dup := t.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", n.ID)
		}
		t.nodes[n.ID] = n
		t.order = append(t.order, n.ID)
	}

	for _, n := range nodes {
		for _, dep := range n.Dependencies {
			if _, ok := t.nodes[dep]; !ok {
				return nil, fmt.Errorf("skill %q depends on unknown skill %q", n.ID, dep)
			}
		}
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) checkAcyclic() error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(t.nodes))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("skill dependency cycle involving %q", id)
		case done:
			return nil
		}
		state[id] = visiting
		for _, dep := range t.nodes[id].Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for id := range t.nodes {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// Node returns the node with the given id.
func (t *Tree) Node(id string) (entities.SkillNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes in their configured order.
func (t *Tree) Nodes() []entities.SkillNode {
	out := make([]entities.SkillNode, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.nodes[id])
	}
	return out
}

// Effect sums the effect values of every unlocked node whose effect type
// matches. A player with no unlocked skills contributes the additive
// identity.
func (t *Tree) Effect(player *entities.Player, effectType entities.SkillEffectType) float64 {
	if player == nil || len(player.UnlockedSkills) == 0 {
		return 0
	}

	total := 0.0
	for _, id := range player.UnlockedSkills {
		if n, ok := t.nodes[id]; ok && n.Effect.Type == effectType {
			total += n.Effect.Value
		}
	}
	return total
}

// Unlock attempts to unlock a skill for the player. All checks run before
// any mutation, so a failed unlock leaves skill points and the unlocked set
// untouched. On success the cost is debited and the id appended to the
// player's unlocked set; persisting the mutation is the caller's concern.
func (t *Tree) Unlock(player *entities.Player, skillID string) (*UnlockResult, error) {
	node, ok := t.nodes[skillID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, skillID)
	}

	if player.HasSkill(skillID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyUnlocked, skillID)
	}

	if player.SkillPoints < node.Cost {
		return nil, fmt.Errorf("%w: %s costs %d, have %d",
			ErrInsufficientSkillPoints, skillID, node.Cost, player.SkillPoints)
	}

	for _, dep := range node.Dependencies {
		if !player.HasSkill(dep) {
			return nil, &DependencyError{SkillID: skillID, Missing: dep}
		}
	}

	player.SkillPoints -= node.Cost
	player.UnlockedSkills = append(player.UnlockedSkills, skillID)

	return &UnlockResult{
		SkillID:         skillID,
		Name:            node.Name,
		RemainingPoints: player.SkillPoints,
	}, nil
}
