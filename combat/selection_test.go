package combat

import (
	"testing"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAbility_FiltersByCooldown(t *testing.T) {
	enemy := combatant.NewEnemy("e1", "Goblin", 100, 0)
	primary := combatant.NewPlayer("p1", "Hero", 100, 0)

	abilities := []AbilityDef{
		{ID: "fireball", Priority: 1},
		{ID: "slash", Priority: 2},
	}
	cooldownReady := func(id string) bool { return id != "fireball" }
	uses := func(string) int { return 0 }

	chosen, ok := selectAbility(abilities, enemy, primary, cooldownReady, uses)
	require.True(t, ok)
	assert.Equal(t, "slash", chosen.ID)
}

func TestSelectAbility_HealthThreshold(t *testing.T) {
	enemy := combatant.NewEnemy("e1", "Goblin", 100, 0)
	enemy.SetHP(20) // 20%
	primary := combatant.NewPlayer("p1", "Hero", 100, 0)

	abilities := []AbilityDef{
		{ID: "enrage", Priority: 1, Trigger: TriggerConditions{HasHealthThreshold: true, HealthThresholdPct: 0.3}},
	}
	ready := func(string) bool { return true }
	uses := func(string) int { return 0 }

	chosen, ok := selectAbility(abilities, enemy, primary, ready, uses)
	require.True(t, ok)
	assert.Equal(t, "enrage", chosen.ID)

	enemy.SetHP(80) // 80%, above threshold
	_, ok = selectAbility(abilities, enemy, primary, ready, uses)
	assert.False(t, ok)
}

func TestSelectAbility_DistanceRange(t *testing.T) {
	enemy := combatant.NewEnemy("e1", "Archer", 100, 0)
	enemy.SetPosition(combatant.Position{X: 0, Y: 0})
	primary := combatant.NewPlayer("p1", "Hero", 100, 0)
	primary.SetPosition(combatant.Position{X: 10, Y: 0})

	abilities := []AbilityDef{
		{ID: "snipe", Priority: 1, Trigger: TriggerConditions{HasDistanceMin: true, DistanceMin: 5}},
		{ID: "stab", Priority: 1, Trigger: TriggerConditions{HasDistanceMax: true, DistanceMax: 3}},
	}
	ready := func(string) bool { return true }
	uses := func(string) int { return 0 }

	chosen, ok := selectAbility(abilities, enemy, primary, ready, uses)
	require.True(t, ok)
	assert.Equal(t, "snipe", chosen.ID, "distance 10 passes min-5 but fails max-3")
}

func TestSelectAbility_MaxUsesPerFightExhausted(t *testing.T) {
	enemy := combatant.NewEnemy("e1", "Goblin", 100, 0)
	primary := combatant.NewPlayer("p1", "Hero", 100, 0)

	abilities := []AbilityDef{
		{ID: "nuke", Priority: 1, Trigger: TriggerConditions{MaxUsesPerFight: 1}},
	}
	ready := func(string) bool { return true }

	_, ok := selectAbility(abilities, enemy, primary, ready, func(string) int { return 0 })
	assert.True(t, ok)

	_, ok = selectAbility(abilities, enemy, primary, ready, func(string) int { return 1 })
	assert.False(t, ok, "already used once, cap reached")
}

func TestSelectAbility_NoneMatch(t *testing.T) {
	enemy := combatant.NewEnemy("e1", "Goblin", 100, 0)
	primary := combatant.NewPlayer("p1", "Hero", 100, 0)

	_, ok := selectAbility(nil, enemy, primary, func(string) bool { return true }, func(string) int { return 0 })
	assert.False(t, ok)
}
