package combatant_test

import (
	"testing"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/stretchr/testify/assert"
)

func TestPlayer_SatisfiesActor(t *testing.T) {
	var _ combatant.Actor = combatant.NewPlayer("p1", "Aria", 100, 50)
}

func TestEnemy_SatisfiesActor(t *testing.T) {
	var _ combatant.Actor = combatant.NewEnemy("e1", "Goblin", 30, 0)
}

func TestPlaced_SatisfiesActor(t *testing.T) {
	var _ combatant.Actor = combatant.NewPlaced("turret1", "p1", 50)
}

func TestApplyDamage_ClampsAtZero(t *testing.T) {
	p := combatant.NewPlayer("p1", "Aria", 100, 0)
	applied := p.ApplyDamage(150)
	assert.Equal(t, 100.0, applied)
	hp, _ := p.Health()
	assert.Equal(t, 0.0, hp)
	assert.False(t, p.IsAlive())
}

func TestHeal_ClampsAtMax(t *testing.T) {
	p := combatant.NewPlayer("p1", "Aria", 100, 0)
	p.ApplyDamage(80)
	applied := p.Heal(50)
	assert.Equal(t, 20.0, applied)
	hp, _ := p.Health()
	assert.Equal(t, 100.0, hp)
}

func TestSpendMana_InsufficientFails(t *testing.T) {
	p := combatant.NewPlayer("p1", "Aria", 100, 10)
	assert.False(t, p.SpendMana(20))
	ok := p.SpendMana(10)
	assert.True(t, ok)
	mp, _ := p.Mana()
	assert.Equal(t, 0.0, mp)
}

func TestEnchantments_AreCopiedNotAliased(t *testing.T) {
	e := combatant.NewEnemy("e1", "Goblin", 30, 0)
	e.AddEnchantment(combatant.Enchantment{Tag: "reflect", Params: map[string]float64{"reflect_pct": 0.3}})

	ench := e.Enchantments()
	ench[0].Tag = "mutated"

	fresh := e.Enchantments()
	assert.Equal(t, "reflect", fresh[0].Tag)
}

func TestPosition_SetAndGet(t *testing.T) {
	p := combatant.NewPlayer("p1", "Aria", 100, 0)
	p.SetPosition(combatant.Position{X: 3, Y: 4})
	assert.Equal(t, combatant.Position{X: 3, Y: 4}, p.Position())
}
