package status_test

import (
	"testing"

	"github.com/forgeburn/tagengine/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake_UnknownTagReturnsFalse(t *testing.T) {
	_, ok := status.Make("not_a_status", 5, nil, "")
	assert.False(t, ok)
}

func TestMake_AliasResolves(t *testing.T) {
	eff, ok := status.Make("poison_status", 5, map[string]float64{"dps": 2}, "src")
	require.True(t, ok)
	assert.Equal(t, status.Poison, eff.Kind)
}

func TestMake_ChillAliasesToSlow(t *testing.T) {
	eff, ok := status.Make("chill", 3, map[string]float64{"pct": 0.5}, "")
	require.True(t, ok)
	assert.Equal(t, status.Slow, eff.Kind)
	assert.Equal(t, 0.5, eff.Params.Pct)
}

func TestBurn_TicksDamage(t *testing.T) {
	eff, ok := status.Make("burn", 10, map[string]float64{"dps": 8}, "")
	require.True(t, ok)
	out := eff.Tick(1.0)
	assert.Equal(t, 8.0, out.Damage)
	assert.Equal(t, 9.0, eff.Remaining)
}

func TestPoison_ScalesWithStacksExponent(t *testing.T) {
	eff, ok := status.Make("poison", 10, map[string]float64{"dps": 5}, "")
	require.True(t, ok)
	eff.Stacks = 3
	out := eff.Tick(1.0)
	// 5 * 3^1.2 ≈ 18.69
	assert.InDelta(t, 18.69, out.Damage, 0.1)
}

func TestShock_TicksOnlyAtTickRate(t *testing.T) {
	eff, ok := status.Make("shock", 10, map[string]float64{"damage_per_tick": 8, "tick_rate": 2.0}, "")
	require.True(t, ok)

	out := eff.Tick(1.0)
	assert.Equal(t, 0.0, out.Damage)

	out = eff.Tick(1.0)
	assert.Equal(t, 8.0, out.Damage)
}

func TestRegeneration_Heals(t *testing.T) {
	eff, ok := status.Make("regeneration", 5, map[string]float64{"hps": 4}, "")
	require.True(t, ok)
	out := eff.Tick(2.0)
	assert.Equal(t, 8.0, out.Healing)
}

func TestShield_ExpiresWhenPoolDepleted(t *testing.T) {
	eff, ok := status.Make("shield", 100, map[string]float64{"hp_pool": 10}, "")
	require.True(t, ok)
	absorbed := eff.AbsorbShield(15)
	assert.Equal(t, 10.0, absorbed)
	assert.True(t, eff.Expired())
}

func TestShield_SurvivesWhileDurationRemains(t *testing.T) {
	eff, ok := status.Make("shield", 100, map[string]float64{"hp_pool": 10}, "")
	require.True(t, ok)
	eff.AbsorbShield(4)
	assert.False(t, eff.Expired())
}

func TestList_RefreshResetsDurationTakesMaxPct(t *testing.T) {
	l := status.NewList()
	first, _ := status.Make("slow", 3, map[string]float64{"pct": 0.3}, "caster")
	l.Apply(first)

	second, _ := status.Make("slow", 6, map[string]float64{"pct": 0.5}, "caster")
	l.Apply(second)

	all := l.All()
	require.Len(t, all, 1)
	assert.Equal(t, 6.0, all[0].Remaining)
	assert.Equal(t, 0.5, all[0].Params.Pct)
}

func TestList_StackIncrementsCount(t *testing.T) {
	l := status.NewList()
	first, _ := status.Make("poison", 5, map[string]float64{"dps": 2}, "caster")
	l.Apply(first)
	second, _ := status.Make("poison", 5, map[string]float64{"dps": 2}, "caster")
	l.Apply(second)

	all := l.All()
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].Stacks)
}

func TestList_StackRespectsCap(t *testing.T) {
	l := status.NewList()
	for i := 0; i < 5; i++ {
		eff, _ := status.Make("shock", 5, map[string]float64{"damage_per_tick": 1, "tick_rate": 1, "stack_cap": 3}, "c")
		l.Apply(eff)
	}
	assert.Equal(t, 3, l.All()[0].Stacks)
}

func TestList_DifferentSourcesDoNotMerge(t *testing.T) {
	l := status.NewList()
	a, _ := status.Make("burn", 5, nil, "sourceA")
	b, _ := status.Make("burn", 5, nil, "sourceB")
	l.Apply(a)
	l.Apply(b)
	assert.Len(t, l.All(), 2)
}

func TestList_RemoveExpired(t *testing.T) {
	l := status.NewList()
	eff, _ := status.Make("burn", 0.5, map[string]float64{"dps": 1}, "")
	l.Apply(eff)
	l.Tick(1.0)
	l.RemoveExpired()
	assert.Empty(t, l.All())
}

func TestList_MovementMultiplier_FreezeZeroes(t *testing.T) {
	l := status.NewList()
	eff, _ := status.Make("freeze", 5, nil, "")
	l.Apply(eff)
	assert.Equal(t, 0.0, l.MovementMultiplier())
}

func TestList_MovementMultiplier_Slow(t *testing.T) {
	l := status.NewList()
	eff, _ := status.Make("slow", 5, map[string]float64{"pct": 0.4}, "")
	l.Apply(eff)
	assert.InDelta(t, 0.6, l.MovementMultiplier(), 1e-9)
}

func TestList_FortifyCapsAt75Pct(t *testing.T) {
	l := status.NewList()
	a, _ := status.Make("fortify", 5, map[string]float64{"pct": 0.5}, "x")
	b, _ := status.Make("fortify", 5, map[string]float64{"pct": 0.5}, "y")
	l.Apply(a)
	l.Apply(b)
	assert.Equal(t, 0.75, l.FortifyPct())
}

func TestList_ShieldAbsorbAcrossMultipleShields(t *testing.T) {
	l := status.NewList()
	a, _ := status.Make("shield", 5, map[string]float64{"hp_pool": 5}, "x")
	b, _ := status.Make("shield", 5, map[string]float64{"hp_pool": 5}, "y")
	l.Apply(a)
	l.Apply(b)

	absorbed := l.ShieldAbsorb(8)
	assert.Equal(t, 8.0, absorbed)
}
