package executor_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/forgeburn/tagengine/dice"
	"github.com/forgeburn/tagengine/events"
	"github.com/forgeburn/tagengine/executor"
	"github.com/forgeburn/tagengine/geometry"
	"github.com/forgeburn/tagengine/registry"
	"github.com/forgeburn/tagengine/status"
	"github.com/stretchr/testify/require"
)

const testRegistryJSON = `{
  "tag_definitions": {
    "lightning":      {"category": "damage_type"},
    "fire":           {"category": "damage_type"},
    "physical":       {"category": "damage_type"},
    "ice":            {"category": "damage_type"},

    "single_target":  {"category": "geometry"},
    "chain":           {"category": "geometry", "default_params": {"chain_count": 3, "chain_range": 5.0}},
    "cone":            {"category": "geometry"},
    "circle":          {"category": "geometry", "default_params": {"origin_source": 0}},
    "beam":            {"category": "geometry"},

    "burn":   {"category": "status_debuff"},
    "bleed":  {"category": "status_debuff"},
    "shock":  {"category": "status_debuff"},
    "freeze": {"category": "status_debuff"},

    "enemy": {"category": "context"},
    "ally":  {"category": "context"},
    "self":  {"category": "context"},
    "all":   {"category": "context"},

    "lifesteal": {"category": "special"},
    "knockback": {"category": "special"},
    "pull":      {"category": "special"},
    "execute":   {"category": "special"},
    "critical":  {"category": "special"}
  },
  "conflict_resolution": {
    "geometry_priority": ["beam", "circle", "cone", "chain", "single_target"],
    "mutually_exclusive": {}
  },
  "context_inference": {
    "damage": "enemy",
    "healing": "ally"
  }
}`

func mustRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Load(strings.NewReader(testRegistryJSON))
	require.NoError(t, err)
	return reg
}

func actorAt(id string, hp, x, y float64) *combatant.Enemy {
	a := combatant.NewEnemy(id, id, hp, 0)
	a.SetPosition(combatant.Position{X: x, Y: y})
	return a
}

// playerAt builds a Player source — used wherever a test's targets are
// Enemy so the "enemy" context (inferred from the damage tags) does not
// exclude the attacker's own side.
func playerAt(id string, hp, x, y float64) *combatant.Player {
	p := combatant.NewPlayer(id, id, hp, 0)
	p.SetPosition(combatant.Position{X: x, Y: y})
	return p
}

// Scenario 1: chain lightning on a cluster.
func TestExecute_ChainLightningCluster(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)
	primary := actorAt("t1", 100, 1, 0)
	others := []combatant.Actor{
		actorAt("t3", 100, 3, 0),
		actorAt("t5", 100, 5, 0),
		actorAt("t8", 100, 8, 0),
		actorAt("t12", 100, 12, 0),
	}
	candidates := append([]combatant.Actor{primary}, others...)

	params := map[string]float64{
		"base_damage":         40,
		"chain_count":         3,
		"chain_range":         6.0,
		"shock_duration":      6.0,
		"shock_damage_per_tick": 8.0,
		"shock_tick_rate":     2.0,
	}

	result := executor.Execute(reg, source, primary, []string{"lightning", "chain", "shock"}, params,
		geometry.StaticQuery{Actors: candidates}, dice.NewMockRoller(0.99), nil, 0)

	require.Len(t, result.Targets, 4)
	for _, o := range result.Targets {
		require.InDelta(t, 40.0, o.Damage.HPDamage, 1e-6, "target %s", o.Target.GetID())
		hp, _ := o.Target.Health()
		require.InDelta(t, 60.0, hp, 1e-6)
		require.Contains(t, o.StatusesHit, status.Shock)
	}
}

// Scenario 2: cone burn.
func TestExecute_ConeBurn(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)
	primary := actorAt("front", 100, 3, 0)
	wide := actorAt("wide", 100, 3, 3)
	behind := actorAt("behind", 100, -3, 0)

	params := map[string]float64{
		"base_damage": 50,
		"cone_angle":  60.0,
		"cone_range":  8.0,
		"burn_duration":            10.0,
		"burn_damage_per_second":   8.0,
	}

	result := executor.Execute(reg, source, primary, []string{"fire", "cone", "burn"}, params,
		geometry.StaticQuery{Actors: []combatant.Actor{primary, wide, behind}}, dice.NewMockRoller(0.99), nil, 0)

	require.Len(t, result.Targets, 1)
	require.Equal(t, "front", result.Targets[0].Target.GetID())
	require.InDelta(t, 50.0, result.Targets[0].Damage.HPDamage, 1e-6)
}

// Scenario 3: lifesteal from single-target.
func TestExecute_Lifesteal(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)
	source.SetHP(50)
	target := actorAt("target", 100, 1, 0)

	params := map[string]float64{
		"base_damage":  80,
		"lifesteal_pct": 0.25,
		"bleed_duration": 10.0,
		"bleed_damage_per_second": 6.0,
	}

	result := executor.Execute(reg, source, target, []string{"physical", "single_target", "bleed", "lifesteal"}, params,
		geometry.StaticQuery{Actors: []combatant.Actor{target}}, dice.NewMockRoller(0.99), nil, 0)

	require.Len(t, result.Targets, 1)
	require.InDelta(t, 80.0, result.Targets[0].Damage.HPDamage, 1e-6)
	sourceHP, _ := source.Health()
	require.InDelta(t, 70.0, sourceHP, 1e-6)
}

// Scenario 4: knockback on circle.
func TestExecute_KnockbackOnCircle(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)
	primary := actorAt("primary", 100, 5, 0)
	nearby := actorAt("nearby", 100, 6, 1)

	params := map[string]float64{
		"base_damage":        30,
		"circle_radius":      4.0,
		"freeze_duration":    3.0,
		"knockback_distance": 3.0,
		"origin_source":      0, // origin=target
	}

	result := executor.Execute(reg, source, primary, []string{"ice", "circle", "freeze", "knockback"}, params,
		geometry.StaticQuery{Actors: []combatant.Actor{primary, nearby}}, dice.NewMockRoller(0.99), nil, 0)

	require.Len(t, result.Targets, 2)
	for _, o := range result.Targets {
		require.InDelta(t, 30.0, o.Damage.HPDamage, 1e-6)
	}

	// circle origin is primary's own starting position (5,0), so primary's
	// own bearing from the blast center is undefined (distance 0) and it
	// is not pushed.
	primaryPos := primary.Position()
	require.InDelta(t, 5.0, primaryPos.X, 1e-6)
	require.InDelta(t, 0.0, primaryPos.Y, 1e-6)

	// nearby started at distance sqrt(2) from (5,0); it is pushed 3 units
	// further out along that same bearing.
	nearbyPos := nearby.Position()
	distFromOrigin := math.Sqrt((nearbyPos.X-5)*(nearbyPos.X-5) + (nearbyPos.Y-0)*(nearbyPos.Y-0))
	require.InDelta(t, math.Sqrt(2)+3, distFromOrigin, 1e-6)
}

// Scenario 6: geometry conflict.
func TestExecute_GeometryConflictPrefersHigherPriority(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)
	primary := actorAt("primary", 100, 5, 0)

	result := executor.Execute(reg, source, primary, []string{"chain", "beam"}, map[string]float64{"base_damage": 10},
		geometry.StaticQuery{Actors: []combatant.Actor{primary}}, dice.NewMockRoller(0.99), nil, 0)

	found := false
	for _, w := range result.Warnings {
		if w == "geometry conflict: using beam, ignoring [chain]" {
			found = true
		}
	}
	require.True(t, found, "warnings: %v", result.Warnings)
}

func TestExecute_PublishesDamageDealtEvent(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)
	target := actorAt("target", 100, 1, 0)
	bus := events.NewBus()

	received := false
	bus.Subscribe(events.RefDamageDealt, func(_ context.Context, evt events.Event) error {
		received = true
		dd, ok := evt.(events.DamageDealt)
		require.True(t, ok)
		require.InDelta(t, 20.0, dd.Amount, 1e-6)
		return nil
	})

	result := executor.Execute(reg, source, target, []string{"physical", "single_target"}, map[string]float64{"base_damage": 20},
		geometry.StaticQuery{Actors: []combatant.Actor{target}}, dice.NewMockRoller(0.99), bus, 0)

	require.Len(t, result.Targets, 1)
	require.True(t, received)
}

func TestExecute_EmptyTargets_NoPanic(t *testing.T) {
	reg := mustRegistry(t)
	source := playerAt("source", 100, 0, 0)

	result := executor.Execute(reg, source, nil, []string{"physical", "single_target"}, map[string]float64{"base_damage": 20},
		geometry.StaticQuery{Actors: nil}, dice.NewMockRoller(0.99), nil, 0)

	require.Empty(t, result.Targets)
}
