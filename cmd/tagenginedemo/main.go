// Package main demonstrates the tag engine end to end: a registry loaded
// from an inline JSON document, a player and a goblin wired through
// combat.Manager, and the event bus narrating what happens.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/forgeburn/tagengine/combat"
	"github.com/forgeburn/tagengine/combatant"
	"github.com/forgeburn/tagengine/dice"
	"github.com/forgeburn/tagengine/events"
	"github.com/forgeburn/tagengine/geometry"
	"github.com/forgeburn/tagengine/registry"
)

const demoRegistryJSON = `{
  "tag_definitions": {
    "fire":          {"category": "damage_type"},
    "physical":      {"category": "damage_type"},
    "single_target": {"category": "geometry"},
    "cone":          {"category": "geometry"},
    "burn":          {"category": "status_debuff", "default_params": {"burn_duration": 6.0, "burn_damage_per_second": 4.0}},
    "enemy":         {"category": "context"},
    "lifesteal":     {"category": "special"}
  },
  "conflict_resolution": {
    "geometry_priority": ["cone", "single_target"],
    "mutually_exclusive": {}
  },
  "context_inference": {"damage": "enemy", "healing": "ally"}
}`

func main() {
	reg, err := registry.Load(strings.NewReader(demoRegistryJSON))
	if err != nil {
		log.Fatalf("load registry: %v", err)
	}

	bus := events.NewBus()
	registerNarration(bus)

	hero := combatant.NewPlayer("hero", "Ragnar", 120, 40)
	hero.SetPosition(combatant.Position{X: 0, Y: 0})
	goblin := combatant.NewEnemy("goblin", "Sneaky Goblin", 60, 0)
	goblin.SetPosition(combatant.Position{X: 3, Y: 0})

	mgr := combat.New(reg, bus, dice.NewSeededRoller(42), nil)
	mgr.RegisterEntity(hero)
	mgr.RegisterEntity(goblin)
	mgr.Targets = func(combatant.Actor) combatant.Actor { return hero }
	mgr.RegisterEnemyAbilities("goblin", []combat.AbilityDef{
		{ID: "stab", Tags: []string{"physical", "single_target"}, Params: map[string]float64{"base_damage": 8}, Cooldown: 4, Priority: 1},
	})

	query := geometry.StaticQuery{Actors: []combatant.Actor{hero, goblin}}

	fmt.Println("=== Tag Engine Demo ===")
	fmt.Printf("%s attacks %s with a flaming blade!\n\n", hero.GetID(), goblin.GetID())

	fireball := combat.SkillDef{
		Tags:     []string{"fire", "single_target", "burn", "lifesteal"},
		Params:   map[string]float64{"base_damage": 25, "lifesteal_pct": 0.2},
		ManaCost: 15,
		Cooldown: 3,
	}
	outcome := mgr.ActivateSkill(hero, goblin, "firebolt", fireball, query)
	if outcome.Rejected() {
		fmt.Printf("firebolt rejected: %s\n", outcome.Err)
		return
	}

	fmt.Println("\n--- ticking 5 seconds ---")
	for i := 0; i < 5; i++ {
		mgr.Step(1.0, query)
	}

	hp, max := goblin.Health()
	fmt.Printf("\n%s ends with %.1f/%.1f HP\n", goblin.GetID(), hp, max)
}

func registerNarration(bus *events.Bus) {
	bus.Subscribe(events.RefDamageDealt, func(_ context.Context, evt events.Event) error {
		dd := evt.(events.DamageDealt)
		fmt.Printf("  %s deals %.1f %s damage to %s\n", dd.Source.GetID(), dd.Amount, strings.Join(dd.DamageTypes, "/"), dd.Target.GetID())
		return nil
	})
	bus.Subscribe(events.RefStatusApplied, func(_ context.Context, evt events.Event) error {
		sa := evt.(events.StatusApplied)
		fmt.Printf("  %s is afflicted with %s for %.1fs\n", sa.Target.GetID(), sa.StatusKind, sa.Duration)
		return nil
	})
	bus.Subscribe(events.RefOnKill, func(_ context.Context, evt events.Event) error {
		te := evt.(events.TriggerEvent)
		fmt.Printf("  %s has fallen!\n", te.Target.GetID())
		return nil
	})
}
