// Package executor implements the effect executor: it parses tags+params
// into an EffectConfig, resolves targets via geometry, and applies
// damage, statuses, and special mechanics to each target in the ordering
// the engine guarantees — damage to every target before any status, and
// knockback/pull only after every target has taken its damage and
// statuses.
package executor

import (
	"context"
	"math"
	"strings"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/forgeburn/tagengine/damage"
	"github.com/forgeburn/tagengine/dice"
	"github.com/forgeburn/tagengine/effectconfig"
	"github.com/forgeburn/tagengine/events"
	"github.com/forgeburn/tagengine/geometry"
	"github.com/forgeburn/tagengine/registry"
	"github.com/forgeburn/tagengine/status"
)

// defaultStatusDuration is used when neither the invocation params nor the
// tag's registry defaults specify a duration.
const defaultStatusDuration = 5.0

// TargetOutcome records what happened to one resolved target.
type TargetOutcome struct {
	Target       combatant.Actor
	Damage       damage.Result
	StatusesHit  []status.Kind
	Killed       bool
	ReflectedTo  float64 // damage reflected back to source because of this target, 0 if none
}

// Result is what Execute returns: never an error — invalid combinations
// degrade to empty target lists and warnings, per the engine's no-panic
// failure model.
type Result struct {
	TotalDamage float64
	Targets     []TargetOutcome
	Warnings    []string
}

// Execute runs one effect invocation from source against primary, using
// query to resolve the full target set and rng for the single crit-roll
// (and any future probabilistic) decision per target. bus may be nil, in
// which case no events are published. now is the invocation's game-time
// timestamp; the executor does not read it, and no published event
// carries it.
func Execute(
	reg *registry.Registry,
	source, primary combatant.Actor,
	tags []string,
	userParams map[string]float64,
	query geometry.SpatialQuery,
	rng dice.Roller,
	bus *events.Bus,
	now float64,
) Result {
	_ = now
	cfg := effectconfig.Parse(reg, tags, userParams)
	result := Result{Warnings: append([]string(nil), cfg.Warnings...)}

	if source == nil {
		result.Warnings = append(result.Warnings, "missing capability: source is nil")
		return result
	}

	targets := geometry.Resolve(cfg, source, primary, query)
	if len(targets) == 0 {
		return result
	}

	outcomes := make([]TargetOutcome, len(targets))

	// Pass 1: damage (+ lifesteal, reflect, execute, critical — all
	// damage-resolution concerns) to every target, in distance order,
	// before any target's statuses are touched.
	for i, target := range targets {
		if target == nil {
			result.Warnings = append(result.Warnings, "missing capability: nil target skipped")
			continue
		}
		outcomes[i].Target = target
		applyDamage(cfg, source, target, i, rng, bus, &outcomes[i], &result)
	}

	// Pass 2: statuses, now that no target's debuffs can affect this
	// invocation's own damage numbers.
	for i, target := range targets {
		if target == nil {
			continue
		}
		applyStatuses(cfg, source, target, &outcomes[i])
		for _, k := range outcomes[i].StatusesHit {
			if bus != nil {
				_ = bus.Publish(events.StatusApplied{
					Source:     source,
					Target:     target,
					StatusKind: string(k),
					Duration:   statusDurationFor(cfg, string(k)),
				})
			}
		}
	}

	// Pass 3: knockback/pull, only after every target's damage and status
	// has landed, so positions cannot affect this invocation's own
	// geometry resolution. The push/pull pivot is the effect's own origin
	// (the blast center for circle, the caster otherwise), not necessarily
	// the caster's literal position.
	originPos := geometryOriginPos(cfg, source, primary)
	for _, target := range targets {
		if target == nil {
			continue
		}
		applyPositional(cfg, originPos, target)
	}

	// Triggers: on_hit for every target, on_crit/on_kill as applicable.
	for i, target := range targets {
		if target == nil {
			continue
		}
		publishTriggers(source, target, outcomes[i], bus)
	}

	for _, o := range outcomes {
		if o.Target != nil {
			result.TotalDamage += o.Damage.HPDamage
			result.Targets = append(result.Targets, o)
		}
	}
	return result
}

func applyDamage(cfg effectconfig.EffectConfig, source, target combatant.Actor, hopIndex int, rng dice.Roller, bus *events.Bus, outcome *TargetOutcome, result *Result) {
	// chain_decay only applies when the tag's registry defaults or the
	// invocation params actually set it — a chain tag that declares no
	// decay deals its full base_damage to every hop.
	decay := 1.0
	if cfg.Geometry == "chain" && hopIndex > 0 {
		if chainDecay, ok := cfg.Params["chain_decay"]; ok && chainDecay > 0 {
			for n := 0; n < hopIndex; n++ {
				decay *= chainDecay
			}
		}
	}

	critChance := source.CritChance()
	for _, t := range cfg.SpecialTags {
		if t == "critical" {
			critChance = 1.0
		}
	}

	in := damage.Input{
		BaseDamage:        cfg.BaseDamage * decay,
		Strength:          source.Strength(),
		EmpowerMult:       source.Statuses().OutgoingDamageMultiplier(),
		ClassAffinityPct:  cfg.Params["class_affinity_pct"],
		TitleBonusPct:     cfg.Params["title_bonus_pct"],
		WeaponMultipliers: weaponMultipliers(source),
		CritChance:        critChance,
	}

	beforeHP, _ := target.Health()
	dmgResult := damage.Compute(context.Background(), in, target, rng)
	outcome.Damage = dmgResult

	if bus != nil {
		_ = bus.Publish(events.DamageDealt{
			Source:      source,
			Target:      target,
			Amount:      dmgResult.HPDamage,
			DamageTypes: cfg.DamageTags,
		})
	}

	// execute: finish off a target already below the threshold.
	if hasSpecial(cfg, "execute") {
		threshold := cfg.Params["execute_threshold"]
		hp, max := target.Health()
		if max > 0 && hp <= threshold*max {
			target.ApplyDamage(hp)
		}
	}

	// lifesteal: source heals for a fraction of the damage just dealt.
	if pct := cfg.Params["lifesteal_pct"]; hasSpecial(cfg, "lifesteal") && pct > 0 {
		source.Heal(pct * dmgResult.HPDamage)
	}

	// reflect/thorns: the defender's own enchantments bounce a fraction of
	// the damage straight back to source — applied directly, never through
	// the damage pipeline again, so it cannot itself trigger a reflect.
	for _, ench := range target.Enchantments() {
		if ench.Tag != "reflect" && ench.Tag != "thorns" {
			continue
		}
		pct := ench.Params["reflect_pct"]
		if pct <= 0 {
			continue
		}
		reflected := pct * dmgResult.HPDamage
		source.ApplyDamage(reflected)
		outcome.ReflectedTo += reflected
	}

	hpAfter, _ := target.Health()
	outcome.Killed = beforeHP > 0 && hpAfter <= 0
	_ = result
}

func weaponMultipliers(a combatant.Actor) []float64 {
	var mults []float64
	for _, e := range a.Enchantments() {
		if m, ok := e.Params["mult"]; ok && m > 0 {
			mults = append(mults, m)
		}
	}
	return mults
}

func hasSpecial(cfg effectconfig.EffectConfig, tag string) bool {
	for _, t := range cfg.SpecialTags {
		if t == tag {
			return true
		}
	}
	return false
}

func applyStatuses(cfg effectconfig.EffectConfig, source, target combatant.Actor, outcome *TargetOutcome) {
	for _, tag := range cfg.StatusTags {
		duration := statusDurationFor(cfg, tag)
		params := statusParamsFor(tag, cfg.Params)
		effect, ok := status.Make(tag, duration, params, source.GetID())
		if !ok {
			continue
		}
		target.Statuses().Apply(effect)
		outcome.StatusesHit = append(outcome.StatusesHit, effect.Kind)
	}
}

// statusParamsFor strips the tag's "{tag}_" prefix from cfg.Params so that
// e.g. "burn_damage_per_second" becomes "damage_per_second" and
// "shield_hp_pool" becomes "hp_pool" — the generic keys status.Make reads.
func statusParamsFor(tag string, all map[string]float64) map[string]float64 {
	prefix := tag + "_"
	out := make(map[string]float64)
	for k, v := range all {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
			continue
		}
		// Also accept the bare key for callers that don't prefix (e.g. a
		// single-status invocation that just says "pct" or "dps").
		if !strings.Contains(k, "_duration") {
			out[k] = v
		}
	}
	return out
}

func statusDurationFor(cfg effectconfig.EffectConfig, tag string) float64 {
	if d, ok := cfg.Params[tag+"_duration"]; ok {
		return d
	}
	if d, ok := cfg.Params["duration"]; ok {
		return d
	}
	return defaultStatusDuration
}

// geometryOriginPos returns the pivot point knockback/pull push against:
// for circle geometry it matches the circle's own origin (source or
// target per origin_source), otherwise the caster's position.
func geometryOriginPos(cfg effectconfig.EffectConfig, source, primary combatant.Actor) combatant.Position {
	if cfg.Geometry == "circle" && cfg.Params["origin_source"] == 0 && primary != nil {
		return primary.Position()
	}
	return source.Position()
}

func applyPositional(cfg effectconfig.EffectConfig, originPos combatant.Position, target combatant.Actor) {
	if hasSpecial(cfg, "knockback") {
		dist := cfg.Params["knockback_distance"]
		if dist > 0 {
			pushAway(originPos, target, dist)
		}
	}
	if hasSpecial(cfg, "pull") {
		dist := cfg.Params["pull_distance"]
		if dist > 0 {
			pullToward(originPos, target, dist)
		}
	}
}

func pushAway(originPos combatant.Position, target combatant.Actor, dist float64) {
	tp := target.Position()
	dx, dy, ok := unitVector(originPos, tp)
	if !ok {
		return
	}
	target.SetPosition(combatant.Position{X: tp.X + dx*dist, Y: tp.Y + dy*dist, Z: tp.Z})
}

func pullToward(originPos combatant.Position, target combatant.Actor, dist float64) {
	tp := target.Position()
	dx, dy, ok := unitVector(tp, originPos)
	if !ok {
		return
	}
	current := euclidean(originPos, tp)
	move := dist
	if move > current {
		move = current
	}
	target.SetPosition(combatant.Position{X: tp.X + dx*move, Y: tp.Y + dy*move, Z: tp.Z})
}

func unitVector(from, to combatant.Position) (x, y float64, ok bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag == 0 {
		return 0, 0, false
	}
	return dx / mag, dy / mag, true
}

func euclidean(a, b combatant.Position) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func publishTriggers(source, target combatant.Actor, outcome TargetOutcome, bus *events.Bus) {
	if bus == nil {
		return
	}
	_ = bus.Publish(events.TriggerEvent{Kind: events.RefOnHit, Source: source, Target: target, Damage: outcome.Damage.HPDamage})
	if outcome.Damage.Crit {
		_ = bus.Publish(events.TriggerEvent{Kind: events.RefOnCrit, Source: source, Target: target, Damage: outcome.Damage.HPDamage})
	}
	if outcome.Killed {
		_ = bus.Publish(events.TriggerEvent{Kind: events.RefOnKill, Source: source, Target: target, Damage: outcome.Damage.HPDamage})
	}
}
