// Package damage implements the deterministic single-target damage
// formula: an attacker-side multiplier chain (stat, skill, class, title,
// weapon) feeding a crit roll, followed by a defender-side reduction
// (vulnerability, fortify, defense, shield) that produces the final HP
// delta.
package damage

import (
	"context"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/forgeburn/tagengine/core"
	"github.com/forgeburn/tagengine/dice"
)

// Tuning constants from the damage formula.
const (
	StatCoef             = 0.05 // strength contribution per point to stat_mult
	DefenseK             = 100.0
	DefenseReductionCap  = 0.75
	CritMultiplier       = 2.0
	ClassAffinityCapPct  = 20.0 // class_mult's affinity contribution caps at +20%
)

// The attacker-side multiplier stages, applied in this fixed order.
const (
	StageStat   core.Stage = "stat"
	StageSkill  core.Stage = "skill"
	StageClass  core.Stage = "class"
	StageTitle  core.Stage = "title"
	StageWeapon core.Stage = "weapon"
)

// Input carries every attacker-side term the formula needs, already
// resolved by the caller from the source entity, its active statuses, and
// external collaborators (class/title systems) — the pipeline itself does
// not know how those values were derived.
type Input struct {
	BaseDamage float64

	// Strength feeds stat_mult = 1 + Strength*StatCoef.
	Strength float64

	// EmpowerMult is skill_mult: 1 + sum(active empower buff pct), as
	// returned by source.Statuses().OutgoingDamageMultiplier() (which also
	// folds in any Weaken).
	EmpowerMult float64

	// ClassAffinityPct is a percentage (15 means +15%), clamped to
	// [0, ClassAffinityCapPct] before use.
	ClassAffinityPct float64

	// TitleBonusPct is a fraction (0.1 means +10%).
	TitleBonusPct float64

	// WeaponMultipliers are per-enchantment multipliers (e.g. sharpness);
	// weapon_mult is their product, 1 for an empty slice.
	WeaponMultipliers []float64

	CritChance float64
}

// Result is the full breakdown of one Compute call, useful for events and
// tests that need to assert on intermediate values, not just HPDamage.
type Result struct {
	Raw               float64
	Crit              bool
	VulnMult          float64
	FortifyPct        float64
	DefenseReduction  float64
	Incoming          float64
	ShieldAbsorbed    float64
	HPDamage          float64
}

type calcState struct {
	in  Input
	raw float64
}

func newChain() *core.StagedChain[calcState] {
	c := core.NewStagedChain[calcState]([]core.Stage{StageStat, StageSkill, StageClass, StageTitle, StageWeapon})
	_ = c.Add(StageStat, "stat_mult", func(_ context.Context, s calcState) (calcState, error) {
		s.raw *= 1 + s.in.Strength*StatCoef
		return s, nil
	})
	_ = c.Add(StageSkill, "skill_mult", func(_ context.Context, s calcState) (calcState, error) {
		mult := s.in.EmpowerMult
		if mult <= 0 {
			mult = 1
		}
		s.raw *= mult
		return s, nil
	})
	_ = c.Add(StageClass, "class_mult", func(_ context.Context, s calcState) (calcState, error) {
		pct := clamp(s.in.ClassAffinityPct, 0, ClassAffinityCapPct)
		s.raw *= 1 + pct/100
		return s, nil
	})
	_ = c.Add(StageTitle, "title_mult", func(_ context.Context, s calcState) (calcState, error) {
		s.raw *= 1 + s.in.TitleBonusPct
		return s, nil
	})
	_ = c.Add(StageWeapon, "weapon_mult", func(_ context.Context, s calcState) (calcState, error) {
		for _, m := range s.in.WeaponMultipliers {
			s.raw *= m
		}
		return s, nil
	})
	return c
}

// Compute runs the full formula against target, consuming exactly one
// dice.Roller decision for the crit check, and returns the breakdown.
// Shield absorption and the hp_damage subtraction are applied to target as
// a side effect, in this order: vulnerability, defense and fortify reduce
// raw to incoming, shields absorb from incoming, and the rest comes off HP.
func Compute(ctx context.Context, in Input, target combatant.Actor, rng dice.Roller) Result {
	chain := newChain()
	state, err := chain.Execute(ctx, calcState{in: in, raw: max0(in.BaseDamage)})
	if err != nil {
		// Every stage handler above is infallible; a non-nil error here
		// would indicate a programming mistake, not a runtime condition.
		state.raw = 0
	}
	raw := state.raw

	crit := rng.Float64() < in.CritChance
	if crit {
		raw *= CritMultiplier
	}

	statuses := target.Statuses()
	vulnMult := statuses.IncomingDamageMultiplier()
	fortifyPct := statuses.FortifyPct()
	defenseReduction := clamp(target.Defense()/(target.Defense()+DefenseK), 0, DefenseReductionCap)

	incoming := max0(raw * vulnMult * (1 - defenseReduction) * (1 - fortifyPct))
	shieldAbsorbed := statuses.ShieldAbsorb(incoming)
	hpDamage := incoming - shieldAbsorbed
	target.ApplyDamage(hpDamage)

	return Result{
		Raw:              raw,
		Crit:             crit,
		VulnMult:         vulnMult,
		FortifyPct:       fortifyPct,
		DefenseReduction:  defenseReduction,
		Incoming:         incoming,
		ShieldAbsorbed:   shieldAbsorbed,
		HPDamage:         hpDamage,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
