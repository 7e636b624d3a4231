package status

import "math"

// Params holds the per-kind numeric parameters a status effect instance
// needs. Not every field is meaningful for every Kind — each field's
// comment names the kinds that read it — but a single struct (rather than one type per
// kind) keeps Effect a flat, cache-friendly value.
type Params struct {
	DPS           float64 // Burn, Bleed, Poison base damage-per-second
	DamagePerTick float64 // Shock
	TickRate      float64 // Shock: seconds between ticks
	Pct           float64 // Slow, Weaken, Vulnerable, Haste, Empower, Fortify
	HPS           float64 // Regeneration heal-per-second
	Pool          float64 // Shield absorption pool
	StackCap      int     // optional cap for Poison/Shock stacking
}

// Effect is one active status-effect instance on an entity.
type Effect struct {
	Kind      Kind
	Remaining float64
	Stacks    int
	Source    string // entity ID, "" if none
	Params    Params

	tickAccum float64
}

// Outcome is what a single Tick produced.
type Outcome struct {
	Damage  float64
	Healing float64
}

// Tick advances the effect by dt seconds and returns any damage/healing it
// produced this step. The caller removes the effect once Expired reports
// true.
func (e *Effect) Tick(dt float64) Outcome {
	e.Remaining -= dt

	switch e.Kind {
	case Burn, Bleed:
		return Outcome{Damage: e.Params.DPS * dt}
	case Poison:
		scaled := e.Params.DPS * math.Pow(float64(e.Stacks), 1.2)
		return Outcome{Damage: scaled * dt}
	case Shock:
		e.tickAccum += dt
		var dmg float64
		for e.Params.TickRate > 0 && e.tickAccum >= e.Params.TickRate {
			dmg += e.Params.DamagePerTick
			e.tickAccum -= e.Params.TickRate
		}
		return Outcome{Damage: dmg}
	case Regeneration:
		return Outcome{Healing: e.Params.HPS * dt}
	default:
		return Outcome{}
	}
}

// Expired reports whether the effect should be removed: duration elapsed,
// or (for Shield) its pool has been depleted even with time remaining.
func (e *Effect) Expired() bool {
	if e.Kind == Shield && e.Params.Pool <= 0 {
		return true
	}
	return e.Remaining <= 0
}

// AbsorbShield reduces a Shield's pool by up to incoming and returns the
// amount absorbed. No-op for non-Shield kinds.
func (e *Effect) AbsorbShield(incoming float64) float64 {
	if e.Kind != Shield {
		return 0
	}
	absorbed := math.Min(e.Params.Pool, incoming)
	e.Params.Pool -= absorbed
	return absorbed
}
