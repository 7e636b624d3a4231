package status

import "math"

// List holds the active status effects on a single entity. It enforces
// each kind's stacking policy on Apply and its lifecycle on Tick.
type List struct {
	effects []*Effect
}

// NewList creates an empty status list.
func NewList() *List {
	return &List{}
}

// All returns the currently active effects. The returned slice is a copy
// of the tracker's internal pointers — mutating an *Effect through it is
// fine, but appending/removing does not affect the tracker.
func (l *List) All() []*Effect {
	out := make([]*Effect, len(l.effects))
	copy(out, l.effects)
	return out
}

// HasKind reports whether an instance of kind is currently active.
func (l *List) HasKind(kind Kind) bool {
	for _, e := range l.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Apply adds or updates an instance per its kind's stacking policy:
//   - refresh: the existing same-kind/same-source instance (if any) has
//     its duration reset and its pct/pool taken as the max of old and new;
//     otherwise a new instance is created. There is never more than one
//     refresh-policy instance of a kind per source.
//   - stack: stack count increases (capped at StackCap if set >0) and
//     duration refreshes.
func (l *List) Apply(e Effect) {
	switch e.Kind.policy() {
	case PolicyStack, PolicyTickStack:
		for _, existing := range l.effects {
			if existing.Kind == e.Kind && existing.Source == e.Source {
				stackCap := existing.Params.StackCap
				if stackCap <= 0 {
					stackCap = e.Params.StackCap
				}
				existing.Stacks++
				if stackCap > 0 && existing.Stacks > stackCap {
					existing.Stacks = stackCap
				}
				existing.Remaining = e.Remaining
				if e.Params.DPS > existing.Params.DPS {
					existing.Params.DPS = e.Params.DPS
				}
				if e.Params.DamagePerTick > existing.Params.DamagePerTick {
					existing.Params.DamagePerTick = e.Params.DamagePerTick
				}
				return
			}
		}
		fresh := e
		l.effects = append(l.effects, &fresh)
	default: // PolicyRefresh
		for _, existing := range l.effects {
			if existing.Kind == e.Kind && existing.Source == e.Source {
				existing.Remaining = e.Remaining
				existing.Params.Pct = math.Max(existing.Params.Pct, e.Params.Pct)
				existing.Params.Pool = math.Max(existing.Params.Pool, e.Params.Pool)
				existing.Params.HPS = math.Max(existing.Params.HPS, e.Params.HPS)
				return
			}
		}
		fresh := e
		l.effects = append(l.effects, &fresh)
	}
}

// Tick advances every active effect by dt and returns the aggregate
// damage/healing produced this step. Expired removal is the caller's
// responsibility via RemoveExpired, called separately so the combat manager
// can guarantee "expired removed before new damage is dealt" ordering.
func (l *List) Tick(dt float64) Outcome {
	var total Outcome
	for _, e := range l.effects {
		o := e.Tick(dt)
		total.Damage += o.Damage
		total.Healing += o.Healing
	}
	return total
}

// RemoveExpired drops every effect whose Expired() is now true.
func (l *List) RemoveExpired() {
	kept := l.effects[:0]
	for _, e := range l.effects {
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	l.effects = kept
}

// Remove deletes every instance of kind, regardless of source (used for
// cleanse-style effects).
func (l *List) Remove(kind Kind) {
	kept := l.effects[:0]
	for _, e := range l.effects {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	l.effects = kept
}

// MovementMultiplier folds every active Slow/Haste/Freeze/Root instance
// into a single movement-speed multiplier; Freeze/Root zero it outright.
func (l *List) MovementMultiplier() float64 {
	mult := 1.0
	for _, e := range l.effects {
		switch e.Kind {
		case Freeze, Root:
			return 0
		case Slow:
			mult *= 1 - e.Params.Pct
		case Haste:
			mult *= 1 + e.Params.Pct
		}
	}
	return math.Max(0, mult)
}

// ActionsBlocked reports whether any active effect prevents taking actions.
func (l *List) ActionsBlocked() bool {
	for _, e := range l.effects {
		if e.Kind.BlocksActions() {
			return true
		}
	}
	return false
}

// OutgoingDamageMultiplier folds Weaken/Empower into a single multiplier
// applied to damage this entity deals: 1 + the sum of every Empower pct,
// times (1 - pct) for each Weaken.
func (l *List) OutgoingDamageMultiplier() float64 {
	mult := 1.0
	empower := 0.0
	for _, e := range l.effects {
		switch e.Kind {
		case Weaken:
			mult *= 1 - e.Params.Pct
		case Empower:
			empower += e.Params.Pct
		}
	}
	return math.Max(0, mult*(1+empower))
}

// IncomingDamageMultiplier folds Vulnerable into a multiplier applied to
// damage this entity receives (Fortify is handled separately as a flat
// reduction in the damage pipeline).
func (l *List) IncomingDamageMultiplier() float64 {
	mult := 1.0
	for _, e := range l.effects {
		if e.Kind == Vulnerable {
			mult *= 1 + e.Params.Pct
		}
	}
	return mult
}

// FortifyPct returns the flat incoming-damage reduction from Fortify,
// capped at 0.75 per the damage pipeline's defense-reduction cap.
func (l *List) FortifyPct() float64 {
	total := 0.0
	for _, e := range l.effects {
		if e.Kind == Fortify {
			total += e.Params.Pct
		}
	}
	return math.Min(0.75, total)
}

// ShieldAbsorb applies incoming damage against every active Shield in
// order, removing pool as it goes, and returns total absorbed.
func (l *List) ShieldAbsorb(incoming float64) float64 {
	var absorbed float64
	remaining := incoming
	for _, e := range l.effects {
		if e.Kind != Shield || remaining <= 0 {
			continue
		}
		a := e.AbsorbShield(remaining)
		absorbed += a
		remaining -= a
	}
	return absorbed
}
