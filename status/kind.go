// Package status implements the fixed set of status effect kinds (DoTs,
// crowd control, buffs, debuffs) as a closed sum type discriminated by
// Kind, rather than an open inheritance hierarchy: ticking is a switch
// over Kind, which keeps instances small and tick loops cache-friendly.
package status

// Kind discriminates the fixed set of status effect variants.
type Kind string

// The fifteen status kinds required by the catalog.
const (
	Burn         Kind = "burn"
	Bleed        Kind = "bleed"
	Poison       Kind = "poison"
	Shock        Kind = "shock"
	Freeze       Kind = "freeze"
	Stun         Kind = "stun"
	Root         Kind = "root"
	Slow         Kind = "slow"
	Weaken       Kind = "weaken"
	Vulnerable   Kind = "vulnerable"
	Regeneration Kind = "regeneration"
	Shield       Kind = "shield"
	Haste        Kind = "haste"
	Empower      Kind = "empower"
	Fortify      Kind = "fortify"
)

// StackPolicy describes how a reapplication of the same kind from the same
// source is resolved.
type StackPolicy int

// The three reapplication policies.
const (
	// PolicyRefresh resets duration to the new application's duration
	// (taking the max of pct/pool where the table specifies it).
	PolicyRefresh StackPolicy = iota
	// PolicyStack increases stack count, compounding per-stack scaling.
	PolicyStack
	// PolicyTickStack is PolicyStack variant used by tick-based DoTs that
	// cap their stack count.
	PolicyTickStack
)

func (k Kind) policy() StackPolicy {
	switch k {
	case Poison:
		return PolicyStack
	case Shock:
		return PolicyTickStack
	default:
		return PolicyRefresh
	}
}

// IsCrowdControl reports whether a kind blocks actions or movement
// (Freeze, Stun block actions; Freeze, Root block movement).
func (k Kind) IsCrowdControl() bool {
	switch k {
	case Freeze, Stun, Root:
		return true
	default:
		return false
	}
}

// BlocksMovement reports whether the kind zeroes movement speed outright.
func (k Kind) BlocksMovement() bool {
	return k == Freeze || k == Root
}

// BlocksActions reports whether the kind prevents taking actions.
func (k Kind) BlocksActions() bool {
	return k == Freeze || k == Stun
}

// IsDamageOverTime reports whether the kind deals damage on tick.
func (k Kind) IsDamageOverTime() bool {
	switch k {
	case Burn, Bleed, Poison, Shock:
		return true
	default:
		return false
	}
}
