// Package combatant defines the capability set the executor requires of
// any participating entity (position, health, mana, active statuses,
// defense, faction, equipment enchantments, crit chance, damage
// multiplier) and the three concrete variants the game provides: Player,
// Enemy, and Placed (turret/trap). The executor is polymorphic over the
// Actor interface; it never type-switches on the concrete variant.
package combatant

import "github.com/forgeburn/tagengine/status"

// Position is an entity's location. Z is optional — callers that only use
// 2D geometry simply leave it at zero.
type Position struct {
	X, Y, Z float64
}

// Enchantment is a tag+params pair attached to an entity's equipped
// weapon or armor (e.g. "sharpness" with a damage multiplier, or
// "reflect" with a reflect_pct).
type Enchantment struct {
	Tag    string
	Params map[string]float64
}

// Actor is the capability set the effect executor, geometry resolver, and
// damage pipeline require. Player, Enemy, and Placed all satisfy it;
// nothing downstream of this interface ever needs to know which one it
// has.
type Actor interface {
	GetID() string
	GetType() string

	Position() Position
	SetPosition(Position)

	Health() (current, max float64)
	ApplyDamage(amount float64) (applied float64)
	Heal(amount float64) (applied float64)
	IsAlive() bool

	Mana() (current, max float64)
	SpendMana(amount float64) bool

	// Defense returns the entity's defense value used by the damage
	// pipeline's defense-reduction formula. Zero is a valid "no defense".
	Defense() float64

	// Category returns the entity's faction/category (e.g. "undead",
	// "beast"), or "" if it has none — the geometry resolver's
	// category-specific context filters treat "" as excluded from any
	// category filter but included under "all".
	Category() string

	Enchantments() []Enchantment

	CritChance() float64
	DamageMultiplier() float64

	Statuses() *status.List

	// Strength feeds the damage pipeline's stat_mult term.
	Strength() float64
}
