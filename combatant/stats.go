package combatant

import (
	"math"

	"github.com/forgeburn/tagengine/status"
)

// stats is the field storage shared by Player, Enemy, and Placed. The
// three variants differ only in how they're constructed and scripted —
// per the entity-contract design, the executor never sees this type
// directly, only the Actor interface it satisfies through embedding.
type stats struct {
	id       string
	pos      Position
	hp, hpMax float64
	mp, mpMax float64
	defense   float64
	category  string
	ench      []Enchantment
	critChance float64
	dmgMult    float64
	strength   float64
	statuses   *status.List
}

func newStats(id string, hp, mp float64) stats {
	return stats{
		id:         id,
		hp:         hp,
		hpMax:      hp,
		mp:         mp,
		mpMax:      mp,
		dmgMult:    1,
		statuses:   status.NewList(),
	}
}

func (s *stats) GetID() string { return s.id }

func (s *stats) Position() Position     { return s.pos }
func (s *stats) SetPosition(p Position) { s.pos = p }

func (s *stats) Health() (float64, float64) { return s.hp, s.hpMax }

func (s *stats) ApplyDamage(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	applied := math.Min(amount, s.hp)
	s.hp -= applied
	if s.hp < 0 {
		s.hp = 0
	}
	return applied
}

func (s *stats) Heal(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	room := s.hpMax - s.hp
	applied := math.Min(amount, room)
	s.hp += applied
	return applied
}

func (s *stats) IsAlive() bool { return s.hp > 0 }

func (s *stats) Mana() (float64, float64) { return s.mp, s.mpMax }

func (s *stats) SpendMana(amount float64) bool {
	if amount > s.mp {
		return false
	}
	s.mp -= amount
	return true
}

func (s *stats) Defense() float64 { return s.defense }

func (s *stats) Category() string { return s.category }

func (s *stats) Enchantments() []Enchantment {
	out := make([]Enchantment, len(s.ench))
	copy(out, s.ench)
	return out
}

func (s *stats) CritChance() float64      { return s.critChance }
func (s *stats) DamageMultiplier() float64 { return s.dmgMult }
func (s *stats) Strength() float64         { return s.strength }

func (s *stats) Statuses() *status.List { return s.statuses }

// SetHP forces current HP, clamped to [0, max]. Intended for test setup.
func (s *stats) SetHP(hp float64) {
	s.hp = math.Max(0, math.Min(hp, s.hpMax))
}

// SetDefense, SetCategory, SetCritChance, SetDamageMultiplier, SetStrength,
// and AddEnchantment are construction-time setters, called after
// NewPlayer/NewEnemy/NewPlaced.
func (s *stats) SetDefense(v float64)         { s.defense = v }
func (s *stats) SetCategory(v string)         { s.category = v }
func (s *stats) SetCritChance(v float64)      { s.critChance = v }
func (s *stats) SetDamageMultiplier(v float64) { s.dmgMult = v }
func (s *stats) SetStrength(v float64)        { s.strength = v }
func (s *stats) AddEnchantment(e Enchantment) { s.ench = append(s.ench, e) }
