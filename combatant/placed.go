package combatant

// Placed is a world-placed, non-wandering combatant such as a turret or
// trap. It has no mana pool by convention (placed effects are typically
// charge- or cooldown-driven instead) but otherwise satisfies Actor
// identically to Player and Enemy.
type Placed struct {
	stats
	OwnerID string
}

// NewPlaced creates a Placed entity with the given ID, HP pool, and owner.
func NewPlaced(id, ownerID string, hp float64) *Placed {
	return &Placed{stats: newStats(id, hp, 0), OwnerID: ownerID}
}

// GetType implements Actor.
func (p *Placed) GetType() string { return "placed" }

var _ Actor = (*Placed)(nil)
