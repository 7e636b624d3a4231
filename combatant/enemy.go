package combatant

// Enemy is an AI-controlled combatant (monster, NPC).
type Enemy struct {
	stats
	Name string
}

// NewEnemy creates an Enemy with the given ID and HP/MP pools.
func NewEnemy(id, name string, hp, mp float64) *Enemy {
	return &Enemy{stats: newStats(id, hp, mp), Name: name}
}

// GetType implements Actor.
func (e *Enemy) GetType() string { return "enemy" }

var _ Actor = (*Enemy)(nil)
