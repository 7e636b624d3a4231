package combatant

// Player is a player-controlled combatant.
type Player struct {
	stats
	Name string
}

// NewPlayer creates a Player with the given ID and HP/MP pools.
func NewPlayer(id, name string, hp, mp float64) *Player {
	return &Player{stats: newStats(id, hp, mp), Name: name}
}

// GetType implements Actor.
func (p *Player) GetType() string { return "player" }

var _ Actor = (*Player)(nil)
