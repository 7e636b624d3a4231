// Package geometry maps an EffectConfig's geometry tag and parameters onto
// an ordered list of targets, by querying the minimal spatial candidate
// set the host application exposes.
package geometry

import "github.com/forgeburn/tagengine/combatant"

// SpatialQuery enumerates every entity that could possibly be targeted by
// an effect — the host's room/world, trimmed to exactly what geometry
// resolution needs: no grid rendering, no pathfinding, just candidates.
//
//go:generate mockgen -destination=mock/mock_spatial.go -package=mock_geometry github.com/forgeburn/tagengine/geometry SpatialQuery
type SpatialQuery interface {
	// Candidates returns every entity in the encounter, source and
	// primary target included — filtering them out is the resolver's job.
	Candidates() []combatant.Actor
}

// StaticQuery is a SpatialQuery backed by a fixed slice, useful for tests
// and for hosts with no spatial index at all (e.g. a single arena room).
type StaticQuery struct {
	Actors []combatant.Actor
}

// Candidates implements SpatialQuery.
func (q StaticQuery) Candidates() []combatant.Actor { return q.Actors }
