package geometry

import (
	"math"
	"sort"
	"strings"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/forgeburn/tagengine/effectconfig"
)

// Resolve maps cfg.Geometry and its parameters onto an ordered target
// list, filtered by cfg.ResolvedContext (and any "vs_<category>" special
// tag) against the candidates the query exposes.
//
// Targets are returned sorted by distance from the geometry's origin
// ascending, except chain, which is returned in hop order starting at the
// primary target; a later hop is not necessarily farther from the primary
// than an earlier one.
func Resolve(cfg effectconfig.EffectConfig, source, primary combatant.Actor, query SpatialQuery) []combatant.Actor {
	candidates := contextFilter(cfg, source, query.Candidates())

	switch cfg.Geometry {
	case "chain":
		return resolveChain(cfg, primary, candidates)
	case "cone":
		return resolveCone(cfg, source, primary, candidates)
	case "circle":
		return resolveCircle(cfg, source, primary, candidates)
	case "beam":
		return resolveBeam(cfg, source, primary, candidates)
	case "pierce":
		return resolvePierce(cfg, source, primary, candidates)
	default: // single_target and anything unrecognized fall back to it
		return resolveSingleTarget(primary, candidates)
	}
}

func resolveSingleTarget(primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	if primary == nil {
		return nil
	}
	for _, c := range candidates {
		if c.GetID() == primary.GetID() {
			return []combatant.Actor{c}
		}
	}
	return nil
}

// resolveChain walks outward from primary, each hop choosing the nearest
// not-yet-visited candidate within chain_range, up to chain_count hops
// beyond the primary target. It returns nil when primary is not among the
// candidates.
func resolveChain(cfg effectconfig.EffectConfig, primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	if len(resolveSingleTarget(primary, candidates)) == 0 {
		return nil
	}
	count := int(cfg.Params["chain_count"])
	rng := cfg.Params["chain_range"]

	visited := map[string]bool{primary.GetID(): true}
	chain := []combatant.Actor{primary}
	cur := primary

	for i := 0; i < count; i++ {
		var next combatant.Actor
		best := math.Inf(1)
		for _, c := range candidates {
			if visited[c.GetID()] {
				continue
			}
			d := distance(cur.Position(), c.Position())
			if d <= rng && d < best {
				best = d
				next = c
			}
		}
		if next == nil {
			break
		}
		visited[next.GetID()] = true
		chain = append(chain, next)
		cur = next
	}
	return chain
}

func resolveCone(cfg effectconfig.EffectConfig, source, primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	if source == nil || primary == nil {
		return resolveSingleTarget(primary, candidates)
	}
	coneRange := cfg.Params["cone_range"]
	halfAngle := cfg.Params["cone_angle"] / 2

	fx, fy, ok := direction(source.Position(), primary.Position())
	if !ok {
		return resolveSingleTarget(primary, candidates)
	}

	var out []combatant.Actor
	for _, c := range candidates {
		d := distance(source.Position(), c.Position())
		if d == 0 || d > coneRange {
			continue
		}
		dx, dy, ok := direction(source.Position(), c.Position())
		if !ok {
			continue
		}
		cosAngle := fx*dx + fy*dy
		angle := math.Acos(clamp(cosAngle, -1, 1)) * 180 / math.Pi
		if angle <= halfAngle {
			out = append(out, c)
		}
	}
	return sortByDistance(out, source.Position())
}

func resolveCircle(cfg effectconfig.EffectConfig, source, primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	origin := source
	if cfg.Params["origin_source"] == 0 && primary != nil {
		origin = primary
	}
	if origin == nil {
		return resolveSingleTarget(primary, candidates)
	}
	radius := cfg.Params["circle_radius"]

	var out []combatant.Actor
	for _, c := range candidates {
		if distance(origin.Position(), c.Position()) <= radius {
			out = append(out, c)
		}
	}
	return sortByDistance(out, origin.Position())
}

func resolveBeam(cfg effectconfig.EffectConfig, source, primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	hits := beamHits(cfg, source, primary, candidates)
	return hits
}

func resolvePierce(cfg effectconfig.EffectConfig, source, primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	hits := beamHits(cfg, source, primary, candidates)
	limit := int(cfg.Params["pierce_count"]) + 1
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func beamHits(cfg effectconfig.EffectConfig, source, primary combatant.Actor, candidates []combatant.Actor) []combatant.Actor {
	if source == nil || primary == nil {
		return resolveSingleTarget(primary, candidates)
	}
	beamRange := cfg.Params["beam_range"]
	halfWidth := cfg.Params["beam_width"] / 2

	fx, fy, ok := direction(source.Position(), primary.Position())
	if !ok {
		return resolveSingleTarget(primary, candidates)
	}

	var out []combatant.Actor
	for _, c := range candidates {
		px := c.Position().X - source.Position().X
		py := c.Position().Y - source.Position().Y
		proj := px*fx + py*fy
		if proj < 0 || proj > beamRange {
			continue
		}
		perp := math.Abs(px*fy - py*fx)
		if perp <= halfWidth {
			out = append(out, c)
		}
	}
	return sortByDistance(out, source.Position())
}

func contextFilter(cfg effectconfig.EffectConfig, source combatant.Actor, all []combatant.Actor) []combatant.Actor {
	category := categoryFilter(cfg)

	var out []combatant.Actor
	for _, c := range all {
		if category != "" {
			if c.Category() != category {
				continue
			}
		}
		switch cfg.ResolvedContext {
		case effectconfig.ContextSelf:
			if source == nil || c.GetID() != source.GetID() {
				continue
			}
		case effectconfig.ContextEnemy:
			if source != nil && c.GetType() == source.GetType() {
				continue
			}
		case effectconfig.ContextAlly:
			if source == nil || c.GetType() != source.GetType() {
				continue
			}
		case effectconfig.ContextAll:
			// no filtering
		}
		out = append(out, c)
	}
	return out
}

// categoryFilter reads an optional "vs_<category>" special tag, the
// engine's convention for category-specific context filters (e.g.
// "vs_undead"). Entities with no Category() are excluded whenever one is
// set.
func categoryFilter(cfg effectconfig.EffectConfig) string {
	for _, t := range cfg.SpecialTags {
		if strings.HasPrefix(t, "vs_") {
			return strings.TrimPrefix(t, "vs_")
		}
	}
	return ""
}

func distance(a, b combatant.Position) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// direction returns the normalized 2D vector from a to b. ok is false
// when a and b coincide, since the direction is undefined.
func direction(a, b combatant.Position) (x, y float64, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag == 0 {
		return 0, 0, false
	}
	return dx / mag, dy / mag, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sortByDistance(actors []combatant.Actor, origin combatant.Position) []combatant.Actor {
	sort.SliceStable(actors, func(i, j int) bool {
		return distance(origin, actors[i].Position()) < distance(origin, actors[j].Position())
	})
	return actors
}
