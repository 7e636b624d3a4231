package combat

import (
	"math"

	"github.com/forgeburn/tagengine/combatant"
)

// selectAbility implements §4.8's enemy ability selection: filter by
// cooldown readiness, then by trigger_conditions, then take the remaining
// candidate with the lowest Priority value (first declared wins a tie).
// ok is false when no ability passes, signalling the caller should fall
// back to the default melee attack.
func selectAbility(
	abilities []AbilityDef,
	enemy, primary combatant.Actor,
	cooldownReady func(abilityID string) bool,
	usesSoFar func(abilityID string) int,
) (AbilityDef, bool) {
	var best AbilityDef
	found := false

	for _, ab := range abilities {
		if !cooldownReady(ab.ID) {
			continue
		}
		if !passesTrigger(ab.Trigger, enemy, primary, usesSoFar(ab.ID)) {
			continue
		}
		if !found || ab.Priority < best.Priority {
			best = ab
			found = true
		}
	}

	return best, found
}

func passesTrigger(t TriggerConditions, enemy, primary combatant.Actor, uses int) bool {
	if t.MaxUsesPerFight > 0 && uses >= t.MaxUsesPerFight {
		return false
	}
	if t.HasHealthThreshold {
		hp, max := enemy.Health()
		if max <= 0 || hp/max > t.HealthThresholdPct {
			return false
		}
	}
	if (t.HasDistanceMin || t.HasDistanceMax) && primary != nil {
		d := euclidean(enemy.Position(), primary.Position())
		if t.HasDistanceMin && d < t.DistanceMin {
			return false
		}
		if t.HasDistanceMax && d > t.DistanceMax {
			return false
		}
	}
	return true
}

func euclidean(a, b combatant.Position) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// defaultMeleeAbility builds the fallback ability used when no registered
// ability passes selection: a plain physical single-target hit.
func defaultMeleeAbility(baseDamage float64) AbilityDef {
	return AbilityDef{
		ID:     "__default_melee",
		Tags:   []string{"physical", "single_target"},
		Params: map[string]float64{"base_damage": baseDamage},
	}
}
