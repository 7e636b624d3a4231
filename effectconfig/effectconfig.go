// Package effectconfig turns a tag list plus a parameter map into a fully
// resolved, immutable EffectConfig. Parse is a pure function: no I/O, no
// global mutation, and the same registry+inputs always produce the same
// output including warning order.
package effectconfig

import (
	"sort"

	"github.com/forgeburn/tagengine/registry"
)

// Context is the resolved targeting faction for an effect.
type Context string

// The four canonical contexts.
const (
	ContextEnemy Context = "enemy"
	ContextAlly  Context = "ally"
	ContextSelf  Context = "self"
	ContextAll   Context = "all"
)

// DefaultGeometry is adopted when the input tags contain no geometry tag.
const DefaultGeometry = "single_target"

// EffectConfig is the normalized, parsed representation of (tags, params).
// It is built once by Parse and never mutated afterward.
type EffectConfig struct {
	RawTags []string

	Geometry string

	DamageTags  []string
	StatusTags  []string
	ContextTags []string
	SpecialTags []string
	TriggerTags []string

	ResolvedContext Context

	BaseDamage  float64
	BaseHealing float64

	Params map[string]float64

	Warnings []string
}

// Parse resolves aliases, buckets tags by category, selects geometry,
// infers context, merges parameters, applies synergies, and flags mutual
// exclusions, in the eight-step order specified by the tag engine's
// effect-config algorithm.
func Parse(reg *registry.Registry, tags []string, userParams map[string]float64) EffectConfig {
	cfg := EffectConfig{
		RawTags: append([]string(nil), tags...),
		Params:  make(map[string]float64),
	}

	// Step 1: alias resolution.
	canonical := make([]string, 0, len(tags))
	for _, t := range tags {
		canonical = append(canonical, reg.ResolveAlias(t))
	}

	// Step 2: categorization; unknown tags are dropped with a warning.
	var geometryTags []string
	for _, t := range canonical {
		cat, ok := reg.Category(t)
		if !ok {
			cfg.Warnings = append(cfg.Warnings, "unknown tag: "+t)
			continue
		}
		switch cat {
		case registry.CategoryGeometry:
			geometryTags = append(geometryTags, t)
		case registry.CategoryDamageType:
			cfg.DamageTags = append(cfg.DamageTags, t)
		case registry.CategoryStatusDebuff, registry.CategoryStatusBuff:
			cfg.StatusTags = append(cfg.StatusTags, t)
		case registry.CategoryContext:
			cfg.ContextTags = append(cfg.ContextTags, t)
		case registry.CategorySpecial:
			cfg.SpecialTags = append(cfg.SpecialTags, t)
		case registry.CategoryTrigger:
			cfg.TriggerTags = append(cfg.TriggerTags, t)
		case registry.CategoryEquipment:
			// Equipment tags carry parameters but do not themselves bucket
			// into a targeting or damage role.
		}
	}

	// Step 3: geometry selection.
	if chosen, ok := reg.ResolveGeometryConflict(geometryTags); ok {
		cfg.Geometry = chosen
		var ignored []string
		for _, g := range geometryTags {
			if g != chosen {
				ignored = append(ignored, g)
			}
		}
		if len(ignored) > 0 {
			cfg.Warnings = append(cfg.Warnings, "geometry conflict: using "+chosen+", ignoring "+joinBrackets(ignored))
		}
	} else {
		cfg.Geometry = DefaultGeometry
	}

	// Step 4: context resolution.
	cfg.ResolvedContext, cfg.Warnings = resolveContext(reg, cfg, cfg.Warnings)

	// Step 5: parameter merge — defaults first (registry tag order is the
	// order tags were resolved in step 1), user params win all conflicts.
	allTags := append(append(append(append([]string{cfg.Geometry}, cfg.DamageTags...), cfg.StatusTags...), cfg.ContextTags...), cfg.SpecialTags...)
	allTags = append(allTags, cfg.TriggerTags...)
	for _, t := range canonical {
		for k, v := range reg.DefaultParams(t) {
			cfg.Params[k] = v
		}
	}
	for k, v := range userParams {
		cfg.Params[k] = v
	}

	// Step 6: synergy application.
	present := make(map[string]bool)
	for _, t := range canonical {
		present[t] = true
	}
	for _, t := range allTags {
		def, ok := reg.Get(t)
		if !ok || def.Synergies == nil {
			continue
		}
		partners := sortedKeys(def.Synergies)
		for _, partner := range partners {
			if !present[partner] {
				continue
			}
			bonuses := def.Synergies[partner]
			for _, key := range sortedKeys(bonuses) {
				bonus := bonuses[key]
				if len(key) <= len("_bonus") || key[len(key)-len("_bonus"):] != "_bonus" {
					continue
				}
				baseParam := key[:len(key)-len("_bonus")]
				cfg.Params[baseParam] = cfg.Params[baseParam] * (1 + bonus)
				cfg.Warnings = append(cfg.Warnings, "synergy applied: "+t+" + "+partner+" -> "+baseParam)
			}
		}
	}

	// Step 7: mutual exclusion check across damage/status/context/special buckets.
	conflictBuckets := append(append(append([]string{}, cfg.DamageTags...), cfg.StatusTags...), cfg.ContextTags...)
	conflictBuckets = append(conflictBuckets, cfg.SpecialTags...)
	for i := 0; i < len(conflictBuckets); i++ {
		for j := i + 1; j < len(conflictBuckets); j++ {
			a, b := conflictBuckets[i], conflictBuckets[j]
			if reg.MutuallyExclusive(a, b) {
				cfg.Warnings = append(cfg.Warnings, "mutually exclusive: "+a+" and "+b+", "+b+" overrides "+a)
			}
		}
	}

	// Step 8: extract base_damage and base_healing (missing = 0). Content
	// authors may spell either key; base_damage/base_healing win if both
	// are present since they are this engine's canonical spelling.
	cfg.BaseDamage = firstPresent(cfg.Params, "base_damage", "baseDamage")
	cfg.BaseHealing = firstPresent(cfg.Params, "base_healing", "baseHealing")

	return cfg
}

func resolveContext(reg *registry.Registry, cfg EffectConfig, warnings []string) (Context, []string) {
	if len(cfg.ContextTags) > 0 {
		return Context(cfg.ContextTags[0]), warnings
	}

	hasDebuff := len(cfg.StatusTags) > 0 && anyDebuff(reg, cfg.StatusTags)
	hasBuff := len(cfg.StatusTags) > 0 && anyBuff(reg, cfg.StatusTags)
	hasDamage := len(cfg.DamageTags) > 0
	hasHealing := cfg.Params["base_healing"] > 0 || cfg.Params["baseHealing"] > 0

	switch {
	case hasDamage || hasDebuff:
		return inferredContext(reg, "damage", ContextEnemy), warnings
	case hasHealing || hasBuff:
		return inferredContext(reg, "healing", ContextAlly), warnings
	default:
		return inferredContext(reg, "damage", ContextEnemy), warnings
	}
}

func inferredContext(reg *registry.Registry, key string, fallback Context) Context {
	if v := reg.ContextInferenceDefault(key); v != "" {
		return Context(v)
	}
	return fallback
}

func anyDebuff(reg *registry.Registry, tags []string) bool {
	for _, t := range tags {
		if cat, ok := reg.Category(t); ok && cat == registry.CategoryStatusDebuff {
			return true
		}
	}
	return false
}

func anyBuff(reg *registry.Registry, tags []string) bool {
	for _, t := range tags {
		if cat, ok := reg.Category(t); ok && cat == registry.CategoryStatusBuff {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstPresent(params map[string]float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := params[k]; ok {
			return v
		}
	}
	return 0
}

func joinBrackets(items []string) string {
	s := "["
	for i, it := range items {
		if i > 0 {
			s += ","
		}
		s += it
	}
	return s + "]"
}
