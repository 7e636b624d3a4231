package status

// aliases maps alternate tag spellings onto their canonical Kind, mirroring
// the tag registry's own alias mechanism so status application can be
// driven directly by tag names coming out of an EffectConfig.
var aliases = map[string]Kind{
	"poison_status": Poison,
	"chill":         Slow,
	"fire_dot":      Burn,
	"burning":       Burn,
	"bleeding":      Bleed,
	"shocked":       Shock,
	"frozen":        Freeze,
	"stunned":       Stun,
	"rooted":        Root,
	"slowed":        Slow,
	"weakened":      Weaken,
	"vulnerable_status": Vulnerable,
	"regen":         Regeneration,
	"shielded":      Shield,
	"hasted":        Haste,
	"empowered":     Empower,
	"fortified":     Fortify,
}

var knownKinds = map[Kind]bool{
	Burn: true, Bleed: true, Poison: true, Shock: true, Freeze: true,
	Stun: true, Root: true, Slow: true, Weaken: true, Vulnerable: true,
	Regeneration: true, Shield: true, Haste: true, Empower: true, Fortify: true,
}

// resolveKind maps a tag name (canonical or alias) onto a known Kind.
func resolveKind(tagName string) (Kind, bool) {
	if k, ok := aliases[tagName]; ok {
		return k, true
	}
	k := Kind(tagName)
	if knownKinds[k] {
		return k, true
	}
	return "", false
}

// Make builds a new Effect instance for tagName, honoring aliases, or
// returns false for an unrecognized tag — it never panics.
func Make(tagName string, duration float64, params map[string]float64, source string) (Effect, bool) {
	kind, ok := resolveKind(tagName)
	if !ok {
		return Effect{}, false
	}

	p := Params{
		DPS:           paramOr(params, "dps", paramOr(params, "damage_per_second", 0)),
		DamagePerTick: paramOr(params, "damage_per_tick", 0),
		TickRate:      paramOr(params, "tick_rate", 1),
		Pct:           paramOr(params, "pct", 0),
		HPS:           paramOr(params, "hps", 0),
		Pool:          paramOr(params, "hp_pool", 0),
		StackCap:      int(paramOr(params, "stack_cap", 0)),
	}

	return Effect{
		Kind:      kind,
		Remaining: duration,
		Stacks:    1,
		Source:    source,
		Params:    p,
	}, true
}

func paramOr(params map[string]float64, key string, fallback float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return fallback
}
