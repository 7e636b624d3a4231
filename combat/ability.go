package combat

// SkillDef is what a skill/item loader hands the manager to activate a
// player-driven effect: the tags+params the executor needs plus the
// resource gate (mana cost, cooldown) the manager enforces before running
// it.
type SkillDef struct {
	Tags     []string
	Params   map[string]float64
	ManaCost float64
	Cooldown float64
}

// TriggerConditions gates an enemy ability's eligibility during ability
// selection (§4.8 step 2). A zero value on any Has* flag means that
// condition is not checked.
type TriggerConditions struct {
	HasHealthThreshold bool
	HealthThresholdPct float64 // enemy HP% must be <= this value

	HasDistanceMin bool
	DistanceMin    float64 // distance to primary target must be >= this

	HasDistanceMax bool
	DistanceMax    float64 // distance to primary target must be <= this

	// MaxUsesPerFight caps how many times this ability can be selected in
	// one encounter. 0 means unlimited.
	MaxUsesPerFight int
}

// AbilityDef is one enemy ability entry, as returned by an
// EnemyAbilityLoader.
type AbilityDef struct {
	ID       string
	Tags     []string
	Params   map[string]float64
	Cooldown float64

	// Priority breaks ties among abilities that all pass their trigger
	// conditions: lower values are preferred, first-match-wins per
	// declaration order within the same priority.
	Priority int

	Trigger TriggerConditions
}

// WeaponEffectLoader resolves an equipped item's effect tags+params.
type WeaponEffectLoader func(itemID string) (tags []string, params map[string]float64, err error)

// SkillEffectLoader resolves a player skill's effect definition.
type SkillEffectLoader func(skillID string) (SkillDef, error)

// EnemyAbilityLoader resolves the ability roster for an enemy kind.
type EnemyAbilityLoader func(enemyID string) ([]AbilityDef, error)
