// Package registry loads the tag registry — the single JSON source of
// truth for every tag's category, defaults, conflicts, aliases, stacking
// policy, and synergies — and exposes it as frozen, thread-safe lookup
// state for the parser and executor.
package registry

// Category is one of the eight disjoint classes a tag belongs to.
type Category string

// The exhaustive, non-overlapping set of tag categories.
const (
	CategoryGeometry      Category = "geometry"
	CategoryDamageType    Category = "damage_type"
	CategoryStatusDebuff  Category = "status_debuff"
	CategoryStatusBuff    Category = "status_buff"
	CategoryContext       Category = "context"
	CategorySpecial       Category = "special"
	CategoryTrigger       Category = "trigger"
	CategoryEquipment     Category = "equipment"
)

// categories is the exhaustive set used to validate JSON input at load time.
var categories = map[Category]bool{
	CategoryGeometry:     true,
	CategoryDamageType:   true,
	CategoryStatusDebuff: true,
	CategoryStatusBuff:   true,
	CategoryContext:      true,
	CategorySpecial:      true,
	CategoryTrigger:      true,
	CategoryEquipment:    true,
}

// StackPolicy is the re-application policy for a status-producing tag.
type StackPolicy string

// The four stacking policies.
const (
	StackNone       StackPolicy = "none"
	StackRefresh    StackPolicy = "refresh"
	StackAccumulate StackPolicy = "stack"
	StackIndependent StackPolicy = "independent"
)

// AutoApply describes a chance for a tag to apply a status on its own,
// independent of the status_tags bucket (e.g. a weapon sharpness tag that
// has a chance to also apply bleed).
type AutoApply struct {
	Chance   float64 `json:"chance"`
	StatusID string  `json:"status_id"`
}

// TagDefinition is one entry in the registry, keyed by its canonical name.
type TagDefinition struct {
	Name              string                         `json:"-"`
	Category          Category                       `json:"category"`
	Priority          int                            `json:"priority"`
	RequiredParams    []string                       `json:"required_params"`
	DefaultParams     map[string]float64              `json:"default_params"`
	Conflicts         []string                       `json:"conflicts"`
	Aliases           []string                       `json:"aliases"`
	AliasOf           string                         `json:"alias_of"`
	Stacking          StackPolicy                    `json:"stacking"`
	ImmuneDamageTypes []string                       `json:"immune_damage_types"`
	Synergies         map[string]map[string]float64  `json:"synergies"`
	ContextOverrides  map[string]string              `json:"context_overrides"`
	AutoApply         *AutoApply                     `json:"auto_apply"`
	ParentTag         string                         `json:"parent_tag"`
}

// IsAlias reports whether this definition is itself an alias entry rather
// than a canonical tag (it has AliasOf set).
func (t *TagDefinition) IsAlias() bool {
	return t != nil && t.AliasOf != ""
}
