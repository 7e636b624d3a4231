package registry

import "encoding/json"

// document mirrors the top-level JSON registry schema exactly before it
// is cross-checked and compiled into a Registry.
type document struct {
	TagDefinitions     map[string]*rawTagDefinition `json:"tag_definitions"`
	Categories         map[string][]string          `json:"categories"`
	ConflictResolution struct {
		GeometryPriority   []string            `json:"geometry_priority"`
		MutuallyExclusive  map[string][]string `json:"mutually_exclusive"`
	} `json:"conflict_resolution"`
	ContextInference map[string]string `json:"context_inference"`
}

// rawTagDefinition is TagDefinition without the unexported Name field,
// used only as the json.Unmarshal target.
type rawTagDefinition struct {
	Category          Category                       `json:"category"`
	Priority          int                            `json:"priority"`
	RequiredParams    []string                       `json:"required_params"`
	DefaultParams     map[string]float64             `json:"default_params"`
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

func parseDocument(data []byte) (*document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
