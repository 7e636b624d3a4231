package registry

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/forgeburn/tagengine/rpgerr"
)

// Registry is the compiled, immutable tag registry. It is built once by
// Load and safely shared by reference across every subsequent parse and
// execute call — no method on Registry mutates its state.
type Registry struct {
	canonical        map[string]*TagDefinition
	alias            map[string]string // alias -> canonical
	categoryIndex    map[Category][]string
	geometryPriority []string
	mutualExclusion  map[string]map[string]bool
	contextInference map[string]string
}

// Load parses a tag registry JSON document from r and compiles it. It
// fails with an *rpgerr.Error (CodeInvalidArgument) when categories are
// missing, unknown, or the document cannot be parsed. Load performs no
// mutation of any previously returned *Registry — every call produces an
// independent, frozen instance, so "loading twice has no additional
// effect" holds trivially for a given source document.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, rpgerr.New(rpgerr.CodeInvalidArgument, "read registry source", rpgerr.WithCause(err))
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, rpgerr.New(rpgerr.CodeInvalidArgument, "parse registry JSON", rpgerr.WithCause(err))
	}

	reg := &Registry{
		canonical:        make(map[string]*TagDefinition),
		alias:            make(map[string]string),
		categoryIndex:    make(map[Category][]string),
		mutualExclusion:  make(map[string]map[string]bool),
		contextInference: doc.ContextInference,
	}

	for name, raw := range doc.TagDefinitions {
		if raw.Category == "" {
			return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "tag %q is missing a category", name)
		}
		if !categories[raw.Category] {
			return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "tag %q has unknown category %q", name, raw.Category)
		}

		def := &TagDefinition{
			Name:              name,
			Category:          raw.Category,
			Priority:          raw.Priority,
			RequiredParams:    raw.RequiredParams,
			DefaultParams:     raw.DefaultParams,
			Conflicts:         raw.Conflicts,
			Aliases:           raw.Aliases,
			AliasOf:           raw.AliasOf,
			Stacking:          raw.Stacking,
			ImmuneDamageTypes: raw.ImmuneDamageTypes,
			Synergies:         raw.Synergies,
			ContextOverrides:  raw.ContextOverrides,
			AutoApply:         raw.AutoApply,
			ParentTag:         raw.ParentTag,
		}
		reg.canonical[name] = def
		reg.categoryIndex[raw.Category] = append(reg.categoryIndex[raw.Category], name)

		for _, a := range raw.Aliases {
			if existing, ok := reg.alias[a]; ok && existing != name {
				return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "alias %q resolves to both %q and %q", a, existing, name)
			}
			reg.alias[a] = name
		}
	}

	// Aliases must never nest: an alias target must itself be canonical,
	// not another alias.
	for a, canon := range reg.alias {
		if _, isAlias := reg.alias[canon]; isAlias {
			return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "alias %q resolves to %q which is itself an alias", a, canon)
		}
	}

	// Cross-check the optional `categories` index against tag_definitions.
	for catName, names := range doc.Categories {
		cat := Category(catName)
		if !categories[cat] {
			return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "categories block references unknown category %q", catName)
		}
		for _, n := range names {
			def, ok := reg.canonical[n]
			if !ok {
				return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "categories block references unknown tag %q", n)
			}
			if def.Category != cat {
				return nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "tag %q declared in category %q but categories block lists it under %q", n, def.Category, cat)
			}
		}
	}

	// The category index lists canonical entries only: a definition whose
	// name is registered as an alias is left out.
	for cat, names := range reg.categoryIndex {
		kept := names[:0]
		for _, n := range names {
			if _, isAlias := reg.alias[n]; !isAlias {
				kept = append(kept, n)
			}
		}
		sort.Strings(kept)
		reg.categoryIndex[cat] = kept
	}

	reg.geometryPriority = doc.ConflictResolution.GeometryPriority

	for a, excluded := range doc.ConflictResolution.MutuallyExclusive {
		if reg.mutualExclusion[a] == nil {
			reg.mutualExclusion[a] = make(map[string]bool)
		}
		for _, b := range excluded {
			reg.mutualExclusion[a][b] = true
			if reg.mutualExclusion[b] == nil {
				reg.mutualExclusion[b] = make(map[string]bool)
			}
			reg.mutualExclusion[b][a] = true
		}
	}

	return reg, nil
}

// LoadFile is a convenience wrapper around Load for a registry document on
// disk; it is the only file format this package owns.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rpgerr.New(rpgerr.CodeInvalidArgument, "open registry file", rpgerr.WithCause(err))
	}
	defer f.Close()
	return Load(f)
}

// ResolveAlias returns the canonical name for name, or name unchanged if
// it is not a registered alias.
func (r *Registry) ResolveAlias(name string) string {
	if canon, ok := r.alias[name]; ok {
		return canon
	}
	return name
}

// Get resolves aliases then looks up the canonical definition. The second
// return value is false for unknown tags — lookups never panic.
func (r *Registry) Get(name string) (*TagDefinition, bool) {
	def, ok := r.canonical[r.ResolveAlias(name)]
	return def, ok
}

// Category returns the category of name, or "" if unknown.
func (r *Registry) Category(name string) (Category, bool) {
	def, ok := r.Get(name)
	if !ok {
		return "", false
	}
	return def.Category, true
}

// IsGeometry reports whether name resolves to a geometry tag.
func (r *Registry) IsGeometry(name string) bool { return r.hasCategory(name, CategoryGeometry) }

// IsDamage reports whether name resolves to a damage_type tag.
func (r *Registry) IsDamage(name string) bool { return r.hasCategory(name, CategoryDamageType) }

// IsStatus reports whether name resolves to a status_debuff or status_buff tag.
func (r *Registry) IsStatus(name string) bool {
	return r.hasCategory(name, CategoryStatusDebuff) || r.hasCategory(name, CategoryStatusBuff)
}

// IsContext reports whether name resolves to a context tag.
func (r *Registry) IsContext(name string) bool { return r.hasCategory(name, CategoryContext) }

func (r *Registry) hasCategory(name string, cat Category) bool {
	c, ok := r.Category(name)
	return ok && c == cat
}

// TagsInCategory returns the canonical tag names in cat (aliases excluded).
func (r *Registry) TagsInCategory(cat Category) []string {
	out := make([]string, len(r.categoryIndex[cat]))
	copy(out, r.categoryIndex[cat])
	return out
}

// ResolveGeometryConflict picks one geometry tag from tags (after alias
// resolution) per the registry's ordered priority list. If none of the
// input tags appear in the priority list, the first geometry tag by input
// order wins. Returns "", false if tags contains no geometry tag.
func (r *Registry) ResolveGeometryConflict(tags []string) (string, bool) {
	var present []string
	seen := make(map[string]bool)
	for _, t := range tags {
		canon := r.ResolveAlias(t)
		if r.IsGeometry(canon) && !seen[canon] {
			present = append(present, canon)
			seen[canon] = true
		}
	}
	if len(present) == 0 {
		return "", false
	}

	for _, p := range r.geometryPriority {
		for _, c := range present {
			if c == p {
				return c, true
			}
		}
	}
	return present[0], true
}

// MutuallyExclusive reports whether a and b (after alias resolution)
// cannot both be active.
func (r *Registry) MutuallyExclusive(a, b string) bool {
	a, b = r.ResolveAlias(a), r.ResolveAlias(b)
	return r.mutualExclusion[a][b]
}

// DefaultParams returns a copy of name's default parameters so callers
// cannot mutate registry state through the returned map.
func (r *Registry) DefaultParams(name string) map[string]float64 {
	def, ok := r.Get(name)
	out := make(map[string]float64)
	if !ok {
		return out
	}
	for k, v := range def.DefaultParams {
		out[k] = v
	}
	return out
}

// MergeParams overlays userParams on top of name's defaults. User values
// win every conflict.
func (r *Registry) MergeParams(name string, userParams map[string]float64) map[string]float64 {
	merged := r.DefaultParams(name)
	for k, v := range userParams {
		merged[k] = v
	}
	return merged
}

// ContextInferenceDefault returns the configured default context for an
// inference rule key (damage, healing, debuff, buff), or "" if unset.
func (r *Registry) ContextInferenceDefault(key string) string {
	return r.contextInference[key]
}

// String is a debugging aid.
func (r *Registry) String() string {
	return fmt.Sprintf("Registry{tags=%d, aliases=%d}", len(r.canonical), len(r.alias))
}
