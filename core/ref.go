package core

import "fmt"

// Ref is a namespaced identifier used for tags, status kinds, and event
// types. It keeps the engine's internal names ("burn", "on_hit") distinct
// from identifiers a host application defines for its own items/skills.
type Ref struct {
	// Module identifies which package minted this Ref ("tagengine", "host").
	Module string
	// Type categorizes the Ref ("tag", "status", "event").
	Type string
	// Value is the identifier within Module+Type.
	Value string
}

// NewRef builds a Ref.
func NewRef(module, typ, value string) *Ref {
	return &Ref{Module: module, Type: typ, Value: value}
}

// String returns "module:type:value".
func (r *Ref) String() string {
	if r == nil {
		return "<nil ref>"
	}
	return fmt.Sprintf("%s:%s:%s", r.Module, r.Type, r.Value)
}

// Equal compares two refs by value (not pointer identity).
func (r *Ref) Equal(other *Ref) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Module == other.Module && r.Type == other.Type && r.Value == other.Value
}
