// Package events provides a small synchronous event bus used to publish
// DamageDealt/StatusApplied notifications and to dispatch on_hit/on_crit/
// on_kill triggers registered on a source's equipment or skills. The
// payload types (DamageDealt, StatusApplied, TriggerEvent) are defined
// here; the executor publishes them.
package events

import (
	"context"

	"github.com/forgeburn/tagengine/core"
)

// Event is the interface every published event satisfies.
type Event interface {
	// Ref identifies the event's type for subscriber routing.
	Ref() *core.Ref
}

// Handler processes a published event. Returning an error does not stop
// delivery to other handlers; the bus collects and returns the first
// error encountered.
type Handler func(ctx context.Context, evt Event) error

// DamageDealt is published once per target after damage is applied.
type DamageDealt struct {
	Source      core.Entity
	Target      core.Entity
	Amount      float64
	DamageTypes []string
}

// Ref implements Event.
func (DamageDealt) Ref() *core.Ref { return RefDamageDealt }

// StatusApplied is published once per status application.
type StatusApplied struct {
	Source     core.Entity
	Target     core.Entity
	StatusKind string
	Duration   float64
	Stacks     int
}

// Ref implements Event.
func (StatusApplied) Ref() *core.Ref { return RefStatusApplied }

// Trigger event refs evaluated by the executor after applying an effect.
var (
	RefDamageDealt    = core.NewRef("tagengine", "event", "damage_dealt")
	RefStatusApplied  = core.NewRef("tagengine", "event", "status_applied")
	RefOnHit          = core.NewRef("tagengine", "event", "on_hit")
	RefOnCrit         = core.NewRef("tagengine", "event", "on_crit")
	RefOnKill         = core.NewRef("tagengine", "event", "on_kill")
)

// TriggerEvent is published for on_hit/on_crit/on_kill trigger evaluation.
type TriggerEvent struct {
	Kind    *core.Ref
	Source  core.Entity
	Target  core.Entity
	Damage  float64
}

// Ref implements Event.
func (t TriggerEvent) Ref() *core.Ref { return t.Kind }
