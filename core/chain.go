package core

import (
	"context"
	"errors"
	"fmt"
)

// Stage names a step in an ordered Chain.
type Stage string

// Chain processes data through ordered stages of modifiers, each
// transforming the data and passing it to the next. The damage pipeline
// builds its stat/skill/class/title/weapon multiplier sequence on one.
type Chain[T any] interface {
	// Add registers a modifier at the given stage under a unique ID.
	Add(stage Stage, id string, modifier func(context.Context, T) (T, error)) error
	// Remove unregisters a modifier by ID.
	Remove(id string) error
	// Execute runs every modifier in stage order.
	Execute(ctx context.Context, data T) (T, error)
}

// Common chain errors.
var (
	ErrDuplicateModifierID = errors.New("core: modifier ID already exists")
	ErrModifierIDNotFound  = errors.New("core: modifier ID not found")
)

// StagedChain is the default Chain[T] implementation: modifiers run in the
// order their stage appears in the slice passed to NewStagedChain, and in
// registration order within a stage.
type StagedChain[T any] struct {
	stages    []Stage
	modifiers map[Stage][]chainModifier[T]
	idToStage map[string]Stage
}

type chainModifier[T any] struct {
	id      string
	handler func(context.Context, T) (T, error)
}

// NewStagedChain creates a chain fixed to the given stage order.
func NewStagedChain[T any](stages []Stage) *StagedChain[T] {
	mods := make(map[Stage][]chainModifier[T], len(stages))
	for _, s := range stages {
		mods[s] = nil
	}
	return &StagedChain[T]{stages: stages, modifiers: mods, idToStage: make(map[string]Stage)}
}

// Add implements Chain[T].
func (c *StagedChain[T]) Add(stage Stage, id string, handler func(context.Context, T) (T, error)) error {
	if _, exists := c.idToStage[id]; exists {
		return ErrDuplicateModifierID
	}
	c.modifiers[stage] = append(c.modifiers[stage], chainModifier[T]{id: id, handler: handler})
	c.idToStage[id] = stage
	return nil
}

// Remove implements Chain[T].
func (c *StagedChain[T]) Remove(id string) error {
	stage, ok := c.idToStage[id]
	if !ok {
		return ErrModifierIDNotFound
	}
	mods := c.modifiers[stage]
	for i, m := range mods {
		if m.id == id {
			c.modifiers[stage] = append(mods[:i], mods[i+1:]...)
			delete(c.idToStage, id)
			return nil
		}
	}
	return ErrModifierIDNotFound
}

// Execute implements Chain[T], running every stage's modifiers in order.
func (c *StagedChain[T]) Execute(ctx context.Context, data T) (T, error) {
	result := data
	for _, stage := range c.stages {
		for _, m := range c.modifiers[stage] {
			var err error
			result, err = m.handler(ctx, result)
			if err != nil {
				return result, fmt.Errorf("stage %s, modifier %s: %w", stage, m.id, err)
			}
		}
	}
	return result, nil
}
