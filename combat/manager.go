// Package combat orchestrates ability invocations over the executor: it
// owns entity registration, status ticking, cooldowns, mana costs, the
// FIFO queue of pending effect invocations, and enemy ability selection.
// Per the engine's single-threaded cooperative model, Manager is not
// safe for concurrent use — exactly one goroutine drives Step and
// activation calls.
package combat

import (
	"container/list"
	"log/slog"

	"github.com/google/uuid"

	"github.com/forgeburn/tagengine/combatant"
	"github.com/forgeburn/tagengine/dice"
	"github.com/forgeburn/tagengine/events"
	"github.com/forgeburn/tagengine/executor"
	"github.com/forgeburn/tagengine/geometry"
	"github.com/forgeburn/tagengine/registry"
	"github.com/forgeburn/tagengine/rpgerr"
)

// defaultAbilityOpportunity is how often (in seconds) each enemy
// considers switching abilities, per §4.8's "default every 2s".
const defaultAbilityOpportunity = 2.0

// TargetResolver returns the entity an enemy should currently consider as
// its primary target, or nil if it has none (the enemy's ability
// selection is skipped for that opportunity).
type TargetResolver func(enemy combatant.Actor) combatant.Actor

type queuedInvocation struct {
	id      string
	source  combatant.Actor
	primary combatant.Actor
	tags    []string
	params  map[string]float64
	query   geometry.SpatialQuery
}

// Manager drives one encounter: registered entities, their cooldowns, the
// pending invocation queue, and enemy AI ability-selection timers.
type Manager struct {
	reg    *registry.Registry
	bus    *events.Bus
	rng    dice.Roller
	logger *slog.Logger

	// DefaultMeleeDamage seeds the fallback ability used when no enemy
	// ability passes selection (§4.8 step 4).
	DefaultMeleeDamage float64

	// Targets resolves an enemy's current primary target during ability
	// selection opportunities. Nil means enemy AI never activates.
	Targets TargetResolver

	entities map[string]combatant.Actor

	cooldowns map[string]map[string]float64
	uses      map[string]map[string]int

	enemyAbilities map[string][]AbilityDef
	enemyTimers    map[string]float64

	queue *list.List

	now float64
}

// New creates a Manager. bus and logger may be nil.
func New(reg *registry.Registry, bus *events.Bus, rng dice.Roller, logger *slog.Logger) *Manager {
	return &Manager{
		reg:                reg,
		bus:                bus,
		rng:                rng,
		logger:             logger,
		DefaultMeleeDamage: 10,
		entities:           make(map[string]combatant.Actor),
		cooldowns:          make(map[string]map[string]float64),
		uses:               make(map[string]map[string]int),
		enemyAbilities:     make(map[string][]AbilityDef),
		enemyTimers:        make(map[string]float64),
		queue:              list.New(),
	}
}

// RegisterEntity adds an entity to the set the Manager ticks statuses on
// each Step. Enemies are additionally given an ability-selection timer.
func (m *Manager) RegisterEntity(a combatant.Actor) {
	m.entities[a.GetID()] = a
	if a.GetType() == "enemy" {
		if _, ok := m.enemyTimers[a.GetID()]; !ok {
			m.enemyTimers[a.GetID()] = defaultAbilityOpportunity
		}
	}
}

// UnregisterEntity removes an entity from the tick set (e.g. on death or
// encounter end) and drops its cooldown/use-count/timer state.
func (m *Manager) UnregisterEntity(id string) {
	delete(m.entities, id)
	delete(m.cooldowns, id)
	delete(m.uses, id)
	delete(m.enemyTimers, id)
	delete(m.enemyAbilities, id)
}

// RegisterEnemyAbilities stores the ability roster an EnemyAbilityLoader
// resolved for this enemy. The Manager never calls the loader itself.
func (m *Manager) RegisterEnemyAbilities(enemyID string, abilities []AbilityDef) {
	m.enemyAbilities[enemyID] = abilities
}

// ClearQueue cancels every pending invocation (e.g. on encounter end or
// save load). Already-executed invocations are unaffected.
func (m *Manager) ClearQueue() {
	m.queue.Init()
}

// ActivateSkill enforces §4.8's cooldown/mana gate and, if it passes,
// runs the skill's effect immediately through the executor. A rejected
// activation mutates no state.
func (m *Manager) ActivateSkill(source, primary combatant.Actor, skillID string, skill SkillDef, query geometry.SpatialQuery) Outcome {
	if !m.cooldownReady(source.GetID(), skillID) {
		return rejected(rpgerr.New(rpgerr.CodeCooldownActive, "skill on cooldown: "+skillID,
			rpgerr.WithMeta("skill_id", skillID), rpgerr.WithMeta("entity_id", source.GetID())))
	}
	if !source.SpendMana(skill.ManaCost) {
		return rejected(rpgerr.New(rpgerr.CodeResourceExhausted, "insufficient mana for skill: "+skillID,
			rpgerr.WithMeta("skill_id", skillID), rpgerr.WithMeta("entity_id", source.GetID())))
	}

	m.setCooldown(source.GetID(), skillID, skill.Cooldown)
	result := executor.Execute(m.reg, source, primary, skill.Tags, skill.Params, query, m.rng, m.bus, m.now)
	m.warn(result)
	return success(result)
}

// Enqueue submits an effect invocation for execution on the next Step's
// drain phase, e.g. an effect triggered reactively rather than directly
// by a player/AI activation. Returns the invocation's ID.
func (m *Manager) Enqueue(source, primary combatant.Actor, tags []string, params map[string]float64, query geometry.SpatialQuery) string {
	id := uuid.NewString()
	m.queue.PushBack(&queuedInvocation{
		id: id, source: source, primary: primary, tags: tags, params: params, query: query,
	})
	return id
}

// Step advances the encounter by dt seconds, in the ordering §5 mandates:
// status tick, expired removal, enemy ability-selection opportunities
// (queued for this frame's drain), queued-invocation drain, cooldown
// decrement. It returns the result of every invocation drained this
// frame, in drain order.
func (m *Manager) Step(dt float64, query geometry.SpatialQuery) []executor.Result {
	m.now += dt

	for _, e := range m.entities {
		outcome := e.Statuses().Tick(dt)
		if outcome.Damage > 0 {
			e.ApplyDamage(outcome.Damage)
		}
		if outcome.Healing > 0 {
			e.Heal(outcome.Healing)
		}
	}
	for _, e := range m.entities {
		e.Statuses().RemoveExpired()
	}

	m.considerEnemyAbilities(dt, query)

	var results []executor.Result
	for el := m.queue.Front(); el != nil; el = m.queue.Front() {
		m.queue.Remove(el)
		inv := el.Value.(*queuedInvocation)
		result := executor.Execute(m.reg, inv.source, inv.primary, inv.tags, inv.params, inv.query, m.rng, m.bus, m.now)
		m.warn(result)
		results = append(results, result)
	}

	for _, cds := range m.cooldowns {
		for id, remaining := range cds {
			remaining -= dt
			if remaining < 0 {
				remaining = 0
			}
			cds[id] = remaining
		}
	}

	return results
}

func (m *Manager) considerEnemyAbilities(dt float64, query geometry.SpatialQuery) {
	if m.Targets == nil {
		return
	}
	for id, timer := range m.enemyTimers {
		timer -= dt
		if timer > 0 {
			m.enemyTimers[id] = timer
			continue
		}
		m.enemyTimers[id] = timer + defaultAbilityOpportunity

		enemy, ok := m.entities[id]
		if !ok || !enemy.IsAlive() {
			continue
		}
		primary := m.Targets(enemy)
		if primary == nil {
			continue
		}

		ability, matched := selectAbility(m.enemyAbilities[id], enemy, primary,
			func(abilityID string) bool { return m.cooldownReady(id, abilityID) },
			func(abilityID string) int { return m.uses[id][abilityID] })
		if !matched {
			ability = defaultMeleeAbility(m.DefaultMeleeDamage)
		} else {
			m.setCooldown(id, ability.ID, ability.Cooldown)
			m.recordUse(id, ability.ID)
		}

		m.Enqueue(enemy, primary, ability.Tags, ability.Params, query)
	}
}

func (m *Manager) cooldownReady(entityID, abilityID string) bool {
	remaining, ok := m.cooldowns[entityID][abilityID]
	return !ok || remaining <= 0
}

func (m *Manager) setCooldown(entityID, abilityID string, cooldown float64) {
	if cooldown <= 0 {
		return
	}
	if m.cooldowns[entityID] == nil {
		m.cooldowns[entityID] = make(map[string]float64)
	}
	m.cooldowns[entityID][abilityID] = cooldown
}

func (m *Manager) recordUse(entityID, abilityID string) {
	if m.uses[entityID] == nil {
		m.uses[entityID] = make(map[string]int)
	}
	m.uses[entityID][abilityID]++
}

func (m *Manager) warn(result executor.Result) {
	if m.logger == nil || len(result.Warnings) == 0 {
		return
	}
	m.logger.Warn("effect invocation produced warnings", "warnings", result.Warnings)
}
