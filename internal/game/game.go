package game

import (
	"math/rand"
	"sort"
)

// GameState is the root aggregate (spec §3): tick counter, units, event
// queue, pause flag, edit-mode flag, and seedable RNG state. Units,
// Characters and Weapons live in owning collections keyed by stable integer
// IDs rather than pointer cycles (spec §9).
type GameState struct {
	tick Tick

	units      map[UnitID]*Unit
	characters map[CharacterID]*Character
	weapons    map[WeaponID]*Weapon

	queue    *EventQueue
	factions *AlignmentTable
	rng      *rand.Rand
	log      *EventLog
	hooks    Hooks

	paused   bool
	editMode bool

	unitIDs idGen
	charIDs idGen

	counterAttackEnabled     bool
	counterAttackWindowTicks int

	// counterWindowUnit tracks units currently inside an open counter-attack
	// window (spec §4.6), keyed by defender UnitID.
	counterWindowUnit map[UnitID]bool
}

// optKind controls the pass in which a GameOption is applied, mirroring the
// teacher's simOptionKind phased builder (test_harness.go): infra first,
// then weapons (so units can reference them), then units.
type optKind int

const (
	optInfra optKind = iota
	optWeapon
	optUnit
)

// GameOption is a builder function applied to a GameState during
// construction (SPEC_FULL.md §4.11 Ambient Stack).
type GameOption struct {
	kind optKind
	fn   func(*GameState)
}

// NewGameState constructs a GameState and applies opts in phase order
// (infra, then weapons, then units).
func NewGameState(opts ...GameOption) *GameState {
	gs := &GameState{
		units:                    make(map[UnitID]*Unit),
		characters:               make(map[CharacterID]*Character),
		weapons:                  make(map[WeaponID]*Weapon),
		queue:                    NewEventQueue(),
		factions:                 NewAlignmentTable(),
		rng:                      rand.New(rand.NewSource(1)),
		log:                      NewEventLog(),
		counterAttackEnabled:     true,
		counterAttackWindowTicks: 45, // SPEC_FULL.md §6: midpoint of the 30-60 source range
		counterWindowUnit:        make(map[UnitID]bool),
	}
	gs.weapons[UnarmedWeapon().Common.ID] = weaponPtr(UnarmedWeapon())

	for _, phase := range []optKind{optInfra, optWeapon, optUnit} {
		for _, o := range opts {
			if o.kind == phase {
				o.fn(gs)
			}
		}
	}
	return gs
}

func weaponPtr(w Weapon) *Weapon { return &w }

// WithSeed sets the RNG seed for deterministic runs (spec §3 GameState;
// §5 determinism guarantee).
func WithSeed(seed int64) GameOption {
	return GameOption{optInfra, func(gs *GameState) {
		gs.rng = rand.New(rand.NewSource(seed))
	}}
}

// WithHooks installs the external collaborator hooks (spec §6.1).
func WithHooks(h Hooks) GameOption {
	return GameOption{optInfra, func(gs *GameState) { gs.hooks = h }}
}

// WithAlignment overrides the default hostility rule for a faction pair
// (spec §3 Faction).
func WithAlignment(a, b FactionID, al Alignment) GameOption {
	return GameOption{optInfra, func(gs *GameState) { gs.factions.SetAlignment(a, b, al) }}
}

// WithCounterAttack configures the optional counter-attack window
// (spec §4.6, §9 Open Question; resolved in SPEC_FULL.md §6).
func WithCounterAttack(enabled bool, windowTicks int) GameOption {
	return GameOption{optInfra, func(gs *GameState) {
		gs.counterAttackEnabled = enabled
		if windowTicks > 0 {
			gs.counterAttackWindowTicks = windowTicks
		}
	}}
}

// WithWeapon registers a weapon definition, available for characters to
// reference by ID.
func WithWeapon(w Weapon) GameOption {
	return GameOption{optWeapon, func(gs *GameState) {
		gs.weapons[w.Common.ID] = weaponPtr(w)
	}}
}

// WithUnit creates a unit and its character with caller-supplied IDs, for
// deterministic scenario setup. ch.ID and u.ID are taken as given; the
// GameState's ID generators are advanced past them so subsequently
// auto-created units never collide.
func WithUnit(u Unit, ch Character) GameOption {
	return GameOption{optUnit, func(gs *GameState) {
		gs.registerUnit(&u, &ch)
	}}
}

func (gs *GameState) registerUnit(u *Unit, ch *Character) {
	if u.Radius == 0 {
		u.Radius = UnitRadius
	}
	if ch.MeleeWeaponID == "" {
		ch.MeleeWeaponID = "unarmed"
	}
	if ch.CurrentHealth == 0 {
		ch.CurrentHealth = ch.Stats.Health
	}
	if ch.HoldState == "" {
		ch.HoldState = "aiming"
	}
	if w := gs.weapons[ch.MeleeWeaponID]; w != nil {
		ch.MeleeState = w.DefaultState()
	}
	if ch.HasRangedWeapon() {
		if w := gs.weapons[ch.RangedWeaponID]; w != nil {
			ch.RangedState = w.DefaultState()
		}
	}
	gs.characters[ch.ID] = ch
	gs.units[u.ID] = u
	if int(u.ID) > gs.unitIDs.next {
		gs.unitIDs.next = int(u.ID)
	}
	if int(ch.ID) > gs.charIDs.next {
		gs.charIDs.next = int(ch.ID)
	}
}

// CreateUnit allocates fresh IDs and registers a new unit/character pair,
// for loader-driven construction (spec §4.2).
func (gs *GameState) CreateUnit(ch Character, pos Point, facing float64) *Unit {
	ch.ID = CharacterID(gs.charIDs.take())
	u := &Unit{
		ID:            UnitID(gs.unitIDs.take()),
		Position:      pos,
		Radius:        UnitRadius,
		CurrentFacing: facing,
		TargetFacing:  facing,
		CharacterID:   ch.ID,
	}
	gs.registerUnit(u, &ch)
	return u
}

// Tick returns the current tick counter.
func (gs *GameState) Tick() Tick { return gs.tick }

// Paused reports whether the simulation is currently paused.
func (gs *GameState) Paused() bool { return gs.paused }

// Log returns the event log stream (spec §6.2).
func (gs *GameState) Log() *EventLog { return gs.log }

// Unit returns the unit with the given ID, or nil.
func (gs *GameState) Unit(id UnitID) *Unit { return gs.units[id] }

// Character returns the character with the given ID, or nil.
func (gs *GameState) Character(id CharacterID) *Character { return gs.characters[id] }

// CharacterOf returns the character bound to unit id, or nil.
func (gs *GameState) CharacterOf(id UnitID) *Character {
	u := gs.units[id]
	if u == nil {
		return nil
	}
	return gs.characters[u.CharacterID]
}

// Weapon returns the weapon definition with the given ID, or nil.
func (gs *GameState) Weapon(id WeaponID) *Weapon { return gs.weapons[id] }

// ActiveWeapon returns the weapon currently in use by ch (its ranged weapon
// if ActiveMode is RANGED and one is carried, else its melee weapon).
func (gs *GameState) ActiveWeapon(ch *Character) *Weapon {
	if ch.ActiveMode == ModeRanged && ch.HasRangedWeapon() {
		return gs.weapons[ch.RangedWeaponID]
	}
	return gs.weapons[ch.MeleeWeaponID]
}

// orderedUnitIDs returns every unit ID in ascending order, for the stable
// per-tick iteration order spec §5 requires.
func (gs *GameState) orderedUnitIDs() []UnitID {
	ids := make([]UnitID, 0, len(gs.units))
	for id := range gs.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AllUnits returns every unit in ascending-ID order.
func (gs *GameState) AllUnits() []*Unit {
	ids := gs.orderedUnitIDs()
	out := make([]*Unit, len(ids))
	for i, id := range ids {
		out[i] = gs.units[id]
	}
	return out
}

// Pause halts tick advancement (spec §4.1 Pause semantics).
func (gs *GameState) Pause() { gs.paused = true }

// Resume resumes tick advancement.
func (gs *GameState) Resume() { gs.paused = false }

// Advance runs exactly one simulation tick, following the fixed update
// order of spec §4.10. It is a no-op while paused.
func (gs *GameState) Advance() {
	if gs.paused {
		return
	}
	gs.tick++

	// 1. Drain and execute due events.
	for _, e := range gs.queue.DrainDue(gs.tick) {
		gs.handleEvent(e)
	}

	// 2. Movement then facing, in ascending unit-ID order.
	for _, id := range gs.orderedUnitIDs() {
		u := gs.units[id]
		ch := gs.characters[u.CharacterID]
		if ch == nil || ch.Incapacitated {
			continue
		}
		gs.updateMovement(u, ch)
		gs.updateFacing(u, ch)
	}

	// 3. Hesitation countdown and defense-cooldown expiry (melee recovery
	// ends via its EventRecoveryComplete in step 1).
	for _, id := range gs.orderedUnitIDs() {
		u := gs.units[id]
		ch := gs.characters[u.CharacterID]
		if ch == nil || ch.Incapacitated {
			continue
		}
		gs.tickHesitation(ch)
		gs.tickDefenseAndRecovery(u, ch)
	}

	// 4. Auto-targeting re-evaluation where trigger conditions hold.
	for _, id := range gs.orderedUnitIDs() {
		u := gs.units[id]
		ch := gs.characters[u.CharacterID]
		if ch == nil || ch.Incapacitated || !ch.AutoTargeting {
			continue
		}
		if gs.shouldEvaluateTargeting(u, ch) {
			gs.evaluateAutoTargeting(u, ch)
		}
	}

	// 5. Progress weapon state machines toward their current goal.
	for _, id := range gs.orderedUnitIDs() {
		u := gs.units[id]
		ch := gs.characters[u.CharacterID]
		if ch == nil || ch.Incapacitated {
			continue
		}
		gs.progressWeaponStates(u, ch)
	}

	// 6. Tick counter already incremented at step start (spec §4.10 lists
	// the increment last; the effect is equivalent since every step above
	// reads gs.tick as "the tick currently being processed").
}

// Run advances the simulation by n ticks.
func (gs *GameState) Run(n int) {
	for i := 0; i < n; i++ {
		gs.Advance()
	}
}

// handleEvent dispatches one due ScheduledEvent to its concern-specific
// handler.
func (gs *GameState) handleEvent(e *ScheduledEvent) {
	u := gs.units[e.Owner]
	if u == nil {
		return
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil {
		return
	}
	switch e.Kind {
	case EventWeaponStateTransition:
		gs.handleWeaponStateTransition(u, ch, e)
	case EventImpact:
		gs.handleImpact(u, ch, e)
	case EventRecoveryComplete:
		gs.handleRecoveryComplete(u, ch, e)
	case EventCounterAttackWindowEnd:
		delete(gs.counterWindowUnit, u.ID)
	}
}
