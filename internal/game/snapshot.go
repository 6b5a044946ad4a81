package game

// UnitSnapshot is the read-only per-unit view exposed to the rendering
// layer each tick boundary (spec §6.2).
type UnitSnapshot struct {
	UnitID           UnitID
	Position         Point
	Facing           float64
	Radius           float64
	WeaponRenderState RenderState
	HealthFraction   float64
	FactionID        FactionID
	Selected         bool
	TargetZone       *Rectangle
	CurrentTargetID  *UnitID
}

// Snapshot is the root read-only view of a tick boundary (spec §6.2).
type Snapshot struct {
	Tick   Tick
	Paused bool
	Units  []UnitSnapshot
}

// Snapshot builds a copy-out view of the current GameState, safe for a
// rendering or input thread to read without synchronising against the
// simulation thread (spec §5: "Rendering and input threads must access
// state only through copy-out snapshots at tick boundaries").
func (gs *GameState) Snapshot() Snapshot {
	snap := Snapshot{Tick: gs.tick, Paused: gs.paused}
	for _, u := range gs.AllUnits() {
		ch := gs.characters[u.CharacterID]
		if ch == nil {
			continue
		}
		w := gs.ActiveWeapon(ch)
		render := RenderHidden
		if w != nil {
			if ch.ActiveMode == ModeRanged && ch.HasRangedWeapon() {
				render = ProjectRenderState(ch.RangedState)
			} else {
				render = ProjectRenderState(ch.MeleeState)
			}
		}
		var zone *Rectangle
		if ch.TargetZone != nil {
			z := *ch.TargetZone
			zone = &z
		}
		var target *UnitID
		if ch.CurrentTarget != nil {
			t := *ch.CurrentTarget
			target = &t
		}
		healthFrac := 0.0
		if ch.MaxHealth() > 0 {
			healthFrac = float64(ch.CurrentHealth) / float64(ch.MaxHealth())
		}
		snap.Units = append(snap.Units, UnitSnapshot{
			UnitID:            u.ID,
			Position:          u.Position,
			Facing:            u.CurrentFacing,
			Radius:            u.Radius,
			WeaponRenderState: render,
			HealthFraction:    healthFrac,
			FactionID:         ch.Faction,
			Selected:          u.Selected,
			TargetZone:        zone,
			CurrentTargetID:   target,
		})
	}
	return snap
}

// CharacterSnapshot is the detailed on-demand view of one character,
// beyond what the per-tick Snapshot carries (spec §6.2 "Snapshot accessors
// for detailed character stats").
type CharacterSnapshot struct {
	CharacterID                CharacterID
	Name                       string
	Stats                      Stats
	CurrentHealth              int
	Wounds                     []Wound
	Skills                     map[string]int
	RangedWeaponName           string
	MeleeWeaponName            string
	HoldState                  string
	ActiveMode                 CombatMode
	Movement                   MovementType
	AimingSpeed                AimingSpeed
	AutoTargeting              bool
	RangedStats                CombatStats
	MeleeStats                 CombatStats
	WoundHesitationRemaining   int
	BraveryHesitationRemaining int
}

// CharacterDetail returns an on-demand detailed snapshot of one character,
// or false if the ID is unknown.
func (gs *GameState) CharacterDetail(id CharacterID) (CharacterSnapshot, bool) {
	ch := gs.characters[id]
	if ch == nil {
		return CharacterSnapshot{}, false
	}
	rangedName, meleeName := "", ""
	if w := gs.weapons[ch.RangedWeaponID]; w != nil {
		rangedName = w.Common.Name
	}
	if w := gs.weapons[ch.MeleeWeaponID]; w != nil {
		meleeName = w.Common.Name
	}
	return CharacterSnapshot{
		CharacterID:                ch.ID,
		Name:                       ch.Name,
		Stats:                      ch.Stats,
		CurrentHealth:              ch.CurrentHealth,
		Wounds:                     append([]Wound(nil), ch.Wounds...),
		Skills:                     ch.Skills,
		RangedWeaponName:           rangedName,
		MeleeWeaponName:            meleeName,
		HoldState:                  ch.HoldState,
		ActiveMode:                 ch.ActiveMode,
		Movement:                   ch.Movement,
		AimingSpeed:                ch.AimingSpeed,
		AutoTargeting:              ch.AutoTargeting,
		RangedStats:                ch.RangedStats,
		MeleeStats:                 ch.MeleeStats,
		WoundHesitationRemaining:   ch.WoundHesitationRemaining,
		BraveryHesitationRemaining: ch.BraveryHesitationRemaining,
	}, true
}
