package game

import (
	"encoding/json"
	"fmt"
)

// savedWound mirrors Wound for JSON persistence.
type savedWound struct {
	Location      BodyLocation `json:"location"`
	Severity      Severity     `json:"severity"`
	Damage        int          `json:"damage"`
	WoundNoun     string       `json:"woundNoun"`
	TickInflicted Tick         `json:"tickInflicted"`
}

// savedRectangle mirrors Rectangle for JSON persistence.
type savedRectangle struct {
	MinX, MinY, MaxX, MaxY float64
}

// savedCharacter carries the minimum fields spec §6.3 requires beyond the
// obvious Unit/Character/Weapon state: firing mode, target, zone, combat
// statistics, faction, hesitation, defense state, melee-recovery-end.
type savedCharacter struct {
	ID                         CharacterID     `json:"id"`
	Name                       string          `json:"name"`
	Faction                    FactionID       `json:"faction"`
	Stats                      Stats           `json:"stats"`
	Archetype                  string          `json:"archetype"`
	Handedness                 Handedness      `json:"handedness"`
	CurrentHealth              int             `json:"currentHealth"`
	Wounds                     []savedWound    `json:"wounds"`
	Skills                     map[string]int  `json:"skills"`
	RangedWeaponID             WeaponID        `json:"rangedWeaponId"`
	MeleeWeaponID              WeaponID        `json:"meleeWeaponId"`
	Movement                   MovementType    `json:"movement"`
	AimingSpeed                AimingSpeed     `json:"aimingSpeed"`
	CurrentTarget              *UnitID         `json:"currentTarget"`
	PreviousTarget             *UnitID         `json:"previousTarget"`
	TargetZone                 *savedRectangle `json:"targetZone"`
	ZoneStrict                 bool            `json:"zoneStrict"`
	AutoTargeting              bool            `json:"autoTargeting"`
	FiringMode                 FiringMode      `json:"firingMode"`
	RangedStats                CombatStats     `json:"rangedStats"`
	MeleeStats                 CombatStats     `json:"meleeStats"`
	WoundHesitationRemaining   int             `json:"woundHesitationRemaining"`
	BraveryHesitationRemaining int             `json:"braveryHesitationRemaining"`
	DefenseState               DefenseState    `json:"defenseState"`
	DefenseCooldownEnd         Tick            `json:"defenseCooldownEnd"`
	MeleeRecoveryEnd           Tick            `json:"meleeRecoveryEnd"`
	Incapacitated              bool            `json:"incapacitated"`
	PersistentAttack           bool            `json:"persistentAttack"`
}

// savedUnit carries current facing alongside the obvious position/radius
// fields (spec §6.3: "current facing per unit").
type savedUnit struct {
	ID            UnitID      `json:"id"`
	Position      Point       `json:"position"`
	Radius        float64     `json:"radius"`
	CurrentFacing float64     `json:"currentFacing"`
	TargetFacing  float64     `json:"targetFacing"`
	CharacterID   CharacterID `json:"characterId"`
	Selected      bool        `json:"selected"`
}

// saveDoc is the complete persisted-state document (spec §6.3). Weapon
// definitions are not persisted; they are re-supplied by the loader on
// restore, keyed by ID, exactly as at initial scenario load.
type saveDoc struct {
	Tick       Tick             `json:"tick"`
	Paused     bool             `json:"paused"`
	Units      []savedUnit      `json:"units"`
	Characters []savedCharacter `json:"characters"`
}

// Save serialises GameState to a deterministic JSON document. Units and
// characters are written in ascending-ID order so two saves of an
// identical GameState produce byte-identical output (spec §8 property 7).
// In-flight scheduled events are intentionally omitted; they are
// re-derived by ordinary tick processing once reloaded (spec §6.3).
func (gs *GameState) Save() ([]byte, error) {
	doc := saveDoc{Tick: gs.tick, Paused: gs.paused}
	for _, u := range gs.AllUnits() {
		doc.Units = append(doc.Units, savedUnit{
			ID:            u.ID,
			Position:      u.Position,
			Radius:        u.Radius,
			CurrentFacing: u.CurrentFacing,
			TargetFacing:  u.TargetFacing,
			CharacterID:   u.CharacterID,
			Selected:      u.Selected,
		})
		ch := gs.characters[u.CharacterID]
		if ch == nil {
			continue
		}
		var zone *savedRectangle
		if ch.TargetZone != nil {
			zone = &savedRectangle{ch.TargetZone.MinX, ch.TargetZone.MinY, ch.TargetZone.MaxX, ch.TargetZone.MaxY}
		}
		var wounds []savedWound
		for _, w := range ch.Wounds {
			wounds = append(wounds, savedWound{w.Location, w.Severity, w.Damage, w.WoundNoun, w.TickInflicted})
		}
		firingMode := FiringSingle
		if w := gs.weapons[ch.RangedWeaponID]; w != nil && w.Ranged != nil {
			firingMode = w.Ranged.Mode
		}
		doc.Characters = append(doc.Characters, savedCharacter{
			ID: ch.ID, Name: ch.Name, Faction: ch.Faction, Stats: ch.Stats,
			Archetype: ch.Archetype, Handedness: ch.Handedness,
			CurrentHealth: ch.CurrentHealth, Wounds: wounds, Skills: ch.Skills,
			RangedWeaponID: ch.RangedWeaponID, MeleeWeaponID: ch.MeleeWeaponID,
			Movement: ch.Movement, AimingSpeed: ch.AimingSpeed,
			CurrentTarget: ch.CurrentTarget, PreviousTarget: ch.PreviousTarget,
			TargetZone: zone, ZoneStrict: ch.ZoneStrict, AutoTargeting: ch.AutoTargeting,
			FiringMode: firingMode, RangedStats: ch.RangedStats, MeleeStats: ch.MeleeStats,
			WoundHesitationRemaining: ch.WoundHesitationRemaining, BraveryHesitationRemaining: ch.BraveryHesitationRemaining,
			DefenseState: ch.DefenseState, DefenseCooldownEnd: ch.DefenseCooldownEnd,
			MeleeRecoveryEnd: ch.MeleeRecoveryEnd, Incapacitated: ch.Incapacitated,
			PersistentAttack: ch.PersistentAttack,
		})
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openfields2: marshal save: %w", err)
	}
	return out, nil
}

// LoadSaveInto restores Units and Characters from a Save document into a
// GameState already populated with weapon definitions via opts (spec
// §6.3). Weapon state resets to each weapon's default on load; combat mode
// resets to RANGED; hold state resets to "aiming".
func LoadSaveInto(data []byte, opts ...GameOption) (*GameState, error) {
	var doc saveDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("openfields2: parse save: %w", err)
	}
	gs := NewGameState(opts...)
	gs.tick = doc.Tick
	gs.paused = doc.Paused

	charsByID := make(map[CharacterID]savedCharacter, len(doc.Characters))
	for _, sc := range doc.Characters {
		charsByID[sc.ID] = sc
	}

	for _, su := range doc.Units {
		sc, ok := charsByID[su.CharacterID]
		if !ok {
			return nil, fmt.Errorf("openfields2: unit %d references unknown character %d", su.ID, su.CharacterID)
		}
		ch := Character{
			ID: sc.ID, Name: sc.Name, Faction: sc.Faction, Stats: sc.Stats,
			Archetype: sc.Archetype, Handedness: sc.Handedness,
			CurrentHealth: sc.CurrentHealth, Skills: sc.Skills,
			RangedWeaponID: sc.RangedWeaponID, MeleeWeaponID: sc.MeleeWeaponID,
			ActiveMode: ModeRanged, Movement: sc.Movement, AimingSpeed: sc.AimingSpeed,
			CurrentTarget: sc.CurrentTarget, PreviousTarget: sc.PreviousTarget,
			ZoneStrict: sc.ZoneStrict, AutoTargeting: sc.AutoTargeting,
			RangedStats: sc.RangedStats, MeleeStats: sc.MeleeStats,
			WoundHesitationRemaining: sc.WoundHesitationRemaining, BraveryHesitationRemaining: sc.BraveryHesitationRemaining,
			DefenseState: sc.DefenseState, DefenseCooldownEnd: sc.DefenseCooldownEnd,
			MeleeRecoveryEnd: sc.MeleeRecoveryEnd, Incapacitated: sc.Incapacitated,
			PersistentAttack: sc.PersistentAttack,
			HoldState:        "aiming",
		}
		for _, sw := range sc.Wounds {
			ch.Wounds = append(ch.Wounds, Wound{sw.Location, sw.Severity, sw.Damage, sw.WoundNoun, sw.TickInflicted})
		}
		if sc.TargetZone != nil {
			r := Rectangle{sc.TargetZone.MinX, sc.TargetZone.MinY, sc.TargetZone.MaxX, sc.TargetZone.MaxY}
			ch.TargetZone = &r
		}
		u := Unit{
			ID: su.ID, Position: su.Position, Radius: su.Radius,
			CurrentFacing: su.CurrentFacing, TargetFacing: su.TargetFacing,
			CharacterID: su.CharacterID, Selected: su.Selected,
		}
		gs.registerUnit(&u, &ch)
		// registerUnit defaults CurrentHealth to max when zero, which would
		// wrongly resurrect an incapacitated character on reload.
		gs.characters[ch.ID].CurrentHealth = sc.CurrentHealth
		if w := gs.weapons[ch.RangedWeaponID]; w != nil && w.Ranged != nil {
			w.Ranged.Mode = sc.FiringMode
		}
	}
	return gs, nil
}
