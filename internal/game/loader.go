package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// weaponStateDoc is the on-disk shape of one WeaponState entry
// (spec §6.1 Loader).
type weaponStateDoc struct {
	Name     string `json:"name"`
	Next     string `json:"next"`
	TickCost int    `json:"tickCost"`
}

// weaponDoc is the on-disk shape of a weapon definition, covering both
// ranged and melee fields; the loader decides which based on Kind
// (spec §3 Weapon/RangedWeapon/MeleeWeapon, §6.1).
type weaponDoc struct {
	ID              string           `json:"id"`
	Kind            string           `json:"kind"` // "ranged" or "melee"
	Name            string           `json:"name"`
	BaseDamage      float64          `json:"baseDamage"`
	WoundNoun       string           `json:"woundNoun"`
	Length          float64          `json:"length"`
	TypeTag         string           `json:"typeTag"`
	Accuracy        float64          `json:"accuracy"`
	States          []weaponStateDoc `json:"states"`
	InitialState    string           `json:"initialState"`
	CombatSkillName string           `json:"combatSkill"`

	// Ranged-only.
	MaxRangeFeet     float64  `json:"maxRangeFeet"`
	ProjectileVel    float64  `json:"projectileVelocity"`
	AmmoCount        int      `json:"ammoCount"`
	AmmoCapacity     int      `json:"ammoCapacity"`
	ReloadStateName  string   `json:"reloadState"`
	ReloadCostTicks  int      `json:"reloadCostTicks"`
	FiringDelayTicks int      `json:"firingDelayTicks"`
	FiringMode       string   `json:"firingMode"`
	BurstSize        int      `json:"burstSize"`
	AvailableModes   []string `json:"availableModes"`

	// Melee-only.
	MeleeSubtype      string  `json:"meleeSubtype"`
	ReachFeet         float64 `json:"reachFeet"`
	AttackSpeedTicks  int     `json:"attackSpeedTicks"`
	AttackCooldown    int     `json:"attackCooldown"`
	DefendScore       int     `json:"defendScore"`
	DefenseCooldown   int     `json:"defenseCooldown"`
	ReadyingTicks     int     `json:"readyingTicks"`
	OneHanded         bool    `json:"oneHanded"`
	DerivedFromRanged bool    `json:"derivedFromRanged"`
}

// characterDoc is the on-disk shape of a character/unit spawn record
// (spec §6.1 Loader).
type characterDoc struct {
	Name           string         `json:"name"`
	Faction        int            `json:"faction"`
	Dexterity      int            `json:"dexterity"`
	Strength       int            `json:"strength"`
	Reflexes       int            `json:"reflexes"`
	Coolness       int            `json:"coolness"`
	Health         int            `json:"health"`
	Archetype      string         `json:"archetype"`
	Handedness     string         `json:"handedness"`
	Skills         map[string]int `json:"skills"`
	RangedWeaponID string         `json:"rangedWeapon"`
	MeleeWeaponID  string         `json:"meleeWeapon"`
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	Facing         *float64       `json:"facing"`
}

// alignmentOverrideDoc declares one non-default faction-pair alignment
// (spec §3 Faction).
type alignmentOverrideDoc struct {
	A           int    `json:"a"`
	B           int    `json:"b"`
	Alignment   string `json:"alignment"`
}

// sceneDoc is the full on-disk scenario document: weapons, characters,
// faction alignment overrides, and a theme identifier (spec §6.1, §6.4).
type sceneDoc struct {
	Theme       string                 `json:"theme"`
	Weapons     []weaponDoc            `json:"weapons"`
	Characters  []characterDoc         `json:"characters"`
	Alignments  []alignmentOverrideDoc `json:"alignments"`
}

// LoadScene reads a scenario document from path and constructs a fully
// populated GameState (spec §6.1: "Loader that materialises weapons,
// characters... the core reads these as immutable data"). Grounded on the
// WargamesTactics army/loader.go idiom: os.ReadFile + json.Unmarshal, wrapped in
// fmt.Errorf for diagnostics, fail-fast on any malformed record (spec §7:
// "load fails fast with a diagnostic identifying the offending record").
func LoadScene(path string, opts ...GameOption) (*GameState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openfields2: read scene %q: %w", path, err)
	}
	var doc sceneDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("openfields2: parse scene %q: %w", path, err)
	}

	weapons := make(map[string]Weapon, len(doc.Weapons))
	var weaponOpts []GameOption
	for i, wd := range doc.Weapons {
		w, err := buildWeapon(wd)
		if err != nil {
			return nil, fmt.Errorf("openfields2: scene %q weapon[%d] %q: %w", path, i, wd.ID, err)
		}
		weapons[wd.ID] = w
		weaponOpts = append(weaponOpts, WithWeapon(w))
	}

	for i, ad := range doc.Alignments {
		al, err := parseAlignment(ad.Alignment)
		if err != nil {
			return nil, fmt.Errorf("openfields2: scene %q alignment[%d]: %w", path, i, err)
		}
		weaponOpts = append(weaponOpts, WithAlignment(FactionID(ad.A), FactionID(ad.B), al))
	}

	gs := NewGameState(append(weaponOpts, opts...)...)

	for i, cd := range doc.Characters {
		ch, err := buildCharacter(cd, weapons)
		if err != nil {
			return nil, fmt.Errorf("openfields2: scene %q character[%d] %q: %w", path, i, cd.Name, err)
		}
		facing := 0.0
		if cd.Facing != nil {
			facing = *cd.Facing
		}
		gs.CreateUnit(ch, Point{X: cd.X, Y: cd.Y}, facing)
	}

	return gs, nil
}

func buildWeapon(d weaponDoc) (Weapon, error) {
	if d.ID == "" {
		return Weapon{}, fmt.Errorf("missing id")
	}
	if len(d.States) == 0 {
		return Weapon{}, fmt.Errorf("weapon %q declares no states", d.ID)
	}
	woundNoun := d.WoundNoun
	if woundNoun == "" {
		woundNoun = "projectile" // spec §6.1 default
	}
	common := WeaponCommon{
		ID:              WeaponID(d.ID),
		Name:            d.Name,
		BaseDamage:      d.BaseDamage,
		WoundNoun:       woundNoun,
		Length:          d.Length,
		TypeTag:         d.TypeTag,
		Accuracy:        d.Accuracy,
		InitialState:    d.InitialState,
		CombatSkillName: d.CombatSkillName,
	}
	for _, sd := range d.States {
		common.States = append(common.States, WeaponState{Name: sd.Name, Next: sd.Next, TickCost: sd.TickCost})
	}
	if d.InitialState != "" {
		if _, ok := common.StateByName(d.InitialState); !ok {
			return Weapon{}, fmt.Errorf("initialState %q is not a declared state", d.InitialState)
		}
	}
	for _, s := range common.States {
		if s.Next == "" {
			continue
		}
		if _, ok := common.StateByName(s.Next); !ok {
			return Weapon{}, fmt.Errorf("state %q transitions to undeclared state %q", s.Name, s.Next)
		}
	}

	switch d.Kind {
	case "ranged":
		mode, err := parseFiringMode(d.FiringMode)
		if err != nil {
			return Weapon{}, err
		}
		var available []FiringMode
		for _, m := range d.AvailableModes {
			fm, err := parseFiringMode(m)
			if err != nil {
				return Weapon{}, err
			}
			available = append(available, fm)
		}
		burst := d.BurstSize
		if burst == 0 {
			burst = 3 // spec §3: "burst size (default 3)"
		}
		return Weapon{
			Kind:   WeaponRanged,
			Common: common,
			Ranged: &RangedData{
				MaxRangeFeet:     d.MaxRangeFeet,
				ProjectileVel:    d.ProjectileVel,
				AmmoCount:        d.AmmoCount,
				AmmoCapacity:     d.AmmoCapacity,
				ReloadStateName:  d.ReloadStateName,
				ReloadCostTicks:  d.ReloadCostTicks,
				FiringDelayTicks: d.FiringDelayTicks,
				Mode:             mode,
				BurstSize:        burst,
				AvailableModes:   available,
			},
		}, nil
	case "melee":
		subtype := parseMeleeSubtype(d.MeleeSubtype)
		defenseCooldown := d.DefenseCooldown
		if defenseCooldown == 0 {
			defenseCooldown = 60 // spec §6.1 default
		}
		return Weapon{
			Kind:   WeaponMelee,
			Common: common,
			Melee: &MeleeData{
				Subtype:           subtype,
				ReachFeet:         d.ReachFeet,
				AttackSpeedTicks:  d.AttackSpeedTicks,
				AttackCooldown:    d.AttackCooldown,
				DefendScore:       d.DefendScore,
				DefenseCooldown:   defenseCooldown,
				ReadyingTicks:     d.ReadyingTicks,
				OneHanded:         d.OneHanded,
				DerivedFromRanged: d.DerivedFromRanged,
			},
		}, nil
	default:
		return Weapon{}, fmt.Errorf("unknown weapon kind %q (want \"ranged\" or \"melee\")", d.Kind)
	}
}

func buildCharacter(d characterDoc, weapons map[string]Weapon) (Character, error) {
	if d.Health <= 0 {
		return Character{}, fmt.Errorf("health must be positive")
	}
	ranged := WeaponID(d.RangedWeaponID)
	if ranged != "" {
		if _, ok := weapons[d.RangedWeaponID]; !ok {
			return Character{}, fmt.Errorf("references unknown ranged weapon %q", d.RangedWeaponID)
		}
	}
	melee := WeaponID(d.MeleeWeaponID)
	if melee == "" {
		melee = "unarmed" // spec §3: "melee weapon reference, 'Unarmed' default, never null"
	} else if _, ok := weapons[d.MeleeWeaponID]; !ok {
		return Character{}, fmt.Errorf("references unknown melee weapon %q", d.MeleeWeaponID)
	}
	hand, err := parseHandedness(d.Handedness)
	if err != nil {
		return Character{}, err
	}
	skills := map[string]int{}
	for name, lvl := range d.Skills {
		if lvl < 0 || lvl > 9 {
			return Character{}, fmt.Errorf("skill %q level %d out of range [0,9]", name, lvl)
		}
		skills[name] = lvl
	}
	return Character{
		Name:           d.Name,
		Faction:        FactionID(d.Faction),
		Stats:          Stats{Dexterity: d.Dexterity, Strength: d.Strength, Reflexes: d.Reflexes, Coolness: d.Coolness, Health: d.Health},
		Archetype:      d.Archetype,
		Handedness:     hand,
		Skills:         skills,
		RangedWeaponID: ranged,
		MeleeWeaponID:  melee,
		ActiveMode:     ModeRanged,
		Movement:       MovementWalk,
		AimingSpeed:    AimingNormal,
		HoldState:      "aiming",
	}, nil
}

func parseHandedness(s string) (Handedness, error) {
	switch s {
	case "", "RIGHT":
		return HandRight, nil
	case "LEFT":
		return HandLeft, nil
	case "AMBIDEXTROUS":
		return HandAmbidextrous, nil
	default:
		return 0, fmt.Errorf("unknown handedness %q", s)
	}
}

func parseFiringMode(s string) (FiringMode, error) {
	switch s {
	case "", "SINGLE":
		return FiringSingle, nil
	case "BURST":
		return FiringBurst, nil
	case "FULL_AUTO":
		return FiringFullAuto, nil
	default:
		return 0, fmt.Errorf("unknown firing mode %q", s)
	}
}

func parseMeleeSubtype(s string) MeleeSubtype {
	switch s {
	case "SHORT":
		return MeleeShort
	case "MEDIUM":
		return MeleeMedium
	case "LONG":
		return MeleeLong
	case "TWO_WEAPON":
		return MeleeTwoWeapon
	default:
		return MeleeUnarmed
	}
}

func parseAlignment(s string) (Alignment, error) {
	switch s {
	case "ALLIED":
		return AlignmentAllied, nil
	case "NEUTRAL":
		return AlignmentNeutral, nil
	case "HOSTILE":
		return AlignmentHostile, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}
