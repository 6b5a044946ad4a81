package game

// WeaponKind tags which variant of Weapon a value holds. Modelled as a
// tagged sum type rather than an interface hierarchy, per spec §9: one
// struct with a Kind discriminant and a WeaponCommon core, matched on at
// decision points instead of dispatched through a virtual call.
type WeaponKind int

const (
	WeaponRanged WeaponKind = iota
	WeaponMelee
)

// WeaponState is one named node in a weapon's state-progression graph
// (spec §3, §4.3). Each weapon defines its own ordered list; there is no
// global enum of states.
type WeaponState struct {
	Name     string
	Next     string // next state name in the progression; "" if terminal
	TickCost int    // ticks to leave this state toward Next
}

// RenderState is the three-value projection the renderer consumes
// (spec §4.3).
type RenderState int

const (
	RenderHidden RenderState = iota
	RenderReady
	RenderAttacking
)

// renderProjection maps a weapon-state name to its renderer-facing
// projection (spec §4.3).
var renderProjection = map[string]RenderState{
	"holstered":        RenderHidden,
	"sheathed":         RenderHidden,
	"slung":            RenderHidden,
	"drawing":          RenderHidden,
	"unsheathing":      RenderHidden,
	"ready":            RenderReady,
	"reloading":        RenderReady,
	"pointedfromhip":   RenderReady,
	"grippinginholster": RenderReady,
	"melee_ready":      RenderReady,
	"aiming":           RenderAttacking,
	"firing":           RenderAttacking,
	"recovering":       RenderAttacking,
	"melee_attacking":  RenderAttacking,
}

// ProjectRenderState returns the renderer-facing projection of a weapon
// state name. Names without a projection (including weapon-specific states
// the loader accepts) project to RenderHidden rather than panicking.
func ProjectRenderState(stateName string) RenderState {
	if rs, ok := renderProjection[stateName]; ok {
		return rs
	}
	return RenderHidden
}

// FiringMode is a ranged weapon's trigger discipline (spec §3).
type FiringMode int

const (
	FiringSingle FiringMode = iota
	FiringBurst
	FiringFullAuto
)

// MeleeSubtype classifies a melee weapon's reach/handling class (spec §3).
type MeleeSubtype int

const (
	MeleeUnarmed MeleeSubtype = iota
	MeleeShort
	MeleeMedium
	MeleeLong
	MeleeTwoWeapon
)

// WeaponCommon holds the fields shared by every weapon, ranged or melee
// (spec §3 Weapon abstract).
type WeaponCommon struct {
	ID              WeaponID
	Name            string
	BaseDamage      float64
	WoundNoun       string // e.g. "bullet", "blade"; default handled by loader
	Length          float64
	TypeTag         string
	Accuracy        float64
	States          []WeaponState
	InitialState    string
	CombatSkillName string // optional; "" means no skill bonus applies
}

// StateByName looks up a declared state by name, or (zero, false) if this
// weapon has no such state.
func (c *WeaponCommon) StateByName(name string) (WeaponState, bool) {
	for _, s := range c.States {
		if s.Name == name {
			return s, true
		}
	}
	return WeaponState{}, false
}

// RangedData holds the fields unique to RangedWeapon (spec §3).
type RangedData struct {
	MaxRangeFeet      float64
	ProjectileVel     float64
	AmmoCount         int
	AmmoCapacity      int
	ReloadStateName   string
	ReloadCostTicks   int
	FiringDelayTicks  int
	Mode              FiringMode
	BurstSize         int
	AvailableModes    []FiringMode // empty means all three modes are legal
}

// SupportsMode reports whether m is one of this weapon's legal firing
// modes (spec §4.9 SET_FIRING_MODE: "validated against weapon's available
// modes").
func (r *RangedData) SupportsMode(m FiringMode) bool {
	if len(r.AvailableModes) == 0 {
		return true
	}
	for _, am := range r.AvailableModes {
		if am == m {
			return true
		}
	}
	return false
}

// MeleeData holds the fields unique to MeleeWeapon (spec §3).
type MeleeData struct {
	Subtype            MeleeSubtype
	ReachFeet          float64
	AttackSpeedTicks   int // ticks from "attacking" entry to impact
	AttackCooldown     int // ticks until next attack may begin
	DefendScore        int // 1-100
	DefenseCooldown    int // default 60 ticks
	ReadyingTicks      int
	OneHanded          bool
	DerivedFromRanged  bool
}

// Weapon is the tagged union of RangedWeapon/MeleeWeapon (spec §9).
type Weapon struct {
	Kind   WeaponKind
	Common WeaponCommon
	Ranged *RangedData // non-nil iff Kind == WeaponRanged
	Melee  *MeleeData  // non-nil iff Kind == WeaponMelee
}

// IsRanged reports whether this weapon is the ranged variant.
func (w *Weapon) IsRanged() bool { return w.Kind == WeaponRanged }

// IsMelee reports whether this weapon is the melee variant.
func (w *Weapon) IsMelee() bool { return w.Kind == WeaponMelee }

// DefaultState returns the weapon-specific resting state it resets to on
// mode switch or load (spec §4.3, §6.3): holstered/slung/sheathed.
func (w *Weapon) DefaultState() string {
	if w.Common.InitialState != "" {
		return w.Common.InitialState
	}
	if len(w.Common.States) == 0 {
		return ""
	}
	return w.Common.States[0].Name
}

// UnarmedWeapon is the melee weapon every Character has by default
// (spec §3: "melee weapon reference, 'Unarmed' default, never null").
func UnarmedWeapon() Weapon {
	return Weapon{
		Kind: WeaponMelee,
		Common: WeaponCommon{
			ID:         "unarmed",
			Name:       "Unarmed",
			BaseDamage: 2,
			WoundNoun:  "strike",
			Length:     0,
			TypeTag:    "unarmed",
			States: []WeaponState{
				{Name: "melee_ready", Next: "melee_attacking", TickCost: 0},
				{Name: "melee_attacking", Next: "melee_ready", TickCost: 20},
			},
			InitialState: "melee_ready",
		},
		Melee: &MeleeData{
			Subtype:          MeleeUnarmed,
			ReachFeet:        3,
			AttackSpeedTicks: 20,
			AttackCooldown:   30,
			DefendScore:      20,
			DefenseCooldown:  60,
			OneHanded:        true,
		},
	}
}
