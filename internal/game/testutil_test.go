package game

// Shared scenario-building helpers for the test files in this package,
// grounded on the teacher's test_harness.go functional-options pattern —
// here expressed as plain constructors rather than GameOptions, since most
// tests want direct access to the built Weapon/Character before handing it
// to NewGameState.

// testColt returns a ranged pistol matching spec §8 scenario S1: base
// damage 6, accuracy 15, max range 210ft, firing delay 8 ticks, a six-state
// progression from holstered through aiming to firing and back.
func testColt(ammo int) Weapon {
	return Weapon{
		Kind: WeaponRanged,
		Common: WeaponCommon{
			ID:         "colt",
			Name:       "Colt Peacemaker",
			BaseDamage: 6,
			WoundNoun:  "bullet",
			Accuracy:   15,
			States: []WeaponState{
				{Name: "holstered", Next: "drawing", TickCost: 5},
				{Name: "drawing", Next: "ready", TickCost: 10},
				{Name: "ready", Next: "aiming", TickCost: 10},
				{Name: "aiming", Next: "firing", TickCost: 75},
				{Name: "firing", Next: "recovering", TickCost: 5},
				{Name: "recovering", Next: "ready", TickCost: 10},
			},
			InitialState:    "holstered",
			CombatSkillName: "pistol",
		},
		Ranged: &RangedData{
			MaxRangeFeet:     210,
			ProjectileVel:    2000,
			AmmoCount:        ammo,
			AmmoCapacity:     100,
			FiringDelayTicks: 8,
			Mode:             FiringSingle,
			BurstSize:        3,
		},
	}
}

// testDagger returns a melee weapon matching spec §8 scenario S5.
func testDagger() Weapon {
	return Weapon{
		Kind: WeaponMelee,
		Common: WeaponCommon{
			ID:         "dagger",
			Name:       "Steel Dagger",
			BaseDamage: 6,
			WoundNoun:  "blade",
			States: []WeaponState{
				{Name: "melee_ready", Next: "melee_attacking", TickCost: 0},
				{Name: "melee_attacking", Next: "melee_ready", TickCost: 60},
			},
			InitialState: "melee_ready",
		},
		Melee: &MeleeData{
			Subtype:          MeleeShort,
			ReachFeet:        4,
			AttackSpeedTicks: 60,
			AttackCooldown:   60,
			DefendScore:      20,
			DefenseCooldown:  60,
			OneHanded:        true,
		},
	}
}

type testCharOpt func(*Character)

func withSkill(name string, level int) testCharOpt {
	return func(c *Character) { c.Skills[name] = level }
}

func withRangedWeapon(id WeaponID) testCharOpt {
	return func(c *Character) { c.RangedWeaponID = id }
}

func withMeleeWeapon(id WeaponID) testCharOpt {
	return func(c *Character) { c.MeleeWeaponID = id }
}

// testChar builds a Character with the given stats; Health doubles as max
// health and CurrentHealth (spec §3).
func testChar(id CharacterID, faction FactionID, dex, str, reflexes, coolness, health int, opts ...testCharOpt) Character {
	c := Character{
		ID:      id,
		Name:    "test",
		Faction: faction,
		Stats: Stats{
			Dexterity: dex,
			Strength:  str,
			Reflexes:  reflexes,
			Coolness:  coolness,
			Health:    health,
		},
		CurrentHealth: health,
		Skills:        make(map[string]int),
		Movement:      MovementCrawl, // stationary-duel default: no movement penalty
		AimingSpeed:   AimingNormal,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}
