package game

import "testing"

func TestAttackTargetRejectsSelfAndNonHostileAndIncapacitated(t *testing.T) {
	gs := NewGameState(WithSeed(1), WithWeapon(testDagger()))
	a := testChar(1, 1, 50, 50, 50, 50, 80, withMeleeWeapon("dagger"))
	ally := testChar(2, 1, 50, 50, 50, 50, 80, withMeleeWeapon("dagger"))
	downed := testChar(3, 2, 50, 50, 50, 50, 80, withMeleeWeapon("dagger"))
	downed.Incapacitated = true
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	uAlly := &Unit{ID: 2, Position: Point{X: 10, Y: 0}, Radius: UnitRadius, CharacterID: 2}
	uDowned := &Unit{ID: 3, Position: Point{X: 10, Y: 0}, Radius: UnitRadius, CharacterID: 3}
	gs.registerUnit(ua, &a)
	gs.registerUnit(uAlly, &ally)
	gs.registerUnit(uDowned, &downed)

	if r := gs.AttackTarget(1, 1); r.Accepted {
		t.Fatalf("expected self-attack to be rejected")
	}
	if r := gs.AttackTarget(1, 2); r.Accepted {
		t.Fatalf("expected attack on a same-faction unit to be rejected")
	}
	if r := gs.AttackTarget(1, 3); r.Accepted {
		t.Fatalf("expected attack on an incapacitated target to be rejected")
	}
	if r := gs.AttackTarget(1, 999); r.Accepted {
		t.Fatalf("expected attack on a nonexistent target to be rejected")
	}
}

// TestCeaseFireThenResumePreservesAimingProgress covers spec §8 scenario
// S4: cancelling a ranged attack mid-aim preserves the accumulated
// VERY_CAREFUL aiming ticks, and no impact occurs during the gap.
func TestCeaseFireThenResumePreservesAimingProgress(t *testing.T) {
	gs := NewGameState(WithSeed(3), WithWeapon(testColt(100)))
	a := testChar(1, 1, 60, 50, 50, 50, 80, withRangedWeapon("colt"))
	b := testChar(2, 2, 60, 50, 50, 50, 80, withRangedWeapon("colt"))
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 70, Y: 0}, Radius: UnitRadius, CharacterID: 2}
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	ch := gs.CharacterOf(1)
	ch.RangedState = "aiming"
	ch.RangedGoal = "firing"
	ch.IsAttacking = true
	target := UnitID(2)
	ch.CurrentTarget = &target
	ch.AccumulatedAimTicks = 90

	res := gs.CeaseFire(1)
	if !res.Accepted {
		t.Fatalf("expected CEASE_FIRE to be accepted")
	}
	if ch.IsAttacking {
		t.Fatalf("expected IsAttacking to clear on cease-fire")
	}
	if ch.CurrentTarget == nil || *ch.CurrentTarget != 2 {
		t.Fatalf("expected currentTarget to survive cease-fire")
	}
	if ch.AccumulatedAimTicks != 90 {
		t.Fatalf("expected accumulated aiming ticks to survive cease-fire untouched, got %d", ch.AccumulatedAimTicks)
	}

	gs.Run(50) // the gap: no impact should occur while ceased
	for _, e := range gs.Log().Filter("combat", "") {
		if e.Key == "hit" || e.Key == "miss" {
			t.Fatalf("unexpected combat resolution during the cease-fire gap: %+v", e)
		}
	}
	if ch.AccumulatedAimTicks != 90 {
		t.Fatalf("accumulated aiming ticks drifted during the gap: %d", ch.AccumulatedAimTicks)
	}

	if r := gs.AttackTarget(1, 2); !r.Accepted {
		t.Fatalf("expected resuming the attack to be accepted")
	}
	if ch.AccumulatedAimTicks != 90 {
		t.Fatalf("expected resumed attack to keep the preserved aiming counter, got %d", ch.AccumulatedAimTicks)
	}
}

// TestMeleeAttackBlockedDuringRecoveryWindow covers spec §8 scenario S5:
// a second ATTACK_TARGET issued before the melee recovery window elapses
// is rejected, and the attacker may attack again once it expires (attack
// speed and cooldown both 60 ticks, so the window runs from impact to
// impact+60).
func TestMeleeAttackBlockedDuringRecoveryWindow(t *testing.T) {
	gs := NewGameState(WithSeed(5), WithWeapon(testDagger()))
	a := testChar(1, 1, 50, 50, 50, 50, 80, withMeleeWeapon("dagger"))
	b := testChar(2, 2, 50, 50, 50, 50, 80, withMeleeWeapon("dagger"))
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 10, Y: 0}, Radius: UnitRadius, CharacterID: 2}
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	ch := gs.CharacterOf(1)
	ch.ActiveMode = ModeMelee

	if r := gs.AttackTarget(1, 2); !r.Accepted {
		t.Fatalf("expected first attack to be accepted")
	}

	for len(gs.Log().Filter("combat", "hit")) == 0 && len(gs.Log().Filter("combat", "miss")) == 0 && gs.Tick() < 200 {
		gs.Run(1)
	}
	resolved := len(gs.Log().Filter("combat", "hit")) > 0 || len(gs.Log().Filter("combat", "miss")) > 0
	if !resolved {
		t.Fatalf("expected a melee impact to have resolved within 200 ticks")
	}
	recoveryEnd := ch.MeleeRecoveryEnd
	if recoveryEnd <= gs.Tick() {
		t.Fatalf("expected recovery end to lie in the future right after impact, got end=%d at tick=%d", recoveryEnd, gs.Tick())
	}

	if r := gs.AttackTarget(1, 2); r.Accepted {
		t.Fatalf("expected a second attack during the recovery window (tick %d, ends %d) to be blocked", gs.Tick(), recoveryEnd)
	}

	gs.Run(int(recoveryEnd - gs.Tick()))
	if r := gs.AttackTarget(1, 2); !r.Accepted {
		t.Fatalf("expected the attack at tick %d to be accepted once recovery elapses (end was %d)", gs.Tick(), recoveryEnd)
	}
}

func TestToggleCombatModeResetsWeaponStateAndHoldState(t *testing.T) {
	gs := NewGameState(WithSeed(1), WithWeapon(testColt(100)), WithWeapon(testDagger()))
	a := testChar(1, 1, 50, 50, 50, 50, 80, withRangedWeapon("colt"), withMeleeWeapon("dagger"))
	u := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	gs.registerUnit(u, &a)

	ch := gs.CharacterOf(1)
	ch.HoldState = "firing" // deliberately inconsistent, to prove the reset
	if r := gs.ToggleCombatMode(1); !r.Accepted {
		t.Fatalf("expected TOGGLE_COMBAT_MODE to be accepted")
	}
	if ch.ActiveMode != ModeMelee {
		t.Fatalf("expected active mode to flip to MELEE")
	}
	if ch.HoldState != "aiming" {
		t.Fatalf("expected hold state to reset to aiming, got %q", ch.HoldState)
	}
	if ch.RangedState != "holstered" || ch.MeleeState != "melee_ready" {
		t.Fatalf("expected both weapon slots reset to their default states, got ranged=%q melee=%q", ch.RangedState, ch.MeleeState)
	}
}

func TestSetFiringModeRejectsUnsupportedMode(t *testing.T) {
	w := testColt(100)
	w.Ranged.AvailableModes = []FiringMode{FiringSingle}
	gs := NewGameState(WithSeed(1), WithWeapon(w))
	a := testChar(1, 1, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	u := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	gs.registerUnit(u, &a)

	if r := gs.SetFiringMode(1, FiringBurst); r.Accepted {
		t.Fatalf("expected BURST to be rejected when not in the weapon's available modes")
	}
	if r := gs.SetFiringMode(1, FiringSingle); !r.Accepted {
		t.Fatalf("expected SINGLE to be accepted")
	}
}
