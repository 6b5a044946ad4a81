package game

import "testing"

// TestHitChanceMatchesScenarioS1Bounds hand-verifies the formula against
// spec §8 scenario S1: two duelists ten feet apart with a Colt Peacemaker,
// dexterity 77, accuracy 15. Unit A carries pistol skill 3 and should clear
// a hit chance of at least 70; Unit B, untrained, should clear at least 55.
func TestHitChanceMatchesScenarioS1Bounds(t *testing.T) {
	gs := NewGameState(WithSeed(42), WithWeapon(testColt(100)))
	colt := gs.Weapon("colt")

	a := testChar(1, 1, 77, 35, 54, 82, 87, withSkill("pistol", 3), withRangedWeapon("colt"))
	b := testChar(2, 2, 77, 35, 54, 82, 87, withSkill("pistol", 0), withRangedWeapon("colt"))
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 70, Y: 0}, Radius: UnitRadius, CharacterID: 2} // 10ft at 7px/ft
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	chA := gs.CharacterOf(1)
	chB := gs.CharacterOf(2)

	chanceA := gs.hitChance(ua, chA, ub, chB, colt, 0)
	chanceB := gs.hitChance(ub, chB, ua, chA, colt, 0)

	if chanceA < 70 {
		t.Fatalf("unit A hit chance = %d, want >= 70 (spec S1)", chanceA)
	}
	if chanceB < 55 {
		t.Fatalf("unit B hit chance = %d, want >= 55 (spec S1)", chanceB)
	}
	if chanceA <= chanceB {
		t.Fatalf("unit A (skill 3) should out-roll unit B (skill 0): A=%d B=%d", chanceA, chanceB)
	}
}

func TestHitChancePenalisesShooterMovement(t *testing.T) {
	gs := NewGameState(WithSeed(1), WithWeapon(testColt(100)))
	colt := gs.Weapon("colt")

	a := testChar(1, 1, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	b := testChar(2, 2, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 70, Y: 0}, Radius: UnitRadius, CharacterID: 2}
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	chA, chB := gs.CharacterOf(1), gs.CharacterOf(2)
	stationary := gs.hitChance(ua, chA, ub, chB, colt, 0)
	chA.Movement = MovementRun
	dest := Point{X: 7000, Y: 0} // far enough that one tick's travel never closes the gap
	ua.Destination = &dest
	moving := gs.hitChance(ua, chA, ub, chB, colt, 0)
	if moving >= stationary {
		t.Fatalf("firing while running should be worse: stationary=%d moving=%d", stationary, moving)
	}
	if stationary-moving != 30 {
		t.Fatalf("expected exactly the RUN penalty of 30 points, got delta %d", stationary-moving)
	}
}

// TestHitChanceNoMovementPenaltyWhenStationary covers the maintainer's
// correction to spec §4.5.2: a character merely configured for a fast
// movement type but not currently travelling (no destination, or already
// within one tick's arrival) contributes zero movement penalty.
func TestHitChanceNoMovementPenaltyWhenStationary(t *testing.T) {
	gs := NewGameState(WithSeed(1), WithWeapon(testColt(100)))
	colt := gs.Weapon("colt")

	a := testChar(1, 1, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	b := testChar(2, 2, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	a.Movement = MovementRun
	b.Movement = MovementRun
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 70, Y: 0}, Radius: UnitRadius, CharacterID: 2}
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	chA, chB := gs.CharacterOf(1), gs.CharacterOf(2)
	noDestination := gs.hitChance(ua, chA, ub, chB, colt, 0)

	arrived := Point{X: 0.001, Y: 0}
	ua.Destination = &arrived // within one tick's travel: not "moving"
	almostArrived := gs.hitChance(ua, chA, ub, chB, colt, 0)

	if noDestination != almostArrived {
		t.Fatalf("expected no movement penalty for a RUN-configured but stationary unit: got %d vs %d", noDestination, almostArrived)
	}
}

func TestHitChanceBeyondMaxRangeIsAutomaticMiss(t *testing.T) {
	gs := NewGameState(WithSeed(1), WithWeapon(testColt(100)))
	colt := gs.Weapon("colt")

	a := testChar(1, 1, 90, 50, 50, 50, 80, withRangedWeapon("colt"))
	b := testChar(2, 2, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 2000, Y: 0}, Radius: UnitRadius, CharacterID: 2} // far beyond 210ft
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	if chance := gs.hitChance(ua, gs.CharacterOf(1), ub, gs.CharacterOf(2), colt, 0); chance != 0 {
		t.Fatalf("beyond max range hitChance = %d, want 0 (automatic miss)", chance)
	}
}

func TestInMeleeRangeRespectsReachAndRadii(t *testing.T) {
	dagger := testDagger()
	attacker := &Unit{Position: Point{X: 0, Y: 0}, Radius: UnitRadius}
	near := &Unit{Position: Point{X: 40, Y: 0}, Radius: UnitRadius} // edge gap ~19px ~2.7ft, within 4ft reach
	far := &Unit{Position: Point{X: 300, Y: 0}, Radius: UnitRadius}

	if !inMeleeRange(attacker, near, &dagger) {
		t.Fatalf("expected target within dagger reach to be in range")
	}
	if inMeleeRange(attacker, far, &dagger) {
		t.Fatalf("expected distant target to be out of dagger reach")
	}
}

func TestBurstFollowUpShotsForceQuickAiming(t *testing.T) {
	gs := NewGameState(WithSeed(1), WithWeapon(testColt(100)))
	colt := gs.Weapon("colt")
	a := testChar(1, 1, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	b := testChar(2, 2, 50, 50, 50, 50, 80, withRangedWeapon("colt"))
	ua := &Unit{ID: 1, Position: Point{X: 0, Y: 0}, Radius: UnitRadius, CharacterID: 1}
	ub := &Unit{ID: 2, Position: Point{X: 70, Y: 0}, Radius: UnitRadius, CharacterID: 2}
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	chA, chB := gs.CharacterOf(1), gs.CharacterOf(2)
	chA.AimingSpeed = AimingCareful
	firstShot := gs.hitChance(ua, chA, ub, chB, colt, 0)
	followUpShot := gs.hitChance(ua, chA, ub, chB, colt, 1)
	if followUpShot >= firstShot {
		t.Fatalf("burst follow-up shot should drop to QUICK aiming discipline: first=%d followUp=%d", firstShot, followUpShot)
	}
}
