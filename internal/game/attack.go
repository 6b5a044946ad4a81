package game

import "math"

// roll100 draws a uniform integer in [1,100] from the shared seeded RNG
// (spec §4.5.2, §5: "random draws are taken from a single seeded PRNG").
func (gs *GameState) roll100() int {
	return gs.rng.Intn(100) + 1
}

// canMeleeAttack reports whether ch may begin a new melee attack cycle:
// not incapacitated, not already attacking, and past its recovery window
// (spec §4.6).
func (gs *GameState) canMeleeAttack(ch *Character) bool {
	return !ch.Incapacitated && !ch.IsAttacking && gs.tick >= ch.MeleeRecoveryEnd
}

// beginAttack starts an attack cycle against target (spec §4.5.1). It is
// the shared entry point for both the manual ATTACK_TARGET command and
// auto-targeting selection. Returns false if the character cannot presently
// start a new attack; an incapacitated or hesitating character is refused
// without a log entry.
func (gs *GameState) beginAttack(u *Unit, ch *Character, target UnitID) bool {
	if ch.Incapacitated || !ch.CanInitiateAttack() {
		return false
	}
	ranged := ch.ActiveMode == ModeRanged && ch.HasRangedWeapon()
	if ranged {
		if ch.IsAttacking {
			gs.logEvent(gs.tick, u.ID, "combat", "attack_blocked", "ATTACK BLOCKED: already attacking")
			return false
		}
	} else if !gs.canMeleeAttack(ch) {
		gs.logEvent(gs.tick, u.ID, "combat", "attack_blocked", "ATTACK BLOCKED: melee recovery in progress")
		return false
	}

	gs.setCurrentTarget(u, ch, target)
	ch.IsAttacking = true

	goal := "firing"
	if !ranged {
		goal = "melee_attacking"
	}
	ch.setGoal(ranged, goal)
	gs.progressToward(u, ch, ranged, goal)
	return true
}

// setCurrentTarget installs target as ch's current target, caching the
// previous target and resetting accumulated aiming time on change, and
// cancelling any events self owns that were aimed at the previous target
// (spec §4.8 "On selection").
func (gs *GameState) setCurrentTarget(u *Unit, ch *Character, target UnitID) {
	if ch.CurrentTarget != nil && *ch.CurrentTarget == target {
		return
	}
	if ch.CurrentTarget != nil {
		prev := *ch.CurrentTarget
		ch.PreviousTarget = &prev
	}
	t := target
	ch.CurrentTarget = &t
	ch.AccumulatedAimTicks = 0
	gs.queue.CancelByOwner(u.ID, EventImpact)
}

// onEnterFiring handles ranged weapon-state entry into "firing": invokes
// the audio/visual hooks, draws this shot's RNG outcomes up front, and
// schedules the impact(s) a firing delay later (spec §4.5.1 step 3, §4.5.4).
// BURST and FULL_AUTO fire several shots in the same cycle, spaced five
// ticks apart.
func (gs *GameState) onEnterFiring(u *Unit, ch *Character) {
	w := gs.weapons[ch.RangedWeaponID]
	if w == nil || w.Ranged == nil || ch.CurrentTarget == nil {
		return
	}
	gs.hooks.invokeWeaponSound(w)
	gs.hooks.invokeMuzzleFlash(u.ID)

	shots := 1
	switch w.Ranged.Mode {
	case FiringBurst:
		shots = w.Ranged.BurstSize
		if shots <= 0 {
			shots = 3
		}
	case FiringFullAuto:
		shots = w.Ranged.BurstSize
		if shots <= 0 {
			shots = 6
		}
	}
	if w.Ranged.AmmoCount > 0 && shots > w.Ranged.AmmoCount {
		shots = w.Ranged.AmmoCount
	}
	if shots < 1 {
		shots = 1
	}

	target := *ch.CurrentTarget
	for i := 0; i < shots; i++ {
		gs.queue.Schedule(gs.tick+Tick(w.Ranged.FiringDelayTicks)+Tick(i*5), u.ID, EventImpact, EventParams{
			TargetUnit:   target,
			WeaponIsMain: true,
			HitRoll:      gs.roll100(),
			LocationRoll: gs.roll100(),
			BurstIndex:   i,
			BurstTotal:   shots,
		})
	}
	if w.Ranged.AmmoCount > 0 {
		w.Ranged.AmmoCount -= shots
	}
}

// onEnterMeleeAttacking handles melee weapon-state entry into
// "melee_attacking": invokes the sound hook and schedules a single impact
// attackSpeed ticks later, plus the defender's defense roll drawn up front
// alongside the attacker's (spec §4.5.1 step 4, §4.6).
func (gs *GameState) onEnterMeleeAttacking(u *Unit, ch *Character) {
	w := gs.weapons[ch.MeleeWeaponID]
	if w == nil || w.Melee == nil || ch.CurrentTarget == nil {
		return
	}
	gs.hooks.invokeWeaponSound(w)

	speed := w.Melee.AttackSpeedTicks
	isCounter := gs.inCounterAttackWindow(u.ID)
	if isCounter {
		speed = speed / 2
		delete(gs.counterWindowUnit, u.ID)
	}

	gs.queue.Schedule(gs.tick+Tick(speed), u.ID, EventImpact, EventParams{
		TargetUnit:      *ch.CurrentTarget,
		WeaponIsMain:    false,
		HitRoll:         gs.roll100(),
		LocationRoll:    gs.roll100(),
		DefenseRoll:     gs.roll100(),
		BurstIndex:      0,
		BurstTotal:      1,
		IsCounterAttack: isCounter,
	})
}

// hitChance computes the ranged or melee hit-chance percentage at impact
// time, clamped to [1,99] (spec §4.5.2). Melee uses the same shared formula
// minus the aiming-speed and range terms, which have no melee analogue.
func (gs *GameState) hitChance(attacker *Unit, ch *Character, target *Unit, tch *Character, w *Weapon, burstIndex int) int {
	chance := 50
	chance += statToModifier(ch.Stats.Dexterity)
	chance += int(math.Round(w.Common.Accuracy))
	chance += 5 * ch.SkillLevel(w.Common.CombatSkillName)
	chance += ch.WoundPenalty()
	chance += movingPenalty(attacker, ch)
	chance += movingPenalty(target, tch)

	if w.IsRanged() {
		aimSpeed := ch.AimingSpeed
		if burstIndex > 0 {
			// BURST/FULL_AUTO shots after the first are forced to QUICK
			// aiming discipline regardless of the character's chosen speed
			// (spec §4.5.2).
			aimSpeed = AimingQuick
		}
		chance += aimingSpeedModifier(aimSpeed, ch.AccumulatedAimTicks)

		distFeet := distanceFeet(attacker.Position, target.Position)
		if distFeet > w.Ranged.MaxRangeFeet {
			return 0 // beyond max range: automatic miss (spec §4.5.2)
		}
		chance += rangeModifier(distFeet, w.Ranged.MaxRangeFeet)
	}

	return clampInt(chance, 1, 99)
}

// movingPenalty applies movementPenalty only while u is actually travelling
// toward a destination (spec §4.5.2: "attacker moving reduces by..."/"target
// movement penalty... based on target speed") — a unit merely configured for
// WALK/JOG/RUN but currently stationary contributes nothing.
func movingPenalty(u *Unit, ch *Character) int {
	mt := ch.EffectiveMovement()
	if !u.IsMoving(movementSpeedFPS[mt]) {
		return 0
	}
	return movementPenalty(mt)
}

// distanceFeet returns the distance between two world-space points in feet.
func distanceFeet(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy) / PixelsPerFoot
}

// edgeDistancePixels returns the edge-to-edge distance between two units,
// i.e. centre distance minus both radii (spec §4.5.5). Negative when
// overlapping.
func edgeDistancePixels(a *Unit, b *Unit) float64 {
	dx := a.Position.X - b.Position.X
	dy := a.Position.Y - b.Position.Y
	return math.Hypot(dx, dy) - a.Radius - b.Radius
}

// inMeleeRange reports whether attacker can reach target with the given
// melee weapon at the current moment (spec §4.5.5).
func inMeleeRange(attacker *Unit, target *Unit, w *Weapon) bool {
	if w.Melee == nil {
		return false
	}
	return edgeDistancePixels(attacker, target) <= w.Melee.ReachFeet*PixelsPerFoot
}
