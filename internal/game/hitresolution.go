package game

import (
	"fmt"
	"math"
)

// handleImpact resolves a scheduled EventImpact: range/defense checks for
// melee, hit-chance computation, wound application, and the bookkeeping
// that closes out or continues the attack cycle (spec §4.5.1 step 5,
// §4.5.3, §4.5.4, §4.5.5, §4.6).
func (gs *GameState) handleImpact(u *Unit, ch *Character, e *ScheduledEvent) {
	target := gs.units[e.Params.TargetUnit]
	if target == nil || gs.characters[target.CharacterID] == nil {
		gs.finishAttackCycle(u, ch, e)
		return
	}
	tch := gs.characters[target.CharacterID]
	ranged := e.Params.WeaponIsMain
	w := gs.weaponFor(ch, ranged)
	if w == nil {
		gs.finishAttackCycle(u, ch, e)
		return
	}

	if !ranged {
		if !inMeleeRange(u, target, w) {
			gs.logEvent(gs.tick, u.ID, "combat", "miss", fmt.Sprintf("%s misses; %s is out of reach", w.Common.Name, tch.Name))
			gs.finishAttackCycle(u, ch, e)
			return
		}
		if !e.Params.IsCounterAttack && gs.attemptDefense(u, ch, target, tch, w, e) {
			gs.finishAttackCycle(u, ch, e)
			return
		}
	}

	if tch.Incapacitated {
		gs.finishAttackCycle(u, ch, e)
		return
	}

	chance := gs.hitChance(u, ch, target, tch, w, e.Params.BurstIndex)
	ch.statsFor(ranged).AttacksAttempted++

	if e.Params.HitRoll > chance {
		gs.logEvent(gs.tick, u.ID, "combat", "miss", fmt.Sprintf("%s fires at %s and misses", w.Common.Name, tch.Name))
		gs.finishAttackCycle(u, ch, e)
		return
	}

	margin := chance - e.Params.HitRoll
	loc := rollBodyLocation(e.Params.LocationRoll)
	sev := severityFromMargin(margin)
	dmg := gs.computeDamage(w, ch, sev, loc)

	wound := Wound{
		Location:      loc,
		Severity:      sev,
		Damage:        dmg,
		WoundNoun:     w.Common.WoundNoun,
		TickInflicted: gs.tick,
	}
	gs.applyWound(u, ch, target, tch, w, wound, ranged)
	gs.finishAttackCycle(u, ch, e)
}

// statsFor returns the combat-type statistics counter for ranged or melee.
func (ch *Character) statsFor(ranged bool) *CombatStats {
	if ranged {
		return &ch.RangedStats
	}
	return &ch.MeleeStats
}

// computeDamage applies severity multiplier and (melee only) strength bonus
// to the weapon's base damage (spec §4.5.3).
func (gs *GameState) computeDamage(w *Weapon, ch *Character, sev Severity, loc BodyLocation) int {
	base := w.Common.BaseDamage
	if w.IsMelee() {
		base += float64(statToModifier(ch.Stats.Strength))
	}
	dmg := base * severityDamageMul(sev)
	if sev == SeverityCritical && loc == LocationChest {
		dmg *= 1.25
	}
	d := int(math.Round(dmg))
	if sev != SeverityScratch && d < 1 {
		d = 1
	}
	if d < 0 {
		d = 0
	}
	return d
}

// applyWound appends the wound, deducts health, updates combat statistics,
// checks for incapacitation, and emits the textual combat message
// (spec §4.5.4).
func (gs *GameState) applyWound(attacker *Unit, ch *Character, target *Unit, tch *Character, w *Weapon, wound Wound, ranged bool) {
	tch.Wounds = append(tch.Wounds, wound)
	tch.CurrentHealth -= wound.Damage
	if tch.CurrentHealth < 0 {
		tch.CurrentHealth = 0
	}
	ch.statsFor(ranged).AttacksSuccessful++
	ch.statsFor(ranged).WoundsInflicted++

	var msg string
	if ranged {
		msg = fmt.Sprintf("%s fires; %s hits %s in the %s causing a %s wound",
			w.Common.Name, w.Common.WoundNoun, tch.Name, wound.Location.String(), wound.Severity.String())
	} else {
		msg = fmt.Sprintf("%s strikes %s in the %s causing a %s wound",
			w.Common.Name, tch.Name, wound.Location.String(), wound.Severity.String())
	}
	gs.logEvent(gs.tick, attacker.ID, "combat", "hit", msg)

	if tch.CurrentHealth <= 0 || isIncapacitatingWound(wound) {
		gs.incapacitate(target, tch)
		return
	}
	if wound.Severity != SeverityScratch {
		ticks := woundHesitationTicks(wound.Severity)
		if ticks > tch.WoundHesitationRemaining {
			tch.WoundHesitationRemaining = ticks
		}
	}
}

// incapacitate marks tch down, cancels its pending attack events, and logs
// the event (spec §4.5.4, §3 invariant 2).
func (gs *GameState) incapacitate(u *Unit, ch *Character) {
	if ch.Incapacitated {
		return
	}
	ch.Incapacitated = true
	ch.IsAttacking = false
	ch.CurrentHealth = 0
	gs.queue.CancelByOwner(u.ID)
	gs.logEvent(gs.tick, u.ID, "combat", "incapacitated", fmt.Sprintf("%s is incapacitated", ch.Name))
	gs.broadcastBraveryCheck(u, ch)
}

// braveryWitnessRangeFeet is how close a hostile must be to roll a bravery
// check on witnessing an incapacitation (spec §4.7).
const braveryWitnessRangeFeet = 30

// broadcastBraveryCheck rolls a bravery check for every hostile unit within
// braveryWitnessRangeFeet of the unit that just fell, once per witness per
// fallen unit (spec §4.7).
func (gs *GameState) broadcastBraveryCheck(fallen *Unit, fallenCh *Character) {
	for _, id := range gs.orderedUnitIDs() {
		u := gs.units[id]
		if u.ID == fallen.ID {
			continue
		}
		ch := gs.characters[u.CharacterID]
		if ch == nil || ch.Incapacitated {
			continue
		}
		if !gs.factions.Hostile(ch.Faction, fallenCh.Faction) {
			continue
		}
		if ch.alreadyRolledBraveryFor(fallen.ID) {
			continue
		}
		if distanceFeet(u.Position, fallen.Position) > braveryWitnessRangeFeet {
			continue
		}
		ch.recordBraveryRoll(fallen.ID)
		chance := clampInt(50+statToModifier(ch.Stats.Coolness), 1, 99)
		if gs.roll100() > chance {
			if 60 > ch.BraveryHesitationRemaining {
				ch.BraveryHesitationRemaining = 60
			}
			gs.logEvent(gs.tick, u.ID, "hesitation", "bravery_failed", fmt.Sprintf("%s wavers after seeing %s fall", ch.Name, fallenCh.Name))
		}
	}
}

// finishAttackCycle closes out the just-resolved impact: for ranged, clears
// the in-flight goal so ordinary progression drives firing -> recovering ->
// aiming; for melee, opens the recovery cooldown window (spec §4.5.1
// step 5, §4.6). It also marks step-4 re-evaluation due on the last shot of
// a cycle (trigger (b)/(d), spec §4.8).
func (gs *GameState) finishAttackCycle(u *Unit, ch *Character, e *ScheduledEvent) {
	if e.Params.WeaponIsMain {
		if e.Params.BurstIndex < e.Params.BurstTotal-1 {
			return // more shots from this cycle still pending
		}
		ch.IsAttacking = false
		ch.RangedGoal = ""
		gs.progressToward(u, ch, true, gs.goalForSlot(ch, true))
		if !ch.PersistentAttack {
			ch.PendingAutoEval = true
		}
		return
	}

	ch.IsAttacking = false
	ch.MeleeGoal = ""
	if w := gs.weapons[ch.MeleeWeaponID]; w != nil && w.Melee != nil {
		ch.MeleeRecoveryEnd = gs.tick + Tick(w.Melee.AttackCooldown)
		gs.queue.Schedule(ch.MeleeRecoveryEnd, u.ID, EventRecoveryComplete, EventParams{})
	}
	if !ch.PersistentAttack {
		ch.PendingAutoEval = true
	}
}

// handleRecoveryComplete fires when a melee recovery window ends
// (spec §4.6, §4.8 trigger (b)).
func (gs *GameState) handleRecoveryComplete(u *Unit, ch *Character, e *ScheduledEvent) {
	ch.PendingAutoEval = true
}
