package game

import "math"

// validTarget reports whether id is still a legal target for ch: alive,
// hostile, and (for ranged weapons) within maximum range (spec §3 invariant
// 4, §4.8 trigger (a)).
func (gs *GameState) validTarget(u *Unit, ch *Character, id UnitID) bool {
	t := gs.units[id]
	if t == nil {
		return false
	}
	tch := gs.characters[t.CharacterID]
	if tch == nil || tch.Incapacitated {
		return false
	}
	if !gs.factions.Hostile(ch.Faction, tch.Faction) {
		return false
	}
	w := gs.ActiveWeapon(ch)
	if w != nil && w.IsRanged() && w.Ranged != nil {
		if distanceFeet(u.Position, t.Position) > w.Ranged.MaxRangeFeet {
			return false
		}
	}
	return true
}

// shouldEvaluateTargeting checks spec §4.8's trigger conditions for one
// unit this tick: a discrete trigger already recorded via PendingAutoEval
// (recovery complete, auto-target just toggled on, a non-persistent manual
// attack finishing), or the live condition that the current target has
// become invalid. Evaluation never runs mid-attack-cycle (spec §4.8:
// "NOT performed while an attack is mid-cycle").
func (gs *GameState) shouldEvaluateTargeting(u *Unit, ch *Character) bool {
	if ch.IsAttacking {
		return false
	}
	if ch.PendingAutoEval {
		return true
	}
	if ch.CurrentTarget != nil && !gs.validTarget(u, ch, *ch.CurrentTarget) {
		return true
	}
	return false
}

// candidatePool returns every unit hostile to ch, alive, and in range for
// ch's active weapon (melee always qualifies on range; spec §4.8).
func (gs *GameState) candidatePool(u *Unit, ch *Character) []UnitID {
	w := gs.ActiveWeapon(ch)
	var pool []UnitID
	for _, id := range gs.orderedUnitIDs() {
		if id == u.ID {
			continue
		}
		t := gs.units[id]
		tch := gs.characters[t.CharacterID]
		if tch == nil || tch.Incapacitated {
			continue
		}
		if !gs.factions.Hostile(ch.Faction, tch.Faction) {
			continue
		}
		if w != nil && w.IsRanged() && w.Ranged != nil {
			if distanceFeet(u.Position, t.Position) > w.Ranged.MaxRangeFeet {
				continue
			}
		}
		pool = append(pool, id)
	}
	return pool
}

// selectTarget applies the zone-preference filter, then nearest-distance
// selection with seeded-RNG tie-break, to the candidate pool (spec §4.8
// Selection order). Returns nil if no candidate remains.
func (gs *GameState) selectTarget(u *Unit, ch *Character, pool []UnitID) *UnitID {
	if len(pool) == 0 {
		return nil
	}
	working := pool
	if ch.TargetZone != nil {
		var inZone []UnitID
		for _, id := range pool {
			if ch.TargetZone.Contains(gs.units[id].Position) {
				inZone = append(inZone, id)
			}
		}
		if len(inZone) > 0 {
			working = inZone
		} else if ch.ZoneStrict {
			return nil
		}
	}

	var best []UnitID
	bestDist := math.MaxFloat64
	for _, id := range working {
		d := distanceFeet(u.Position, gs.units[id].Position)
		switch {
		case d < bestDist:
			bestDist = d
			best = []UnitID{id}
		case d == bestDist:
			best = append(best, id)
		}
	}
	if len(best) == 1 {
		return &best[0]
	}
	chosen := best[gs.rng.Intn(len(best))]
	return &chosen
}

// evaluateAutoTargeting runs the full auto-targeting pass for one unit
// (spec §4.8): select (or clear) a target, pursue it in melee if out of
// reach, and begin an attack cycle. When hesitation blocks the attack, the
// pass stays pending so the unit re-engages once the countdown ends.
func (gs *GameState) evaluateAutoTargeting(u *Unit, ch *Character) {
	ch.PendingAutoEval = false

	chosen := gs.selectTarget(u, ch, gs.candidatePool(u, ch))
	if chosen == nil {
		ch.CurrentTarget = nil
		return
	}
	gs.setCurrentTarget(u, ch, *chosen)

	target := gs.units[*chosen]
	if ch.ActiveMode == ModeMelee {
		if w := gs.weapons[ch.MeleeWeaponID]; w != nil && !inMeleeRange(u, target, w) {
			pos := target.Position
			u.Destination = &pos
		}
	}
	if !gs.beginAttack(u, ch, *chosen) && !ch.Incapacitated && !ch.CanInitiateAttack() {
		ch.PendingAutoEval = true
	}
}
