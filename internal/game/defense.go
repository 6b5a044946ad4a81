package game

// tickDefenseAndRecovery implements coordinator step 3's defense-cooldown
// expiry check (spec §4.10, §4.6). Melee-recovery expiry is handled by the
// scheduled EventRecoveryComplete drained in step 1, since spec §4.5.1
// step 5 states it explicitly as a scheduled event rather than a per-tick
// comparison.
func (gs *GameState) tickDefenseAndRecovery(u *Unit, ch *Character) {
	if ch.DefenseState == DefenseCooldownState && gs.tick >= ch.DefenseCooldownEnd {
		ch.DefenseState = DefenseReady
	}
}

// attemptDefense resolves a melee target's defensive roll at impact
// (spec §4.6). Returns true if the attack is negated. Always advances the
// defender into cooldown regardless of outcome, unless the defender was
// already in cooldown or otherwise ineligible (in which case the impact
// bypasses defense entirely and the caller proceeds straight to the hit
// chance roll).
func (gs *GameState) attemptDefense(attacker *Unit, ch *Character, target *Unit, tch *Character, attackerWeapon *Weapon, e *ScheduledEvent) bool {
	if tch.DefenseState != DefenseReady || tch.IsAttacking || tch.Incapacitated {
		return false
	}

	defendScore := 0
	skill := 0
	cooldown := 60
	if meleeW := gs.weapons[tch.MeleeWeaponID]; meleeW != nil {
		skill = tch.SkillLevel(meleeW.Common.CombatSkillName)
		if meleeW.Melee != nil {
			defendScore = meleeW.Melee.DefendScore
			cooldown = meleeW.Melee.DefenseCooldown
		}
	}
	chance := clampInt(50+statToModifier(tch.Stats.Dexterity)+5*skill+defendScore/2, 1, 99)
	negated := e.Params.DefenseRoll <= chance

	tch.DefenseState = DefenseCooldownState
	tch.DefenseCooldownEnd = gs.tick + Tick(cooldown)

	if negated {
		gs.logEvent(gs.tick, target.ID, "combat", "defended", "defends against "+attackerWeapon.Common.Name)
		if gs.counterAttackEnabled {
			gs.openCounterAttackWindow(target, tch)
		}
	}
	return negated
}

// openCounterAttackWindow grants the defender a window in which it may
// counter-attack at half attack speed even though it remains in
// DEFENSE_COOLDOWN (spec §4.6, §9 Open Question — resolved in
// SPEC_FULL.md §6 as a fixed-length window).
func (gs *GameState) openCounterAttackWindow(u *Unit, ch *Character) {
	if gs.counterWindowUnit == nil {
		gs.counterWindowUnit = make(map[UnitID]bool)
	}
	gs.counterWindowUnit[u.ID] = true
	gs.queue.Schedule(gs.tick+Tick(gs.counterAttackWindowTicks), u.ID, EventCounterAttackWindowEnd, EventParams{})
}

// inCounterAttackWindow reports whether u may currently counter-attack
// under spec §4.6's counter-attack window.
func (gs *GameState) inCounterAttackWindow(u UnitID) bool {
	return gs.counterWindowUnit[u]
}
