package game

import "fmt"

// CommandResult reports the outcome of a dispatched command, for callers
// that want to surface rejection reasons (spec §7: invalid commands are
// "rejected, logged, no state change").
type CommandResult struct {
	Accepted bool
	Reason   string
}

func accepted() CommandResult  { return CommandResult{Accepted: true} }
func rejected(reason string) CommandResult {
	return CommandResult{Accepted: false, Reason: reason}
}

// SelectUnit marks a unit selected; informational only (spec §4.9).
func (gs *GameState) SelectUnit(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	u.Selected = true
	return accepted()
}

// DeselectUnit clears a unit's selection flag.
func (gs *GameState) DeselectUnit(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	u.Selected = false
	return accepted()
}

// AttackTarget sets the current target and initiates an attack cycle
// (spec §4.9 ATTACK_TARGET). Rejected against self, a friendly, an
// incapacitated attacker, or a nonexistent/incapacitated target.
func (gs *GameState) AttackTarget(attackerID, targetID UnitID) CommandResult {
	u, ch := gs.units[attackerID], (*Character)(nil)
	if u != nil {
		ch = gs.characters[u.CharacterID]
	}
	if u == nil || ch == nil {
		return rejected("no such attacker")
	}
	if ch.Incapacitated {
		return rejected("attacker incapacitated")
	}
	if attackerID == targetID {
		return rejected("cannot target self")
	}
	t := gs.units[targetID]
	if t == nil {
		return rejected("no such target")
	}
	tch := gs.characters[t.CharacterID]
	if tch == nil || tch.Incapacitated {
		return rejected("target incapacitated")
	}
	if !gs.factions.Hostile(ch.Faction, tch.Faction) {
		gs.logEvent(gs.tick, attackerID, "command", "attack_target", "rejected: target is not hostile")
		return rejected("target not hostile")
	}
	if !gs.beginAttack(u, ch, targetID) {
		return rejected("attack cycle blocked")
	}
	// Manual targeting overrides any standing zone preference (spec §4.9:
	// "clears zone-only preference").
	ch.TargetZone = nil
	ch.ZoneStrict = false
	return accepted()
}

// CeaseFire cancels pending attack events while preserving currentTarget
// and lastTargetFacing, leaving the weapon in its present state (spec
// §4.8 Cease-fire). Valid even on an incapacitated unit (it is the one
// command §4.9 explicitly exempts).
func (gs *GameState) CeaseFire(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil {
		return rejected("no character")
	}
	gs.queue.CancelByOwner(unitID, EventImpact, EventWeaponStateTransition)
	ch.IsAttacking = false
	ch.RangedTransitionPending = false
	ch.MeleeTransitionPending = false
	ch.RangedGoal = ""
	ch.MeleeGoal = ""
	gs.logEvent(gs.tick, unitID, "command", "cease_fire", "cease fire")
	return accepted()
}

// ToggleAutoTarget flips autoTargeting; on enable it runs the evaluator
// immediately unless an attack is mid-cycle, in which case it defers to
// the coordinator's next step-4 pass (spec §4.9, §4.8).
func (gs *GameState) ToggleAutoTarget(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	ch.AutoTargeting = !ch.AutoTargeting
	if ch.AutoTargeting {
		if ch.IsAttacking {
			ch.PendingAutoEval = true
		} else {
			gs.evaluateAutoTargeting(u, ch)
		}
	}
	return accepted()
}

// ToggleCombatMode swaps RANGED <-> MELEE, cancels pending weapon-state
// transitions, and resets hold state and both weapon slots to their
// defaults (spec §4.9 TOGGLE_COMBAT_MODE, §8 property 8).
func (gs *GameState) ToggleCombatMode(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	if ch.ActiveMode == ModeRanged {
		ch.ActiveMode = ModeMelee
	} else {
		ch.ActiveMode = ModeRanged
	}
	ch.IsAttacking = false
	ch.HoldState = "aiming"
	gs.resetWeaponState(u, ch, true)
	gs.resetWeaponState(u, ch, false)
	return accepted()
}

// CycleHoldState advances the hold-state preference through the active
// weapon's declared states, skipping firing/recovering/reloading
// (spec §4.9 CYCLE_HOLD_STATE).
func (gs *GameState) CycleHoldState(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	w := gs.ActiveWeapon(ch)
	if w == nil {
		return rejected("no active weapon")
	}
	eligible := make([]string, 0, len(w.Common.States))
	for _, s := range w.Common.States {
		if s.Name == "firing" || s.Name == "recovering" || s.Name == "reloading" {
			continue
		}
		eligible = append(eligible, s.Name)
	}
	if len(eligible) == 0 {
		return rejected("weapon has no cyclable hold states")
	}
	next := eligible[0]
	for i, name := range eligible {
		if name == ch.HoldState {
			next = eligible[(i+1)%len(eligible)]
			break
		}
	}
	ch.HoldState = next
	return accepted()
}

// SetMovementType sets the character's requested movement type; the
// effective movement speed remains clamped by any leg wound (spec §4.4,
// §4.9 SET_MOVEMENT_TYPE).
func (gs *GameState) SetMovementType(unitID UnitID, mt MovementType) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	ch.Movement = mt
	return accepted()
}

// SetAimingSpeed sets the aiming-speed preference, taking effect on the
// next hit-chance computation (spec §4.9 SET_AIMING_SPEED).
func (gs *GameState) SetAimingSpeed(unitID UnitID, speed AimingSpeed) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	ch.AimingSpeed = speed
	return accepted()
}

// DefineTargetZone sets or replaces a character's target zone.
func (gs *GameState) DefineTargetZone(unitID UnitID, rect Rectangle) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	ch.TargetZone = &rect
	return accepted()
}

// ClearTargetZone removes a character's target zone.
func (gs *GameState) ClearTargetZone(unitID UnitID) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	ch.TargetZone = nil
	return accepted()
}

// SetFiringMode validates mode against the ranged weapon's declared
// available modes (spec §4.9 SET_FIRING_MODE, §7 invalid-command handling).
func (gs *GameState) SetFiringMode(unitID UnitID, mode FiringMode) CommandResult {
	u := gs.units[unitID]
	if u == nil {
		return rejected("no such unit")
	}
	ch := gs.characters[u.CharacterID]
	if ch == nil || ch.Incapacitated {
		return rejected("unit incapacitated")
	}
	w := gs.weapons[ch.RangedWeaponID]
	if w == nil || w.Ranged == nil {
		return rejected("no ranged weapon")
	}
	if !w.Ranged.SupportsMode(mode) {
		gs.logEvent(gs.tick, unitID, "command", "set_firing_mode", fmt.Sprintf("rejected: %s does not support that firing mode", w.Common.Name))
		return rejected("unsupported firing mode")
	}
	w.Ranged.Mode = mode
	return accepted()
}
