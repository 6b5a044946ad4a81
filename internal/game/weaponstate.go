package game

import "fmt"

// weaponFor returns the weapon definition occupying the ranged or melee slot
// of ch, or nil if that slot is empty.
func (gs *GameState) weaponFor(ch *Character, ranged bool) *Weapon {
	if ranged {
		if !ch.HasRangedWeapon() {
			return nil
		}
		return gs.weapons[ch.RangedWeaponID]
	}
	return gs.weapons[ch.MeleeWeaponID]
}

func (ch *Character) stateFor(ranged bool) string {
	if ranged {
		return ch.RangedState
	}
	return ch.MeleeState
}

func (ch *Character) setState(ranged bool, name string) {
	if ranged {
		ch.RangedState = name
	} else {
		ch.MeleeState = name
	}
}

func (ch *Character) setGoal(ranged bool, goal string) {
	if ranged {
		ch.RangedGoal = goal
	} else {
		ch.MeleeGoal = goal
	}
}

func (ch *Character) transitionPending(ranged bool) bool {
	if ranged {
		return ch.RangedTransitionPending
	}
	return ch.MeleeTransitionPending
}

func (ch *Character) setTransitionPending(ranged bool, pending bool) {
	if ranged {
		ch.RangedTransitionPending = pending
	} else {
		ch.MeleeTransitionPending = pending
	}
}

// goalForSlot resolves the state progression is currently driving toward
// for the given slot: an explicit in-flight goal (set by attack initiation)
// takes priority; then, for an empty ranged weapon, its declared reload
// state; otherwise the character's hold-state preference if the
// weapon declares a state by that name, else the weapon's own resting
// default (spec §4.3: "the machine advances toward... the target hold
// state, or 'aiming' for an attack, or 'reloading' when out of ammunition").
func (gs *GameState) goalForSlot(ch *Character, ranged bool) string {
	if ranged && ch.RangedGoal != "" {
		return ch.RangedGoal
	}
	if !ranged && ch.MeleeGoal != "" {
		return ch.MeleeGoal
	}
	w := gs.weaponFor(ch, ranged)
	if w == nil {
		return ""
	}
	if ranged && w.Ranged != nil && w.Ranged.AmmoCount <= 0 && w.Ranged.ReloadStateName != "" {
		if _, ok := w.Common.StateByName(w.Ranged.ReloadStateName); ok {
			return w.Ranged.ReloadStateName
		}
	}
	if ch.HoldState != "" {
		if _, ok := w.Common.StateByName(ch.HoldState); ok {
			return ch.HoldState
		}
	}
	return w.DefaultState()
}

// progressToward schedules the next state-change transition for the given
// slot toward goalState, unless already there, already pending, or the
// weapon has no declared path forward (spec §4.3 contract). Entry into
// "firing" from "aiming" is refused unless goalState is itself "firing" —
// the machine never drifts into an attack it wasn't asked to make.
func (gs *GameState) progressToward(u *Unit, ch *Character, ranged bool, goalState string) {
	if goalState == "" || ch.transitionPending(ranged) {
		return
	}
	w := gs.weaponFor(ch, ranged)
	if w == nil {
		return
	}
	current := ch.stateFor(ranged)
	if current == goalState {
		return
	}
	st, ok := w.Common.StateByName(current)
	if !ok || st.Next == "" {
		return
	}
	if current == "aiming" && st.Next == "firing" && goalState != "firing" {
		return
	}
	if current == "melee_ready" && st.Next == "melee_attacking" && goalState != "melee_attacking" {
		return
	}
	fireTick := gs.tick + Tick(st.TickCost)
	gs.queue.Schedule(fireTick, u.ID, EventWeaponStateTransition, EventParams{
		WeaponIsMain: ranged,
		StateName:    st.Next,
		Goal:         goalState,
	})
	ch.setTransitionPending(ranged, true)
}

// progressWeaponStates runs coordinator step 5 for one unit: progress each
// slot without a pending transition toward its current goal. The
// active-combat-mode weapon is scheduled first so that, on a tie at the
// same fire tick, it is the one processed first by DrainDue's sequence
// ordering (spec §4.3 "tie-break... active-combat-mode weapon progresses
// first").
func (gs *GameState) progressWeaponStates(u *Unit, ch *Character) {
	// Aiming time only accrues while actively mid-attack-cycle and parked in
	// "aiming" on a live target (spec §9 glossary: "continuously in an
	// aiming-progressing state"); a cease-fire cancels the cycle but leaves
	// the weapon resting in "aiming", so it must not keep accruing (spec §8
	// scenario S4: the counter sits frozen across the cease-fire gap).
	if ch.HasRangedWeapon() && ch.IsAttacking && ch.RangedState == "aiming" && ch.CurrentTarget != nil {
		ch.AccumulatedAimTicks++
	}
	if ch.ActiveMode == ModeRanged {
		if ch.HasRangedWeapon() {
			gs.progressToward(u, ch, true, gs.goalForSlot(ch, true))
		}
		gs.progressToward(u, ch, false, gs.goalForSlot(ch, false))
	} else {
		gs.progressToward(u, ch, false, gs.goalForSlot(ch, false))
		if ch.HasRangedWeapon() {
			gs.progressToward(u, ch, true, gs.goalForSlot(ch, true))
		}
	}
}

// handleWeaponStateTransition applies a fired EventWeaponStateTransition:
// advance the slot's current state, fire any state-entry side effect, and
// continue progression if the goal has not yet been reached.
func (gs *GameState) handleWeaponStateTransition(u *Unit, ch *Character, e *ScheduledEvent) {
	ranged := e.Params.WeaponIsMain
	ch.setTransitionPending(ranged, false)
	ch.setState(ranged, e.Params.StateName)

	switch {
	case ranged && e.Params.StateName == "firing":
		gs.onEnterFiring(u, ch)
	case !ranged && e.Params.StateName == "melee_attacking":
		gs.onEnterMeleeAttacking(u, ch)
	case ranged:
		if w := gs.weaponFor(ch, true); w != nil && w.Ranged != nil &&
			w.Ranged.ReloadStateName != "" && e.Params.StateName == w.Ranged.ReloadStateName {
			gs.onEnterReload(u, ch, w)
		}
	}

	if e.Params.StateName != e.Params.Goal {
		gs.progressToward(u, ch, ranged, e.Params.Goal)
	}
}

// onEnterReload restores a ranged weapon's ammunition to full capacity as
// soon as its declared reload state is reached. Without this, goalForSlot
// keeps steering an empty weapon back toward the reload state forever
// (spec §6.1 weapon reload data); refilling on entry clears that condition
// so the next coordinator pass lets the state machine's own Next/TickCost
// chain carry the weapon onward out of "reloading".
func (gs *GameState) onEnterReload(u *Unit, ch *Character, w *Weapon) {
	w.Ranged.AmmoCount = w.Ranged.AmmoCapacity
	gs.logEvent(gs.tick, u.ID, "weapon_state", "reload_complete", fmt.Sprintf("%s reloaded to full capacity", w.Common.Name))
}

// resetWeaponState cancels every pending weapon-state transition the unit
// owns (both slots), clears the given slot's pending flag and goal, and
// resets that slot to the weapon's default resting state (spec §4.3: "on mode
// change or weapon switch... the weapon is reset to its weapon-specific
// default state").
func (gs *GameState) resetWeaponState(u *Unit, ch *Character, ranged bool) {
	kinds := []EventKind{EventWeaponStateTransition}
	gs.queue.CancelByOwner(u.ID, kinds...)
	ch.setTransitionPending(ranged, false)
	ch.setGoal(ranged, "")
	if w := gs.weaponFor(ch, ranged); w != nil {
		ch.setState(ranged, w.DefaultState())
	}
}
