package game

// Hooks bundles the external collaborators the core invokes as best-effort
// side channels (spec §6.1): weapon sound, muzzle flash, and a textual log
// sink. Any field left nil is skipped silently: a missing callback is not
// logged and is never a crash. A callback that panics is not recovered.
// Grounded on the teacher's CombatManager, which already calls
// playWeaponSound/addMuzzleFlash-equivalent side effects inline and
// tolerates a quiet no-op when there is nothing to notify.
type Hooks struct {
	PlayWeaponSound func(w *Weapon)
	AddMuzzleFlash  func(unit UnitID, durationTicks int)
	Log             func(level, message string)
}

// MuzzleFlashDefaultTicks is the default muzzle-flash duration (spec §6.1).
const MuzzleFlashDefaultTicks = 30

// invokeWeaponSound calls the sound hook if present.
func (h Hooks) invokeWeaponSound(w *Weapon) {
	if h.PlayWeaponSound != nil {
		h.PlayWeaponSound(w)
	}
}

// invokeMuzzleFlash calls the muzzle-flash hook if present (ranged only).
func (h Hooks) invokeMuzzleFlash(unit UnitID) {
	if h.AddMuzzleFlash != nil {
		h.AddMuzzleFlash(unit, MuzzleFlashDefaultTicks)
	}
}

// invokeLog calls the log hook if present; never fatal when absent.
func (h Hooks) invokeLog(level, message string) {
	if h.Log != nil {
		h.Log(level, message)
	}
}
