package game

import "math"

// rotationDegPerTick is the fixed rotation rate: 360 deg/sec at 60 ticks/sec
// (spec §4.4).
const rotationDegPerTick = 6.0

// instantRotationThreshold is the angular delta below which a rotation
// completes within a single tick rather than animating (spec §4.4, §8
// property 10).
const instantRotationThreshold = 15.0

// updateMovement advances u toward its Destination by one tick's travel at
// ch's effective movement speed (spec §4.4). Incapacitated characters never
// reach here (callers filter).
func (gs *GameState) updateMovement(u *Unit, ch *Character) {
	if u.Destination == nil {
		return
	}
	speedFPS := movementSpeedFPS[ch.EffectiveMovement()]
	if !u.IsMoving(speedFPS) {
		u.Position = *u.Destination
		u.Destination = nil
		return
	}
	perTick := speedFPS / TicksPerSecond * PixelsPerFoot
	dx := u.Destination.X - u.Position.X
	dy := u.Destination.Y - u.Position.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		u.Destination = nil
		return
	}
	u.Position.X += dx / dist * perTick
	u.Position.Y += dy / dist * perTick
}

// updateFacing recomputes u.TargetFacing per the three-way priority rule of
// spec §4.4 and animates CurrentFacing toward it at rotationDegPerTick,
// snapping instantly for deltas below instantRotationThreshold.
func (gs *GameState) updateFacing(u *Unit, ch *Character) {
	switch {
	case ch.CurrentTarget != nil:
		// Rule (1): a live combat target always overrides movement-bearing
		// facing, even while the unit is mid-move (spec §4.4 "critical fix").
		if target := gs.units[*ch.CurrentTarget]; target != nil {
			u.TargetFacing = bearing(u.Position, target.Position)
			ch.LastTargetFacing = u.TargetFacing
		}
	case u.Destination != nil:
		u.TargetFacing = bearing(u.Position, *u.Destination)
	default:
		// Rule (3): no change; TargetFacing already holds the last set value.
	}

	delta := angularDelta(u.CurrentFacing, u.TargetFacing)
	if math.Abs(delta) < instantRotationThreshold {
		u.CurrentFacing = normalizeDeg(u.TargetFacing)
		return
	}
	step := rotationDegPerTick
	if delta < 0 {
		step = -step
	}
	u.CurrentFacing = normalizeDeg(u.CurrentFacing + step)
}

// bearing returns the compass bearing from a to b in degrees, 0 = north,
// clockwise positive (spec §3).
func bearing(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	// Screen/world Y grows downward; north is -Y, east is +X.
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	return normalizeDeg(deg)
}

// normalizeDeg wraps deg into [0,360).
func normalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// angularDelta returns the signed shortest-path angular difference from
// `from` to `to`, in [-180, 180), so wrapping 359->0 is chosen when shorter
// (spec §8 property 10).
func angularDelta(from, to float64) float64 {
	d := normalizeDeg(to) - normalizeDeg(from)
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
