package game

// PixelsPerFoot converts feet to pixels: 7px = 1 foot (spec §3, §4.1).
const PixelsPerFoot = 7.0

// UnitRadius is the fixed collision/body radius of every unit, in pixels
// (spec §3).
const UnitRadius = 10.5

// Point is a world-space position in pixels.
type Point struct {
	X, Y float64
}

// Rectangle is an axis-aligned world-space rectangle, used for target zones
// (spec §3, §4.8). It does not move with any unit.
type Rectangle struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside the rectangle (spec §4.8: "point
// in rectangle on the target's centre").
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Unit is a physical instance on the field (spec §3). It references a
// Character by ID rather than embedding it, so the two can be looked up
// independently from GameState's owning collections (spec §9).
type Unit struct {
	ID       UnitID
	Position Point
	Radius   float64

	CurrentFacing float64 // degrees, 0 = north, clockwise
	TargetFacing  float64

	CharacterID CharacterID

	Destination *Point // nil when not moving toward anything

	Selected bool
}

// IsMoving reports whether the unit's position still needs to travel
// further than one tick's worth of motion to reach Destination
// (spec §4.4).
func (u *Unit) IsMoving(speedFPS float64) bool {
	if u.Destination == nil {
		return false
	}
	dx := u.Destination.X - u.Position.X
	dy := u.Destination.Y - u.Position.Y
	distSq := dx*dx + dy*dy
	perTick := speedFPS / TicksPerSecond * PixelsPerFoot
	return distSq > perTick*perTick
}
