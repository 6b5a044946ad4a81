package game

// FactionID identifies a faction. Two characters are hostile when their
// faction IDs differ, unless the alignment table declares the pair allied
// or neutral (spec §3 Faction).
type FactionID int

// Alignment overrides the default "different ID = hostile" rule for a
// specific pair of factions.
type Alignment int

const (
	AlignmentDefault Alignment = iota // fall back to default-hostile rule
	AlignmentAllied
	AlignmentNeutral
	AlignmentHostile
)

// alignmentKey is an unordered pair of faction IDs used to index the table.
type alignmentKey struct {
	a, b FactionID
}

func newAlignmentKey(a, b FactionID) alignmentKey {
	if a > b {
		a, b = b, a
	}
	return alignmentKey{a, b}
}

// AlignmentTable holds explicit faction-pair overrides. The zero value is a
// valid, empty table (pure default-hostile behaviour).
type AlignmentTable struct {
	overrides map[alignmentKey]Alignment
}

// NewAlignmentTable creates an empty alignment table.
func NewAlignmentTable() *AlignmentTable {
	return &AlignmentTable{overrides: make(map[alignmentKey]Alignment)}
}

// SetAlignment declares how faction a and b relate to each other.
func (t *AlignmentTable) SetAlignment(a, b FactionID, al Alignment) {
	if t.overrides == nil {
		t.overrides = make(map[alignmentKey]Alignment)
	}
	t.overrides[newAlignmentKey(a, b)] = al
}

// Hostile reports whether factions a and b are hostile to each other.
// Default: different IDs are hostile, same ID is friendly, subject to any
// explicit override (spec §3 Faction).
func (t *AlignmentTable) Hostile(a, b FactionID) bool {
	defaultHostile := a != b
	if t == nil || t.overrides == nil {
		return defaultHostile
	}
	if al, ok := t.overrides[newAlignmentKey(a, b)]; ok {
		switch al {
		case AlignmentAllied, AlignmentNeutral:
			return false
		case AlignmentHostile:
			return true
		}
	}
	return defaultHostile
}
