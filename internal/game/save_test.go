package game

import (
	"bytes"
	"testing"
)

func buildSaveFixture() *GameState {
	gs := NewGameState(WithSeed(7), WithWeapon(testColt(85)), WithWeapon(testDagger()))
	a := testChar(1, 1, 70, 50, 50, 50, 80, withSkill("pistol", 2), withRangedWeapon("colt"), withMeleeWeapon("dagger"))
	b := testChar(2, 2, 55, 50, 50, 50, 80, withRangedWeapon("colt"))
	ua := &Unit{ID: 1, Position: Point{X: 14, Y: 28}, Radius: UnitRadius, CharacterID: 1, CurrentFacing: 45, TargetFacing: 90}
	ub := &Unit{ID: 2, Position: Point{X: 210, Y: 0}, Radius: UnitRadius, CharacterID: 2, CurrentFacing: 270}
	gs.registerUnit(ua, &a)
	gs.registerUnit(ub, &b)

	ch := gs.CharacterOf(1)
	ch.TargetZone = &Rectangle{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	ch.Wounds = append(ch.Wounds, Wound{Location: LocationChest, Severity: SeveritySerious, Damage: 12, WoundNoun: "bullet", TickInflicted: 5})
	ch.RangedStats.AttacksAttempted = 3
	target := UnitID(2)
	ch.CurrentTarget = &target
	return gs
}

// TestSaveProducesDeterministicByteIdenticalOutput covers spec §8 property
// 7: two saves of an identical GameState, with units/characters written in
// ascending-ID order, must be byte-for-byte identical.
func TestSaveProducesDeterministicByteIdenticalOutput(t *testing.T) {
	gs := buildSaveFixture()
	first, err := gs.Save()
	if err != nil {
		t.Fatalf("unexpected error on first save: %v", err)
	}
	second, err := gs.Save()
	if err != nil {
		t.Fatalf("unexpected error on second save: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected two saves of the same state to be byte-identical:\n%s\nvs\n%s", first, second)
	}
}

func TestSaveLoadRoundTripPreservesCoreState(t *testing.T) {
	gs := buildSaveFixture()
	gs.Run(3) // advance a few ticks so gs.tick round-trips meaningfully

	data, err := gs.Save()
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	restored, err := LoadSaveInto(data, WithSeed(7), WithWeapon(testColt(85)), WithWeapon(testDagger()))
	if err != nil {
		t.Fatalf("unexpected error restoring: %v", err)
	}

	if restored.Tick() != gs.Tick() {
		t.Fatalf("expected tick to round-trip: got %d want %d", restored.Tick(), gs.Tick())
	}

	origA, restA := gs.CharacterOf(1), restored.CharacterOf(1)
	if restA.Name != origA.Name || restA.Stats != origA.Stats {
		t.Fatalf("expected character identity/stats to round-trip")
	}
	if restA.CurrentTarget == nil || *restA.CurrentTarget != 2 {
		t.Fatalf("expected currentTarget to round-trip, got %v", restA.CurrentTarget)
	}
	if len(restA.Wounds) != 1 || restA.Wounds[0].Location != LocationChest || restA.Wounds[0].Severity != SeveritySerious {
		t.Fatalf("expected wound to round-trip, got %+v", restA.Wounds)
	}
	if restA.TargetZone == nil || *restA.TargetZone != (Rectangle{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}) {
		t.Fatalf("expected target zone to round-trip, got %v", restA.TargetZone)
	}
	if restA.RangedStats.AttacksAttempted != 3 {
		t.Fatalf("expected combat stats to round-trip, got %+v", restA.RangedStats)
	}

	restUnitA := restored.Unit(1)
	if restUnitA.Position != gs.Unit(1).Position || restUnitA.CurrentFacing != gs.Unit(1).CurrentFacing {
		t.Fatalf("expected unit position/facing to round-trip")
	}
}

// TestLoadSaveIntoResetsTransientCombatMachinery covers spec §6.3: weapon
// state resets to default, combat mode resets to RANGED, and hold state
// resets to "aiming" on restore — these are not persisted fields.
func TestLoadSaveIntoResetsTransientCombatMachinery(t *testing.T) {
	gs := buildSaveFixture()
	ch := gs.CharacterOf(1)
	ch.ActiveMode = ModeMelee
	ch.HoldState = "firing"
	ch.RangedState = "aiming"

	data, err := gs.Save()
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}
	restored, err := LoadSaveInto(data, WithWeapon(testColt(85)), WithWeapon(testDagger()))
	if err != nil {
		t.Fatalf("unexpected error restoring: %v", err)
	}
	restA := restored.CharacterOf(1)
	if restA.ActiveMode != ModeRanged {
		t.Fatalf("expected combat mode to reset to RANGED on restore, got %v", restA.ActiveMode)
	}
	if restA.HoldState != "aiming" {
		t.Fatalf("expected hold state to reset to aiming on restore, got %q", restA.HoldState)
	}
	if restA.RangedState != "holstered" {
		t.Fatalf("expected ranged weapon state to reset to its default on restore, got %q", restA.RangedState)
	}
}

func TestLoadSaveIntoPreservesIncapacitatedCharacterAtZeroHealth(t *testing.T) {
	gs := buildSaveFixture()
	ch := gs.CharacterOf(2)
	ch.Incapacitated = true
	ch.CurrentHealth = 0

	data, err := gs.Save()
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}
	restored, err := LoadSaveInto(data, WithWeapon(testColt(85)), WithWeapon(testDagger()))
	if err != nil {
		t.Fatalf("unexpected error restoring: %v", err)
	}
	restB := restored.CharacterOf(2)
	if !restB.Incapacitated {
		t.Fatalf("expected incapacitated flag to round-trip")
	}
	if restB.CurrentHealth != 0 {
		t.Fatalf("expected zero current health to survive restore rather than being reset to max, got %d", restB.CurrentHealth)
	}
}

func TestLoadSaveIntoFailsOnDanglingCharacterReference(t *testing.T) {
	gs := buildSaveFixture()
	data, err := gs.Save()
	if err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}
	// Corrupt the document by repointing unit 1's characterId at an id that
	// does not appear anywhere in the characters array.
	mutated := bytes.Replace(data, []byte(`"characterId":1,`), []byte(`"characterId":424242,`), 1)
	if bytes.Equal(mutated, data) {
		t.Fatalf("test fixture assumption broke: expected to find a characterId:1 field to corrupt")
	}
	if _, err := LoadSaveInto(mutated, WithWeapon(testColt(85)), WithWeapon(testDagger())); err == nil {
		t.Fatalf("expected a dangling character reference to fail to load")
	}
}
