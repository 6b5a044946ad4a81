package game

import "testing"

func TestStatToModifierIsMonotonicAndCentred(t *testing.T) {
	if m := statToModifier(1); m != -20 {
		t.Fatalf("statToModifier(1) = %d, want -20", m)
	}
	if m := statToModifier(100); m != 20 {
		t.Fatalf("statToModifier(100) = %d, want 20", m)
	}
	if m := statToModifier(50); m < -3 || m > 3 {
		t.Fatalf("statToModifier(50) = %d, want near 0", m)
	}
	prev := statToModifier(1)
	for s := 2; s <= 100; s++ {
		cur := statToModifier(s)
		if cur < prev {
			t.Fatalf("statToModifier not monotonic at %d: %d < %d", s, cur, prev)
		}
		prev = cur
	}
}

func TestStatToModifierClampsOutOfRangeInput(t *testing.T) {
	if statToModifier(0) != statToModifier(1) {
		t.Fatalf("expected sub-range input to clamp to 1")
	}
	if statToModifier(500) != statToModifier(100) {
		t.Fatalf("expected super-range input to clamp to 100")
	}
}

func TestMovementPenaltyIsNegativeOrZero(t *testing.T) {
	cases := map[MovementType]int{
		MovementCrawl: 0,
		MovementWalk:  -10,
		MovementJog:   -20,
		MovementRun:   -30,
	}
	for mt, want := range cases {
		if got := movementPenalty(mt); got != want {
			t.Fatalf("movementPenalty(%v) = %d, want %d", mt, got, want)
		}
	}
}

func TestRangeModifierZeroAtPointBlankAndMinusFortyAtMaxRange(t *testing.T) {
	if m := rangeModifier(0, 210); m != 0 {
		t.Fatalf("rangeModifier(0, 210) = %d, want 0", m)
	}
	if m := rangeModifier(210, 210); m != -40 {
		t.Fatalf("rangeModifier(210, 210) = %d, want -40", m)
	}
	if m := rangeModifier(105, 210); m != -20 {
		t.Fatalf("rangeModifier(105, 210) = %d, want -20 (halfway)", m)
	}
}

func TestAimingSpeedModifierFixedTiers(t *testing.T) {
	if m := aimingSpeedModifier(AimingCareful, 0); m != 15 {
		t.Fatalf("CAREFUL = %d, want 15", m)
	}
	if m := aimingSpeedModifier(AimingNormal, 9999); m != 0 {
		t.Fatalf("NORMAL = %d, want 0", m)
	}
	if m := aimingSpeedModifier(AimingQuick, 9999); m != -20 {
		t.Fatalf("QUICK = %d, want -20", m)
	}
}

func TestAimingSpeedModifierVeryCarefulSaturatesUpward(t *testing.T) {
	early := aimingSpeedModifier(AimingVeryCareful, 0)
	if early != 0 {
		t.Fatalf("VERY_CAREFUL at 0 ticks = %d, want 0", early)
	}
	mid := aimingSpeedModifier(AimingVeryCareful, 120)
	late := aimingSpeedModifier(AimingVeryCareful, 600)
	if !(mid > early && late > mid) {
		t.Fatalf("expected strictly increasing curve, got early=%d mid=%d late=%d", early, mid, late)
	}
	if late < 28 || late > 30 {
		t.Fatalf("expected saturation near +30 by 600 ticks, got %d", late)
	}
}
