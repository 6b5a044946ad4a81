package game

// tickHesitation decrements both hesitation counters for ch by one tick,
// floored at zero (spec §4.7: "both count down each tick... independent,
// order immaterial").
func (gs *GameState) tickHesitation(ch *Character) {
	if ch.WoundHesitationRemaining > 0 {
		ch.WoundHesitationRemaining--
	}
	if ch.BraveryHesitationRemaining > 0 {
		ch.BraveryHesitationRemaining--
	}
}
