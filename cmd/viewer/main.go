// Command viewer is a minimal ebiten renderer for OpenFields2. It drives the
// simulation at a fixed tick rate and draws from GameState.Snapshot()
// and GameState.CharacterDetail() (spec §5: "rendering... must access state
// only through copy-out snapshots at tick boundaries"); beyond those it
// calls GameState.CharacterOf only to look up the selected unit's character
// ID. Grounded on the
// teacher's cmd/game/main.go ebiten.RunGame bootstrap and on game.go's
// Update/Draw/Layout shape, generalised from soldier-sense rendering to
// faction-coloured circles with a weapon-state ring.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/openfields2/core/internal/game"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var factionPalette = []color.RGBA{
	{R: 220, G: 70, B: 70, A: 255},
	{R: 70, G: 120, B: 220, A: 255},
	{R: 90, G: 190, B: 100, A: 255},
	{R: 220, G: 190, B: 60, A: 255},
}

type viewer struct {
	gs       *game.GameState
	paused   bool
	selected *game.UnitID
}

func (v *viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututilJustClicked() {
		mx, my := ebiten.CursorPosition()
		v.handleClick(float64(mx), float64(my))
	}
	if !v.paused {
		v.gs.Run(1)
	}
	return nil
}

// inpututilJustClicked reports a left-click edge without requiring the
// ebiten/v2/inpututil dependency for a single-frame debounce; the viewer is
// a reference tool, not an input-heavy shell.
var wasPressed bool

func inpututilJustClicked() bool {
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := pressed && !wasPressed
	wasPressed = pressed
	return clicked
}

func (v *viewer) handleClick(mx, my float64) {
	snap := v.gs.Snapshot()
	var closest *game.UnitID
	bestDist := 0.0
	for _, u := range snap.Units {
		dx, dy := u.Position.X-mx, u.Position.Y-my
		d := dx*dx + dy*dy
		if closest == nil || d < bestDist {
			id := u.UnitID
			closest = &id
			bestDist = d
		}
	}
	if closest != nil && bestDist <= 400 { // within 20px
		v.selected = closest
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 22, B: 18, A: 255})
	snap := v.gs.Snapshot()

	for _, u := range snap.Units {
		col := factionPalette[int(u.FactionID)%len(factionPalette)]
		vector.DrawFilledCircle(screen, float32(u.Position.X), float32(u.Position.Y), float32(u.Radius), col, true)

		ring := color.RGBA{R: 200, G: 200, B: 200, A: 180}
		switch u.WeaponRenderState {
		case game.RenderAttacking:
			ring = color.RGBA{R: 255, G: 80, B: 40, A: 220}
		case game.RenderReady:
			ring = color.RGBA{R: 255, G: 220, B: 90, A: 200}
		}
		vector.StrokeCircle(screen, float32(u.Position.X), float32(u.Position.Y), float32(u.Radius)+3, 1.5, ring, true)

		if v.selected != nil && *v.selected == u.UnitID {
			vector.StrokeCircle(screen, float32(u.Position.X), float32(u.Position.Y), float32(u.Radius)+7, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255}, true)
		}

		barW := u.Radius * 2
		hx, hy := u.Position.X-u.Radius, u.Position.Y-u.Radius-8
		vector.DrawFilledRect(screen, float32(hx), float32(hy), float32(barW), 4, color.RGBA{A: 160}, false)
		filled := float32(barW) * float32(u.HealthFraction)
		vector.DrawFilledRect(screen, float32(hx), float32(hy), filled, 4, color.RGBA{R: 80, G: 220, B: 90, A: 220}, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick=%d paused=%t (space to toggle)", snap.Tick, snap.Paused), 8, 8)

	if v.selected != nil {
		if ch := v.gs.CharacterOf(*v.selected); ch != nil {
			detail, _ := v.gs.CharacterDetail(ch.ID)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  hp=%d/%d  mode=%d  hold=%s",
				detail.Name, detail.CurrentHealth, detail.Stats.Health, detail.ActiveMode, detail.HoldState), 8, windowHeight-24)
		}
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func main() {
	var scenePath string
	var seed int64
	flag.StringVar(&scenePath, "scene", "", "path to a scene JSON document (required)")
	flag.Int64Var(&seed, "seed", 1, "RNG seed")
	flag.Parse()

	if scenePath == "" {
		log.Fatal("error: -scene is required")
	}

	gs, err := game.LoadScene(scenePath, game.WithSeed(seed))
	if err != nil {
		log.Fatalf("error: %v", err)
	}

	ebiten.SetWindowTitle("OpenFields2 Viewer")
	ebiten.SetWindowSize(windowWidth, windowHeight)
	if err := ebiten.RunGame(&viewer{gs: gs}); err != nil {
		log.Fatal(err)
	}
}
