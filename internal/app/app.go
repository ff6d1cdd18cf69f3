//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"lifesim/internal/core"
	"lifesim/internal/pattern"
	"lifesim/internal/render"
	"lifesim/internal/session"
	"lifesim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth     = 240
	graphHeight  = 60
	graphPadding = 10
)

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	sess    *session.Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *core.FixedStep

	onColor  color.Color
	offColor color.Color

	scale   int
	density float64
	heat    bool
}

// New constructs a Game for the provided session.
func New(sess *session.Session, scale int, density float64) *Game {
	hud := ui.NewHUD(sess, hudWidth)
	hud.SetFooter(
		"space run/pause  n step",
		"r clear  s reseed  h heat",
		"left/right rewind  e export",
		"g graph  q quit",
	)
	return &Game{
		sess:     sess,
		painter:  render.NewGridPainter(sess.Cols(), sess.Rows()),
		hud:      hud,
		overlay:  ui.NewOverlay(sess),
		clock:    core.NewFixedStep(sess.Config().GPS),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		density:  density,
	}
}

// Update handles per-frame input and advances the session while it runs.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.sess.Running() {
			g.sess.Stop()
		} else {
			g.clock.Reset()
			g.sess.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.sess.Stop()
		g.sess.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sess.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.sess.Reseed(time.Now().UnixNano())
		g.sess.Randomize(g.density)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.heat = !g.heat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.rewind(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.rewind(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.export()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x >= 0 && y >= 0 {
			g.sess.Toggle(y/g.scale, x/g.scale)
		}
	}

	g.overlay.Update()

	if g.sess.Running() {
		for n := g.clock.Due(); n > 0 && g.sess.Running(); n-- {
			g.sess.Step()
		}
	}
	g.hud.Update()
	return nil
}

func (g *Game) rewind(delta int) {
	g.sess.Stop()
	target := g.sess.Generation() + delta
	if !g.sess.GoToGeneration(target) {
		first, last := g.sess.HistoryBounds()
		slog.Debug("generation outside history", "generation", target, "first", first, "last", last)
	}
}

func (g *Game) export() {
	data, err := pattern.Marshal(g.sess.Export())
	if err != nil {
		slog.Error("export failed", "err", err)
		return
	}
	name := fmt.Sprintf("lifesim-gen%d.json", g.sess.Generation())
	if err := os.WriteFile(name, data, 0o644); err != nil {
		slog.Error("export failed", "path", name, "err", err)
		return
	}
	slog.Info("exported pattern", "path", name, "population", g.sess.Population())
}

// Draw renders the board, the population graph and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	rows, cols := g.sess.Rows(), g.sess.Cols()
	if !g.painter.Fits(cols, rows) {
		g.painter = render.NewGridPainter(cols, rows)
	}
	if g.heat {
		g.painter.BlitHeat(screen, g.sess.Activity(), g.sess.Cells(), g.onColor, g.scale)
	} else {
		g.painter.Blit(screen, g.sess.Cells(), g.onColor, g.offColor, g.scale)
	}

	boardW, boardH := cols*g.scale, rows*g.scale
	g.hud.Draw(screen, boardW, boardH)
	g.overlay.Draw(screen,
		boardW+graphPadding, boardH-graphHeight-graphPadding,
		g.hud.Width()-2*graphPadding, graphHeight)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sess.Cols()*g.scale + g.hud.Width(), g.sess.Rows() * g.scale
}

// WindowSize returns the initial window dimensions for the session.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}
