//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lifesim/internal/core"
)

const (
	panelPadding = 10
	lineHeight   = 16
	groupGap     = 8
)

// HUD renders the statistics panel to the right of the board.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	title      string
	footer     []string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: buildTitle(sim)}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetFooter replaces the help lines drawn under the statistics.
func (h *HUD) SetFooter(lines ...string) {
	if h != nil {
		h.footer = lines
	}
}

// Update refreshes the cached snapshot from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + 12
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	y += lineHeight + groupGap

	for _, line := range panelLines(h.snapshot, (h.width-2*panelPadding)/7) {
		if line.header {
			y += groupGap
			text.Draw(h.panel, line.text, face, panelPadding, y, color.RGBA{R: 120, G: 170, B: 230, A: 255})
		} else {
			text.Draw(h.panel, line.text, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		}
		y += lineHeight
	}

	y += groupGap
	for _, line := range h.footer {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 140, G: 140, B: 150, A: 255})
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Statistics"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s Statistics", strings.ToUpper(name[:1]), name[1:])
}
