//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type seriesProvider interface {
	Series() (population []int, entropy []float64, births, deaths []int)
}

// Overlay draws the population history as a sparkline over the board.
type Overlay struct {
	src   seriesProvider
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(src seriesProvider) *Overlay {
	o := &Overlay{src: src, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the graph with the G key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.show = !o.show
	}
}

// Draw paints the sparkline into the w*h rectangle anchored at (x, y).
func (o *Overlay) Draw(screen *ebiten.Image, x, y, w, h int) {
	if o == nil || !o.show || o.src == nil || w <= 2 || h <= 2 {
		return
	}
	pop, _, _, _ := o.src.Series()
	ys := sparkline(pop, w, h)
	if len(ys) == 0 {
		return
	}

	o.drawRect(screen, float64(x), float64(y), float64(w), float64(h), color.RGBA{A: 140})
	line := color.RGBA{R: 120, G: 220, B: 140, A: 255}
	left := x + w - len(ys)
	if len(ys) == 1 {
		o.drawRect(screen, float64(left), float64(y+ys[0]), 1, 1, line)
		return
	}
	for i := 1; i < len(ys); i++ {
		o.drawLine(screen,
			float64(left+i-1), float64(y+ys[i-1]),
			float64(left+i), float64(y+ys[i]),
			1, line)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
