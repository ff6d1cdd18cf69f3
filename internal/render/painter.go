//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"lifesim/internal/core"
)

// GridPainter updates a single RGBA image from the board state.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Fits reports whether the painter matches the given dimensions.
func (gp *GridPainter) Fits(w, h int) bool { return gp.w == w && gp.h == h }

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, on, off color.Color, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, on, off)
	gp.draw(dst, scale)
}

// BlitHeat draws the activity track as a heat map with live cells on top.
func (gp *GridPainter) BlitHeat(dst *ebiten.Image, activity []float64, cells []uint8, on color.Color, scale int) {
	if len(activity) != gp.w*gp.h {
		return
	}
	fillHeatRGBA(gp.buf, activity, cells, core.MaxActivity, on)
	gp.draw(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
