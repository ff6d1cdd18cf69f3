package render

import "image/color"

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// heatRamp runs from cold to hot; activity is mapped linearly onto it.
var heatRamp = []color.RGBA{
	{R: 8, G: 8, B: 16, A: 255},
	{R: 40, G: 20, B: 90, A: 255},
	{R: 150, G: 30, B: 90, A: 255},
	{R: 235, G: 110, B: 40, A: 255},
	{R: 255, G: 230, B: 120, A: 255},
}

// fillHeatRGBA converts activity levels in [0, maxLevel] into heat-map pixels.
// Live cells are drawn in the on color so the board stays readable.
func fillHeatRGBA(buf []byte, activity []float64, cells []uint8, maxLevel float64, on color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	for i, a := range activity {
		base := i * 4
		if i < len(cells) && cells[i] != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		col := heatColor(a, maxLevel)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func heatColor(v, maxLevel float64) color.RGBA {
	if maxLevel <= 0 || v <= 0 {
		return heatRamp[0]
	}
	t := v / maxLevel
	if t >= 1 {
		return heatRamp[len(heatRamp)-1]
	}
	pos := t * float64(len(heatRamp)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := heatRamp[i], heatRamp[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 255,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t + 0.5)
}
