package ui

import (
	"strings"

	"lifesim/internal/core"
)

type panelLine struct {
	text   string
	header bool
}

// panelLines flattens a snapshot into HUD rows of at most width characters,
// with labels left-aligned and values right-aligned.
func panelLines(s core.ParameterSnapshot, width int) []panelLine {
	if width < 8 {
		width = 8
	}
	var out []panelLine
	for _, g := range s.Groups {
		out = append(out, panelLine{text: g.Name, header: true})
		for _, p := range g.Params {
			out = append(out, panelLine{text: fitRow(p.Label, p.Value, width)})
		}
	}
	return out
}

func fitRow(label, value string, width int) string {
	pad := width - len(label) - len(value)
	if pad < 1 {
		keep := width - len(value) - 1
		if keep < 0 {
			keep = 0
		}
		if keep < len(label) {
			label = label[:keep]
		}
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + value
}

// sparkline maps a series onto height pixels, newest sample on the right, and
// returns one y offset (0 = top) per sample for the trailing width samples.
func sparkline(series []int, width, height int) []int {
	if width <= 0 || height <= 0 || len(series) == 0 {
		return nil
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}
	peak := 0
	for _, v := range series {
		peak = max(peak, v)
	}
	ys := make([]int, len(series))
	for i, v := range series {
		if peak == 0 {
			ys[i] = height - 1
			continue
		}
		ys[i] = (height - 1) - v*(height-1)/peak
	}
	return ys
}
