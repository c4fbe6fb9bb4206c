package view

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

const (
	GlyphBody  = '●'
	GlyphSmall = '•'
	GlyphFixed = '✱'
	GlyphTrail = '·'
)

// TermColor maps c to a 24-bit terminal color, dropping alpha.
func TermColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// DrawTopDown renders bodies onto s through td, each with up to trailLen of
// its newest trail samples behind it. It returns how many bodies landed on
// the grid.
func DrawTopDown(s tcell.Screen, td *TopDown, bodies []*physics.Body, trailLen int) int {
	if trailLen > 0 {
		for _, b := range bodies {
			samples := b.Trail().Samples()
			from := max(0, len(samples)-1-trailLen)
			base := BodyColor(b)
			for i := from; i < len(samples)-1; i++ {
				col, row, ok := td.Project(samples[i])
				if !ok {
					continue
				}
				age := float64(i-from+1) / float64(len(samples)-from)
				style := tcell.StyleDefault.Foreground(TermColor(Fade(base, 0.2+0.6*age)))
				s.SetContent(col, row, GlyphTrail, nil, style)
			}
		}
	}

	visible := 0
	for _, b := range bodies {
		col, row, ok := td.Project(b.DisplayPosition())
		if !ok {
			continue
		}
		visible++
		glyph := GlyphSmall
		switch {
		case b.Fixed():
			glyph = GlyphFixed
		case b.DisplayRadius()*td.Scale >= 0.5:
			glyph = GlyphBody
		}
		s.SetContent(col, row, glyph, nil, tcell.StyleDefault.Foreground(TermColor(BodyColor(b))))
	}
	return visible
}

// DrawText writes str from (x, y), clipped at the right edge.
func DrawText(s tcell.Screen, x, y int, str string, style tcell.Style) {
	w, _ := s.Size()
	for _, r := range str {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
