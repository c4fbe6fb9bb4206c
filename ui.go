package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	charW = 7
	lineH = 14

	modalW = 360
	modalH = 120
)

type button struct {
	x, y     int
	label    string
	active   bool
	disabled bool
	action   func() error
}

func (b button) contains(px, py int) bool {
	return pointInRect(px, py, b.x, b.y, uiBtnW, uiBtnH)
}

// buttons lays out the toolbar right to left from the top right corner.
func (g *Game) buttons() []button {
	pauseLabel := "Pause"
	if g.paused {
		pauseLabel = "Resume"
	}
	row := []button{
		{label: pauseLabel, active: g.paused, action: func() error {
			g.paused = !g.paused
			return nil
		}},
		{label: "Step", disabled: !g.paused, action: g.advanceOneStep},
		{label: "Quit", action: func() error { return ebiten.Termination }},
		{label: "Energy", active: g.showEnergy, action: g.toggleEnergy},
		{label: "Fit", action: func() error {
			g.fitCamera()
			return nil
		}},
		{label: "Reset", action: func() error {
			g.resetModalOpen = true
			return nil
		}},
	}
	x := screenWidth - uiBtnPad - uiBtnW
	for i := range row {
		row[i].x, row[i].y = x, uiBtnPad
		x -= uiBtnPad + uiBtnW
	}
	return row
}

func pointInRect(px, py, rx, ry, rw, rh int) bool {
	return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
}

func drawButton(screen *ebiten.Image, x, y, w, h int, label string, active bool, disabled bool, hover bool) {
	bg := color.RGBA{20, 20, 20, 200}
	textColor := color.RGBA{240, 240, 240, 255}
	if disabled {
		bg = color.RGBA{60, 60, 60, 160}
		textColor = color.RGBA{160, 160, 160, 200}
	} else {
		if active {
			bg = color.RGBA{60, 120, 60, 220}
		}
		if hover {
			if active {
				bg = color.RGBA{100, 190, 100, 240}
			} else {
				bg = color.RGBA{90, 90, 90, 230}
			}
		}
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bg, false)
	vector.StrokeRect(screen, float32(x)+0.5, float32(y)+0.5, float32(w)-1, float32(h)-1, 1, color.RGBA{40, 40, 40, 120}, false)
	xText := x + (w-len(label)*charW)/2
	yText := y + (h+8)/2
	text.Draw(screen, label, basicfont.Face7x13, xText, yText, textColor)
}

// drawPanel draws lines of text in a framed box with its top left corner
// at (x, y).
func drawPanel(screen *ebiten.Image, x, y int, lines []string, bg color.RGBA) {
	pad := 6
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	w := maxLen*charW + pad*2
	h := len(lines)*lineH + pad*2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bg, false)
	vector.StrokeRect(screen, float32(x)+0.5, float32(y)+0.5, float32(w)-1, float32(h)-1, 1, color.RGBA{30, 30, 40, 80}, false)
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, x+pad, y+pad+(i+1)*lineH-2, color.RGBA{220, 220, 220, 255})
	}
}

func drawShortcuts(screen *ebiten.Image, g *Game) {
	if !g.shortcutsVisible {
		return
	}
	lines := []string{
		"P - Pause/Resume",
		"N - Step (when paused)",
		"Arrows - rotate camera",
		"+ / - / wheel - zoom",
		"F - fit camera",
		"E - energy graph",
		"R - reset",
		"H - hide shortcuts",
		"Q - quit",
	}
	// below the DebugPrint block in the top left corner
	drawPanel(screen, 12, 110, lines, color.RGBA{10, 10, 20, 200})
}

func drawTooltip(screen *ebiten.Image, mx, my int, lines []string) {
	tw := 0
	for _, l := range lines {
		tw = max(tw, len(l)*charW+12)
	}
	th := len(lines)*lineH + 12
	x, y := mx+12, my+12
	if x+tw > screenWidth {
		x = screenWidth - tw - 8
	}
	if y+th > screenHeight {
		y = screenHeight - th - 8
	}
	drawPanel(screen, x, y, lines, color.RGBA{10, 10, 10, 200})
}

func resetModalOrigin() (int, int) {
	return (screenWidth - modalW) / 2, (screenHeight - modalH) / 2
}

func resetModalYes() button {
	x, y := resetModalOrigin()
	return button{x: x + 40, y: y + modalH - 44, label: "Yes"}
}

func resetModalNo() button {
	x, y := resetModalOrigin()
	return button{x: x + modalW - 40 - uiBtnW, y: y + modalH - 44, label: "No"}
}

func drawResetModal(screen *ebiten.Image) {
	x, y := resetModalOrigin()
	vector.DrawFilledRect(screen, float32(x), float32(y), modalW, modalH, color.RGBA{20, 20, 20, 220}, false)
	vector.DrawFilledRect(screen, float32(x+2), float32(y+2), modalW-4, modalH-4, color.RGBA{36, 36, 44, 200}, false)

	text.Draw(screen, "Reset simulation?", basicfont.Face7x13, x+16, y+28, color.RGBA{230, 230, 230, 255})
	text.Draw(screen, "Reload the environment and restart at t = 0.", basicfont.Face7x13, x+16, y+48, color.RGBA{190, 190, 190, 200})

	mx, my := ebiten.CursorPosition()
	for _, b := range []button{resetModalYes(), resetModalNo()} {
		drawButton(screen, b.x, b.y, uiBtnW, uiBtnH, b.label, false, false, b.contains(mx, my))
	}
}

// drawGraph plots data with an auto-scaled Y axis.
func drawGraph(screen *ebiten.Image, data []float64, x, y, w, h int, lineColor color.RGBA, title string) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{8, 8, 16, 200}, false)
	vector.StrokeRect(screen, float32(x)+0.5, float32(y)+0.5, float32(w)-1, float32(h)-1, 1, color.RGBA{30, 30, 40, 80}, false)
	if title != "" {
		text.Draw(screen, title, basicfont.Face7x13, x+6, y+14, color.RGBA{220, 220, 220, 200})
	}
	if len(data) == 0 {
		return
	}

	minV, maxV := data[0], data[0]
	for _, v := range data {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if minV == maxV {
		span := math.Max(math.Abs(minV)*1e-6, 1)
		minV, maxV = minV-span, maxV+span
	} else {
		pad := 0.05 * (maxV - minV)
		minV, maxV = minV-pad, maxV+pad
	}

	padding := 6
	gw := float64(w - padding*2)
	gh := float64(h - padding*2)
	for i := 0; i <= 4; i++ {
		yy := float32(float64(y+padding) + gh*float64(i)/4)
		vector.StrokeLine(screen, float32(x+padding), yy, float32(x+w-padding), yy, 1, color.RGBA{40, 40, 60, 120}, false)
	}

	if n := len(data); n >= 2 {
		stepX := gw / float64(n-1)
		var px, py float64
		for i, v := range data {
			nx := float64(x+padding) + stepX*float64(i)
			ny := float64(y+padding) + gh*(1-(v-minV)/(maxV-minV))
			if i > 0 {
				vector.StrokeLine(screen, float32(px), float32(py), float32(nx), float32(ny), 1, lineColor, true)
			}
			px, py = nx, ny
		}
	}
	lbl := fmt.Sprintf("%.3e..%.3e", minV, maxV)
	text.Draw(screen, lbl, basicfont.Face7x13, x+6, y+h-6, color.RGBA{180, 180, 200, 180})
}
