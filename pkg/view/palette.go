package view

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

// goldenAngle spreads consecutive ids around the hue circle.
const goldenAngle = 137.50776405003785

var fixedColor = colorful.Hsv(48, 0.75, 1)

// BodyColor picks a stable color for b. Fixed bodies are drawn in a warm
// yellow; the others get a hue from their id, lighter when heavier.
func BodyColor(b *physics.Body) color.RGBA {
	if b.Fixed() {
		return rgba(fixedColor, 255)
	}
	hue := math.Mod(float64(b.ID())*goldenAngle, 360)
	l := 0.55 + 0.04*math.Min(5, math.Log10(1+b.Mass()/minMassForLight))
	return rgba(colorful.Hcl(hue, 0.5, l).Clamped(), 255)
}

const minMassForLight = 1e20

// Fade blends c toward black; f is the remaining intensity in [0, 1].
func Fade(c color.RGBA, f float64) color.RGBA {
	f = math.Max(0, math.Min(1, f))
	src, _ := colorful.MakeColor(c)
	return rgba(colorful.Color{}.BlendRgb(src, f), c.A)
}

func rgba(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
