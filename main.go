package main

import (
	"cmp"
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ssine/galaxy-simulator/pkg/physics"
	"github.com/ssine/galaxy-simulator/pkg/simulation"
	"github.com/ssine/galaxy-simulator/pkg/view"
)

const (
	screenWidth  = 1920
	screenHeight = 1000

	// UI
	uiBtnW   = 100
	uiBtnH   = 28
	uiBtnPad = 12

	// energy graph
	graphW = 360
	graphH = 120

	// upper bound on trail segments drawn per frame, shared by all bodies
	maxTrailSegments = 60000

	rotateStep = 0.03
	zoomStep   = 1.03
)

type Game struct {
	world      *simulation.World
	configPath string
	camera     *view.Camera
	paused     bool

	showEnergy       bool
	energyHistory    []float64
	energyHistoryMax int
	fusions          int

	shortcutsVisible bool
	resetModalOpen   bool
}

// sprite is a body projected for one frame.
type sprite struct {
	body   *physics.Body
	x, y   float64
	r      float64
	depth  float64
	colorC color.RGBA
}

func newGame(w *simulation.World, configPath string) *Game {
	g := &Game{
		world:            w,
		configPath:       configPath,
		camera:           view.NewCamera(screenWidth, screenHeight),
		energyHistoryMax: 600,
		shortcutsVisible: true,
	}
	g.fitCamera()
	return g
}

func (g *Game) fitCamera() {
	bodies := g.world.Bodies()
	pts := make([]physics.Vec3, len(bodies))
	for i, b := range bodies {
		pts[i] = b.DisplayPosition()
	}
	g.camera.Fit(pts)
}

func (g *Game) Update() error {
	if g.resetModalOpen {
		return g.updateResetModal()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.toggleEnergy()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fitCamera()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetModalOpen = true
		return nil
	}
	g.updateCamera()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for _, btn := range g.buttons() {
			if btn.contains(mx, my) && !btn.disabled {
				return btn.action()
			}
		}
	}

	if g.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			return g.advanceOneStep()
		}
		return nil
	}
	return g.advanceOneStep()
}

func (g *Game) updateCamera() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Rotate(-rotateStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Rotate(rotateStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Rotate(0, rotateStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Rotate(0, -rotateStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyNumpadAdd) {
		g.camera.Zoom(1 / zoomStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyNumpadSubtract) {
		g.camera.Zoom(zoomStep)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		if wy > 0 {
			g.camera.Zoom(1 / (zoomStep * zoomStep))
		} else {
			g.camera.Zoom(zoomStep * zoomStep)
		}
	}
}

func (g *Game) updateResetModal() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyY) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.confirmReset()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.resetModalOpen = false
		return nil
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if yes := resetModalYes(); yes.contains(mx, my) {
			g.confirmReset()
			return nil
		}
		// "No" and any click outside the buttons dismiss the modal
		g.resetModalOpen = false
	}
	return nil
}

func (g *Game) confirmReset() {
	if err := g.resetSimulation(); err != nil {
		log.Printf("Reset failed: %v", err)
	}
	g.resetModalOpen = false
}

// advanceOneStep moves the world forward by one step time. A step error
// ends the game.
func (g *Game) advanceOneStep() error {
	if err := g.world.Step(); err != nil {
		return fmt.Errorf("world %q: %w", g.world.Name(), err)
	}
	if n := g.world.LastStep().Fusions; n > 0 {
		g.fusions += n
	}
	if g.showEnergy {
		g.energyHistory = append(g.energyHistory, g.world.KineticEnergy()+g.world.PotentialEnergy())
		if len(g.energyHistory) > g.energyHistoryMax {
			g.energyHistory = g.energyHistory[len(g.energyHistory)-g.energyHistoryMax:]
		}
	}
	return nil
}

func (g *Game) toggleEnergy() error {
	g.showEnergy = !g.showEnergy
	g.energyHistory = nil
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	bodies := g.world.Bodies()
	g.drawTrails(screen, bodies)

	sprites := g.project(bodies)
	for _, s := range sprites {
		vector.DrawFilledCircle(screen, float32(s.x), float32(s.y), float32(s.r), s.colorC, true)
	}

	days := g.world.Time() / simulation.DefaultStepTime
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Env: %s\nPaused: %v\nTime: %.1f d\nBodies: %d\nFusions: %d\nTPS: %.0f",
		g.world.Name(), g.paused, days, len(bodies), g.fusions, ebiten.ActualTPS()))
	drawShortcuts(screen, g)

	mx, my := ebiten.CursorPosition()
	for _, btn := range g.buttons() {
		drawButton(screen, btn.x, btn.y, uiBtnW, uiBtnH, btn.label, btn.active, btn.disabled, btn.contains(mx, my))
	}

	if g.showEnergy {
		drawGraph(screen, g.energyHistory, screenWidth-graphW-16, screenHeight-graphH-16, graphW, graphH,
			color.RGBA{100, 100, 255, 255}, "E = K + U")
	}

	if g.paused {
		if s, ok := hoveredSprite(sprites, mx, my); ok {
			drawTooltip(screen, mx, my, bodyInfo(s.body))
		}
	}

	if g.resetModalOpen {
		drawResetModal(screen)
	}
}

// drawTrails draws the newest part of every trail, fading with age.
func (g *Game) drawTrails(screen *ebiten.Image, bodies []*physics.Body) {
	if len(bodies) == 0 {
		return
	}
	perBody := maxTrailSegments / len(bodies)
	if perBody < 1 {
		return
	}
	for _, b := range bodies {
		samples := b.Trail().Samples()
		if len(samples) < 2 {
			continue
		}
		from := max(0, len(samples)-1-perBody)
		base := view.BodyColor(b)
		n := len(samples) - from
		px, py, _, pok := g.camera.Project(samples[from])
		for i := from + 1; i < len(samples); i++ {
			x, y, _, ok := g.camera.Project(samples[i])
			if ok && pok {
				age := float64(i-from) / float64(n)
				clr := view.Fade(base, 0.15+0.6*age)
				vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 1, clr, true)
			}
			px, py, pok = x, y, ok
		}
	}
}

// project returns the visible bodies, farthest first.
func (g *Game) project(bodies []*physics.Body) []sprite {
	sprites := make([]sprite, 0, len(bodies))
	for _, b := range bodies {
		x, y, depth, ok := g.camera.Project(b.DisplayPosition())
		if !ok {
			continue
		}
		r := max(1, b.DisplayRadius()*g.camera.PixelsPerUnit(depth))
		if x+r < 0 || x-r > screenWidth || y+r < 0 || y-r > screenHeight {
			continue
		}
		sprites = append(sprites, sprite{body: b, x: x, y: y, r: r, depth: depth, colorC: view.BodyColor(b)})
	}
	slices.SortStableFunc(sprites, func(a, b sprite) int { return cmp.Compare(b.depth, a.depth) })
	return sprites
}

func hoveredSprite(sprites []sprite, mx, my int) (sprite, bool) {
	// nearest wins, so scan front to back
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		dx, dy := s.x-float64(mx), s.y-float64(my)
		if rr := s.r + 3; dx*dx+dy*dy <= rr*rr {
			return s, true
		}
	}
	return sprite{}, false
}

func bodyInfo(b *physics.Body) []string {
	p, v := b.Position(), b.Velocity()
	lines := []string{
		fmt.Sprintf("Body #%d", b.ID()),
		fmt.Sprintf("Mass: %.3e kg", b.Mass()),
		fmt.Sprintf("Radius: %.3e m", b.Radius()),
		fmt.Sprintf("Pos: (%.3e, %.3e, %.3e)", p.X(), p.Y(), p.Z()),
		fmt.Sprintf("Vel: (%.3e, %.3e, %.3e)", v.X(), v.Y(), v.Z()),
		fmt.Sprintf("Speed: %.3e m/s", v.Len()),
	}
	if b.Fixed() {
		lines = append(lines, "Fixed")
	}
	return lines
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// resetSimulation reloads the environment file and restarts from t = 0.
func (g *Game) resetSimulation() error {
	w, err := simulation.LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	g.world = w
	g.fusions = 0
	g.energyHistory = nil
	g.paused = false
	g.fitCamera()
	return nil
}

func main() {
	envName := flag.String("env", "solar", "environment preset under pkg/assets (solar, binary, flat, shell)")
	configPath := flag.String("config", "", "path to an environment file; overrides -env")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = filepath.Join("pkg/assets", fmt.Sprintf("%s.json", *envName))
	}

	w, err := simulation.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}
	log.Printf("loaded %s: %d bodies, step %gs", w.Name(), w.Len(), w.StepTime())

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Galaxy Simulator - " + w.Name())
	if err := ebiten.RunGame(newGame(w, path)); err != nil {
		log.Fatalf("simulation stopped: %v", err)
	}
}
