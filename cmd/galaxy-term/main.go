package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ssine/galaxy-simulator/pkg/physics"
	"github.com/ssine/galaxy-simulator/pkg/simulation"
	"github.com/ssine/galaxy-simulator/pkg/view"
)

const trailLen = 24

type Game struct {
	screen        tcell.Screen
	width, height int

	world      *simulation.World
	configPath string
	proj       view.TopDown
	paused     bool
	fusions    int

	sound *fusionSound
}

func NewGame(w *simulation.World, configPath string, mute bool) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{
		screen:     screen,
		world:      w,
		configPath: configPath,
	}
	g.handleResize()
	g.fit()

	if !mute {
		g.sound, err = newFusionSound()
		if err != nil {
			// Non-fatal, the viewer runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	return g, nil
}

func (g *Game) fit() {
	bodies := g.world.Bodies()
	pts := make([]physics.Vec3, len(bodies))
	for i, b := range bodies {
		pts[i] = b.DisplayPosition()
	}
	g.proj.Fit(pts)
}

// handleResize keeps the top and bottom rows for the status lines.
func (g *Game) handleResize() {
	g.width, g.height = g.screen.Size()
	g.proj.Cols = g.width
	g.proj.Rows = max(0, g.height-2)
}

func (g *Game) step() error {
	if err := g.world.Step(); err != nil {
		return fmt.Errorf("world %q: %w", g.world.Name(), err)
	}
	if n := g.world.LastStep().Fusions; n > 0 {
		g.fusions += n
		g.sound.play(n)
	}
	return nil
}

func (g *Game) reset() {
	w, err := simulation.LoadConfig(g.configPath)
	if err != nil {
		log.Printf("Reset failed: %v", err)
		return
	}
	g.world = w
	g.fusions = 0
	g.fit()
}

// handleInput returns false when the viewer should exit.
func (g *Game) handleInput(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false, nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false, nil
			case 'p', ' ':
				g.paused = !g.paused
			case 'n':
				if g.paused {
					return true, g.step()
				}
			case '+', '=':
				g.proj.Zoom(1.25)
			case '-':
				g.proj.Zoom(0.8)
			case 'f':
				g.fit()
			case 'r':
				g.reset()
			}
		}
	case *tcell.EventResize:
		g.handleResize()
		g.screen.Sync()
	}
	return true, nil
}

// offsetScreen shifts drawing down by dy rows, below the status line.
type offsetScreen struct {
	tcell.Screen
	dy int
}

func (o offsetScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	o.Screen.SetContent(x, y+o.dy, primary, combining, style)
}

func (g *Game) draw() {
	g.screen.Clear()

	bodies := g.world.Bodies()
	visible := view.DrawTopDown(offsetScreen{g.screen, 1}, &g.proj, bodies, trailLen)

	state := "running"
	if g.paused {
		state = "paused"
	}
	hud := fmt.Sprintf(" %s | t=%.1fd | bodies %d (%d on screen) | fusions %d | %s",
		g.world.Name(), g.world.Time()/simulation.DefaultStepTime, len(bodies), visible, g.fusions, state)
	view.DrawText(g.screen, 0, 0, hud, tcell.StyleDefault.Reverse(true))
	view.DrawText(g.screen, 0, g.height-1, " q quit  p pause  n step  +/- zoom  f fit  r reset",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	g.screen.Show()
}

func (g *Game) run(fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			more, err := g.handleInput(ev)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}

		case <-ticker.C:
			if !g.paused {
				if err := g.step(); err != nil {
					return err
				}
			}
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.sound.close()
	g.screen.Fini()
}

func main() {
	envName := flag.String("env", "solar", "environment preset under pkg/assets (solar, binary, flat, shell)")
	configPath := flag.String("config", "", "path to an environment file; overrides -env")
	fps := flag.Int("fps", 30, "frames (and steps) per second")
	mute := flag.Bool("mute", false, "disable the fusion tone")
	flag.Parse()

	if *fps <= 0 {
		fmt.Fprintf(os.Stderr, "-fps must be positive, got %d\n", *fps)
		os.Exit(2)
	}
	path := *configPath
	if path == "" {
		path = filepath.Join("pkg/assets", fmt.Sprintf("%s.json", *envName))
	}

	w, err := simulation.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	game, err := NewGame(w, path, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	err = game.run(*fps)
	game.cleanup()
	if err != nil {
		log.Fatalf("simulation stopped: %v", err)
	}
}
