// Package game hosts the particle backdrop in an ebiten window: it turns
// keyboard, pointer and section-file input into a per-frame snapshot,
// steps the animator and draws the result.
package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/portfolio-backdrop/internal/animator"
	"github.com/iburimskiy/portfolio-backdrop/internal/logging"
	"github.com/iburimskiy/portfolio-backdrop/internal/section"
	"github.com/iburimskiy/portfolio-backdrop/internal/signal"
)

var backgroundColor = color.RGBA{R: 2, G: 6, B: 23, A: 255}

var sectionKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Soundtrack is the part of the soundtrack player the game drives.
type Soundtrack interface {
	PickAndLoad() error
	TogglePause()
	Playing() bool
	Level() float32
	Close() error
}

// controls is one frame of user input.
type controls struct {
	pick           int // index into section.IDs, or -1
	cycle          int
	openSoundtrack bool
	togglePause    bool
	quit           bool
	pointer        mgl32.Vec2
	pointerMoved   bool
}

func noControls() controls { return controls{pick: -1} }

type Game struct {
	log     logging.Logger
	anim    *animator.Animator
	section *signal.Section
	music   Soundtrack
	scene   *Scene

	width, height int
	pixelRatio    float64

	// viz
	time    float64
	energy  float32
	pointer mgl32.Vec2
	cursorX int
	cursorY int

	lastUnknown string
	lastErr     error
}

func New(anim *animator.Animator, sec *signal.Section, music Soundtrack, log logging.Logger, width, height int) *Game {
	return &Game{
		log:        log,
		anim:       anim,
		section:    sec,
		music:      music,
		width:      width,
		height:     height,
		pixelRatio: 1,
		cursorX:    -1,
		cursorY:    -1,
	}
}

// Mount attaches the scene to a drawing surface of the current size. On
// failure the game keeps running without drawing the backdrop.
func (g *Game) Mount() error {
	scene, err := Mount(g.width, g.height, g.pixelRatio, g.log)
	if err != nil {
		return err
	}
	g.scene = scene
	g.log.Infof("scene mounted: %d particles", g.anim.Pool().Len())
	return nil
}

// Close tears the scene down and stops the soundtrack. Safe to call
// repeatedly and after a failed Mount.
func (g *Game) Close() error {
	g.scene.Close()
	g.scene = nil
	if g.music == nil {
		return nil
	}
	return g.music.Close()
}

func (g *Game) Update() error {
	if err := g.apply(g.readControls()); err != nil {
		return err
	}
	g.tick()
	return nil
}

func (g *Game) readControls() controls {
	c := noControls()
	for i, k := range sectionKeys {
		if inpututil.IsKeyJustPressed(k) {
			c.pick = i
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		c.cycle = 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			c.cycle = -1
		}
	}
	c.openSoundtrack = inpututil.IsKeyJustPressed(ebiten.KeyO)
	c.togglePause = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	c.quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)

	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y := ebiten.TouchPosition(touches[0])
		c.pointer = normalizePointer(x, y, g.width, g.height)
		c.pointerMoved = true
		return c
	}
	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		c.pointer = normalizePointer(x, y, g.width, g.height)
		c.pointerMoved = true
	}
	return c
}

func (g *Game) apply(c controls) error {
	if c.quit {
		return ebiten.Termination
	}

	ids := section.IDs()
	if c.pick >= 0 && c.pick < len(ids) {
		g.section.Set(ids[c.pick].String())
	}
	if c.cycle != 0 {
		g.section.Set(g.anim.Section().Next(c.cycle).String())
	}

	if g.music != nil {
		if c.openSoundtrack {
			if err := g.music.PickAndLoad(); err != nil {
				g.lastErr = err
				g.log.Errorf("soundtrack: %v", err)
			}
		}
		if c.togglePause {
			g.music.TogglePause()
		}
	}

	if c.pointerMoved {
		g.pointer = c.pointer
	}
	return nil
}

// tick advances the animation by one frame.
func (g *Game) tick() {
	g.time += 1.0 / float64(ebiten.DefaultTPS)
	if g.music != nil {
		g.energy = g.music.Level()
	}

	name := g.section.Load()
	if _, ok := section.Parse(name); ok {
		g.lastUnknown = ""
	} else if name != g.lastUnknown {
		g.log.Warnf("unknown section %q, showing %s", name, section.Hero)
		g.lastUnknown = name
	}

	prev := g.anim.Section()
	g.anim.Step(animator.FrameInput{
		Section: name,
		Pointer: g.pointer,
		Time:    g.time,
	})
	if cur := g.anim.Section(); cur != prev {
		g.log.Debugf("section %s -> %s", prev, cur)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.scene.Draw(screen, g.anim, g.energy)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	s := fmt.Sprintf("%s  %s %s", g.anim.Section(), g.anim.State(), formatProgress(g.anim.Progress()))
	if g.scene == nil {
		s += "  (no scene)"
	}
	s += "  |  1-4/Tab: section  O: soundtrack"
	if g.music != nil && g.music.Playing() {
		s += "  Space: pause"
	}
	s += "  Esc/Q: quit"
	if g.lastErr != nil {
		s += "\nError: " + g.lastErr.Error()
	}
	return s
}

// Layout renders at device resolution, with the pixel ratio capped at 2.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	ratio = clampPixelRatio(ratio)
	w := int(math.Ceil(float64(outsideWidth) * ratio))
	h := int(math.Ceil(float64(outsideHeight) * ratio))
	g.resize(w, h, ratio)
	return w, h
}

func (g *Game) resize(width, height int, ratio float64) {
	if width == g.width && height == g.height && ratio == g.pixelRatio {
		return
	}
	g.width, g.height, g.pixelRatio = width, height, ratio
	g.scene.Resize(width, height, ratio)
}
