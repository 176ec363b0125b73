// Package animator advances the background particle cloud one display
// frame at a time, morphing it between the shapes of the page sections.
package animator

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/section"
	"github.com/iburimskiy/portfolio-backdrop/internal/shape"
)

type State int

const (
	Settled State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "settled"
}

// Params tunes the per-frame update.
type Params struct {
	MorphSpeed      float32 // progress per frame
	TransitionBlend float32 // blend toward target, scaled by eased progress
	SettledBlend    float32
	ScatterWeight   float32
	FloatAmplitude  float32
	ColorBlend      float32

	PointerReach  float32
	PointerRadius float32
	PointerForce  float32

	RotationSpeed     float32
	PointerTilt       float32
	StarRotationSpeed float32
}

func DefaultParams() Params {
	return Params{
		MorphSpeed:      config.MorphSpeed,
		TransitionBlend: config.TransitionBlend,
		SettledBlend:    config.SettledBlend,
		ScatterWeight:   config.ScatterWeight,
		FloatAmplitude:  config.FloatAmplitude,
		ColorBlend:      config.ColorBlend,

		PointerReach:  config.PointerReach,
		PointerRadius: config.PointerRadius,
		PointerForce:  config.MouseInfluence * config.PointerPush,

		RotationSpeed:     config.RotationSpeed,
		PointerTilt:       config.PointerTilt,
		StarRotationSpeed: config.StarRotationSpeed,
	}
}

// FrameInput is the snapshot of outside state the animator sees for one
// frame. Section is the raw name the UI reported; Pointer is normalized
// to [-1,1] with y up; Time is seconds since the scene started.
type FrameInput struct {
	Section string
	Pointer mgl32.Vec2
	Time    float64
}

// Starfield is the slowly turning backdrop of stars behind the cloud.
type Starfield struct {
	Points   *shape.Buffer
	Rotation float32
	Opacity  float32
	Size     float32
}

type Animator struct {
	params  Params
	mapper  *section.Mapper
	pool    *Pool
	scatter *shape.Buffer
	stars   *Starfield

	applied      section.ID
	progress     float32
	targetColor  mgl32.Vec3
	currentColor mgl32.Vec3

	rotX, rotY float32
	frames     uint64
}

// New builds an animator settled on the initial section.
func New(mapper *section.Mapper, initial string, starCount int, params Params, rng *rand.Rand) *Animator {
	start := mapper.Lookup(initial)
	return &Animator{
		params:  params,
		mapper:  mapper,
		pool:    NewPool(start.Shape, start.Color, rng),
		scatter: shape.Scatter("scatter", mapper.Count(), config.ScatterRadius, rng),
		stars: &Starfield{
			Points:  shape.Cube("stars", starCount, config.StarFieldSize, rng),
			Opacity: config.StarOpacity,
			Size:    config.StarSize,
		},
		applied:      start.ID,
		progress:     1,
		targetColor:  start.Color,
		currentColor: start.Color,
	}
}

func (a *Animator) Pool() *Pool              { return a.pool }
func (a *Animator) Stars() *Starfield        { return a.stars }
func (a *Animator) Section() section.ID      { return a.applied }
func (a *Animator) Progress() float32        { return a.progress }
func (a *Animator) CurrentColor() mgl32.Vec3 { return a.currentColor }
func (a *Animator) Frames() uint64           { return a.frames }

func (a *Animator) State() State {
	if a.progress < 1 {
		return Transitioning
	}
	return Settled
}

// Rotation returns the cloud's X tilt and Y spin in radians.
func (a *Animator) Rotation() (x, y float32) { return a.rotX, a.rotY }

// ModelMatrix rotates model space into world space.
func (a *Animator) ModelMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(a.rotX).Mul4(mgl32.HomogRotate3DY(a.rotY))
}

// Step advances the cloud by one frame.
func (a *Animator) Step(in FrameInput) {
	a.frames++
	a.advanceTransition(in.Section)

	p := a.params
	eased := EaseInOutCubic(a.progress)
	transitioning := a.progress < 1
	envelope := ScatterEnvelope(a.progress) * p.ScatterWeight
	k := p.SettledBlend
	if transitioning {
		k = eased * p.TransitionBlend
	}

	a.currentColor = a.currentColor.Add(a.targetColor.Sub(a.currentColor).Mul(p.ColorBlend))

	t := in.Time
	pool := a.pool
	for i := 0; i < pool.Len(); i++ {
		i3 := i * 3
		seed := pool.Seeds[i]

		tx, ty, tz := pool.Targets[i3], pool.Targets[i3+1], pool.Targets[i3+2]
		if transitioning {
			s := a.scatter.At(i)
			tx += s[0] * envelope
			ty += s[1] * envelope
			tz += s[2] * envelope
		}

		cx := pool.Positions[i3]
		cy := pool.Positions[i3+1]
		cz := pool.Positions[i3+2]
		cx += (tx - cx) * k
		cy += (ty - cy) * k
		cz += (tz - cz) * k

		fx, fy, fz := Float(t, seed, p.FloatAmplitude)
		cx += fx
		cy += fy
		cz += fz

		rx, ry := Repel(cx, cy, in.Pointer, seed, p)
		cx += rx
		cy += ry

		pool.Positions[i3] = cx
		pool.Positions[i3+1] = cy
		pool.Positions[i3+2] = cz

		b := Brightness(t, seed)
		pool.Colors[i3] += (a.currentColor[0]*b - pool.Colors[i3]) * p.ColorBlend
		pool.Colors[i3+1] += (a.currentColor[1]*b - pool.Colors[i3+1]) * p.ColorBlend
		pool.Colors[i3+2] += (a.currentColor[2]*b - pool.Colors[i3+2]) * p.ColorBlend
	}

	a.rotY += p.RotationSpeed
	a.rotX = in.Pointer.Y() * p.PointerTilt
	a.stars.Rotation += p.StarRotationSpeed
}

func (a *Animator) advanceTransition(name string) {
	id, _ := section.Parse(name)
	if id != a.applied {
		target := a.mapper.Target(id)
		a.applied = id
		a.progress = 0
		a.targetColor = target.Color
		target.Shape.CopyTo(a.pool.Targets)
		return
	}
	if a.progress < 1 {
		a.progress = clamp01(a.progress + a.params.MorphSpeed)
	}
}

// Float is the per-particle drift for time t; seed keeps each particle on
// its own phase.
func Float(t float64, seed, amplitude float32) (x, y, z float32) {
	s := float64(seed)
	x = float32(math.Sin(t*0.5+s)) * amplitude
	y = float32(math.Cos(t*0.7+s*1.3)) * amplitude
	z = float32(math.Sin(t*0.3+s*0.7)) * amplitude
	return x, y, z
}

// Brightness oscillates between 0.6 and 1.0 on the particle's phase.
func Brightness(t float64, seed float32) float32 {
	return 0.8 + float32(math.Sin(t*0.5+float64(seed)))*0.2
}

// Repel returns the push the pointer gives a particle at (x, y) in the
// cloud's XY plane. The push points away from the pointer and fades
// linearly to zero at the influence radius. A particle sitting exactly
// under the pointer is pushed along its seed angle.
func Repel(x, y float32, pointer mgl32.Vec2, seed float32, p Params) (dx, dy float32) {
	if p.PointerRadius <= 0 {
		return 0, 0
	}
	ox := x - pointer.X()*p.PointerReach
	oy := y - pointer.Y()*p.PointerReach
	d := float32(math.Hypot(float64(ox), float64(oy)))
	if d >= p.PointerRadius {
		return 0, 0
	}

	force := (1 - d/p.PointerRadius) * p.PointerForce
	if d < 1e-6 {
		return float32(math.Cos(float64(seed))) * force, float32(math.Sin(float64(seed))) * force
	}
	return ox / d * force, oy / d * force
}
