package animator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/portfolio-backdrop/internal/section"
)

// far keeps the pointer out of reach of every particle.
var far = mgl32.Vec2{100, 100}

func quietParams() Params {
	p := DefaultParams()
	p.FloatAmplitude = 0
	return p
}

func newTestAnimator(t *testing.T, n int, params Params) (*Animator, *section.Mapper) {
	t.Helper()
	mapper := section.NewMapper(n, rand.New(rand.NewSource(1)))
	return New(mapper, "hero", 16, params, rand.New(rand.NewSource(2))), mapper
}

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, float32(0), EaseInOutCubic(0))
	assert.Equal(t, float32(1), EaseInOutCubic(1))
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-6)

	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		v := EaseInOutCubic(float32(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestScatterEnvelope_PeaksMidTransition(t *testing.T) {
	assert.Equal(t, float32(0), ScatterEnvelope(0))
	assert.Equal(t, float32(0), ScatterEnvelope(1))
	assert.InDelta(t, 1, ScatterEnvelope(0.5), 1e-6)

	for i := 1; i < 100; i++ {
		p := float32(i) / 100
		assert.LessOrEqual(t, ScatterEnvelope(p), ScatterEnvelope(0.5))
		assert.Greater(t, ScatterEnvelope(p), float32(0))
	}
}

func TestNew_StartsSettledOnInitialShape(t *testing.T) {
	a, mapper := newTestAnimator(t, 200, DefaultParams())

	assert.Equal(t, Settled, a.State())
	assert.Equal(t, float32(1), a.Progress())
	assert.Equal(t, section.Hero, a.Section())

	pool := a.Pool()
	require.Equal(t, 200, pool.Len())
	hero := mapper.Lookup("hero").Shape.Floats()
	assert.Equal(t, hero, pool.Positions)
	assert.Equal(t, hero, pool.Targets)

	for i := 0; i < pool.Len(); i++ {
		assert.GreaterOrEqual(t, pool.Sizes[i], float32(0.4))
		assert.Less(t, pool.Sizes[i], float32(1.2))
		assert.GreaterOrEqual(t, pool.Alphas[i], float32(0.15))
		assert.Less(t, pool.Alphas[i], float32(0.6))
		assert.GreaterOrEqual(t, pool.Seeds[i], float32(0))
		assert.Less(t, pool.Seeds[i], float32(2*math.Pi))
	}
}

func TestStep_HeroToProjectsEndToEnd(t *testing.T) {
	a, mapper := newTestAnimator(t, 3000, DefaultParams())

	frame := 0
	step := func(name string) {
		a.Step(FrameInput{Section: name, Pointer: mgl32.Vec2{0.2, -0.1}, Time: float64(frame) / 60})
		frame++
	}

	for i := 0; i < 10; i++ {
		step("hero")
		require.Equal(t, float32(1), a.Progress())
	}

	step("projects")
	assert.Equal(t, float32(0), a.Progress())
	assert.Equal(t, Transitioning, a.State())
	assert.Equal(t, section.Projects, a.Section())
	assert.Equal(t, mapper.Lookup("projects").Shape.Floats(), a.Pool().Targets)

	resets := 0
	prev := a.Progress()
	for i := 0; i < 100; i++ {
		step("projects")
		p := a.Progress()
		if p == 0 {
			resets++
		}
		assert.GreaterOrEqual(t, p, prev)
		assert.GreaterOrEqual(t, p, float32(0))
		assert.LessOrEqual(t, p, float32(1))
		prev = p
	}
	assert.Zero(t, resets)
	assert.Equal(t, float32(1), a.Progress())
	assert.Equal(t, Settled, a.State())

	for i := 0; i < 20; i++ {
		step("projects")
		assert.Equal(t, float32(1), a.Progress())
	}
}

func TestStep_FullTransitionFrameCount(t *testing.T) {
	a, _ := newTestAnimator(t, 10, DefaultParams())
	a.Step(FrameInput{Section: "about", Pointer: far})

	frames := 0
	for a.State() == Transitioning {
		a.Step(FrameInput{Section: "about", Pointer: far})
		frames++
		require.Less(t, frames, 1000)
	}
	// 1/0.012 rounded up
	assert.Equal(t, 84, frames)
}

func TestStep_ResetsOncePerChange(t *testing.T) {
	a, _ := newTestAnimator(t, 10, DefaultParams())
	seq := []string{"hero", "projects", "projects", "contact", "contact", "contact", "hero"}
	resets := 0
	for _, name := range seq {
		before := a.Section()
		a.Step(FrameInput{Section: name, Pointer: far})
		if a.Section() != before {
			resets++
			assert.Equal(t, float32(0), a.Progress())
		} else {
			assert.NotEqual(t, float32(0), a.Progress())
		}
	}
	assert.Equal(t, 3, resets)
}

func TestStep_UnknownSectionMeansHero(t *testing.T) {
	a, _ := newTestAnimator(t, 10, DefaultParams())
	a.Step(FrameInput{Section: "blog", Pointer: far})
	assert.Equal(t, Settled, a.State())
	assert.Equal(t, section.Hero, a.Section())

	a.Step(FrameInput{Section: "contact", Pointer: far})
	a.Step(FrameInput{Section: "", Pointer: far})
	assert.Equal(t, section.Hero, a.Section())
	assert.Equal(t, float32(0), a.Progress())
}

func TestStep_FirstTransitionFrameDoesNotJump(t *testing.T) {
	a, _ := newTestAnimator(t, 300, quietParams())
	before := append([]float32(nil), a.Pool().Positions...)

	a.Step(FrameInput{Section: "contact", Pointer: far})
	assert.Equal(t, before, a.Pool().Positions)
}

func TestStep_TransitionMovesPartwayTowardGoal(t *testing.T) {
	a, _ := newTestAnimator(t, 300, quietParams())
	a.Step(FrameInput{Section: "projects", Pointer: far})
	for i := 0; i < 30; i++ {
		a.Step(FrameInput{Section: "projects", Pointer: far})
	}

	pool := a.Pool()
	prev := pool.Clone()
	a.Step(FrameInput{Section: "projects", Pointer: far})

	envelope := ScatterEnvelope(a.Progress()) * a.params.ScatterWeight
	for i := 0; i < pool.Len(); i++ {
		goal := prev.Target(i).Add(a.scatter.At(i).Mul(envelope))
		was := prev.Position(i)
		now := pool.Position(i)
		// convex blend: the new point sits on the segment from was to goal
		assert.LessOrEqual(t, now.Sub(was).Len(), goal.Sub(was).Len()+1e-5)
		assert.LessOrEqual(t, goal.Sub(now).Len(), goal.Sub(was).Len()+1e-5)
	}
}

func TestStep_SettledConverges(t *testing.T) {
	a, _ := newTestAnimator(t, 200, quietParams())
	pool := a.Pool()
	for i := range pool.Positions {
		pool.Positions[i] += 0.5
	}

	lastDelta := float32(math.MaxFloat32)
	for frame := 0; frame < 400; frame++ {
		prev := pool.Clone()
		a.Step(FrameInput{Section: "hero", Pointer: far, Time: float64(frame) / 60})

		var delta float32
		for i := 0; i < pool.Len(); i++ {
			delta = float32(math.Max(float64(delta), float64(pool.Position(i).Sub(prev.Position(i)).Len())))
		}
		assert.LessOrEqual(t, delta, lastDelta+1e-6)
		lastDelta = delta
	}

	prev := pool.Clone()
	a.Step(FrameInput{Section: "hero", Pointer: far})
	for i := 0; i < pool.Len(); i++ {
		assert.Less(t, pool.Position(i).Sub(prev.Position(i)).Len(), float32(1e-5))
		assert.Less(t, pool.Position(i).Sub(pool.Target(i)).Len(), float32(1e-4))
	}
}

func TestStep_FloatingIsBounded(t *testing.T) {
	a, _ := newTestAnimator(t, 200, DefaultParams())
	pool := a.Pool()
	bound := a.params.FloatAmplitude * float32(math.Sqrt(3))

	for frame := 0; frame < 50; frame++ {
		prev := pool.Clone()
		a.Step(FrameInput{Section: "hero", Pointer: far, Time: float64(frame) * 0.37})
		for i := 0; i < pool.Len(); i++ {
			// settled blend term plus drift
			blend := prev.Target(i).Sub(prev.Position(i)).Len() * a.params.SettledBlend
			assert.LessOrEqual(t, pool.Position(i).Sub(prev.Position(i)).Len(), blend+bound+1e-6)
		}
	}
}

func TestRepel(t *testing.T) {
	p := DefaultParams()
	pointer := mgl32.Vec2{0.1, 0.2}
	px, py := pointer.X()*p.PointerReach, pointer.Y()*p.PointerReach

	// exactly under the pointer: full force along the seed angle
	dx, dy := Repel(px, py, pointer, 0, p)
	assert.InDelta(t, p.PointerForce, dx, 1e-6)
	assert.InDelta(t, 0, dy, 1e-6)

	// inside the radius: points away, shrinking with distance
	last := float32(math.MaxFloat32)
	for _, dist := range []float32{0.1, 0.5, 1, 1.5, 1.99} {
		dx, dy := Repel(px+dist, py, pointer, 1, p)
		assert.Greater(t, dx, float32(0))
		assert.InDelta(t, 0, dy, 1e-6)
		mag := float32(math.Hypot(float64(dx), float64(dy)))
		assert.Less(t, mag, last)
		assert.InDelta(t, (1-dist/p.PointerRadius)*p.PointerForce, mag, 1e-6)
		last = mag
	}

	dx, dy = Repel(px-0.3, py-0.4, pointer, 1, p)
	assert.Less(t, dx, float32(0))
	assert.Less(t, dy, float32(0))

	// outside the radius: nothing
	for _, dist := range []float32{2.01, 2.5, 10} {
		dx, dy := Repel(px, py+dist, pointer, 1, p)
		assert.Zero(t, dx)
		assert.Zero(t, dy)
	}
}

func TestStep_PointerPushesParticleAway(t *testing.T) {
	mapper := section.NewMapper(100, rand.New(rand.NewSource(1)))
	params := quietParams()
	build := func() *Animator {
		return New(mapper, "hero", 0, params, rand.New(rand.NewSource(3)))
	}

	base := build()
	under := build()
	near := build()
	outside := build()

	target := base.Pool().Position(0)
	at := mgl32.Vec2{target.X() / params.PointerReach, target.Y() / params.PointerReach}
	offset := mgl32.Vec2{at.X() + 0.5/params.PointerReach, at.Y()}
	away := mgl32.Vec2{at.X(), at.Y() + 2.5/params.PointerReach}

	base.Step(FrameInput{Section: "hero", Pointer: far})
	under.Step(FrameInput{Section: "hero", Pointer: at})
	near.Step(FrameInput{Section: "hero", Pointer: offset})
	outside.Step(FrameInput{Section: "hero", Pointer: away})

	ref := base.Pool().Position(0)

	pushUnder := under.Pool().Position(0).Sub(ref)
	seed := base.Pool().Seeds[0]
	assert.InDelta(t, params.PointerForce, pushUnder.Len(), 1e-5)
	assert.InDelta(t, math.Cos(float64(seed))*float64(params.PointerForce), pushUnder.X(), 1e-5)
	assert.InDelta(t, math.Sin(float64(seed))*float64(params.PointerForce), pushUnder.Y(), 1e-5)
	assert.InDelta(t, 0, pushUnder.Z(), 1e-6)

	// pointer to the right of the particle pushes it left, less strongly
	pushNear := near.Pool().Position(0).Sub(ref)
	assert.Less(t, pushNear.X(), float32(0))
	assert.InDelta(t, 0, pushNear.Y(), 1e-5)
	assert.Less(t, pushNear.Len(), pushUnder.Len())

	assert.InDelta(t, 0, outside.Pool().Position(0).Sub(ref).Len(), 1e-6)
}

func TestStep_ColorFollowsSection(t *testing.T) {
	a, mapper := newTestAnimator(t, 50, DefaultParams())
	about := mapper.Lookup("about").Color

	for i := 0; i < 600; i++ {
		a.Step(FrameInput{Section: "about", Pointer: far, Time: 0})
	}
	cur := a.CurrentColor()
	for ch := 0; ch < 3; ch++ {
		assert.InDelta(t, about[ch], cur[ch], 1e-3)
	}

	// at t=0 brightness is 0.8 + 0.2*sin(seed)
	pool := a.Pool()
	for i := 0; i < pool.Len(); i++ {
		b := Brightness(0, pool.Seeds[i])
		c := pool.Color(i)
		for ch := 0; ch < 3; ch++ {
			assert.InDelta(t, about[ch]*b, c[ch], 1e-2)
		}
	}
}

func TestStep_RotationAndTilt(t *testing.T) {
	a, _ := newTestAnimator(t, 10, DefaultParams())
	for i := 0; i < 100; i++ {
		a.Step(FrameInput{Section: "hero", Pointer: mgl32.Vec2{0, 0.5}})
	}
	x, y := a.Rotation()
	assert.InDelta(t, 0.5*a.params.PointerTilt, x, 1e-6)
	assert.InDelta(t, 100*a.params.RotationSpeed, y, 1e-4)
	assert.InDelta(t, 100*a.params.StarRotationSpeed, a.Stars().Rotation, 1e-4)
	assert.Equal(t, uint64(100), a.Frames())

	m := a.ModelMatrix()
	want := mgl32.HomogRotate3DX(x).Mul4(mgl32.HomogRotate3DY(y))
	assert.True(t, m.ApproxEqual(want))
}

func TestStep_EveryParticleRewritten(t *testing.T) {
	a, _ := newTestAnimator(t, 500, DefaultParams())
	a.Step(FrameInput{Section: "contact", Pointer: far})
	prev := a.Pool().Clone()

	a.Step(FrameInput{Section: "contact", Pointer: far, Time: 1.5})
	pool := a.Pool()
	for i := 0; i < pool.Len(); i++ {
		assert.NotEqual(t, prev.Position(i), pool.Position(i), "particle %d left stale", i)
	}
}
