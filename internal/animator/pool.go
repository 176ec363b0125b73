package animator

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/portfolio-backdrop/internal/shape"
)

// Pool is a fixed-size particle buffer laid out as parallel slices so it
// can be handed to the renderer without repacking. Vector fields hold 3
// floats per particle.
type Pool struct {
	Positions []float32
	Targets   []float32
	Seeds     []float32
	Sizes     []float32
	Colors    []float32
	Alphas    []float32
}

// NewPool places every particle exactly on start and tints it with base.
func NewPool(start *shape.Buffer, base mgl32.Vec3, rng *rand.Rand) *Pool {
	n := start.Count()
	p := &Pool{
		Positions: start.Floats(),
		Targets:   start.Floats(),
		Seeds:     make([]float32, n),
		Sizes:     make([]float32, n),
		Colors:    make([]float32, n*3),
		Alphas:    make([]float32, n),
	}
	for i := 0; i < n; i++ {
		p.Seeds[i] = rng.Float32() * 2 * math.Pi
		p.Sizes[i] = 0.4 + rng.Float32()*0.8
		p.Alphas[i] = 0.15 + rng.Float32()*0.45

		brightness := 0.6 + rng.Float32()*0.4
		i3 := i * 3
		p.Colors[i3] = base[0] * brightness
		p.Colors[i3+1] = base[1] * brightness
		p.Colors[i3+2] = base[2] * brightness
	}
	return p
}

// Len returns the number of particles.
func (p *Pool) Len() int { return len(p.Seeds) }

func (p *Pool) Position(i int) mgl32.Vec3 {
	i3 := i * 3
	return mgl32.Vec3{p.Positions[i3], p.Positions[i3+1], p.Positions[i3+2]}
}

func (p *Pool) Target(i int) mgl32.Vec3 {
	i3 := i * 3
	return mgl32.Vec3{p.Targets[i3], p.Targets[i3+1], p.Targets[i3+2]}
}

func (p *Pool) Color(i int) mgl32.Vec3 {
	i3 := i * 3
	return mgl32.Vec3{p.Colors[i3], p.Colors[i3+1], p.Colors[i3+2]}
}

// Clone returns a deep copy.
func (p *Pool) Clone() *Pool {
	dup := func(s []float32) []float32 { return append([]float32(nil), s...) }
	return &Pool{
		Positions: dup(p.Positions),
		Targets:   dup(p.Targets),
		Seeds:     dup(p.Seeds),
		Sizes:     dup(p.Sizes),
		Colors:    dup(p.Colors),
		Alphas:    dup(p.Alphas),
	}
}
