package shape

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MeshJitter    = 0.025 // per axis, each direction
	GridJitter    = 0.05
	GridWave      = 0.15
	gridNoiseStep = 0.37
)

func jitter(rng *rand.Rand, amount float32) float32 {
	return (rng.Float32()*2 - 1) * amount
}

// SampleMesh cycles through vertices until count points are produced,
// nudging each one by a small random offset.
func SampleMesh(name string, vertices []mgl32.Vec3, count int, rng *rand.Rand) *Buffer {
	if count < 0 {
		count = 0
	}
	coords := make([]float32, count*3)
	for i := 0; i < count; i++ {
		var v mgl32.Vec3
		if len(vertices) > 0 {
			v = vertices[i%len(vertices)]
		}
		i3 := i * 3
		coords[i3] = v[0] + jitter(rng, MeshJitter)
		coords[i3+1] = v[1] + jitter(rng, MeshJitter)
		coords[i3+2] = v[2] + jitter(rng, MeshJitter)
	}
	return NewBuffer(name, coords)
}

// Grid lays count points on a square lattice of the given size in the
// XZ plane. The lattice rolls gently in Y following Perlin noise.
func Grid(name string, count int, size float32, rng *rand.Rand) *Buffer {
	if count < 0 {
		count = 0
	}
	coords := make([]float32, count*3)
	if count == 0 {
		return NewBuffer(name, coords)
	}

	side := int(math.Ceil(math.Sqrt(float64(count))))
	spacing := size / float32(side)
	half := float32(side) / 2
	noise := perlin.NewPerlin(2, 2, 3, rng.Int63())
	ox, oz := rng.Float64()*100, rng.Float64()*100

	for i := 0; i < count; i++ {
		col := i % side
		row := i / side
		n := noise.Noise2D(ox+float64(col)*gridNoiseStep, oz+float64(row)*gridNoiseStep)
		n = math.Max(-1, math.Min(1, n))

		i3 := i * 3
		coords[i3] = (float32(col)-half)*spacing + jitter(rng, GridJitter)
		coords[i3+1] = float32(n) * GridWave
		coords[i3+2] = (float32(row)-half)*spacing + jitter(rng, GridJitter)
	}
	return NewBuffer(name, coords)
}

// Scatter places points on spherical shells between half the radius and
// the full radius, spread evenly over the sphere's surface.
func Scatter(name string, count int, radius float32, rng *rand.Rand) *Buffer {
	if count < 0 {
		count = 0
	}
	coords := make([]float32, count*3)
	for i := 0; i < count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := float64(radius) * (0.5 + rng.Float64()*0.5)

		i3 := i * 3
		coords[i3] = float32(r * math.Sin(phi) * math.Cos(theta))
		coords[i3+1] = float32(r * math.Sin(phi) * math.Sin(theta))
		coords[i3+2] = float32(r * math.Cos(phi))
	}
	return NewBuffer(name, coords)
}

// Cube fills an axis-aligned cube centered on the origin.
func Cube(name string, count int, side float32, rng *rand.Rand) *Buffer {
	if count < 0 {
		count = 0
	}
	coords := make([]float32, count*3)
	for i := range coords {
		coords[i] = (rng.Float32() - 0.5) * side
	}
	return NewBuffer(name, coords)
}
