package shape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestIcosahedron_VertexCountAndRadius(t *testing.T) {
	for _, detail := range []int{0, 1, 4} {
		verts := Icosahedron(1.6, detail)
		assert.Len(t, verts, 60*(detail+1)*(detail+1))
		for _, v := range verts {
			assert.InDelta(t, 1.6, v.Len(), eps)
		}
	}
}

func TestTorusKnot_VertexCountAndBounds(t *testing.T) {
	verts := TorusKnot(1.2, 0.35, 128, 32, 2, 3)
	require.Len(t, verts, 129*33)
	for _, v := range verts {
		// knot centerline stays within 1.5*radius, tube adds at most its radius
		assert.LessOrEqual(t, v.Len(), float32(1.2*1.5+0.35+eps))
	}
	assert.Nil(t, TorusKnot(1, 0.1, 0, 8, 2, 3))
}

func TestUVSphere_VertexCountAndRadius(t *testing.T) {
	verts := UVSphere(1.6, 32, 32)
	require.Len(t, verts, 33*33)
	for _, v := range verts {
		assert.InDelta(t, 1.6, v.Len(), eps)
	}
	assert.InDelta(t, 1.6, verts[0].Y(), eps)
	assert.InDelta(t, -1.6, verts[len(verts)-1].Y(), eps)
}

func TestSampleMesh_WrapsAndJitters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	verts := []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	buf := SampleMesh("tri", verts, 10, rng)
	require.Equal(t, 10, buf.Count())
	require.Equal(t, 30, buf.Len())
	assert.Equal(t, "tri", buf.Name())

	for i := 0; i < buf.Count(); i++ {
		want := verts[i%len(verts)]
		got := buf.At(i)
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, want[axis], got[axis], MeshJitter+eps)
		}
	}
}

func TestSampleMesh_EmptyMeshAndCount(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	assert.Equal(t, 0, SampleMesh("none", nil, 0, rng).Count())

	buf := SampleMesh("origin", nil, 4, rng)
	require.Equal(t, 4, buf.Count())
	for i := 0; i < 4; i++ {
		assert.LessOrEqual(t, buf.At(i).Len(), float32(MeshJitter*math.Sqrt(3)+eps))
	}
}

func TestGrid_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const size = 4
	buf := Grid("grid", 3000, size, rng)
	require.Equal(t, 3000, buf.Count())

	side := int(math.Ceil(math.Sqrt(3000)))
	spacing := float32(size) / float32(side)
	for i := 0; i < buf.Count(); i++ {
		p := buf.At(i)
		assert.LessOrEqual(t, p.X(), float32(size)/2+GridJitter+eps)
		assert.GreaterOrEqual(t, p.X(), -float32(size)/2-GridJitter-eps)
		assert.LessOrEqual(t, p.Z(), float32(size)/2+GridJitter+eps)
		assert.GreaterOrEqual(t, p.Z(), -float32(size)/2-GridJitter-eps)
		assert.LessOrEqual(t, float32(math.Abs(float64(p.Y()))), float32(GridWave+eps))

		col := i % side
		wantX := (float32(col) - float32(side)/2) * spacing
		assert.InDelta(t, wantX, p.X(), GridJitter+eps)
	}
}

func TestScatter_Shell(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	buf := Scatter("scatter", 3000, 3, rng)
	require.Equal(t, 3000, buf.Count())
	for i := 0; i < buf.Count(); i++ {
		r := buf.At(i).Len()
		assert.GreaterOrEqual(t, r, float32(1.5-eps))
		assert.LessOrEqual(t, r, float32(3+eps))
	}
}

func TestScatter_CoversBothHemispheres(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	buf := Scatter("scatter", 2000, 1, rng)
	var above, below int
	for i := 0; i < buf.Count(); i++ {
		if buf.At(i).Z() > 0 {
			above++
		} else {
			below++
		}
	}
	// area-correct sampling splits roughly evenly
	assert.InDelta(t, 1000, above, 150)
	assert.InDelta(t, 1000, below, 150)
}

func TestCube_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	buf := Cube("stars", 500, 50, rng)
	require.Equal(t, 500, buf.Count())
	for _, f := range buf.Floats() {
		assert.LessOrEqual(t, float32(math.Abs(float64(f))), float32(25))
	}
}

func TestRegenerate_SameLengthDifferentContent(t *testing.T) {
	a := Scatter("s", 100, 3, rand.New(rand.NewSource(7)))
	b := Scatter("s", 100, 3, rand.New(rand.NewSource(8)))
	assert.Equal(t, a.Len(), b.Len())
	assert.NotEqual(t, a.Floats(), b.Floats())
}

func TestBuffer_Immutable(t *testing.T) {
	buf := NewBuffer("b", []float32{1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, 2, buf.Count())

	out := buf.Floats()
	out[0] = 99
	assert.Equal(t, float32(1), buf.At(0).X())

	dst := make([]float32, 6)
	assert.Equal(t, 6, buf.CopyTo(dst))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, dst)
}
