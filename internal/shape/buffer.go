package shape

import "github.com/go-gl/mathgl/mgl32"

// Buffer is an immutable flat list of xyz coordinates describing one
// target configuration of the particle cloud.
type Buffer struct {
	name   string
	coords []float32
}

// NewBuffer takes ownership of coords, which must hold 3 floats per point.
func NewBuffer(name string, coords []float32) *Buffer {
	if len(coords)%3 != 0 {
		coords = coords[:len(coords)-len(coords)%3]
	}
	return &Buffer{name: name, coords: coords}
}

func (b *Buffer) Name() string { return b.name }

// Count returns the number of points.
func (b *Buffer) Count() int { return len(b.coords) / 3 }

// Len returns the number of floats (3 per point).
func (b *Buffer) Len() int { return len(b.coords) }

// At returns point i.
func (b *Buffer) At(i int) mgl32.Vec3 {
	i3 := i * 3
	return mgl32.Vec3{b.coords[i3], b.coords[i3+1], b.coords[i3+2]}
}

// CopyTo copies the coordinates into dst and returns the number of floats copied.
func (b *Buffer) CopyTo(dst []float32) int {
	return copy(dst, b.coords)
}

// Floats returns a copy of the coordinates.
func (b *Buffer) Floats() []float32 {
	out := make([]float32, len(b.coords))
	copy(out, b.coords)
	return out
}
