package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

// Camera is a fixed perspective camera looking down -Z at the origin.
type Camera struct {
	proj   mgl32.Mat4
	view   mgl32.Mat4
	width  float32
	height float32
	ratio  float32
}

func NewCamera(width, height int, pixelRatio float64) *Camera {
	c := &Camera{
		view: mgl32.LookAtV(
			mgl32.Vec3{0, 0, config.CameraDistance},
			mgl32.Vec3{0, 0, 0},
			mgl32.Vec3{0, 1, 0},
		),
	}
	c.Resize(width, height, pixelRatio)
	return c
}

// Resize updates the aspect ratio and the pixel ratio used for point sizes.
func (c *Camera) Resize(width, height int, pixelRatio float64) {
	c.width = float32(max(width, 1))
	c.height = float32(max(height, 1))
	c.ratio = float32(clampPixelRatio(pixelRatio))
	c.proj = mgl32.Perspective(
		mgl32.DegToRad(config.CameraFOV),
		c.width/c.height,
		config.CameraNear,
		config.CameraFar,
	)
}

func (c *Camera) Size() (w, h float32) { return c.width, c.height }

func (c *Camera) PixelRatio() float32 { return c.ratio }

// Project maps a model-space point to screen pixels. depth is the
// distance in front of the camera; ok is false when the point falls
// outside the near/far range.
func (c *Camera) Project(model mgl32.Mat4, p mgl32.Vec3) (x, y, depth float32, ok bool) {
	viewPos := c.view.Mul4x1(model.Mul4x1(p.Vec4(1)))
	depth = -viewPos.Z()
	if depth <= config.CameraNear || depth >= config.CameraFar {
		return 0, 0, depth, false
	}
	clip := c.proj.Mul4x1(viewPos)
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) / 2 * c.width
	y = (1 - ndcY) / 2 * c.height
	return x, y, depth, true
}

// PointSize is the on-screen diameter in pixels of a point of the given
// size at depth, never below one pixel.
func (c *Camera) PointSize(size, depth float32) float32 {
	if depth <= 0 {
		return 1
	}
	return max(size*c.ratio*(config.SizeAttenuation/depth), 1)
}

// Fog is the fraction of a point's light that survives to the camera.
func Fog(depth float32) float32 {
	d := float64(config.FogDensity * depth)
	return float32(math.Exp(-d * d))
}

func clampPixelRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 1
	}
	return math.Min(r, config.MaxPixelRatio)
}
