package game

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/portfolio-backdrop/internal/animator"
	"github.com/iburimskiy/portfolio-backdrop/internal/logging"
)

//go:embed particle.kage
var particleShaderSrc []byte

// energyGlow is how much a full-volume soundtrack brightens the particles.
const energyGlow = 0.5

var starColor = mgl32.Vec3{1, 1, 1}

// drawList collects point sprites as texture-free quads for one
// DrawTrianglesShader call.
type drawList struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func (d *drawList) reset() {
	d.vertices = d.vertices[:0]
	d.indices = d.indices[:0]
}

func (d *drawList) points() int { return len(d.vertices) / 4 }

// addPoint appends a square sprite of the given diameter centered at x, y.
// The Custom0/Custom1 pair carries the corner in -1..1 for the shader.
func (d *drawList) addPoint(x, y, size float32, rgb mgl32.Vec3, alpha float32) {
	if len(d.vertices)+4 > 1<<16 {
		return
	}
	half := size / 2
	base := uint16(len(d.vertices))
	for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		d.vertices = append(d.vertices, ebiten.Vertex{
			DstX:    x + corner[0]*half,
			DstY:    y + corner[1]*half,
			ColorR:  rgb[0],
			ColorG:  rgb[1],
			ColorB:  rgb[2],
			ColorA:  alpha,
			Custom0: corner[0],
			Custom1: corner[1],
		})
	}
	d.indices = append(d.indices, base, base+1, base+2, base+1, base+3, base+2)
}

// addCloud projects every particle of the pool.
func (d *drawList) addCloud(cam *Camera, model mgl32.Mat4, pool *animator.Pool, energy float32) {
	glow := 1 + clamp01(energy)*energyGlow
	for i := 0; i < pool.Len(); i++ {
		x, y, depth, ok := cam.Project(model, pool.Position(i))
		if !ok {
			continue
		}
		alpha := clamp01(pool.Alphas[i] * Fog(depth) * glow)
		d.addPoint(x, y, cam.PointSize(pool.Sizes[i], depth), pool.Color(i), alpha)
	}
}

func (d *drawList) addStars(cam *Camera, stars *animator.Starfield) {
	if stars == nil || stars.Points == nil {
		return
	}
	model := mgl32.HomogRotate3DY(stars.Rotation)
	for i := 0; i < stars.Points.Count(); i++ {
		x, y, depth, ok := cam.Project(model, stars.Points.At(i))
		if !ok {
			continue
		}
		d.addPoint(x, y, cam.PointSize(stars.Size, depth), starColor, stars.Opacity*Fog(depth))
	}
}

// Scene owns the GPU-side resources of the backdrop: the sprite shader and
// the offscreen layer the points are accumulated into.
type Scene struct {
	log    logging.Logger
	camera *Camera
	shader *ebiten.Shader
	layer  *ebiten.Image
	list   drawList
	closed bool
}

// Mount compiles the shader and allocates a layer sized to the surface.
// Anything acquired before a failure is released again.
func Mount(width, height int, pixelRatio float64, log logging.Logger) (_ *Scene, err error) {
	s := &Scene{log: log, camera: NewCamera(width, height, pixelRatio)}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	s.shader, err = ebiten.NewShader(particleShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compile particle shader: %w", err)
	}
	s.Resize(width, height, pixelRatio)
	return s, nil
}

// Resize reallocates the layer when the surface size changes and updates
// the camera. Safe on a nil or closed scene.
func (s *Scene) Resize(width, height int, pixelRatio float64) {
	if s == nil || s.closed {
		return
	}
	s.camera.Resize(width, height, pixelRatio)
	if width <= 0 || height <= 0 {
		s.releaseLayer()
		return
	}
	if s.layer != nil {
		b := s.layer.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		s.releaseLayer()
	}
	s.layer = ebiten.NewImage(width, height)
	s.log.Debugf("scene surface %dx%d @%.1fx", width, height, s.camera.PixelRatio())
}

// Draw renders stars and particles additively onto screen.
func (s *Scene) Draw(screen *ebiten.Image, anim *animator.Animator, energy float32) {
	if s == nil || s.closed || s.shader == nil || s.layer == nil {
		return
	}
	s.list.reset()
	s.list.addStars(s.camera, anim.Stars())
	s.list.addCloud(s.camera, anim.ModelMatrix(), anim.Pool(), energy)

	s.layer.Clear()
	s.layer.DrawTrianglesShader(s.list.vertices, s.list.indices, s.shader, &ebiten.DrawTrianglesShaderOptions{
		Blend: ebiten.BlendLighter,
	})
	screen.DrawImage(s.layer, nil)
}

func (s *Scene) Camera() *Camera {
	if s == nil {
		return nil
	}
	return s.camera
}

// Close releases the shader and the layer. Safe to call more than once.
func (s *Scene) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.releaseLayer()
	if s.shader != nil {
		s.shader.Deallocate()
		s.shader = nil
	}
}

func (s *Scene) releaseLayer() {
	if s.layer != nil {
		s.layer.Deallocate()
		s.layer = nil
	}
}
