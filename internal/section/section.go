// Package section maps the page section that is on screen to the shape and
// color the particle cloud should take.
package section

import (
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/portfolio-backdrop/internal/shape"
)

type ID int

const (
	Hero ID = iota
	Projects
	About
	Contact
)

var names = [...]string{
	Hero:     "hero",
	Projects: "projects",
	About:    "about",
	Contact:  "contact",
}

func (id ID) String() string {
	if id < 0 || int(id) >= len(names) {
		return names[Hero]
	}
	return names[id]
}

// IDs lists the sections in navigation order.
func IDs() []ID {
	return []ID{Hero, Projects, About, Contact}
}

// Parse resolves a section name. Unknown names report ok=false and Hero.
func Parse(name string) (ID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return ID(i), true
		}
	}
	return Hero, false
}

// Next returns the section after id, wrapping around. Negative steps go back.
func (id ID) Next(step int) ID {
	n := len(names)
	return ID(((int(id)+step)%n + n) % n)
}

// HexColor converts 0xRRGGBB to linear 0..1 components.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(hex>>16&0xff) / 255,
		float32(hex>>8&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

var colors = [...]mgl32.Vec3{
	Hero:     HexColor(0x3b82f6), // blue
	Projects: HexColor(0x8b5cf6), // purple
	About:    HexColor(0x10b981), // emerald
	Contact:  HexColor(0xf59e0b), // amber
}

// Target is what the cloud morphs toward for one section.
type Target struct {
	ID    ID
	Shape *shape.Buffer
	Color mgl32.Vec3
}

// Mapper holds one precomputed target per section.
type Mapper struct {
	count   int
	targets [len(names)]Target
}

// NewMapper precomputes every section shape with count points.
func NewMapper(count int, rng *rand.Rand) *Mapper {
	m := &Mapper{count: count}
	shapes := [...]*shape.Buffer{
		Hero:     shape.SampleMesh(names[Hero], shape.Icosahedron(1.6, 4), count, rng),
		Projects: shape.SampleMesh(names[Projects], shape.TorusKnot(1.2, 0.35, 128, 32, 2, 3), count, rng),
		About:    shape.SampleMesh(names[About], shape.UVSphere(1.6, 32, 32), count, rng),
		Contact:  shape.Grid(names[Contact], count, 4, rng),
	}
	for _, id := range IDs() {
		m.targets[id] = Target{ID: id, Shape: shapes[id], Color: colors[id]}
	}
	return m
}

// Count is the number of points in every shape buffer.
func (m *Mapper) Count() int { return m.count }

// Lookup returns the target for name, or the hero target when name is
// empty or unknown.
func (m *Mapper) Lookup(name string) Target {
	id, _ := Parse(name)
	return m.targets[id]
}

// Target returns the target for id, or the hero target for an invalid id.
func (m *Mapper) Target(id ID) Target {
	if id < 0 || int(id) >= len(m.targets) {
		return m.targets[Hero]
	}
	return m.targets[id]
}
