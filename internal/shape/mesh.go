package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	icoT = float32((1 + math.Sqrt(5)) / 2)

	icoVertices = []mgl32.Vec3{
		{-1, icoT, 0}, {1, icoT, 0}, {-1, -icoT, 0}, {1, -icoT, 0},
		{0, -1, icoT}, {0, 1, icoT}, {0, -1, -icoT}, {0, 1, -icoT},
		{icoT, 0, -1}, {icoT, 0, 1}, {-icoT, 0, -1}, {-icoT, 0, 1},
	}

	icoFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron returns the triangle soup of a subdivided icosahedron
// projected onto a sphere of the given radius. Each face is split into
// (detail+1)^2 triangles, so the result holds 60*(detail+1)^2 vertices.
func Icosahedron(radius float32, detail int) []mgl32.Vec3 {
	if detail < 0 {
		detail = 0
	}
	cols := detail + 1
	out := make([]mgl32.Vec3, 0, 60*cols*cols)

	for _, f := range icoFaces {
		a, b, c := icoVertices[f[0]], icoVertices[f[1]], icoVertices[f[2]]

		rows := make([][]mgl32.Vec3, cols+1)
		for i := 0; i <= cols; i++ {
			t := float32(i) / float32(cols)
			aj := lerpVec(a, c, t)
			bj := lerpVec(b, c, t)
			n := cols - i
			rows[i] = make([]mgl32.Vec3, n+1)
			for j := 0; j <= n; j++ {
				if j == 0 && i == cols {
					rows[i][j] = aj
					continue
				}
				rows[i][j] = lerpVec(aj, bj, float32(j)/float32(n))
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					out = append(out, rows[i][k+1], rows[i+1][k], rows[i][k])
				} else {
					out = append(out, rows[i][k+1], rows[i+1][k+1], rows[i+1][k])
				}
			}
		}
	}

	for i := range out {
		out[i] = out[i].Normalize().Mul(radius)
	}
	return out
}

// TorusKnot returns the vertex grid of a (p,q) torus knot tube, ordered
// ring by ring along the knot.
func TorusKnot(radius, tube float32, tubularSegments, radialSegments, p, q int) []mgl32.Vec3 {
	if tubularSegments < 1 || radialSegments < 1 {
		return nil
	}
	out := make([]mgl32.Vec3, 0, (tubularSegments+1)*(radialSegments+1))

	for i := 0; i <= tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments) * float64(p) * 2 * math.Pi

		p1 := knotPoint(u, p, q, radius)
		p2 := knotPoint(u+0.01, p, q, radius)

		tangent := p2.Sub(p1)
		normal := p2.Add(p1)
		binormal := tangent.Cross(normal)
		normal = binormal.Cross(tangent)
		binormal = binormal.Normalize()
		normal = normal.Normalize()

		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			cx := -tube * float32(math.Cos(v))
			cy := tube * float32(math.Sin(v))
			out = append(out, p1.Add(normal.Mul(cx)).Add(binormal.Mul(cy)))
		}
	}
	return out
}

func knotPoint(u float64, p, q int, radius float32) mgl32.Vec3 {
	cu := math.Cos(u)
	su := math.Sin(u)
	quOverP := float64(q) / float64(p) * u
	cs := math.Cos(quOverP)

	r := float64(radius)
	return mgl32.Vec3{
		float32(r * (2 + cs) * 0.5 * cu),
		float32(r * (2 + cs) * su * 0.5),
		float32(r * math.Sin(quOverP) * 0.5),
	}
}

// UVSphere returns the latitude/longitude vertex grid of a sphere, pole
// to pole.
func UVSphere(radius float32, widthSegments, heightSegments int) []mgl32.Vec3 {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	out := make([]mgl32.Vec3, 0, (widthSegments+1)*(heightSegments+1))
	r := float64(radius)

	for iy := 0; iy <= heightSegments; iy++ {
		theta := float64(iy) / float64(heightSegments) * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			phi := float64(ix) / float64(widthSegments) * 2 * math.Pi
			out = append(out, mgl32.Vec3{
				float32(-r * math.Cos(phi) * math.Sin(theta)),
				float32(r * math.Cos(theta)),
				float32(r * math.Sin(phi) * math.Sin(theta)),
			})
		}
	}
	return out
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
