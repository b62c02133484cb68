package gfx

import "math"

// Vertex is a mesh vertex with texture coordinates (V = 0 at the bottom of the image).
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	U, V   float32
}

// Primitive selects how Indices are grouped.
type Primitive uint8

const (
	Triangles Primitive = iota
	Lines
)

// Geometry is an indexed vertex list.
type Geometry struct {
	Primitive Primitive
	Vertices  []Vertex
	Indices   []uint32
}

// TriangleCount returns the number of triangles, or 0 for line geometry.
func (g *Geometry) TriangleCount() int {
	if g == nil || g.Primitive != Triangles {
		return 0
	}
	return len(g.Indices) / 3
}

// TorusGeometry builds a torus in the XY plane: radius is the distance from the
// center to the middle of the tube.
func TorusGeometry(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, (radialSegments+1)*(tubularSegments+1)),
		Indices:  make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi

			ring := radius + tube*cos32(v)
			pos := V3(ring*cos32(u), ring*sin32(u), tube*sin32(v))
			center := V3(radius*cos32(u), radius*sin32(u), 0)

			g.Vertices = append(g.Vertices, Vertex{
				Pos:    pos,
				Normal: normalize(pos.Sub(center)),
				U:      float32(i) / float32(tubularSegments),
				V:      float32(j) / float32(radialSegments),
			})
		}
	}

	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// SphereGeometry builds a UV sphere centered at the origin.
func SphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*(heightSegments-1)*6),
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			pos := V3(
				-radius*cos32(u*2*math.Pi)*sin32(v*math.Pi),
				radius*cos32(v*math.Pi),
				radius*sin32(u*2*math.Pi)*sin32(v*math.Pi),
			)
			g.Vertices = append(g.Vertices, Vertex{
				Pos:    pos,
				Normal: normalize(pos),
				U:      float32(u),
				V:      float32(1 - v),
			})
		}
	}

	row := uint32(widthSegments + 1)
	for iy := uint32(0); iy < uint32(heightSegments); iy++ {
		for ix := uint32(0); ix < uint32(widthSegments); ix++ {
			a := iy*row + ix + 1
			b := iy*row + ix
			c := (iy+1)*row + ix
			d := (iy+1)*row + ix + 1
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != uint32(heightSegments)-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// BoxGeometry builds an axis-aligned box centered at the origin. Each face carries
// the full 0..1 texture square.
func BoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2

	// Each face: normal, then corners bottom-left, bottom-right, top-right, top-left
	// as seen from outside.
	faces := [6]struct {
		n       Vec3
		corners [4]Vec3
	}{
		{V3(1, 0, 0), [4]Vec3{V3(hx, -hy, hz), V3(hx, -hy, -hz), V3(hx, hy, -hz), V3(hx, hy, hz)}},
		{V3(-1, 0, 0), [4]Vec3{V3(-hx, -hy, -hz), V3(-hx, -hy, hz), V3(-hx, hy, hz), V3(-hx, hy, -hz)}},
		{V3(0, 1, 0), [4]Vec3{V3(-hx, hy, hz), V3(hx, hy, hz), V3(hx, hy, -hz), V3(-hx, hy, -hz)}},
		{V3(0, -1, 0), [4]Vec3{V3(-hx, -hy, -hz), V3(hx, -hy, -hz), V3(hx, -hy, hz), V3(-hx, -hy, hz)}},
		{V3(0, 0, 1), [4]Vec3{V3(-hx, -hy, hz), V3(hx, -hy, hz), V3(hx, hy, hz), V3(-hx, hy, hz)}},
		{V3(0, 0, -1), [4]Vec3{V3(hx, -hy, -hz), V3(-hx, -hy, -hz), V3(-hx, hy, -hz), V3(hx, hy, -hz)}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	g := &Geometry{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(g.Vertices))
		for i, c := range f.corners {
			g.Vertices = append(g.Vertices, Vertex{Pos: c, Normal: f.n, U: uvs[i][0], V: uvs[i][1]})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// GridGeometry builds a square line grid on the XZ plane.
func GridGeometry(size float32, divisions int) *Geometry {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)

	g := &Geometry{
		Primitive: Lines,
		Vertices:  make([]Vertex, 0, 4*(divisions+1)),
		Indices:   make([]uint32, 0, 4*(divisions+1)),
	}
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		base := uint32(len(g.Vertices))
		g.Vertices = append(g.Vertices,
			Vertex{Pos: V3(-half, 0, k)}, Vertex{Pos: V3(half, 0, k)},
			Vertex{Pos: V3(k, 0, -half)}, Vertex{Pos: V3(k, 0, half)},
		)
		g.Indices = append(g.Indices, base, base+1, base+2, base+3)
	}
	return g
}

// OctahedronLines builds a wire octahedron, used to mark a point light.
func OctahedronLines(size float32) *Geometry {
	s := size
	g := &Geometry{
		Primitive: Lines,
		Vertices: []Vertex{
			{Pos: V3(s, 0, 0)}, {Pos: V3(-s, 0, 0)},
			{Pos: V3(0, s, 0)}, {Pos: V3(0, -s, 0)},
			{Pos: V3(0, 0, s)}, {Pos: V3(0, 0, -s)},
		},
	}
	equator := [4]uint32{0, 4, 1, 5}
	for i, a := range equator {
		b := equator[(i+1)%4]
		g.Indices = append(g.Indices, a, b, a, 2, a, 3)
	}
	return g
}
