package gfx

import (
	"fmt"
	"io"

	"github.com/unixpickle/model3d/model3d"
)

// WorldTriangles returns the object's triangles in world space. Line geometry has
// none.
func (o *Object) WorldTriangles() []*model3d.Triangle {
	g := o.Geometry
	if g == nil || g.Primitive != Triangles {
		return nil
	}
	m := o.Matrix()
	world := make([]model3d.Coord3D, len(g.Vertices))
	for i, v := range g.Vertices {
		p := TransformPoint(m, v.Pos)
		world[i] = model3d.XYZ(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	out := make([]*model3d.Triangle, 0, g.TriangleCount())
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])
		if a >= len(world) || b >= len(world) || c >= len(world) {
			continue
		}
		// Poles and seams produce zero-area triangles.
		if world[a] == world[b] || world[b] == world[c] || world[a] == world[c] {
			continue
		}
		out = append(out, &model3d.Triangle{world[a], world[b], world[c]})
	}
	return out
}

// WriteSTL writes the triangles of objs as one binary STL.
func WriteSTL(w io.Writer, objs ...*Object) error {
	var tris []*model3d.Triangle
	for _, o := range objs {
		if o == nil {
			continue
		}
		tris = append(tris, o.WorldTriangles()...)
	}
	if len(tris) == 0 {
		return fmt.Errorf("stl: no triangles")
	}
	if err := model3d.WriteSTL(w, tris); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	return nil
}
