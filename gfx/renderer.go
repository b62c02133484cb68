package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it; scratch buffers survive between frames.
type Renderer struct {
	Mode  RenderMode
	Depth bool

	depthBuf []float32
	clip     []clipVertex
	poly     []clipVertex
	polyTmp  []clipVertex

	stats Stats
}

// Stats describes the last rendered frame.
type Stats struct {
	Objects   int
	Triangles int
	Lines     int
}

type clipVertex struct {
	p    mgl32.Vec4
	u, v float32
}

type screenVertex struct {
	x, y   float64
	z      float32 // NDC depth
	invW   float32
	uw, vw float32 // u/w, v/w for perspective-correct sampling
}

type shading struct {
	flat Color // used when tex is nil
	tint Color
	tex  *Texture

	fr, fg, fb float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:  RenderSolid,
		Depth: enableDepth,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Stats returns counters for the last Render call.
func (r *Renderer) Stats() Stats { return r.stats }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render draws the scene as seen by cam into the target.
func (r *Renderer) Render(t Target, s *Scene, cam *Camera) {
	if r == nil || t == nil || s == nil || cam == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.stats = Stats{}

	r.drawBackground(t, w, h, s)
	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := float32(w) / float32(h)
	vp := cam.Projection(aspect).Mul4(cam.View())

	for _, o := range s.objects {
		if o == nil || !o.Visible || o.Geometry == nil {
			continue
		}
		r.stats.Objects++
		r.renderObject(t, w, h, vp, o, s)
	}
}

func (r *Renderer) drawBackground(t Target, w, h int, s *Scene) {
	tex := s.BackgroundMap
	if !tex.Ready() {
		t.Clear(s.Background)
		return
	}
	for y := 0; y < h; y++ {
		v := 1 - (float32(y)+0.5)/float32(h)
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / float32(w)
			t.SetPixel(x, y, tex.Sample(u, v))
		}
	}
}

func (r *Renderer) renderObject(t Target, w, h int, vp Mat4, o *Object, s *Scene) {
	g := o.Geometry
	if len(g.Vertices) == 0 {
		return
	}

	model := o.Matrix()
	mvp := vp.Mul4(model)

	if cap(r.clip) < len(g.Vertices) {
		r.clip = make([]clipVertex, len(g.Vertices))
	}
	verts := r.clip[:len(g.Vertices)]
	for i, v := range g.Vertices {
		verts[i] = clipVertex{p: mvp.Mul4x1(v.Pos.Vec4(1)), u: v.U, v: v.V}
	}

	mat := o.Material
	if g.Primitive == Lines {
		for i := 0; i+1 < len(g.Indices); i += 2 {
			i0, i1 := int(g.Indices[i]), int(g.Indices[i+1])
			if i0 >= len(verts) || i1 >= len(verts) {
				continue
			}
			if r.drawSegment(t, w, h, verts[i0], verts[i1], mat.Color) {
				r.stats.Lines++
			}
		}
		return
	}

	rot := EulerXYZ(o.Rotation)
	wire := r.Mode == RenderWireframe || mat.Wireframe
	tex := mat.texture()

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(verts) || i1 >= len(verts) || i2 >= len(verts) {
			continue
		}

		tri := [3]clipVertex{verts[i0], verts[i1], verts[i2]}
		if outsideFrustum(tri[:]) {
			continue
		}

		if wire {
			for k := 0; k < 3; k++ {
				r.drawSegment(t, w, h, tri[k], tri[(k+1)%3], mat.Color)
			}
			r.stats.Triangles++
			continue
		}

		sh := shading{flat: mat.Color, tint: mat.Color, tex: tex, fr: 1, fg: 1, fb: 1}
		if mat.Kind == MaterialStandard {
			v0, v1, v2 := g.Vertices[i0], g.Vertices[i1], g.Vertices[i2]
			n := TransformDir(rot, v0.Normal.Add(v1.Normal).Add(v2.Normal))
			if n == (Vec3{}) {
				n = TransformDir(rot, v1.Pos.Sub(v0.Pos).Cross(v2.Pos.Sub(v0.Pos)))
			}
			center := TransformPoint(model, v0.Pos.Add(v1.Pos).Add(v2.Pos).Mul(1.0/3))
			sh.fr, sh.fg, sh.fb = lightFactor(s.Ambient, s.Lights, center, n)
		}
		sh.flat = mat.Color.Scale(sh.fr, sh.fg, sh.fb)

		poly := r.clipNear(tri[:])
		if len(poly) < 3 {
			continue
		}
		var sv [4]screenVertex
		for k, cv := range poly {
			sv[k] = toScreen(cv, w, h)
		}
		for k := 1; k+1 < len(poly); k++ {
			r.fillTriangle(t, w, h, sv[0], sv[k], sv[k+1], &sh)
		}
		r.stats.Triangles++
	}
}

// outsideFrustum reports whether every vertex lies beyond the same clip plane.
func outsideFrustum(vs []clipVertex) bool {
	for axis := 0; axis < 3; axis++ {
		allLow, allHigh := true, true
		for _, v := range vs {
			if v.p[axis] >= -v.p[3] {
				allLow = false
			}
			if v.p[axis] <= v.p[3] {
				allHigh = false
			}
		}
		if allLow || allHigh {
			return true
		}
	}
	return false
}

// clipNear clips a convex polygon against the near plane (z >= -w).
func (r *Renderer) clipNear(in []clipVertex) []clipVertex {
	out := r.poly[:0]
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da := a.p[2] + a.p[3]
		db := b.p[2] + b.p[3]
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpClip(a, b, da/(da-db)))
		}
	}
	r.poly = out
	return out
}

func lerpClip(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		p: a.p.Add(b.p.Sub(a.p).Mul(t)),
		u: a.u + (b.u-a.u)*t,
		v: a.v + (b.v-a.v)*t,
	}
}

func toScreen(cv clipVertex, w, h int) screenVertex {
	invW := 1 / cv.p[3]
	nx := cv.p[0] * invW
	ny := cv.p[1] * invW
	x, y := ndcToScreen(nx, ny, w, h)
	return screenVertex{
		x:    x,
		y:    y,
		z:    cv.p[2] * invW,
		invW: invW,
		uw:   cv.u * invW,
		vw:   cv.v * invW,
	}
}

func ndcToScreen(nx, ny float32, w, h int) (x, y float64) {
	x = float64(nx*0.5+0.5) * float64(w)
	y = float64(1-(ny*0.5+0.5)) * float64(h)
	return x, y
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := Clamp01(z*0.5 + 0.5)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) fillTriangle(t Target, w, h int, a, b, c screenVertex, sh *shading) {
	area := edgeFn(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}

	minX := int(math.Floor(min(a.x, b.x, c.x)))
	maxX := int(math.Ceil(max(a.x, b.x, c.x)))
	minY := int(math.Floor(min(a.y, b.y, c.y)))
	maxY := int(math.Ceil(max(a.y, b.y, c.y)))
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, w-1)
	maxY = min(maxY, h-1)
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edgeFn(b.x, b.y, c.x, c.y, px, py)
			w1 := edgeFn(c.x, c.y, a.x, a.y, px, py)
			w2 := edgeFn(a.x, a.y, b.x, b.y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			a0 := float32(w0 * invArea)
			a1 := float32(w1 * invArea)
			a2 := float32(w2 * invArea)
			z := a0*a.z + a1*b.z + a2*c.z
			if !r.depthTest(w, x, y, z) {
				continue
			}
			if sh.tex == nil {
				t.SetPixel(x, y, sh.flat)
				continue
			}
			iw := a0*a.invW + a1*b.invW + a2*c.invW
			if iw == 0 {
				continue
			}
			u := (a0*a.uw + a1*b.uw + a2*c.uw) / iw
			v := (a0*a.vw + a1*b.vw + a2*c.vw) / iw
			texel := sh.tex.Sample(u, v).Modulate(sh.tint)
			t.SetPixel(x, y, texel.Scale(sh.fr, sh.fg, sh.fb))
		}
	}
}

// drawSegment clips a clip-space segment to the near plane and the viewport, then
// draws it depth-tested. It reports whether anything was drawn.
func (r *Renderer) drawSegment(t Target, w, h int, a, b clipVertex, c Color) bool {
	da := a.p[2] + a.p[3]
	db := b.p[2] + b.p[3]
	if da < 0 && db < 0 {
		return false
	}
	if da < 0 {
		a = lerpClip(a, b, da/(da-db))
	} else if db < 0 {
		b = lerpClip(b, a, db/(db-da))
	}

	sa := toScreen(a, w, h)
	sb := toScreen(b, w, h)
	x0, y0, z0, x1, y1, z1, ok := clipSegment2D(sa.x, sa.y, sa.z, sb.x, sb.y, sb.z, float64(w-1), float64(h-1))
	if !ok {
		return false
	}
	r.drawLine(t, w, int(x0), int(y0), z0, int(x1), int(y1), z1, c)
	return true
}

// clipSegment2D is Liang-Barsky against [0,maxX]×[0,maxY], carrying depth along.
func clipSegment2D(x0, y0 float64, z0 float32, x1, y1 float64, z1 float32, maxX, maxY float64) (float64, float64, float32, float64, float64, float32, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, 0, 0, false
			}
			continue
		}
		rt := q / p
		if p < 0 {
			if rt > t1 {
				return 0, 0, 0, 0, 0, 0, false
			}
			t0 = max(t0, rt)
		} else {
			if rt < t0 {
				return 0, 0, 0, 0, 0, 0, false
			}
			t1 = min(t1, rt)
		}
	}
	dz := z1 - z0
	return x0 + t0*dx, y0 + t0*dy, z0 + float32(t0)*dz,
		x0 + t1*dx, y0 + t1*dy, z0 + float32(t1)*dz,
		true
}

func (r *Renderer) drawLine(t Target, w, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := max(dx, -dy)
	dz := float32(0)
	if steps > 0 {
		dz = (z1 - z0) / float32(steps)
	}

	z := z0
	err := dx + dy
	for {
		if r.depthTest(w, x0, y0, z) {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		moved := false
		if e2 >= dy {
			err += dy
			x0 += sx
			moved = true
		}
		if e2 <= dx {
			err += dx
			y0 += sy
			moved = true
		}
		if moved {
			z += dz
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y float64) float64 {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
