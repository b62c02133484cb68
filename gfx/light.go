package gfx

// PointLight emits from a position in all directions, without falloff.
type PointLight struct {
	Position  Vec3
	Color     Color
	Intensity float32
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     Color
	Intensity float32
}

// lightFactor returns per-channel light intensity at a surface point with normal n.
func lightFactor(ambient AmbientLight, lights []PointLight, p, n Vec3) (r, g, b float32) {
	r = float32(ambient.Color.R) / 255 * ambient.Intensity
	g = float32(ambient.Color.G) / 255 * ambient.Intensity
	b = float32(ambient.Color.B) / 255 * ambient.Intensity
	for _, l := range lights {
		d := n.Dot(normalize(l.Position.Sub(p)))
		if d <= 0 {
			continue
		}
		d *= l.Intensity
		r += float32(l.Color.R) / 255 * d
		g += float32(l.Color.G) / 255 * d
		b += float32(l.Color.B) / 255 * d
	}
	return Clamp01(r), Clamp01(g), Clamp01(b)
}
