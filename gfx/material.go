package gfx

// MaterialKind selects how a surface responds to light.
type MaterialKind uint8

const (
	// MaterialBasic ignores lights.
	MaterialBasic MaterialKind = iota
	// MaterialStandard is lit by the scene's ambient and point lights.
	MaterialStandard
)

// Material is a minimal surface description.
//
// Map, when set and ready, is modulated by Color; until the texture is ready the
// surface falls back to Color alone.
type Material struct {
	Kind      MaterialKind
	Color     Color
	Map       *Texture
	Wireframe bool
}

func BasicMaterial(c Color) Material    { return Material{Kind: MaterialBasic, Color: c} }
func StandardMaterial(c Color) Material { return Material{Kind: MaterialStandard, Color: c} }

// WithMap returns a copy of m sampling t.
func (m Material) WithMap(t *Texture) Material { m.Map = t; return m }

// texture returns the map if it can be sampled this frame.
func (m Material) texture() *Texture {
	if m.Map == nil || !m.Map.Ready() {
		return nil
	}
	return m.Map
}
