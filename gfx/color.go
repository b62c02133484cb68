package gfx

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex converts a 0xRRGGBB literal.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

var (
	White = RGB(0xFF, 0xFF, 0xFF)
	Black = RGB(0, 0, 0)
)

func (c Color) MulScalar(s float32) Color {
	return c.Scale(s, s, s)
}

// Scale multiplies each channel by its own factor, clamped to 0..255.
func (c Color) Scale(r, g, b float32) Color {
	return Color{R: scaleChannel(c.R, r), G: scaleChannel(c.G, g), B: scaleChannel(c.B, b), A: c.A}
}

// Modulate multiplies two colors channel-wise, as a texture is tinted by its material.
func (c Color) Modulate(o Color) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(o.R) / 255),
		G: uint8(uint16(c.G) * uint16(o.G) / 255),
		B: uint8(uint16(c.B) * uint16(o.B) / 255),
		A: c.A,
	}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Lerp blends from c toward o by t in 0..1.
func (c Color) Lerp(o Color, t float32) Color {
	t = Clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: mix(c.A, o.A)}
}

func scaleChannel(ch uint8, s float32) uint8 {
	return uint8(clampF32(float32(ch)*s, 0, 255))
}
