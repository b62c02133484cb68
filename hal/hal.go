package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrStop is returned by an app step to end the host loop without an error.
var ErrStop = errors.New("stop")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGBA8888 is 32bpp, byte order R, G, B, A.
	PixelFormatRGBA8888
)

// BytesPerPixel returns the pixel size for f, or 0 if unknown.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 2
	case PixelFormatRGBA8888:
		return 4
	default:
		return 0
	}
}

// Framebuffer is a back buffer plus a "present" hook.
//
// Callers draw into Buffer() and call Present() once the frame is complete.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown and Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind distinguishes pointer events.
type PointerKind uint8

const (
	// PointerWheel carries wheel notches in DY; positive scrolls toward the bottom.
	PointerWheel PointerKind = iota + 1
	// PointerDrag carries the cursor motion in pixels while the primary button is held.
	PointerDrag
)

// PointerEvent is a mouse wheel or drag event.
type PointerEvent struct {
	Kind   PointerKind
	DX, DY float64
}

// Pointer provides mouse events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides the display-refresh tick stream.
//
// Each value is the sequence number of one refresh, starting at 1.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

// NewAppFunc builds an app on top of a HAL and returns its per-refresh step.
type NewAppFunc func(HAL) (func() error, error)
