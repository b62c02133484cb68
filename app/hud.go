package app

import (
	"fmt"
	"image/color"

	"scrollspace/gfx"
	"scrollspace/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var hudFont = &proggy.TinySZ8pt7b

const (
	hudLineHeight = 10
	hudBaseline   = 8
)

var (
	hudFG     = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
	hudShadow = color.RGBA{A: 0xFF}
)

// hud overlays status text on the presented frame.
type hud struct {
	d       fbDisplay
	visible bool
}

func newHUD(fb hal.Framebuffer) *hud {
	return &hud{d: fbDisplay{fb: fb}, visible: true}
}

func (a *app) drawHUD() {
	if a.hud == nil || !a.hud.visible {
		return
	}
	s := a.sim
	st := s.State
	rs := s.Renderer.Stats()
	mode := "solid"
	if s.Renderer.Mode == gfx.RenderWireframe {
		mode = "wire"
	}
	lines := []string{
		fmt.Sprintf("top %.0f  cam %.2f %.2f %.2f", s.Page.Top(), st.Camera.X, st.Camera.Y, st.Camera.Z),
		fmt.Sprintf("frame %d  tris %d  %s", s.Frames(), rs.Triangles, mode),
		fmt.Sprintf("textures %d/%d", a.loaded, a.total),
	}
	a.hud.draw(lines)
}

func (h *hud) draw(lines []string) {
	y := int16(0)
	_, maxH := h.d.Size()
	for _, line := range lines {
		if y+hudLineHeight > maxH {
			return
		}
		tinyfont.WriteLine(h.d, hudFont, 3, y+hudBaseline+1, line, hudShadow)
		tinyfont.WriteLine(h.d, hudFont, 2, y+hudBaseline, line, hudFG)
		y += hudLineHeight
	}
}

// fbDisplay lets tinyfont draw into a hal framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = fbDisplay{}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	format := d.fb.Format()
	bpp := format.BytesPerPixel()
	off := iy*d.fb.StrideBytes() + ix*bpp
	if bpp == 0 || off < 0 || off+bpp > len(buf) {
		return
	}
	format.PutPixel(buf[off:], c.R, c.G, c.B)
}

func (d fbDisplay) Display() error { return nil }
