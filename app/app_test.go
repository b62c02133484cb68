package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"scrollspace/gfx"
	"scrollspace/hal"
	"scrollspace/internal/config"
)

type fakeFB struct {
	w, h     int
	format   hal.PixelFormat
	buf      []byte
	presents int
}

func newFakeFB(w, h int, format hal.PixelFormat) *fakeFB {
	return &fakeFB{w: w, h: h, format: format, buf: make([]byte, w*h*format.BytesPerPixel())}
}

func (f *fakeFB) Width() int                   { return f.w }
func (f *fakeFB) Height() int                  { return f.h }
func (f *fakeFB) Format() hal.PixelFormat      { return f.format }
func (f *fakeFB) StrideBytes() int             { return f.w * f.format.BytesPerPixel() }
func (f *fakeFB) Buffer() []byte               { return f.buf }
func (f *fakeFB) Present() error               { f.presents++; return nil }
func (f *fakeFB) ClearRGB(r, g, b uint8)       { fillRGBA(f.buf, r, g, b) }
func (f *fakeFB) Framebuffer() hal.Framebuffer { return f }

func fillRGBA(buf []byte, r, g, b uint8) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = r, g, b, 0xFF
	}
}

type fakeLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *fakeLog) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type fakeHAL struct {
	log   *fakeLog
	fb    *fakeFB
	keys  chan hal.KeyEvent
	ptr   chan hal.PointerEvent
	ticks chan uint64
}

func newFakeHAL(format hal.PixelFormat) *fakeHAL {
	return &fakeHAL{
		log:   &fakeLog{},
		fb:    newFakeFB(64, 48, format),
		keys:  make(chan hal.KeyEvent, 16),
		ptr:   make(chan hal.PointerEvent, 16),
		ticks: make(chan uint64, 16),
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h.fb }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return h }

func (h *fakeHAL) Keyboard() hal.Keyboard      { return h }
func (h *fakeHAL) Pointer() hal.Pointer        { return fakePointer{h.ptr} }
func (h *fakeHAL) Events() <-chan hal.KeyEvent { return h.keys }
func (h *fakeHAL) Ticks() <-chan uint64        { return h.ticks }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

func pngData(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 16; i++ {
		img.Set(i%4, i/4, color.RGBA{R: 40, G: 80, B: 160, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	return buf.Bytes()
}

func testConfig(t *testing.T, assets fstest.MapFS) Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"SCROLLSPACE_STARS":         "5",
		"SCROLLSPACE_STAR_SEGMENTS": "4",
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return Config{Config: cfg, Assets: assets}
}

func allAssets(t *testing.T) fstest.MapFS {
	data := pngData(t)
	return fstest.MapFS{
		"pandas.jpg":          {Data: data},
		"northern-lights.jpg": {Data: data},
		"moon.jpg":            {Data: data},
	}
}

func newTestApp(t *testing.T, h *fakeHAL, assets fstest.MapFS) *app {
	t.Helper()
	a, err := newApp(h, testConfig(t, assets))
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a
}

func waitTextures(t *testing.T, a *app) {
	t.Helper()
	for _, f := range a.pending {
		select {
		case <-f.Done():
		case <-time.After(5 * time.Second):
			t.Fatalf("texture %s did not finish", f.Texture().Name)
		}
	}
	select {
	case <-a.textures.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("texture set did not finish")
	}
}

func TestNewRendersFirstFrame(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	step, err := NewWithConfig(h, testConfig(t, allAssets(t)))
	if err != nil || step == nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d want 1", h.fb.presents)
	}
	if !h.log.contains("scrollspace") {
		t.Fatalf("no startup line: %v", h.log.lines)
	}
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestStepAppliesEveryTick(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	a := newTestApp(t, h, nil)
	for i := uint64(1); i <= 3; i++ {
		h.ticks <- i
	}
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if a.sim.Frames() != 3 {
		t.Fatalf("frames=%d want 3", a.sim.Frames())
	}
	if h.fb.presents != 2 {
		t.Fatalf("presents=%d want 2", h.fb.presents)
	}
}

func TestStepWheelScrollsCamera(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	a := newTestApp(t, h, nil)

	h.ptr <- hal.PointerEvent{Kind: hal.PointerWheel, DY: 10}
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if a.sim.Page.Top() != -1000 {
		t.Fatalf("top=%v", a.sim.Page.Top())
	}
	if z := a.sim.State.Camera.Z; z < 9.999 || z > 10.001 {
		t.Fatalf("camera z=%v want 10", z)
	}
	if h.fb.presents != 2 {
		t.Fatalf("scroll did not redraw: presents=%d", h.fb.presents)
	}

	h.ptr <- hal.PointerEvent{Kind: hal.PointerDrag, DX: 20}
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if a.sim.Controls.Idle() {
		t.Fatalf("drag did not reach the controls")
	}
}

func TestStepKeys(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	a := newTestApp(t, h, nil)

	h.keys <- hal.KeyEvent{Press: true, Rune: 'w'}
	h.keys <- hal.KeyEvent{Press: true, Rune: 'h'}
	h.keys <- hal.KeyEvent{Press: false, Rune: 'w'}
	h.keys <- hal.KeyEvent{Code: hal.KeyEnd, Press: true}
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if a.sim.Renderer.Mode != gfx.RenderWireframe {
		t.Fatalf("wireframe not toggled")
	}
	if a.sim.Scene.HelpersVisible() {
		t.Fatalf("helpers not toggled")
	}
	if a.sim.Page.Top() != a.sim.Page.MinTop() {
		t.Fatalf("End did not scroll: %v", a.sim.Page.Top())
	}

	for _, ev := range []hal.KeyEvent{{Press: true, Rune: 'q'}, {Code: hal.KeyEscape, Press: true}} {
		h.keys <- ev
		err := a.step()
		if !errors.Is(err, ErrQuit) || !errors.Is(err, hal.ErrStop) {
			t.Fatalf("%+v: err=%v", ev, err)
		}
	}
}

func TestTexturesReadyAreLogged(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	a := newTestApp(t, h, allAssets(t))
	waitTextures(t, a)

	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if a.loaded != 3 || len(a.pending) != 0 {
		t.Fatalf("loaded=%d pending=%d", a.loaded, len(a.pending))
	}
	if !h.log.contains("moon.jpg: ready (4x4)") || !h.log.contains("textures: 3/3 loaded") {
		t.Fatalf("log=%v", h.log.lines)
	}
	if a.textures != nil {
		t.Fatalf("texture set still tracked after summary")
	}
	if !a.sim.Scene.Moon.Material.Map.Ready() {
		t.Fatalf("moon map not ready")
	}
}

func TestTextureFailureIsLoggedNotFatal(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	a := newTestApp(t, h, fstest.MapFS{})
	waitTextures(t, a)

	h.ticks <- 1
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if a.loaded != 0 || !h.log.contains("pandas.jpg") || !h.log.contains("textures: 0/3 loaded, first error") {
		t.Fatalf("loaded=%d log=%v", a.loaded, h.log.lines)
	}
	if a.sim.Frames() != 1 {
		t.Fatalf("frames=%d", a.sim.Frames())
	}
}

func TestPanicScreen(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	a := newTestApp(t, h, nil)
	a.sim.Scene = nil

	h.ticks <- 1
	err := a.step()
	if err == nil || !strings.Contains(err.Error(), "app panic") {
		t.Fatalf("err=%v", err)
	}
	if !h.log.contains("scrollspace panic") {
		t.Fatalf("panic not logged")
	}
	// Bottom-right corner stays on the white panic background.
	off := len(h.fb.buf) - 4
	if h.fb.buf[off] != 255 || h.fb.buf[off+1] != 255 || h.fb.buf[off+2] != 255 {
		t.Fatalf("corner=%v", h.fb.buf[off:off+4])
	}
	if again := a.step(); again != err {
		t.Fatalf("second step err=%v", again)
	}
}

func TestRGB565Framebuffer(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGB565)
	a := newTestApp(t, h, nil)
	h.ticks <- 1
	if err := a.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	h := newFakeHAL(hal.PixelFormatRGBA8888)
	h.fb.format = 0
	if _, err := NewWithConfig(h, testConfig(t, nil)); !errors.Is(err, hal.ErrNotImplemented) {
		t.Fatalf("err=%v", err)
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		in         string
		n          int16
		head, tail string
	}{
		{"hello", 10, "hello", ""},
		{"hello", 2, "he", "llo"},
		{"héllo", 2, "hé", "llo"},
		{"", 3, "", ""},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.in, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q", tt.in, tt.n, head, tail)
		}
	}
}

func TestRunsOnHeadlessHost(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t, allAssets(t))
	newApp := func(h hal.HAL) (func() error, error) { return NewWithConfig(h, cfg) }

	err := hal.RunHeadless(context.Background(), newApp, hal.HeadlessConfig{
		Width:         64,
		Height:        48,
		Hz:            1000,
		Ticks:         5,
		ScrollPerTick: 1,
		Log:           &logs,
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if !strings.Contains(logs.String(), "scrollspace") {
		t.Fatalf("logs=%q", logs.String())
	}
}

func TestHUDDisplayEncodesLikeFramebuffer(t *testing.T) {
	for _, format := range []hal.PixelFormat{hal.PixelFormatRGB565, hal.PixelFormatRGBA8888} {
		fb := newFakeFB(4, 2, format)
		d := fbDisplay{fb: fb}
		c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
		d.SetPixel(3, 1, c)
		d.SetPixel(4, 0, c)
		d.SetPixel(-1, 0, c)

		bpp := format.BytesPerPixel()
		want := make([]byte, bpp)
		format.PutPixel(want, c.R, c.G, c.B)
		off := 1*fb.StrideBytes() + 3*bpp
		if !bytes.Equal(fb.buf[off:off+bpp], want) {
			t.Fatalf("format %v: pixel = %v, want %v", format, fb.buf[off:off+bpp], want)
		}
		if !bytes.Equal(fb.buf[:off], make([]byte, off)) {
			t.Fatalf("format %v: out-of-range writes landed in the buffer", format)
		}
	}
}
