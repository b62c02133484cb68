package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"scrollspace/gfx"
	"scrollspace/hal"
	"scrollspace/internal/buildinfo"
	"scrollspace/internal/config"
	"scrollspace/world"
)

// ErrQuit ends the host loop on user request. Hosts treat it as a clean stop.
var ErrQuit = fmt.Errorf("quit: %w", hal.ErrStop)

type Config struct {
	config.Config

	// Assets holds the textures; os.DirFS(AssetDir) if nil.
	Assets fs.FS
}

type app struct {
	h   hal.HAL
	log hal.Logger
	fb  hal.Framebuffer
	cfg Config

	sim *world.Sim
	hud *hud

	keys  <-chan hal.KeyEvent
	ptr   <-chan hal.PointerEvent
	ticks <-chan uint64

	textures *gfx.TextureSet
	pending  []*gfx.TextureFuture
	loaded   int
	total    int

	dirty  bool
	failed error
}

// New loads the configuration from the environment and starts the scene.
func New(h hal.HAL) (func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(h, Config{Config: cfg})
}

// NewWithConfig builds the scene on h, renders the first frame and returns the
// per-refresh step.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	a, err := newApp(h, cfg)
	if err != nil {
		return nil, err
	}
	return a.step, nil
}

func newApp(h hal.HAL, cfg Config) (*app, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	disp := h.Display()
	if disp == nil {
		return nil, fmt.Errorf("app: display: %w", hal.ErrNotImplemented)
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return nil, fmt.Errorf("app: framebuffer: %w", hal.ErrNotImplemented)
	}
	target, err := targetFor(fb)
	if err != nil {
		return nil, err
	}

	a := &app{h: h, log: h.Logger(), fb: fb, cfg: cfg}
	if a.log == nil {
		a.log = nopLogger{}
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			a.keys = kbd.Events()
		}
		if p := in.Pointer(); p != nil {
			a.ptr = p.Events()
		}
	}
	if t := h.Time(); t != nil {
		a.ticks = t.Ticks()
	}

	if cfg.Assets == nil {
		cfg.Assets = os.DirFS(cfg.AssetDir)
	}
	loader := gfx.NewTextureLoader(cfg.Assets)
	a.textures = loader.LoadSet(context.Background(), cfg.BackgroundTexture, cfg.CubeTexture, cfg.MoonTexture)
	a.pending = append([]*gfx.TextureFuture(nil), a.textures.Futures...)
	a.total = len(a.pending)

	texs := a.textures.Textures()
	a.sim = world.NewSim(cfg.Config, world.Textures{
		Background: texs[0],
		Cube:       texs[1],
		Moon:       texs[2],
	}, target)
	if cfg.HUD {
		a.hud = newHUD(fb)
	}

	a.log.WriteLineString(fmt.Sprintf("scrollspace %s: %dx%d, %d stars, page %.0f/%.0f",
		buildinfo.Short(), fb.Width(), fb.Height(), cfg.Stars, cfg.PageHeight, cfg.ViewportHeight))

	a.sim.Render()
	a.drawHUD()
	if err := fb.Present(); err != nil {
		return nil, fmt.Errorf("app: present: %w", err)
	}
	return a, nil
}

// targetFor wraps the framebuffer's current back buffer.
func targetFor(fb hal.Framebuffer) (gfx.Target, error) {
	switch fb.Format() {
	case hal.PixelFormatRGBA8888:
		return &gfx.RGBATarget{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()}, nil
	case hal.PixelFormatRGB565:
		return &gfx.RGB565Target{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()}, nil
	default:
		return nil, fmt.Errorf("app: pixel format %d: %w", fb.Format(), hal.ErrNotImplemented)
	}
}

func (a *app) step() (err error) {
	if a.failed != nil {
		return a.failed
	}
	defer func() {
		if r := recover(); r != nil {
			a.failed = a.panicScreen(r)
			err = a.failed
		}
	}()

	// The terminal host resizes the framebuffer under us.
	target, err := targetFor(a.fb)
	if err != nil {
		return err
	}
	a.sim.SetTarget(target)

	if err := a.drainKeys(); err != nil {
		return err
	}
	a.drainPointer()
	a.pollTextures()

	if n := a.drainTicks(); n > 0 {
		a.dirty = false
	} else if a.dirty {
		a.sim.Render()
		a.dirty = false
	} else {
		return nil
	}

	a.drawHUD()
	return a.fb.Present()
}

func (a *app) drainKeys() error {
	if a.keys == nil {
		return nil
	}
	for {
		select {
		case ev, ok := <-a.keys:
			if !ok {
				a.keys = nil
				return nil
			}
			if !ev.Press {
				continue
			}
			if err := a.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (a *app) handleKey(ev hal.KeyEvent) error {
	s := a.sim
	switch ev.Code {
	case hal.KeyEscape:
		return ErrQuit
	case hal.KeyUp:
		a.scrolled(s.Scroll(-1))
	case hal.KeyDown:
		a.scrolled(s.Scroll(1))
	case hal.KeyPageUp:
		a.scrolled(s.ScrollPages(-1))
	case hal.KeyPageDown:
		a.scrolled(s.ScrollPages(1))
	case hal.KeyHome:
		a.scrolled(s.ScrollHome())
	case hal.KeyEnd:
		a.scrolled(s.ScrollEnd())
	case hal.KeyLeft:
		s.Controls.Rotate(-keyRotateStep, 0)
		a.dirty = true
	case hal.KeyRight:
		s.Controls.Rotate(keyRotateStep, 0)
		a.dirty = true
	}

	switch ev.Rune {
	case 'q', 'Q':
		return ErrQuit
	case 'w':
		s.ToggleWireframe()
	case 'h':
		s.ToggleHelpers()
	case 'i':
		if a.hud != nil {
			a.hud.visible = !a.hud.visible
		}
	case '+', '=':
		s.Controls.Zoom(1 / zoomStep)
	case '-', '_':
		s.Controls.Zoom(zoomStep)
	case 'r':
		s.Controls.Reset()
	case ' ':
		a.scrolled(s.ScrollPages(1))
	default:
		return nil
	}
	a.dirty = true
	return nil
}

const (
	keyRotateStep = 10
	zoomStep      = 1.1
)

func (a *app) scrolled(changed bool) {
	if changed {
		a.dirty = true
	}
}

func (a *app) drainPointer() {
	if a.ptr == nil {
		return
	}
	for {
		select {
		case ev, ok := <-a.ptr:
			if !ok {
				a.ptr = nil
				return
			}
			switch ev.Kind {
			case hal.PointerWheel:
				a.scrolled(a.sim.Scroll(ev.DY))
			case hal.PointerDrag:
				a.sim.Controls.Rotate(float32(ev.DX), float32(ev.DY))
				a.dirty = true
			}
		default:
			return
		}
	}
}

// drainTicks applies every pending tick and redraws once for the batch.
func (a *app) drainTicks() int {
	if a.ticks == nil {
		return 0
	}
	n := 0
	for {
		select {
		case _, ok := <-a.ticks:
			if !ok {
				a.ticks = nil
				return a.finishTicks(n)
			}
			if n > 0 {
				a.sim.Advance()
			}
			n++
		default:
			return a.finishTicks(n)
		}
	}
}

func (a *app) finishTicks(n int) int {
	if n > 0 {
		a.sim.Frame()
	}
	return n
}

// pollTextures logs each texture load as it finishes, then one summary line once
// the whole set is done.
func (a *app) pollTextures() {
	if len(a.pending) == 0 {
		a.pollTextureSet()
		return
	}
	rest := a.pending[:0]
	for _, f := range a.pending {
		select {
		case <-f.Done():
		default:
			rest = append(rest, f)
			continue
		}
		tex := f.Texture()
		if err := f.Err(); err != nil {
			a.log.WriteLineString(fmt.Sprintf("texture %s: %v", tex.Name, err))
			continue
		}
		w, h := tex.Size()
		a.log.WriteLineString(fmt.Sprintf("texture %s: ready (%dx%d)", tex.Name, w, h))
		a.loaded++
		a.dirty = true
	}
	a.pending = rest
	a.pollTextureSet()
}

func (a *app) pollTextureSet() {
	if a.textures == nil || len(a.pending) != 0 {
		return
	}
	select {
	case <-a.textures.Done():
	default:
		return
	}
	if err := a.textures.Err(); err != nil {
		a.log.WriteLineString(fmt.Sprintf("textures: %d/%d loaded, first error: %v", a.loaded, a.total, err))
	} else {
		a.log.WriteLineString(fmt.Sprintf("textures: %d/%d loaded", a.loaded, a.total))
	}
	a.textures = nil
}

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}
func (nopLogger) WriteLineBytes([]byte)  {}
