package world

import (
	"context"

	"scrollspace/gfx"
	"scrollspace/internal/config"
)

// Sim owns the state, the page and the scene, and applies scroll events and frame
// ticks to them. It is not safe for concurrent use; every method runs on the
// host's update goroutine.
type Sim struct {
	State    State
	Page     *Page
	Scene    *Scene
	Controls *gfx.OrbitControls
	Renderer *gfx.Renderer

	target gfx.Target

	frames  uint64
	scrolls uint64
}

// NewSim builds the scene and a renderer sized for target. target may be nil and
// set later with SetTarget.
func NewSim(cfg config.Config, tex Textures, target gfx.Target) *Sim {
	s := &Sim{
		State:    NewState(),
		Page:     NewPage(cfg.PageHeight, cfg.ViewportHeight, cfg.WheelStep),
		Scene:    Build(cfg, tex),
		Controls: gfx.NewOrbitControls(gfx.Vec3{}),
	}
	w, h := 0, 0
	if target != nil {
		w, h = target.Size()
	}
	s.Renderer = gfx.NewRenderer(w, h, true)
	if cfg.Wireframe {
		s.Renderer.SetRenderMode(gfx.RenderWireframe)
	}
	s.target = target
	return s
}

func (s *Sim) SetTarget(t gfx.Target) { s.target = t }

// Frames is the number of frames applied so far.
func (s *Sim) Frames() uint64 { return s.frames }

// Scrolls is the number of scroll events that reached the camera mapper.
func (s *Sim) Scrolls() uint64 { return s.scrolls }

// Scroll moves the page by notches wheel steps; positive scrolls down.
func (s *Sim) Scroll(notches float64) bool { return s.onScroll(s.Page.ScrollBy(notches)) }

// ScrollPages moves the page by whole viewports.
func (s *Sim) ScrollPages(n float64) bool { return s.onScroll(s.Page.ScrollPages(n)) }

func (s *Sim) ScrollHome() bool { return s.onScroll(s.Page.Home()) }
func (s *Sim) ScrollEnd() bool  { return s.onScroll(s.Page.End()) }

func (s *Sim) onScroll(changed bool) bool {
	if !changed {
		return false
	}
	s.scrolls++
	MoveCamera(&s.State, s.Page.Top())
	return true
}

// Frame advances one tick and redraws.
func (s *Sim) Frame() {
	s.Advance()
	s.Render()
}

// Advance applies one tick without drawing it. Callers catching up on several
// ticks advance all but the last and Frame the last. The controls are polled by
// Render; Update rebuilds the camera from the synced state, so skipping it on
// catch-up ticks gives the same view.
func (s *Sim) Advance() {
	AdvanceFrame(&s.State)
	s.frames++
}

// Render draws the current state without advancing it.
func (s *Sim) Render() {
	s.Scene.Sync(&s.State)
	s.Controls.Update(s.Scene.Camera)
	if s.target != nil {
		s.Renderer.Render(s.target, s.Scene.Graph, s.Scene.Camera)
	}
}

// Run applies one Frame per tick until ctx is done or ticks is closed.
func (s *Sim) Run(ctx context.Context, ticks <-chan uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Frame()
		}
	}
}

func (s *Sim) ToggleWireframe() {
	if s.Renderer.Mode == gfx.RenderWireframe {
		s.Renderer.SetRenderMode(gfx.RenderSolid)
		return
	}
	s.Renderer.SetRenderMode(gfx.RenderWireframe)
}

func (s *Sim) ToggleHelpers() {
	s.Scene.SetHelpers(!s.Scene.HelpersVisible())
}
