package world

import (
	"context"
	"math"
	"testing"
	"time"

	"scrollspace/gfx"
	"scrollspace/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"SCROLLSPACE_STARS": "20",
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func newTarget(w, h int) *gfx.RGBATarget {
	return &gfx.RGBATarget{Buf: make([]byte, w*h*4), Stride: w * 4, W: w, H: h}
}

func TestBuildDefaultScene(t *testing.T) {
	cfg := testConfig(t)
	s := Build(cfg, Textures{})

	if got := len(s.Graph.Objects()); got != 3+2+cfg.Stars {
		t.Fatalf("objects=%d", got)
	}
	if s.Graph.Find(NameTorus) != s.Torus || s.Graph.Find(NameMoon) != s.Moon || s.Graph.Find(NameCube) != s.Cube {
		t.Fatalf("named objects not in graph")
	}
	if s.Camera.Position != gfx.V3(0, 0, 30) {
		t.Fatalf("camera=%v", s.Camera.Position)
	}
	if !s.HelpersVisible() {
		t.Fatalf("helpers hidden by default")
	}
	for _, star := range s.Stars {
		for _, c := range star.Position {
			if c < -50 || c > 50 {
				t.Fatalf("star outside spread: %v", star.Position)
			}
		}
	}
	if len(s.Meshes()) != 3+cfg.Stars {
		t.Fatalf("meshes=%d", len(s.Meshes()))
	}
}

func TestBuildStarsAreSeeded(t *testing.T) {
	cfg := testConfig(t)
	a := Build(cfg, Textures{})
	b := Build(cfg, Textures{})
	for i := range a.Stars {
		if a.Stars[i].Position != b.Stars[i].Position {
			t.Fatalf("star %d differs across builds", i)
		}
	}

	cfg.Seed++
	c := Build(cfg, Textures{})
	if a.Stars[0].Position == c.Stars[0].Position {
		t.Fatalf("different seed produced the same first star")
	}
}

func TestSimScrollMovesCameraOnlyOnChange(t *testing.T) {
	sim := NewSim(testConfig(t), Textures{}, nil)

	if sim.Scroll(-1) {
		t.Fatalf("scroll up at top fired")
	}
	if sim.State.Moon != (Rotation{}) || sim.Scrolls() != 0 {
		t.Fatalf("mapper ran without a scroll event")
	}

	if !sim.Scroll(10) {
		t.Fatalf("scroll down did not fire")
	}
	if !approx(sim.State.Camera.Z, 10) || !approx(sim.State.Camera.X, 0.2) {
		t.Fatalf("camera=%+v", sim.State.Camera)
	}
	if sim.State.Moon != MoonSpin || sim.Scrolls() != 1 {
		t.Fatalf("moon=%+v scrolls=%d", sim.State.Moon, sim.Scrolls())
	}

	sim.ScrollEnd()
	if !approx(sim.State.Camera.Z, 42) {
		t.Fatalf("end: camera=%+v", sim.State.Camera)
	}
	sim.ScrollHome()
	if sim.State.Camera != (CameraState{}) {
		t.Fatalf("home: camera=%+v", sim.State.Camera)
	}
}

func TestSimFrameRendersAndSyncs(t *testing.T) {
	tgt := newTarget(48, 32)
	sim := NewSim(testConfig(t), Textures{}, tgt)

	sim.Frame()
	if sim.Frames() != 1 || sim.State.Torus != TorusSpin {
		t.Fatalf("frames=%d torus=%+v", sim.Frames(), sim.State.Torus)
	}
	if sim.Scene.Torus.Rotation != gfx.V3(0.01, 0.005, 0.01) {
		t.Fatalf("torus object rotation=%v", sim.Scene.Torus.Rotation)
	}
	if sim.Renderer.Stats().Triangles == 0 {
		t.Fatalf("nothing rendered")
	}
	if sim.Scene.Camera.Position != gfx.V3(0, 0, 30) {
		t.Fatalf("idle controls moved the camera: %v", sim.Scene.Camera.Position)
	}

	// The moon sits at the origin, straight through the torus hole.
	off := 16*tgt.Stride + 24*4
	if tgt.Buf[off] == 0 && tgt.Buf[off+1] == 0 && tgt.Buf[off+2] == 0 {
		t.Fatalf("center pixel is background")
	}
}

func TestSimRunAppliesOneFramePerTick(t *testing.T) {
	sim := NewSim(testConfig(t), Textures{}, nil)

	ticks := make(chan uint64, 100)
	for i := uint64(1); i <= 100; i++ {
		ticks <- i
	}
	close(ticks)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sim.Run(ctx, ticks); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Frames() != 100 {
		t.Fatalf("frames=%d", sim.Frames())
	}
	if math.Abs(sim.State.Torus.X-1.0) > 1e-9 || math.Abs(sim.State.Torus.Y-0.5) > 1e-9 {
		t.Fatalf("torus=%+v", sim.State.Torus)
	}
}

func TestSimRunStopsOnCancel(t *testing.T) {
	sim := NewSim(testConfig(t), Textures{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sim.Run(ctx, make(chan uint64)); err != context.Canceled {
		t.Fatalf("err=%v", err)
	}
}

func TestSimToggles(t *testing.T) {
	sim := NewSim(testConfig(t), Textures{}, nil)

	sim.ToggleWireframe()
	if sim.Renderer.Mode != gfx.RenderWireframe {
		t.Fatalf("wireframe not enabled")
	}
	sim.ToggleWireframe()
	if sim.Renderer.Mode != gfx.RenderSolid {
		t.Fatalf("wireframe not disabled")
	}

	sim.ToggleHelpers()
	if sim.Scene.HelpersVisible() {
		t.Fatalf("helpers still visible")
	}
}

func TestSimCatchUpMatchesFrames(t *testing.T) {
	cfg := testConfig(t)
	each := NewSim(cfg, Textures{}, newTarget(32, 24))
	batch := NewSim(cfg, Textures{}, newTarget(32, 24))
	for _, s := range []*Sim{each, batch} {
		s.Scroll(3)
		s.Controls.Rotate(40, -20)
		s.Controls.Zoom(0.8)
	}

	for i := 0; i < 4; i++ {
		each.Frame()
	}
	for i := 0; i < 3; i++ {
		batch.Advance()
	}
	batch.Frame()

	if each.Frames() != batch.Frames() || each.State != batch.State {
		t.Fatalf("state: each=%+v batch=%+v", each.State, batch.State)
	}
	if each.Scene.Camera.Position != batch.Scene.Camera.Position {
		t.Fatalf("camera: each=%v batch=%v", each.Scene.Camera.Position, batch.Scene.Camera.Position)
	}
	if each.Scene.Torus.Rotation != batch.Scene.Torus.Rotation {
		t.Fatalf("torus: each=%v batch=%v", each.Scene.Torus.Rotation, batch.Scene.Torus.Rotation)
	}
}
