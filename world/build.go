package world

import (
	"math/rand/v2"

	"scrollspace/gfx"
	"scrollspace/internal/config"
)

// Object names in the scene graph.
const (
	NameTorus       = "torus"
	NameCube        = "cube"
	NameMoon        = "moon"
	NameStar        = "star"
	NameGrid        = "grid-helper"
	NameLightHelper = "light-helper"
)

var (
	torusColor  = gfx.Hex(0xFF6347)
	gridColor   = gfx.Hex(0x888888)
	lightOrigin = gfx.V3(5, 5, 5)
)

// Textures are the maps handed to the scene. Any of them may be nil or not yet
// ready; materials then show their base color.
type Textures struct {
	Background *gfx.Texture
	Cube       *gfx.Texture
	Moon       *gfx.Texture
}

// Scene is the built scene graph plus handles to the objects the update rules
// drive.
type Scene struct {
	Graph  *gfx.Scene
	Camera *gfx.Camera

	Torus *gfx.Object
	Cube  *gfx.Object
	Moon  *gfx.Object
	Stars []*gfx.Object

	Helpers []*gfx.Object
}

// Build assembles the scene. Star positions come from a PCG stream seeded with
// cfg.Seed, so the same config always produces the same sky.
func Build(cfg config.Config, tex Textures) *Scene {
	g := gfx.NewScene()
	g.Background = gfx.Black
	g.BackgroundMap = tex.Background
	g.Ambient = gfx.AmbientLight{Color: gfx.White, Intensity: 0.4}
	g.AddLight(gfx.PointLight{Position: lightOrigin, Color: gfx.White, Intensity: 1})

	cam := gfx.NewPerspectiveCamera(75, 0.1, 1000)
	cam.Position = gfx.V3(0, 0, InitialCameraZ)
	cam.Target = gfx.Vec3{}

	s := &Scene{Graph: g, Camera: cam}

	s.Torus = gfx.NewMesh(NameTorus, gfx.TorusGeometry(10, 3, 16, 100), gfx.StandardMaterial(torusColor))
	g.Add(s.Torus)

	light := gfx.NewMesh(NameLightHelper, gfx.OctahedronLines(1), gfx.BasicMaterial(gfx.White))
	light.Position = lightOrigin
	grid := gfx.NewMesh(NameGrid, gfx.GridGeometry(200, 50), gfx.BasicMaterial(gridColor))
	s.Helpers = []*gfx.Object{light, grid}
	g.Add(s.Helpers...)

	s.Stars = addStars(g, cfg)

	s.Cube = gfx.NewMesh(NameCube, gfx.BoxGeometry(3, 3, 3), gfx.BasicMaterial(gfx.White).WithMap(tex.Cube))
	g.Add(s.Cube)

	s.Moon = gfx.NewMesh(NameMoon, gfx.SphereGeometry(3, 32, 32), gfx.StandardMaterial(gfx.White).WithMap(tex.Moon))
	g.Add(s.Moon)

	s.SetHelpers(cfg.Helpers)
	return s
}

func addStars(g *gfx.Scene, cfg config.Config) []*gfx.Object {
	if cfg.Stars <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))
	spread := func() float32 {
		return float32((rng.Float64() - 0.5) * cfg.StarSpread)
	}

	// All stars share one geometry.
	geom := gfx.SphereGeometry(0.25, cfg.StarSegments, cfg.StarSegments)
	mat := gfx.StandardMaterial(gfx.White)

	stars := make([]*gfx.Object, cfg.Stars)
	for i := range stars {
		star := gfx.NewMesh(NameStar, geom, mat)
		star.Position = gfx.V3(spread(), spread(), spread())
		stars[i] = star
	}
	g.Add(stars...)
	return stars
}

// SetHelpers shows or hides the grid and light helpers.
func (s *Scene) SetHelpers(on bool) {
	for _, h := range s.Helpers {
		h.Visible = on
	}
}

// HelpersVisible reports whether the helpers are currently shown.
func (s *Scene) HelpersVisible() bool {
	return len(s.Helpers) > 0 && s.Helpers[0].Visible
}

// Meshes returns the solid objects, skipping helpers.
func (s *Scene) Meshes() []*gfx.Object {
	out := []*gfx.Object{s.Torus, s.Cube, s.Moon}
	return append(out, s.Stars...)
}

// Sync copies st into the scene: camera position and object rotations.
func (s *Scene) Sync(st *State) {
	s.Camera.Position = gfx.V3(float32(st.Camera.X), float32(st.Camera.Y), float32(st.Camera.Z))
	s.Torus.Rotation = rotationVec(st.Torus)
	s.Moon.Rotation = rotationVec(st.Moon)
}

func rotationVec(r Rotation) gfx.Vec3 {
	return gfx.V3(float32(r.X), float32(r.Y), float32(r.Z))
}
