// Command meshexport writes the scene's meshes as binary STL files, in world
// space, after an optional number of animation frames.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"scrollspace/gfx"
	"scrollspace/internal/config"
	"scrollspace/world"

	"github.com/unixpickle/essentials"
)

func main() {
	var outDir string
	var frames int
	var scroll float64
	flag.StringVar(&outDir, "out", "meshes", "Output directory.")
	flag.IntVar(&frames, "frames", 0, "Animation frames to apply before export.")
	flag.Float64Var(&scroll, "scroll", 0, "Wheel notches to scroll before export.")
	flag.Parse()

	if outDir == "" {
		essentials.Die("-out is required")
	}
	cfg, err := config.Load()
	essentials.Must(err)

	files, err := run(cfg, outDir, frames, scroll)
	essentials.Must(err)
	for _, f := range files {
		log.Println("wrote", f)
	}
}

func run(cfg config.Config, outDir string, frames int, scroll float64) ([]string, error) {
	sim := world.NewSim(cfg, world.Textures{}, nil)
	sim.Scroll(scroll)
	for i := 0; i < frames; i++ {
		sim.Advance()
	}
	sim.Scene.Sync(&sim.State)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", outDir, err)
	}

	s := sim.Scene
	groups := []struct {
		name string
		objs []*gfx.Object
	}{
		{world.NameTorus, []*gfx.Object{s.Torus}},
		{world.NameCube, []*gfx.Object{s.Cube}},
		{world.NameMoon, []*gfx.Object{s.Moon}},
		{"stars", s.Stars},
	}

	var written []string
	for _, g := range groups {
		if len(g.objs) == 0 {
			continue
		}
		path := filepath.Join(outDir, g.name+".stl")
		if err := writeSTL(path, g.objs); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeSTL(path string, objs []*gfx.Object) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := gfx.WriteSTL(f, objs...); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
