package main

import (
	"os"
	"path/filepath"
	"testing"

	"scrollspace/internal/config"

	"github.com/unixpickle/model3d/model3d"
)

func TestRunExportsEveryMesh(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"SCROLLSPACE_STARS":         "3",
		"SCROLLSPACE_STAR_SEGMENTS": "4",
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	dir := t.TempDir()
	files, err := run(cfg, dir, 10, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("files=%v", files)
	}

	f, err := os.Open(filepath.Join(dir, "cube.stl"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	tris, err := model3d.ReadSTL(f)
	if err != nil {
		t.Fatalf("ReadSTL: %v", err)
	}
	if len(tris) != 12 {
		t.Fatalf("cube triangles=%d", len(tris))
	}

	// 16 radial × 100 tubular segments, two triangles each.
	tf, err := os.Open(filepath.Join(dir, "torus.stl"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer tf.Close()
	torus, err := model3d.ReadSTL(tf)
	if err != nil {
		t.Fatalf("ReadSTL torus: %v", err)
	}
	if len(torus) != 3200 {
		t.Fatalf("torus triangles=%d", len(torus))
	}
}
