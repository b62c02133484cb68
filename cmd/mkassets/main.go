// Command mkassets writes procedural stand-ins for the scene textures.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/unixpickle/essentials"
)

const defaultSize = 256

type asset struct {
	name  string
	paint func(img *image.RGBA, rng *rand.Rand)
}

var assets = []asset{
	{"pandas.jpg", paintSpace},
	{"northern-lights.jpg", paintAurora},
	{"moon.jpg", paintMoon},
}

func main() {
	var outDir string
	var size int
	var seed uint64
	flag.StringVar(&outDir, "out", "assets", "Output directory.")
	flag.IntVar(&size, "size", defaultSize, "Texture width and height in pixels.")
	flag.Uint64Var(&seed, "seed", 1, "Random seed.")
	flag.Parse()

	if outDir == "" {
		essentials.Die("-out is required")
	}
	if size <= 0 {
		essentials.Die(fmt.Sprintf("invalid -size %d", size))
	}
	essentials.Must(run(outDir, size, seed))
}

func run(outDir string, size int, seed uint64) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", outDir, err)
	}
	for _, a := range assets {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		a.paint(img, rand.New(rand.NewPCG(seed, uint64(len(a.name)))))
		if err := writeJPEG(filepath.Join(outDir, a.name), img); err != nil {
			return err
		}
	}
	return nil
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}

// paintSpace is a dark blue gradient with scattered stars.
func paintSpace(img *image.RGBA, rng *rand.Rand) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		f := float64(y) / float64(b.Dy())
		c := color.RGBA{R: uint8(4 + 10*f), G: uint8(6 + 14*f), B: uint8(20 + 40*f), A: 255}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	for i := 0; i < b.Dx()*b.Dy()/200; i++ {
		v := uint8(160 + rng.IntN(96))
		img.SetRGBA(rng.IntN(b.Dx()), rng.IntN(b.Dy()), color.RGBA{R: v, G: v, B: v, A: 255})
	}
}

// paintAurora draws wavy green and violet curtains.
func paintAurora(img *image.RGBA, rng *rand.Rand) {
	b := img.Bounds()
	phase := rng.Float64() * 2 * math.Pi
	for y := b.Min.Y; y < b.Max.Y; y++ {
		fy := float64(y) / float64(b.Dy())
		for x := b.Min.X; x < b.Max.X; x++ {
			fx := float64(x) / float64(b.Dx())
			wave := 0.5 + 0.5*math.Sin(fx*4*math.Pi+phase+3*math.Sin(fy*2*math.Pi))
			curtain := wave * (1 - fy)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(20 + 90*(1-wave)*fy),
				G: uint8(30 + 200*curtain),
				B: uint8(50 + 120*(1-wave)*(1-fy)),
				A: 255,
			})
		}
	}
}

// paintMoon is grey regolith with darker craters.
func paintMoon(img *image.RGBA, rng *rand.Rand) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8(150 + rng.IntN(30))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	for i := 0; i < 24; i++ {
		cx, cy := rng.IntN(b.Dx()), rng.IntN(b.Dy())
		r := 2 + rng.IntN(max(b.Dx()/12, 1))
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) > r*r || !(image.Point{X: x, Y: y}.In(b)) {
					continue
				}
				c := img.RGBAAt(x, y)
				c.R, c.G, c.B = c.R*3/4, c.G*3/4, c.B*3/4
				img.SetRGBA(x, y, c)
			}
		}
	}
}
