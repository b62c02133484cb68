package gfx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var ErrTextureNotReady = errors.New("gfx: texture not ready")

// Texture is an image sampled by materials and backgrounds.
//
// A texture starts empty and becomes Ready exactly once, after its pixels are in
// place. Readers must check Ready before sampling.
type Texture struct {
	Name string

	w, h  int
	pix   []Color
	ready atomic.Bool
}

// NewTexture returns an empty, not-ready texture.
func NewTexture(name string) *Texture {
	return &Texture{Name: name}
}

// TextureFromImage returns a ready texture holding a copy of img.
func TextureFromImage(name string, img image.Image) *Texture {
	t := NewTexture(name)
	t.fill(img)
	return t
}

func (t *Texture) Ready() bool { return t != nil && t.ready.Load() }

// Size returns the texture dimensions, or 0, 0 while not ready.
func (t *Texture) Size() (w, h int) {
	if !t.Ready() {
		return 0, 0
	}
	return t.w, t.h
}

// Sample returns the nearest texel for wrapped UV coordinates (V = 0 at the bottom).
func (t *Texture) Sample(u, v float32) Color {
	if !t.Ready() || t.w == 0 || t.h == 0 {
		return White
	}
	u = wrap01(u)
	v = wrap01(v)
	x := int(u * float32(t.w))
	y := int((1 - v) * float32(t.h))
	if x >= t.w {
		x = t.w - 1
	}
	if y >= t.h {
		y = t.h - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return t.pix[y*t.w+x]
}

func (t *Texture) fill(img image.Image) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pix[y*w+x] = Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
		}
	}
	t.w, t.h, t.pix = w, h, pix
	t.ready.Store(true)
}

func wrap01(v float32) float32 {
	v -= float32(int(v))
	if v < 0 {
		v += 1
	}
	return v
}

// TextureFuture is a texture that is still loading.
type TextureFuture struct {
	tex  *Texture
	done chan struct{}
	err  error
}

// Texture returns the texture immediately; it turns Ready when loading succeeds.
func (f *TextureFuture) Texture() *Texture { return f.tex }

// Done is closed when loading finished, successfully or not.
func (f *TextureFuture) Done() <-chan struct{} { return f.done }

// Err returns the load error. It is only meaningful after Done is closed.
func (f *TextureFuture) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return ErrTextureNotReady
	}
}

// Wait blocks until loading finishes or ctx is done.
func (f *TextureFuture) Wait(ctx context.Context) (*Texture, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		if f.err != nil {
			return nil, f.err
		}
		return f.tex, nil
	}
}

// TextureLoader decodes PNG and JPEG textures from a file system.
type TextureLoader struct {
	FS fs.FS
}

func NewTextureLoader(fsys fs.FS) *TextureLoader {
	return &TextureLoader{FS: fsys}
}

// Load starts decoding name in the background.
func (l *TextureLoader) Load(ctx context.Context, name string) *TextureFuture {
	f := &TextureFuture{tex: NewTexture(name), done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.err = l.decode(ctx, f.tex)
	}()
	return f
}

// TextureSet is a group of textures loading together.
type TextureSet struct {
	Futures []*TextureFuture

	done chan struct{}
	err  error
}

// LoadSet starts loading every name concurrently. One failure does not cancel the
// others.
func (l *TextureLoader) LoadSet(ctx context.Context, names ...string) *TextureSet {
	s := &TextureSet{Futures: make([]*TextureFuture, len(names)), done: make(chan struct{})}
	var g errgroup.Group
	for i, name := range names {
		fut := l.Load(ctx, name)
		s.Futures[i] = fut
		g.Go(func() error {
			<-fut.Done()
			return fut.err
		})
	}
	go func() {
		s.err = g.Wait()
		close(s.done)
	}()
	return s
}

// Textures returns the set's textures in load order.
func (s *TextureSet) Textures() []*Texture {
	out := make([]*Texture, len(s.Futures))
	for i, f := range s.Futures {
		out[i] = f.Texture()
	}
	return out
}

// Done is closed once every texture in the set finished loading.
func (s *TextureSet) Done() <-chan struct{} { return s.done }

// Err returns the first load error in the set. It is only meaningful after Done is
// closed.
func (s *TextureSet) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return ErrTextureNotReady
	}
}

// Wait blocks until the whole set finished or ctx is done.
func (s *TextureSet) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return s.err
	}
}

// LoadAll loads every name concurrently and returns the textures in order, or the
// first error.
func (l *TextureLoader) LoadAll(ctx context.Context, names ...string) ([]*Texture, error) {
	s := l.LoadSet(ctx, names...)
	if err := s.Wait(ctx); err != nil {
		return nil, err
	}
	return s.Textures(), nil
}

func (l *TextureLoader) decode(ctx context.Context, t *Texture) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("texture %s: %w", t.Name, err)
	}
	if l.FS == nil {
		return fmt.Errorf("texture %s: no asset file system", t.Name)
	}
	data, err := fs.ReadFile(l.FS, t.Name)
	if err != nil {
		return fmt.Errorf("texture %s: read: %w", t.Name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("texture %s: decode: %w", t.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("texture %s: %w", t.Name, err)
	}
	t.fill(img)
	return nil
}
