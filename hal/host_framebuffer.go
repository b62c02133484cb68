package hal

import (
	"image"
	"image/color"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	format PixelFormat
	buf    []byte
	front  []byte
}

func newHostFramebuffer(width, height int, format PixelFormat) *hostFramebuffer {
	f := &hostFramebuffer{format: format}
	f.resize(width, height)
	return f
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return f.format }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

// Present publishes the back buffer to the front buffer read by the host.
func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	bpp := f.format.BytesPerPixel()
	if bpp == 0 {
		return
	}
	for i := 0; i+bpp <= len(f.buf); i += bpp {
		f.format.PutPixel(f.buf[i:], r, g, b)
	}
}

// resize reallocates both buffers. Only the host loop calls it, between steps.
func (f *hostFramebuffer) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = width
	f.height = height
	f.stride = width * f.format.BytesPerPixel()
	f.buf = make([]byte, f.stride*height)
	f.front = make([]byte, f.stride*height)
}

// snapshot copies the presented frame into dst.
func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
}

// pixelAt reads one presented pixel as 8-bit RGB. Out of range reads are black.
func (f *hostFramebuffer) pixelAt(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, 0, 0
	}
	return f.format.pixel(f.front[y*f.stride+x*f.format.BytesPerPixel():])
}

// image returns the presented frame as an RGBA image.
func (f *hostFramebuffer) image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			off := y*f.stride + x*f.format.BytesPerPixel()
			r, g, b := f.format.pixel(f.front[off:])
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img
}
