package hal

import "testing"

func TestFramebufferPresentPublishes(t *testing.T) {
	for _, format := range []PixelFormat{PixelFormatRGB565, PixelFormatRGBA8888} {
		fb := newHostFramebuffer(4, 3, format)
		if fb.StrideBytes() != 4*format.BytesPerPixel() {
			t.Fatalf("format %d: stride = %d", format, fb.StrideBytes())
		}

		fb.ClearRGB(255, 0, 0)
		if r, g, b := fb.pixelAt(1, 1); r != 0 || g != 0 || b != 0 {
			t.Fatalf("format %d: pixel before Present = (%d,%d,%d), want black", format, r, g, b)
		}

		if err := fb.Present(); err != nil {
			t.Fatalf("Present: %v", err)
		}
		if r, g, b := fb.pixelAt(1, 1); r != 255 || g != 0 || b != 0 {
			t.Fatalf("format %d: pixel = (%d,%d,%d), want (255,0,0)", format, r, g, b)
		}

		img := fb.image()
		if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
			t.Fatalf("format %d: image bounds = %v", format, img.Bounds())
		}
		if c := img.RGBAAt(3, 2); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
			t.Fatalf("format %d: image pixel = %+v", format, c)
		}
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := newHostFramebuffer(2, 2, PixelFormatRGBA8888)
	fb.resize(10, 0)
	if fb.Width() != 10 || fb.Height() != 1 {
		t.Fatalf("size = %dx%d, want 10x1", fb.Width(), fb.Height())
	}
	if len(fb.Buffer()) != 10*4 {
		t.Fatalf("buffer len = %d, want 40", len(fb.Buffer()))
	}
}

func TestRGB565FullScale(t *testing.T) {
	r, g, b := unpack565(pack565(255, 255, 255))
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("white = (%d,%d,%d)", r, g, b)
	}
	r, g, b = unpack565(pack565(0, 0, 0))
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("black = (%d,%d,%d)", r, g, b)
	}
}

func TestPutPixel(t *testing.T) {
	buf := make([]byte, 4)
	PixelFormatRGB565.PutPixel(buf, 255, 0, 0)
	if p := uint16(buf[0]) | uint16(buf[1])<<8; p != 0xF800 {
		t.Fatalf("rgb565 red = %#04x, want 0xf800", p)
	}
	PixelFormatRGBA8888.PutPixel(buf, 1, 2, 3)
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 || buf[3] != 0xFF {
		t.Fatalf("rgba = %v", buf)
	}

	short := []byte{7, 7, 7}
	PixelFormatRGBA8888.PutPixel(short, 0, 0, 0)
	if short[0] != 7 || short[2] != 7 {
		t.Fatalf("short buffer written: %v", short)
	}
}
