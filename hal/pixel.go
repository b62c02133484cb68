package hal

// PutPixel encodes one pixel at the start of dst. Short buffers and unknown formats
// are left untouched.
func (f PixelFormat) PutPixel(dst []byte, r, g, b uint8) {
	if len(dst) < f.BytesPerPixel() {
		return
	}
	switch f {
	case PixelFormatRGB565:
		p := pack565(r, g, b)
		dst[0] = byte(p)
		dst[1] = byte(p >> 8)
	case PixelFormatRGBA8888:
		dst[0], dst[1], dst[2], dst[3] = r, g, b, 0xFF
	}
}

// pixel decodes the pixel at the start of src.
func (f PixelFormat) pixel(src []byte) (r, g, b uint8) {
	switch f {
	case PixelFormatRGB565:
		return unpack565(uint16(src[0]) | uint16(src[1])<<8)
	case PixelFormatRGBA8888:
		return src[0], src[1], src[2]
	}
	return 0, 0, 0
}

func pack565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// unpack565 scales each channel so full-scale values come back as 255.
func unpack565(p uint16) (r, g, b uint8) {
	r5 := uint32(p >> 11 & 0x1F)
	g6 := uint32(p >> 5 & 0x3F)
	b5 := uint32(p & 0x1F)
	return uint8(r5 * 255 / 31), uint8(g6 * 255 / 63), uint8(b5 * 255 / 31)
}
