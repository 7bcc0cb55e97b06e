package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((uint32(rr) * 255) / 31)
	g = uint8((uint32(gg) * 255) / 63)
	b = uint8((uint32(bb) * 255) / 31)
	return r, g, b
}

// putPixel encodes one pixel at buf[off:].
func putPixel(buf []byte, off int, f PixelFormat, r, g, b uint8) {
	switch f {
	case PixelFormatRGB565:
		p := rgb565(r, g, b)
		buf[off] = byte(p)
		buf[off+1] = byte(p >> 8)
	case PixelFormatRGBA8888:
		buf[off] = r
		buf[off+1] = g
		buf[off+2] = b
		buf[off+3] = 0xFF
	}
}

// toRGBA expands src in format f into 32bpp RGBA dst.
func toRGBA(dst, src []byte, f PixelFormat) {
	switch f {
	case PixelFormatRGBA8888:
		copy(dst, src)
	case PixelFormatRGB565:
		for i, j := 0, 0; i+1 < len(src) && j+3 < len(dst); i, j = i+2, j+4 {
			r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}
