package gvr

import "image/color"

// intensity returns the luma of c in the weights GX tools use for grayscale formats.
func intensity(c color.NRGBA) uint8 {
	return uint8((uint32(c.R)*30 + uint32(c.G)*59 + uint32(c.B)*11) / 100)
}

func expand3(v uint16) uint8 { return uint8(v<<5 | v<<2 | v>>1) }
func expand4(v uint16) uint8 { return uint8(v * 0x11) }
func expand5(v uint16) uint8 { return uint8(v<<3 | v>>2) }
func expand6(v uint16) uint8 { return uint8(v<<2 | v>>4) }

func encodeIA8(c color.NRGBA) uint16 {
	return uint16(c.A)<<8 | uint16(intensity(c))
}

func decodeIA8(v uint16) color.NRGBA {
	i := uint8(v)
	return color.NRGBA{R: i, G: i, B: i, A: uint8(v >> 8)}
}

func encodeRGB565(c color.NRGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func decodeRGB565(v uint16) color.NRGBA {
	return color.NRGBA{
		R: expand5(v >> 11 & 0x1f),
		G: expand6(v >> 5 & 0x3f),
		B: expand5(v & 0x1f),
		A: 0xff,
	}
}

// encodeRGB5A3 stores opaque-enough pixels as 1:5:5:5 and the rest as 0:3:4:4:4.
func encodeRGB5A3(c color.NRGBA) uint16 {
	if c.A>>5 == 7 {
		return 0x8000 | uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
	}
	return uint16(c.A>>5)<<12 | uint16(c.R>>4)<<8 | uint16(c.G>>4)<<4 | uint16(c.B>>4)
}

func decodeRGB5A3(v uint16) color.NRGBA {
	if v&0x8000 != 0 {
		return color.NRGBA{
			R: expand5(v >> 10 & 0x1f),
			G: expand5(v >> 5 & 0x1f),
			B: expand5(v & 0x1f),
			A: 0xff,
		}
	}
	return color.NRGBA{
		R: expand4(v >> 8 & 0x0f),
		G: expand4(v >> 4 & 0x0f),
		B: expand4(v & 0x0f),
		A: expand3(v >> 12 & 0x07),
	}
}

// encodeEntry converts c into a 16-bit palette entry of format p.
func (p PixelFormat) encodeEntry(c color.NRGBA) uint16 {
	switch p {
	case PixelFormatIntensityA8:
		return encodeIA8(c)
	case PixelFormatRGB565:
		return encodeRGB565(c)
	default:
		return encodeRGB5A3(c)
	}
}

// decodeEntry converts a 16-bit palette entry of format p into a color.
func (p PixelFormat) decodeEntry(v uint16) color.NRGBA {
	switch p {
	case PixelFormatIntensityA8:
		return decodeIA8(v)
	case PixelFormatRGB565:
		return decodeRGB565(v)
	default:
		return decodeRGB5A3(v)
	}
}
