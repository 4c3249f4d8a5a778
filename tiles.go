package gvr

import (
	"encoding/binary"
	"image"
	"image/color"
)

// nrgbaAt returns the pixel at (x, y) or transparent black outside the image.
func nrgbaAt(img *image.NRGBA, x, y int) color.NRGBA {
	if !image.Pt(x, y).In(img.Rect) {
		return color.NRGBA{}
	}
	i := img.PixOffset(x, y)
	s := img.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// texel returns the raw value stored for one pixel of a direct or indexed format.
func texel(df DataFormat, img *image.NRGBA, idx *image.Paletted, x, y int) uint16 {
	switch df {
	case DataFormatIndex4, DataFormatIndex8:
		if idx == nil || !image.Pt(x, y).In(idx.Rect) {
			return 0
		}
		return uint16(idx.ColorIndexAt(x, y))
	}

	c := nrgbaAt(img, x, y)
	switch df {
	case DataFormatIntensity4:
		return uint16(intensity(c) >> 4)
	case DataFormatIntensity8:
		return uint16(intensity(c))
	case DataFormatIntensityA4:
		return uint16(c.A>>4)<<4 | uint16(intensity(c)>>4)
	case DataFormatIntensityA8:
		return encodeIA8(c)
	case DataFormatRGB565:
		return encodeRGB565(c)
	default:
		return encodeRGB5A3(c)
	}
}

// texelColor returns the pixel for a raw stored value.
func texelColor(df DataFormat, palette []color.NRGBA, v uint16) color.NRGBA {
	switch df {
	case DataFormatIntensity4:
		i := expand4(v)
		return color.NRGBA{R: i, G: i, B: i, A: 0xff}
	case DataFormatIntensity8:
		i := uint8(v)
		return color.NRGBA{R: i, G: i, B: i, A: 0xff}
	case DataFormatIntensityA4:
		i := expand4(v & 0x0f)
		return color.NRGBA{R: i, G: i, B: i, A: expand4(v >> 4 & 0x0f)}
	case DataFormatIntensityA8:
		return decodeIA8(v)
	case DataFormatRGB565:
		return decodeRGB565(v)
	case DataFormatRGB5A3:
		return decodeRGB5A3(v)
	default:
		if int(v) < len(palette) {
			return palette[v]
		}
		return color.NRGBA{}
	}
}

// encodeTiles packs img (or the indices of idx) into GX tile order.
func encodeTiles(df DataFormat, img *image.NRGBA, idx *image.Paletted) []byte {
	info := dataFormats[df]
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if idx != nil {
		w, h = idx.Rect.Dx(), idx.Rect.Dy()
	}
	pw, ph := roundUp(w, info.tileWidth), roundUp(h, info.tileHeight)

	out := make([]byte, 0, info.levelSize(w, h))
	for ty := 0; ty < ph; ty += info.tileHeight {
		for tx := 0; tx < pw; tx += info.tileWidth {
			if df == DataFormatARGB8888 {
				out = appendARGB8888Tile(out, img, tx, ty)
				continue
			}

			for y := ty; y < ty+info.tileHeight; y++ {
				for x := tx; x < tx+info.tileWidth; x++ {
					v := texel(df, img, idx, x, y)
					switch info.bitsPerPixel {
					case 4:
						if x&1 == 0 {
							out = append(out, uint8(v)<<4)
						} else {
							out[len(out)-1] |= uint8(v) & 0x0f
						}
					case 8:
						out = append(out, uint8(v))
					default:
						out = binary.BigEndian.AppendUint16(out, v)
					}
				}
			}
		}
	}

	return out
}

// appendARGB8888Tile writes one 4x4 tile as 16 AR pairs followed by 16 GB pairs.
func appendARGB8888Tile(out []byte, img *image.NRGBA, tx, ty int) []byte {
	var ar, gb [32]byte
	for i := 0; i < 16; i++ {
		c := nrgbaAt(img, tx+i%4, ty+i/4)
		ar[i*2], ar[i*2+1] = c.A, c.R
		gb[i*2], gb[i*2+1] = c.G, c.B
	}
	out = append(out, ar[:]...)
	return append(out, gb[:]...)
}

// decodeTiles unpacks a level of w x h pixels from GX tile order.
// The caller guarantees data holds at least levelSize(w, h) bytes.
func decodeTiles(df DataFormat, data []byte, w, h int, palette []color.NRGBA) *image.NRGBA {
	info := dataFormats[df]
	pw, ph := roundUp(w, info.tileWidth), roundUp(h, info.tileHeight)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	pos := 0
	for ty := 0; ty < ph; ty += info.tileHeight {
		for tx := 0; tx < pw; tx += info.tileWidth {
			if df == DataFormatARGB8888 {
				tile := data[pos : pos+64]
				for i := 0; i < 16; i++ {
					dst.SetNRGBA(tx+i%4, ty+i/4, color.NRGBA{
						A: tile[i*2],
						R: tile[i*2+1],
						G: tile[32+i*2],
						B: tile[32+i*2+1],
					})
				}
				pos += 64
				continue
			}

			for y := ty; y < ty+info.tileHeight; y++ {
				for x := tx; x < tx+info.tileWidth; x++ {
					var v uint16
					switch info.bitsPerPixel {
					case 4:
						if x&1 == 0 {
							v = uint16(data[pos] >> 4)
						} else {
							v = uint16(data[pos] & 0x0f)
							pos++
						}
					case 8:
						v = uint16(data[pos])
						pos++
					default:
						v = binary.BigEndian.Uint16(data[pos:])
						pos += 2
					}
					dst.SetNRGBA(x, y, texelColor(df, palette, v))
				}
			}
		}
	}

	return dst
}
