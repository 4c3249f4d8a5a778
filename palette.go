package gvr

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// quantizeImage reduces img to at most entries colors with a median cut palette.
func quantizeImage(img *image.NRGBA, entries int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, entries), img)
	if len(p) == 0 {
		p = append(p, color.NRGBA{})
	}
	if len(p) > entries {
		p = p[:entries]
	}

	pm := image.NewPaletted(img.Rect, p)
	draw.Draw(pm, pm.Rect, img, img.Rect.Min, draw.Src)

	return pm
}

// encodePalette writes entries palette colors in format pf, zero filling unused slots.
func encodePalette(p color.Palette, pf PixelFormat, entries int) []byte {
	out := make([]byte, 0, entries*2)
	for i := 0; i < entries; i++ {
		var v uint16
		if i < len(p) {
			v = pf.encodeEntry(color.NRGBAModel.Convert(p[i]).(color.NRGBA))
		}
		out = binary.BigEndian.AppendUint16(out, v)
	}
	return out
}

// decodePalette reads entries palette colors of format pf.
func decodePalette(data []byte, pf PixelFormat, entries int) ([]color.NRGBA, error) {
	if len(data) < entries*2 {
		return nil, fmt.Errorf("%w: palette needs %d bytes, have %d", ErrTruncatedData, entries*2, len(data))
	}

	palette := make([]color.NRGBA, entries)
	for i := range palette {
		palette[i] = pf.decodeEntry(binary.BigEndian.Uint16(data[i*2:]))
	}
	return palette, nil
}
