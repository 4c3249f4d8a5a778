package gvr

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/woozymasta/bcn"
)

const (
	dxt1BlockSize = 8
	cmprTileSize  = 8
)

// swapDXT1Block converts one DXT1 block between the little-endian layout used by
// bcn and the GX layout: big-endian endpoints and pixel 0 in the top bits of each row.
// The conversion is its own inverse.
func swapDXT1Block(dst, src []byte) {
	dst[0], dst[1] = src[1], src[0]
	dst[2], dst[3] = src[3], src[2]
	for i := 4; i < dxt1BlockSize; i++ {
		b := src[i]
		dst[i] = b<<6 | (b<<2)&0x30 | (b>>2)&0x0c | b>>6
	}
}

// cmprBlockOrder calls fn for every 4x4 block of a pw x ph surface in GX order:
// 8x8 tiles row by row, each holding its four blocks row by row.
// fn receives the linear (row-major) block index.
func cmprBlockOrder(pw, ph int, fn func(linear int)) {
	blocksW := pw / 4
	for ty := 0; ty < ph/4; ty += 2 {
		for tx := 0; tx < blocksW; tx += 2 {
			for sub := 0; sub < 4; sub++ {
				fn((ty+sub/2)*blocksW + tx + sub%2)
			}
		}
	}
}

// padEdges grows img to pw x ph by repeating its last column and row,
// so padding does not pull the block endpoints of edge tiles.
func padEdges(img *image.NRGBA, pw, ph int) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	for y := 0; y < ph; y++ {
		sy := min(y, h-1)
		for x := 0; x < pw; x++ {
			sx := min(x, w-1)
			copy(dst.Pix[dst.PixOffset(x, y):][:4], img.Pix[img.PixOffset(sx, sy):][:4])
		}
	}
	return dst
}

// encodeCMPR encodes img as GX CMPR, padding it to whole 8x8 tiles.
func encodeCMPR(img *image.NRGBA, opts *bcn.EncodeOptions) ([]byte, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pw, ph := roundUp(w, cmprTileSize), roundUp(h, cmprTileSize)

	src := img
	if pw != w || ph != h {
		src = padEdges(img, pw, ph)
	}

	linear, _, _, err := bcn.EncodeImageWithOptions(src, bcn.FormatDXT1, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockCodec, err)
	}

	want := pw / 4 * ph / 4 * dxt1BlockSize
	if len(linear) != want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrBlockCodec, want, len(linear))
	}

	out := make([]byte, len(linear))
	pos := 0
	cmprBlockOrder(pw, ph, func(block int) {
		off := block * dxt1BlockSize
		swapDXT1Block(out[pos:pos+dxt1BlockSize], linear[off:off+dxt1BlockSize])
		pos += dxt1BlockSize
	})

	return out, nil
}

// decodeCMPR decodes a w x h GX CMPR level.
// The caller guarantees data holds at least levelSize(w, h) bytes.
func decodeCMPR(data []byte, w, h int, opts *bcn.DecodeOptions) (*image.NRGBA, error) {
	pw, ph := roundUp(w, cmprTileSize), roundUp(h, cmprTileSize)

	linear := make([]byte, pw/4*ph/4*dxt1BlockSize)
	pos := 0
	cmprBlockOrder(pw, ph, func(block int) {
		off := block * dxt1BlockSize
		swapDXT1Block(linear[off:off+dxt1BlockSize], data[pos:pos+dxt1BlockSize])
		pos += dxt1BlockSize
	})

	decoded, err := bcn.DecodeImageWithOptions(linear, pw, ph, bcn.FormatDXT1, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockCodec, err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Rect, decoded, decoded.Bounds().Min, draw.Src)

	return dst, nil
}
