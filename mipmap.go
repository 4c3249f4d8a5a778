package gvr

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
)

// calculateMipMapCount calculates the number of mipmap levels for a given width and height.
func calculateMipMapCount(width, height int) (int, error) {
	count := 1
	w, err := u16FromInt(width)
	if err != nil {
		return 0, err
	}

	h, err := u16FromInt(height)
	if err != nil {
		return 0, err
	}

	for w > 1 || h > 1 {
		count++
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}

	return count, nil
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}

// generateMipmaps returns count levels starting with img, each box filtered from the previous one.
func generateMipmaps(img *image.NRGBA, count int) ([]*image.NRGBA, error) {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	levels := make([]*image.NRGBA, 0, count)
	levels = append(levels, img)

	for level := 1; level < count; level++ {
		w, h := mipDimension(width, level), mipDimension(height, level)

		g := gift.New(gift.Resize(w, h, gift.BoxResampling))
		dst := image.NewNRGBA(g.Bounds(levels[level-1].Rect))
		g.Draw(dst, levels[level-1])

		if dst.Rect.Dx() != w || dst.Rect.Dy() != h {
			return nil, fmt.Errorf("%w: level %d: expected %dx%d, got %dx%d",
				ErrMipmapSizeMismatch, level, w, h, dst.Rect.Dx(), dst.Rect.Dy())
		}
		levels = append(levels, dst)
	}

	return levels, nil
}
