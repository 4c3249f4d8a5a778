package gvr

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// toNRGBA returns img as a non-premultiplied image anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// openImage reads any registered raster format from path.
func openImage(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenImage, path, err)
	}

	return toNRGBA(img), nil
}

// saveImage writes img to path in the format named by the file extension.
func saveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrSaveImage, path, err)
	}

	return nil
}
