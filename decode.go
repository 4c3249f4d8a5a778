package gvr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/woozymasta/bcn"
)

// DecodeOptions configures GVR decoding.
type DecodeOptions struct {
	// DXT1 is passed to the BCn decoder for DXT1 textures (e.g. Workers).
	DXT1 *bcn.DecodeOptions
}

// Decoder decodes the largest level of one GVR file.
type Decoder struct {
	data   []byte
	opts   *DecodeOptions
	header *Header
	img    *image.NRGBA
}

// NewDecoder reads the GVR file at path.
func NewDecoder(path string) (*Decoder, error) {
	return NewDecoderWithOptions(path, nil)
}

// NewDecoderWithOptions reads the GVR file at path with the given options.
// Nil opts uses default decoding.
func NewDecoderWithOptions(path string, opts *DecodeOptions) (*Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	return &Decoder{data: data, opts: opts}, nil
}

// NewDecoderBytes returns a decoder over an in-memory GVR file.
func NewDecoderBytes(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Header returns the parsed header, or nil before Decode.
func (d *Decoder) Header() *Header { return d.header }

// Image returns the decoded image, or nil before a successful Decode.
func (d *Decoder) Image() *image.NRGBA { return d.img }

// Decode parses the header and decodes the first texture level.
func (d *Decoder) Decode() error {
	r := bytes.NewReader(d.data)
	header, err := ReadHeader(r)
	if err != nil {
		return err
	}
	d.header = header

	info, ok := header.DataFormat.info()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, header.DataFormat)
	}

	payload := d.data[len(d.data)-r.Len():]
	width, height := int(header.Width), int(header.Height)
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}

	var palette []color.NRGBA
	if header.DataFormat.Palettized() {
		if !header.Flags.Has(FlagInternalPalette) {
			return fmt.Errorf("%w: %s", ErrExternalPalette, header.DataFormat)
		}
		if !header.PixelFormat.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownFormat, header.PixelFormat)
		}

		palette, err = decodePalette(payload, header.PixelFormat, info.paletteEntries)
		if err != nil {
			return err
		}
		payload = payload[info.paletteEntries*2:]
	}

	size := info.levelSize(width, height)
	if len(payload) < size {
		return fmt.Errorf("%w: level needs %d bytes, have %d", ErrTruncatedData, size, len(payload))
	}

	if header.DataFormat == DataFormatDXT1 {
		var opts *bcn.DecodeOptions
		if d.opts != nil {
			opts = d.opts.DXT1
		}
		img, err := decodeCMPR(payload[:size], width, height, opts)
		if err != nil {
			return err
		}
		d.img = img
		return nil
	}

	d.img = decodeTiles(header.DataFormat, payload[:size], width, height, palette)
	return nil
}

// Save writes the decoded image to path; the extension selects the image format.
func (d *Decoder) Save(path string) error {
	if d.img == nil {
		return ErrNotDecoded
	}

	return saveImage(d.img, path)
}
