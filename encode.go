package gvr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
)

// EncodeOptions configures GVR encoding.
type EncodeOptions struct {
	// DXT1 is passed to the BCn encoder for DXT1 textures (e.g. QualityLevel, Workers).
	DXT1 *bcn.EncodeOptions
}

// Encoder holds the configuration of a single texture encode.
// Build it with one of the New* constructors, then apply modifiers.
type Encoder struct {
	header      HeaderID
	dataFormat  DataFormat
	pixelFormat PixelFormat
	palettized  bool
	mipmaps     bool
	globalIndex uint32
	opts        *EncodeOptions
}

// NewGCIX returns an encoder for a direct color format with a GCIX header.
func NewGCIX(dataFormat DataFormat) (*Encoder, error) {
	return newPlainEncoder(HeaderGCIX, dataFormat)
}

// NewGBIX returns an encoder for a direct color format with a GBIX header.
func NewGBIX(dataFormat DataFormat) (*Encoder, error) {
	return newPlainEncoder(HeaderGBIX, dataFormat)
}

// NewGCIXPalettized returns an encoder for an indexed format with a GCIX header.
func NewGCIXPalettized(pixelFormat PixelFormat, dataFormat DataFormat) (*Encoder, error) {
	return newPalettizedEncoder(HeaderGCIX, pixelFormat, dataFormat)
}

// NewGBIXPalettized returns an encoder for an indexed format with a GBIX header.
func NewGBIXPalettized(pixelFormat PixelFormat, dataFormat DataFormat) (*Encoder, error) {
	return newPalettizedEncoder(HeaderGBIX, pixelFormat, dataFormat)
}

func newPlainEncoder(header HeaderID, dataFormat DataFormat) (*Encoder, error) {
	if !dataFormat.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, dataFormat)
	}
	if dataFormat.Palettized() {
		return nil, fmt.Errorf("%w: %s", ErrPaletteRequired, dataFormat)
	}

	return &Encoder{header: header, dataFormat: dataFormat}, nil
}

func newPalettizedEncoder(header HeaderID, pixelFormat PixelFormat, dataFormat DataFormat) (*Encoder, error) {
	if !dataFormat.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, dataFormat)
	}
	if !dataFormat.Palettized() {
		return nil, fmt.Errorf("%w: %s", ErrNotPalettized, dataFormat)
	}
	if !pixelFormat.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPixelFormat, pixelFormat)
	}

	return &Encoder{
		header:      header,
		dataFormat:  dataFormat,
		pixelFormat: pixelFormat,
		palettized:  true,
	}, nil
}

// WithMipmaps enables the mipmap chain. Only DXT1, RGB565 and RGB5A3 support it.
func (e *Encoder) WithMipmaps() (*Encoder, error) {
	if !e.dataFormat.SupportsMipmaps() {
		return nil, fmt.Errorf("%w: %s", ErrMipmapsUnsupported, e.dataFormat)
	}
	e.mipmaps = true
	return e, nil
}

// WithGlobalIndex sets the global index written into the header.
func (e *Encoder) WithGlobalIndex(index uint32) *Encoder {
	e.globalIndex = index
	return e
}

// WithOptions sets codec tuning options. Nil restores defaults.
func (e *Encoder) WithOptions(opts *EncodeOptions) *Encoder {
	e.opts = opts
	return e
}

// HeaderID returns the header magic the encoder writes.
func (e *Encoder) HeaderID() HeaderID { return e.header }

// DataFormat returns the texture data format.
func (e *Encoder) DataFormat() DataFormat { return e.dataFormat }

// PixelFormat returns the palette entry format; meaningful only when Palettized.
func (e *Encoder) PixelFormat() PixelFormat { return e.pixelFormat }

// Palettized reports whether the encoder writes an internal palette.
func (e *Encoder) Palettized() bool { return e.palettized }

// Mipmaps reports whether the encoder writes a mipmap chain.
func (e *Encoder) Mipmaps() bool { return e.mipmaps }

// GlobalIndex returns the global index written into the header.
func (e *Encoder) GlobalIndex() uint32 { return e.globalIndex }

// Encode reads the image at path and returns the encoded GVR file.
func (e *Encoder) Encode(path string) ([]byte, error) {
	img, err := openImage(path)
	if err != nil {
		return nil, err
	}

	return e.EncodeImage(img)
}

// EncodeImage returns img encoded as a GVR file.
func (e *Encoder) EncodeImage(img image.Image) ([]byte, error) {
	src := toNRGBA(img)
	width, height := src.Rect.Dx(), src.Rect.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	w16, err := u16FromInt(width)
	if err != nil {
		return nil, fmt.Errorf("%w: width %d", err, width)
	}
	h16, err := u16FromInt(height)
	if err != nil {
		return nil, fmt.Errorf("%w: height %d", err, height)
	}

	header := &Header{
		ID:          e.header,
		GlobalIndex: e.globalIndex,
		DataFormat:  e.dataFormat,
		Width:       w16,
		Height:      h16,
	}

	var body []byte
	if e.palettized {
		header.PixelFormat = e.pixelFormat
		header.Flags |= FlagInternalPalette

		entries := e.dataFormat.PaletteEntries()
		pm := quantizeImage(src, entries)
		body = append(body, encodePalette(pm.Palette, e.pixelFormat, entries)...)
		body = append(body, encodeTiles(e.dataFormat, src, pm)...)
	} else {
		levels := []*image.NRGBA{src}
		if e.mipmaps {
			if !isPowerOfTwo(width) || !isPowerOfTwo(height) {
				return nil, fmt.Errorf("%w: %dx%d", ErrMipmapDimensions, width, height)
			}
			count, err := calculateMipMapCount(width, height)
			if err != nil {
				return nil, err
			}
			if levels, err = generateMipmaps(src, count); err != nil {
				return nil, err
			}
			header.Flags |= FlagMipmaps
		}

		for i, level := range levels {
			data, err := e.encodeLevel(level)
			if err != nil {
				return nil, fmt.Errorf("mipmap %d: %w", i, err)
			}
			body = append(body, data...)
		}
	}

	length, err := u32FromInt(len(body))
	if err != nil {
		return nil, err
	}
	header.DataLength = length

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(body))
	if err := header.Write(&buf); err != nil {
		return nil, err
	}
	buf.Write(body)

	return buf.Bytes(), nil
}

// encodeLevel encodes one direct color level.
func (e *Encoder) encodeLevel(img *image.NRGBA) ([]byte, error) {
	if e.dataFormat == DataFormatDXT1 {
		var opts *bcn.EncodeOptions
		if e.opts != nil {
			opts = e.opts.DXT1
		}
		return encodeCMPR(img, opts)
	}

	return encodeTiles(e.dataFormat, img, nil), nil
}
