package gvr

import "fmt"

// DataFormat is the GX texture data format stored in the GVRT chunk.
type DataFormat uint8

// Data formats as written into the GVRT chunk.
const (
	DataFormatIntensity4  DataFormat = 0x00
	DataFormatIntensity8  DataFormat = 0x01
	DataFormatIntensityA4 DataFormat = 0x02
	DataFormatIntensityA8 DataFormat = 0x03
	DataFormatRGB565      DataFormat = 0x04
	DataFormatRGB5A3      DataFormat = 0x05
	DataFormatARGB8888    DataFormat = 0x06
	DataFormatIndex4      DataFormat = 0x08
	DataFormatIndex8      DataFormat = 0x09
	DataFormatDXT1        DataFormat = 0x0E
)

// PixelFormat is the format of palette entries for the indexed data formats.
type PixelFormat uint8

// Palette pixel formats as written into the high nibble of the GVRT flags byte.
const (
	PixelFormatIntensityA8 PixelFormat = 0x00
	PixelFormatRGB565      PixelFormat = 0x01
	PixelFormatRGB5A3      PixelFormat = 0x02
)

// Flags are the low nibble of the GVRT flags byte.
type Flags uint8

const (
	// FlagMipmaps marks a texture followed by its mipmap chain.
	FlagMipmaps Flags = 0x01
	// FlagExternalPalette marks an indexed texture with a palette in a separate GVP file.
	FlagExternalPalette Flags = 0x02
	// FlagInternalPalette marks an indexed texture with the palette stored before the pixels.
	FlagInternalPalette Flags = 0x08
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// formatInfo describes the storage of one data format.
type formatInfo struct {
	name           string
	bitsPerPixel   int
	tileWidth      int
	tileHeight     int
	paletteEntries int
	mipmaps        bool
}

var dataFormats = map[DataFormat]formatInfo{
	DataFormatIntensity4:  {name: "Intensity4", bitsPerPixel: 4, tileWidth: 8, tileHeight: 8},
	DataFormatIntensity8:  {name: "Intensity8", bitsPerPixel: 8, tileWidth: 8, tileHeight: 4},
	DataFormatIntensityA4: {name: "IntensityA4", bitsPerPixel: 8, tileWidth: 8, tileHeight: 4},
	DataFormatIntensityA8: {name: "IntensityA8", bitsPerPixel: 16, tileWidth: 4, tileHeight: 4},
	DataFormatRGB565:      {name: "RGB565", bitsPerPixel: 16, tileWidth: 4, tileHeight: 4, mipmaps: true},
	DataFormatRGB5A3:      {name: "RGB5A3", bitsPerPixel: 16, tileWidth: 4, tileHeight: 4, mipmaps: true},
	DataFormatARGB8888:    {name: "ARGB8888", bitsPerPixel: 32, tileWidth: 4, tileHeight: 4},
	DataFormatIndex4:      {name: "Index4", bitsPerPixel: 4, tileWidth: 8, tileHeight: 8, paletteEntries: 16},
	DataFormatIndex8:      {name: "Index8", bitsPerPixel: 8, tileWidth: 8, tileHeight: 4, paletteEntries: 256},
	DataFormatDXT1:        {name: "DXT1", bitsPerPixel: 4, tileWidth: 8, tileHeight: 8, mipmaps: true},
}

func (f DataFormat) info() (formatInfo, bool) {
	info, ok := dataFormats[f]
	return info, ok
}

// String returns the format name.
func (f DataFormat) String() string {
	if info, ok := f.info(); ok {
		return info.name
	}
	return fmt.Sprintf("DataFormat(0x%02x)", uint8(f))
}

// Valid reports whether f is a known data format.
func (f DataFormat) Valid() bool {
	_, ok := f.info()
	return ok
}

// Palettized reports whether f stores indices into a color palette.
func (f DataFormat) Palettized() bool {
	info, ok := f.info()
	return ok && info.paletteEntries > 0
}

// SupportsMipmaps reports whether f may carry a mipmap chain.
func (f DataFormat) SupportsMipmaps() bool {
	info, ok := f.info()
	return ok && info.mipmaps
}

// PaletteEntries returns the palette size for indexed formats and 0 otherwise.
func (f DataFormat) PaletteEntries() int {
	info, _ := f.info()
	return info.paletteEntries
}

// levelSize returns the byte length of one level of w x h pixels padded to whole tiles.
func (i formatInfo) levelSize(w, h int) int {
	return roundUp(w, i.tileWidth) * roundUp(h, i.tileHeight) * i.bitsPerPixel / 8
}

// String returns the pixel format name.
func (p PixelFormat) String() string {
	switch p {
	case PixelFormatIntensityA8:
		return "IntensityA8"
	case PixelFormatRGB565:
		return "RGB565"
	case PixelFormatRGB5A3:
		return "RGB5A3"
	default:
		return fmt.Sprintf("PixelFormat(0x%02x)", uint8(p))
	}
}

// Valid reports whether p is a known palette pixel format.
func (p PixelFormat) Valid() bool {
	return p <= PixelFormatRGB5A3
}
