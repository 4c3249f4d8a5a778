package cli

import (
	"fmt"
	"strings"

	"github.com/woozymasta/gvr"
)

// DataFormat is the user-facing texture data format.
type DataFormat int

// Data formats in listing order.
const (
	DataIntensity4 DataFormat = iota
	DataIntensity8
	DataIntensityA4
	DataIntensityA8
	DataRGB565
	DataRGB5A3
	DataARGB8888
	DataIndex4
	DataIndex8
	DataDXT1
)

// PixelFormat is the user-facing palette entry format.
type PixelFormat int

// Pixel formats in listing order.
const (
	PixelIntensityA8 PixelFormat = iota
	PixelRGB565
	PixelRGB5A3
)

// HeaderID selects the header magic.
type HeaderID int

// Header magics in listing order.
const (
	HeaderGCIX HeaderID = iota
	HeaderGBIX
)

type entry[C any] struct {
	name  string
	label string
	codec C
}

var dataFormats = [...]entry[gvr.DataFormat]{
	DataIntensity4:  {"intensity4", "Intensity 4-bit", gvr.DataFormatIntensity4},
	DataIntensity8:  {"intensity8", "Intensity 8-bit", gvr.DataFormatIntensity8},
	DataIntensityA4: {"intensity-a4", "Intensity 4-bit With Alpha", gvr.DataFormatIntensityA4},
	DataIntensityA8: {"intensity-a8", "Intensity 8-bit With Alpha", gvr.DataFormatIntensityA8},
	DataRGB565:      {"rgb565", "RGB565", gvr.DataFormatRGB565},
	DataRGB5A3:      {"rgb5a3", "RGB5A3", gvr.DataFormatRGB5A3},
	DataARGB8888:    {"argb8888", "ARGB8888", gvr.DataFormatARGB8888},
	DataIndex4:      {"index4", "4-bit Indexed", gvr.DataFormatIndex4},
	DataIndex8:      {"index8", "8-bit Indexed", gvr.DataFormatIndex8},
	DataDXT1:        {"dxt1", "DXT1 Compressed", gvr.DataFormatDXT1},
}

var pixelFormats = [...]entry[gvr.PixelFormat]{
	PixelIntensityA8: {"intensity-a8", "Intensity 8-bit With Alpha", gvr.PixelFormatIntensityA8},
	PixelRGB565:      {"rgb565", "RGB565", gvr.PixelFormatRGB565},
	PixelRGB5A3:      {"rgb5a3", "RGB5A3", gvr.PixelFormatRGB5A3},
}

var headerIDs = [...]entry[gvr.HeaderID]{
	HeaderGCIX: {"gcix", "GCIX", gvr.HeaderGCIX},
	HeaderGBIX: {"gbix", "GBIX", gvr.HeaderGBIX},
}

// DataFormats lists every data format in order.
func DataFormats() []DataFormat {
	out := make([]DataFormat, len(dataFormats))
	for i := range out {
		out[i] = DataFormat(i)
	}
	return out
}

// PixelFormats lists every pixel format in order.
func PixelFormats() []PixelFormat {
	out := make([]PixelFormat, len(pixelFormats))
	for i := range out {
		out[i] = PixelFormat(i)
	}
	return out
}

// joinNames lists the command-line names of values, comma separated.
func joinNames[T interface{ Name() string }](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.Name()
	}
	return strings.Join(names, ", ")
}

// String returns the display label.
func (f DataFormat) String() string { return dataFormats[f].label }

// Name returns the command-line name.
func (f DataFormat) Name() string { return dataFormats[f].name }

// Codec returns the codec identifier.
func (f DataFormat) Codec() gvr.DataFormat { return dataFormats[f].codec }

// String returns the display label.
func (f PixelFormat) String() string { return pixelFormats[f].label }

// Name returns the command-line name.
func (f PixelFormat) Name() string { return pixelFormats[f].name }

// Codec returns the codec identifier.
func (f PixelFormat) Codec() gvr.PixelFormat { return pixelFormats[f].codec }

// String returns the header magic.
func (h HeaderID) String() string { return headerIDs[h].label }

// Name returns the command-line name.
func (h HeaderID) Name() string { return headerIDs[h].name }

// Codec returns the codec identifier.
func (h HeaderID) Codec() gvr.HeaderID { return headerIDs[h].codec }

// choice is a flag.Value selecting one enumerated value by its command-line name.
type choice[T ~int, C any] struct {
	value   *T
	entries []entry[C]
}

func newChoice[T ~int, C any](value *T, entries []entry[C]) choice[T, C] {
	return choice[T, C]{value: value, entries: entries}
}

func (c choice[T, C]) String() string {
	if c.value == nil {
		return ""
	}
	return c.entries[*c.value].name
}

func (c choice[T, C]) Set(s string) error {
	for i, e := range c.entries {
		if strings.EqualFold(e.name, s) {
			*c.value = T(i)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, valid options are: %s", s, c.names())
}

func (c choice[T, C]) names() string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return strings.Join(names, ", ")
}
