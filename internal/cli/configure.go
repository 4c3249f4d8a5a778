package cli

import (
	"fmt"

	"github.com/woozymasta/gvr"
)

// EncodeRequest is a validated encode invocation.
type EncodeRequest struct {
	Input       string
	Output      string
	DataFormat  DataFormat
	PixelFormat PixelFormat
	Mipmaps     bool
	Header      HeaderID
	GlobalIndex uint32
}

// NewEncodeRequest validates the options and returns the request built from them.
func NewEncodeRequest(
	input, output string,
	dataFormat DataFormat,
	pixelFormat PixelFormat,
	mipmaps bool,
	header HeaderID,
	globalIndex uint32,
) (EncodeRequest, error) {
	if err := Validate(dataFormat, mipmaps); err != nil {
		return EncodeRequest{}, err
	}

	return EncodeRequest{
		Input:       input,
		Output:      output,
		DataFormat:  dataFormat,
		PixelFormat: pixelFormat,
		Mipmaps:     mipmaps,
		Header:      header,
		GlobalIndex: globalIndex,
	}, nil
}

// Palettized reports whether the request uses an indexed data format.
func (r EncodeRequest) Palettized() bool { return IsPalettized(r.DataFormat) }

// constructPath is one of the four encoder construction entry points.
type constructPath int

const (
	pathPalettizedGCIX constructPath = iota
	pathPalettizedGBIX
	pathPlainGCIX
	pathPlainGBIX
)

func (p constructPath) String() string {
	switch p {
	case pathPalettizedGCIX:
		return "palettized GCIX"
	case pathPalettizedGBIX:
		return "palettized GBIX"
	case pathPlainGCIX:
		return "GCIX"
	default:
		return "GBIX"
	}
}

type constructor func(gvr.PixelFormat, gvr.DataFormat) (*gvr.Encoder, error)

var constructors = [...]constructor{
	pathPalettizedGCIX: gvr.NewGCIXPalettized,
	pathPalettizedGBIX: gvr.NewGBIXPalettized,
	pathPlainGCIX: func(_ gvr.PixelFormat, df gvr.DataFormat) (*gvr.Encoder, error) {
		return gvr.NewGCIX(df)
	},
	pathPlainGBIX: func(_ gvr.PixelFormat, df gvr.DataFormat) (*gvr.Encoder, error) {
		return gvr.NewGBIX(df)
	},
}

// selectPath maps the palette and header choices to a construction path.
func selectPath(palettized bool, header HeaderID) constructPath {
	switch {
	case palettized && header == HeaderGCIX:
		return pathPalettizedGCIX
	case palettized:
		return pathPalettizedGBIX
	case header == HeaderGCIX:
		return pathPlainGCIX
	default:
		return pathPlainGBIX
	}
}

// Configure builds the encoder for a validated request.
// Construction errors are returned unchanged.
func Configure(req EncodeRequest) (*gvr.Encoder, error) {
	path := selectPath(req.Palettized(), req.Header)
	enc, err := constructors[path](req.PixelFormat.Codec(), req.DataFormat.Codec())
	if err != nil {
		return nil, err
	}

	if req.Mipmaps {
		enc, err = enc.WithMipmaps()
		if err != nil {
			// Validate admits only formats the codec accepts mipmaps for.
			panic(fmt.Sprintf("gvrtex: mipmaps rejected for validated format %s: %v", req.DataFormat, err))
		}
	}
	if req.GlobalIndex > 0 {
		enc = enc.WithGlobalIndex(req.GlobalIndex)
	}

	return enc, nil
}
