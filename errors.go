package gvr

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrEmptyImage indicates an image without pixels.
	ErrEmptyImage = errors.New("empty image")
	// ErrInvalidFormat indicates an unsupported data format.
	ErrInvalidFormat = errors.New("invalid data format")
	// ErrInvalidPixelFormat indicates an unsupported palette pixel format.
	ErrInvalidPixelFormat = errors.New("invalid pixel format")
	// ErrNotPalettized indicates a palette constructor was given a direct color format.
	ErrNotPalettized = errors.New("data format does not use a palette")
	// ErrPaletteRequired indicates a plain constructor was given an indexed format.
	ErrPaletteRequired = errors.New("data format requires a palette")
	// ErrMipmapsUnsupported indicates mipmaps were requested for a format that cannot carry them.
	ErrMipmapsUnsupported = errors.New("mipmaps not supported for data format")
	// ErrMipmapDimensions indicates mipmaps were requested for non power-of-two dimensions.
	ErrMipmapDimensions = errors.New("mipmaps require power-of-two dimensions")
	// ErrMipmapSizeMismatch indicates a generated mipmap level has unexpected dimensions.
	ErrMipmapSizeMismatch = errors.New("mipmap size mismatch")
	// ErrBlockCodec indicates the DXT1 block codec failed.
	ErrBlockCodec = errors.New("DXT1 block codec failed")
	// ErrOpenImage indicates the source image could not be opened or decoded.
	ErrOpenImage = errors.New("open image failed")
	// ErrSaveImage indicates the decoded image could not be written.
	ErrSaveImage = errors.New("save image failed")
	// ErrOpenFile indicates GVR file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrShortHeader indicates the file ends inside a header chunk.
	ErrShortHeader = errors.New("truncated header")
	// ErrBadMagic indicates an unknown chunk magic.
	ErrBadMagic = errors.New("unknown magic")
	// ErrUnknownFormat indicates a data format code this package cannot decode.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrExternalPalette indicates an indexed texture whose palette lives in a separate file.
	ErrExternalPalette = errors.New("external palettes are not supported")
	// ErrTruncatedData indicates palette or pixel data is shorter than the header declares.
	ErrTruncatedData = errors.New("truncated texture data")
	// ErrNotDecoded indicates Save was called before a successful Decode.
	ErrNotDecoded = errors.New("texture not decoded")
	// ErrWriteHeader indicates header serialization failed.
	ErrWriteHeader = errors.New("writing header failed")
)
