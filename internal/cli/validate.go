package cli

import (
	"errors"
	"fmt"
)

// ErrIncompatibleMipmaps indicates mipmaps were requested for a data format that cannot carry them.
var ErrIncompatibleMipmaps = errors.New("incompatible mipmaps")

// ValidationError is a rejected option combination, reported as a usage error.
type ValidationError struct {
	Err        error
	DataFormat DataFormat
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Can't use mipmaps on the `%s` data format.", e.DataFormat)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the data format and mipmap flag before any encoder is built.
func Validate(dataFormat DataFormat, mipmaps bool) error {
	if !mipmaps {
		return nil
	}

	switch dataFormat {
	case DataDXT1, DataRGB565, DataRGB5A3:
		return nil
	default:
		return &ValidationError{Err: ErrIncompatibleMipmaps, DataFormat: dataFormat}
	}
}

// IsPalettized reports whether the data format stores palette indices.
func IsPalettized(dataFormat DataFormat) bool {
	return dataFormat == DataIndex4 || dataFormat == DataIndex8
}
