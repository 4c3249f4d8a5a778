package gvr

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderID selects the magic of the global index chunk.
type HeaderID uint8

const (
	// HeaderNone marks a file that starts directly with the GVRT chunk.
	HeaderNone HeaderID = iota
	// HeaderGCIX writes the "GCIX" magic.
	HeaderGCIX
	// HeaderGBIX writes the "GBIX" magic.
	HeaderGBIX
)

const (
	// MagicGCIX is the GameCube global index chunk magic.
	MagicGCIX = "GCIX"
	// MagicGBIX is the global index chunk magic shared with PVR textures.
	MagicGBIX = "GBIX"
	// MagicGVRT is the texture chunk magic.
	MagicGVRT = "GVRT"

	// HeaderSize is the size of a GCIX/GBIX chunk plus the GVRT chunk header.
	HeaderSize = 32

	indexChunkLength = 8
	gvrtPrefixLength = 8
)

// String returns the four-character magic or an empty string for HeaderNone.
func (id HeaderID) String() string {
	switch id {
	case HeaderGCIX:
		return MagicGCIX
	case HeaderGBIX:
		return MagicGBIX
	default:
		return ""
	}
}

// Header is the decoded GVR file header.
type Header struct {
	ID          HeaderID
	GlobalIndex uint32
	PixelFormat PixelFormat
	Flags       Flags
	DataFormat  DataFormat
	Width       uint16
	Height      uint16
	// DataLength is the payload length after the GVRT width/height fields.
	DataLength uint32
}

// Write serializes the header chunks.
func (h *Header) Write(w io.Writer) error {
	buf := make([]byte, 0, HeaderSize)

	if h.ID != HeaderNone {
		buf = append(buf, h.ID.String()...)
		buf = binary.LittleEndian.AppendUint32(buf, indexChunkLength)
		buf = binary.BigEndian.AppendUint32(buf, h.GlobalIndex)
		buf = binary.BigEndian.AppendUint32(buf, 0)
	}

	if uint64(h.DataLength)+gvrtPrefixLength > maxUint32 {
		return fmt.Errorf("%w: data length %d", ErrSizeOverflow, h.DataLength)
	}

	formatByte := uint8(h.Flags & 0x0f)
	if h.DataFormat.Palettized() {
		formatByte |= uint8(h.PixelFormat) << 4
	}

	buf = append(buf, MagicGVRT...)
	buf = binary.LittleEndian.AppendUint32(buf, h.DataLength+gvrtPrefixLength)
	buf = binary.BigEndian.AppendUint16(buf, 0)
	buf = append(buf, formatByte, uint8(h.DataFormat))
	buf = binary.BigEndian.AppendUint16(buf, h.Width)
	buf = binary.BigEndian.AppendUint16(buf, h.Height)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}

	return nil
}

// ReadHeader reads the optional global index chunk and the GVRT chunk header.
func ReadHeader(r io.Reader) (*Header, error) {
	h := &Header{}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: magic: %v", ErrShortHeader, err)
	}

	switch string(magic[:]) {
	case MagicGCIX, MagicGBIX:
		if string(magic[:]) == MagicGCIX {
			h.ID = HeaderGCIX
		} else {
			h.ID = HeaderGBIX
		}

		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, fmt.Errorf("%w: %s length: %v", ErrShortHeader, h.ID, err)
		}
		if length < 4 {
			return nil, fmt.Errorf("%w: %s length %d", ErrShortHeader, h.ID, length)
		}

		var index [4]byte
		if _, err := io.ReadFull(r, index[:]); err != nil {
			return nil, fmt.Errorf("%w: %s body: %v", ErrShortHeader, h.ID, err)
		}
		h.GlobalIndex = binary.BigEndian.Uint32(index[:])

		// Skip the rest of the chunk without buffering it; length comes from the file.
		if _, err := io.CopyN(io.Discard, r, int64(length)-4); err != nil {
			return nil, fmt.Errorf("%w: %s body: %v", ErrShortHeader, h.ID, err)
		}

		if _, err := io.ReadFull(r, magic[:]); err != nil {
			return nil, fmt.Errorf("%w: GVRT magic: %v", ErrShortHeader, err)
		}
		if string(magic[:]) != MagicGVRT {
			return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
		}
	case MagicGVRT:
		h.ID = HeaderNone
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
	}

	var body [4 + gvrtPrefixLength]byte
	if _, err := io.ReadFull(r, body[:]); err != nil {
		return nil, fmt.Errorf("%w: GVRT: %v", ErrShortHeader, err)
	}

	length := binary.LittleEndian.Uint32(body[0:4])
	if length >= gvrtPrefixLength {
		h.DataLength = length - gvrtPrefixLength
	}
	h.PixelFormat = PixelFormat(body[6] >> 4)
	h.Flags = Flags(body[6] & 0x0f)
	h.DataFormat = DataFormat(body[7])
	h.Width = binary.BigEndian.Uint16(body[8:10])
	h.Height = binary.BigEndian.Uint16(body[10:12])

	return h, nil
}
