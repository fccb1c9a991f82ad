package matio

import (
	"errors"
	"fmt"

	"github.com/hupe1980/facmat/dense"
)

const (
	// MagicNumber identifies facmat container files (ASCII: "FAC1").
	MagicNumber = 0x46414331
	// Version is the current container format version (v1.0.0).
	Version = 0x00010000

	// headerSize is the fixed encoded size of Header in bytes.
	headerSize = 32
)

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// container magic number.
	ErrInvalidMagic = errors.New("matio: invalid magic number")

	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("matio: unsupported version")

	// ErrChecksum is returned when the payload checksum does not match the
	// header, indicating corruption.
	ErrChecksum = errors.New("matio: payload checksum mismatch")

	// ErrTruncated is returned when a container ends before the payload the
	// header announces.
	ErrTruncated = errors.New("matio: truncated container")

	// ErrMapCompressed is returned by Map for containers whose payload is
	// compressed; only CodecNone containers can be aliased in place.
	ErrMapCompressed = errors.New("matio: cannot memory-map a compressed container")
)

// ErrDType indicates that a container's element type disagrees with the
// type requested by the reader.
type ErrDType struct {
	Want dense.DType
	Got  dense.DType
}

func (e *ErrDType) Error() string {
	return fmt.Sprintf("matio: dtype mismatch: want %s, got %s", e.Want, e.Got)
}

// Header is the fixed 32-byte header at the start of every container file.
// All multi-byte fields are little-endian.
type Header struct {
	Magic    uint32  // 0x46414331 ("FAC1")
	Version  uint32  // Format version
	DType    uint8   // dense.DType code
	Codec    uint8   // payload codec, see codec.go
	Padding  [2]byte // Reserved, must be zero
	Rows     uint64  // Matrix rows
	Cols     uint64  // Matrix cols
	Checksum uint32  // CRC32 (IEEE) of the stored payload
}

func (h *Header) validate() error {
	if h.Magic != MagicNumber {
		return ErrInvalidMagic
	}
	if h.Version != Version {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, h.Version)
	}
	if !dense.DType(h.DType).Valid() {
		return fmt.Errorf("matio: unknown dtype code %d", h.DType)
	}
	if !Codec(h.Codec).valid() {
		return fmt.Errorf("matio: unknown codec code %d", h.Codec)
	}
	if h.Rows == 0 || h.Cols == 0 {
		return fmt.Errorf("matio: invalid shape %dx%d", h.Rows, h.Cols)
	}
	return nil
}
