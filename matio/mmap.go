package matio

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"unsafe"

	"github.com/hupe1980/facmat/dense"
	"github.com/hupe1980/facmat/internal/mmap"
)

// Map opens an uncompressed container by memory-mapping it and returns a
// matrix whose backing storage aliases the mapped payload - no copy is
// made. The returned closer releases the mapping; the matrix must not be
// used after Close.
//
// Compressed containers fail with ErrMapCompressed; read those with
// ReadContainerFile instead.
func Map[T dense.Number](path string) (*dense.Matrix[T], io.Closer, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}

	mat, err := mapBytes[T](m.Bytes())
	if err != nil {
		m.Close()
		return nil, nil, err
	}
	return mat, m, nil
}

func mapBytes[T dense.Number](data []byte) (*dense.Matrix[T], error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	var header Header
	if _, err := binary.Decode(data[:headerSize], binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("matio: decode header: %w", err)
	}
	if err := header.validate(); err != nil {
		return nil, err
	}
	if Codec(header.Codec) != CodecNone {
		return nil, ErrMapCompressed
	}
	if got := dense.DType(header.DType); got != dense.TypeOf[T]() {
		return nil, &ErrDType{Want: dense.TypeOf[T](), Got: got}
	}

	n := int(header.Rows) * int(header.Cols)
	payload := data[headerSize:]
	if len(payload) != n*dense.TypeOf[T]().Size() {
		return nil, ErrTruncated
	}
	if crc32.ChecksumIEEE(payload) != header.Checksum {
		return nil, ErrChecksum
	}

	var z T
	if uintptr(unsafe.Pointer(&payload[0]))%unsafe.Alignof(z) != 0 {
		// The 32-byte header keeps the payload aligned on page-aligned
		// mappings; this only trips on the non-mmap fallback with an
		// unaligned allocation, which Go's allocator does not produce.
		return nil, fmt.Errorf("matio: misaligned payload")
	}
	elems := unsafe.Slice((*T)(unsafe.Pointer(&payload[0])), n)
	return dense.FromSlice(int(header.Rows), int(header.Cols), elems)
}
