package matio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"

	"github.com/hupe1980/facmat/dense"
)

// containerOptions configure WriteContainer.
type containerOptions struct {
	codec Codec
}

// ContainerOption configures container writing.
type ContainerOption func(*containerOptions)

// WithCodec selects the payload compression codec. The default is
// CodecNone, which keeps the container memory-mappable.
func WithCodec(c Codec) ContainerOption {
	return func(o *containerOptions) {
		o.codec = c
	}
}

// WriteContainer writes m to w in container format.
func WriteContainer[T dense.Number](w io.Writer, m *dense.Matrix[T], opts ...ContainerOption) error {
	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	raw := elementsToBytes(m.Data())
	payload, codec, err := encodePayload(raw, o.codec)
	if err != nil {
		return err
	}

	rows, cols := m.Dims()
	header := Header{
		Magic:    MagicNumber,
		Version:  Version,
		DType:    uint8(dense.TypeOf[T]()),
		Codec:    uint8(codec),
		Rows:     uint64(rows),
		Cols:     uint64(cols),
		Checksum: crc32.ChecksumIEEE(payload),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("matio: write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("matio: write payload: %w", err)
	}
	return nil
}

// WriteContainerFile writes m to a container file at path.
func WriteContainerFile[T dense.Number](path string, m *dense.Matrix[T], opts ...ContainerOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := WriteContainer(bw, m, opts...); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadContainer reads a container from r. The element type of the file must
// match T; a disagreement fails with *ErrDType before any payload is
// decoded.
func ReadContainer[T dense.Number](r io.Reader) (*dense.Matrix[T], error) {
	var header Header
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("matio: read header: %w", err)
	}
	if err := header.validate(); err != nil {
		return nil, err
	}
	if got := dense.DType(header.DType); got != dense.TypeOf[T]() {
		return nil, &ErrDType{Want: dense.TypeOf[T](), Got: got}
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("matio: read payload: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != header.Checksum {
		return nil, ErrChecksum
	}

	n := int(header.Rows) * int(header.Cols)
	raw, err := decodePayload(payload, Codec(header.Codec), n*dense.TypeOf[T]().Size())
	if err != nil {
		return nil, err
	}

	data := make([]T, n)
	copy(elementsToBytes(data), raw)
	return dense.FromSlice(int(header.Rows), int(header.Cols), data)
}

// ReadContainerFile reads a container file from path.
func ReadContainerFile[T dense.Number](path string) (*dense.Matrix[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadContainer[T](bufio.NewReader(f))
}

// ReadContainerBytes reads a container from an in-memory byte slice, e.g.
// one fetched from a blob store.
func ReadContainerBytes[T dense.Number](data []byte) (*dense.Matrix[T], error) {
	return ReadContainer[T](bytes.NewReader(data))
}

// elementsToBytes reinterprets the element slice as its raw little-endian
// bytes without copying. Only valid on little-endian platforms, which is
// everything this module targets.
func elementsToBytes[T dense.Number](v []T) []byte {
	if len(v) == 0 {
		return nil
	}
	var z T
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(unsafe.Sizeof(z)))
}
