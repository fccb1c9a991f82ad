package matio

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/hupe1980/facmat/dense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMatrix(t *testing.T, rows, cols int) *dense.Matrix[float64] {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	m, err := dense.FromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestContainerRoundTrip(t *testing.T) {
	codecs := []struct {
		name  string
		codec Codec
	}{
		{"None", CodecNone},
		{"LZ4", CodecLZ4},
		{"ZSTD", CodecZSTD},
	}

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			m := randomMatrix(t, 17, 9)

			var buf bytes.Buffer
			require.NoError(t, WriteContainer(&buf, m, WithCodec(tc.codec)))

			got, err := ReadContainer[float64](&buf)
			require.NoError(t, err)
			assert.True(t, m.Equal(got))
		})
	}
}

func TestContainerRoundTripInt(t *testing.T) {
	m, err := dense.FromRows([][]int32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m, WithCodec(CodecZSTD)))

	got, err := ReadContainerBytes[int32](buf.Bytes())
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestContainerNamedElementType(t *testing.T) {
	// A named element type carries its underlying dtype tag, so the file
	// reads back under either name.
	type weight float32

	m, err := dense.FromRows([][]weight{{1.5, 2}, {-0.25, 4}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m))

	got, err := ReadContainerBytes[float32](buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, 2}, got.Row(0))
	assert.Equal(t, []float32{-0.25, 4}, got.Row(1))
}

func TestContainerFileRoundTrip(t *testing.T) {
	m := randomMatrix(t, 5, 4)
	path := filepath.Join(t.TempDir(), "m.fac")

	require.NoError(t, WriteContainerFile(path, m, WithCodec(CodecLZ4)))
	got, err := ReadContainerFile[float64](path)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestContainerDTypeMismatch(t *testing.T) {
	m := randomMatrix(t, 3, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m))

	_, err := ReadContainer[int64](&buf)
	var dt *ErrDType
	require.ErrorAs(t, err, &dt)
	assert.Equal(t, dense.Int64, dt.Want)
	assert.Equal(t, dense.Float64, dt.Got)
}

func TestContainerInvalidMagic(t *testing.T) {
	m := randomMatrix(t, 3, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m))
	raw := buf.Bytes()
	raw[0] ^= 0xff

	_, err := ReadContainerBytes[float64](raw)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestContainerBadVersion(t *testing.T) {
	m := randomMatrix(t, 3, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m))
	raw := buf.Bytes()
	binary.LittleEndian.PutUint32(raw[4:], 0x00990000)

	_, err := ReadContainerBytes[float64](raw)
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestContainerChecksum(t *testing.T) {
	m := randomMatrix(t, 4, 4)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m))
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0x01 // flip one payload bit

	_, err := ReadContainerBytes[float64](raw)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestContainerTruncated(t *testing.T) {
	_, err := ReadContainerBytes[float64]([]byte{0x31, 0x43})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestIncompressiblePayloadFallsBackToNone(t *testing.T) {
	// Random doubles do not compress; the writer must store them raw
	// rather than fail or grow the file.
	m := randomMatrix(t, 8, 8)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m, WithCodec(CodecLZ4)))

	var header Header
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &header))
	assert.Equal(t, uint8(CodecNone), header.Codec)

	got, err := ReadContainerBytes[float64](buf.Bytes())
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestCompressiblePayloadKeepsCodec(t *testing.T) {
	data := make([]float64, 64*64) // all zeros compress well
	m, err := dense.FromSlice(64, 64, data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, m, WithCodec(CodecZSTD)))
	assert.Less(t, buf.Len(), headerSize+64*64*8)

	var header Header
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &header))
	assert.Equal(t, uint8(CodecZSTD), header.Codec)

	got, err := ReadContainerBytes[float64](buf.Bytes())
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}
