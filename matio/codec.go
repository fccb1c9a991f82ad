package matio

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the payload compression algorithm of a container.
type Codec uint8

const (
	// CodecNone stores the payload uncompressed. Required for Map.
	CodecNone Codec = 0
	// CodecLZ4 uses LZ4 block compression (fast, moderate ratio).
	CodecLZ4 Codec = 1
	// CodecZSTD uses zstd block compression (slower, better ratio).
	CodecZSTD Codec = 2
)

func (c Codec) valid() bool { return c <= CodecZSTD }

// String returns the codec name used in diagnostics.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// Shared zstd encoder/decoder; both are safe for concurrent use with
// EncodeAll/DecodeAll.
var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func zstdInit() {
	zstdOnce.Do(func() {
		zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		zstdDecoder, _ = zstd.NewReader(nil)
	})
}

// encodePayload compresses data with the requested codec and returns the
// stored bytes together with the codec actually used. Incompressible input
// falls back to CodecNone so the container stays decodable.
func encodePayload(data []byte, codec Codec) ([]byte, Codec, error) {
	switch codec {
	case CodecNone:
		return data, CodecNone, nil
	case CodecLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		var c lz4.Compressor
		n, err := c.CompressBlock(data, buf)
		if err != nil {
			return nil, 0, fmt.Errorf("matio: lz4 compression failed: %w", err)
		}
		if n == 0 || n >= len(data) {
			// LZ4 block compression signals incompressible input with n == 0.
			return data, CodecNone, nil
		}
		return buf[:n], CodecLZ4, nil
	case CodecZSTD:
		zstdInit()
		out := zstdEncoder.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return data, CodecNone, nil
		}
		return out, CodecZSTD, nil
	default:
		return nil, 0, fmt.Errorf("matio: unknown codec code %d", codec)
	}
}

// decodePayload expands stored payload bytes into exactly size bytes.
func decodePayload(data []byte, codec Codec, size int) ([]byte, error) {
	switch codec {
	case CodecNone:
		if len(data) != size {
			return nil, ErrTruncated
		}
		return data, nil
	case CodecLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("matio: lz4 decompression failed: %w", err)
		}
		if n != size {
			return nil, ErrTruncated
		}
		return out, nil
	case CodecZSTD:
		zstdInit()
		out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("matio: zstd decompression failed: %w", err)
		}
		if len(out) != size {
			return nil, ErrTruncated
		}
		return out, nil
	default:
		return nil, fmt.Errorf("matio: unknown codec code %d", codec)
	}
}
