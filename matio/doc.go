// Package matio reads and writes the on-disk formats for factor matrices.
//
// Two formats are supported:
//
//   - Delimited text: one matrix row per line, values separated by a single
//     configurable delimiter, no header. See ReadDelimited / WriteDelimited.
//
//   - Binary container: a fixed 32-byte self-describing header (magic,
//     version, dtype, codec, shape, checksum) followed by the row-major
//     element payload in little-endian order. Writer and reader are exact
//     inverses; a round trip preserves shape, dtype and values bit for bit.
//     See WriteContainer / ReadContainer.
//
// The container payload may optionally be compressed with LZ4 (fast) or
// zstd (better ratio). Uncompressed containers can additionally be opened
// with Map, which memory-maps the file and aliases the payload without
// copying - useful when the factors themselves are large.
//
// Integrity is protected by a CRC32 (IEEE) checksum over the stored
// payload. The checksum detects accidental corruption only; it is not
// tamper-proof.
package matio
