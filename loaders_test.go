package facmat

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/facmat/blobstore"
	"github.com/hupe1980/facmat/dense"
	"github.com/hupe1980/facmat/matio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFactorFiles(t *testing.T, write func(path string, m *dense.Matrix[int64])) (string, string) {
	t.Helper()
	dir := t.TempDir()

	left, err := dense.FromRows([][]int64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	right, err := dense.FromRows([][]int64{{1, 0, 1}, {0, 1, 1}})
	require.NoError(t, err)

	leftPath := filepath.Join(dir, "left.bin")
	rightPath := filepath.Join(dir, "right.bin")
	write(leftPath, left)
	write(rightPath, right)
	return leftPath, rightPath
}

func assertCanonical(t *testing.T, m *FactoredMatrix[int64]) {
	t.Helper()
	r, c := m.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	for i, wantRow := range testProduct {
		row, err := m.Row(i)
		require.NoError(t, err)
		assert.Equal(t, wantRow, row)
	}
}

func TestFromDelimitedFiles(t *testing.T) {
	leftPath, rightPath := writeFactorFiles(t, func(path string, m *dense.Matrix[int64]) {
		require.NoError(t, matio.WriteDelimitedFile(path, m))
	})

	m, err := FromDelimitedFiles[int64](leftPath, rightPath)
	require.NoError(t, err)
	assertCanonical(t, m)
}

func TestFromDelimitedFilesCustomDelimiter(t *testing.T) {
	leftPath, rightPath := writeFactorFiles(t, func(path string, m *dense.Matrix[int64]) {
		require.NoError(t, matio.WriteDelimitedFile(path, m, matio.WithDelimiter("\t")))
	})

	m, err := FromDelimitedFiles[int64](leftPath, rightPath, WithLoadDelimiter("\t"))
	require.NoError(t, err)
	assertCanonical(t, m)
}

func TestFromDelimitedFilesInnerDim(t *testing.T) {
	dir := t.TempDir()
	leftPath := filepath.Join(dir, "left.csv")
	rightPath := filepath.Join(dir, "right.csv")
	require.NoError(t, os.WriteFile(leftPath, []byte("1,2,3\n"), 0o600))
	require.NoError(t, os.WriteFile(rightPath, []byte("1,1\n2,2\n"), 0o600))

	_, err := FromDelimitedFiles[int64](leftPath, rightPath)
	var dim *ErrInnerDim
	require.ErrorAs(t, err, &dim)
	assert.Equal(t, 3, dim.LeftCols)
	assert.Equal(t, 2, dim.RightRows)
}

func TestFromContainerFiles(t *testing.T) {
	leftPath, rightPath := writeFactorFiles(t, func(path string, m *dense.Matrix[int64]) {
		require.NoError(t, matio.WriteContainerFile(path, m, matio.WithCodec(matio.CodecZSTD)))
	})

	m, err := FromContainerFiles[int64](leftPath, rightPath, WithLoadLogger(NoopLogger()))
	require.NoError(t, err)
	assertCanonical(t, m)
}

func TestFromContainerFilesDTypeMismatch(t *testing.T) {
	leftPath, rightPath := writeFactorFiles(t, func(path string, m *dense.Matrix[int64]) {
		require.NoError(t, matio.WriteContainerFile(path, m))
	})

	_, err := FromContainerFiles[float64](leftPath, rightPath)
	var mismatch *ErrDTypeMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, dense.Float64, mismatch.Want)
	assert.Equal(t, dense.Int64, mismatch.Got)
}

func TestFromMappedFiles(t *testing.T) {
	leftPath, rightPath := writeFactorFiles(t, func(path string, m *dense.Matrix[int64]) {
		require.NoError(t, matio.WriteContainerFile(path, m))
	})

	m, closer, err := FromMappedFiles[int64](leftPath, rightPath)
	require.NoError(t, err)
	assertCanonical(t, m)
	require.NoError(t, closer.Close())
}

func TestFromMappedFilesCompressed(t *testing.T) {
	leftPath, rightPath := writeFactorFiles(t, func(path string, m *dense.Matrix[int64]) {
		require.NoError(t, matio.WriteContainerFile(path, m, matio.WithCodec(matio.CodecLZ4)))
	})

	_, _, err := FromMappedFiles[int64](leftPath, rightPath)
	assert.ErrorIs(t, err, matio.ErrMapCompressed)
}

func TestFromBlobStore(t *testing.T) {
	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	left, err := dense.FromRows([][]int64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	right, err := dense.FromRows([][]int64{{1, 0, 1}, {0, 1, 1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, matio.WriteContainer(&buf, left))
	require.NoError(t, store.Put(ctx, "factors/left", buf.Bytes()))
	buf.Reset()
	require.NoError(t, matio.WriteContainer(&buf, right, matio.WithCodec(matio.CodecZSTD)))
	require.NoError(t, store.Put(ctx, "factors/right", buf.Bytes()))

	m, err := FromBlobStore[int64](ctx, store, "factors/left", "factors/right")
	require.NoError(t, err)
	assertCanonical(t, m)
}

func TestFromBlobStoreMissing(t *testing.T) {
	store := blobstore.NewMemoryStore()

	_, err := FromBlobStore[int64](context.Background(), store, "nope/left", "nope/right")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
