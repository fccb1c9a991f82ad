package matio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hupe1980/facmat/dense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDelimited(t *testing.T) {
	in := "1,2,3\n4,5,6\n"
	m, err := ReadDelimited[int64](strings.NewReader(in))
	require.NoError(t, err)

	want, err := dense.FromRows([][]int64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.True(t, want.Equal(m))
}

func TestReadDelimitedBlankLinesAndSpace(t *testing.T) {
	in := "\n 1 , 2 \n\n 3 , 4 \n\n"
	m, err := ReadDelimited[int64](strings.NewReader(in))
	require.NoError(t, err)

	want, err := dense.FromRows([][]int64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.True(t, want.Equal(m))
}

func TestReadDelimitedFloatNotationIntegers(t *testing.T) {
	// Numeric text writers commonly emit "3.0" for integer matrices.
	in := "1.0,2.0\n3e0,4.0\n"
	m, err := ReadDelimited[int32](strings.NewReader(in))
	require.NoError(t, err)

	want, err := dense.FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.True(t, want.Equal(m))

	// A true fraction is rejected for integer targets.
	_, err = ReadDelimited[int32](strings.NewReader("1.5\n"))
	assert.Error(t, err)
}

func TestReadDelimitedRagged(t *testing.T) {
	_, err := ReadDelimited[int64](strings.NewReader("1,2\n3\n"))
	assert.ErrorIs(t, err, dense.ErrRagged)
}

func TestReadDelimitedEmpty(t *testing.T) {
	_, err := ReadDelimited[int64](strings.NewReader("\n\n"))
	assert.Error(t, err)
}

func TestReadDelimitedBadValue(t *testing.T) {
	_, err := ReadDelimited[float64](strings.NewReader("1,x\n"))
	assert.Error(t, err)
}

func TestDelimitedNamedElementType(t *testing.T) {
	// A named element type parses and formats like its underlying type.
	type weight float32

	m, err := ReadDelimited[weight](strings.NewReader("1.5,2\n-0.25,4\n"))
	require.NoError(t, err)

	want, err := dense.FromRows([][]weight{{1.5, 2}, {-0.25, 4}})
	require.NoError(t, err)
	require.True(t, want.Equal(m))

	var buf bytes.Buffer
	require.NoError(t, WriteDelimited(&buf, m))
	assert.Equal(t, "1.5,2\n-0.25,4\n", buf.String())
}

func TestDelimitedRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []DelimitedOption
	}{
		{"Comma", nil},
		{"Tab", []DelimitedOption{WithDelimiter("\t")}},
		{"Semicolon", []DelimitedOption{WithDelimiter(";")}},
	}

	m, err := dense.FromRows([][]float64{{1.5, -2.25, 0}, {3.125, 4, -0.5}})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteDelimited(&buf, m, tt.opts...))

			got, err := ReadDelimited[float64](&buf, tt.opts...)
			require.NoError(t, err)
			assert.True(t, m.Equal(got))
		})
	}
}
