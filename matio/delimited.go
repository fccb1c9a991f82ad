package matio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/facmat/dense"
)

// delimitedOptions configure the delimited text reader and writer.
type delimitedOptions struct {
	delimiter string
}

// DelimitedOption configures ReadDelimited and WriteDelimited.
type DelimitedOption func(*delimitedOptions)

// WithDelimiter sets the value delimiter. The default is a comma.
func WithDelimiter(d string) DelimitedOption {
	return func(o *delimitedOptions) {
		if d != "" {
			o.delimiter = d
		}
	}
}

// ReadDelimited parses a delimited text matrix from r: one row per line,
// values separated by the delimiter, no header. Blank lines are ignored;
// rows of unequal length fail with dense.ErrRagged.
func ReadDelimited[T dense.Number](r io.Reader, opts ...DelimitedOption) (*dense.Matrix[T], error) {
	o := delimitedOptions{delimiter: ","}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		data []T
		rows int
		cols int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, o.delimiter)
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", dense.ErrRagged, rows, len(fields), cols)
		}
		for _, field := range fields {
			v, err := parseValue[T](strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("matio: row %d: %w", rows, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("matio: scan: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("matio: empty input")
	}
	return dense.FromSlice(rows, cols, data)
}

// ReadDelimitedFile parses a delimited text matrix from the file at path.
func ReadDelimitedFile[T dense.Number](path string, opts ...DelimitedOption) (*dense.Matrix[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDelimited[T](f, opts...)
}

// WriteDelimited writes m as delimited text, the exact inverse of
// ReadDelimited for the same delimiter.
func WriteDelimited[T dense.Number](w io.Writer, m *dense.Matrix[T], opts ...DelimitedOption) error {
	o := delimitedOptions{delimiter: ","}
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		row := m.Row(i)
		for j := 0; j < cols; j++ {
			if j > 0 {
				if _, err := bw.WriteString(o.delimiter); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(formatValue(row[j])); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDelimitedFile writes m as delimited text to the file at path.
func WriteDelimitedFile[T dense.Number](path string, m *dense.Matrix[T], opts ...DelimitedOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDelimited(f, m, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseValue parses one field into the element type T. Dispatch is on the
// dtype tag, not a type switch, so named element types parse like their
// underlying type.
func parseValue[T dense.Number](s string) (T, error) {
	switch dense.TypeOf[T]() {
	case dense.Int32:
		v, err := parseInt(s, 32)
		return T(v), err
	case dense.Int64:
		v, err := parseInt(s, 64)
		return T(v), err
	case dense.Float32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", s, err)
		}
		return T(v), nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", s, err)
		}
		return T(v), nil
	}
}

// parseInt accepts both integer literals and float notation with a zero
// fraction ("3", "3.0", "3e0"), which numeric text writers commonly emit
// for integer matrices.
func parseInt(s string, bits int) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, bits); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	v := int64(f)
	if float64(v) != f {
		return 0, fmt.Errorf("parse %q: not an integer value", s)
	}
	return v, nil
}

// formatValue renders one element the way strconv would parse it back.
func formatValue[T dense.Number](v T) string {
	switch dense.TypeOf[T]() {
	case dense.Int32, dense.Int64:
		return strconv.FormatInt(int64(v), 10)
	case dense.Float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	}
}
