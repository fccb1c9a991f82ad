package facmat

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/facmat/blobstore"
	"github.com/hupe1980/facmat/dense"
	"github.com/hupe1980/facmat/matio"
	"golang.org/x/sync/errgroup"
)

// loadOptions configure the loaders.
type loadOptions struct {
	logger     *Logger
	delimiters []matio.DelimitedOption
}

// LoadOption configures a loader call.
type LoadOption func(*loadOptions)

// WithLoadLogger sets the logger used by the loaders. The default discards
// all output.
func WithLoadLogger(l *Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLoadDelimiter sets the value delimiter for delimited-text loading.
func WithLoadDelimiter(d string) LoadOption {
	return func(o *loadOptions) {
		o.delimiters = append(o.delimiters, matio.WithDelimiter(d))
	}
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FromDelimitedFiles builds a FactoredMatrix from two delimited text files,
// the left factor first. Both files must parse cleanly as T; integer types
// also accept float notation with a zero fraction ("3.0").
func FromDelimitedFiles[T dense.Number](leftPath, rightPath string, opts ...LoadOption) (*FactoredMatrix[T], error) {
	o := newLoadOptions(opts)

	left, err := matio.ReadDelimitedFile[T](leftPath, o.delimiters...)
	if err != nil {
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, translateError(err)
	}
	right, err := matio.ReadDelimitedFile[T](rightPath, o.delimiters...)
	if err != nil {
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, translateError(err)
	}

	m, err := New(left, right)
	o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
	return m, err
}

// FromContainerFiles builds a FactoredMatrix from two binary container
// files, the left factor first. The on-disk dtype of each file must match
// T; a disagreement fails with *ErrDTypeMismatch.
func FromContainerFiles[T dense.Number](leftPath, rightPath string, opts ...LoadOption) (*FactoredMatrix[T], error) {
	o := newLoadOptions(opts)

	left, err := matio.ReadContainerFile[T](leftPath)
	if err != nil {
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, translateError(err)
	}
	right, err := matio.ReadContainerFile[T](rightPath)
	if err != nil {
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, translateError(err)
	}

	m, err := New(left, right)
	o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
	return m, err
}

// FromMappedFiles builds a FactoredMatrix whose factors alias two
// memory-mapped container files. No element data is copied; the returned
// closer releases both mappings and the matrix must not be used after
// Close. Only uncompressed containers can be mapped.
func FromMappedFiles[T dense.Number](leftPath, rightPath string, opts ...LoadOption) (*FactoredMatrix[T], io.Closer, error) {
	o := newLoadOptions(opts)

	left, leftCloser, err := matio.Map[T](leftPath)
	if err != nil {
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, nil, translateError(err)
	}
	right, rightCloser, err := matio.Map[T](rightPath)
	if err != nil {
		leftCloser.Close()
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, nil, translateError(err)
	}

	m, err := New(left, right)
	if err != nil {
		leftCloser.Close()
		rightCloser.Close()
		o.logger.LogLoad(context.Background(), leftPath, rightPath, err)
		return nil, nil, err
	}
	o.logger.LogLoad(context.Background(), leftPath, rightPath, nil)
	return m, multiCloser{leftCloser, rightCloser}, nil
}

// FromBlobStore builds a FactoredMatrix from two container blobs, fetched
// concurrently from the store.
func FromBlobStore[T dense.Number](ctx context.Context, store blobstore.BlobStore, leftName, rightName string, opts ...LoadOption) (*FactoredMatrix[T], error) {
	o := newLoadOptions(opts)

	var left, right *dense.Matrix[T]
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := blobstore.ReadAll(ctx, store, leftName)
		if err != nil {
			return err
		}
		left, err = matio.ReadContainerBytes[T](data)
		return err
	})
	g.Go(func() error {
		data, err := blobstore.ReadAll(ctx, store, rightName)
		if err != nil {
			return err
		}
		right, err = matio.ReadContainerBytes[T](data)
		return err
	})
	if err := g.Wait(); err != nil {
		o.logger.LogLoad(ctx, leftName, rightName, err)
		return nil, translateError(err)
	}

	m, err := New(left, right)
	o.logger.LogLoad(ctx, leftName, rightName, err)
	return m, err
}

// translateError lifts matio dtype errors into the package error
// vocabulary; everything else passes through unchanged.
func translateError(err error) error {
	var dt *matio.ErrDType
	if errors.As(err, &dt) {
		return &ErrDTypeMismatch{Want: dt.Want, Got: dt.Got}
	}
	return err
}

// multiCloser closes its members in order, returning the first error.
type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var first error
	for _, c := range mc {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
