package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/output"
)

// Multi fans out datasets to multiple output.Sink implementations.
// If one sink fails, the remaining sinks still receive the dataset.
type Multi struct {
	sinks []output.Sink
}

// New creates a Multi that fans out to the given sinks.
func New(sinks ...output.Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Write delivers the dataset to every wrapped sink. Errors are collected
// but do not prevent delivery to subsequent sinks.
func (m *Multi) Write(ctx context.Context, ds *model.Dataset) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(ctx, ds); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped sink, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len reports how many sinks are wrapped.
func (m *Multi) Len() int {
	return len(m.sinks)
}
