// Package corpus loads raw genre-tagged records from on-disk corpora.
// Concrete formats live in subpackages and register themselves by name.
package corpus

import (
	"context"
	"fmt"
	"sort"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/model"
)

// Source produces the full set of raw records for one corpus.
type Source interface {
	Records(ctx context.Context) ([]model.Record, error)
}

// Constructor creates a Source reading the given files.
type Constructor func(paths ...string) Source

var registry = map[string]Constructor{}

// Register adds a source constructor under name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the constructor registered under name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("corpus: %w: %q", perrors.ErrUnknownSource, name)
	}
	return ctor, nil
}

// Open is Get followed by the constructor call.
func Open(name string, paths ...string) (Source, error) {
	ctor, err := Get(name)
	if err != nil {
		return nil, err
	}
	return ctor(paths...), nil
}

// Sources returns the registered names in sorted order.
func Sources() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Func adapts a function to the Source interface.
type Func func(ctx context.Context) ([]model.Record, error)

func (f Func) Records(ctx context.Context) ([]model.Record, error) {
	return f(ctx)
}
