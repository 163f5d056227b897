package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/output"
)

// Sink prints the manifest of each dataset, never the row data.
type Sink struct {
	enc *json.Encoder
}

// New creates a Sink writing to stdout, optionally pretty-printed.
func New(pretty bool) *Sink {
	return NewWriter(os.Stdout, pretty)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, pretty bool) *Sink {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Sink{enc: enc}
}

func (s *Sink) Write(_ context.Context, ds *model.Dataset) error {
	if err := s.enc.Encode(output.NewManifest(ds)); err != nil {
		return fmt.Errorf("stdout sink: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	return nil
}
