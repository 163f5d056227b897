package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/output"
)

const defaultBufSize = 256 * 1024

// Option configures a file Sink.
type Option func(*Sink)

// WithBufSize sets the bufio.Writer buffer size. Default: 256KB.
func WithBufSize(bytes int) Option {
	return func(s *Sink) { s.bufSize = bytes }
}

// WithPretty indents the JSON output.
func WithPretty(pretty bool) Option {
	return func(s *Sink) { s.pretty = pretty }
}

// WithoutEmbedding leaves the embedding matrix out of the file.
func WithoutEmbedding() Option {
	return func(s *Sink) { s.skipEmbedding = true }
}

// Sink writes each dataset as one JSON document to a file. The file is
// truncated when the sink is created.
type Sink struct {
	w             *bufio.Writer
	f             *os.File
	mu            sync.Mutex
	path          string
	bufSize       int
	pretty        bool
	skipEmbedding bool
}

// New creates the file at path and returns a Sink writing to it.
func New(path string, opts ...Option) (*Sink, error) {
	s := &Sink{path: path, bufSize: defaultBufSize}
	for _, opt := range opts {
		opt(s)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("file sink: open %s: %w", path, err)
	}
	s.f = f
	s.w = bufio.NewWriterSize(f, s.bufSize)
	return s, nil
}

// Write JSON-encodes the dataset and appends it to the file.
func (s *Sink) Write(ctx context.Context, ds *model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.skipEmbedding {
		ds = output.WithoutEmbedding(ds)
	}
	enc := json.NewEncoder(s.w)
	if s.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("file sink: encode: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("file sink: flush: %w", err)
	}
	return s.f.Close()
}

// Read decodes a dataset written by a Sink.
func Read(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file sink: %w", err)
	}
	defer f.Close()
	var ds model.Dataset
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(&ds); err != nil {
		return nil, fmt.Errorf("file sink: decode %s: %w", path, err)
	}
	return &ds, nil
}
