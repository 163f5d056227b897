package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/crimson-sun/genreprep/internal/model"
)

// maxLineBytes bounds a single corpus line; long summaries run to tens of KB.
const maxLineBytes = 4 << 20

// Parser turns one file's content into records and reports how many rows it
// dropped as malformed.
type Parser func(r io.Reader) (records []model.Record, dropped int, err error)

// FileSource reads Paths in order with Parse and concatenates the records.
type FileSource struct {
	Name  string
	Paths []string
	Parse Parser
	Log   *slog.Logger
}

func (s FileSource) Records(ctx context.Context) ([]model.Record, error) {
	if len(s.Paths) == 0 {
		return nil, fmt.Errorf("%s: no input files", s.Name)
	}
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	var all []model.Record
	for _, path := range s.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, dropped, err := s.parseFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded corpus file", "source", s.Name, "path", path, "records", len(records), "dropped", dropped)
		all = append(all, records...)
	}
	return all, nil
}

func (s FileSource) parseFile(path string) ([]model.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", s.Name, err)
	}
	defer f.Close()
	records, dropped, err := s.Parse(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %s: %w", s.Name, path, err)
	}
	return records, dropped, nil
}

// ScanLines calls fn for every non-empty line of r.
func ScanLines(r io.Reader, fn func(line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			fn(line)
		}
	}
	return sc.Err()
}
