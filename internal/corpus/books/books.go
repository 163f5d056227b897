// Package books reads the tab-separated book summary corpus. Each line holds
// wiki ID, Freebase ID, title, author, publication date, a JSON object of
// Freebase genre IDs to names, and the plot summary.
package books

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/model"
)

// Name is the registry key of this source.
const Name = "books"

const (
	colGenres  = 5
	colSummary = 6
	numColumns = 7
)

func init() {
	corpus.Register(Name, New)
}

// New returns a Source over the given files.
func New(paths ...string) corpus.Source {
	return corpus.FileSource{Name: Name, Paths: paths, Parse: Parse}
}

// Parse reads every line of r. Lines with too few columns, unparseable
// genres, no genres or no summary are dropped and counted.
func Parse(r io.Reader) ([]model.Record, int, error) {
	var (
		records []model.Record
		dropped int
	)
	err := corpus.ScanLines(r, func(line string) {
		fields := strings.Split(line, "\t")
		if len(fields) < numColumns {
			dropped++
			return
		}
		genres, err := GenreNames(fields[colGenres])
		if err != nil {
			dropped++
			return
		}
		rec := model.Record{
			Genres: genres,
			Text:   strings.TrimSpace(strings.Join(fields[colSummary:], "\t")),
		}
		if !rec.Valid() {
			dropped++
			return
		}
		records = append(records, rec)
	})
	if err != nil {
		return nil, 0, err
	}
	return records, dropped, nil
}

// GenreNames returns the values of a JSON object in document order. An empty
// column yields no genres.
func GenreNames(column string) ([]string, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(column))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("genres: expected JSON object")
	}
	var names []string
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("genres: %w", err)
		}
		var name string
		if err := dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("genres: %w", err)
		}
		names = append(names, name)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}
	return names, nil
}
