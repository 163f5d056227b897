// Package movies reads the movie plot corpus, one film per line in the form
// "id ::: title ::: genre ::: summary". Several files (train and test dumps)
// are concatenated.
package movies

import (
	"io"
	"strings"

	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/model"
)

// Name is the registry key of this source.
const Name = "movies"

const separator = " ::: "

func init() {
	corpus.Register(Name, New)
}

func New(paths ...string) corpus.Source {
	return corpus.FileSource{Name: Name, Paths: paths, Parse: Parse}
}

// Parse reads every line of r. The single genre becomes a one-element genre
// set. Lines without a genre and summary are dropped and counted.
func Parse(r io.Reader) ([]model.Record, int, error) {
	var (
		records []model.Record
		dropped int
	)
	err := corpus.ScanLines(r, func(line string) {
		fields := strings.Split(line, separator)
		if len(fields) < 4 {
			dropped++
			return
		}
		rec := model.Record{Text: strings.TrimSpace(strings.Join(fields[3:], separator))}
		if g := strings.TrimSpace(fields[2]); g != "" {
			rec.Genres = []string{g}
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
