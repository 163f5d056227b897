package genreprep

import (
	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/genre"
)

// DefaultGenres returns the built-in genre list of a corpus source, or nil
// for an unknown one. Labels are returned in code order.
func DefaultGenres(source string) []string {
	return genre.Defaults(source)
}

// Sources lists the registered corpus formats.
func Sources() []string {
	return corpus.Sources()
}
