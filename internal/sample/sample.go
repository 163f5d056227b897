// Package sample embeds a small books and movies corpus in the on-disk
// layouts the corpus loaders read. Tests use it as realistic input.
package sample

import (
	"bytes"
	_ "embed"
	"io"
)

//go:embed books.tsv
var booksTSV []byte

//go:embed movies.txt
var moviesTXT []byte

// Books returns the sample book summaries: twelve tab-separated rows, nine
// usable. One has no genres, one no summary, one corrupt genres JSON.
func Books() io.Reader {
	return bytes.NewReader(booksTSV)
}

// Movies returns the sample movie plots: eight well-formed lines and one
// line missing its genre and summary.
func Movies() io.Reader {
	return bytes.NewReader(moviesTXT)
}
