package corpus_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/genreprep/internal/corpus"
	_ "github.com/crimson-sun/genreprep/internal/corpus/books"
	_ "github.com/crimson-sun/genreprep/internal/corpus/movies"
	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/model"
)

func TestSourcesRegistered(t *testing.T) {
	require.Equal(t, []string{"books", "movies"}, corpus.Sources())
}

func TestGetUnknownSource(t *testing.T) {
	_, err := corpus.Get("tweets")
	require.ErrorIs(t, err, perrors.ErrUnknownSource)

	_, err = corpus.Open("tweets", "x")
	require.ErrorIs(t, err, perrors.ErrUnknownSource)
}

func TestOpenReadsFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "train.txt")
	b := filepath.Join(dir, "extra.txt")
	require.NoError(t, os.WriteFile(a, []byte("1 ::: A (2001) ::: drama ::: One.\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("2 ::: B (2002) ::: comedy ::: Two.\n"), 0o644))

	src, err := corpus.Open("movies", a, b)
	require.NoError(t, err)
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.Record{
		{Genres: []string{"drama"}, Text: "One."},
		{Genres: []string{"comedy"}, Text: "Two."},
	}, records)
}

func TestFileSourceErrors(t *testing.T) {
	src, err := corpus.Open("books")
	require.NoError(t, err)
	_, err = src.Records(context.Background())
	require.ErrorContains(t, err, "no input files")

	src, err = corpus.Open("books", filepath.Join(t.TempDir(), "missing.tsv"))
	require.NoError(t, err)
	_, err = src.Records(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src, err = corpus.Open("books", "whatever.tsv")
	require.NoError(t, err)
	_, err = src.Records(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLanguageFilter(t *testing.T) {
	english := model.Record{Genres: []string{"drama"}, Text: "The quick brown fox jumps over the lazy dog while the farmer watches quietly from the old wooden porch of his house."}
	french := model.Record{Genres: []string{"drama"}, Text: "Le petit garçon regarde la mer depuis la fenêtre de sa maison chaque matin avant de partir à l'école avec ses amis."}
	src := corpus.Func(func(context.Context) ([]model.Record, error) {
		return []model.Record{english, french}, nil
	})

	got, err := corpus.LanguageFilter{Source: src, Lang: "en"}.Records(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.Record{english}, got)

	got, err = corpus.LanguageFilter{Source: src}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestLanguage(t *testing.T) {
	require.Equal(t, "en", corpus.Language("This is a perfectly ordinary English sentence about books and the people who read them."))
}
