package genre

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/genreprep/internal/model"
)

func testIndex(t *testing.T, labels ...string) *Index {
	t.Helper()
	idx, err := NewIndex(labels)
	require.NoError(t, err)
	return idx
}

func TestNewIndex(t *testing.T) {
	req := require.New(t)

	idx, err := NewIndex([]string{"Drama", "Comedy", "Horror"})
	req.NoError(err)
	req.Equal(3, idx.Len())

	code, ok := idx.Code("Comedy")
	req.True(ok)
	req.Equal(1, code)

	_, ok = idx.Code("Western")
	req.False(ok)
	req.Equal([]string{"Drama", "Comedy", "Horror"}, idx.Labels())
	req.Equal([]int{2, 0}, idx.Codes([]string{"Horror", "Western", "Drama"}))
}

func TestNewIndexRejectsBadLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
	}{
		{"empty set", nil},
		{"empty label", []string{"Drama", ""}},
		{"duplicate", []string{"Drama", "Drama"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndex(tt.labels)
			require.Error(t, err)
		})
	}
}

func TestSelectInclusive(t *testing.T) {
	idx := testIndex(t, "Drama", "Comedy")
	records := []model.Record{
		{Genres: []string{"Novel", "Comedy", "Drama"}, Text: "first"},
		{Genres: []string{"Novel"}, Text: "dropped: no intersection"},
		{Genres: []string{"Drama"}, Text: ""},
		{Genres: nil, Text: "dropped: no genres"},
		{Genres: []string{"Drama", "Drama"}, Text: "second"},
	}

	got := NewSelector(idx, false).Select(records)

	require.Equal(t, []model.Record{
		{Genres: []string{"Comedy", "Drama"}, Text: "first"},
		{Genres: []string{"Drama"}, Text: "second"},
	}, got)
}

func TestSelectUnique(t *testing.T) {
	idx := testIndex(t, "Drama", "Comedy")
	records := []model.Record{
		{Genres: []string{"Drama"}, Text: "A sad story of loss."},
		{Genres: []string{"Comedy", "Drama"}, Text: "A funny tale."},
		{Genres: []string{"Novel", "Comedy"}, Text: "Kept after intersection."},
	}

	got := NewSelector(idx, true).Select(records)

	require.Equal(t, []model.Record{
		{Genres: []string{"Drama"}, Text: "A sad story of loss."},
		{Genres: []string{"Comedy"}, Text: "Kept after intersection."},
	}, got)
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	idx := testIndex(t, "Drama")
	records := []model.Record{{Genres: []string{"Novel", "Drama"}, Text: "x"}}

	_ = NewSelector(idx, true).Select(records)

	require.Equal(t, []string{"Novel", "Drama"}, records[0].Genres)
}

func TestDefaults(t *testing.T) {
	for _, source := range []string{"books", "movies"} {
		labels := Defaults(source)
		require.NotEmpty(t, labels, source)
		_, err := NewIndex(labels)
		require.NoError(t, err, source)
	}
	require.Nil(t, Defaults("podcasts"))
}
