package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/genreprep/internal/embedding"
	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/genre"
	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/partition"
	"github.com/crimson-sun/genreprep/internal/text"
	"github.com/crimson-sun/genreprep/internal/vocab"
)

func seed(v uint64) *uint64 { return &v }

func index(t *testing.T, labels ...string) *genre.Index {
	t.Helper()
	x, err := genre.NewIndex(labels)
	require.NoError(t, err)
	return x
}

func newPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	p, err := New(opts, nil)
	require.NoError(t, err)
	return p
}

var sadStory = []model.Record{
	{Genres: []string{"Drama"}, Text: "A sad story of loss."},
	{Genres: []string{"Comedy", "Drama"}, Text: "A funny tale."},
}

func TestRunSadStory(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:             index(t, "Drama", "Comedy"),
		RequireSingleLabel: true,
		MinTokenLength:     3,
		Sizes:              partition.Sizes{Train: 1},
		Seed:               seed(1),
	})

	ds, err := p.Run(context.Background(), sadStory)
	require.NoError(t, err)

	require.Equal(t, map[string]int{"a": 1, "sad": 2, "story": 3, "of": 4, "loss": 5}, ds.Vocabulary)
	require.Equal(t, []int{0}, ds.Train.LabelCodes)
	require.Nil(t, ds.Train.LabelSets)
	require.Equal(t, [][]int{{1, 2, 3, 4, 5}}, ds.Train.Sequences)
	require.InDeltaSlice(t, []float64{0.2, 0.2, 0.2, 0.2, 0.2}, ds.Train.Prevalence[0], 1e-12)
	require.Equal(t, 0, ds.Test.Len())

	require.Equal(t, 1, ds.Meta.Documents)
	require.Equal(t, 5, ds.Meta.SequenceLength)
	require.Equal(t, 5, ds.Meta.VocabularySize)
	require.True(t, ds.Meta.SingleLabel)
	require.NotEmpty(t, ds.Meta.RunID)
	require.Nil(t, ds.Embedding)
}

func TestRunPartialEmbeddings(t *testing.T) {
	table, err := embedding.NewTable(map[string][]float32{
		"sad":   {1, 2, 3},
		"story": {4, 5, 6},
	})
	require.NoError(t, err)

	p := newPipeline(t, Options{
		Genres:             index(t, "Drama", "Comedy"),
		RequireSingleLabel: true,
		MinTokenLength:     3,
		Sizes:              partition.Sizes{Train: 1},
		Embeddings:         embedding.Static(table),
		EmbeddingDim:       3,
	})

	ds, err := p.Run(context.Background(), sadStory)
	require.NoError(t, err)

	m := ds.Embedding
	require.Equal(t, 6, m.Rows)
	require.Equal(t, 3, m.Cols)
	for _, zero := range []int{0, 1, 4, 5} {
		require.Equal(t, []float32{0, 0, 0}, m.Row(zero), "row %d", zero)
	}
	require.Equal(t, []float32{1, 2, 3}, m.Row(2))
	require.Equal(t, []float32{4, 5, 6}, m.Row(3))
	require.Equal(t, 3, ds.Meta.EmbeddingDim)
	require.InDelta(t, 0.4, ds.Meta.EmbeddingCoverage, 1e-12)
}

func TestRunEmbeddingDimensionMismatch(t *testing.T) {
	table, err := embedding.NewTable(map[string][]float32{"sad": {1, 2}})
	require.NoError(t, err)

	p := newPipeline(t, Options{
		Genres:         index(t, "Drama"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 1},
		Embeddings:     embedding.Static(table),
		EmbeddingDim:   50,
	})
	_, err = p.Run(context.Background(), sadStory[:1])
	require.ErrorIs(t, err, perrors.ErrDimensionMismatch)
}

type failingSource struct{}

func (failingSource) Resolve(context.Context, []string) (embedding.Lookup, error) {
	return nil, errors.New("disk on fire")
}

func TestRunEmbeddingSourceError(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:     index(t, "Drama"),
		Sizes:      partition.Sizes{Train: 1},
		Embeddings: failingSource{},
	})
	_, err := p.Run(context.Background(), sadStory[:1])
	require.ErrorContains(t, err, "disk on fire")
}

// corpus builds n records whose text is "w<i> common common"; genre alternates.
func corpus(n int) []model.Record {
	records := make([]model.Record, n)
	for i := range records {
		g := "Drama"
		if i%2 == 1 {
			g = "Comedy"
		}
		records[i] = model.Record{Genres: []string{g}, Text: "word" + string(rune('a'+i%26)) + " common common"}
	}
	return records
}

func TestRunShuffleConsistency(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:             index(t, "Drama", "Comedy"),
		RequireSingleLabel: true,
		MinTokenLength:     1,
		Sizes:              partition.Sizes{Train: 14, Test: 6},
		Seed:               seed(99),
	})
	records := corpus(20)
	ds, err := p.Run(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 14, ds.Train.Len())
	require.Equal(t, 6, ds.Test.Len())

	// every row's label must still agree with the token that identifies it
	tokens := make(map[int]string, len(ds.Vocabulary))
	for tok, i := range ds.Vocabulary {
		tokens[i] = tok
	}
	for _, split := range []model.Split{ds.Train, ds.Test} {
		for i := range split.Len() {
			word := tokens[split.Sequences[i][0]]
			n := int(word[len("word")] - 'a')
			want := n % 2
			require.Equal(t, want, split.LabelCodes[i], "row %q", word)
			require.InDelta(t, 1.0/3, split.Prevalence[i][ds.Vocabulary[word]-1], 1e-12)
		}
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	opts := Options{
		Genres:         index(t, "Drama", "Comedy"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 10, Test: 5},
		Seed:           seed(5),
	}
	a, err := newPipeline(t, opts).Run(context.Background(), corpus(20))
	require.NoError(t, err)
	b, err := newPipeline(t, opts).Run(context.Background(), corpus(20))
	require.NoError(t, err)

	require.Equal(t, a.Train, b.Train)
	require.Equal(t, a.Test, b.Test)
	require.Equal(t, a.Vocabulary, b.Vocabulary)
	require.NotEqual(t, a.Meta.RunID, b.Meta.RunID)
}

func TestRunMultiLabel(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:         index(t, "Drama", "Comedy"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 2},
		Seed:           seed(0),
	})
	ds, err := p.Run(context.Background(), sadStory)
	require.NoError(t, err)
	require.Nil(t, ds.Train.LabelCodes)
	require.ElementsMatch(t, [][]int{{0}, {1, 0}}, ds.Train.LabelSets)
	require.False(t, ds.Meta.SingleLabel)
}

func TestRunTruncatesToSampleBudget(t *testing.T) {
	records := []model.Record{
		{Genres: []string{"Drama"}, Text: "alpha beta"},
		{Genres: []string{"Drama"}, Text: "gamma delta"},
		{Genres: []string{"Drama"}, Text: "epsilon zeta"},
	}
	p := newPipeline(t, Options{
		Genres:         index(t, "Drama"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 1, Test: 1},
	})
	ds, err := p.Run(context.Background(), records)
	require.NoError(t, err)
	// the third document is cut before the vocabulary is built
	require.Equal(t, map[string]int{"alpha": 1, "beta": 2, "gamma": 3, "delta": 4}, ds.Vocabulary)
	require.Equal(t, 2, ds.Meta.Documents)
}

func TestRunStandardize(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:         index(t, "Drama", "Comedy"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 16, Test: 4},
		Standardize:    true,
		Seed:           seed(2),
	})
	ds, err := p.Run(context.Background(), corpus(20))
	require.NoError(t, err)
	require.True(t, ds.Meta.Standardized)

	// the scaler is fit on all rows, so each column sums to zero across both splits
	common := ds.Vocabulary["common"] - 1
	sums := make([]float64, ds.Meta.VocabularySize)
	for _, split := range []model.Split{ds.Train, ds.Test} {
		for _, row := range split.Prevalence {
			for j, x := range row {
				sums[j] += x
			}
			require.InDelta(t, 0, row[common], 1e-12, "constant column keeps scale 1 and centres to zero")
		}
	}
	for _, s := range sums {
		require.InDelta(t, 0, s, 1e-9)
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:         index(t, "Western"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 1},
	})
	_, err := p.Run(context.Background(), sadStory)
	require.ErrorIs(t, err, perrors.ErrEmptyCorpus)

	p = newPipeline(t, Options{
		Genres:         index(t, "Drama"),
		MinTokenLength: 100,
		Sizes:          partition.Sizes{Train: 1},
	})
	_, err = p.Run(context.Background(), sadStory)
	require.ErrorIs(t, err, perrors.ErrEmptyCorpus)
}

func TestRunSplitTooLarge(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:         index(t, "Drama", "Comedy"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 2, Test: 1},
	})
	_, err := p.Run(context.Background(), sadStory)
	require.ErrorIs(t, err, perrors.ErrSplitTooLarge)
}

func TestRunEmptyVocabulary(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:         index(t, "Drama"),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 1},
		Window:         vocab.Window{DropTop: 100},
	})
	_, err := p.Run(context.Background(), sadStory[:1])
	require.ErrorIs(t, err, perrors.ErrEmptyVocabulary)
}

func TestRunCancelled(t *testing.T) {
	p := newPipeline(t, Options{Genres: index(t, "Drama"), Sizes: partition.Sizes{Train: 1}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, sadStory)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{}, nil)
	require.ErrorIs(t, err, perrors.ErrInvalidConfig)

	_, err = New(Options{Genres: index(t, "Drama"), Sizes: partition.Sizes{Train: -1}}, nil)
	require.ErrorIs(t, err, perrors.ErrInvalidConfig)
}

func TestRunLinguisticTokenizer(t *testing.T) {
	p := newPipeline(t, Options{
		Genres:         index(t, "Drama"),
		Tokenizer:      text.NewLinguistic(),
		MinTokenLength: 1,
		Sizes:          partition.Sizes{Train: 1},
	})
	ds, err := p.Run(context.Background(), sadStory[:1])
	require.NoError(t, err)
	require.Contains(t, ds.Vocabulary, "A")
	require.Contains(t, ds.Vocabulary, "loss")
	// the full stop is a token and counts toward the prevalence denominator
	require.Contains(t, ds.Vocabulary, ".")
	require.Equal(t, 6, ds.Meta.SequenceLength)
	require.InDelta(t, 1.0/6, ds.Train.Prevalence[0][ds.Vocabulary["."]-1], 1e-12)
}

func TestNewRejectsEmptySplit(t *testing.T) {
	_, err := New(Options{Genres: index(t, "Drama")}, nil)
	require.ErrorIs(t, err, perrors.ErrInvalidConfig)
}
