package encode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// mapIndexer is a fixed vocabulary for tests.
type mapIndexer map[string]int

func (m mapIndexer) Lookup(tok string) int { return m[tok] }
func (m mapIndexer) Size() int             { return len(m) }

var sadStory = mapIndexer{"a": 1, "sad": 2, "story": 3, "of": 4, "loss": 5}

func TestPrevalenceScenario(t *testing.T) {
	got := Prevalence([]string{"a", "sad", "story", "of", "loss"}, sadStory)

	require.Len(t, got, 5)
	for i, x := range got {
		require.InDelta(t, 0.2, x, 1e-12, "slot %d", i)
	}
}

func TestPrevalenceUnknownTokensDilute(t *testing.T) {
	doc := []string{"a", "a", "happy", "ending"}

	got := Prevalence(doc, sadStory)

	require.InDelta(t, 0.5, got[0], 1e-12)
	for _, x := range got[1:] {
		require.Zero(t, x)
	}
}

func TestPrevalenceMassEqualsInVocabularyShare(t *testing.T) {
	docs := [][]string{
		{"a", "sad", "sad", "x"},
		{"y", "z"},
		{"loss", "of", "a", "story", "a", "q", "r"},
	}
	for i, row := range PrevalenceMatrix(docs, sadStory) {
		known := 0
		for _, tok := range docs[i] {
			if sadStory.Lookup(tok) > 0 {
				known++
			}
		}
		sum := 0.0
		for _, x := range row {
			sum += x
		}
		require.InDelta(t, float64(known)/float64(len(docs[i])), sum, 1e-12)
		require.GreaterOrEqual(t, sum, 0.0)
		require.LessOrEqual(t, sum, 1.0)
	}
}

func TestSequencesPadToBatchMax(t *testing.T) {
	docs := [][]string{
		{"a", "sad", "story", "of", "loss"},
		{"loss", "unknown"},
		{"of"},
	}

	got, maxLen := Sequences(docs, sadStory)

	require.Equal(t, 5, maxLen)
	require.Equal(t, [][]int{
		{1, 2, 3, 4, 5},
		{5, 0, 0, 0, 0},
		{4, 0, 0, 0, 0},
	}, got)
	for i, row := range got {
		require.Len(t, row, maxLen)
		for _, x := range row[len(docs[i]):] {
			require.Zero(t, x)
		}
	}
}

func TestSequencesEmptyBatch(t *testing.T) {
	got, maxLen := Sequences(nil, sadStory)
	require.Empty(t, got)
	require.Zero(t, maxLen)
}

func TestScaler(t *testing.T) {
	rows := [][]float64{
		{1, 5, 0},
		{3, 5, 2},
	}

	s := FitScaler(rows)
	got := s.Transform(rows)

	require.Equal(t, []float64{2, 5, 1}, s.Mean)
	require.Equal(t, []float64{1, 1, 1}, s.Scale)
	require.Equal(t, [][]float64{{-1, 0, -1}, {1, 0, 1}}, got)
	// Input untouched.
	require.Equal(t, []float64{1, 5, 0}, rows[0])
}

func TestScalerRepeatedValueColumnMapsToZero(t *testing.T) {
	// 0.1 is not exact in binary, so the fitted mean drifts off the value.
	rows := [][]float64{{0.1, 0.2}, {0.1, 0.4}, {0.1, 0.6}}

	s := FitScaler(rows)
	got := s.Transform(rows)

	require.Equal(t, 1.0, s.Scale[0])
	for i, r := range got {
		require.InDelta(t, 0, r[0], 1e-12, "row %d", i)
	}
	require.InDeltaSlice(t, []float64{-1.224744871391589, 0, 1.224744871391589},
		[]float64{got[0][1], got[1][1], got[2][1]}, 1e-12)
}

func TestScalerColumnsHaveUnitVariance(t *testing.T) {
	rows := [][]float64{{0.1, 0.7}, {0.4, 0.2}, {0.9, 0.3}, {0.0, 0.0}}

	got := FitScaler(rows).Transform(rows)

	for j := 0; j < 2; j++ {
		var mean, sq float64
		for _, r := range got {
			mean += r[j]
		}
		mean /= float64(len(got))
		for _, r := range got {
			sq += (r[j] - mean) * (r[j] - mean)
		}
		require.InDelta(t, 0, mean, 1e-12)
		require.InDelta(t, 1, math.Sqrt(sq/float64(len(got))), 1e-12)
	}
}
