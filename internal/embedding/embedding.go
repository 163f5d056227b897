// Package embedding aligns pretrained word vectors to a vocabulary's index
// space.
package embedding

import (
	"fmt"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/model"
)

// Lookup is a word→vector source with a fixed dimensionality.
type Lookup interface {
	Vector(token string) ([]float32, bool)
	Dim() int
}

// Vocabulary is the part of vocab.Vocabulary the aligner needs.
type Vocabulary interface {
	Size() int
	Token(i int) (string, bool)
}

// Alignment is an embedding matrix plus how much of the vocabulary it covers.
type Alignment struct {
	Matrix *model.Matrix
	Found  int
}

// Coverage returns the share of vocabulary rows that received a vector.
func (a Alignment) Coverage() float64 {
	if a.Matrix == nil || a.Matrix.Rows <= 1 {
		return 0
	}
	return float64(a.Found) / float64(a.Matrix.Rows-1)
}

// Align builds a (V+1)×D matrix whose row i holds the vector of the token with
// index i. Row 0 and rows of tokens missing from the lookup stay zero.
// dim == 0 takes the lookup's dimension.
func Align(v Vocabulary, lookup Lookup, dim int) (Alignment, error) {
	if dim == 0 {
		dim = lookup.Dim()
	}
	if dim <= 0 {
		return Alignment{}, fmt.Errorf("embedding: %w: dimension %d", perrors.ErrDimensionMismatch, dim)
	}
	if lookup.Dim() != dim {
		return Alignment{}, fmt.Errorf("embedding: %w: lookup has %d, configured %d",
			perrors.ErrDimensionMismatch, lookup.Dim(), dim)
	}

	m := model.NewMatrix(v.Size()+1, dim)
	found := 0
	for i := 1; i <= v.Size(); i++ {
		tok, _ := v.Token(i)
		vec, ok := lookup.Vector(tok)
		if !ok {
			continue
		}
		if len(vec) != dim {
			return Alignment{}, fmt.Errorf("embedding: %w: %q has %d values, want %d",
				perrors.ErrDimensionMismatch, tok, len(vec), dim)
		}
		copy(m.Row(i), vec)
		found++
	}
	return Alignment{Matrix: m, Found: found}, nil
}
