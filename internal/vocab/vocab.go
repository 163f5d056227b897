// Package vocab builds the bounded token→index mapping shared by every
// encoder. Index 0 is reserved for out-of-vocabulary tokens and padding.
package vocab

import (
	"fmt"
	"sort"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
)

// Count is a token with its corpus frequency.
type Count struct {
	Token string
	Freq  int
}

// CountTokens counts tokens across all sequences and returns them sorted by
// descending frequency. Ties keep first-encountered order.
func CountTokens(seqs [][]string) []Count {
	// Ordered map: the slice preserves first-seen order, the map finds slots.
	var counts []Count
	slot := make(map[string]int)
	for _, seq := range seqs {
		for _, tok := range seq {
			i, ok := slot[tok]
			if !ok {
				i = len(counts)
				slot[tok] = i
				counts = append(counts, Count{Token: tok})
			}
			counts[i].Freq++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Freq > counts[j].Freq
	})
	return counts
}

// Window selects ranks [DropTop, KeepTop) of the frequency-ranked list.
// KeepTop == 0 means no upper bound. Out-of-range bounds are clamped.
type Window struct {
	DropTop int
	KeepTop int
}

func (w Window) apply(n int) (lo, hi int) {
	lo, hi = w.DropTop, n
	if w.KeepTop > 0 && w.KeepTop < hi {
		hi = w.KeepTop
	}
	if lo > n {
		lo = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Vocabulary is an immutable token→index mapping with indices 1..Size().
type Vocabulary struct {
	index  map[string]int
	tokens []string // tokens[i-1] has index i
}

// Build ranks the tokens of all sequences and keeps the configured window.
func Build(seqs [][]string, w Window) (*Vocabulary, error) {
	if w.DropTop < 0 || w.KeepTop < 0 {
		return nil, fmt.Errorf("vocab: %w: negative window %+v", perrors.ErrInvalidConfig, w)
	}
	counts := CountTokens(seqs)
	lo, hi := w.apply(len(counts))
	if lo == hi {
		return nil, fmt.Errorf("vocab: %w: %d distinct tokens, window %+v",
			perrors.ErrEmptyVocabulary, len(counts), w)
	}

	kept := counts[lo:hi]
	v := &Vocabulary{
		index:  make(map[string]int, len(kept)),
		tokens: make([]string, len(kept)),
	}
	for i, c := range kept {
		v.index[c.Token] = i + 1
		v.tokens[i] = c.Token
	}
	return v, nil
}

// Lookup returns the index of a token, or 0 when it is out of vocabulary.
func (v *Vocabulary) Lookup(token string) int {
	return v.index[token]
}

// Contains reports whether the token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.index[token]
	return ok
}

// Size returns V, the largest index.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Token returns the token with index i (1-based).
func (v *Vocabulary) Token(i int) (string, bool) {
	if i < 1 || i > len(v.tokens) {
		return "", false
	}
	return v.tokens[i-1], true
}

// Tokens returns the tokens in index order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Map returns a copy of the mapping.
func (v *Vocabulary) Map() map[string]int {
	out := make(map[string]int, len(v.index))
	for k, i := range v.index {
		out[k] = i
	}
	return out
}
