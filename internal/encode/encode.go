// Package encode turns cleaned documents into the two numeric
// representations consumed downstream: padded index sequences and
// per-document prevalence vectors.
package encode

// Indexer resolves a token to its vocabulary index (0 when unknown) and
// reports the vocabulary size.
type Indexer interface {
	Lookup(token string) int
	Size() int
}

// Prevalence returns the length-V bag-of-words vector of a document divided by
// the document's total token count, so unknown tokens dilute known ones.
func Prevalence(tokens []string, v Indexer) []float64 {
	vec := make([]float64, v.Size())
	if len(tokens) == 0 {
		return vec
	}
	for _, tok := range tokens {
		if i := v.Lookup(tok); i > 0 {
			vec[i-1]++
		}
	}
	n := float64(len(tokens))
	for i := range vec {
		vec[i] /= n
	}
	return vec
}

// PrevalenceMatrix encodes every document.
func PrevalenceMatrix(docs [][]string, v Indexer) [][]float64 {
	out := make([][]float64, len(docs))
	for i, d := range docs {
		out[i] = Prevalence(d, v)
	}
	return out
}

// Indices maps each token to its vocabulary index.
func Indices(tokens []string, v Indexer) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		out[i] = v.Lookup(tok)
	}
	return out
}

// Sequences maps every document to indices and right-pads with 0 to the
// longest document in the batch. It also returns that length.
func Sequences(docs [][]string, v Indexer) ([][]int, int) {
	maxLen := 0
	for _, d := range docs {
		if len(d) > maxLen {
			maxLen = len(d)
		}
	}
	out := make([][]int, len(docs))
	for i, d := range docs {
		row := make([]int, maxLen)
		copy(row, Indices(d, v))
		out[i] = row
	}
	return out, maxLen
}
