package onnx

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxWordRunes bounds greedy WordPiece matching; longer words become [UNK].
const maxWordRunes = 100

// encodeWord turns one vocabulary word into BERT input IDs:
// [CLS] pieces... [SEP]. The word is lower-cased, accent-stripped and split on
// punctuation before WordPiece matching.
func (v *wordpieceVocab) encodeWord(word string) []int64 {
	ids := []int64{v.clsID}
	for _, part := range splitPunct(stripAccents(strings.ToLower(word))) {
		ids = append(ids, v.wordpiece(part)...)
	}
	return append(ids, v.sepID)
}

// wordpiece greedily matches the longest known prefix, continuing pieces
// with the "##" marker.
func (v *wordpieceVocab) wordpiece(word string) []int64 {
	runes := []rune(word)
	if len(runes) > maxWordRunes {
		return []int64{v.unkID}
	}
	var out []int64
	for start := 0; start < len(runes); {
		end := len(runes)
		var id int64
		found := false
		for ; end > start; end-- {
			piece := string(runes[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if id, found = v.id(piece); found {
				break
			}
		}
		if !found {
			return []int64{v.unkID}
		}
		out = append(out, id)
		start = end
	}
	return out
}

func stripAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, norm.NFD.String(s))
}

// splitPunct splits on whitespace and keeps each punctuation rune as its own
// part.
func splitPunct(s string) []string {
	var parts []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			parts = append(parts, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return parts
}

// batch packs encoded words into flat row-major tensors padded to the longest
// sequence. Padding uses ID 0 with mask 0.
type batch struct {
	inputIDs      []int64
	attentionMask []int64
	tokenTypeIDs  []int64
	size          int64
	seqLen        int64
}

func packBatch(seqs [][]int64) batch {
	var seqLen int
	for _, s := range seqs {
		seqLen = max(seqLen, len(s))
	}
	total := len(seqs) * seqLen
	b := batch{
		inputIDs:      make([]int64, total),
		attentionMask: make([]int64, total),
		tokenTypeIDs:  make([]int64, total),
		size:          int64(len(seqs)),
		seqLen:        int64(seqLen),
	}
	for i, s := range seqs {
		off := i * seqLen
		copy(b.inputIDs[off:], s)
		for j := range s {
			b.attentionMask[off+j] = 1
		}
	}
	return b
}
