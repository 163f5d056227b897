package onnx

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// wordpieceVocab is a WordPiece vocabulary where a token's ID is its
// 0-based line number in vocab.txt.
type wordpieceVocab struct {
	ids map[string]int64

	unkID int64
	clsID int64
	sepID int64
}

func loadVocabFile(path string) (*wordpieceVocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer f.Close()
	return readVocab(f)
}

func readVocab(r io.Reader) (*wordpieceVocab, error) {
	ids := make(map[string]int64, 32000)
	sc := bufio.NewScanner(r)
	var n int64
	for sc.Scan() {
		ids[sc.Text()] = n
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("vocab: read error: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("vocab: empty vocabulary")
	}

	v := &wordpieceVocab{ids: ids}
	for _, s := range []struct {
		name string
		dest *int64
	}{
		{"[UNK]", &v.unkID},
		{"[CLS]", &v.clsID},
		{"[SEP]", &v.sepID},
	} {
		id, ok := ids[s.name]
		if !ok {
			return nil, fmt.Errorf("vocab: missing special token %s", s.name)
		}
		*s.dest = id
	}
	return v, nil
}

func (v *wordpieceVocab) id(piece string) (int64, bool) {
	id, ok := v.ids[piece]
	return id, ok
}
