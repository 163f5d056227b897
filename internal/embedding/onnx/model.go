// Package onnx embeds vocabulary words with a local BERT-style ONNX encoder,
// producing a table the embedding aligner can consume.
package onnx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/genreprep/internal/embedding"
)

const defaultBatchSize = 64

// Config locates the model files.
type Config struct {
	ModelPath   string
	VocabPath   string
	LibraryPath string
	BatchSize   int
	Threads     int
}

// Model embeds single words by mean pooling the encoder's hidden states.
type Model struct {
	sess  *session
	vocab *wordpieceVocab
	batch int
	log   *slog.Logger
}

// Open loads the WordPiece vocabulary and the ONNX session.
func Open(cfg Config, log *slog.Logger) (*Model, error) {
	if log == nil {
		log = slog.Default()
	}
	v, err := loadVocabFile(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: %w", err)
	}
	s, err := openSession(cfg.ModelPath, cfg.LibraryPath, cfg.Threads)
	if err != nil {
		return nil, err
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Model{sess: s, vocab: v, batch: batch, log: log}, nil
}

// Dim is the encoder's hidden size.
func (m *Model) Dim() int {
	return int(m.sess.dim)
}

// EmbedWords returns one vector per word, in order.
func (m *Model) EmbedWords(ctx context.Context, words []string) ([][]float32, error) {
	out := make([][]float32, 0, len(words))
	for start := 0; start < len(words); start += m.batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+m.batch, len(words))
		seqs := make([][]int64, 0, end-start)
		for _, w := range words[start:end] {
			seqs = append(seqs, m.vocab.encodeWord(w))
		}
		b := packBatch(seqs)
		hidden, err := m.sess.run(b)
		if err != nil {
			return nil, err
		}
		out = append(out, meanPool(hidden, b.attentionMask, b.size, b.seqLen, m.sess.dim)...)
	}
	return out, nil
}

// Resolve embeds every token and returns the result as a lookup table. It
// satisfies embedding.Source.
func (m *Model) Resolve(ctx context.Context, tokens []string) (embedding.Lookup, error) {
	vecs, err := m.EmbedWords(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("onnx: embed vocabulary: %w", err)
	}
	table := make(map[string][]float32, len(tokens))
	for i, tok := range tokens {
		table[tok] = vecs[i]
	}
	t, err := embedding.NewTable(table)
	if err != nil {
		return nil, fmt.Errorf("onnx: %w", err)
	}
	m.log.Debug("embedded vocabulary", "tokens", len(tokens), "dim", m.sess.dim)
	return t, nil
}

// Close releases the ONNX session.
func (m *Model) Close() error {
	if m.sess != nil {
		return m.sess.close()
	}
	return nil
}
