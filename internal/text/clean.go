package text

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/genreprep/internal/model"
)

// Cleaner tokenizes a batch of records and applies the length policy.
type Cleaner struct {
	tok     Tokenizer
	minLen  int
	maxLen  int
	workers int
	log     *slog.Logger
}

// NewCleaner creates a Cleaner. maxLen <= 0 disables truncation; workers <= 1
// tokenizes sequentially.
func NewCleaner(tok Tokenizer, minLen, maxLen, workers int, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	return &Cleaner{tok: tok, minLen: minLen, maxLen: maxLen, workers: workers, log: log}
}

// Tokenize returns the tokens of one text truncated to the maximum length.
func (c *Cleaner) Tokenize(text string) []string {
	tokens := c.tok.Tokenize(text)
	if c.maxLen > 0 && len(tokens) > c.maxLen {
		tokens = tokens[:c.maxLen]
	}
	return tokens
}

// Clean tokenizes every record, then drops documents shorter than the minimum
// length together with their labels. The filter only runs once all records
// are tokenized.
func (c *Cleaner) Clean(ctx context.Context, records []model.Record) ([]model.Document, error) {
	tokens, err := c.tokenizeAll(ctx, records)
	if err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(records))
	for i, r := range records {
		if len(tokens[i]) < c.minLen {
			continue
		}
		docs = append(docs, model.Document{Labels: r.Genres, Tokens: tokens[i]})
	}
	c.log.Debug("cleaned documents", "in", len(records), "kept", len(docs), "min_len", c.minLen)
	return docs, nil
}

func (c *Cleaner) tokenizeAll(ctx context.Context, records []model.Record) ([][]string, error) {
	out := make([][]string, len(records))
	if c.workers <= 1 {
		for i, r := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = c.Tokenize(r.Text)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = c.Tokenize(records[i].Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
