// Package pipeline wires the preparation stages into one batch run: genre
// selection, cleaning, vocabulary, encoding, embedding alignment and the
// train/test partition.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/embedding"
	"github.com/crimson-sun/genreprep/internal/encode"
	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/genre"
	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/partition"
	"github.com/crimson-sun/genreprep/internal/text"
	"github.com/crimson-sun/genreprep/internal/vocab"
)

// Options is the full policy of a run.
type Options struct {
	Genres             *genre.Index
	RequireSingleLabel bool

	Tokenizer      text.Tokenizer
	MinTokenLength int
	MaxTokenLength int
	Workers        int

	Window      vocab.Window
	Standardize bool

	Sizes partition.Sizes
	Seed  *uint64

	// Embeddings is optional. EmbeddingDim 0 takes the dimension from the
	// resolved lookup.
	Embeddings   embedding.Source
	EmbeddingDim int
}

// Pipeline runs Options over a batch of records.
type Pipeline struct {
	opts     Options
	selector *genre.Selector
	cleaner  *text.Cleaner
	log      *slog.Logger
	now      func() time.Time
}

// New checks opts and builds a Pipeline. A nil logger uses slog.Default().
func New(opts Options, log *slog.Logger) (*Pipeline, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.Genres == nil || opts.Genres.Len() == 0 {
		return nil, fmt.Errorf("pipeline: %w: no genre labels", perrors.ErrInvalidConfig)
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = text.ManualTokenizer{}
	}
	if err := opts.Sizes.Check(opts.Sizes.Train + opts.Sizes.Test); err != nil {
		return nil, err
	}
	if opts.Sizes.Train+opts.Sizes.Test == 0 {
		return nil, fmt.Errorf("pipeline: %w: train and test sizes are both zero", perrors.ErrInvalidConfig)
	}
	return &Pipeline{
		opts:     opts,
		selector: genre.NewSelector(opts.Genres, opts.RequireSingleLabel),
		cleaner:  text.NewCleaner(opts.Tokenizer, opts.MinTokenLength, opts.MaxTokenLength, opts.Workers, log),
		log:      log,
		now:      time.Now,
	}, nil
}

// Build reads every record from src, then runs the pipeline over them.
func (p *Pipeline) Build(ctx context.Context, src corpus.Source) (*model.Dataset, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load corpus: %w", err)
	}
	return p.Run(ctx, records)
}

// Run turns records into a Dataset. The context is checked between stages.
func (p *Pipeline) Run(ctx context.Context, records []model.Record) (*model.Dataset, error) {
	start := p.now()

	docs, err := p.Documents(ctx, records)
	if err != nil {
		return nil, err
	}

	need := p.opts.Sizes.Train + p.opts.Sizes.Test
	if err := p.opts.Sizes.Check(len(docs)); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	docs = docs[:need]
	tokens := lo.Map(docs, func(d model.Document, _ int) []string { return d.Tokens })

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := vocab.Build(tokens, p.opts.Window)
	if err != nil {
		return nil, fmt.Errorf("pipeline: vocabulary: %w", err)
	}
	p.log.Info("vocabulary built", "size", v.Size(), "drop_top", p.opts.Window.DropTop, "keep_top", p.opts.Window.KeepTop)

	all, seqLen := p.encode(docs, tokens, v)

	ds := &model.Dataset{
		Meta: model.Meta{
			RunID:          uuid.NewString(),
			CreatedAt:      start.UTC(),
			Documents:      len(docs),
			SequenceLength: seqLen,
			VocabularySize: v.Size(),
			Standardized:   p.opts.Standardize,
			SingleLabel:    p.opts.RequireSingleLabel,
			Seed:           p.opts.Seed,
		},
		Vocabulary: v.Map(),
	}

	if p.opts.Embeddings != nil {
		if err := p.align(ctx, v, ds); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds.Train, ds.Test, err = partition.Split(all, p.opts.Sizes, p.opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	p.log.Info("dataset ready",
		"run_id", ds.Meta.RunID,
		"train", ds.Train.Len(),
		"test", ds.Test.Len(),
		"sequence_length", seqLen,
		"duration", p.now().Sub(start))
	return ds, nil
}

// Documents runs selection and cleaning. It fails with ErrEmptyCorpus when
// nothing survives either stage.
func (p *Pipeline) Documents(ctx context.Context, records []model.Record) ([]model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selected := p.selector.Select(records)
	p.log.Info("selected records", "in", len(records), "kept", len(selected), "single_label", p.opts.RequireSingleLabel)
	if len(selected) == 0 {
		return nil, fmt.Errorf("pipeline: selection: %w", perrors.ErrEmptyCorpus)
	}

	docs, err := p.cleaner.Clean(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("pipeline: clean: %w", err)
	}
	p.log.Info("cleaned documents", "in", len(selected), "kept", len(docs), "min_tokens", p.opts.MinTokenLength)
	if len(docs) == 0 {
		return nil, fmt.Errorf("pipeline: clean: %w", perrors.ErrEmptyCorpus)
	}
	return docs, nil
}

func (p *Pipeline) encode(docs []model.Document, tokens [][]string, v *vocab.Vocabulary) (model.Split, int) {
	seqs, seqLen := encode.Sequences(tokens, v)
	prevalence := encode.PrevalenceMatrix(tokens, v)
	if p.opts.Standardize {
		// Fit on every row before the split, train and test alike.
		prevalence = encode.FitScaler(prevalence).Transform(prevalence)
	}

	all := model.Split{Sequences: seqs, Prevalence: prevalence}
	if p.opts.RequireSingleLabel {
		all.LabelCodes = lo.Map(docs, func(d model.Document, _ int) int {
			code, _ := p.opts.Genres.Code(d.Labels[0])
			return code
		})
	} else {
		all.LabelSets = lo.Map(docs, func(d model.Document, _ int) []int {
			return p.opts.Genres.Codes(d.Labels)
		})
	}
	return all, seqLen
}

func (p *Pipeline) align(ctx context.Context, v *vocab.Vocabulary, ds *model.Dataset) error {
	lookup, err := p.opts.Embeddings.Resolve(ctx, v.Tokens())
	if err != nil {
		return fmt.Errorf("pipeline: embeddings: %w", err)
	}
	a, err := embedding.Align(v, lookup, p.opts.EmbeddingDim)
	if err != nil {
		return fmt.Errorf("pipeline: embeddings: %w", err)
	}
	ds.Embedding = a.Matrix
	ds.Meta.EmbeddingDim = a.Matrix.Cols
	ds.Meta.EmbeddingCoverage = a.Coverage()
	p.log.Info("embeddings aligned", "dim", a.Matrix.Cols, "found", a.Found, "vocabulary", v.Size(), "coverage", a.Coverage())
	return nil
}
