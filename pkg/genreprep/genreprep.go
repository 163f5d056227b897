package genreprep

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/embedding"
	"github.com/crimson-sun/genreprep/internal/embedding/onnx"
	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/genre"
	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/partition"
	"github.com/crimson-sun/genreprep/internal/pipeline"
	"github.com/crimson-sun/genreprep/internal/text"
	"github.com/crimson-sun/genreprep/internal/vocab"

	// Register the built-in corpus formats.
	_ "github.com/crimson-sun/genreprep/internal/corpus/books"
	_ "github.com/crimson-sun/genreprep/internal/corpus/movies"
)

type (
	// Record is one raw summary with its genres.
	Record = model.Record
	// Dataset is the prepared output: train/test splits, vocabulary and
	// optional embedding matrix.
	Dataset = model.Dataset
	// Split holds the per-row arrays of one partition.
	Split = model.Split
	// Matrix is a dense row-major float32 matrix.
	Matrix = model.Matrix
	// Meta describes a prepared dataset.
	Meta = model.Meta
)

// Errors callers can match with errors.Is.
var (
	ErrEmptyCorpus       = perrors.ErrEmptyCorpus
	ErrEmptyVocabulary   = perrors.ErrEmptyVocabulary
	ErrSplitTooLarge     = perrors.ErrSplitTooLarge
	ErrDimensionMismatch = perrors.ErrDimensionMismatch
	ErrUnknownStrategy   = perrors.ErrUnknownStrategy
	ErrUnknownSource     = perrors.ErrUnknownSource
	ErrInvalidConfig     = perrors.ErrInvalidConfig
)

// Preparer turns records into datasets.
type Preparer struct {
	opts  options
	tok   text.Tokenizer
	emb   embedding.Source
	model *onnx.Model
	log   *slog.Logger
}

// New creates a Preparer. With WithEmbeddingModel the ONNX model is loaded
// here, which is expensive; create once and reuse.
func New(opts ...Option) (*Preparer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = slog.Default()
	}

	tok, err := text.New(text.Strategy(o.tokenizer))
	if err != nil {
		return nil, fmt.Errorf("genreprep: %w", err)
	}
	p := &Preparer{opts: o, tok: tok, log: log}

	switch {
	case o.embeddingFile != "" && o.modelPath != "":
		return nil, fmt.Errorf("genreprep: %w: embedding file and model are exclusive", ErrInvalidConfig)
	case o.embeddingFile != "":
		p.emb = embedding.FileSource{Path: o.embeddingFile}
	case o.modelPath != "":
		m, err := onnx.Open(onnx.Config{
			ModelPath:   o.modelPath,
			VocabPath:   o.modelVocabPath,
			LibraryPath: o.runtimePath,
			Threads:     o.workers,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("genreprep: %w", err)
		}
		p.model = m
		p.emb = m
	}
	return p, nil
}

// Prepare runs the pipeline over in-memory records. WithGenres is required.
func (p *Preparer) Prepare(ctx context.Context, records []Record) (*Dataset, error) {
	return p.run(ctx, p.opts.genres, records)
}

// PrepareSource loads a registered corpus ("books", "movies") from paths and
// prepares it. Without WithGenres the source's built-in genres are used.
func (p *Preparer) PrepareSource(ctx context.Context, source string, paths ...string) (*Dataset, error) {
	src, err := corpus.Open(source, paths...)
	if err != nil {
		return nil, fmt.Errorf("genreprep: %w", err)
	}
	if p.opts.language != "" {
		src = corpus.LanguageFilter{Source: src, Lang: p.opts.language, Log: p.log}
	}
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("genreprep: %w", err)
	}
	labels := p.opts.genres
	if len(labels) == 0 {
		labels = genre.Defaults(source)
	}
	return p.run(ctx, labels, records)
}

func (p *Preparer) run(ctx context.Context, labels []string, records []Record) (*Dataset, error) {
	index, err := genre.NewIndex(labels)
	if err != nil {
		return nil, fmt.Errorf("genreprep: %w", err)
	}
	pipe, err := pipeline.New(pipeline.Options{
		Genres:             index,
		RequireSingleLabel: p.opts.singleLabel,
		Tokenizer:          p.tok,
		MinTokenLength:     p.opts.minTokens,
		MaxTokenLength:     p.opts.maxTokens,
		Workers:            p.opts.workers,
		Window:             vocab.Window{DropTop: p.opts.dropTop, KeepTop: p.opts.keepTop},
		Standardize:        p.opts.standardize,
		Sizes:              partition.Sizes{Train: p.opts.train, Test: p.opts.test},
		Seed:               p.opts.seed,
		Embeddings:         p.emb,
		EmbeddingDim:       p.opts.embeddingDim,
	}, p.log)
	if err != nil {
		return nil, fmt.Errorf("genreprep: %w", err)
	}
	return pipe.Run(ctx, records)
}

// Close releases the embedding model, if one was loaded.
func (p *Preparer) Close() error {
	if p.model == nil {
		return nil
	}
	return p.model.Close()
}
