package genreprep

import (
	"log/slog"
	"path/filepath"
)

type options struct {
	genres      []string
	singleLabel bool

	tokenizer string
	minTokens int
	maxTokens int
	workers   int

	dropTop     int
	keepTop     int
	standardize bool

	train int
	test  int
	seed  *uint64

	language string

	embeddingFile  string
	modelPath      string
	modelVocabPath string
	runtimePath    string
	embeddingDim   int

	logger *slog.Logger
}

// Option configures a Preparer.
type Option func(*options)

// WithGenres sets the target genre labels. Label codes follow argument order.
// Default: the built-in list of the source passed to PrepareSource.
func WithGenres(labels ...string) Option {
	return func(o *options) {
		o.genres = labels
	}
}

// WithSingleLabel keeps only documents left with exactly one target genre.
func WithSingleLabel(single bool) Option {
	return func(o *options) {
		o.singleLabel = single
	}
}

// WithTokenizer selects "manual" (letters only, lower-cased) or "linguistic"
// (Unicode word segmentation). Default: "manual".
func WithTokenizer(strategy string) Option {
	return func(o *options) {
		o.tokenizer = strategy
	}
}

// WithTokenLength drops documents shorter than min tokens and truncates
// longer ones to max. max 0 disables truncation.
func WithTokenLength(min, max int) Option {
	return func(o *options) {
		o.minTokens = min
		o.maxTokens = max
	}
}

// WithWorkers tokenizes with n goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithVocabularyWindow keeps frequency ranks [dropTop, keepTop). keepTop 0
// means no upper bound.
func WithVocabularyWindow(dropTop, keepTop int) Option {
	return func(o *options) {
		o.dropTop = dropTop
		o.keepTop = keepTop
	}
}

// WithStandardize rescales each prevalence column to zero mean and unit
// variance, fitted over all rows before the split.
func WithStandardize(on bool) Option {
	return func(o *options) {
		o.standardize = on
	}
}

// WithSplit sets the train and test row counts.
func WithSplit(train, test int) Option {
	return func(o *options) {
		o.train = train
		o.test = test
	}
}

// WithSeed fixes the shuffle so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithLanguage drops source records not detected as the given ISO 639-1
// language. Applies to PrepareSource only.
func WithLanguage(code string) Option {
	return func(o *options) {
		o.language = code
	}
}

// WithEmbeddingFile aligns vectors from a GloVe-style text file.
func WithEmbeddingFile(path string) Option {
	return func(o *options) {
		o.embeddingFile = path
	}
}

// WithEmbeddingModel embeds the vocabulary with a BERT-style ONNX model.
// Expects model_quantized.onnx, vocab.txt and libonnxruntime.so in dir.
func WithEmbeddingModel(dir string) Option {
	return func(o *options) {
		o.modelPath = filepath.Join(dir, "model_quantized.onnx")
		o.modelVocabPath = filepath.Join(dir, "vocab.txt")
	}
}

// WithEmbeddingModelPaths sets explicit model, vocabulary and runtime library
// paths. An empty runtime path looks next to the model.
func WithEmbeddingModelPaths(model, vocab, runtime string) Option {
	return func(o *options) {
		o.modelPath = model
		o.modelVocabPath = vocab
		o.runtimePath = runtime
	}
}

// WithEmbeddingDim requires the embedding dimension to be d. Default: taken
// from the embedding source.
func WithEmbeddingDim(d int) Option {
	return func(o *options) {
		o.embeddingDim = d
	}
}

// WithLogger routes progress logs. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		tokenizer: "manual",
		minTokens: 10,
		maxTokens: 500,
		keepTop:   10000,
		train:     4000,
		test:      1000,
	}
}
