package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/genreprep/internal/config"
	"github.com/crimson-sun/genreprep/internal/output"
	"github.com/crimson-sun/genreprep/internal/output/file"
	"github.com/crimson-sun/genreprep/internal/output/kv"
	"github.com/crimson-sun/genreprep/internal/output/multi"
	"github.com/crimson-sun/genreprep/internal/output/stdout"
	"github.com/crimson-sun/genreprep/pkg/genreprep"
)

func buildCmd() *cobra.Command {
	var (
		cf          corpusFlags
		dropTop     int
		keepTop     int
		standardize bool
		train       int
		test        int
		seed        int64
		embedding   string
		embPath     string
		embDim      int
		modelPath   string
		vocabPath   string
		outFile     string
		outKV       string
		pretty      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the pipeline and write the prepared dataset",
		Long: `Reads the corpus, selects and cleans documents, builds the vocabulary,
encodes every document and writes the train/test splits to the configured
sinks. Without --output or --kv a manifest is printed to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, func(c *config.Config) {
				cf.apply(cmd, c)
				fs := cmd.Flags()
				if fs.Changed("drop-top") {
					c.DropTopFrequent = dropTop
				}
				if fs.Changed("keep-top") {
					c.KeepTopCount = keepTop
				}
				if fs.Changed("standardize") {
					c.Standardize = standardize
				}
				if fs.Changed("train") {
					c.TrainSize = train
				}
				if fs.Changed("test") {
					c.TestSize = test
				}
				if fs.Changed("seed") {
					c.Seed = &seed
				}
				if fs.Changed("embedding") {
					c.Embedding = embedding
				}
				if fs.Changed("embedding-path") {
					c.EmbeddingPath = embPath
				}
				if fs.Changed("embedding-dim") {
					c.EmbeddingDim = embDim
				}
				if fs.Changed("model") {
					c.ModelPath = modelPath
				}
				if fs.Changed("model-vocab") {
					c.VocabPath = vocabPath
				}
				if fs.Changed("output") {
					c.OutputFile = outFile
				}
				if fs.Changed("kv") {
					c.OutputKV = outKV
				}
				if fs.Changed("pretty") {
					c.Pretty = pretty
				}
			})
			if err != nil {
				return err
			}
			return build(cmd, cfg)
		},
	}

	cf.register(cmd)
	fs := cmd.Flags()
	fs.IntVar(&dropTop, "drop-top", 0, "discard this many most frequent tokens")
	fs.IntVar(&keepTop, "keep-top", 0, "vocabulary rank upper bound, 0 for none")
	fs.BoolVar(&standardize, "standardize", false, "standardize prevalence columns")
	fs.IntVar(&train, "train", 0, "training rows")
	fs.IntVar(&test, "test", 0, "test rows")
	fs.Int64Var(&seed, "seed", 0, "shuffle seed")
	fs.StringVar(&embedding, "embedding", "", "embedding source (none, text, onnx)")
	fs.StringVar(&embPath, "embedding-path", "", "GloVe-style vector file")
	fs.IntVar(&embDim, "embedding-dim", 0, "required embedding dimension")
	fs.StringVar(&modelPath, "model", "", "ONNX encoder model")
	fs.StringVar(&vocabPath, "model-vocab", "", "WordPiece vocabulary of the model")
	fs.StringVarP(&outFile, "output", "o", "", "JSON dataset file")
	fs.StringVar(&outKV, "kv", "", "badger directory for the dataset")
	fs.BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func build(cmd *cobra.Command, cfg config.Config) error {
	log := slog.Default()

	p, err := genreprep.New(preparerOptions(cfg, log)...)
	if err != nil {
		return err
	}
	defer p.Close()

	sink, err := openSinks(cfg, log)
	if err != nil {
		return err
	}

	ds, err := p.PrepareSource(cmd.Context(), cfg.Source, cfg.Inputs...)
	if err == nil {
		err = sink.Write(cmd.Context(), ds)
	}
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, color.New(color.FgGreen).Render(fmt.Sprintf(
		"genreprep: run %s ready: %d train, %d test, vocabulary %d",
		ds.Meta.RunID, ds.Train.Len(), ds.Test.Len(), ds.Meta.VocabularySize)))
	return nil
}

func preparerOptions(cfg config.Config, log *slog.Logger) []genreprep.Option {
	opts := []genreprep.Option{
		genreprep.WithLogger(log),
		genreprep.WithSingleLabel(cfg.RequireSingleLabel),
		genreprep.WithTokenizer(cfg.Tokenizer),
		genreprep.WithTokenLength(cfg.MinTokenLength, cfg.MaxTokenLength),
		genreprep.WithWorkers(cfg.Workers),
		genreprep.WithVocabularyWindow(cfg.DropTopFrequent, cfg.KeepTopCount),
		genreprep.WithStandardize(cfg.Standardize),
		genreprep.WithSplit(cfg.TrainSize, cfg.TestSize),
		genreprep.WithLanguage(cfg.Language),
		genreprep.WithEmbeddingDim(cfg.EmbeddingDim),
	}
	if len(cfg.Genres) > 0 {
		opts = append(opts, genreprep.WithGenres(cfg.Genres...))
	}
	if s := cfg.SeedValue(); s != nil {
		opts = append(opts, genreprep.WithSeed(*s))
	}
	switch cfg.Embedding {
	case "text":
		opts = append(opts, genreprep.WithEmbeddingFile(cfg.EmbeddingPath))
	case "onnx":
		opts = append(opts, genreprep.WithEmbeddingModelPaths(cfg.ModelPath, cfg.VocabPath, cfg.RuntimePath))
	}
	return opts
}

// openSinks fans out to every configured destination, falling back to a
// stdout manifest when none is set.
func openSinks(cfg config.Config, log *slog.Logger) (output.Sink, error) {
	var sinks []output.Sink
	if cfg.OutputFile != "" {
		f, err := file.New(cfg.OutputFile, file.WithPretty(cfg.Pretty))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, f)
	}
	if cfg.OutputKV != "" {
		db, err := kv.Open(cfg.OutputKV, log)
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, err
		}
		sinks = append(sinks, db)
	}
	if len(sinks) == 0 {
		sinks = append(sinks, stdout.New(cfg.Pretty))
	}
	return multi.New(sinks...), nil
}
