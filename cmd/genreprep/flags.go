package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/genreprep/internal/config"
	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/logging"
)

// corpusFlags override the corpus and text settings shared by build and stats.
type corpusFlags struct {
	source      string
	inputs      []string
	language    string
	genres      []string
	singleLabel bool
	tokenizer   string
	minTokens   int
	maxTokens   int
	workers     int
	logLevel    string
	logFormat   string
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.source, "source", "s", "", "corpus format (books, movies)")
	fs.StringSliceVarP(&f.inputs, "input", "i", nil, "input file, repeatable")
	fs.StringVar(&f.language, "language", "", "keep only records in this ISO 639-1 language")
	fs.StringSliceVarP(&f.genres, "genres", "g", nil, "target genre labels, in code order")
	fs.BoolVar(&f.singleLabel, "single-label", false, "keep only documents with exactly one target genre")
	fs.StringVar(&f.tokenizer, "tokenizer", "", "tokenization strategy (manual, linguistic)")
	fs.IntVar(&f.minTokens, "min-tokens", 0, "drop documents with fewer tokens")
	fs.IntVar(&f.maxTokens, "max-tokens", 0, "truncate documents to this many tokens")
	fs.IntVar(&f.workers, "workers", 0, "tokenization goroutines")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "text or json")
}

func (f *corpusFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("source") {
		cfg.Source = f.source
	}
	if fs.Changed("input") {
		cfg.Inputs = f.inputs
	}
	if fs.Changed("language") {
		cfg.Language = f.language
	}
	if fs.Changed("genres") {
		cfg.Genres = f.genres
	}
	if fs.Changed("single-label") {
		cfg.RequireSingleLabel = f.singleLabel
	}
	if fs.Changed("tokenizer") {
		cfg.Tokenizer = f.tokenizer
	}
	if fs.Changed("min-tokens") {
		cfg.MinTokenLength = f.minTokens
	}
	if fs.Changed("max-tokens") {
		cfg.MaxTokenLength = f.maxTokens
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
}

// loadConfig layers the --config file, the environment and the flags, then
// validates the result and installs the logger.
func loadConfig(cmd *cobra.Command, apply func(*config.Config)) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if len(cfg.Inputs) == 0 {
		return config.Config{}, fmt.Errorf("config: %w: no input files", perrors.ErrInvalidConfig)
	}
	logging.Init(cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}
