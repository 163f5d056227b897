package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/genreprep/internal/config"
	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/genre"
	"github.com/crimson-sun/genreprep/internal/report"
	"github.com/crimson-sun/genreprep/internal/text"
)

func statsCmd() *cobra.Command {
	var (
		cf  corpusFlags
		top int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print genre and length statistics of a corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, func(c *config.Config) { cf.apply(cmd, c) })
			if err != nil {
				return err
			}
			return stats(cmd, cfg, top)
		},
	}
	cf.register(cmd)
	cmd.Flags().IntVar(&top, "top", 10, "rows of the raw genre table, 0 for all")
	return cmd
}

func stats(cmd *cobra.Command, cfg config.Config, top int) error {
	src, err := corpus.Open(cfg.Source, cfg.Inputs...)
	if err != nil {
		return err
	}
	if cfg.Language != "" {
		src = corpus.LanguageFilter{Source: src, Lang: cfg.Language}
	}
	records, err := src.Records(cmd.Context())
	if err != nil {
		return err
	}

	labels := cfg.Genres
	if len(labels) == 0 {
		labels = genre.Defaults(cfg.Source)
	}
	index, err := genre.NewIndex(labels)
	if err != nil {
		return err
	}
	tok, err := text.New(text.Strategy(cfg.Tokenizer))
	if err != nil {
		return err
	}
	cleaner := text.NewCleaner(tok, cfg.MinTokenLength, cfg.MaxTokenLength, cfg.Workers, nil)

	s, err := report.Collect(cmd.Context(), records, genre.NewSelector(index, cfg.RequireSingleLabel), cfg.RequireSingleLabel, cleaner, top)
	if err != nil {
		return err
	}
	report.Render(os.Stdout, s)
	return nil
}
