package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/genreprep/internal/corpus"
	"github.com/crimson-sun/genreprep/internal/genre"

	_ "github.com/crimson-sun/genreprep/internal/corpus/books"
	_ "github.com/crimson-sun/genreprep/internal/corpus/movies"
)

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the registered corpus formats and their default genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range corpus.Sources() {
				fmt.Fprintf(out, "%-8s %s\n", name, strings.Join(genre.Defaults(name), ", "))
			}
			return nil
		},
	}
}
