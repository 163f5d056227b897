package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Render("genreprep: "+err.Error()))
	}
	os.Exit(code)
}

// run executes the command tree and maps its error onto an exit code.
func run() (int, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(os.Stderr, "\nreceived %v, cancelling...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	root := rootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, perrors.ErrInvalidConfig) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "genreprep",
		Short:         "Prepare genre-tagged summaries for a text classifier",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "TOML configuration file")

	root.AddCommand(
		buildCmd(),
		statsCmd(),
		sourcesCmd(),
	)
	return root
}
