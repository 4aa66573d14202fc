package cli

import (
	"context"
	"fmt"

	"addon-indexer/internal/config"
	"addon-indexer/internal/filewalker"
	"addon-indexer/internal/parser"
	"addon-indexer/internal/report"
	"addon-indexer/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type extractOptions struct {
	pathsOut        string
	unrecognizedOut string
	quiet           bool
}

func extractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract <directory>",
		Short: "Print the object paths declared by every catalog file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.pathsOut, "paths-out", "", "Write all object paths to this file, one per line")
	cmd.Flags().StringVar(&opts.unrecognizedOut, "unrecognized-out", "", "Write unrecognized lines to this file as \"[filename] line\"")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print the totals")

	return cmd
}

// runExtract handles the `extract` command.
func runExtract(cmd *cobra.Command, dir string, opts extractOptions) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	w := filewalker.NewWalker(cfg.CatalogExtensions...)
	entries, err := w.Walk(dir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	log.Info().Int("files", len(entries)).Str("root", dir).Msg("Extracting object paths")

	parsePool := worker.NewPool(cfg.WorkerCount,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
			return w.ParseFile(entry)
		},
	)

	rep := report.NewReporter(cmd.OutOrStdout(), opts.quiet)
	for _, res := range parsePool.Execute(ctx, entries) {
		if res.Skipped {
			return ctx.Err()
		}
		if res.Err != nil {
			log.Error().Err(res.Err).Str("file", res.Input.Path).Msg("Parse failed")
			continue
		}
		rep.Add(res.Output)
	}
	rep.PrintSummary()

	if opts.pathsOut != "" {
		if err := rep.WritePaths(opts.pathsOut); err != nil {
			return err
		}
	}
	if opts.unrecognizedOut != "" {
		if err := rep.WriteUnrecognized(opts.unrecognizedOut); err != nil {
			return err
		}
	}

	s := rep.Summary()
	log.Info().
		Int("files", s.Files).
		Int("paths", s.Paths).
		Int("unrecognized", s.Unrecognized).
		Msg("Extraction complete")
	return nil
}
