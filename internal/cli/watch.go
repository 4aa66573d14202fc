package cli

import (
	"fmt"
	"path/filepath"

	"addon-indexer/internal/cache"
	"addon-indexer/internal/config"
	"addon-indexer/internal/filewalker"
	"addon-indexer/internal/parser"
	"addon-indexer/internal/watcher"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <directory>",
		Short: "Re-extract catalog files as they change and print added or removed object paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}
}

// runWatch handles the `watch` command.
func runWatch(cmd *cobra.Command, dir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}

	catalogs := parser.NewCatalogParser(cfg.CatalogExtensions...)
	w := filewalker.NewWalkerWithParsers(catalogs)
	entries, err := w.Walk(root)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	results := cache.NewResultCache(catalogs)
	total := 0
	for _, entry := range entries {
		d, err := results.Refresh(entry.Path)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Path).Msg("Skipping unreadable catalog file")
			continue
		}
		total += len(d.Result.ObjectPaths)
	}
	log.Info().Int("files", results.Len()).Int("paths", total).Str("root", root).Msg("Watching for changes")

	fw, err := watcher.NewWatcher(root, func(path string) bool {
		_, ok := w.Match(path)
		return ok
	}, cfg.WatchDebounce)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Start(); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-fw.Changes:
			if !ok {
				return nil
			}

			var d cache.Delta
			if change.Kind == watcher.ChangeRemoved {
				d = results.Remove(change.File)
			} else if d, err = results.Refresh(change.File); err != nil {
				log.Warn().Err(err).Str("file", change.File).Msg("Failed to refresh catalog file")
				continue
			}
			if !d.Changed {
				continue
			}

			rel, _ := filepath.Rel(root, change.File)
			for _, p := range d.Added {
				printf(cmd, "+ %s\t%s\n", p, rel)
			}
			for _, p := range d.Removed {
				printf(cmd, "- %s\t%s\n", p, rel)
			}
			if d.Result != nil && len(d.Result.UnrecognizedLines) > 0 {
				log.Warn().Str("file", rel).Int("unrecognized", len(d.Result.UnrecognizedLines)).Msg("Unrecognized lines")
			}
			log.Debug().
				Str("file", rel).
				Stringer("kind", change.Kind).
				Int("added", len(d.Added)).
				Int("removed", len(d.Removed)).
				Msg("Catalog changed")
		}
	}
}
