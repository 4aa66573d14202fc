package cli

import (
	"context"
	"errors"
	"fmt"

	"addon-indexer/internal/addon"
	"addon-indexer/internal/config"
	"addon-indexer/internal/filewalker"
	"addon-indexer/internal/graph"
	"addon-indexer/internal/store"
	"addon-indexer/internal/textutil"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <archive.zip|directory>",
		Short: "Check an add-on's metadata and list the objects it declares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			_, err := validateSubmission(ctx, cmd, config.Load(), args[0])
			return err
		},
	}
}

func publishCmd() *cobra.Command {
	var skipGraph bool

	cmd := &cobra.Command{
		Use:   "publish <archive.zip|directory>",
		Short: "Validate an add-on and store its record and object hierarchy",
		Long: `Validates the add-on, then creates or updates its record in PostgreSQL.
Add-ons declaring fewer distinct objects than RELATED_PATH_THRESHOLD store
their object paths as an explicit related list. The object hierarchy is
merged into Neo4j unless --skip-graph is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args[0], skipGraph)
		},
	}

	cmd.Flags().BoolVar(&skipGraph, "skip-graph", false, "Do not update the Neo4j object hierarchy")
	return cmd
}

func newValidator(cfg *config.Config) *addon.Validator {
	return addon.NewValidator(filewalker.NewWalker(cfg.CatalogExtensions...), cfg.RelatedPathThreshold, cfg.WorkerCount)
}

// validateSubmission validates path, prints the outcome and returns an error
// when the metadata is invalid.
func validateSubmission(ctx context.Context, cmd *cobra.Command, cfg *config.Config, path string) (*addon.Submission, error) {
	sub, err := newValidator(cfg).Validate(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	a, pkg := sub.Addon, sub.Package
	if a.ID == "" && errors.Is(sub.Problems, addon.ErrNoManifest) {
		printf(cmd, "Add-on:   no %s\n", addon.ManifestName)
	} else {
		printf(cmd, "Add-on:   %s (%s) v%s by %s\n", a.ID, a.Title, a.Version, a.Author)
	}
	printf(cmd, "Catalogs: %d files, %d distinct object paths\n", pkg.Files, len(pkg.ObjectPaths))
	if pkg.NeedsRelatedPaths {
		printf(cmd, "Related:  %d object paths will be stored with the record\n", len(a.RelatedObjects))
	} else {
		printf(cmd, "Related:  not stored (at least %d objects)\n", cfg.RelatedPathThreshold)
	}
	for _, line := range pkg.Unrecognized {
		printf(cmd, "Unrecognized: %s\n", textutil.Truncate(line, 120))
	}

	if !sub.Valid() {
		printf(cmd, "Problems:\n%v\n", sub.Problems)
		if errors.Is(sub.Problems, addon.ErrNoManifest) {
			return sub, fmt.Errorf("validate %s: %w", path, sub.Problems)
		}
		return sub, fmt.Errorf("add-on %q is invalid: %w", a.ID, addon.ErrInvalid)
	}
	printf(cmd, "OK\n")
	return sub, nil
}

// runPublish handles the `publish` command.
func runPublish(cmd *cobra.Command, path string, skipGraph bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	sub, err := validateSubmission(ctx, cmd, cfg, path)
	if err != nil {
		return err
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	addons := store.NewAddonStore(pool)
	if err := addons.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := addons.Save(ctx, sub.Addon); err != nil {
		return fmt.Errorf("store add-on: %w", err)
	}

	if !skipGraph {
		driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return err
		}
		defer driver.Close(ctx)

		hierarchy := graph.NewHierarchyBuilder(driver)
		if err := hierarchy.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := hierarchy.AddObjectPaths(ctx, sub.Addon.ID, sub.Package.ObjectPaths); err != nil {
			return err
		}
	}

	log.Info().
		Str("addon", sub.Addon.ID).
		Int("paths", len(sub.Package.ObjectPaths)).
		Int("related", len(sub.Addon.RelatedObjects)).
		Msg("Add-on published")
	return nil
}
