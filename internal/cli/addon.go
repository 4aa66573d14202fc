package cli

import (
	"context"
	"strings"

	"addon-indexer/internal/config"
	"addon-indexer/internal/graph"
	"addon-indexer/internal/store"

	"github.com/spf13/cobra"
)

func addonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addon",
		Short: "Inspect and manage stored add-on records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored add-on record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, s *store.AddonStore) error {
				a, err := s.Fetch(ctx, args[0])
				if err != nil {
					return err
				}
				printf(cmd, "ID:          %s\n", a.ID)
				printf(cmd, "Title:       %s\n", a.Title)
				printf(cmd, "Author:      %s\n", a.Author)
				printf(cmd, "Version:     %s\n", a.Version)
				printf(cmd, "Category:    %s\n", a.Category)
				printf(cmd, "License:     %s\n", a.License)
				printf(cmd, "Released:    %s\n", a.Released.Format("2006-01-02"))
				if !a.Updated.IsZero() {
					printf(cmd, "Updated:     %s\n", a.Updated.Format("2006-01-02"))
				}
				printf(cmd, "Description: %s\n", a.Description)
				if len(a.RelatedObjects) > 0 {
					printf(cmd, "Related:     %s\n", strings.Join(a.RelatedObjects, ", "))
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored add-on records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, s *store.AddonStore) error {
				addons, err := s.List(ctx)
				if err != nil {
					return err
				}
				for _, a := range addons {
					printf(cmd, "%s\t%s\t%s\t%d related\n", a.ID, a.Version, a.Title, len(a.RelatedObjects))
				}
				return nil
			})
		},
	})

	var withGraph bool
	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a stored add-on record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, s *store.AddonStore) error {
				if err := s.Remove(ctx, args[0]); err != nil {
					return err
				}
				if !withGraph {
					return nil
				}
				cfg := config.Load()
				driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
				if err != nil {
					return err
				}
				defer driver.Close(ctx)
				return graph.NewHierarchyBuilder(driver).RemoveAddon(ctx, args[0])
			})
		},
	}
	remove.Flags().BoolVar(&withGraph, "graph", false, "Also remove the add-on node from the Neo4j hierarchy")
	cmd.AddCommand(remove)

	return cmd
}

// withStore connects to PostgreSQL and runs fn against the add-on store.
func withStore(fn func(ctx context.Context, s *store.AddonStore) error) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	s := store.NewAddonStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	return fn(ctx, s)
}
