package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// ObjectLink is a directed child→parent edge in the object hierarchy.
type ObjectLink struct {
	Child  string
	Parent string
}

// HierarchyBuilder projects extracted object paths into the Neo4j graph:
// (:CelestialObject)-[:CHILD_OF]->(:CelestialObject) and
// (:Addon)-[:DECLARES]->(:CelestialObject).
type HierarchyBuilder struct {
	driver neo4j.DriverWithContext
}

// NewHierarchyBuilder creates a new hierarchy builder.
func NewHierarchyBuilder(driver neo4j.DriverWithContext) *HierarchyBuilder {
	return &HierarchyBuilder{driver: driver}
}

// Connect opens a Neo4j driver and verifies connectivity.
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Debug().Msg("Connected to Neo4j")
	return driver, nil
}

// EnsureSchema creates constraints on the Neo4j database.
func (hb *HierarchyBuilder) EnsureSchema(ctx context.Context) error {
	session := hb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (o:CelestialObject) REQUIRE o.path IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Addon) REQUIRE a.id IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Debug().Msg("Graph schema ensured")
	return nil
}

// Ancestors returns path followed by each of its parents, nearest first.
// "Sol/Earth/Moon" yields Sol/Earth/Moon, Sol/Earth, Sol. Catalog numbers
// such as "HIP 70890" have no parents.
func Ancestors(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	out := []string{path}
	for {
		i := strings.LastIndex(path, "/")
		if i < 0 {
			return out
		}
		path = path[:i]
		if path == "" {
			return out
		}
		out = append(out, path)
	}
}

// Links returns the distinct child→parent edges implied by paths, in first-seen order.
func Links(paths []string) []ObjectLink {
	seen := make(map[ObjectLink]bool)
	var links []ObjectLink
	for _, p := range paths {
		chain := Ancestors(p)
		for i := 0; i+1 < len(chain); i++ {
			l := ObjectLink{Child: chain[i], Parent: chain[i+1]}
			if !seen[l] {
				seen[l] = true
				links = append(links, l)
			}
		}
	}
	return links
}

// AddObjectPaths merges every path and its ancestors into the graph and
// links them to the declaring add-on.
func (hb *HierarchyBuilder) AddObjectPaths(ctx context.Context, addonID string, paths []string) error {
	session := hb.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	objects := make([]any, 0, len(paths))
	for _, p := range paths {
		if p = strings.Trim(p, "/"); p != "" {
			objects = append(objects, p)
		}
	}

	links := Links(paths)
	edges := make([]any, 0, len(links))
	for _, l := range links {
		edges = append(edges, map[string]any{"child": l.Child, "parent": l.Parent})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, `
			MERGE (a:Addon {id: $addon})
			WITH a
			UNWIND $paths AS path
			MERGE (o:CelestialObject {path: path})
			MERGE (a)-[:DECLARES]->(o)
		`, map[string]any{"addon": addonID, "paths": objects}); err != nil {
			return nil, fmt.Errorf("merge declared objects: %w", err)
		}

		if _, err := tx.Run(ctx, `
			UNWIND $edges AS edge
			MERGE (c:CelestialObject {path: edge.child})
			MERGE (p:CelestialObject {path: edge.parent})
			MERGE (c)-[:CHILD_OF]->(p)
		`, map[string]any{"edges": edges}); err != nil {
			return nil, fmt.Errorf("merge hierarchy: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("add object paths for %s: %w", addonID, err)
	}

	log.Info().Str("addon", addonID).Int("paths", len(objects)).Int("links", len(edges)).Msg("Updated object hierarchy")
	return nil
}

// ObjectsForAddon returns the object paths an add-on declares, sorted.
func (hb *HierarchyBuilder) ObjectsForAddon(ctx context.Context, addonID string) ([]string, error) {
	session := hb.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (:Addon {id: $addon})-[:DECLARES]->(o:CelestialObject)
		RETURN o.path AS path
		ORDER BY path
	`, map[string]any{"addon": addonID})
	if err != nil {
		return nil, fmt.Errorf("query add-on objects: %w", err)
	}

	var paths []string
	for result.Next(ctx) {
		if v, ok := result.Record().Get("path"); ok {
			if s, ok := v.(string); ok {
				paths = append(paths, s)
			}
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read add-on objects: %w", err)
	}
	return paths, nil
}

// RemoveAddon detaches and deletes an add-on node. Objects stay in the hierarchy.
func (hb *HierarchyBuilder) RemoveAddon(ctx context.Context, addonID string) error {
	session := hb.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `MATCH (a:Addon {id: $addon}) DETACH DELETE a`, map[string]any{"addon": addonID}); err != nil {
		return fmt.Errorf("remove add-on node %s: %w", addonID, err)
	}
	return nil
}
