package addon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"addon-indexer/internal/archive"
	"addon-indexer/internal/filewalker"
	"addon-indexer/internal/parser"
	"addon-indexer/internal/report"
	"addon-indexer/internal/worker"

	"github.com/rs/zerolog/log"
)

// DefaultRelatedPathThreshold is the distinct object count below which an
// add-on stores its object paths as an explicit related list.
const DefaultRelatedPathThreshold = 50

// PackageReport summarizes the catalog content of an add-on package.
type PackageReport struct {
	Files int
	// ObjectPaths is the sorted set of distinct object paths.
	ObjectPaths []string
	// Unrecognized holds "[filename] line" entries.
	Unrecognized []string
	// NeedsRelatedPaths is set when the add-on declares fewer distinct
	// objects than the threshold and should store them explicitly.
	NeedsRelatedPaths bool
}

// Submission is the outcome of validating a packaged add-on.
type Submission struct {
	Addon   *Addon
	Package *PackageReport
	// Problems joins all field validation errors; nil when the metadata is valid.
	Problems error
}

// Valid reports whether the submission passed every check.
func (s *Submission) Valid() bool {
	return s.Problems == nil
}

// Validator checks add-on packages using the catalog parser.
type Validator struct {
	walker    *filewalker.Walker
	threshold int
	workers   int
}

// NewValidator creates a Validator. A threshold below 1 uses
// DefaultRelatedPathThreshold.
func NewValidator(walker *filewalker.Walker, threshold, workers int) *Validator {
	if threshold < 1 {
		threshold = DefaultRelatedPathThreshold
	}
	return &Validator{walker: walker, threshold: threshold, workers: workers}
}

// ValidatePackage extracts the object paths of every catalog file below dir.
func (v *Validator) ValidatePackage(ctx context.Context, dir string) (*PackageReport, error) {
	entries, err := v.walker.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("walk package: %w", err)
	}

	pool := worker.NewPool(v.workers, func(_ context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
		return v.walker.ParseFile(entry)
	})

	seen := make(map[string]struct{})
	rep := &PackageReport{}
	for _, res := range pool.Execute(ctx, entries) {
		if res.Skipped {
			return nil, ctx.Err()
		}
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("file", res.Input.Path).Msg("Skipping unreadable catalog file")
			continue
		}
		rep.Files++
		for _, p := range res.Output.ObjectPaths {
			seen[p] = struct{}{}
		}
		name := filepath.Base(res.Input.Path)
		for _, line := range res.Output.UnrecognizedLines {
			rep.Unrecognized = append(rep.Unrecognized, report.FormatUnrecognized(name, line))
		}
	}

	rep.ObjectPaths = make([]string, 0, len(seen))
	for p := range seen {
		rep.ObjectPaths = append(rep.ObjectPaths, p)
	}
	slices.Sort(rep.ObjectPaths)
	rep.NeedsRelatedPaths = len(rep.ObjectPaths) < v.threshold

	return rep, nil
}

// ValidateDir validates an unpacked add-on: its manifest fields and its
// catalog content. When the package needs an explicit related list and the
// manifest gives none, the extracted paths are used. A package without a
// manifest still gets its catalog report; the submission then carries a zero
// record and Problems wrapping ErrNoManifest.
func (v *Validator) ValidateDir(ctx context.Context, dir string) (*Submission, error) {
	a := &Addon{}
	var problems error

	manifestPath, err := findManifest(dir)
	switch {
	case errors.Is(err, ErrNoManifest):
		problems = fmt.Errorf("%s: %w", filepath.Base(dir), ErrNoManifest)
	case err != nil:
		return nil, err
	default:
		if a, err = LoadManifest(manifestPath); err != nil {
			return nil, err
		}
	}

	pkg, err := v.ValidatePackage(ctx, dir)
	if err != nil {
		return nil, err
	}

	if pkg.NeedsRelatedPaths && len(a.RelatedObjects) == 0 {
		a.RelatedObjects = slices.Clone(pkg.ObjectPaths)
	}

	if problems == nil {
		problems = Validate(a)
	}
	sub := &Submission{Addon: a, Package: pkg, Problems: problems}
	log.Info().
		Str("addon", a.ID).
		Int("files", pkg.Files).
		Int("paths", len(pkg.ObjectPaths)).
		Bool("related", pkg.NeedsRelatedPaths).
		Bool("valid", sub.Valid()).
		Msg("Validated add-on")
	return sub, nil
}

// ValidateArchive unpacks a ZIP add-on into a temporary directory and validates it.
func (v *Validator) ValidateArchive(ctx context.Context, zipPath string) (*Submission, error) {
	tmp, err := os.MkdirTemp("", "addon-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if _, err := archive.Extract(zipPath, tmp); err != nil {
		return nil, fmt.Errorf("extract add-on: %w", err)
	}
	return v.ValidateDir(ctx, tmp)
}

// Validate dispatches on path: .zip files are unpacked, directories are read in place.
func (v *Validator) Validate(ctx context.Context, path string) (*Submission, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return v.ValidateArchive(ctx, path)
	}
	return v.ValidateDir(ctx, path)
}

// findManifest returns the shallowest addon.toml below dir.
func findManifest(dir string) (string, error) {
	best, bestDepth := "", -1
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(d.Name(), ManifestName) {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(path), "/")
		if bestDepth < 0 || depth < bestDepth {
			best, bestDepth = path, depth
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("search manifest: %w", err)
	}
	if best == "" {
		return "", ErrNoManifest
	}
	return best, nil
}
