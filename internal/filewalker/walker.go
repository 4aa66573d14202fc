package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"addon-indexer/internal/parser"

	"github.com/rs/zerolog/log"
)

// Walker traverses directories and dispatches catalog files to their parser.
type Walker struct {
	parsers []parser.Parser
}

// NewWalker creates a Walker reading the given catalog extensions
// (parser.DefaultExtensions when none are given).
func NewWalker(extensions ...string) *Walker {
	return NewWalkerWithParsers(parser.NewCatalogParser(extensions...))
}

// NewWalkerWithParsers creates a Walker over an explicit parser set. The first
// parser accepting an extension wins.
func NewWalkerWithParsers(parsers ...parser.Parser) *Walker {
	return &Walker{parsers: parsers}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path   string
	Ext    string
	Parser parser.Parser
}

// Match returns the entry for path if some parser handles its extension.
func (w *Walker) Match(path string) (FileEntry, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return FileEntry{}, false
	}
	for _, p := range w.parsers {
		if p.CanParse(ext) {
			return FileEntry{Path: path, Ext: ext, Parser: p}, true
		}
	}
	return FileEntry{}, false
}

// Walk discovers all catalog files under the given root directory in lexical order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if entry, ok := w.Match(path); ok {
			entries = append(entries, entry)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Debug().Int("count", len(entries)).Str("root", root).Msg("Discovered catalog files")
	return entries, nil
}

// ParseFile parses a single file using the appropriate parser.
func (w *Walker) ParseFile(entry FileEntry) (*parser.ParseResult, error) {
	return entry.Parser.Parse(entry.Path)
}
