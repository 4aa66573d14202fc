package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"addon-indexer/internal/textutil"
)

// DefaultExtensions lists the catalog file kinds read by CatalogParser.
var DefaultExtensions = []string{".ssc", ".stc", ".dsc"}

// ExtractObjectPaths extracts object paths from catalog text. It never fails:
// top-level lines matching no rule end up in UnrecognizedLines, and malformed
// names are dropped. Content nested inside braces is only scanned for depth.
func ExtractObjectPaths(text string) ParseResult {
	st := &lineState{
		paths:        []string{},
		unrecognized: []string{},
	}
	for _, line := range LogicalLines(text) {
		st.consume(line)
	}
	return ParseResult{
		ObjectPaths:       st.paths,
		UnrecognizedLines: st.unrecognized,
	}
}

// lineState is the per-call state threaded through the line loop.
type lineState struct {
	depth        int
	paths        []string
	unrecognized []string
}

func (st *lineState) consume(logical string) {
	line := StripComment(logical)
	if line == "" {
		return
	}

	opens, closes := countBraces(line)
	if st.depth == 0 {
		st.record(extractLine(line))
	}

	st.depth += opens - closes
	if st.depth < 0 {
		st.depth = 0
	}
}

func (st *lineState) record(out Outcome) {
	switch out.Kind {
	case OutcomeEmit:
		st.paths = append(st.paths, out.Paths...)
	case OutcomeUnrecognized:
		st.unrecognized = append(st.unrecognized, out.Line)
	}
}

// CatalogParser reads catalog files from disk and extracts their object paths.
type CatalogParser struct {
	extensions map[string]bool
}

// NewCatalogParser creates a parser for the given extensions, falling back to
// DefaultExtensions when none are given.
func NewCatalogParser(extensions ...string) *CatalogParser {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &CatalogParser{extensions: exts}
}

func (p *CatalogParser) CanParse(ext string) bool {
	return p.extensions[strings.ToLower(ext)]
}

// Extensions returns the handled extensions.
func (p *CatalogParser) Extensions() []string {
	out := make([]string, 0, len(p.extensions))
	for ext := range p.extensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

func (p *CatalogParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	text, _, err := textutil.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	result := ExtractObjectPaths(text)
	result.FilePath = filePath
	result.FileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	return &result, nil
}
