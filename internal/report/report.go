package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"addon-indexer/internal/parser"

	"github.com/rs/zerolog/log"
)

// Reporter prints per-file extraction results and accumulates totals across files.
type Reporter struct {
	out   io.Writer
	quiet bool

	files        int
	paths        []string
	unrecognized []string
}

// Summary holds the totals of a run.
type Summary struct {
	Files        int
	Paths        int
	Unrecognized int
}

// NewReporter creates a Reporter printing to out. When quiet is set only
// totals are accumulated.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	return &Reporter{out: out, quiet: quiet}
}

// Add records the result for one file and prints its object paths.
func (r *Reporter) Add(res *parser.ParseResult) {
	r.files++
	r.paths = append(r.paths, res.ObjectPaths...)

	name := filepath.Base(res.FilePath)
	for _, line := range res.UnrecognizedLines {
		r.unrecognized = append(r.unrecognized, FormatUnrecognized(name, line))
	}

	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, "%s: %d object paths\n", res.FilePath, len(res.ObjectPaths))
	for _, p := range res.ObjectPaths {
		fmt.Fprintf(r.out, "  %s\n", p)
	}
}

// FormatUnrecognized renders an unrecognized line as "[filename] line".
func FormatUnrecognized(filename, line string) string {
	return fmt.Sprintf("[%s] %s", filename, line)
}

// Paths returns every object path recorded so far, in order.
func (r *Reporter) Paths() []string {
	return r.paths
}

// Unrecognized returns the formatted unrecognized lines recorded so far.
func (r *Reporter) Unrecognized() []string {
	return r.unrecognized
}

func (r *Reporter) Summary() Summary {
	return Summary{
		Files:        r.files,
		Paths:        len(r.paths),
		Unrecognized: len(r.unrecognized),
	}
}

// PrintSummary writes the run totals.
func (r *Reporter) PrintSummary() {
	s := r.Summary()
	fmt.Fprintf(r.out, "Total: %d object paths in %d files (%d unrecognized lines)\n", s.Paths, s.Files, s.Unrecognized)
}

// WritePaths writes all object paths, one per line.
func (r *Reporter) WritePaths(path string) error {
	return writeLines(path, r.paths)
}

// WriteUnrecognized writes all formatted unrecognized lines, one per line.
func (r *Reporter) WriteUnrecognized(path string) error {
	return writeLines(path, r.unrecognized)
}

func writeLines(path string, lines []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("lines", len(lines)).Msg("Wrote report file")
	return nil
}
