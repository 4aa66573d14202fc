package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"addon-indexer/internal/parser"
)

func TestReporter_Accumulates(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Add(&parser.ParseResult{
		FilePath:    "/addons/moons/moons.ssc",
		ObjectPaths: []string{"Sol/Earth/Moon", "Sol/Mars/Phobos"},
	})
	r.Add(&parser.ParseResult{
		FilePath:          "/addons/stars/stars.stc",
		ObjectPaths:       []string{"HIP 70890"},
		UnrecognizedLines: []string{"Radius 5"},
	})

	s := r.Summary()
	if s.Files != 2 || s.Paths != 3 || s.Unrecognized != 1 {
		t.Errorf("Summary = %+v", s)
	}
	if got := r.Unrecognized()[0]; got != "[stars.stc] Radius 5" {
		t.Errorf("Unrecognized[0] = %q", got)
	}

	out := buf.String()
	for _, want := range []string{"moons.ssc: 2 object paths", "  Sol/Mars/Phobos", "  HIP 70890"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	r.PrintSummary()
	if !strings.Contains(buf.String(), "Total: 3 object paths in 2 files (1 unrecognized lines)") {
		t.Errorf("summary line missing:\n%s", buf.String())
	}
}

func TestReporter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)
	r.Add(&parser.ParseResult{FilePath: "a.ssc", ObjectPaths: []string{"Sol"}})

	if buf.Len() != 0 {
		t.Errorf("quiet reporter printed %q", buf.String())
	}
	if r.Summary().Paths != 1 {
		t.Error("quiet reporter did not count paths")
	}
}

func TestReporter_WriteFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewReporter(&bytes.Buffer{}, true)
	r.Add(&parser.ParseResult{
		FilePath:          "x.ssc",
		ObjectPaths:       []string{"Sol", "Sol/Earth"},
		UnrecognizedLines: []string{"junk"},
	})

	pathsFile := filepath.Join(dir, "paths.txt")
	unrecFile := filepath.Join(dir, "unrecognized.txt")
	if err := r.WritePaths(pathsFile); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteUnrecognized(unrecFile); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(pathsFile)
	if string(data) != "Sol\nSol/Earth" {
		t.Errorf("paths file = %q", data)
	}
	data, _ = os.ReadFile(unrecFile)
	if string(data) != "[x.ssc] junk" {
		t.Errorf("unrecognized file = %q", data)
	}

	if err := r.WritePaths(filepath.Join(dir, "missing", "p.txt")); err == nil {
		t.Error("expected error writing into missing directory")
	}
}
