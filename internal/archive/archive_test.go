package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "addon.zip")
	writeZip(t, zipPath, map[string]string{
		"moons/":           "",
		"moons/data/a.ssc": `"Moon" "Sol/Earth"`,
		"moons/addon.toml": "id = \"moons\"",
	})

	dest := filepath.Join(dir, "out")
	files, err := Extract(zipPath, dest)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2: %v", len(files), files)
	}

	data, err := os.ReadFile(filepath.Join(dest, "moons", "data", "a.ssc"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Moon" "Sol/Earth"` {
		t.Errorf("content = %q", data)
	}
}

func TestExtract_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, map[string]string{"../escape.ssc": "x"})

	_, err := Extract(zipPath, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("err = %v, want ErrUnsafePath", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "escape.ssc")); statErr == nil {
		t.Error("traversal entry was written")
	}
}

func TestExtract_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.zip")
	if err := os.WriteFile(path, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Extract(path, dir); err == nil {
		t.Error("expected error for invalid archive")
	}
}
