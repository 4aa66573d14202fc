package filewalker

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "data", "moons.ssc"), `"Moon" "Sol/Earth"`)
	writeFile(t, filepath.Join(root, "data", "stars.STC"), "70890")
	writeFile(t, filepath.Join(root, "extras", "galaxies.dsc"), `Galaxy "M 31"`)
	writeFile(t, filepath.Join(root, "README.txt"), "not a catalog")
	writeFile(t, filepath.Join(root, "textures", "earth.jpg"), "")

	w := NewWalker()
	entries, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	var got []string
	for _, e := range entries {
		rel, _ := filepath.Rel(root, e.Path)
		got = append(got, filepath.ToSlash(rel)+"|"+e.Ext)
	}
	want := []string{"data/moons.ssc|.ssc", "data/stars.STC|.stc", "extras/galaxies.dsc|.dsc"}
	if !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	res, err := w.ParseFile(entries[0])
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !slices.Equal(res.ObjectPaths, []string{"Sol/Earth/Moon"}) {
		t.Errorf("ObjectPaths = %q", res.ObjectPaths)
	}
}

func TestWalk_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ssc"), "")
	writeFile(t, filepath.Join(root, "b.stc"), "")

	entries, err := NewWalker(".stc").Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(entries) != 1 || filepath.Base(entries[0].Path) != "b.stc" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestWalk_RootErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.ssc")
	writeFile(t, file, "")

	if _, err := NewWalker().Walk(filepath.Join(root, "missing")); err == nil {
		t.Error("expected error for missing root")
	}
	if _, err := NewWalker().Walk(file); err == nil {
		t.Error("expected error for file root")
	}
}

func TestMatch(t *testing.T) {
	w := NewWalker()
	if _, ok := w.Match("/x/y/README"); ok {
		t.Error("file without extension matched")
	}
	if e, ok := w.Match("/x/y/Z.DSC"); !ok || e.Ext != ".dsc" {
		t.Errorf("Match = %+v, %v", e, ok)
	}
}
