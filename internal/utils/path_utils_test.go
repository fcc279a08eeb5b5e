package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHasDeclExt(t *testing.T) {
	tests := map[string]bool{
		"a.yaml":     true,
		"dir/b.yml":  true,
		"c.json":     false,
		"yaml":       false,
		"d.yaml.bak": false,
	}
	for path, want := range tests {
		if got := HasDeclExt(path); got != want {
			t.Errorf("HasDeclExt(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCollectDeclFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt", "sub/c.yaml"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "notes.txt")

	got, err := CollectDeclFiles([]string{single, dir})
	if err != nil {
		t.Fatalf("CollectDeclFiles: %v", err)
	}
	want := []string{
		single,
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "sub", "c.yaml"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectDeclFiles = %v, want %v", got, want)
	}

	if _, err := CollectDeclFiles([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Errorf("missing path should fail")
	}
}
