package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "project.yml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write project.yml: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: demo\nentry: main.scr\nmodulePaths:\n  - lib\n")

	m, err := LoadManifest(filepath.Join(dir, "project.yml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "demo" || m.Entry != "main.scr" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if got := m.EntryPath(); got != filepath.Join(dir, "main.scr") {
		t.Fatalf("EntryPath() = %q", got)
	}
	paths := m.SearchPaths()
	if len(paths) != 2 || paths[0] != filepath.Join(dir, "lib") || paths[1] != dir {
		t.Fatalf("unexpected search paths: %v", paths)
	}
}

func TestLoadManifestMissingNameIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "entry: main.scr\n")

	if _, err := LoadManifest(filepath.Join(dir, "project.yml")); err == nil {
		t.Fatalf("expected a validation error for a missing name")
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "name: demo\nentry: main.scr\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, "project.yml"))
	if found != want {
		t.Fatalf("got %q, want %q", found, want)
	}
}

func TestFindManifestReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	found, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no manifest found, got %q", found)
	}
}
