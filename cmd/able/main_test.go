package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() int) (string, int) {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	code := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String(), code
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestRunFileExecutesAScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.scr")
	if err := os.WriteFile(path, []byte("print(1 + 2);"), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out, code := captureStdout(t, func() int { return run([]string{path}) })
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (output %q)", code, out)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want %q", out, "3")
	}
}

func TestRunFileReportsRuntimeErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.scr")
	if err := os.WriteFile(path, []byte("break;"), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	code := run([]string{path})
	w.Close()
	os.Stderr = old
	var buf bytes.Buffer
	io.Copy(&buf, r)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Cant break outside a loop") {
		t.Fatalf("expected diagnostic output, got %q", buf.String())
	}
}

func TestRunWithNoArgsAndNoManifestFails(t *testing.T) {
	chdir(t, t.TempDir())

	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	code := run(nil)
	w.Close()
	os.Stderr = old
	var buf bytes.Buffer
	io.Copy(&buf, r)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunDrivenByManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "project.yml"), []byte("name: demo\nentry: main.scr\n"), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.scr"), []byte("print(40 + 2);"), 0644); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	chdir(t, dir)

	out, code := captureStdout(t, func() int { return run([]string{"run"}) })
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("got %q, want %q", out, "42")
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	out, code := captureStdout(t, func() int { return run([]string{"--version"}) })
	if code != 0 || strings.TrimSpace(out) != cliVersion {
		t.Fatalf("got %q code=%d", out, code)
	}

	out, code = captureStdout(t, func() int { return run([]string{"--help"}) })
	if code != 0 || !strings.Contains(out, "usage:") {
		t.Fatalf("got %q code=%d", out, code)
	}
}

func TestRunDepsWithoutManifestFails(t *testing.T) {
	chdir(t, t.TempDir())

	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	code := run([]string{"deps"})
	w.Close()
	os.Stderr = old
	var buf bytes.Buffer
	io.Copy(&buf, r)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "project.yml not found") {
		t.Fatalf("got %q", buf.String())
	}
}
