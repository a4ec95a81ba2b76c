package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommandStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Rendered\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "render", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Rendered") {
		t.Errorf("output missing rendered heading: %q", out)
	}
}

func TestRenderCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "code.go")
	if err := os.WriteFile(src, []byte("package main\n"), 0644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "out.html")

	if _, err := runCommand(t, "render", src, "-o", dst); err != nil {
		t.Fatalf("render -o: %v", err)
	}
	defer func() { flagRenderOut = "" }()

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), "package") {
		t.Errorf("output html missing source text: %q", data)
	}
}

func TestRenderCommandMissingFile(t *testing.T) {
	if _, err := runCommand(t, "render", "/nonexistent.md"); err == nil {
		t.Error("expected error for missing input")
	}
}
