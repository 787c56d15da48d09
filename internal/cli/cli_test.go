package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/anchorsmith/anchorsmith/pkg/lower"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "anchorsmith" {
		t.Errorf("Use = %q", root.Use)
	}

	want := []string{"validate", "analyze", "generate", "preview", "serve", "cache", "completion"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		if !slices.Contains(got, name) {
			t.Errorf("missing subcommand %q (have %v)", name, got)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/xdg/anchorsmith" {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !slices.Equal(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("dot,svg"); !slices.Equal(got, []string{"dot", "svg"}) {
		t.Errorf("parseFormats(\"dot,svg\") = %v", got)
	}
}

func TestWriteBundle(t *testing.T) {
	artifact := &lower.Artifact{
		ProgramName: "demo",
		Files: []lower.File{
			{Name: "src/lib.rs", Content: "pub mod state;\n"},
			{Name: "Cargo.toml", Content: "[package]\n"},
		},
	}

	dir := t.TempDir()
	if err := writeBundle(artifact, dir); err != nil {
		t.Fatalf("writeBundle() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "src", "lib.rs"))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(data) != "pub mod state;\n" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "Cargo.toml")); err != nil {
		t.Errorf("Cargo.toml not written: %v", err)
	}
}
