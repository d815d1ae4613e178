package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultImagePathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GLITCHART_IMAGE_PATH", dir)
	if got := DefaultImagePath(); got != dir {
		t.Fatalf("DefaultImagePath = %q, want %q", got, dir)
	}
}

func TestSetupImagePath(t *testing.T) {
	base := t.TempDir()
	if err := SetupImagePath(base); err != nil {
		t.Fatalf("SetupImagePath failed: %v", err)
	}
	for _, dir := range []string{InputDir(base), OutputDir(base), TempDir(base)} {
		fi, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !fi.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
	if InputDir(base) != filepath.Join(base, "glitch", "input") {
		t.Fatalf("unexpected input dir: %s", InputDir(base))
	}
}

func TestTempFileName(t *testing.T) {
	name := TempFileName(".png")
	if !strings.HasPrefix(name, "temp") {
		t.Fatalf("name %q missing temp prefix", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("name %q missing extension", name)
	}
	random := strings.TrimSuffix(strings.TrimPrefix(name, "temp"), ".png")
	if len(random) != 12 {
		t.Fatalf("random part %q has length %d, want 12", random, len(random))
	}
	for _, r := range random {
		if !strings.ContainsRune(tempNameAlphabet, r) {
			t.Fatalf("unexpected character %q in %q", r, name)
		}
	}
}
