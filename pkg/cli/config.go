package cli

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Workspace layout: a "glitch" directory with input, output and temp
// subdirectories, rooted at the user's picture directory unless overridden
// with GLITCHART_IMAGE_PATH (settable in a .env file next to the binary).

func init() {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()
}

// DefaultImagePath returns the base directory for glitch art workspaces.
// GLITCHART_IMAGE_PATH takes priority; otherwise ~/Pictures (or ~/pictures)
// is used.
func DefaultImagePath() string {
	if p := os.Getenv("GLITCHART_IMAGE_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	path := filepath.Join(home, "Pictures")
	if _, err := os.Stat(path); err != nil {
		alt := filepath.Join(home, "pictures")
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return path
}

// SetupImagePath creates glitch/input, glitch/output and glitch/temp nested
// inside baseDir.
func SetupImagePath(baseDir string) error {
	for _, sub := range []string{"input", "output", "temp"} {
		if err := os.MkdirAll(filepath.Join(baseDir, "glitch", sub), 0o755); err != nil {
			return fmt.Errorf("create workspace dir %s: %w", sub, err)
		}
	}
	return nil
}

// InputDir returns the workspace input directory under baseDir.
func InputDir(baseDir string) string { return filepath.Join(baseDir, "glitch", "input") }

// OutputDir returns the workspace output directory under baseDir.
func OutputDir(baseDir string) string { return filepath.Join(baseDir, "glitch", "output") }

// TempDir returns the workspace temp directory under baseDir.
func TempDir(baseDir string) string { return filepath.Join(baseDir, "glitch", "temp") }

const tempNameAlphabet = "ABCDEFG1234567890"

// TempFileName generates a name of the form "temp" followed by 12 random
// characters from a small alphabet, with the given extension (e.g. ".png").
func TempFileName(ext string) string {
	b := make([]byte, 12)
	for i := range b {
		b[i] = tempNameAlphabet[rand.Intn(len(tempNameAlphabet))]
	}
	return "temp" + string(b) + ext
}
