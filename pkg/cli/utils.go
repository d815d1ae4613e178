package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/mschloeman/glitchart/pkg/glitch"
)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf reads a full line from stdin and treats a single-line "/"
// as a request to invoke fzf for file selection. If fzf is unavailable or the
// selection is cancelled, it falls back to a typed prompt. Reading the whole
// line (rather than a single token) keeps paths with spaces intact.
func PromptLineOrFzf(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	input := strings.TrimSpace(line)

	if input == "/" {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Printf(" [fzf] %s\n", sel)
			return sel, nil
		}
		return PromptLine(prompt)
	}

	return input, nil
}

// LoadImage loads a file from disk into an image.Image. PNG, JPEG, GIF and BMP
// are detected by magic bytes; anything else is handed to image.Decode as-is.
// JPEGs carrying an EXIF orientation tag are auto-oriented so the pixel data
// matches how the image is meant to be viewed.
func LoadImage(path string) (image.Image, string, error) {
	// Read the full file so the JPEG bytes can be scanned for EXIF orientation.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	format := ""
	switch {
	case len(b) >= 3 && bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}):
		format = "jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte("\x89PNG\r\n\x1a\n")):
		format = "png"
	case len(b) >= 6 && (bytes.Equal(b[:6], []byte("GIF87a")) || bytes.Equal(b[:6], []byte("GIF89a"))):
		format = "gif"
	case len(b) >= 2 && b[0] == 'B' && b[1] == 'M':
		format = "bmp"
	}

	orientation := 1
	if format == "jpeg" {
		if o, err := extractJPEGOrientation(b); err == nil && o >= 1 && o <= 8 {
			orientation = o
		}
	}

	var img image.Image
	if format == "bmp" {
		img, err = bmp.Decode(bytes.NewReader(b))
	} else {
		img, _, err = image.Decode(bytes.NewReader(b))
	}
	if err != nil {
		return nil, "", err
	}
	if orientation != 1 {
		img = glitch.AutoOrient(img, orientation)
	}
	return img, format, nil
}

// SaveImage saves an image.Image to disk using format inferred from the filename
// extension. Supports .png, .jpg/.jpeg, .gif and .bmp; anything else defaults to PNG.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	case ".gif":
		return gif.Encode(f, img, nil)
	case ".bmp":
		return bmp.Encode(f, img)
	default:
		return png.Encode(f, img)
	}
}

// GetImageInfoImage returns a short info string for an image.Image.
func GetImageInfoImage(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	format := "unknown"
	switch img.(type) {
	case *image.YCbCr:
		format = "JPEG"
	case *image.Paletted:
		format = "GIF"
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64,
		*image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16, *image.Uniform:
		// Decoded formats that reach these types are most often PNG; we
		// can't tell after decoding, so report the common case.
		format = "PNG"
	}
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d", format, b.Dx(), b.Dy()), nil
}

// ParseRegion parses a region given as "x0 y0 x1 y1" in pixel coordinates.
// An empty input yields the zero Region, which selects the whole image.
func ParseRegion(s string) (glitch.Region, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return glitch.Region{}, nil
	}
	if len(fields) != 4 {
		return glitch.Region{}, fmt.Errorf("expected 4 coordinates (x0 y0 x1 y1), got %d", len(fields))
	}
	vals := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return glitch.Region{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		vals[i] = v
	}
	return glitch.Region{X0: vals[0], Y0: vals[1], X1: vals[2], Y1: vals[3]}, nil
}

// FormatRegion renders a region for display; the zero region reads as the whole image.
func FormatRegion(r glitch.Region) string {
	if r.IsZero() {
		return "whole image"
	}
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}
