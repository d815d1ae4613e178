package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal preview for glitched images.
//
// Backend order: kitty graphics protocol (chunked base64 in ESC _G ... ESC \),
// then the iTerm2-style OSC 1337 inline file sequence (also spoken by WezTerm,
// Warp, Tabby, VSCode and friends), then an external sixel renderer
// (img2sixel), then chafa as a universal block-character fallback.
// PREVIEW_BACKEND forces a specific backend; PREVIEW_DEBUG=1 traces decisions
// to stderr.

var previewDebug bool

func init() {
	// runs after config.go's init has loaded .env
	d := os.Getenv("PREVIEW_DEBUG")
	previewDebug = d == "1" || d == "true"
}

func debugf(format string, args ...interface{}) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "glitchart-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	// ghostty implements the kitty graphics protocol
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return false
}

// isInlineImageCapable detects terminals speaking the iTerm2 OSC 1337
// inline-image protocol, by TERM_PROGRAM and common TERM substrings.
func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby":
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") ||
		strings.Contains(term, "tabby") || strings.Contains(term, "vscode") {
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

// isSixelCapable is heuristic; SIXEL_PREVIEW=1 forces it on.
func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "mlterm") {
		return true
	}
	// Windows Terminal supports sixel in recent versions
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether the running terminal can likely display an
// inline preview. chafa counts as a valid fallback.
func PreviewSupported() bool {
	supported := isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
	debugf("PreviewSupported -> %v (kitty=%v inline=%v sixel=%v chafa=%v)",
		supported, isKitty(), isInlineImageCapable(), isSixelCapable(), hasChafa())
	return supported
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // approximate pixel width (Cols * cellWidth)
	PixelHeight int // approximate pixel height (Rows * cellHeight)
}

// computePreviewSize maps an image's pixel dimensions into a character-cell
// placement, preserving aspect ratio and never scaling up.
func computePreviewSize(img image.Image) PreviewSize {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	const charW = 8
	const charH = 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 80, 40

	scaleW := float64(maxCols*charW) / float64(w)
	scaleH := float64(maxRows*charH) / float64(h)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))

	if cols < minCols {
		cols = minCols
	}
	if cols > maxCols {
		cols = maxCols
	}
	if rows < minRows {
		rows = minRows
	}
	if rows > maxRows {
		rows = maxRows
	}

	return PreviewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * charW,
		PixelHeight: rows * charH,
	}
}

// postImageNewlines picks a small number of blank lines to print after a
// rendered image so the prompt lands just below it.
func postImageNewlines(requestedRows int) int {
	switch {
	case requestedRows <= 0:
		return 1
	case requestedRows <= 2:
		return 1
	case requestedRows <= 6:
		return 2
	case requestedRows <= 20:
		return 3
	default:
		return 4
	}
}

// PreviewImage encodes an image to the requested container format ("png",
// "jpeg"; anything else becomes PNG) and renders it in the terminal.
func PreviewImage(img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	f := strings.ToLower(format)
	// kitty wants PNG payloads
	if backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); backend == "kitty" || (backend == "" && isKitty()) {
		f = "png"
	}
	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
	} else {
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	return previewBytes(buf.Bytes(), f, computePreviewSize(img))
}

// previewBytes routes encoded image bytes to the best available backend.
func previewBytes(blob []byte, format string, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}

	type sender struct {
		name string
		ok   func() bool
		send func([]byte, string, PreviewSize) error
	}
	senders := []sender{
		{"kitty", isKitty, sendKittyImage},
		{"inline", isInlineImageCapable, sendInlineImage},
		{"sixel", isSixelCapable, sendSixelImage},
		{"chafa", hasChafa, sendChafaImage},
	}

	// PREVIEW_BACKEND tries the named backend first, then the normal order.
	if v := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); v != "" {
		debugf("PREVIEW_BACKEND override: %s", v)
		for _, s := range senders {
			if s.name == v || (s.name == "inline" && (v == "iterm" || v == "wezterm")) {
				if err := s.send(blob, format, size); err == nil {
					return nil
				} else {
					debugf("override %s failed: %v", s.name, err)
				}
			}
		}
	}

	var lastErr error
	for _, s := range senders {
		if !s.ok() {
			continue
		}
		debugf("attempting %s backend", s.name)
		if err := s.send(blob, format, size); err != nil {
			debugf("%s backend failed: %v", s.name, err)
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("preview failed: %w", lastErr)
	}
	return fmt.Errorf("no preview protocol matched")
}

// sendKittyImage transmits the payload via the kitty graphics protocol,
// chunking the base64 into <=4096-byte pieces per the spec. The first chunk
// carries placement (c, r); q=2 suppresses terminal responses.
func sendKittyImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	debugf("sendKittyImage %d bytes (raw %s), placement cols=%d rows=%d",
		len(data), format, size.Cols, size.Rows)

	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	total := len(enc)
	first := true
	for pos := 0; pos < total; pos += chunkSize {
		end := pos + chunkSize
		if end > total {
			end = total
		}
		chunk := enc[pos:end]
		mVal := "1"
		if end == total {
			mVal = "0"
		}

		var seq string
		if first {
			// a=T transmit+display, f=100 PNG, t=d direct payload
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, mVal, chunk)
			first = false
		} else {
			seq = "\x1b_Gm=" + mVal + ";" + chunk + "\x1b\\"
		}
		if _, err := os.Stdout.Write([]byte(seq)); err != nil {
			return err
		}
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}

// sendInlineImage emits the iTerm2-style OSC 1337 inline file sequence.
func sendInlineImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	name := "preview.png"
	if strings.HasPrefix(strings.ToLower(format), "j") {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=" + name + ";inline=1;" + meta + ":" + enc + "\a"
	n, err := os.Stdout.Write([]byte(seq))
	debugf("wrote %d bytes for inline image (err=%v)", n, err)

	for i := 0; i < postImageNewlines(0); i++ {
		fmt.Println()
	}
	return err
}

// sendSixelImage pipes the payload to an external sixel renderer (img2sixel),
// falling back to chafa. Writing a sixel encoder here is not worth it.
func sendSixelImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err == nil {
		for i := 0; i < postImageNewlines(0); i++ {
			fmt.Println()
		}
		return nil
	} else {
		debugf("img2sixel failed: %v", err)
	}

	return sendChafaImage(data, format, size)
}

// sendChafaImage invokes chafa for a block-symbol rendering that works in
// most terminals. CHAFA_FILL and CHAFA_SYMBOLS override the defaults.
func sendChafaImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	if os.Getenv("NO_CHAFA") == "1" {
		return fmt.Errorf("chafa usage disabled via NO_CHAFA=1")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}

	debugf("sendChafaImage %d bytes (format=%s)", len(data), format)

	fill := "block"
	if f := os.Getenv("CHAFA_FILL"); f != "" {
		fill = f
	}
	symbols := "block"
	if s := os.Getenv("CHAFA_SYMBOLS"); s != "" {
		symbols = s
	}
	args := []string{
		"--fill=" + fill,
		"--symbols=" + symbols,
		"-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows),
		"-",
	}

	cmd := exec.Command("chafa", args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}
