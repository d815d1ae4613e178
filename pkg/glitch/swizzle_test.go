package glitch

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func makeSolid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}

func getPixel(img *image.NRGBA, x, y int) color.NRGBA {
	i := img.PixOffset(x, y)
	return color.NRGBA{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

func samePix(t *testing.T, got, want *image.NRGBA) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds mismatch: got %v want %v", got.Bounds(), want.Bounds())
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel data mismatch at byte %d: got %d want %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestParseChannelMap(t *testing.T) {
	m, err := ParseChannelMap("BRG")
	if err != nil {
		t.Fatalf("ParseChannelMap failed: %v", err)
	}
	if len(m) != 3 || m[0] != 2 || m[1] != 0 || m[2] != 1 {
		t.Fatalf("unexpected map for BRG: %v", m)
	}
	if _, err := ParseChannelMap("rx"); err == nil {
		t.Fatalf("expected error for short map")
	}
	var ce *ConfigError
	_, err = ParseChannelMap("rgx")
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError for bad letter, got %v", err)
	}
}

func TestSwizzleIdentity(t *testing.T) {
	src := makeSolid(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	setPixel(src, 3, 2, color.NRGBA{R: 99, G: 88, B: 77, A: 66})
	want := CloneNRGBA(src)
	if err := Swizzle(src, WholeImage(src), ChannelMap{0, 1, 2, 3}); err != nil {
		t.Fatalf("Swizzle failed: %v", err)
	}
	samePix(t, src, want)
}

func TestSwizzleInvolution(t *testing.T) {
	src := makeSolid(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	setPixel(src, 0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	want := CloneNRGBA(src)
	swap := ChannelMap{2, 1, 0} // swap R and B
	reg := WholeImage(src)
	if err := Swizzle(src, reg, swap); err != nil {
		t.Fatalf("first Swizzle failed: %v", err)
	}
	if got := getPixel(src, 0, 0); got != (color.NRGBA{R: 50, G: 100, B: 200, A: 255}) {
		t.Fatalf("swap did not move channels: %v", got)
	}
	if err := Swizzle(src, reg, swap); err != nil {
		t.Fatalf("second Swizzle failed: %v", err)
	}
	samePix(t, src, want)
}

func TestSwizzleDuplicateChannelAndAlphaPassthrough(t *testing.T) {
	src := makeSolid(2, 2, color.NRGBA{R: 11, G: 22, B: 33, A: 44})
	// every destination reads the green channel; alpha unmapped
	if err := Swizzle(src, WholeImage(src), ChannelMap{1, 1, 1}); err != nil {
		t.Fatalf("Swizzle failed: %v", err)
	}
	got := getPixel(src, 1, 1)
	if got != (color.NRGBA{R: 22, G: 22, B: 22, A: 44}) {
		t.Fatalf("unexpected pixel after duplicate swizzle: %v", got)
	}
}

func TestSwizzleRegionOnly(t *testing.T) {
	src := makeSolid(4, 4, color.NRGBA{R: 100, G: 0, B: 0, A: 255})
	reg := Region{X0: 1, Y0: 1, X1: 3, Y1: 3}
	if err := Swizzle(src, reg, ChannelMap{2, 1, 0}); err != nil {
		t.Fatalf("Swizzle failed: %v", err)
	}
	if got := getPixel(src, 0, 0); got != (color.NRGBA{R: 100, G: 0, B: 0, A: 255}) {
		t.Fatalf("pixel outside region changed: %v", got)
	}
	if got := getPixel(src, 2, 2); got != (color.NRGBA{R: 0, G: 0, B: 100, A: 255}) {
		t.Fatalf("pixel inside region not swizzled: %v", got)
	}
}

func TestSwizzleBadMapLeavesBufferUnchanged(t *testing.T) {
	src := makeSolid(3, 3, color.NRGBA{R: 7, G: 8, B: 9, A: 10})
	want := CloneNRGBA(src)
	err := Swizzle(src, WholeImage(src), ChannelMap{0, 1})
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	samePix(t, src, want)
}
