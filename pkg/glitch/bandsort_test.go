package glitch

import (
	"image"
	"image/color"
	"testing"
)

func TestSortBandsIndependentChannels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	setPixel(src, 0, 0, color.NRGBA{R: 3, G: 9, B: 2, A: 200})
	setPixel(src, 1, 0, color.NRGBA{R: 1, G: 4, B: 8, A: 100})
	band := BandParams{Axis: Rows}
	if err := SortBands(src, WholeImage(src), [3]BandParams{band, band, band}); err != nil {
		t.Fatalf("SortBands failed: %v", err)
	}
	// each channel plane sorts on its own; alpha untouched
	if got := getPixel(src, 0, 0); got != (color.NRGBA{R: 1, G: 4, B: 2, A: 200}) {
		t.Fatalf("x=0 = %v", got)
	}
	if got := getPixel(src, 1, 0); got != (color.NRGBA{R: 3, G: 9, B: 8, A: 100}) {
		t.Fatalf("x=1 = %v", got)
	}
}

func TestSortBandsSkip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	setPixel(src, 0, 0, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
	setPixel(src, 1, 0, color.NRGBA{R: 1, G: 1, B: 1, A: 255})
	bands := [3]BandParams{
		{Axis: Rows},
		{Skip: true},
		{Skip: true},
	}
	if err := SortBands(src, WholeImage(src), bands); err != nil {
		t.Fatalf("SortBands failed: %v", err)
	}
	if got := getPixel(src, 0, 0); got != (color.NRGBA{R: 1, G: 9, B: 9, A: 255}) {
		t.Fatalf("only red should sort, got %v", got)
	}
}

func TestSortBandsDescendingWithThreshold(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(src, 0, 0, color.NRGBA{R: 10, A: 255})
	setPixel(src, 1, 0, color.NRGBA{R: 40, A: 255})
	setPixel(src, 2, 0, color.NRGBA{R: 200, A: 255})
	// threshold sees band values as gray pixels: includes value <= 51
	band := BandParams{Axis: Rows, Descending: true, Splitter: Threshold{Low: 0, High: 0.2}}
	if err := SortBands(src, WholeImage(src), [3]BandParams{band, {Skip: true}, {Skip: true}}); err != nil {
		t.Fatalf("SortBands failed: %v", err)
	}
	got := []uint8{getPixel(src, 0, 0).R, getPixel(src, 1, 0).R, getPixel(src, 2, 0).R}
	if got[0] != 40 || got[1] != 10 || got[2] != 200 {
		t.Fatalf("red band = %v, want [40 10 200]", got)
	}
}
