package glitch

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func grayRow(vals ...uint8) *image.NRGBA {
	return makeRampRow(vals...)
}

func TestSortAscendingBrightness(t *testing.T) {
	// gray pixels have brightness v/255, so these sort by their value
	src := grayRow(200, 50, 120, 10)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Brightness}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	got := rowValues(src, 0)
	want := []uint8{10, 50, 120, 200}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted row = %v, want %v", got, want)
		}
	}
}

func TestSortDescending(t *testing.T) {
	src := grayRow(200, 50, 120, 10)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Brightness, Descending: true}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	got := rowValues(src, 0)
	want := []uint8{200, 120, 50, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted row = %v, want %v", got, want)
		}
	}
}

func TestSortStability(t *testing.T) {
	// (255,0,0) and (0,170,0) both have brightness 510/(6*255); stable sort
	// must keep their input order while the dark pixel moves to the front
	a := color.NRGBA{R: 255, A: 255}
	b := color.NRGBA{G: 170, A: 255}
	dark := color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(src, 0, 0, b)
	setPixel(src, 1, 0, a)
	setPixel(src, 2, 0, dark)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Brightness}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if getPixel(src, 0, 0) != dark || getPixel(src, 1, 0) != b || getPixel(src, 2, 0) != a {
		t.Fatalf("stability violated: %v %v %v", getPixel(src, 0, 0), getPixel(src, 1, 0), getPixel(src, 2, 0))
	}
}

func TestSortStabilityHueKey(t *testing.T) {
	// (255,0,0) and (128,0,0) share hue 0; stable sort keeps their input
	// order while blue (hue 2/3) moves behind them
	brightRed := color.NRGBA{R: 255, A: 255}
	darkRed := color.NRGBA{R: 128, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(src, 0, 0, blue)
	setPixel(src, 1, 0, brightRed)
	setPixel(src, 2, 0, darkRed)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Hue}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if getPixel(src, 0, 0) != brightRed || getPixel(src, 1, 0) != darkRed || getPixel(src, 2, 0) != blue {
		t.Fatalf("hue stability violated: %v %v %v", getPixel(src, 0, 0), getPixel(src, 1, 0), getPixel(src, 2, 0))
	}
}

func TestSortStabilityRedKey(t *testing.T) {
	// equal red channel, different green; ties keep input order
	a := color.NRGBA{R: 100, G: 200, A: 255}
	b := color.NRGBA{R: 100, G: 50, A: 255}
	low := color.NRGBA{R: 10, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(src, 0, 0, a)
	setPixel(src, 1, 0, b)
	setPixel(src, 2, 0, low)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Red}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if getPixel(src, 0, 0) != low || getPixel(src, 1, 0) != a || getPixel(src, 2, 0) != b {
		t.Fatalf("red-key stability violated: %v %v %v", getPixel(src, 0, 0), getPixel(src, 1, 0), getPixel(src, 2, 0))
	}
}

func TestSortHueKey(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}     // hue 0
	green := color.NRGBA{G: 255, A: 255}   // hue 1/3
	blue := color.NRGBA{B: 255, A: 255}    // hue 2/3
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(src, 0, 0, blue)
	setPixel(src, 1, 0, green)
	setPixel(src, 2, 0, red)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Hue}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if getPixel(src, 0, 0) != red || getPixel(src, 1, 0) != green || getPixel(src, 2, 0) != blue {
		t.Fatalf("hue sort wrong: %v %v %v", getPixel(src, 0, 0), getPixel(src, 1, 0), getPixel(src, 2, 0))
	}
}

func TestSortSaturationKey(t *testing.T) {
	gray := color.NRGBA{R: 100, G: 100, B: 100, A: 255} // s = 0
	pale := color.NRGBA{R: 255, G: 128, B: 128, A: 255} // s ~ 0.498
	full := color.NRGBA{R: 255, A: 255}                 // s = 1
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(src, 0, 0, full)
	setPixel(src, 1, 0, gray)
	setPixel(src, 2, 0, pale)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Saturation}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if getPixel(src, 0, 0) != gray || getPixel(src, 1, 0) != pale || getPixel(src, 2, 0) != full {
		t.Fatalf("saturation sort wrong: %v %v %v", getPixel(src, 0, 0), getPixel(src, 1, 0), getPixel(src, 2, 0))
	}
}

func TestSortColumns(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 3))
	setPixel(src, 0, 0, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	setPixel(src, 0, 1, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	setPixel(src, 0, 2, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	if err := Sort(src, WholeImage(src), SortParams{Axis: Columns, Key: Brightness}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	want := []uint8{10, 50, 90}
	for y, v := range want {
		if getPixel(src, 0, y).R != v {
			t.Fatalf("column after sort: y=%d got %d want %d", y, getPixel(src, 0, y).R, v)
		}
	}
}

func TestSortThresholdRunsAreBarriers(t *testing.T) {
	// threshold includes brightness <= 51/255 (values <= 51); 200 is a barrier
	src := grayRow(40, 10, 200, 30, 20)
	p := SortParams{Axis: Rows, Key: Brightness, Splitter: Threshold{Low: 0, High: 0.2}}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	got := rowValues(src, 0)
	want := []uint8{10, 40, 200, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row = %v, want %v", got, want)
		}
	}
}

func TestSortThresholdExcludingAllIsIdentity(t *testing.T) {
	src := grayRow(40, 10, 30, 20)
	want := CloneNRGBA(src)
	p := SortParams{Axis: Rows, Key: Brightness, Splitter: Threshold{Low: 0.9, High: 1}}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	samePix(t, src, want)
}

func TestSortShutterRuns(t *testing.T) {
	src := grayRow(5, 1, 9, 3, 7)
	p := SortParams{Axis: Rows, Key: Brightness, Splitter: Shutter{Size: 2}}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	got := rowValues(src, 0)
	want := []uint8{1, 5, 3, 9, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row = %v, want %v", got, want)
		}
	}
}

func TestSortTracerRuns(t *testing.T) {
	// brightness of gray v is v/255. Borders sit where adjacent pixels
	// differ by >= 0.25: at x=2 (10 vs 200) and x=5 (50 vs 130). Each
	// border starts a 3-pixel trail that sorts; everything else stays put.
	src := grayRow(10, 10, 10, 200, 90, 50, 130, 20)
	p := SortParams{
		Axis:     Rows,
		Key:      Brightness,
		Splitter: Tracer{Length: 3, BorderWidth: 2, VarianceThreshold: 0.25},
	}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	got := rowValues(src, 0)
	want := []uint8{10, 10, 10, 90, 200, 20, 50, 130}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row = %v, want %v", got, want)
		}
	}
}

func TestSortTracerFlatLineIsIdentity(t *testing.T) {
	// no brightness step ever reaches the threshold, so no trail fires
	src := grayRow(50, 50, 50, 50, 50, 50)
	want := CloneNRGBA(src)
	p := SortParams{
		Axis:     Rows,
		Key:      Brightness,
		Splitter: Tracer{Length: 3, BorderWidth: 2, VarianceThreshold: 0.25},
	}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	samePix(t, src, want)
}

func TestSortVariableShutterDeterministic(t *testing.T) {
	mk := func() *image.NRGBA {
		img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
		r := rand.New(rand.NewSource(11))
		for i := range img.Pix {
			img.Pix[i] = uint8(r.Intn(256))
		}
		return img
	}
	a := mk()
	b := mk()
	pa := SortParams{Axis: Rows, Key: Brightness, Splitter: &VariableShutter{Min: 3, Max: 9, Seed: 5}}
	pb := SortParams{Axis: Rows, Key: Brightness, Splitter: &VariableShutter{Min: 3, Max: 9, Seed: 5}}
	if err := Sort(a, WholeImage(a), pa); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if err := Sort(b, WholeImage(b), pb); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	samePix(t, a, b)
}

func TestSortPreservesPixelMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	src := image.NewNRGBA(image.Rect(0, 0, 31, 17))
	for i := range src.Pix {
		src.Pix[i] = uint8(rng.Intn(256))
	}
	before := CloneNRGBA(src)
	p := SortParams{Axis: Rows, Key: Brightness, Splitter: Threshold{Low: 0.2, High: 0.8}}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	// sorting reorders within scanlines only, so each row keeps its multiset
	for y := 0; y < 17; y++ {
		counts := map[Pixel]int{}
		var px Pixel
		for x := 0; x < 31; x++ {
			i := before.PixOffset(x, y)
			copy(px[:], before.Pix[i:i+4])
			counts[px]++
			i = src.PixOffset(x, y)
			copy(px[:], src.Pix[i:i+4])
			counts[px]--
		}
		for k, v := range counts {
			if v != 0 {
				t.Fatalf("row %d: pixel %v count off by %d", y, k, v)
			}
		}
	}
}

func TestSortModsApplyToSortedPixelsOnly(t *testing.T) {
	src := grayRow(100, 50)
	p := SortParams{Axis: Rows, Key: Brightness, Mods: [3]float64{2, 1, 0.5}}
	if err := Sort(src, WholeImage(src), p); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if got := getPixel(src, 0, 0); got != (color.NRGBA{R: 100, G: 50, B: 25, A: 255}) {
		t.Fatalf("x=0 after mods = %v", got)
	}
	if got := getPixel(src, 1, 0); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Fatalf("x=1 after mods = %v", got)
	}
}

func TestSortSingleRunNoop(t *testing.T) {
	src := grayRow(42)
	want := CloneNRGBA(src)
	if err := Sort(src, WholeImage(src), SortParams{Axis: Rows, Key: Brightness}); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	samePix(t, src, want)
}

func TestSortRejectsBadParams(t *testing.T) {
	src := grayRow(1, 2)
	want := CloneNRGBA(src)
	var ce *ConfigError
	cases := []SortParams{
		{Axis: Axis(7), Key: Brightness},
		{Axis: Rows, Key: SortKey(42)},
		{Axis: Rows, Key: Brightness, Splitter: Threshold{Low: 0.8, High: 0.2}},
		{Axis: Rows, Key: Brightness, Splitter: Shutter{Size: 0}},
		{Axis: Rows, Key: Brightness, Splitter: &VariableShutter{Min: 4, Max: 2}},
		{Axis: Rows, Key: Brightness, Splitter: Tracer{Length: 0, BorderWidth: 2, VarianceThreshold: 0.25}},
		{Axis: Rows, Key: Brightness, Splitter: Tracer{Length: 3, BorderWidth: 1, VarianceThreshold: 0.25}},
		{Axis: Rows, Key: Brightness, Splitter: Tracer{Length: 3, BorderWidth: 2, VarianceThreshold: 0}},
		{Axis: Rows, Key: Brightness, Mods: [3]float64{-1, 1, 1}},
	}
	for i, p := range cases {
		err := Sort(src, WholeImage(src), p)
		if !errors.As(err, &ce) {
			t.Fatalf("case %d: expected ConfigError, got %v", i, err)
		}
	}
	samePix(t, src, want)
}

func BenchmarkSortBrightnessRows(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	src := image.NewNRGBA(image.Rect(0, 0, 512, 512))
	for i := range src.Pix {
		src.Pix[i] = uint8(rng.Intn(256))
	}
	p := SortParams{Axis: Rows, Key: Brightness, Splitter: Threshold{Low: 0.25, High: 0.75}}
	reg := WholeImage(src)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work := CloneNRGBA(src)
		_ = Sort(work, reg, p)
	}
}
