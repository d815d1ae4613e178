package glitch

import (
	"image"
	"math"
	"sort"
)

// SortParams configures a Sort call.
//
// Mods are per-channel multipliers applied to sorted pixels only (results
// clamped to [0,255]); the zero value and {1,1,1} both leave colors alone.
type SortParams struct {
	Axis       Axis
	Key        SortKey
	Descending bool
	Splitter   RunSplitter
	Mods       [3]float64
}

func (p SortParams) validate() error {
	if err := p.Axis.validate(); err != nil {
		return err
	}
	if err := p.Key.validate(); err != nil {
		return err
	}
	if err := validateSplitter(p.Splitter); err != nil {
		return err
	}
	for _, m := range p.Mods {
		if math.IsNaN(m) || m < 0 {
			return configErrorf("color mods", "multipliers must be >= 0, got %v", p.Mods)
		}
	}
	return nil
}

func (p SortParams) modsActive() bool {
	return p.Mods != [3]float64{} && p.Mods != [3]float64{1, 1, 1}
}

// Sort reorders pixels along each scanline of the region by the chosen key,
// in place. The splitter partitions each scanline into runs and only pixels
// inside a run are reordered, each run independently. The sort is stable:
// pixels with equal keys keep their input order, for every key.
func Sort(img *image.NRGBA, reg Region, p SortParams) error {
	if err := p.validate(); err != nil {
		return err
	}
	if err := reg.validate(img); err != nil {
		return err
	}

	lineLen := reg.Dx()
	span := reg.Dy()
	if p.Axis == Columns {
		lineLen = reg.Dy()
		span = reg.Dx()
	}

	line := make([]Pixel, lineLen)
	for l := 0; l < span; l++ {
		readLine(img, reg, p.Axis, l, line)
		spans := []Span{{0, len(line)}}
		if p.Splitter != nil {
			spans = p.Splitter.Runs(line)
		}
		changed := false
		for _, s := range spans {
			if s.Hi-s.Lo < 2 && !(p.modsActive() && s.Hi > s.Lo) {
				continue
			}
			sortRun(line[s.Lo:s.Hi], p)
			changed = true
		}
		if changed {
			writeLine(img, reg, p.Axis, l, line)
		}
	}
	return nil
}

// sortRun stably sorts one run and applies the color mods to its pixels.
func sortRun(run []Pixel, p SortParams) {
	if len(run) > 1 {
		keys := make([]float64, len(run))
		for i, px := range run {
			keys[i] = keyValue(p.Key, px)
		}
		order := make([]int, len(run))
		for i := range order {
			order[i] = i
		}
		if p.Descending {
			sort.SliceStable(order, func(a, b int) bool { return keys[order[a]] > keys[order[b]] })
		} else {
			sort.SliceStable(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })
		}
		sorted := make([]Pixel, len(run))
		for i, idx := range order {
			sorted[i] = run[idx]
		}
		copy(run, sorted)
	}
	if p.modsActive() {
		for i := range run {
			for c := 0; c < 3; c++ {
				run[i][c] = clampChannel(float64(run[i][c]) * p.Mods[c])
			}
		}
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// readLine copies scanline l of the region (row or column per axis) into line.
func readLine(img *image.NRGBA, reg Region, axis Axis, l int, line []Pixel) {
	if axis == Rows {
		y := reg.Y0 + l
		i := img.PixOffset(reg.X0, y)
		for x := range line {
			copy(line[x][:], img.Pix[i:i+4])
			i += 4
		}
		return
	}
	x := reg.X0 + l
	for y := range line {
		i := img.PixOffset(x, reg.Y0+y)
		copy(line[y][:], img.Pix[i:i+4])
	}
}

// writeLine writes line back into scanline l of the region.
func writeLine(img *image.NRGBA, reg Region, axis Axis, l int, line []Pixel) {
	if axis == Rows {
		y := reg.Y0 + l
		i := img.PixOffset(reg.X0, y)
		for x := range line {
			copy(img.Pix[i:i+4], line[x][:])
			i += 4
		}
		return
	}
	x := reg.X0 + l
	for y := range line {
		i := img.PixOffset(x, reg.Y0+y)
		copy(img.Pix[i:i+4], line[y][:])
	}
}
