package glitch

import (
	"image"
	"sort"
)

// BandParams configures the sort of a single color channel in SortBands.
// Skip leaves that channel untouched.
type BandParams struct {
	Skip       bool
	Axis       Axis
	Descending bool
	Splitter   RunSplitter
}

func (p BandParams) validate() error {
	if p.Skip {
		return nil
	}
	if err := p.Axis.validate(); err != nil {
		return err
	}
	return validateSplitter(p.Splitter)
}

// SortBands sorts each RGB channel plane independently, using the channel's
// own value as sort key; the bands may use different axes and splitters.
// Alpha is never touched. Splitters see the band value replicated into a
// gray pixel, so a brightness Threshold degenerates to value/255.
func SortBands(img *image.NRGBA, reg Region, bands [3]BandParams) error {
	for _, b := range bands {
		if err := b.validate(); err != nil {
			return err
		}
	}
	if err := reg.validate(img); err != nil {
		return err
	}
	for c := 0; c < 3; c++ {
		if bands[c].Skip {
			continue
		}
		sortBand(img, reg, c, bands[c])
	}
	return nil
}

func sortBand(img *image.NRGBA, reg Region, ch int, p BandParams) {
	lineLen := reg.Dx()
	span := reg.Dy()
	if p.Axis == Columns {
		lineLen = reg.Dy()
		span = reg.Dx()
	}

	vals := make([]uint8, lineLen)
	gray := make([]Pixel, lineLen)
	for l := 0; l < span; l++ {
		readBandLine(img, reg, p.Axis, ch, l, vals)
		spans := []Span{{0, len(vals)}}
		if p.Splitter != nil {
			for i, v := range vals {
				gray[i] = Pixel{v, v, v, 255}
			}
			spans = p.Splitter.Runs(gray)
		}
		changed := false
		for _, s := range spans {
			if s.Hi-s.Lo < 2 {
				continue
			}
			run := vals[s.Lo:s.Hi]
			if p.Descending {
				sort.SliceStable(run, func(a, b int) bool { return run[a] > run[b] })
			} else {
				sort.SliceStable(run, func(a, b int) bool { return run[a] < run[b] })
			}
			changed = true
		}
		if changed {
			writeBandLine(img, reg, p.Axis, ch, l, vals)
		}
	}
}

func readBandLine(img *image.NRGBA, reg Region, axis Axis, ch, l int, vals []uint8) {
	if axis == Rows {
		y := reg.Y0 + l
		i := img.PixOffset(reg.X0, y) + ch
		for x := range vals {
			vals[x] = img.Pix[i]
			i += 4
		}
		return
	}
	x := reg.X0 + l
	for y := range vals {
		vals[y] = img.Pix[img.PixOffset(x, reg.Y0+y)+ch]
	}
}

func writeBandLine(img *image.NRGBA, reg Region, axis Axis, ch, l int, vals []uint8) {
	if axis == Rows {
		y := reg.Y0 + l
		i := img.PixOffset(reg.X0, y) + ch
		for x := range vals {
			img.Pix[i] = vals[x]
			i += 4
		}
		return
	}
	x := reg.X0 + l
	for y := range vals {
		img.Pix[img.PixOffset(x, reg.Y0+y)+ch] = vals[y]
	}
}
