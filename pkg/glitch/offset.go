package glitch

import (
	"image"
	"math"
)

// Axis selects the scanline direction of a transform.
type Axis int

const (
	Rows Axis = iota
	Columns
)

func (a Axis) validate() error {
	if a != Rows && a != Columns {
		return configErrorf("axis", "unknown axis %d", int(a))
	}
	return nil
}

// Wave selects the displacement function of an Offset transform.
type Wave int

const (
	// Linear ramps the displacement from 0 to Amplitude across the span.
	Linear Wave = iota
	Sine
	Cosine
	// SineCosine averages the sine and cosine displacements.
	SineCosine
)

func (w Wave) validate() error {
	if w < Linear || w > SineCosine {
		return configErrorf("wave", "unknown wave %d", int(w))
	}
	return nil
}

// OffsetParams configures an Offset call.
//
// Amplitude is in pixels, Frequency in cycles per full span, Phase in radians.
// All three accept non-integer values; the resulting displacement is rounded
// half away from zero (math.Round) to the nearest sample position.
type OffsetParams struct {
	Axis      Axis
	Wave      Wave
	Amplitude float64
	Frequency float64
	Phase     float64
}

func (p OffsetParams) validate() error {
	if err := p.Axis.validate(); err != nil {
		return err
	}
	if err := p.Wave.validate(); err != nil {
		return err
	}
	if math.IsNaN(p.Amplitude) || math.IsInf(p.Amplitude, 0) {
		return configErrorf("amplitude", "must be finite, got %v", p.Amplitude)
	}
	if math.IsNaN(p.Frequency) || math.IsInf(p.Frequency, 0) {
		return configErrorf("frequency", "must be finite, got %v", p.Frequency)
	}
	if math.IsNaN(p.Phase) || math.IsInf(p.Phase, 0) {
		return configErrorf("phase", "must be finite, got %v", p.Phase)
	}
	return nil
}

// displacement computes the rounded shift for scanline index line (0-based
// within the region) out of span scanlines.
func (p OffsetParams) displacement(line, span int) int {
	t := float64(line) / float64(span)
	if p.Wave == Linear {
		return int(math.Round(p.Amplitude * t))
	}
	theta := 2*math.Pi*p.Frequency*t + p.Phase
	switch p.Wave {
	case Sine:
		return int(math.Round(p.Amplitude * math.Sin(theta)))
	case Cosine:
		return int(math.Round(p.Amplitude * math.Cos(theta)))
	default: // SineCosine
		return int(math.Round(p.Amplitude * (math.Sin(theta) + math.Cos(theta)) / 2))
	}
}

// Offset circularly shifts each scanline of the region by a displacement
// computed from its index, in place. Positive displacement moves content
// toward increasing index; content leaving the region edge re-enters at the
// opposite region edge (the wrap is bounded by the region, not the image).
func Offset(img *image.NRGBA, reg Region, p OffsetParams) error {
	if err := p.validate(); err != nil {
		return err
	}
	if err := reg.validate(img); err != nil {
		return err
	}

	if p.Axis == Rows {
		n := reg.Dx()
		span := reg.Dy()
		scratch := make([]uint8, n*4)
		for line := 0; line < span; line++ {
			k := wrapShift(p.displacement(line, span), n)
			if k == 0 {
				continue
			}
			y := reg.Y0 + line
			row := img.Pix[img.PixOffset(reg.X0, y):img.PixOffset(reg.X1, y)]
			rotatePixels(scratch, row, k)
		}
		return nil
	}

	n := reg.Dy()
	span := reg.Dx()
	scratch := make([]uint8, n*4)
	col := make([]uint8, n*4)
	for line := 0; line < span; line++ {
		k := wrapShift(p.displacement(line, span), n)
		if k == 0 {
			continue
		}
		x := reg.X0 + line
		for y := 0; y < n; y++ {
			i := img.PixOffset(x, reg.Y0+y)
			copy(col[y*4:y*4+4], img.Pix[i:i+4])
		}
		rotatePixels(scratch, col, k)
		for y := 0; y < n; y++ {
			i := img.PixOffset(x, reg.Y0+y)
			copy(img.Pix[i:i+4], col[y*4:y*4+4])
		}
	}
	return nil
}

// wrapShift normalizes a displacement to [0,n) so rotations always move
// content toward increasing index.
func wrapShift(d, n int) int {
	k := d % n
	if k < 0 {
		k += n
	}
	return k
}

// rotatePixels rotates a packed 4-byte-per-pixel line right by k pixels,
// using scratch (len >= len(line)) as the staging buffer.
func rotatePixels(scratch, line []uint8, k int) {
	n := len(line) / 4
	split := (n - k) * 4
	copy(scratch, line[split:])
	copy(scratch[k*4:], line[:split])
	copy(line, scratch[:len(line)])
}
