package glitch

import (
	"math"
	"math/rand"
)

// Span is a half-open interval [Lo,Hi) of pixel indices within one scanline.
type Span struct {
	Lo, Hi int
}

// A RunSplitter partitions a scanline into the runs that participate in a
// sort. Pixels outside every returned span keep their position and value,
// acting as sort barriers. A nil splitter means one run per scanline.
type RunSplitter interface {
	Runs(line []Pixel) []Span
}

// Threshold includes pixels whose brightness lies in [Low, High]; each
// maximal contiguous included span becomes one run.
type Threshold struct {
	Low, High float64
}

func (t Threshold) validate() error {
	if t.Low < 0 || t.Low > 1 || t.High < 0 || t.High > 1 {
		return configErrorf("threshold", "low/high must be in [0,1], got %v/%v", t.Low, t.High)
	}
	if t.Low > t.High {
		return configErrorf("threshold", "low %v exceeds high %v", t.Low, t.High)
	}
	return nil
}

func (t Threshold) Runs(line []Pixel) []Span {
	var spans []Span
	start := -1
	for i, p := range line {
		b := brightness(p)
		if b >= t.Low && b <= t.High {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, Span{start, i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, Span{start, len(line)})
	}
	return spans
}

// Shutter splits every scanline into fixed-length chunks of Size pixels
// (the last chunk may be shorter).
type Shutter struct {
	Size int
}

func (s Shutter) validate() error {
	if s.Size < 1 {
		return configErrorf("shutter", "size must be >= 1, got %d", s.Size)
	}
	return nil
}

func (s Shutter) Runs(line []Pixel) []Span {
	var spans []Span
	for lo := 0; lo < len(line); lo += s.Size {
		hi := lo + s.Size
		if hi > len(line) {
			hi = len(line)
		}
		spans = append(spans, Span{lo, hi})
	}
	return spans
}

// VariableShutter splits scanlines into chunks of random length between Min
// and Max pixels. The chunk sequence is drawn from a generator seeded with
// Seed on first use, so a fresh value yields identical runs for a given
// image and parameter set.
type VariableShutter struct {
	Min, Max int
	Seed     int64

	rng *rand.Rand
}

func (v *VariableShutter) validate() error {
	if v.Min < 1 {
		return configErrorf("variable shutter", "min must be >= 1, got %d", v.Min)
	}
	if v.Max < v.Min {
		return configErrorf("variable shutter", "max %d below min %d", v.Max, v.Min)
	}
	return nil
}

func (v *VariableShutter) Runs(line []Pixel) []Span {
	if v.rng == nil {
		v.rng = rand.New(rand.NewSource(v.Seed))
	}
	var spans []Span
	lo := 0
	for lo < len(line) {
		hi := lo + v.Min + v.rng.Intn(v.Max-v.Min+1)
		if hi > len(line) {
			hi = len(line)
		}
		spans = append(spans, Span{lo, hi})
		lo = hi
	}
	return spans
}

// Tracer detects borders along a scanline and turns the trail behind each
// border into a run. A pixel is a border when every one of the next
// BorderWidth-1 pixels differs from it in brightness by at least
// VarianceThreshold; the Length pixels starting there become the run and the
// scan resumes past the trail. Pixels between trails stay in place, so edges
// in the image smear while flat areas survive.
type Tracer struct {
	Length            int
	BorderWidth       int
	VarianceThreshold float64
}

func (t Tracer) validate() error {
	if t.Length < 1 {
		return configErrorf("tracer", "length must be >= 1, got %d", t.Length)
	}
	if t.BorderWidth < 2 {
		return configErrorf("tracer", "border width must be >= 2, got %d", t.BorderWidth)
	}
	if t.VarianceThreshold <= 0 || t.VarianceThreshold > 1 {
		return configErrorf("tracer", "variance threshold must be in (0,1], got %v", t.VarianceThreshold)
	}
	return nil
}

func (t Tracer) Runs(line []Pixel) []Span {
	var spans []Span
	n := len(line)
	x := 0
	for x < n-t.BorderWidth {
		stop := x + t.BorderWidth
		if stop > n {
			stop = n
		}
		atBorder := true
		for x2 := x + 1; x2 < stop; x2++ {
			if math.Abs(brightness(line[x])-brightness(line[x2])) < t.VarianceThreshold {
				atBorder = false
				break
			}
		}
		if !atBorder {
			x++
			continue
		}
		hi := x + t.Length
		if hi > n {
			hi = n
		}
		spans = append(spans, Span{x, hi})
		x = hi
	}
	return spans
}

// validateSplitter checks the splitters this package ships. Caller-provided
// implementations are trusted to keep spans inside the scanline.
func validateSplitter(s RunSplitter) error {
	switch sp := s.(type) {
	case nil:
		return nil
	case Threshold:
		return sp.validate()
	case Shutter:
		return sp.validate()
	case *VariableShutter:
		return sp.validate()
	case Tracer:
		return sp.validate()
	default:
		return nil
	}
}
