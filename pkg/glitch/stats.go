package glitch

// Pixel is one NRGBA sample in channel order R, G, B, A.
type Pixel [4]uint8

// SortKey selects the metric that orders pixels within a run.
type SortKey int

const (
	// Brightness is a fast perceived-brightness estimate:
	// (2R + 3G + B) / (6*255), in [0,1].
	Brightness SortKey = iota
	Hue
	Saturation
	Red
	Green
	Blue
)

func (k SortKey) validate() error {
	if k < Brightness || k > Blue {
		return configErrorf("sort key", "unknown key %d", int(k))
	}
	return nil
}

// brightness returns the perceived brightness of a pixel in [0,1].
// The weighting (2R + 3G + B)/6 is deliberately cheap; it only has to
// order pixels, not measure luminance accurately.
func brightness(p Pixel) float64 {
	return float64(2*int(p[0])+3*int(p[1])+int(p[2])) / (6 * 255)
}

// rgbToHsv converts r, g, b in [0,1] to h, s, v in [0,1] using the classic
// max/min formulation (hue 0 for achromatic pixels).
func rgbToHsv(r, g, b float64) (h, s, v float64) {
	maxc := r
	if g > maxc {
		maxc = g
	}
	if b > maxc {
		maxc = b
	}
	minc := r
	if g < minc {
		minc = g
	}
	if b < minc {
		minc = b
	}
	v = maxc
	if maxc == minc {
		return 0, 0, v
	}
	d := maxc - minc
	s = d / maxc
	rc := (maxc - r) / d
	gc := (maxc - g) / d
	bc := (maxc - b) / d
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h /= 6
	h -= float64(int(h)) // modulo 1
	if h < 0 {
		h += 1
	}
	return h, s, v
}

// keyValue computes the sort metric for p under key k.
func keyValue(k SortKey, p Pixel) float64 {
	switch k {
	case Brightness:
		return brightness(p)
	case Hue:
		h, _, _ := rgbToHsv(float64(p[0])/255, float64(p[1])/255, float64(p[2])/255)
		return h
	case Saturation:
		_, s, _ := rgbToHsv(float64(p[0])/255, float64(p[1])/255, float64(p[2])/255)
		return s
	case Red:
		return float64(p[0])
	case Green:
		return float64(p[1])
	default:
		return float64(p[2])
	}
}
