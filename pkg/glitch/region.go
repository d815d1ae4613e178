package glitch

import (
	"image"
)

// Region is a rectangle of pixels targeted by a single transform call.
// Coordinates are in the image's own coordinate space; X0/Y0 are inclusive
// and X1/Y1 exclusive, matching image.Rectangle conventions.
//
// The zero Region is treated by the engine as "the whole image".
type Region struct {
	X0, Y0, X1, Y1 int
}

// Dx returns the region width in pixels.
func (r Region) Dx() int { return r.X1 - r.X0 }

// Dy returns the region height in pixels.
func (r Region) Dy() int { return r.Y1 - r.Y0 }

// Empty reports whether the region contains no pixels.
func (r Region) Empty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }

// IsZero reports whether r is the zero value ("whole image" at the engine layer).
func (r Region) IsZero() bool { return r == Region{} }

// WholeImage returns the region covering every pixel of img.
func WholeImage(img *image.NRGBA) Region {
	b := img.Bounds()
	return Region{X0: b.Min.X, Y0: b.Min.Y, X1: b.Max.X, Y1: b.Max.Y}
}

// validate checks that r is non-empty and lies fully inside img's bounds.
// Every transform calls this before touching a single pixel.
func (r Region) validate(img *image.NRGBA) error {
	if img == nil {
		return &RegionError{Region: r, Reason: "nil image"}
	}
	b := img.Bounds()
	if r.Empty() {
		return &RegionError{Region: r, Bounds: b, Reason: "empty region"}
	}
	if r.X0 < b.Min.X || r.Y0 < b.Min.Y || r.X1 > b.Max.X || r.Y1 > b.Max.Y {
		return &RegionError{Region: r, Bounds: b, Reason: "region outside image bounds"}
	}
	return nil
}

// ToNRGBA converts any image.Image to *image.NRGBA (non-premultiplied RGBA).
// When src is already NRGBA a copy is returned so callers never alias the input.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok {
		out := image.NewNRGBA(n.Rect)
		copy(out.Pix, n.Pix)
		return out
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b_, a := src.At(x, y).RGBA()
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(b_ >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

// CloneNRGBA returns a copy of the provided image.NRGBA.
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}
