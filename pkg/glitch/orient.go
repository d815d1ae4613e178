package glitch

import (
	"image"
)

// AutoOrient normalizes an image to EXIF orientation 1. orientation follows
// the EXIF spec (1..8); values outside that range return the image as-is.
func AutoOrient(img image.Image, orientation int) image.Image {
	if img == nil {
		return nil
	}
	if orientation <= 1 || orientation > 8 {
		return img
	}
	src := ToNRGBA(img)
	switch orientation {
	case 2:
		return flop(src)
	case 3:
		return rotate180(src)
	case 4:
		return flip(src)
	case 5:
		return flop(rotate90CW(src))
	case 6:
		return rotate90CW(src)
	case 7:
		return flop(rotate90CCW(src))
	case 8:
		return rotate90CCW(src)
	default:
		return img
	}
}

func flip(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(b.Min.X+x, b.Min.Y+h-1-y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

func flop(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(b.Min.X+w-1-x, b.Min.Y+y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

func rotate180(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(b.Min.X+w-1-x, b.Min.Y+h-1-y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

func rotate90CW(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(h-1-y, x)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

func rotate90CCW(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(y, w-1-x)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}
