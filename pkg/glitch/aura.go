package glitch

import (
	"image"
	"math"
)

// AuraParams configures an Aura call: the offset to apply to the translucent
// copy, and the opacity of that copy over the untouched original.
type AuraParams struct {
	Offset  OffsetParams
	Opacity float64
}

func (p AuraParams) validate() error {
	if err := p.Offset.validate(); err != nil {
		return err
	}
	if math.IsNaN(p.Opacity) || p.Opacity < 0 || p.Opacity > 1 {
		return configErrorf("opacity", "must be in [0,1], got %v", p.Opacity)
	}
	return nil
}

// Aura overlays an offset copy of the region translucently on the original:
// result = round(original*(1-opacity) + shifted*opacity) per channel. The
// alpha channel blends by the same formula as RGB. The original pixels are
// not touched until the final write-back, so a failed call has no effect.
func Aura(img *image.NRGBA, reg Region, p AuraParams) error {
	if err := p.validate(); err != nil {
		return err
	}
	if err := reg.validate(img); err != nil {
		return err
	}

	shifted := CloneNRGBA(img)
	if err := Offset(shifted, reg, p.Offset); err != nil {
		return err
	}

	a := p.Opacity
	for y := reg.Y0; y < reg.Y1; y++ {
		i := img.PixOffset(reg.X0, y)
		end := img.PixOffset(reg.X1, y)
		for ; i < end; i++ {
			orig := float64(img.Pix[i])
			over := float64(shifted.Pix[i])
			img.Pix[i] = uint8(math.Round(orig*(1-a) + over*a))
		}
	}
	return nil
}
