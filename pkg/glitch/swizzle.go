package glitch

import (
	"image"
	"strings"
)

// ChannelMap describes which source channel feeds each destination channel:
// destination channel i reads from source channel m[i]. A map may repeat a
// source index (duplicating a channel) but every destination slot must be
// assigned. Length 3 remaps RGB and leaves alpha untouched; length 4 also
// remaps alpha.
type ChannelMap []int

var channelIndex = map[byte]int{'r': 0, 'g': 1, 'b': 2, 'a': 3}

// ParseChannelMap builds a ChannelMap from a permutation string such as
// "brg" or "BRGA" (case-insensitive letters r, g, b, a).
func ParseChannelMap(s string) (ChannelMap, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 3 && len(s) != 4 {
		return nil, configErrorf("channel map", "want 3 or 4 channel letters, got %q", s)
	}
	m := make(ChannelMap, len(s))
	for i := 0; i < len(s); i++ {
		ch, ok := channelIndex[s[i]]
		if !ok {
			return nil, configErrorf("channel map", "unknown channel letter %q in %q", s[i], s)
		}
		m[i] = ch
	}
	return m, nil
}

func (m ChannelMap) validate() error {
	if len(m) != 3 && len(m) != 4 {
		return configErrorf("channel map", "want length 3 or 4, got %d", len(m))
	}
	for i, src := range m {
		if src < 0 || src > 3 {
			return configErrorf("channel map", "destination %d maps to out-of-range source %d", i, src)
		}
	}
	return nil
}

// Identity reports whether applying m would leave every pixel unchanged.
func (m ChannelMap) Identity() bool {
	for i, src := range m {
		if i != src {
			return false
		}
	}
	return true
}

// Swizzle remaps the channel order of every pixel in the region, in place.
// The full source pixel is read before any channel is written, so a map may
// safely swap or duplicate channels. An unmapped alpha channel passes through.
func Swizzle(img *image.NRGBA, reg Region, m ChannelMap) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := reg.validate(img); err != nil {
		return err
	}
	var px [4]uint8
	for y := reg.Y0; y < reg.Y1; y++ {
		i := img.PixOffset(reg.X0, y)
		for x := reg.X0; x < reg.X1; x++ {
			copy(px[:], img.Pix[i:i+4])
			for d, s := range m {
				img.Pix[i+d] = px[s]
			}
			i += 4
		}
	}
	return nil
}
