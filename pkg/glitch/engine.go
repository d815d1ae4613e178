package glitch

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Apply runs a named glitch command with string args on img and returns a new
// image; the source is never mutated, even on error. A zero reg means the
// whole image. This is the entry point for the CLI and for scripts that
// drive the transforms with textual parameters.
func Apply(img image.Image, reg Region, commandName string, args []string) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	dst := ToNRGBA(img)
	if reg.IsZero() {
		reg = WholeImage(dst)
	}

	switch commandName {
	case "swizzle":
		// swizzle <channels>
		if len(args) != 1 {
			return nil, fmt.Errorf("swizzle requires 1 arg: channels (e.g. brg)")
		}
		m, err := ParseChannelMap(args[0])
		if err != nil {
			return nil, err
		}
		if err := Swizzle(dst, reg, m); err != nil {
			return nil, err
		}
		return dst, nil

	case "offset":
		p, rest, err := parseOffsetParams(args)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("offset: unexpected trailing args %v", rest)
		}
		if err := Offset(dst, reg, p); err != nil {
			return nil, err
		}
		return dst, nil

	case "aura":
		// aura <axis> <wave> <amplitude> <frequency> <phase> <opacity>
		if len(args) != 6 {
			return nil, fmt.Errorf("aura requires 6 args: axis wave amplitude frequency phase opacity")
		}
		p, rest, err := parseOffsetParams(args)
		if err != nil {
			return nil, err
		}
		opacity, err := parseUnitValue(rest[0])
		if err != nil {
			return nil, fmt.Errorf("invalid opacity: %w", err)
		}
		if err := Aura(dst, reg, AuraParams{Offset: p, Opacity: opacity}); err != nil {
			return nil, err
		}
		return dst, nil

	case "pixelsort":
		// pixelsort <axis> <key> <direction> [splitter args...] [mods r g b]
		if len(args) < 3 {
			return nil, fmt.Errorf("pixelsort requires at least 3 args: axis key direction")
		}
		axis, err := ParseAxis(args[0])
		if err != nil {
			return nil, err
		}
		key, err := ParseSortKey(args[1])
		if err != nil {
			return nil, err
		}
		desc, err := parseDirection(args[2])
		if err != nil {
			return nil, err
		}
		p := SortParams{Axis: axis, Key: key, Descending: desc}
		rest := args[3:]
		p.Splitter, rest, err = parseSplitter(rest)
		if err != nil {
			return nil, err
		}
		p.Mods, rest, err = parseMods(rest)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("pixelsort: unexpected trailing args %v", rest)
		}
		if err := Sort(dst, reg, p); err != nil {
			return nil, err
		}
		return dst, nil

	case "bandsort":
		// bandsort <axis> <direction> [splitter args...]
		if len(args) < 2 {
			return nil, fmt.Errorf("bandsort requires at least 2 args: axis direction")
		}
		axis, err := ParseAxis(args[0])
		if err != nil {
			return nil, err
		}
		desc, err := parseDirection(args[1])
		if err != nil {
			return nil, err
		}
		sp, rest, err := parseSplitter(args[2:])
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("bandsort: unexpected trailing args %v", rest)
		}
		band := BandParams{Axis: axis, Descending: desc, Splitter: sp}
		if err := SortBands(dst, reg, [3]BandParams{band, band, band}); err != nil {
			return nil, err
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("unsupported glitch command: %s", commandName)
	}
}

// parseOffsetParams consumes the leading five offset args (axis wave
// amplitude frequency phase) and returns whatever follows.
func parseOffsetParams(args []string) (OffsetParams, []string, error) {
	var p OffsetParams
	if len(args) < 5 {
		return p, nil, fmt.Errorf("offset requires 5 args: axis wave amplitude frequency phase")
	}
	axis, err := ParseAxis(args[0])
	if err != nil {
		return p, nil, err
	}
	wave, err := ParseWave(args[1])
	if err != nil {
		return p, nil, err
	}
	amp, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return p, nil, fmt.Errorf("invalid amplitude: %w", err)
	}
	freq, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return p, nil, fmt.Errorf("invalid frequency: %w", err)
	}
	phase, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return p, nil, fmt.Errorf("invalid phase: %w", err)
	}
	p = OffsetParams{Axis: axis, Wave: wave, Amplitude: amp, Frequency: freq, Phase: phase}
	return p, args[5:], nil
}

// ParseAxis maps "rows"/"columns" (and short forms) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rows", "row", "r":
		return Rows, nil
	case "columns", "column", "cols", "col", "c":
		return Columns, nil
	default:
		return 0, configErrorf("axis", "unknown axis %q (want rows or columns)", s)
	}
}

// ParseWave maps a displacement-function name to a Wave.
func ParseWave(s string) (Wave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "sine", "sin":
		return Sine, nil
	case "cosine", "cos":
		return Cosine, nil
	case "sinecosine", "sincos", "sine+cosine":
		return SineCosine, nil
	default:
		return 0, configErrorf("wave", "unknown wave %q (want linear, sine, cosine or sinecosine)", s)
	}
}

// ParseSortKey maps a key name to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brightness":
		return Brightness, nil
	case "hue":
		return Hue, nil
	case "saturation", "sat":
		return Saturation, nil
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	default:
		return 0, configErrorf("sort key", "unknown key %q", s)
	}
}

func parseDirection(s string) (descending bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return false, nil
	case "desc", "descending":
		return true, nil
	default:
		return false, configErrorf("direction", "unknown direction %q (want asc or desc)", s)
	}
}

// parseUnitValue parses a [0,1] value, accepting percent forms like "40%".
func parseUnitValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return v / 100.0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseSplitter consumes an optional splitter spec from args:
//
//	threshold <low> <high> | shutter <size> | varshutter <min> <max> <seed>
func parseSplitter(args []string) (RunSplitter, []string, error) {
	if len(args) == 0 {
		return nil, args, nil
	}
	switch strings.ToLower(args[0]) {
	case "threshold":
		if len(args) < 3 {
			return nil, nil, fmt.Errorf("threshold requires 2 args: low high")
		}
		low, err := parseUnitValue(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid threshold low: %w", err)
		}
		high, err := parseUnitValue(args[2])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid threshold high: %w", err)
		}
		return Threshold{Low: low, High: high}, args[3:], nil
	case "shutter":
		if len(args) < 2 {
			return nil, nil, fmt.Errorf("shutter requires 1 arg: size")
		}
		size, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid shutter size: %w", err)
		}
		return Shutter{Size: size}, args[2:], nil
	case "varshutter":
		if len(args) < 4 {
			return nil, nil, fmt.Errorf("varshutter requires 3 args: min max seed")
		}
		min, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid varshutter min: %w", err)
		}
		max, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid varshutter max: %w", err)
		}
		seed, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid varshutter seed: %w", err)
		}
		return &VariableShutter{Min: min, Max: max, Seed: seed}, args[4:], nil
	case "tracer":
		if len(args) < 4 {
			return nil, nil, fmt.Errorf("tracer requires 3 args: length border variance")
		}
		length, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid tracer length: %w", err)
		}
		border, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid tracer border width: %w", err)
		}
		variance, err := parseUnitValue(args[3])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid tracer variance threshold: %w", err)
		}
		return Tracer{Length: length, BorderWidth: border, VarianceThreshold: variance}, args[4:], nil
	default:
		return nil, args, nil
	}
}

// parseMods consumes an optional "mods <r> <g> <b>" multiplier spec.
func parseMods(args []string) ([3]float64, []string, error) {
	var mods [3]float64
	if len(args) == 0 || strings.ToLower(args[0]) != "mods" {
		return mods, args, nil
	}
	if len(args) < 4 {
		return mods, nil, fmt.Errorf("mods requires 3 args: r g b multipliers")
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return mods, nil, fmt.Errorf("invalid mod multiplier: %w", err)
		}
		mods[i] = v
	}
	return mods, args[4:], nil
}
