// Package glitch: authoritative registry of glitch commands.
//
// This file mirrors the commands implemented in Apply in engine.go. Keep
// this list up-to-date when you add or modify commands so callers (CLI,
// docs, help text) can read a single source of truth.

package glitch

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "enum", "string", etc.
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of glitch commands implemented by Apply.
var Commands = []CommandSpec{
	{
		Name:        "swizzle",
		Args:        []ArgSpec{{"channels", "string", true, "", "channel order, e.g. brg or bgra"}},
		Usage:       "swizzle <channels>",
		Description: "Remap the channel order of every pixel (e.g. brg swaps red and blue).",
	},
	{
		Name: "offset",
		Args: []ArgSpec{
			{"axis", "enum", true, "", "rows or columns"},
			{"wave", "enum", true, "", "linear, sine, cosine or sinecosine"},
			{"amplitude", "float", true, "", "shift amplitude in pixels"},
			{"frequency", "float", true, "", "cycles per full span"},
			{"phase", "float", true, "", "phase offset in radians"},
		},
		Usage:       "offset <axis> <wave> <amplitude> <frequency> <phase>",
		Description: "Circularly shift each scanline by a wave-shaped displacement.",
	},
	{
		Name: "aura",
		Args: []ArgSpec{
			{"axis", "enum", true, "", "rows or columns"},
			{"wave", "enum", true, "", "linear, sine, cosine or sinecosine"},
			{"amplitude", "float", true, "", "shift amplitude in pixels"},
			{"frequency", "float", true, "", "cycles per full span"},
			{"phase", "float", true, "", "phase offset in radians"},
			{"opacity", "percent", true, "", "overlay opacity, 0-1 or e.g. 40%"},
		},
		Usage:       "aura <axis> <wave> <amplitude> <frequency> <phase> <opacity>",
		Description: "Overlay an offset copy translucently on the original.",
	},
	{
		Name: "pixelsort",
		Args: []ArgSpec{
			{"axis", "enum", true, "", "rows or columns"},
			{"key", "enum", true, "", "brightness, hue, saturation, red, green or blue"},
			{"direction", "enum", true, "", "asc or desc"},
			{"splitter", "string", false, "", "threshold <low> <high> | shutter <size> | varshutter <min> <max> <seed> | tracer <length> <border> <variance>"},
			{"mods", "string", false, "", "mods <r> <g> <b> multipliers for sorted pixels"},
		},
		Usage:       "pixelsort <axis> <key> <direction> [splitter...] [mods r g b]",
		Description: "Sort pixel runs along each scanline by a color key.",
	},
	{
		Name: "bandsort",
		Args: []ArgSpec{
			{"axis", "enum", true, "", "rows or columns"},
			{"direction", "enum", true, "", "asc or desc"},
			{"splitter", "string", false, "", "threshold <low> <high> | shutter <size> | varshutter <min> <max> <seed> | tracer <length> <border> <variance>"},
		},
		Usage:       "bandsort <axis> <direction> [splitter...]",
		Description: "Sort each RGB channel plane independently by its own value.",
	},
}
