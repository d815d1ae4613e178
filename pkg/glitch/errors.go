package glitch

import (
	"fmt"
	"image"
)

// ConfigError reports an invalid transform parameter (out-of-range value,
// malformed channel map, unknown enum selection). It is always returned
// before any pixel is written, so the source buffer is left unchanged.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

func configErrorf(param, format string, args ...interface{}) error {
	return &ConfigError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// RegionError reports a region that is empty or falls outside the image
// bounds. Like ConfigError it is detected before any mutation.
type RegionError struct {
	Region Region
	Bounds image.Rectangle
	Reason string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("bad region (%d,%d)-(%d,%d) for bounds %v: %s",
		e.Region.X0, e.Region.Y0, e.Region.X1, e.Region.Y1, e.Bounds, e.Reason)
}
