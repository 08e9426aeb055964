package imdraw

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the font atlas.
var (
	// ErrEmptyFontData is returned when a font source has no bytes.
	ErrEmptyFontData = errors.New("imdraw: empty font data")
	// ErrInvalidFontData is returned when font bytes cannot be parsed.
	// The whole atlas build fails.
	ErrInvalidFontData = errors.New("imdraw: invalid font data")
)

// FontConfigError reports an invalid FontConfig field.
type FontConfigError struct {
	Field  string
	Reason string
}

func (e *FontConfigError) Error() string {
	return fmt.Sprintf("imdraw: invalid font config %s: %s", e.Field, e.Reason)
}

// assert panics when a programming contract is violated.
func assert(cond bool, msg string) {
	if !cond {
		panic("imdraw: " + msg)
	}
}
