//go:build imdraw_idx32

package imdraw

// DrawIdx is the index type.
type DrawIdx = uint32
