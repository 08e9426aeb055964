//go:build !imdraw_idx32

package imdraw

// DrawIdx is the index type. Build with the imdraw_idx32 tag for 32-bit
// indices.
type DrawIdx = uint16
