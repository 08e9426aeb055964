// Package rectpack implements skyline bottom-left rectangle packing.
//
// A Context tracks the skyline of an area of fixed width and a height
// ceiling. Pack may be called repeatedly against the same Context to place
// further batches of rectangles into the space that remains.
package rectpack

import "slices"

// Rect is a rectangle to place. Pack only writes X, Y and WasPacked.
type Rect struct {
	ID        int
	W, H      int
	X, Y      int
	WasPacked bool
}

// node is one skyline segment. It starts at x, has height y and extends to
// the start of the next node (or to the context width for the last node).
type node struct {
	x, y int
}

// Context holds the packing state.
type Context struct {
	width  int
	height int

	skyline []node
	scratch []node
	order   []int
}

// NewContext returns a packer for an area of the given width with a height
// ceiling.
func NewContext(width, height int) *Context {
	c := &Context{
		width:   width,
		height:  height,
		skyline: make([]node, 0, 64),
		scratch: make([]node, 0, 64),
	}
	c.skyline = append(c.skyline, node{x: 0, y: 0})
	return c
}

// Pack places rects, tallest first, at the lowest available position with
// the least wasted area below them. It reports whether every rectangle was
// placed. Rectangles with zero width or height are packed at (0,0).
func (c *Context) Pack(rects []Rect) bool {
	c.order = c.order[:0]
	for i := range rects {
		c.order = append(c.order, i)
	}
	slices.SortStableFunc(c.order, func(a, b int) int {
		ra, rb := &rects[a], &rects[b]
		if ra.H != rb.H {
			return rb.H - ra.H
		}
		return rb.W - ra.W
	})

	all := true
	for _, i := range c.order {
		r := &rects[i]
		if r.W == 0 || r.H == 0 {
			r.X, r.Y = 0, 0
			r.WasPacked = true
			continue
		}
		x, y, ok := c.findPosition(r.W, r.H)
		if !ok {
			r.WasPacked = false
			all = false
			continue
		}
		c.place(x, r.W, y+r.H)
		r.X, r.Y = x, y
		r.WasPacked = true
	}
	return all
}

// segmentEnd returns the x coordinate where skyline node i ends.
func (c *Context) segmentEnd(i int) int {
	if i+1 < len(c.skyline) {
		return c.skyline[i+1].x
	}
	return c.width
}

// findPosition scans every node start for the bottom-left fit.
func (c *Context) findPosition(w, h int) (x, y int, ok bool) {
	bestY, bestWaste := -1, 0
	for i := range c.skyline {
		start := c.skyline[i].x
		end := start + w
		if end > c.width {
			break
		}

		top := 0
		for j := i; j < len(c.skyline) && c.skyline[j].x < end; j++ {
			top = max(top, c.skyline[j].y)
		}
		if top+h > c.height {
			continue
		}

		waste := 0
		for j := i; j < len(c.skyline) && c.skyline[j].x < end; j++ {
			span := min(c.segmentEnd(j), end) - c.skyline[j].x
			waste += span * (top - c.skyline[j].y)
		}

		if bestY < 0 || top < bestY || (top == bestY && waste < bestWaste) {
			x, bestY, bestWaste = start, top, waste
		}
	}
	if bestY < 0 {
		return 0, 0, false
	}
	return x, bestY, true
}

// place raises the skyline over [x, x+w) to top.
func (c *Context) place(x, w, top int) {
	end := x + w
	next := c.scratch[:0]
	for i, n := range c.skyline {
		nEnd := c.segmentEnd(i)
		switch {
		case n.x < x:
			next = append(next, n)
		case n.x == x:
			next = append(next, node{x: x, y: top})
			if nEnd > end {
				next = append(next, node{x: end, y: n.y})
			}
		case n.x < end:
			if nEnd > end {
				next = append(next, node{x: end, y: n.y})
			}
		default:
			next = append(next, n)
		}
	}

	// Merge neighbours of equal height.
	merged := next[:1]
	for _, n := range next[1:] {
		if n.y == merged[len(merged)-1].y {
			continue
		}
		merged = append(merged, n)
	}

	c.scratch = c.skyline[:0]
	c.skyline = merged
}
