package imdraw

// MouseCursor identifies a software cursor sprite baked into the atlas.
type MouseCursor int

const (
	MouseCursorArrow MouseCursor = iota
	MouseCursorTextInput
	MouseCursorResizeNS
	MouseCursorResizeEW
	MouseCursorCount
)

// Cursor art: 'X' is the border layer, '.' the fill layer.
var cursorArt = [MouseCursorCount]struct {
	hotSpot Vec2
	rows    []string
}{
	MouseCursorArrow: {Vec2{0, 0}, []string{
		"X          ",
		"XX         ",
		"X.X        ",
		"X..X       ",
		"X...X      ",
		"X....X     ",
		"X.....X    ",
		"X......X   ",
		"X.......X  ",
		"X........X ",
		"X.....XXXXX",
		"X..X..X    ",
		"X.X X..X   ",
		"XX  X..X   ",
		"X    X..X  ",
		"     X..X  ",
		"      XX   ",
	}},
	MouseCursorTextInput: {Vec2{3, 6}, []string{
		"XXX XXX",
		"X..X..X",
		"XXX.XXX",
		"  X.X  ",
		"  X.X  ",
		"  X.X  ",
		"  X.X  ",
		"  X.X  ",
		"  X.X  ",
		"  X.X  ",
		"XXX.XXX",
		"X..X..X",
		"XXX XXX",
	}},
	MouseCursorResizeNS: {Vec2{4, 7}, []string{
		"    X    ",
		"   X.X   ",
		"  X...X  ",
		" X.....X ",
		"XXXX.XXXX",
		"   X.X   ",
		"   X.X   ",
		"   X.X   ",
		"   X.X   ",
		"   X.X   ",
		"XXXX.XXXX",
		" X.....X ",
		"  X...X  ",
		"   X.X   ",
		"    X    ",
	}},
	MouseCursorResizeEW: {Vec2{7, 4}, []string{
		"    X     X    ",
		"   XX     XX   ",
		"  X.X     X.X  ",
		" X..XXXXXXX..X ",
		"X.............X",
		" X..XXXXXXX..X ",
		"  X.X     X.X  ",
		"   XX     XX   ",
		"    X     X    ",
	}},
}

// cursorSprite locates a cursor inside the sheet.
type cursorSprite struct {
	x, y, w, h int
	hotSpot    Vec2
}

// The sheet starts with a 2×2 fill block used as the white texel, then
// the cursors left to right with one pixel between them. The border layer
// is stored in a second copy of the sheet to the right of the first.
var (
	cursorSprites     [MouseCursorCount]cursorSprite
	cursorSheetWidth  int
	cursorSheetHeight int
	cursorSheet       []byte // cursorSheetWidth×cursorSheetHeight, one of ' ', '.', 'X'
)

func init() {
	x := 3
	cursorSheetHeight = 2
	for i, art := range cursorArt {
		w := 0
		for _, row := range art.rows {
			w = max(w, len(row))
		}
		cursorSprites[i] = cursorSprite{x: x, w: w, h: len(art.rows), hotSpot: art.hotSpot}
		cursorSheetHeight = max(cursorSheetHeight, len(art.rows))
		x += w + 1
	}
	cursorSheetWidth = x - 1

	cursorSheet = make([]byte, cursorSheetWidth*cursorSheetHeight)
	for i := range cursorSheet {
		cursorSheet[i] = ' '
	}
	for y := range 2 {
		for x := range 2 {
			cursorSheet[y*cursorSheetWidth+x] = '.'
		}
	}
	for i, art := range cursorArt {
		s := cursorSprites[i]
		for y, row := range art.rows {
			copy(cursorSheet[(s.y+y)*cursorSheetWidth+s.x:], row)
		}
	}
}

// renderCursorSheet writes the fill layer at (x, y) and the border layer
// right after it into an Alpha8 texture of the given stride.
func renderCursorSheet(pixels []byte, stride, x, y int) {
	for sy := range cursorSheetHeight {
		row := cursorSheet[sy*cursorSheetWidth : (sy+1)*cursorSheetWidth]
		fill := pixels[(y+sy)*stride+x:]
		border := pixels[(y+sy)*stride+x+cursorSheetWidth+1:]
		for sx, c := range row {
			fill[sx] = 0
			border[sx] = 0
			switch c {
			case '.':
				fill[sx] = 0xFF
			case 'X':
				border[sx] = 0xFF
			}
		}
	}
}
