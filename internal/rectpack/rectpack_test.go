package rectpack

import "testing"

func overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPack_AllFitWithoutOverlap(t *testing.T) {
	var rects []Rect
	for i := 0; i < 200; i++ {
		rects = append(rects, Rect{ID: i, W: 3 + i%11, H: 4 + (i*7)%13})
	}
	c := NewContext(256, 4096)
	if !c.Pack(rects) {
		t.Fatal("Pack() = false, want true")
	}
	for i, a := range rects {
		if !a.WasPacked {
			t.Fatalf("rect %d not packed", i)
		}
		if a.X < 0 || a.X+a.W > 256 || a.Y < 0 || a.Y+a.H > 4096 {
			t.Errorf("rect %d out of bounds: %+v", i, a)
		}
		for j := i + 1; j < len(rects); j++ {
			if overlaps(a, rects[j]) {
				t.Errorf("rect %d overlaps rect %d", i, j)
			}
		}
	}
}

func TestPack_DoesNotMutateSize(t *testing.T) {
	rects := []Rect{{W: 10, H: 20}, {W: 30, H: 5}}
	NewContext(64, 64).Pack(rects)
	if rects[0].W != 10 || rects[0].H != 20 || rects[1].W != 30 || rects[1].H != 5 {
		t.Errorf("sizes changed: %+v", rects)
	}
}

func TestPack_ZeroSize(t *testing.T) {
	rects := []Rect{{W: 0, H: 10, X: 5, Y: 5}, {W: 10, H: 0}}
	if !NewContext(16, 16).Pack(rects) {
		t.Fatal("Pack() = false, want true")
	}
	for _, r := range rects {
		if !r.WasPacked || r.X != 0 || r.Y != 0 {
			t.Errorf("zero-size rect = %+v, want packed at origin", r)
		}
	}
}

func TestPack_HeightCeiling(t *testing.T) {
	rects := []Rect{{W: 8, H: 8}, {W: 8, H: 8}, {W: 8, H: 8}}
	c := NewContext(8, 16)
	if c.Pack(rects) {
		t.Fatal("Pack() = true, want false")
	}
	packed := 0
	for _, r := range rects {
		if r.WasPacked {
			packed++
		}
	}
	if packed != 2 {
		t.Errorf("packed %d rects, want 2", packed)
	}
}

func TestPack_RepeatedCalls(t *testing.T) {
	c := NewContext(32, 1024)
	first := []Rect{{W: 32, H: 10}}
	second := []Rect{{W: 16, H: 4}, {W: 16, H: 4}}
	if !c.Pack(first) || !c.Pack(second) {
		t.Fatal("Pack() = false, want true")
	}
	for _, r := range second {
		if r.Y < 10 {
			t.Errorf("second batch rect %+v overlaps first batch", r)
		}
	}
	if second[0].Y != 10 || second[1].Y != 10 {
		t.Errorf("second batch Y = %d, %d, want 10, 10", second[0].Y, second[1].Y)
	}
}

func TestPack_TallestFirst(t *testing.T) {
	rects := []Rect{{ID: 0, W: 4, H: 2}, {ID: 1, W: 4, H: 9}}
	NewContext(8, 64).Pack(rects)
	if rects[1].X != 0 || rects[1].Y != 0 {
		t.Errorf("tallest rect at (%d,%d), want (0,0)", rects[1].X, rects[1].Y)
	}
	if rects[0].X != 4 || rects[0].Y != 0 {
		t.Errorf("short rect at (%d,%d), want (4,0)", rects[0].X, rects[0].Y)
	}
}
