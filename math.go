package imdraw

import "math"

const pi32 = float32(math.Pi)

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func sqrtf(x float32) float32  { return float32(math.Sqrt(float64(x))) }
func sinf(x float32) float32   { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32   { return float32(math.Cos(float64(x))) }
func acosf(x float32) float32  { return float32(math.Acos(float64(x))) }
func ceilf(x float32) float32  { return float32(math.Ceil(float64(x))) }
func floorf(x float32) float32 { return float32(math.Floor(float64(x))) }
func absf(x float32) float32   { return float32(math.Abs(float64(x))) }

// truncf rounds toward zero.
func truncf(x float32) float32 { return float32(int(x)) }

// roundf rounds half away from zero.
func roundf(x float32) float32 { return float32(math.Round(float64(x))) }

// lengthSqr returns the squared length of v.
func lengthSqr(v Vec2) float32 { return v.X*v.X + v.Y*v.Y }

// normalizeOverZero normalizes (dx, dy), leaving a zero vector unchanged.
func normalizeOverZero(dx, dy float32) (float32, float32) {
	d2 := dx*dx + dy*dy
	if d2 > 0 {
		inv := 1 / sqrtf(d2)
		dx *= inv
		dy *= inv
	}
	return dx, dy
}

// fixNormal rescales an averaged joint normal so it reaches the offset
// line, capping the factor to keep sharp joints bounded.
func fixNormal(dx, dy float32) (float32, float32) {
	const invLenMax = 100.0
	d2 := dx*dx + dy*dy
	if d2 > 0.000001 {
		invLen2 := 1 / d2
		if invLen2 > invLenMax {
			invLen2 = invLenMax
		}
		dx *= invLen2
		dy *= invLen2
	}
	return dx, dy
}

func minVec2(a, b Vec2) Vec2 { return Vec2{X: min(a.X, b.X), Y: min(a.Y, b.Y)} }
func maxVec2(a, b Vec2) Vec2 { return Vec2{X: max(a.X, b.X), Y: max(a.Y, b.Y)} }

// BezierCubicCalc returns the point at t on a cubic bezier curve.
func BezierCubicCalc(p1, p2, p3, p4 Vec2, t float32) Vec2 {
	u := 1 - t
	w1 := u * u * u
	w2 := 3 * u * u * t
	w3 := 3 * u * t * t
	w4 := t * t * t
	return Vec2{
		X: w1*p1.X + w2*p2.X + w3*p3.X + w4*p4.X,
		Y: w1*p1.Y + w2*p2.Y + w3*p3.Y + w4*p4.Y,
	}
}

// BezierQuadraticCalc returns the point at t on a quadratic bezier curve.
func BezierQuadraticCalc(p1, p2, p3 Vec2, t float32) Vec2 {
	u := 1 - t
	w1 := u * u
	w2 := 2 * u * t
	w3 := t * t
	return Vec2{
		X: w1*p1.X + w2*p2.X + w3*p3.X,
		Y: w1*p1.Y + w2*p2.Y + w3*p3.Y,
	}
}

// upperPowerOfTwo returns the smallest power of two >= v.
func upperPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
