package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// up is the fallback collision normal when two centers coincide.
var up = mgl32.Vec3{0, 1, 0}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func isFiniteVec(v mgl32.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

// direction returns the unit vector from a to b, or up when a and b coincide.
func direction(a, b mgl32.Vec3) mgl32.Vec3 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return up
	}
	return d.Mul(1 / l)
}

// distance is |b - a|.
func distance(a, b mgl32.Vec3) float32 {
	d := b.Sub(a)
	return math32.Sqrt(d.Dot(d))
}
