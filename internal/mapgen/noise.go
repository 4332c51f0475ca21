package mapgen

import "github.com/chewxy/math32"

// heightField is seeded fractal value noise: octaves of lattice noise, each at lacunarity
// times the previous frequency and gain times the previous weight. At returns values in [0,1].
type heightField struct {
	seed       uint32
	octaves    int
	lacunarity float32
	gain       float32
}

func newHeightField(seed int64, octaves int, lacunarity, gain float32) heightField {
	return heightField{
		seed:       uint32(seed) ^ uint32(seed>>32),
		octaves:    octaves,
		lacunarity: lacunarity,
		gain:       gain,
	}
}

// At samples the field at (x, y).
func (f heightField) At(x, y float32) float32 {
	var sum, total float32
	weight, scale := float32(1), float32(1)
	for octave := 0; octave < f.octaves; octave++ {
		sum += weight * f.lattice(x*scale, y*scale, f.seed+uint32(octave)*0x9e3779b9)
		total += weight
		weight *= f.gain
		scale *= f.lacunarity
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// lattice interpolates the corner values of the unit cell holding (x, y) with a cubic fade.
func (f heightField) lattice(x, y float32, seed uint32) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	cx, cy := int32(fx), int32(fy)
	tx, ty := fade(x-fx), fade(y-fy)

	bottom := mix(corner(cx, cy, seed), corner(cx+1, cy, seed), tx)
	top := mix(corner(cx, cy+1, seed), corner(cx+1, cy+1, seed), tx)
	return mix(bottom, top, ty)
}

// corner is a deterministic value in [0,1] for lattice point (x, y).
func corner(x, y int32, seed uint32) float32 {
	h := seed ^ uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return float32(h>>8) / float32(1<<24)
}

func mix(a, b, t float32) float32 { return a + (b-a)*t }

// fade is 3t² - 2t³ clamped to [0,1].
func fade(t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return t * t * (3 - 2*t)
}
