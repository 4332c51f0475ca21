package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightFieldRange(t *testing.T) {
	f := newHeightField(99, 4, 2, 0.5)
	for x := float32(-3); x < 3; x += 0.37 {
		for y := float32(-3); y < 3; y += 0.41 {
			v := f.At(x, y)
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1))
		}
	}
}

func TestHeightFieldSeeded(t *testing.T) {
	a := newHeightField(1, 3, 2, 0.5)
	b := newHeightField(2, 3, 2, 0.5)
	assert.Equal(t, a.At(1.3, 2.7), newHeightField(1, 3, 2, 0.5).At(1.3, 2.7))

	differs := false
	for i := 0; i < 8 && !differs; i++ {
		x := float32(i) + 0.5
		differs = a.At(x, x) != b.At(x, x)
	}
	assert.True(t, differs)
}

func TestHeightFieldMatchesLatticeAtIntegerPoints(t *testing.T) {
	f := newHeightField(7, 1, 2, 0.5)
	assert.Equal(t, corner(2, 3, f.seed), f.At(2, 3))
}

func TestFade(t *testing.T) {
	assert.Zero(t, fade(-1))
	assert.Equal(t, float32(1), fade(2))
	assert.Equal(t, float32(0.5), fade(0.5))
}
