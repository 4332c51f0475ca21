package mapgen

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"viper-physics/internal/scene"
)

// HeightMapOptions controls procedural terrain generation.
// Width/Depth are in tiles; TileSize is the world size of one tile on X/Z.
// HeightScale is the maximum height of the terrain in world units.
// Gap is left between neighbouring tiles so touching faces do not register as contacts.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type HeightMapOptions struct {
	Width       int
	Depth       int
	TileSize    float32
	HeightScale float32
	Gap         float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// minHeight keeps every tile a valid (positive height) box.
const minHeight = float32(0.15)

// DefaultHeightMapOptions returns a sane default configuration.
func DefaultHeightMapOptions() HeightMapOptions {
	return HeightMapOptions{
		Width:       8,
		Depth:       8,
		TileSize:    1.0,
		HeightScale: 2.0,
		Gap:         0.02,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

// Terrain builds a height map as a grid of kinematic box bodies sitting on Y=0, centered on
// the origin in XZ. Each tile's height comes from fractal noise.
func Terrain(opts HeightMapOptions) []scene.BodyDef {
	if opts.Width <= 0 || opts.Depth <= 0 {
		return nil
	}
	if opts.TileSize <= 0 {
		opts.TileSize = 1
	}
	if opts.HeightScale <= minHeight {
		opts.HeightScale = 1
	}
	if opts.Gap < 0 || opts.Gap >= opts.TileSize {
		opts.Gap = 0
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 0.05
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// First tile center is at (-extentX + halfTile, -extentZ + halfTile).
	halfTile := opts.TileSize * 0.5
	startX := -float32(opts.Width)*halfTile + halfTile
	startZ := -float32(opts.Depth)*halfTile + halfTile
	side := opts.TileSize - opts.Gap

	field := newHeightField(seed, opts.Octaves, opts.Lacunarity, opts.Gain)
	tiles := make([]scene.BodyDef, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := field.At(float32(x)*opts.Frequency, float32(z)*opts.Frequency)
			height := minHeight + h*(opts.HeightScale-minHeight)
			if math32.IsNaN(height) || math32.IsInf(height, 0) || height <= 0 {
				height = minHeight
			}
			tiles = append(tiles, scene.BodyDef{
				Name:      fmt.Sprintf("terrain-%d-%d", x, z),
				Kinematic: true,
				// bottom at Y=0
				Position: [3]float32{startX + float32(x)*opts.TileSize, height * 0.5, startZ + float32(z)*opts.TileSize},
				Shape:    &scene.ShapeDef{Type: "box", Size: [3]float32{side, height, side}},
			})
		}
	}
	return tiles
}
