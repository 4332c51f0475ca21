package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"viper-physics/internal/physics"
)

// ErrUnknownShape is returned for a shape type other than sphere, box or plane.
var ErrUnknownShape = errors.New("unknown shape type")

// Definition is a scene file: optional world gravity and the bodies in simulation order.
// Order matters: in each pair the earlier body's shape runs the collision test, so planes
// should be listed before the bodies resting on them.
type Definition struct {
	Gravity *[3]float32 `json:"gravity,omitempty" yaml:"gravity,omitempty,flow"`
	Bodies  []BodyDef   `json:"bodies" yaml:"bodies"`
}

// BodyDef describes one body. Gravity maps to the body's UseGravity flag.
type BodyDef struct {
	Name      string     `json:"name" yaml:"name"`
	Mass      float32    `json:"mass" yaml:"mass"`
	Kinematic bool       `json:"kinematic,omitempty" yaml:"kinematic,omitempty"`
	Gravity   bool       `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	Position  [3]float32 `json:"position" yaml:"position,flow"`
	Shape     *ShapeDef  `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// ShapeDef describes a collision shape. Type is "sphere" (Radius), "box" (Size = length,
// width, height) or "plane" (Size[0], Size[1] = length, width; Normal).
type ShapeDef struct {
	Type   string     `json:"type" yaml:"type"`
	Radius float32    `json:"radius,omitempty" yaml:"radius,omitempty"`
	Size   [3]float32 `json:"size,omitempty" yaml:"size,omitempty,flow"`
	Normal [3]float32 `json:"normal,omitempty" yaml:"normal,omitempty,flow"`
}

// Default returns the demo scene: two 3 kg unit boxes above a kinematic 10x10 ground plane.
func Default() Definition {
	return Definition{
		Bodies: []BodyDef{
			{
				Name:      "ground",
				Kinematic: true,
				Shape:     &ShapeDef{Type: "plane", Size: [3]float32{10, 10, 0}, Normal: [3]float32{0, 1, 0}},
			},
			{
				Name:     "box-a",
				Mass:     3,
				Gravity:  true,
				Position: [3]float32{0, 3, 0},
				Shape:    &ShapeDef{Type: "box", Size: [3]float32{1, 1, 1}},
			},
			{
				Name:     "box-b",
				Mass:     3,
				Gravity:  true,
				Position: [3]float32{0.5, 5, 0},
				Shape:    &ShapeDef{Type: "box", Size: [3]float32{1, 1, 1}},
			},
		},
	}
}

// Shape builds the physics shape for d.
func (d ShapeDef) Shape() (physics.Shape, error) {
	switch strings.ToLower(d.Type) {
	case "sphere":
		return physics.NewSphere(d.Radius)
	case "box", "cube":
		return physics.NewBox(d.Size[0], d.Size[1], d.Size[2])
	case "plane":
		return physics.NewPlane(d.Size[0], d.Size[1], mgl32.Vec3(d.Normal))
	default:
		return nil, fmt.Errorf("%q: %w", d.Type, ErrUnknownShape)
	}
}

// Body builds the physics body for d.
func (d BodyDef) Body() (*physics.Body, error) {
	cfg := physics.BodyConfig{
		Name:       d.Name,
		Mass:       d.Mass,
		Kinematic:  d.Kinematic,
		UseGravity: d.Gravity,
		Position:   mgl32.Vec3(d.Position),
	}
	if d.Shape != nil {
		shape, err := d.Shape.Shape()
		if err != nil {
			return nil, err
		}
		cfg.Shape = shape
	}
	return physics.NewBody(cfg)
}

// Build returns a world holding every body in def, in order. Errors name the failing body
// by index and name.
func Build(def Definition, log *zap.Logger) (*physics.World, error) {
	w := physics.NewWorld(log)
	if def.Gravity != nil {
		if err := w.SetGravity(mgl32.Vec3(*def.Gravity)); err != nil {
			return nil, err
		}
	}
	for i, bd := range def.Bodies {
		b, err := bd.Body()
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, bd.Name, err)
		}
		if err := w.AddBody(b); err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, bd.Name, err)
		}
	}
	return w, nil
}
