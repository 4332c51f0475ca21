package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// ForceMode selects how AddForce folds a force into the derivative chain.
type ForceMode int

const (
	// Continuous forces are scaled by the fixed step (gravity, thrust held down over frames).
	Continuous ForceMode = iota
	// Instant forces are applied once, unscaled, as a velocity change (jump, recoil).
	Instant
)

func (m ForceMode) String() string {
	if m == Instant {
		return "instant"
	}
	return "continuous"
}

// Body is a rigid body with mass, an optional collision shape and a motion derivative chain
// up to snap. Kinematic bodies are collision targets only: forces, integration and collision
// response never move them.
type Body struct {
	ID         uuid.UUID
	Name       string
	Mass       float32
	Kinematic  bool
	UseGravity bool

	Position    mgl32.Vec3
	OldPosition mgl32.Vec3 // position written by the last fixed step

	LinearVelocity        mgl32.Vec3
	OldLinearVelocity     mgl32.Vec3
	LinearAcceleration    mgl32.Vec3
	OldLinearAcceleration mgl32.Vec3
	LinearJerk            mgl32.Vec3
	OldLinearJerk         mgl32.Vec3
	LinearSnap            mgl32.Vec3

	// Shape is optional; a body without one is integrated but never collides.
	Shape Shape

	// pending forces, consumed by the next fixed step
	accel   mgl32.Vec3
	impulse mgl32.Vec3

	collided map[*Body]struct{}
}

// BodyConfig is everything needed to construct a body.
type BodyConfig struct {
	Name       string
	Mass       float32
	Kinematic  bool
	UseGravity bool
	Shape      Shape
	Position   mgl32.Vec3
}

// NewBody validates cfg and returns a body at rest at cfg.Position.
// Non-kinematic bodies need a positive finite mass; kinematic bodies may use 0.
func NewBody(cfg BodyConfig) (*Body, error) {
	if !isFinite(cfg.Mass) || cfg.Mass < 0 || (!cfg.Kinematic && cfg.Mass == 0) {
		return nil, fmt.Errorf("body %q mass %v: %w", cfg.Name, cfg.Mass, ErrInvalidMass)
	}
	if !isFiniteVec(cfg.Position) {
		return nil, fmt.Errorf("body %q position %v: %w", cfg.Name, cfg.Position, ErrInvalidPosition)
	}
	return &Body{
		ID:          uuid.New(),
		Name:        cfg.Name,
		Mass:        cfg.Mass,
		Kinematic:   cfg.Kinematic,
		UseGravity:  cfg.UseGravity,
		Position:    cfg.Position,
		OldPosition: cfg.Position,
		Shape:       cfg.Shape,
		collided:    make(map[*Body]struct{}),
	}, nil
}

// AddForce converts force to an acceleration (force/mass) and queues it for the next fixed step.
// Kinematic bodies ignore forces.
func (b *Body) AddForce(force mgl32.Vec3, mode ForceMode) {
	if b.Kinematic {
		return
	}
	a := force.Mul(1 / b.Mass)
	switch mode {
	case Instant:
		b.impulse = b.impulse.Add(a)
	default:
		b.accel = b.accel.Add(a)
	}
}

// Translate displaces the body. The next fixed step sees the displacement as velocity.
func (b *Body) Translate(delta mgl32.Vec3) {
	if b.Kinematic {
		return
	}
	b.Position = b.Position.Add(delta)
}

// SetVelocity replaces the body's linear velocity.
func (b *Body) SetVelocity(v mgl32.Vec3) {
	if b.Kinematic {
		return
	}
	b.LinearVelocity = v
}

// CollidedCount returns how many bodies have been resolved against b in the current detection pass.
func (b *Body) CollidedCount() int {
	return len(b.collided)
}

func (b *Body) hasCollided(other *Body) bool {
	_, ok := b.collided[other]
	return ok
}

func (b *Body) markCollided(other *Body) {
	if b.collided == nil {
		b.collided = make(map[*Body]struct{})
	}
	b.collided[other] = struct{}{}
}

func (b *Body) resetCollisions() {
	clear(b.collided)
}

func (b *Body) clearForces() {
	b.accel = mgl32.Vec3{}
	b.impulse = mgl32.Vec3{}
}

// State is a copy of a body's simulation state for hosts to read after a step.
type State struct {
	ID                 uuid.UUID  `yaml:"id"`
	Name               string     `yaml:"name"`
	Kinematic          bool       `yaml:"kinematic"`
	Position           mgl32.Vec3 `yaml:"position,flow"`
	LinearVelocity     mgl32.Vec3 `yaml:"velocity,flow"`
	LinearAcceleration mgl32.Vec3 `yaml:"acceleration,flow"`
	LinearJerk         mgl32.Vec3 `yaml:"jerk,flow"`
	LinearSnap         mgl32.Vec3 `yaml:"snap,flow"`
}

// State copies b's state out. The result shares nothing with b.
func (b *Body) State() (State, error) {
	var s State
	if err := copier.Copy(&s, b); err != nil {
		return State{}, fmt.Errorf("snapshot body %q: %w", b.Name, err)
	}
	return s, nil
}
