package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultGravity is the gravitational acceleration applied to gravity-enabled bodies (-Y is down).
var DefaultGravity = mgl32.Vec3{0, -9.81, 0}

// World holds an ordered set of bodies and the two step entry points of a real-time loop:
// StepFixed at the physics rate (forces + integration) and StepVariable once per rendered
// frame (collision detection and response). Call StepFixed before StepVariable in a cycle.
// A World is not safe for concurrent use.
type World struct {
	Gravity mgl32.Vec3
	Bodies  []*Body

	collisions *CollisionSystem
	log        *zap.Logger
}

// NewWorld returns an empty world with DefaultGravity. A nil logger disables logging.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		Gravity:    DefaultGravity,
		collisions: NewCollisionSystem(log),
		log:        log,
	}
}

// SetGravity sets the gravity vector (e.g. {0, -9.81, 0}). A non-finite vector is rejected
// and the current gravity kept.
func (w *World) SetGravity(g mgl32.Vec3) error {
	if !isFiniteVec(g) {
		return fmt.Errorf("gravity %v: %w", g, ErrInvalidGravity)
	}
	w.Gravity = g
	return nil
}

// AddBody appends b. Order is preserved and decides which shape tests a pair.
func (w *World) AddBody(b *Body) error {
	if b == nil {
		return ErrNilBody
	}
	for _, existing := range w.Bodies {
		if existing == b {
			return fmt.Errorf("body %q: %w", b.Name, ErrDuplicateBody)
		}
	}
	w.Bodies = append(w.Bodies, b)
	w.log.Debug("body added",
		zap.String("name", b.Name),
		zap.Stringer("id", b.ID),
		zap.Float32("mass", b.Mass),
		zap.Bool("kinematic", b.Kinematic),
	)
	return nil
}

// StepFixed integrates every body by dt in list order.
func (w *World) StepFixed(dt float32) error {
	return StepFixed(w.Bodies, w.Gravity, dt)
}

// StepVariable runs one collision detection pass and returns the resolved contacts.
func (w *World) StepVariable() []Contact {
	return w.collisions.DetectAndResolve(w.Bodies)
}

// Snapshot copies out the state of every body in list order.
func (w *World) Snapshot() ([]State, error) {
	out := make([]State, 0, len(w.Bodies))
	for _, b := range w.Bodies {
		s, err := b.State()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// StepFixed integrates bodies by dt under gravity. dt must be positive and finite and
// gravity finite; otherwise no body moves.
func StepFixed(bodies []*Body, gravity mgl32.Vec3, dt float32) error {
	if !isFinite(dt) || dt <= 0 {
		return fmt.Errorf("dt %v: %w", dt, ErrInvalidStep)
	}
	if !isFiniteVec(gravity) {
		return fmt.Errorf("gravity %v: %w", gravity, ErrInvalidGravity)
	}
	in := Integrator{Gravity: gravity}
	for _, b := range bodies {
		if b == nil {
			continue
		}
		in.Integrate(b, dt)
	}
	return nil
}

// StepVariable runs one unlogged collision detection pass over bodies.
func StepVariable(bodies []*Body) []Contact {
	return NewCollisionSystem(nil).DetectAndResolve(bodies)
}
