package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Contact is one pair resolved during a detection pass. Normal points from A toward B.
type Contact struct {
	A, B   *Body
	Normal mgl32.Vec3
	Depth  float32
}

// CollisionSystem finds and resolves overlapping body pairs. It tests every pair; there is no broad phase.
type CollisionSystem struct {
	log *zap.Logger
}

// NewCollisionSystem returns a collision system that logs resolved pairs at debug level.
// A nil logger disables logging.
func NewCollisionSystem(log *zap.Logger) *CollisionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionSystem{log: log}
}

// DetectAndResolve runs one detection pass over bodies and returns the contacts it resolved.
// Each overlapping pair is separated along the contact normal, half the depth per body,
// then given elastic velocities. Every body's per-pass memo is cleared before returning.
func (cs *CollisionSystem) DetectAndResolve(bodies []*Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		bi := bodies[i]
		if bi == nil || bi.Shape == nil {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j]
			if bj == nil || bj.Shape == nil || bi == bj {
				continue
			}
			if bi.hasCollided(bj) || bj.hasCollided(bi) {
				continue
			}
			normal, depth, ok := bi.Shape.Collide(bi, bj)
			if !ok {
				continue
			}
			separate(bi, bj, normal, depth)
			respond(bi, bj)
			bi.markCollided(bj)
			bj.markCollided(bi)
			contacts = append(contacts, Contact{A: bi, B: bj, Normal: normal, Depth: depth})
			cs.log.Debug("collision resolved",
				zap.String("a", bi.Name),
				zap.String("b", bj.Name),
				zap.Float32("depth", depth),
				zap.Float32s("normal", normal[:]),
			)
		}
	}
	for _, b := range bodies {
		if b != nil {
			b.resetCollisions()
		}
	}
	return contacts
}

// separate splits the correction 50/50 regardless of mass. A kinematic body's half is dropped.
func separate(a, b *Body, normal mgl32.Vec3, depth float32) {
	half := normal.Mul(depth * 0.5)
	a.Translate(half.Mul(-1))
	b.Translate(half)
}

// respond applies v1' = ((m1-m2)v1 + 2*m2*v2) / (m1+m2) to both bodies' full velocity vectors.
// Kinematic bodies still feed their velocity into the other body's result.
func respond(a, b *Body) {
	total := a.Mass + b.Mass
	if total == 0 {
		return
	}
	v1, v2 := a.LinearVelocity, b.LinearVelocity
	a.SetVelocity(v1.Mul(a.Mass - b.Mass).Add(v2.Mul(2 * b.Mass)).Mul(1 / total))
	b.SetVelocity(v2.Mul(b.Mass - a.Mass).Add(v1.Mul(2 * a.Mass)).Mul(1 / total))
}
