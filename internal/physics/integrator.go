package physics

import "github.com/go-gl/mathgl/mgl32"

// Integrator advances one body's derivative chain by a fixed step.
type Integrator struct {
	Gravity mgl32.Vec3
}

// Integrate applies gravity, re-derives the derivative chain from the body's history and
// integrates it forward by dt: snap -> jerk -> acceleration -> velocity -> position.
//
// Velocity is estimated from the position history, so any displacement since the last step
// (collision correction, host teleport) shows up as velocity. Jerk and snap are derived
// from the change in applied acceleration. Kinematic bodies only drop their pending forces.
// A non-positive or non-finite dt is ignored.
func (in Integrator) Integrate(b *Body, dt float32) {
	if b.Kinematic {
		b.clearForces()
		return
	}
	if !isFinite(dt) || dt <= 0 {
		return
	}
	if b.UseGravity {
		b.AddForce(in.Gravity.Mul(b.Mass), Continuous)
	}
	inv := 1 / dt

	velocity := b.LinearVelocity.Add(b.Position.Sub(b.OldPosition).Mul(inv))
	jerk := b.accel.Sub(b.LinearAcceleration).Mul(inv)
	snap := jerk.Sub(b.LinearJerk).Mul(inv)

	b.OldLinearVelocity = b.LinearVelocity
	b.OldLinearAcceleration = b.LinearAcceleration
	b.OldLinearJerk = b.LinearJerk
	b.LinearSnap = snap

	b.LinearJerk = b.OldLinearJerk.Add(b.LinearSnap.Mul(dt))
	b.LinearAcceleration = b.OldLinearAcceleration.Add(b.LinearJerk.Mul(dt))
	b.LinearVelocity = velocity.Add(b.LinearAcceleration.Mul(dt)).Add(b.impulse)
	b.Position = b.Position.Add(b.LinearVelocity.Mul(dt))
	b.OldPosition = b.Position

	b.clearForces()
}
