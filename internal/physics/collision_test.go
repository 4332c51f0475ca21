package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDetectAndResolveSpheres(t *testing.T) {
	a := newTestBody(t, mustSphere(t, 1), mgl32.Vec3{0, 0, 0})
	b := newTestBody(t, mustSphere(t, 1), mgl32.Vec3{1.5, 0, 0})
	a.LinearVelocity = mgl32.Vec3{1, 0, 0}
	b.LinearVelocity = mgl32.Vec3{-1, 0, 0}

	contacts := NewCollisionSystem(nil).DetectAndResolve([]*Body{a, b})
	require.Len(t, contacts, 1)
	assert.Same(t, a, contacts[0].A)
	assert.Same(t, b, contacts[0].B)
	assert.InDelta(t, 0.5, contacts[0].Depth, 1e-6)

	// half the depth each way
	assert.InDelta(t, -0.25, a.Position.X(), 1e-6)
	assert.InDelta(t, 1.75, b.Position.X(), 1e-6)

	// equal masses swap velocities
	assert.InDelta(t, -1, a.LinearVelocity.X(), 1e-6)
	assert.InDelta(t, 1, b.LinearVelocity.X(), 1e-6)
}

func TestElasticResponseUsesFullVectors(t *testing.T) {
	a, err := NewBody(BodyConfig{Name: "light", Mass: 1, Shape: mustSphere(t, 1)})
	require.NoError(t, err)
	b, err := NewBody(BodyConfig{Name: "heavy", Mass: 3, Shape: mustSphere(t, 1), Position: mgl32.Vec3{1, 0, 0}})
	require.NoError(t, err)
	a.LinearVelocity = mgl32.Vec3{2, 1, 0}
	b.LinearVelocity = mgl32.Vec3{0, 0, -1}

	NewCollisionSystem(nil).DetectAndResolve([]*Body{a, b})

	// v1' = ((1-3)v1 + 6 v2) / 4, v2' = ((3-1)v2 + 2 v1) / 4
	assert.True(t, a.LinearVelocity.ApproxEqualThreshold(mgl32.Vec3{-1, -0.5, -1.5}, 1e-5), "a velocity %v", a.LinearVelocity)
	assert.True(t, b.LinearVelocity.ApproxEqualThreshold(mgl32.Vec3{1, 0.5, -0.5}, 1e-5), "b velocity %v", b.LinearVelocity)
}

func TestKinematicBodyIsNeverMoved(t *testing.T) {
	wall, err := NewBody(BodyConfig{Name: "wall", Mass: 5, Kinematic: true, Shape: mustBox(t, 2, 2, 2)})
	require.NoError(t, err)
	crate, err := NewBody(BodyConfig{Name: "crate", Mass: 2, UseGravity: true, Shape: mustBox(t, 1, 1, 1), Position: mgl32.Vec3{1, 0, 0}})
	require.NoError(t, err)
	crate.LinearVelocity = mgl32.Vec3{-1, 0, 0}

	cs := NewCollisionSystem(nil)
	contacts := cs.DetectAndResolve([]*Body{wall, crate})
	require.Len(t, contacts, 1)

	assert.Equal(t, mgl32.Vec3{}, wall.Position)
	assert.Equal(t, mgl32.Vec3{}, wall.LinearVelocity)
	// the crate only takes its own half of the correction
	assert.InDelta(t, 1.5, crate.Position.X(), 1e-6)
	// the wall's mass and velocity still feed the formula: ((2-5)*-1 + 0) / 7
	assert.InDelta(t, 3.0/7.0, crate.LinearVelocity.X(), 1e-6)

	bodies := []*Body{wall, crate}
	for i := 0; i < 100; i++ {
		require.NoError(t, StepFixed(bodies, DefaultGravity, testStep))
		cs.DetectAndResolve(bodies)
	}
	assert.Equal(t, mgl32.Vec3{}, wall.Position)
	assert.Equal(t, mgl32.Vec3{}, wall.LinearVelocity)
}

func TestMasslessKinematicPairSkipsResponse(t *testing.T) {
	a, err := NewBody(BodyConfig{Name: "a", Kinematic: true, Shape: mustSphere(t, 1)})
	require.NoError(t, err)
	b, err := NewBody(BodyConfig{Name: "b", Kinematic: true, Shape: mustSphere(t, 1)})
	require.NoError(t, err)

	contacts := NewCollisionSystem(nil).DetectAndResolve([]*Body{a, b})
	require.Len(t, contacts, 1)
	assert.True(t, isFiniteVec(a.LinearVelocity))
	assert.Equal(t, mgl32.Vec3{}, b.Position)
}

func TestSpherePlaneOrderMatters(t *testing.T) {
	ground, err := NewBody(BodyConfig{Name: "ground", Kinematic: true, Shape: mustPlane(t, mgl32.Vec3{0, 1, 0})})
	require.NoError(t, err)
	ball := newTestBody(t, mustSphere(t, 0.5), mgl32.Vec3{0, 0.3, 0})

	assert.Empty(t, StepVariable([]*Body{ball, ground}))

	contacts := StepVariable([]*Body{ground, ball})
	require.Len(t, contacts, 1)
	assert.InDelta(t, 0.2, contacts[0].Depth, 1e-6)
	assert.InDelta(t, 0.4, ball.Position.Y(), 1e-6)
	assert.Equal(t, mgl32.Vec3{}, ground.Position)
}

func TestPairResolvedOncePerPass(t *testing.T) {
	// big boxes keep overlapping after separation
	a := newTestBody(t, mustBox(t, 4, 4, 4), mgl32.Vec3{0, 0, 0})
	b := newTestBody(t, mustBox(t, 4, 4, 4), mgl32.Vec3{0.5, 0, 0})
	_, _, ok := a.Shape.Collide(a, b)
	require.True(t, ok)

	// b listed twice: the memo stops the second (a, b) visit
	bodies := []*Body{a, b, b}
	contacts := StepVariable(bodies)
	require.Len(t, contacts, 1)

	_, _, ok = a.Shape.Collide(a, b)
	require.True(t, ok, "still overlapping after separation")

	// the memo does not outlive the pass
	assert.Len(t, StepVariable(bodies), 1)
}

func TestMemoClearedAfterPass(t *testing.T) {
	bodies := []*Body{
		newTestBody(t, mustSphere(t, 1), mgl32.Vec3{0, 0, 0}),
		newTestBody(t, mustSphere(t, 1), mgl32.Vec3{0.5, 0, 0}),
		newTestBody(t, mustSphere(t, 1), mgl32.Vec3{1, 0, 0}),
		newTestBody(t, nil, mgl32.Vec3{0, 0, 0}),
	}
	contacts := StepVariable(bodies)
	assert.Len(t, contacts, 3)
	for _, b := range bodies {
		assert.Zero(t, b.CollidedCount())
	}
}

func TestBodiesWithoutShapesNeverCollide(t *testing.T) {
	a := newTestBody(t, nil, mgl32.Vec3{})
	b := newTestBody(t, mustSphere(t, 1), mgl32.Vec3{})
	assert.Empty(t, StepVariable([]*Body{a, b, nil}))
}

func TestCollisionLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a := newTestBody(t, mustSphere(t, 1), mgl32.Vec3{0, 0, 0})
	b := newTestBody(t, mustSphere(t, 1), mgl32.Vec3{1, 0, 0})
	a.Name, b.Name = "left", "right"

	NewCollisionSystem(zap.New(core)).DetectAndResolve([]*Body{a, b})

	entries := logs.FilterMessage("collision resolved").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "left", fields["a"])
	assert.Equal(t, "right", fields["b"])
}
