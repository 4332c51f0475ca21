package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// boxPenetrationDepth is the depth reported for any overlapping box pair.
// Box-box contacts do not compute a minimum translation vector.
const boxPenetrationDepth = 1.0

// ShapeKind identifies a collision shape variant.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapePlane
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is collision geometry attached to a body. The set of shapes is closed: Sphere, Box and Plane.
// Collide tests a (which owns the shape) against b. The normal points from a toward b.
// Pairings a shape does not know about report ok == false.
type Shape interface {
	Kind() ShapeKind
	Collide(a, b *Body) (normal mgl32.Vec3, depth float32, ok bool)
	sealed()
}

// Sphere is a ball of Radius centered on the body position.
type Sphere struct {
	Radius float32
}

// NewSphere returns a sphere with the given radius. radius must be positive and finite.
func NewSphere(radius float32) (*Sphere, error) {
	if !isFinite(radius) || radius <= 0 {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, ErrInvalidShape)
	}
	return &Sphere{Radius: radius}, nil
}

func (s *Sphere) Kind() ShapeKind { return ShapeSphere }

// Collide only handles sphere peers.
func (s *Sphere) Collide(a, b *Body) (mgl32.Vec3, float32, bool) {
	other, ok := b.Shape.(*Sphere)
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	combined := s.Radius + other.Radius
	dist := distance(a.Position, b.Position)
	if dist > combined {
		return mgl32.Vec3{}, 0, false
	}
	return direction(a.Position, b.Position), combined - dist, true
}

func (s *Sphere) sealed() {}

// Box is an axis-aligned box centered on the body position.
// Length, Width and Height are the full extents along X, Y and Z.
type Box struct {
	Length float32
	Width  float32
	Height float32
}

// NewBox returns a box with the given full extents. All extents must be positive and finite.
func NewBox(length, width, height float32) (*Box, error) {
	for _, e := range [3]float32{length, width, height} {
		if !isFinite(e) || e <= 0 {
			return nil, fmt.Errorf("box extents (%v, %v, %v): %w", length, width, height, ErrInvalidShape)
		}
	}
	return &Box{Length: length, Width: width, Height: height}, nil
}

func (s *Box) Kind() ShapeKind { return ShapeBox }

func (s *Box) halfExtents() mgl32.Vec3 {
	return mgl32.Vec3{s.Length / 2, s.Width / 2, s.Height / 2}
}

// Min returns the lower corner of the box placed at position.
func (s *Box) Min(position mgl32.Vec3) mgl32.Vec3 {
	return position.Sub(s.halfExtents())
}

// Max returns the upper corner of the box placed at position.
func (s *Box) Max(position mgl32.Vec3) mgl32.Vec3 {
	return position.Add(s.halfExtents())
}

// Collide only handles box peers. Touching faces count as overlap.
func (s *Box) Collide(a, b *Body) (mgl32.Vec3, float32, bool) {
	other, ok := b.Shape.(*Box)
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	minA, maxA := s.Min(a.Position), s.Max(a.Position)
	minB, maxB := other.Min(b.Position), other.Max(b.Position)
	for i := 0; i < 3; i++ {
		if minA[i] > maxB[i] || maxA[i] < minB[i] {
			return mgl32.Vec3{}, 0, false
		}
	}
	return direction(a.Position, b.Position), boxPenetrationDepth, true
}

func (s *Box) sealed() {}

// Plane is an infinite plane through the body position with a unit Normal.
// Length and Width describe the visual extent only; collision ignores them.
type Plane struct {
	Length float32
	Width  float32
	Normal mgl32.Vec3
}

// NewPlane returns a plane with the given extent and normal. The normal is stored unit length;
// a normal that does not normalize to a finite unit vector (zero, non-finite, or too large
// for float32 length) is rejected.
func NewPlane(length, width float32, normal mgl32.Vec3) (*Plane, error) {
	unit := normal.Normalize()
	if !isFiniteVec(unit) || math32.Abs(unit.Len()-1) > 1e-4 {
		return nil, fmt.Errorf("plane normal %v: %w", normal, ErrInvalidShape)
	}
	if !isFinite(length) || !isFinite(width) || length < 0 || width < 0 {
		return nil, fmt.Errorf("plane extent (%v, %v): %w", length, width, ErrInvalidShape)
	}
	return &Plane{Length: length, Width: width, Normal: unit}, nil
}

func (s *Plane) Kind() ShapeKind { return ShapePlane }

// Distance returns the signed distance of point from the plane placed at position.
func (s *Plane) Distance(position, point mgl32.Vec3) float32 {
	return point.Sub(position).Dot(s.Normal)
}

// Collide handles any peer. Only spheres have a half-height (their radius); every other
// shape is tested as a point.
func (s *Plane) Collide(a, b *Body) (mgl32.Vec3, float32, bool) {
	var halfHeight float32
	if sphere, ok := b.Shape.(*Sphere); ok {
		halfHeight = sphere.Radius
	}
	dist := s.Distance(a.Position, b.Position)
	if dist > halfHeight {
		return mgl32.Vec3{}, 0, false
	}
	return s.Normal, halfHeight - dist, true
}

func (s *Plane) sealed() {}
