package scene

import (
	"fmt"

	"github.com/marziaf/birb-hunt/math"
)

// ColliderKind identifies the collider variant.
type ColliderKind uint8

const (
	Sphere ColliderKind = iota
	Cylinder
)

func (k ColliderKind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	}
	return fmt.Sprintf("ColliderKind(%d)", uint8(k))
}

// Collider is a spatial primitive kept in world space. Only SphereCollider and
// CylinderCollider implement it. Radius is the constructor radius times the
// uniform scale of the owning node's world matrix.
type Collider interface {
	Kind() ColliderKind
	SetLocation(p math.Vec3)
	Location() math.Vec3
	Radius() float32

	// CollidingWith reports whether other's location lies strictly inside this
	// collider's radius. It is not symmetric; use Colliding for a pair check.
	CollidingWith(other Collider) bool

	setScale(s float32)
}

type colliderBase struct {
	radius   float32
	scale    float32
	location math.Vec3
}

func newColliderBase(radius float32) colliderBase {
	return colliderBase{radius: radius, scale: 1}
}

func (c *colliderBase) SetLocation(p math.Vec3) { c.location = p }
func (c *colliderBase) Location() math.Vec3     { return c.location }
func (c *colliderBase) Radius() float32         { return c.radius * c.scale }
func (c *colliderBase) setScale(s float32)      { c.scale = s }

// SphereCollider measures full 3D distance.
type SphereCollider struct {
	colliderBase
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{newColliderBase(radius)}
}

func (s *SphereCollider) Kind() ColliderKind { return Sphere }

func (s *SphereCollider) CollidingWith(other Collider) bool {
	return math.Distance(s.location, other.Location()) < s.Radius()
}

// CylinderCollider is an infinite vertical cylinder: only horizontal (X, Z)
// distance counts.
type CylinderCollider struct {
	colliderBase
}

func NewCylinderCollider(radius float32) *CylinderCollider {
	return &CylinderCollider{newColliderBase(radius)}
}

func (c *CylinderCollider) Kind() ColliderKind { return Cylinder }

func (c *CylinderCollider) CollidingWith(other Collider) bool {
	return math.HorizontalDistance(c.location, other.Location()) < c.Radius()
}

// Colliding is the symmetric pair test: either center lies inside the other's
// radius.
func Colliding(a, b Collider) bool {
	return a.CollidingWith(b) || b.CollidingWith(a)
}

// CollidingAgainstTree walks the tree from root in pre-order and returns the
// first node whose collider collides with c. The collider c itself and any
// collider in ignore are skipped.
func (g *Graph) CollidingAgainstTree(c Collider, root NodeID, ignore ...Collider) (NodeID, bool) {
	hit := NoNode
	g.Walk(root, func(id NodeID) bool {
		other := g.at(id).collider
		if other == nil || other == c || contains(ignore, other) {
			return true
		}
		if Colliding(c, other) {
			hit = id
			return false
		}
		return true
	})
	return hit, hit != NoNode
}

func contains(colliders []Collider, c Collider) bool {
	for _, x := range colliders {
		if x == c {
			return true
		}
	}
	return false
}
