// Package domain defines the core entity records, preference types, and
// time-stamped data points managed by trackstore.
package domain

// ObjectID uniquely identifies an entity within a single store. IDs are
// assigned by the store at creation and are never reused within a store's
// lifetime. ID 0 is reserved for scenario-level data and is never assigned
// to an entity.
type ObjectID uint64

// ScenarioID is the reserved object ID addressing scenario-scoped generic
// and category data.
const ScenarioID ObjectID = 0

// ObjectType identifies the kind of an entity. Values are single bits so
// that listener interest masks and list filters can combine them.
type ObjectType uint32

const (
	// Platform is a top-level moving or static object with position updates.
	Platform ObjectType = 1 << iota
	// Beam is a sensor beam hosted by a platform.
	Beam
	// Gate is a range-bounded volume hosted by a beam.
	Gate
	// Laser is a laser designator hosted by a platform.
	Laser
	// Projector is an image projector hosted by a platform or beam.
	Projector
	// LOBGroup is a line-of-bearing group hosted by a platform.
	LOBGroup
	// CustomRendering is a host-attached entity with no kinematic updates.
	CustomRendering

	// None matches no entity type.
	None ObjectType = 0
	// All matches every entity type.
	All ObjectType = Platform | Beam | Gate | Laser | Projector | LOBGroup | CustomRendering
)

// String returns a short human-readable name for a single-bit type, or
// "mixed" for combined masks.
func (t ObjectType) String() string {
	switch t {
	case Platform:
		return "platform"
	case Beam:
		return "beam"
	case Gate:
		return "gate"
	case Laser:
		return "laser"
	case Projector:
		return "projector"
	case LOBGroup:
		return "lobgroup"
	case CustomRendering:
		return "customrendering"
	case None:
		return "none"
	case All:
		return "all"
	}
	return "mixed"
}

// Has reports whether the mask contains every bit of other.
func (t ObjectType) Has(other ObjectType) bool {
	return t&other == other
}
