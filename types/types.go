package types

import (
	"fmt"
	"math"
)

// ComponentID identifies a registered component type. IDs are assigned in
// registration order, starting at 0.
type ComponentID int

// ArchetypeID is the position of an archetype in its index. Archetypes are
// never reordered, so the ID doubles as the iteration order of views.
type ArchetypeID int

// NoArchetype is the archetype id value for an entity that owns no
// components. The registry itself tracks such entities with a nil archetype.
const NoArchetype ArchetypeID = -1

const invalidVersion = math.MaxUint32

// Entity is a 64-bit handle into the entity table: the slot index lives in
// the high 32 bits and the slot's reuse version in the low 32 bits. Entities
// are plain values; equality of the full 64 bits is the identity test.
type Entity uint64

// Invalid is the sentinel handle. Its version never belongs to a live slot.
const Invalid = Entity(invalidVersion)

// NewEntity builds a handle from a slot index and version.
func NewEntity(index, version uint32) Entity {
	return Entity(uint64(index)<<32 | uint64(version))
}

// Index returns the slot position in the entity table.
func (e Entity) Index() uint32 {
	return uint32(e >> 32)
}

// Version returns the reuse counter of the slot.
func (e Entity) Version() uint32 {
	return uint32(e)
}

// Valid reports whether the handle could name a live entity. A valid handle
// may still be stale; the registry compares it against the table to decide.
func (e Entity) Valid() bool {
	return e.Version() != invalidVersion
}

// NextVersion returns the version a slot takes on its next reuse, skipping
// the Invalid sentinel.
func NextVersion(version uint32) uint32 {
	version++
	if version == invalidVersion {
		return 0
	}
	return version
}

func (e Entity) String() string {
	if !e.Valid() {
		return "Entity(invalid)"
	}
	return fmt.Sprintf("Entity(%d v%d)", e.Index(), e.Version())
}
