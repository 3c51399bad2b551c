package necs

import (
	"github.com/MissaelAnda/necs/types"
)

type (
	// Entity is a 64-bit (index, version) handle into the entity table.
	Entity      = types.Entity
	ComponentID = types.ComponentID
	ArchetypeID = types.ArchetypeID
	// ComponentRef names a component type in descriptors and filters.
	ComponentRef = types.ComponentRef
)

// Invalid is the sentinel entity handle.
const Invalid = types.Invalid

// C returns the reference for component type T; shorthand for
// filter.Component in view descriptors.
func C[T any]() ComponentRef {
	return types.Ref[T]()
}
