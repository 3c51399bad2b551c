// Package filter declares composable archetype predicates. A filter is
// written against component references, then compiled against a registry's
// registrations into a matcher over sorted component-id sets.
package filter

import (
	"github.com/MissaelAnda/necs/types"
)

// Matcher decides whether an archetype's type set satisfies a compiled
// filter. The ids slice is sorted.
type Matcher func(ids []types.ComponentID) bool

// Resolver maps a component reference to its registered id.
type Resolver func(ref types.ComponentRef) (types.ComponentID, bool)

// ComponentFilter filters archetypes based on their component type sets.
type ComponentFilter interface {
	// Compile resolves the filter's component references. Unresolved
	// references are reported through UnknownComponentsError.
	Compile(resolve Resolver) (Matcher, error)
}

// Component returns the reference for component type T, for use in filter
// constructors and view descriptors.
func Component[T any]() types.ComponentRef {
	return types.Ref[T]()
}

func containsID(ids []types.ComponentID, id types.ComponentID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func resolveAll(refs []types.ComponentRef, resolve Resolver) ([]types.ComponentID, error) {
	ids := make([]types.ComponentID, 0, len(refs))
	var unknown []string
	for _, ref := range refs {
		id, ok := resolve(ref)
		if !ok {
			unknown = append(unknown, ref.Name())
			continue
		}
		ids = append(ids, id)
	}
	if len(unknown) > 0 {
		return nil, &UnknownComponentsError{Names: unknown}
	}
	return ids, nil
}
