package filter

import (
	"github.com/MissaelAnda/necs/types"
)

type exact struct {
	refs []types.ComponentRef
}

// Exact matches archetypes whose type set is exactly the components
// specified.
func Exact(refs ...types.ComponentRef) ComponentFilter {
	return exact{refs: refs}
}

func (f exact) Compile(resolve Resolver) (Matcher, error) {
	want, err := resolveAll(f.refs, resolve)
	if err != nil {
		return nil, err
	}
	return func(ids []types.ComponentID) bool {
		if len(ids) != len(want) {
			return false
		}
		for _, id := range want {
			if !containsID(ids, id) {
				return false
			}
		}
		return true
	}, nil
}
