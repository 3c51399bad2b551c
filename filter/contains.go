package filter

import (
	"github.com/MissaelAnda/necs/types"
)

type contains struct {
	refs []types.ComponentRef
}

// Contains matches archetypes that contain all the components specified.
func Contains(refs ...types.ComponentRef) ComponentFilter {
	return &contains{refs: refs}
}

func (f *contains) Compile(resolve Resolver) (Matcher, error) {
	want, err := resolveAll(f.refs, resolve)
	if err != nil {
		return nil, err
	}
	return func(ids []types.ComponentID) bool {
		for _, id := range want {
			if !containsID(ids, id) {
				return false
			}
		}
		return true
	}, nil
}
