package filter

import (
	"github.com/MissaelAnda/necs/types"
)

type or struct {
	filters []ComponentFilter
}

func Or(filters ...ComponentFilter) ComponentFilter {
	return &or{filters: filters}
}

func (f *or) Compile(resolve Resolver) (Matcher, error) {
	ms, err := compileAll(f.filters, resolve)
	if err != nil {
		return nil, err
	}
	return func(ids []types.ComponentID) bool {
		for _, m := range ms {
			if m(ids) {
				return true
			}
		}
		return false
	}, nil
}
