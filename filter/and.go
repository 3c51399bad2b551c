package filter

import (
	"github.com/MissaelAnda/necs/types"
)

type and struct {
	filters []ComponentFilter
}

func And(filters ...ComponentFilter) ComponentFilter {
	return &and{filters: filters}
}

func (f *and) Compile(resolve Resolver) (Matcher, error) {
	ms, err := compileAll(f.filters, resolve)
	if err != nil {
		return nil, err
	}
	return func(ids []types.ComponentID) bool {
		for _, m := range ms {
			if !m(ids) {
				return false
			}
		}
		return true
	}, nil
}

func compileAll(filters []ComponentFilter, resolve Resolver) ([]Matcher, error) {
	ms := make([]Matcher, 0, len(filters))
	var errs []error
	for _, f := range filters {
		m, err := f.Compile(resolve)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ms = append(ms, m)
	}
	if merged := MergeUnknown(errs...); merged != nil {
		return nil, merged
	}
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return ms, nil
}
