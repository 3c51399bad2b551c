package filter

import (
	"github.com/MissaelAnda/necs/types"
)

type not struct {
	inner ComponentFilter
}

func Not(inner ComponentFilter) ComponentFilter {
	return &not{inner: inner}
}

func (f *not) Compile(resolve Resolver) (Matcher, error) {
	m, err := f.inner.Compile(resolve)
	if err != nil {
		return nil, err
	}
	return func(ids []types.ComponentID) bool {
		return !m(ids)
	}, nil
}
