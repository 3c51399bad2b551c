package cql_test

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/MissaelAnda/necs/cql"
	"github.com/MissaelAnda/necs/filter"
	"github.com/MissaelAnda/necs/types"
)

type Alpha struct{}
type Beta struct{}
type Gamma struct{}

var refs = map[string]types.ComponentRef{
	"Alpha": types.Ref[Alpha](),
	"Beta":  types.Ref[Beta](),
	"Gamma": types.Ref[Gamma](),
}

var ids = map[string]types.ComponentID{
	"Alpha": 0,
	"Beta":  1,
	"Gamma": 2,
}

func lookup(name string) (types.ComponentRef, bool) {
	ref, ok := refs[name]
	return ref, ok
}

func resolve(ref types.ComponentRef) (types.ComponentID, bool) {
	id, ok := ids[ref.Name()]
	return id, ok
}

func compile(t *testing.T, query string) filter.Matcher {
	t.Helper()
	f, err := cql.Parse(query, lookup)
	assert.NilError(t, err)
	m, err := f.Compile(resolve)
	assert.NilError(t, err)
	return m
}

func TestParseContains(t *testing.T) {
	m := compile(t, "CONTAINS(Alpha, Beta)")

	assert.Check(t, m([]types.ComponentID{0, 1}))
	assert.Check(t, m([]types.ComponentID{0, 1, 2}))
	assert.Check(t, !m([]types.ComponentID{0}))
	assert.Check(t, !m([]types.ComponentID{2}))
}

func TestParseExact(t *testing.T) {
	m := compile(t, "EXACT(Alpha, Beta)")

	assert.Check(t, m([]types.ComponentID{0, 1}))
	assert.Check(t, !m([]types.ComponentID{0, 1, 2}))
	assert.Check(t, !m([]types.ComponentID{0}))
}

func TestParseAll(t *testing.T) {
	m := compile(t, "ALL()")

	assert.Check(t, m(nil))
	assert.Check(t, m([]types.ComponentID{2}))
}

func TestParseNot(t *testing.T) {
	m := compile(t, "!CONTAINS(Gamma)")

	assert.Check(t, m([]types.ComponentID{0, 1}))
	assert.Check(t, !m([]types.ComponentID{2}))
}

func TestParseOperators(t *testing.T) {
	m := compile(t, "CONTAINS(Alpha) & !CONTAINS(Beta)")
	assert.Check(t, m([]types.ComponentID{0}))
	assert.Check(t, m([]types.ComponentID{0, 2}))
	assert.Check(t, !m([]types.ComponentID{0, 1}))

	m = compile(t, "EXACT(Alpha) | EXACT(Beta)")
	assert.Check(t, m([]types.ComponentID{0}))
	assert.Check(t, m([]types.ComponentID{1}))
	assert.Check(t, !m([]types.ComponentID{0, 1}))
}

func TestParseParenthesizedSubexpression(t *testing.T) {
	m := compile(t, "(CONTAINS(Alpha) | CONTAINS(Beta)) & !CONTAINS(Gamma)")

	assert.Check(t, m([]types.ComponentID{0}))
	assert.Check(t, m([]types.ComponentID{1}))
	assert.Check(t, !m([]types.ComponentID{0, 2}))
	assert.Check(t, !m([]types.ComponentID{2}))
}

func TestParseUnknownComponent(t *testing.T) {
	_, err := cql.Parse("CONTAINS(Delta)", lookup)
	assert.Check(t, err != nil)

	var unknown *filter.UnknownComponentsError
	assert.Check(t, errors.As(err, &unknown))
	assert.DeepEqual(t, []string{"Delta"}, unknown.Names)
}

func TestParseMalformed(t *testing.T) {
	_, err := cql.Parse("CONTAINS(", lookup)
	assert.Check(t, err != nil)

	_, err = cql.Parse("", lookup)
	assert.Check(t, err != nil)
}
