package storage

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/MissaelAnda/necs/types"
)

type posComp struct{ X, Y int }
type velComp struct{ X, Y int }

func testPools(t *testing.T) (map[types.ComponentID]ComponentPool, func(types.ComponentID) ComponentPool) {
	t.Helper()
	pa, err := NewPool[posComp](0)
	assert.NilError(t, err)
	pb, err := NewPool[velComp](1)
	assert.NilError(t, err)
	pools := map[types.ComponentID]ComponentPool{0: pa, 1: pb}
	return pools, func(id types.ComponentID) ComponentPool { return pools[id] }
}

func TestArchetypeInterning(t *testing.T) {
	_, resolve := testPools(t)
	x := NewArchetypeIndex()

	ab := x.GetOrCreate([]types.ComponentID{0, 1}, resolve)
	ba := x.GetOrCreate([]types.ComponentID{1, 0}, resolve)

	// {A,B} and {B,A} intern to the same archetype
	assert.Check(t, ab == ba)
	assert.Equal(t, 1, x.Count())

	a := x.GetOrCreate([]types.ComponentID{0}, resolve)
	assert.Check(t, a != ab)
	assert.Equal(t, 2, x.Count())

	got, ok := x.Get([]types.ComponentID{1, 0})
	assert.Check(t, ok)
	assert.Check(t, got == ab)

	_, ok = x.Get([]types.ComponentID{1})
	assert.Check(t, !ok)
}

func TestArchetypeMembership(t *testing.T) {
	_, resolve := testPools(t)
	x := NewArchetypeIndex()
	arch := x.GetOrCreate([]types.ComponentID{0}, resolve)

	a := types.NewEntity(0, 0)
	b := types.NewEntity(1, 0)
	arch.Push(a)
	arch.Push(b)
	assert.Equal(t, 2, arch.Count())

	assert.Check(t, arch.Remove(a))
	assert.Equal(t, 1, arch.Count())
	// the slot is not compacted: b keeps its position
	e, ok := arch.EntityAt(1)
	assert.Check(t, ok)
	assert.Equal(t, b, e)
	// the removed slot reads as a transparent hole
	_, ok = arch.EntityAt(0)
	assert.Check(t, !ok)

	assert.Check(t, !arch.Remove(a))

	got := arch.Entities()
	assert.Equal(t, 1, len(got))
	assert.Equal(t, b, got[0])
}

func TestArchetypeMatch(t *testing.T) {
	_, resolve := testPools(t)
	x := NewArchetypeIndex()
	onlyA := x.GetOrCreate([]types.ComponentID{0}, resolve)
	both := x.GetOrCreate([]types.ComponentID{0, 1}, resolve)
	onlyB := x.GetOrCreate([]types.ComponentID{1}, resolve)

	withA := x.Match([]types.ComponentID{0}, nil)
	assert.Equal(t, 2, len(withA))
	// registration order is preserved
	assert.Check(t, withA[0] == onlyA)
	assert.Check(t, withA[1] == both)

	withAnotB := x.Match([]types.ComponentID{0}, []types.ComponentID{1})
	assert.Equal(t, 1, len(withAnotB))
	assert.Check(t, withAnotB[0] == onlyA)

	all := x.Match(nil, nil)
	assert.Equal(t, 3, len(all))

	none := x.Match([]types.ComponentID{0, 1}, []types.ComponentID{0})
	assert.Equal(t, 0, len(none))
	_ = onlyB
}

func TestArchetypeDropWith(t *testing.T) {
	_, resolve := testPools(t)
	x := NewArchetypeIndex()
	x.GetOrCreate([]types.ComponentID{0}, resolve)
	x.GetOrCreate([]types.ComponentID{0, 1}, resolve)
	onlyB := x.GetOrCreate([]types.ComponentID{1}, resolve)

	x.DropWith(0)
	assert.Equal(t, 1, x.Count())
	assert.Check(t, x.At(0) == onlyB)

	// the survivor is re-keyed and still reachable
	got, ok := x.Get([]types.ComponentID{1})
	assert.Check(t, ok)
	assert.Check(t, got == onlyB)
}
