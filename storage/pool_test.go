package storage

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/MissaelAnda/necs/types"
)

type health struct {
	Value int
}

func TestPoolAddGetRemove(t *testing.T) {
	p, err := NewPool[health](0)
	assert.NilError(t, err)

	e := types.NewEntity(0, 0)
	assert.Check(t, !p.Has(e))

	pos := p.Add(e, health{Value: 10})
	assert.Check(t, p.Has(e))
	assert.Equal(t, 1, p.Count())

	v, ok := p.Get(e)
	assert.Check(t, ok)
	assert.Equal(t, 10, v.Value)

	idx, ok := p.EntityIndexAt(pos)
	assert.Check(t, ok)
	assert.Equal(t, e.Index(), idx)

	v, ok = p.Remove(e)
	assert.Check(t, ok)
	assert.Equal(t, 10, v.Value)
	assert.Check(t, !p.Has(e))
	assert.Equal(t, 0, p.Count())

	_, ok = p.EntityIndexAt(pos)
	assert.Check(t, !ok)
}

func TestPoolAddIsIdempotent(t *testing.T) {
	p, err := NewPool[health](0)
	assert.NilError(t, err)

	e := types.NewEntity(3, 0)
	first := p.Add(e, health{Value: 1})
	second := p.Add(e, health{Value: 2})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.Count())
	v, _ := p.Get(e)
	// the first value wins
	assert.Equal(t, 1, v.Value)
}

func TestPoolSetOverwrites(t *testing.T) {
	p, err := NewPool[health](0)
	assert.NilError(t, err)

	e := types.NewEntity(0, 0)
	p.Add(e, health{Value: 1})
	p.Set(e, health{Value: 5})
	v, _ := p.Get(e)
	assert.Equal(t, 5, v.Value)

	// set on an absent entity attaches
	other := types.NewEntity(7, 0)
	p.Set(other, health{Value: 9})
	assert.Check(t, p.Has(other))
}

func TestPoolRefMutatesInPlace(t *testing.T) {
	p, err := NewPool[health](0)
	assert.NilError(t, err)

	e := types.NewEntity(0, 0)
	p.Add(e, health{Value: 1})

	ref, ok := p.Ref(e)
	assert.Check(t, ok)
	ref.Value = 42

	v, _ := p.Get(e)
	assert.Equal(t, 42, v.Value)

	_, ok = p.Ref(types.NewEntity(9, 0))
	assert.Check(t, !ok)
}

func TestPoolDensePositionsStable(t *testing.T) {
	p, err := NewPool[health](0)
	assert.NilError(t, err)

	a := types.NewEntity(0, 0)
	b := types.NewEntity(1, 0)
	c := types.NewEntity(2, 0)
	p.Add(a, health{Value: 1})
	posB := p.Add(b, health{Value: 2})
	p.Add(c, health{Value: 3})

	// removing another entry does not move b
	p.Remove(a)
	idx, ok := p.EntityIndexAt(posB)
	assert.Check(t, ok)
	assert.Equal(t, b.Index(), idx)
	v, _ := p.Get(b)
	assert.Equal(t, 2, v.Value)

	// the freed dense slot is refilled by the next add
	d := types.NewEntity(5, 0)
	posD := p.Add(d, health{Value: 4})
	assert.Equal(t, 0, posD)
}

func TestPoolEncodeDecode(t *testing.T) {
	p, err := NewPool[health](0)
	assert.NilError(t, err)

	e := types.NewEntity(0, 0)
	p.Add(e, health{Value: 11})

	bz, err := p.Encode(e)
	assert.NilError(t, err)

	q, err := NewPool[health](0)
	assert.NilError(t, err)
	assert.NilError(t, q.DecodeInto(e, bz))
	v, ok := q.Get(e)
	assert.Check(t, ok)
	assert.Equal(t, 11, v.Value)

	_, err = p.Encode(types.NewEntity(4, 0))
	assert.Check(t, err != nil)
}

func TestPoolMetadata(t *testing.T) {
	p, err := NewPool[health](3)
	assert.NilError(t, err)

	assert.Equal(t, types.ComponentID(3), p.ID())
	assert.Equal(t, "health", p.Name())
	assert.Check(t, len(p.Schema()) > 0)
}
