package storage

import (
	"reflect"

	"github.com/MissaelAnda/necs/codec"
	"github.com/MissaelAnda/necs/types"
	"github.com/rotisserie/eris"
)

// ComponentPool is the type-erased surface of a per-type pool. Archetypes
// and the registry reach pools through this interface so that destroying an
// entity or restoring a snapshot does not need the concrete value type.
type ComponentPool interface {
	types.ComponentInfo

	// Count is the number of entities currently owning a value.
	Count() int
	// Has reports whether the entity owns a value of this type.
	Has(e types.Entity) bool
	// Delete drops the entity's value, if any.
	Delete(e types.Entity) bool
	// DeleteAt drops the value stored at a dense position.
	DeleteAt(pos int) bool
	// Encode returns the JSON encoding of the entity's value.
	Encode(e types.Entity) ([]byte, error)
	// DecodeInto decodes bz and stores it as the entity's value.
	DecodeInto(e types.Entity, bz []byte) error
	// EntityIndexAt returns the owning entity index for a dense position.
	EntityIndexAt(pos int) (uint32, bool)
}

// Pool is the per-type component store: a dense SlotArray of values, a
// sparse array mapping entity index to dense position, and a packed
// back-link from dense position to entity index.
type Pool[T any] struct {
	id     types.ComponentID
	name   string
	rt     reflect.Type
	schema []byte

	dense  *SlotArray[T]
	sparse []int // entity index -> dense pos, -1 when absent
	packed []int // dense pos -> entity index, -1 when absent
}

var _ ComponentPool = &Pool[int]{}

// NewPool builds the pool for component type T under the given id. The JSON
// schema of T is captured here, once.
func NewPool[T any](id types.ComponentID) (*Pool[T], error) {
	var zero T
	schema, err := types.SerializeComponentSchema(zero)
	if err != nil {
		return nil, err
	}
	ref := types.Ref[T]()
	return &Pool[T]{
		id:     id,
		name:   ref.Name(),
		rt:     ref.Type(),
		schema: schema,
		dense:  NewSlotArray[T](true),
	}, nil
}

func (p *Pool[T]) ID() types.ComponentID { return p.id }
func (p *Pool[T]) Name() string          { return p.name }
func (p *Pool[T]) Type() reflect.Type    { return p.rt }
func (p *Pool[T]) Schema() []byte        { return p.schema }

func (p *Pool[T]) Count() int {
	return p.dense.Count()
}

// Add stores v for the entity and returns its dense position. Adding to an
// entity that already owns a value is a no-op that returns the existing
// position; the first value wins.
func (p *Pool[T]) Add(e types.Entity, v T) int {
	idx := int(e.Index())
	p.ensure(idx)
	if pos := p.sparse[idx]; pos >= 0 {
		return pos
	}
	pos := p.dense.Add(v)
	for len(p.packed) <= pos {
		p.packed = append(p.packed, -1)
	}
	p.packed[pos] = idx
	p.sparse[idx] = pos
	return pos
}

// Get copies out the entity's value.
func (p *Pool[T]) Get(e types.Entity) (T, bool) {
	idx := int(e.Index())
	if idx >= len(p.sparse) || p.sparse[idx] < 0 {
		var zero T
		return zero, false
	}
	return p.dense.At(p.sparse[idx]), true
}

// Ref returns a pointer to the entity's value for in-place mutation.
func (p *Pool[T]) Ref(e types.Entity) (*T, bool) {
	idx := int(e.Index())
	if idx >= len(p.sparse) || p.sparse[idx] < 0 {
		return nil, false
	}
	data, _, _ := p.dense.Raw()
	return &data[p.sparse[idx]], true
}

// Set overwrites the entity's value in place, adding it when absent.
func (p *Pool[T]) Set(e types.Entity, v T) int {
	idx := int(e.Index())
	p.ensure(idx)
	if pos := p.sparse[idx]; pos >= 0 {
		p.dense.Set(pos, v)
		return pos
	}
	return p.Add(e, v)
}

// Remove drops the entity's value and returns it.
func (p *Pool[T]) Remove(e types.Entity) (T, bool) {
	idx := int(e.Index())
	if idx >= len(p.sparse) || p.sparse[idx] < 0 {
		var zero T
		return zero, false
	}
	pos := p.sparse[idx]
	v := p.dense.At(pos)
	p.dense.RemoveAt(pos)
	p.sparse[idx] = -1
	p.packed[pos] = -1
	return v, true
}

func (p *Pool[T]) Has(e types.Entity) bool {
	idx := int(e.Index())
	return idx < len(p.sparse) && p.sparse[idx] >= 0
}

func (p *Pool[T]) Delete(e types.Entity) bool {
	_, ok := p.Remove(e)
	return ok
}

func (p *Pool[T]) DeleteAt(pos int) bool {
	if pos < 0 || pos >= len(p.packed) || p.packed[pos] < 0 {
		return false
	}
	idx := p.packed[pos]
	p.dense.RemoveAt(pos)
	p.sparse[idx] = -1
	p.packed[pos] = -1
	return true
}

func (p *Pool[T]) Encode(e types.Entity) ([]byte, error) {
	v, ok := p.Get(e)
	if !ok {
		return nil, eris.Errorf("entity %s has no %s to encode", e, p.name)
	}
	return codec.Encode(v)
}

func (p *Pool[T]) DecodeInto(e types.Entity, bz []byte) error {
	v, err := codec.Decode[T](bz)
	if err != nil {
		return err
	}
	p.Set(e, v)
	return nil
}

func (p *Pool[T]) EntityIndexAt(pos int) (uint32, bool) {
	if pos < 0 || pos >= len(p.packed) || p.packed[pos] < 0 {
		return 0, false
	}
	return uint32(p.packed[pos]), true
}

func (p *Pool[T]) ensure(idx int) {
	for len(p.sparse) <= idx {
		p.sparse = append(p.sparse, -1)
	}
}
