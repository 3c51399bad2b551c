package storage

import (
	"sort"
	"strconv"
	"strings"

	"github.com/MissaelAnda/necs/types"
)

// Archetype is the bucket for every entity owning exactly one set of
// component types. The type set is frozen at creation; pools are borrowed
// from the registry, never owned.
type Archetype struct {
	id    types.ArchetypeID
	key   string
	ids   []types.ComponentID // sorted
	pools []ComponentPool     // aligned with ids

	// entities never compacts: a removal writes the Invalid marker into
	// the slot and then frees it, so an iteration in flight sees a
	// transparent hole at a stable index.
	entities *SlotArray[types.Entity]
}

// ID returns the archetype's position in its index.
func (a *Archetype) ID() types.ArchetypeID {
	return a.id
}

// ComponentIDs returns the sorted type set. Callers must not mutate it.
func (a *Archetype) ComponentIDs() []types.ComponentID {
	return a.ids
}

// Pools returns the component pools referenced by this archetype.
func (a *Archetype) Pools() []ComponentPool {
	return a.pools
}

// Contains reports whether the type set includes id.
func (a *Archetype) Contains(id types.ComponentID) bool {
	n := sort.Search(len(a.ids), func(i int) bool { return a.ids[i] >= id })
	return n < len(a.ids) && a.ids[n] == id
}

// Count is the number of live entities of this shape.
func (a *Archetype) Count() int {
	return a.entities.Count()
}

// Size is the slot high-water mark, the bound for position-based iteration.
func (a *Archetype) Size() int {
	return a.entities.Size()
}

// Push adds an entity and returns its slot.
func (a *Archetype) Push(e types.Entity) int {
	return a.entities.Add(e)
}

// Remove marks the entity's slot Invalid in place and frees it.
func (a *Archetype) Remove(e types.Entity) bool {
	pos, ok := a.entities.Replace(func(v types.Entity) bool { return v == e }, types.Invalid)
	if !ok {
		return false
	}
	a.entities.RemoveAt(pos)
	return true
}

// EntityAt returns the live entity at a slot; holes and Invalid markers
// report ok=false.
func (a *Archetype) EntityAt(pos int) (types.Entity, bool) {
	e, ok := a.entities.TryGet(pos)
	if !ok || !e.Valid() {
		return types.Invalid, false
	}
	return e, true
}

// Entities snapshots the live entities in ascending slot order.
func (a *Archetype) Entities() []types.Entity {
	out := make([]types.Entity, 0, a.entities.Count())
	for pos := 0; pos < a.entities.Size(); pos++ {
		if e, ok := a.EntityAt(pos); ok {
			out = append(out, e)
		}
	}
	return out
}

// archetypeKey is the canonical form of a type set: sorted ids joined into
// a string, so that {A,B} and {B,A} intern to the same archetype.
func archetypeKey(ids []types.ComponentID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// ArchetypeIndex interns archetypes by their canonical type-set key and
// preserves first-observed order for iteration.
type ArchetypeIndex struct {
	archs []*Archetype
	byKey map[string]*Archetype
}

func NewArchetypeIndex() *ArchetypeIndex {
	return &ArchetypeIndex{byKey: make(map[string]*Archetype)}
}

// Count returns the number of interned archetypes.
func (x *ArchetypeIndex) Count() int {
	return len(x.archs)
}

// At returns the archetype with the given id.
func (x *ArchetypeIndex) At(id types.ArchetypeID) *Archetype {
	return x.archs[id]
}

// GetOrCreate interns the archetype for the given type set. resolve maps a
// component id to its live pool; it is only consulted on creation.
func (x *ArchetypeIndex) GetOrCreate(ids []types.ComponentID, resolve func(types.ComponentID) ComponentPool) *Archetype {
	sorted := append([]types.ComponentID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := archetypeKey(sorted)
	if a, ok := x.byKey[key]; ok {
		return a
	}
	pools := make([]ComponentPool, len(sorted))
	for i, id := range sorted {
		pools[i] = resolve(id)
	}
	a := &Archetype{
		id:       types.ArchetypeID(len(x.archs)),
		key:      key,
		ids:      sorted,
		pools:    pools,
		entities: NewSlotArray[types.Entity](false),
	}
	x.archs = append(x.archs, a)
	x.byKey[key] = a
	return a
}

// Get looks up the archetype for a type set without creating it.
func (x *ArchetypeIndex) Get(ids []types.ComponentID) (*Archetype, bool) {
	sorted := append([]types.ComponentID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	a, ok := x.byKey[archetypeKey(sorted)]
	return a, ok
}

// Match scans the index in registration order and returns every archetype
// containing all of with and none of without.
func (x *ArchetypeIndex) Match(with, without []types.ComponentID) []*Archetype {
	var out []*Archetype
	for _, a := range x.archs {
		if matches(a, with, without) {
			out = append(out, a)
		}
	}
	return out
}

// MatchFunc scans the index in registration order with a caller-supplied
// predicate over the archetype's type set.
func (x *ArchetypeIndex) MatchFunc(match func(ids []types.ComponentID) bool) []*Archetype {
	var out []*Archetype
	for _, a := range x.archs {
		if match(a.ids) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a *Archetype, with, without []types.ComponentID) bool {
	for _, id := range with {
		if !a.Contains(id) {
			return false
		}
	}
	for _, id := range without {
		if a.Contains(id) {
			return false
		}
	}
	return true
}

// DropWith removes every archetype referencing the given component type.
// The to-remove set is collected before any mutation; survivors keep their
// relative order and are re-indexed.
func (x *ArchetypeIndex) DropWith(id types.ComponentID) {
	kept := x.archs[:0]
	for _, a := range x.archs {
		if a.Contains(id) {
			delete(x.byKey, a.key)
			continue
		}
		kept = append(kept, a)
	}
	x.archs = kept
	for i, a := range x.archs {
		a.id = types.ArchetypeID(i)
	}
}
