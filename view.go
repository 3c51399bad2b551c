package necs

import (
	"github.com/MissaelAnda/necs/cql"
	"github.com/MissaelAnda/necs/filter"
	"github.com/MissaelAnda/necs/storage"
	"github.com/MissaelAnda/necs/types"
)

// ViewDescriptor is the declarative include/exclude query: entities must
// own every component in the with list and none in the without list.
type ViewDescriptor struct {
	with    []types.ComponentRef
	without []types.ComponentRef
}

// NewView starts an empty descriptor.
func NewView() *ViewDescriptor {
	return &ViewDescriptor{}
}

// With appends required component types.
func (d *ViewDescriptor) With(refs ...types.ComponentRef) *ViewDescriptor {
	d.with = append(d.with, refs...)
	return d
}

// Without appends excluded component types.
func (d *ViewDescriptor) Without(refs ...types.ComponentRef) *ViewDescriptor {
	d.without = append(d.without, refs...)
	return d
}

// Build resolves the descriptor against the registry and snapshots the
// matching archetypes. Unregistered types fail the build, enumerated in
// the error.
func (d *ViewDescriptor) Build(r *Registry) (*View, error) {
	var unknown []string
	resolve := func(refs []types.ComponentRef) []types.ComponentID {
		ids := make([]types.ComponentID, 0, len(refs))
		for _, ref := range refs {
			id, ok := r.resolveRef(ref)
			if !ok {
				unknown = append(unknown, ref.Name())
				continue
			}
			ids = append(ids, id)
		}
		return ids
	}
	with := resolve(d.with)
	without := resolve(d.without)
	if len(unknown) > 0 {
		return nil, invalidViewErr(unknown)
	}
	return &View{
		registry: r,
		archs:    r.archetypes.Match(with, without),
	}, nil
}

// View is a convenience for a descriptor with only required types.
func (r *Registry) View(refs ...types.ComponentRef) (*View, error) {
	return NewView().With(refs...).Build(r)
}

// ViewFromFilter materializes a view from a compiled component filter.
func (r *Registry) ViewFromFilter(f filter.ComponentFilter) (*View, error) {
	m, err := f.Compile(filter.Resolver(r.resolveRef))
	if err != nil {
		return nil, viewError(err)
	}
	return &View{
		registry: r,
		archs:    r.archetypes.MatchFunc(m),
	}, nil
}

// Query parses a CQL expression and materializes the matching view.
func (r *Registry) Query(query string) (*View, error) {
	f, err := cql.Parse(query, r.refByName)
	if err != nil {
		return nil, viewError(err)
	}
	return r.ViewFromFilter(f)
}

// View is an immutable snapshot of the archetypes matching a descriptor at
// build time. Archetypes observed after the build do not appear; rebuild
// to pick them up. Entity membership and component values inside the
// snapshotted archetypes are read live.
type View struct {
	registry *Registry
	archs    []*storage.Archetype
}

// Count is the number of live entities currently in the view.
func (v *View) Count() int {
	n := 0
	for _, a := range v.archs {
		n += a.Count()
	}
	return n
}

// ArchetypesCount is the number of archetypes snapshotted at build time.
func (v *View) ArchetypesCount() int {
	return len(v.archs)
}

// Entities collects the view's entities in iteration order.
func (v *View) Entities() []types.Entity {
	var out []types.Entity
	v.Each(func(e types.Entity) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Each streams entities: archetypes in registration order, slots in
// ascending order, invalidated slots skipped. Return false to stop.
func (v *View) Each(fn func(types.Entity) bool) {
	v.EachCursor(func(c *Cursor) bool {
		return fn(c.Entity())
	})
}

// EachIndexed also yields a monotonically increasing iteration counter.
func (v *View) EachIndexed(fn func(int, types.Entity) bool) {
	v.EachCursor(func(c *Cursor) bool {
		return fn(c.Iteration(), c.Entity())
	})
}

// EachCursor streams a reusable Cursor over the view. The cursor's
// component cache resets at every step. Mutating the world mid-iteration
// is permitted; the archetype set stays fixed while membership and values
// read live.
func (v *View) EachCursor(fn func(*Cursor) bool) {
	v.eachCursorErr(func(c *Cursor) error {
		if !fn(c) {
			return errStopIteration
		}
		return nil
	})
}

var errStopIteration = errStop{}

type errStop struct{}

func (errStop) Error() string { return "stop iteration" }

// eachCursorErr is the error-propagating core walk shared by the public
// iterators and system dispatch.
func (v *View) eachCursorErr(fn func(*Cursor) error) error {
	cur := &Cursor{view: v, cache: make(map[types.ComponentID]any)}
	iteration := 0
	for ai, arch := range v.archs {
		for pos := 0; pos < arch.Size(); pos++ {
			e, ok := arch.EntityAt(pos)
			if !ok {
				continue
			}
			cur.step(e, iteration, ai, pos)
			if err := fn(cur); err != nil {
				if err == errStopIteration {
					return nil
				}
				return err
			}
			iteration++
		}
	}
	return nil
}

// Cursor is the per-step accessor handed to iteration bodies: the current
// entity, its position in the walk, and memoized component access.
type Cursor struct {
	view      *View
	entity    types.Entity
	iteration int
	archIdx   int
	slot      int
	last      *bool
	cache     map[types.ComponentID]any
}

func (c *Cursor) step(e types.Entity, iteration, archIdx, slot int) {
	c.entity = e
	c.iteration = iteration
	c.archIdx = archIdx
	c.slot = slot
	c.last = nil
	clear(c.cache)
}

// Entity is the entity at the current step.
func (c *Cursor) Entity() types.Entity {
	return c.entity
}

// Iteration is the zero-based position in the overall walk.
func (c *Cursor) Iteration() int {
	return c.iteration
}

// Registry returns the registry the view was built from.
func (c *Cursor) Registry() *Registry {
	return c.view.registry
}

// ArchetypeID identifies the archetype of the current step.
func (c *Cursor) ArchetypeID() types.ArchetypeID {
	return c.view.archs[c.archIdx].ID()
}

// Slot is the entity's slot within its archetype.
func (c *Cursor) Slot() int {
	return c.slot
}

// IsFirst reports whether this is the first step of the walk.
func (c *Cursor) IsFirst() bool {
	return c.iteration == 0
}

// IsLast reports whether no live entity remains after the current step.
// Computed on first call by a forward scan, then memoized for the step.
func (c *Cursor) IsLast() bool {
	if c.last != nil {
		return *c.last
	}
	last := true
scan:
	for ai := c.archIdx; ai < len(c.view.archs); ai++ {
		arch := c.view.archs[ai]
		pos := 0
		if ai == c.archIdx {
			pos = c.slot + 1
		}
		for ; pos < arch.Size(); pos++ {
			if _, ok := arch.EntityAt(pos); ok {
				last = false
				break scan
			}
		}
	}
	c.last = &last
	return last
}

// CursorGet copies out the current entity's T, memoizing the lookup so
// repeated access within one step costs one fetch.
func CursorGet[T any](c *Cursor) (T, error) {
	ref, err := CursorRef[T](c)
	if err != nil {
		var zero T
		return zero, err
	}
	return *ref, nil
}

// CursorRef returns a memoized pointer to the current entity's T.
func CursorRef[T any](c *Cursor) (*T, error) {
	r := c.view.registry
	p, err := poolFor[T](r, false)
	if err != nil {
		return nil, err
	}
	if cached, ok := c.cache[p.ID()]; ok {
		return cached.(*T), nil
	}
	ref, err := GetRef[T](r, c.entity)
	if err != nil {
		return nil, err
	}
	c.cache[p.ID()] = ref
	return ref, nil
}
