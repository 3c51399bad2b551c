package necs

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/MissaelAnda/necs/log"
	"github.com/MissaelAnda/necs/storage"
	"github.com/MissaelAnda/necs/types"
)

// Registry is the single public surface of the store: it owns the entity
// table, every component pool and the archetype index, and drives the
// system lifecycle. All mutation flows through it. Registries are not safe
// for concurrent use; dispatch is sequential and single-threaded.
type Registry struct {
	id     string
	logger log.Logger

	entities   *storage.SlotArray[types.Entity]
	entityArch []*storage.Archetype // per entity index; nil when component-less

	pools     map[types.ComponentID]storage.ComponentPool
	poolOrder []types.ComponentID
	typeIDs   map[reflect.Type]types.ComponentID
	nameIDs   map[string]types.ComponentID
	nextID    types.ComponentID

	archetypes *storage.ArchetypeIndex

	systems      []*systemEntry
	notificables []Notificable
	singleFrame  []*systemEntry
	preProcess   []*systemEntry
	postProcess  []*systemEntry

	started        bool
	starting       bool
	processing     bool
	ending         bool
	restartPending bool
}

// Option configures a registry at construction.
type Option func(*Registry)

// WithLogger attaches a zerolog logger; every event is tagged with the
// registry id.
func WithLogger(zl *zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = log.New(zl)
	}
}

// WithID overrides the generated registry id.
func WithID(id string) Option {
	return func(r *Registry) {
		r.id = id
	}
}

// NewRegistry builds an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:         uuid.NewString(),
		logger:     log.Nop(),
		entities:   storage.NewSlotArray[types.Entity](false),
		pools:      make(map[types.ComponentID]storage.ComponentPool),
		typeIDs:    make(map[reflect.Type]types.ComponentID),
		nameIDs:    make(map[string]types.ComponentID),
		archetypes: storage.NewArchetypeIndex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	zl := r.logger.With().Str("registry_id", r.id).Logger()
	r.logger = log.New(&zl)
	return r
}

// ID returns the registry instance id.
func (r *Registry) ID() string {
	return r.id
}

// Logger exposes the registry logger.
func (r *Registry) Logger() log.Logger {
	return r.logger
}

// Create allocates an entity. Freed slots are reused most recently freed
// first with their version bumped, so stale handles to the previous occupant stop
// resolving.
func (r *Registry) Create() types.Entity {
	var e types.Entity
	if pos, ok := r.entities.Peek(); ok {
		stale := r.entities.At(pos)
		e = types.NewEntity(uint32(pos), types.NextVersion(stale.Version()))
	} else {
		e = types.NewEntity(uint32(r.entities.Size()), 0)
	}
	r.entities.Add(e)
	r.ensureRouting(int(e.Index()))
	r.logger.Debug().
		Uint32("entity_index", e.Index()).
		Uint32("entity_version", e.Version()).
		Msg("created entity")
	return e
}

// Destroy removes the entity from its archetype, drops its component
// values from the pools the archetype references, and frees the slot. The
// slot retains the version so the next occupant increments past it.
func (r *Registry) Destroy(e types.Entity) error {
	if err := r.validate(e); err != nil {
		return err
	}
	idx := int(e.Index())
	if arch := r.entityArch[idx]; arch != nil {
		for _, p := range arch.Pools() {
			p.Delete(e)
		}
		arch.Remove(e)
		r.entityArch[idx] = nil
	}
	r.entities.RemoveAt(idx)
	r.logger.Debug().
		Uint32("entity_index", e.Index()).
		Uint32("entity_version", e.Version()).
		Msg("destroyed entity")
	return nil
}

// validate is the liveness check every entity-accepting operation runs:
// the table slot at the handle's index must hold this exact handle.
func (r *Registry) validate(e types.Entity) error {
	if !e.Valid() {
		return invalidEntityErr(e)
	}
	cur, ok := r.entities.TryGet(int(e.Index()))
	if !ok || cur != e {
		return invalidEntityErr(e)
	}
	return nil
}

// Alive reports whether the handle names a live entity.
func (r *Registry) Alive(e types.Entity) bool {
	return r.validate(e) == nil
}

// EntitiesCount is the number of live entities.
func (r *Registry) EntitiesCount() int {
	return r.entities.Count()
}

// ComponentPoolsCount is the number of registered component pools.
func (r *Registry) ComponentPoolsCount() int {
	return len(r.pools)
}

// ComponentsCount returns how many component types the entity owns.
func (r *Registry) ComponentsCount(e types.Entity) (int, error) {
	if err := r.validate(e); err != nil {
		return 0, err
	}
	arch := r.entityArch[e.Index()]
	if arch == nil {
		return 0, nil
	}
	return len(arch.ComponentIDs()), nil
}

// IsEmpty reports whether the entity owns no components.
func (r *Registry) IsEmpty(e types.Entity) (bool, error) {
	n, err := r.ComponentsCount(e)
	return n == 0, err
}

// RemoveAll strips every component from the entity.
func (r *Registry) RemoveAll(e types.Entity) error {
	if err := r.validate(e); err != nil {
		return err
	}
	idx := int(e.Index())
	arch := r.entityArch[idx]
	if arch == nil {
		return nil
	}
	for _, p := range arch.Pools() {
		p.Delete(e)
	}
	arch.Remove(e)
	r.entityArch[idx] = nil
	return nil
}

// Clean drops every pool that currently stores no values, along with any
// archetype referencing one. The to-remove set is collected before the
// index is mutated.
func (r *Registry) Clean() {
	var empty []types.ComponentID
	for _, id := range r.poolOrder {
		if p, ok := r.pools[id]; ok && p.Count() == 0 {
			empty = append(empty, id)
		}
	}
	for _, id := range empty {
		p := r.pools[id]
		r.archetypes.DropWith(id)
		delete(r.pools, id)
		delete(r.typeIDs, p.Type())
		delete(r.nameIDs, p.Name())
		r.logger.Debug().Str("component", p.Name()).Msg("dropped empty pool")
	}
	if len(empty) > 0 {
		kept := r.poolOrder[:0]
		for _, id := range r.poolOrder {
			if _, ok := r.pools[id]; ok {
				kept = append(kept, id)
			}
		}
		r.poolOrder = kept
	}
}

// ComponentNames lists registered component names in registration order.
func (r *Registry) ComponentNames() []string {
	names := make([]string, 0, len(r.poolOrder))
	for _, id := range r.poolOrder {
		names = append(names, r.pools[id].Name())
	}
	return names
}

// SystemNames lists registered system names in registration order.
func (r *Registry) SystemNames() []string {
	names := make([]string, 0, len(r.systems))
	for _, s := range r.systems {
		names = append(names, s.name)
	}
	return names
}

func (r *Registry) ensureRouting(idx int) {
	for len(r.entityArch) <= idx {
		r.entityArch = append(r.entityArch, nil)
	}
}

func (r *Registry) poolByID(id types.ComponentID) storage.ComponentPool {
	return r.pools[id]
}

func (r *Registry) resolveRef(ref types.ComponentRef) (types.ComponentID, bool) {
	id, ok := r.typeIDs[ref.Type()]
	return id, ok
}

func (r *Registry) refByName(name string) (types.ComponentRef, bool) {
	id, ok := r.nameIDs[name]
	if !ok {
		return types.ComponentRef{}, false
	}
	return types.RefOf(r.pools[id].Type()), true
}

// addPool wires a freshly built pool into the registry's lookup tables.
func (r *Registry) addPool(p storage.ComponentPool) error {
	if _, dup := r.nameIDs[p.Name()]; dup {
		return eris.Errorf("cannot register multiple components named %q", p.Name())
	}
	r.pools[p.ID()] = p
	r.typeIDs[p.Type()] = p.ID()
	r.nameIDs[p.Name()] = p.ID()
	r.poolOrder = append(r.poolOrder, p.ID())
	r.logger.Debug().Str("component", p.Name()).Int("component_id", int(p.ID())).Msg("registered component")
	return nil
}

// routeAdd moves an entity to the archetype including id, creating it on
// first observation. Component values stay in their pools; only the bucket
// changes.
func (r *Registry) routeAdd(e types.Entity, id types.ComponentID) {
	idx := int(e.Index())
	cur := r.entityArch[idx]
	var ids []types.ComponentID
	if cur != nil {
		ids = append(ids, cur.ComponentIDs()...)
	}
	ids = append(ids, id)
	next := r.archetypes.GetOrCreate(ids, r.poolByID)
	if cur != nil {
		cur.Remove(e)
	}
	next.Push(e)
	r.entityArch[idx] = next
}

// routeRemove moves an entity to the archetype excluding id. When the
// remaining set is empty the entity leaves archetype tracking entirely.
func (r *Registry) routeRemove(e types.Entity, id types.ComponentID) {
	idx := int(e.Index())
	cur := r.entityArch[idx]
	if cur == nil {
		return
	}
	ids := make([]types.ComponentID, 0, len(cur.ComponentIDs())-1)
	for _, v := range cur.ComponentIDs() {
		if v != id {
			ids = append(ids, v)
		}
	}
	cur.Remove(e)
	if len(ids) == 0 {
		r.entityArch[idx] = nil
		return
	}
	next := r.archetypes.GetOrCreate(ids, r.poolByID)
	next.Push(e)
	r.entityArch[idx] = next
}
