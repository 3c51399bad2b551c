package necs

import (
	"reflect"

	"github.com/MissaelAnda/necs/storage"
	"github.com/MissaelAnda/necs/types"
)

// poolFor resolves the typed pool for T, creating it when create is set.
// Components register themselves by being used; Register only exists to
// pre-create a pool so views over never-owned types do not fail.
func poolFor[T any](r *Registry, create bool) (*storage.Pool[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := r.typeIDs[rt]; ok {
		return r.pools[id].(*storage.Pool[T]), nil
	}
	if !create {
		return nil, invalidComponentErr(types.Ref[T]().Name())
	}
	id := r.nextID
	p, err := storage.NewPool[T](id)
	if err != nil {
		return nil, err
	}
	if err := r.addPool(p); err != nil {
		return nil, err
	}
	r.nextID++
	return p, nil
}

// Register pre-creates the pool for T.
func Register[T any](r *Registry) error {
	_, err := poolFor[T](r, true)
	return err
}

// Exists reports whether a pool for T exists.
func Exists[T any](r *Registry) bool {
	_, ok := r.typeIDs[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Add attaches the zero value of T to the entity. Adding a component the
// entity already owns is a no-op; the first value wins.
func Add[T any](r *Registry, e types.Entity) error {
	var zero T
	return AddValue(r, e, zero)
}

// AddValue attaches v to the entity, shifting it to the archetype that
// includes T. No-op when the entity already owns a T.
func AddValue[T any](r *Registry, e types.Entity, v T) error {
	if err := r.validate(e); err != nil {
		return err
	}
	p, err := poolFor[T](r, true)
	if err != nil {
		return err
	}
	if p.Has(e) {
		return nil
	}
	p.Add(e, v)
	r.routeAdd(e, p.ID())
	return nil
}

// SetZero overwrites the entity's T with the zero value, attaching it
// first when absent.
func SetZero[T any](r *Registry, e types.Entity) error {
	var zero T
	return Set(r, e, zero)
}

// Set overwrites the entity's T in place, attaching it first when absent.
func Set[T any](r *Registry, e types.Entity, v T) error {
	if err := r.validate(e); err != nil {
		return err
	}
	p, err := poolFor[T](r, true)
	if err != nil {
		return err
	}
	had := p.Has(e)
	p.Set(e, v)
	if !had {
		r.routeAdd(e, p.ID())
	}
	return nil
}

// Get copies out the entity's T.
func Get[T any](r *Registry, e types.Entity) (T, error) {
	var zero T
	if err := r.validate(e); err != nil {
		return zero, err
	}
	p, err := poolFor[T](r, false)
	if err != nil {
		return zero, err
	}
	v, ok := p.Get(e)
	if !ok {
		return zero, missingComponentErr(e, p.Name())
	}
	return v, nil
}

// GetRef returns a pointer to the entity's T for in-place mutation. The
// pointer is valid until the value is removed, its entity destroyed, or
// the pool grows; re-fetch rather than holding it across mutations.
func GetRef[T any](r *Registry, e types.Entity) (*T, error) {
	if err := r.validate(e); err != nil {
		return nil, err
	}
	p, err := poolFor[T](r, false)
	if err != nil {
		return nil, err
	}
	ref, ok := p.Ref(e)
	if !ok {
		return nil, missingComponentErr(e, p.Name())
	}
	return ref, nil
}

// GetOrNull returns a pointer to the entity's T, or nil when the entity
// does not own one (including when no pool exists). This is the
// non-raising read.
func GetOrNull[T any](r *Registry, e types.Entity) (*T, error) {
	if err := r.validate(e); err != nil {
		return nil, err
	}
	p, err := poolFor[T](r, false)
	if err != nil {
		return nil, nil
	}
	ref, _ := p.Ref(e)
	return ref, nil
}

// GetOrCreate returns the entity's T, attaching the zero value first when
// absent.
func GetOrCreate[T any](r *Registry, e types.Entity) (T, error) {
	ref, err := GetOrCreateRef[T](r, e)
	if err != nil {
		var zero T
		return zero, err
	}
	return *ref, nil
}

// GetOrCreateRef returns a pointer to the entity's T, attaching the zero
// value first when absent.
func GetOrCreateRef[T any](r *Registry, e types.Entity) (*T, error) {
	if err := r.validate(e); err != nil {
		return nil, err
	}
	p, err := poolFor[T](r, true)
	if err != nil {
		return nil, err
	}
	if ref, ok := p.Ref(e); ok {
		return ref, nil
	}
	var zero T
	p.Add(e, zero)
	r.routeAdd(e, p.ID())
	ref, _ := p.Ref(e)
	return ref, nil
}

// Has reports whether the entity owns a T. Invalid handles and
// unregistered types report false; this is a non-raising query.
func Has[T any](r *Registry, e types.Entity) bool {
	if r.validate(e) != nil {
		return false
	}
	p, err := poolFor[T](r, false)
	if err != nil {
		return false
	}
	return p.Has(e)
}

// Remove detaches the entity's T. Removing an absent component is a no-op.
func Remove[T any](r *Registry, e types.Entity) error {
	if err := r.validate(e); err != nil {
		return err
	}
	p, err := poolFor[T](r, false)
	if err != nil {
		return err
	}
	if _, ok := p.Remove(e); ok {
		r.routeRemove(e, p.ID())
	}
	return nil
}

// GetAndRemove detaches the entity's T and returns the prior value.
func GetAndRemove[T any](r *Registry, e types.Entity) (T, error) {
	var zero T
	if err := r.validate(e); err != nil {
		return zero, err
	}
	p, err := poolFor[T](r, false)
	if err != nil {
		return zero, err
	}
	v, ok := p.Remove(e)
	if !ok {
		return zero, missingComponentErr(e, p.Name())
	}
	r.routeRemove(e, p.ID())
	return v, nil
}

// CreateWith creates an entity owning the zero value of T.
func CreateWith[T any](r *Registry) (types.Entity, error) {
	var zero T
	return CreateWithValue(r, zero)
}

// CreateWithValue creates an entity owning v.
func CreateWithValue[T any](r *Registry, v T) (types.Entity, error) {
	e := r.Create()
	if err := AddValue(r, e, v); err != nil {
		return types.Invalid, err
	}
	return e, nil
}
