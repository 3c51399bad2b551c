package necs

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/MissaelAnda/necs/codec"
	"github.com/MissaelAnda/necs/storage"
	"github.com/MissaelAnda/necs/types"
)

// snapshot is the serialized world state: the raw entity table (slots,
// liveness, free-list, preserving versions of freed slots) and every
// pool's values keyed by owning entity. Archetypes are not serialized;
// they are re-derived from component ownership on restore.
type snapshot struct {
	Slots []types.Entity `json:"slots"`
	Live  []bool         `json:"live"`
	Free  []int          `json:"free"`
	Pools []poolSnapshot `json:"pools"`
}

type poolSnapshot struct {
	Name   string                           `json:"name"`
	Schema json.RawMessage                  `json:"schema"`
	Values map[types.Entity]json.RawMessage `json:"values"`
}

// Snapshot serializes the registry's entities and component values.
func (r *Registry) Snapshot() ([]byte, error) {
	slots, live, free := r.entities.Raw()
	snap := snapshot{
		Slots: slots,
		Live:  live,
		Free:  free,
	}
	for _, id := range r.poolOrder {
		p := r.pools[id]
		ps := poolSnapshot{
			Name:   p.Name(),
			Schema: p.Schema(),
			Values: make(map[types.Entity]json.RawMessage),
		}
		for pos := 0; pos < r.entities.Size(); pos++ {
			e, ok := r.entities.TryGet(pos)
			if !ok || !p.Has(e) {
				continue
			}
			bz, err := p.Encode(e)
			if err != nil {
				return nil, err
			}
			ps.Values[e] = bz
		}
		snap.Pools = append(snap.Pools, ps)
	}
	return codec.Encode(snap)
}

// Restore loads a snapshot into a fresh registry. Every pool named in the
// snapshot must already be registered (by component type name), and its
// stored schema must match the live registration. Restoring over existing
// entities is refused.
func (r *Registry) Restore(bz []byte) error {
	if r.entities.Count() > 0 {
		return eris.New("cannot restore into a registry with live entities")
	}
	snap, err := codec.Decode[snapshot](bz)
	if err != nil {
		return err
	}
	for _, ps := range snap.Pools {
		id, ok := r.nameIDs[ps.Name]
		if !ok {
			return invalidComponentErr(ps.Name)
		}
		valid, err := types.IsSchemaValid(r.pools[id].Schema(), ps.Schema)
		if err != nil {
			return err
		}
		if !valid {
			return eris.Errorf("component %s does not match the saved state schema", ps.Name)
		}
	}
	r.entities = storage.LoadSlotArray(false, snap.Slots, snap.Live, snap.Free)
	r.entityArch = make([]*storage.Archetype, r.entities.Size())
	for _, ps := range snap.Pools {
		p := r.pools[r.nameIDs[ps.Name]]
		for e, raw := range ps.Values {
			if err := r.validate(e); err != nil {
				return eris.Wrapf(err, "snapshot names %s in pool %s", e, ps.Name)
			}
			if err := p.DecodeInto(e, raw); err != nil {
				return err
			}
		}
	}
	r.rebuildRouting()
	return nil
}

// DumpEntity returns the JSON encoding of every component value the
// entity owns, keyed by component name.
func (r *Registry) DumpEntity(e types.Entity) (map[string]json.RawMessage, error) {
	if err := r.validate(e); err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage)
	arch := r.entityArch[e.Index()]
	if arch == nil {
		return out, nil
	}
	for _, p := range arch.Pools() {
		bz, err := p.Encode(e)
		if err != nil {
			return nil, err
		}
		out[p.Name()] = bz
	}
	return out, nil
}

// rebuildRouting re-derives every entity's archetype from current pool
// ownership. Archetype ids after a restore depend on entity order, not on
// the order of the original run.
func (r *Registry) rebuildRouting() {
	for pos := 0; pos < r.entities.Size(); pos++ {
		e, ok := r.entities.TryGet(pos)
		if !ok {
			continue
		}
		var ids []types.ComponentID
		for _, id := range r.poolOrder {
			if r.pools[id].Has(e) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}
		arch := r.archetypes.GetOrCreate(ids, r.poolByID)
		arch.Push(e)
		r.entityArch[pos] = arch
	}
}
