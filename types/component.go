package types

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"
)

// ComponentRef names a component type without requiring it to be registered
// yet. Refs are how callers spell component types in descriptors and
// filters before any entity owns a value of that type.
type ComponentRef struct {
	rt reflect.Type
}

// Ref returns the reference for component type T.
func Ref[T any]() ComponentRef {
	return ComponentRef{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// RefOf wraps an already-resolved reflect.Type.
func RefOf(rt reflect.Type) ComponentRef {
	return ComponentRef{rt: rt}
}

// Type returns the underlying component type.
func (r ComponentRef) Type() reflect.Type {
	return r.rt
}

// Name is the bare type name, the identity used by the query language and
// by snapshot schemas.
func (r ComponentRef) Name() string {
	if r.rt == nil {
		return "<nil>"
	}
	if name := r.rt.Name(); name != "" {
		return name
	}
	return r.rt.String()
}

// ComponentInfo is the type-erased registration record of a component pool.
type ComponentInfo interface {
	// ID returns the id assigned at registration. It never changes.
	ID() ComponentID
	Name() string
	Type() reflect.Type
	// Schema returns the JSON schema captured at registration.
	Schema() []byte
}

// SerializeComponentSchema captures the JSON schema of a component value.
func SerializeComponentSchema(v any) ([]byte, error) {
	schema := jsonschema.Reflect(v)
	bz, err := schema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return bz, nil
}

// IsSchemaValid reports whether two JSON schemas describe the same shape.
func IsSchemaValid(a, b []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(a, b)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}
