package necs

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/MissaelAnda/necs/filter"
	"github.com/MissaelAnda/necs/types"
)

var (
	// ErrInvalidEntity is raised when a handle does not name a live slot:
	// out of range, freed, or version mismatch.
	ErrInvalidEntity = eris.New("invalid entity")

	// ErrInvalidComponent is raised when an operation references a
	// component type with no pool. Register pre-empts it.
	ErrInvalidComponent = eris.New("invalid component")

	// ErrMissingComponent is raised when the pool exists but the entity
	// does not own a value of that type.
	ErrMissingComponent = eris.New("missing component")

	// ErrInvalidView is raised when a view descriptor or query references
	// unregistered component types; the message enumerates them.
	ErrInvalidView = eris.New("invalid view")

	// ErrNotStarted is raised by lifecycle operations that require a
	// started registry.
	ErrNotStarted = eris.New("registry not started")
)

func invalidEntityErr(e types.Entity) error {
	return eris.Wrapf(ErrInvalidEntity, "entity %s is not alive", e)
}

func invalidComponentErr(name string) error {
	return eris.Wrapf(ErrInvalidComponent, "component %s is not registered", name)
}

func missingComponentErr(e types.Entity, name string) error {
	return eris.Wrapf(ErrMissingComponent, "entity %s has no %s", e, name)
}

func invalidViewErr(names []string) error {
	return eris.Wrapf(ErrInvalidView, "unknown components: %s", strings.Join(names, ", "))
}

// viewError converts filter compile failures into the view error kind,
// passing other errors through untouched.
func viewError(err error) error {
	var unknown *filter.UnknownComponentsError
	if eris.As(err, &unknown) {
		return invalidViewErr(unknown.Names)
	}
	return err
}

// isMissingComponent matches the absences tolerated during iteration: the
// entity lost the component, or was destroyed outright.
func isMissingComponent(err error) bool {
	return eris.Is(err, ErrMissingComponent) || eris.Is(err, ErrInvalidEntity)
}
