// Package log wraps zerolog with helpers for structured entity, component
// and system events.
package log

import (
	"github.com/MissaelAnda/necs/types"
	"github.com/rs/zerolog"
)

// Loggable is anything that can report its registered components and
// systems; the registry implements it.
type Loggable interface {
	ComponentNames() []string
	SystemNames() []string
}

type Logger struct {
	*zerolog.Logger
}

// New wraps an existing zerolog logger.
func New(zl *zerolog.Logger) Logger {
	return Logger{zl}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	zl := zerolog.Nop()
	return Logger{&zl}
}

func componentsArray(names []string) *zerolog.Array {
	arr := zerolog.Arr()
	for _, name := range names {
		arr = arr.Str(name)
	}
	return arr
}

// LogComponents logs the component registrations of the target.
func (l Logger) LogComponents(target Loggable, level zerolog.Level) {
	names := target.ComponentNames()
	l.WithLevel(level).
		Int("total_components", len(names)).
		Array("components", componentsArray(names)).
		Send()
}

// LogSystems logs the system registrations of the target.
func (l Logger) LogSystems(target Loggable, level zerolog.Level) {
	names := target.SystemNames()
	l.WithLevel(level).
		Int("total_systems", len(names)).
		Array("systems", componentsArray(names)).
		Send()
}

// LogWorld logs both component and system registrations.
func (l Logger) LogWorld(target Loggable, level zerolog.Level) {
	l.WithLevel(level).
		Int("total_components", len(target.ComponentNames())).
		Array("components", componentsArray(target.ComponentNames())).
		Int("total_systems", len(target.SystemNames())).
		Array("systems", componentsArray(target.SystemNames())).
		Send()
}

// LogEntity logs an entity with its archetype and component names.
func (l Logger) LogEntity(level zerolog.Level, e types.Entity, arch types.ArchetypeID, components []string) {
	l.WithLevel(level).
		Uint32("entity_index", e.Index()).
		Uint32("entity_version", e.Version()).
		Int("archetype_id", int(arch)).
		Array("components", componentsArray(components)).
		Send()
}

// CreateSystemLogger returns a sub-logger tagged {"system": name}.
func (l Logger) CreateSystemLogger(name string) Logger {
	zl := l.Logger.With().Str("system", name).Logger()
	return Logger{&zl}
}
