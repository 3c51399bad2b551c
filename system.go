package necs

import (
	"reflect"

	"github.com/rotisserie/eris"

	"github.com/MissaelAnda/necs/log"
)

// System is a user-supplied behavior bound to a view descriptor. A system
// participates in the lifecycle through whichever hook interfaces it
// implements; each hook is invoked once per Cursor of the system's view.
// A nil descriptor runs the hooks once with a nil Cursor, which is how
// queue-feeding systems that do not iterate entities are written.
type System interface {
	Descriptor() *ViewDescriptor
}

// StartSystem runs once during the Start phase.
type StartSystem interface {
	System
	Start(*Cursor) error
}

// PreProcessSystem runs when drained from the pre-process queue, before
// any Process system of that frame.
type PreProcessSystem interface {
	System
	PreProcess(*Cursor) error
}

// ProcessSystem runs every Process call.
type ProcessSystem interface {
	System
	Process(*Cursor) error
}

// PostProcessSystem runs when drained from the post-process queue, after
// the last Process system of that frame.
type PostProcessSystem interface {
	System
	PostProcess(*Cursor) error
}

// SingleFrameSystem runs once at the next single-frame drain point, which
// follows every dispatched system.
type SingleFrameSystem interface {
	System
	SingleFrame(*Cursor) error
}

// EndSystem runs once during the End phase.
type EndSystem interface {
	System
	End(*Cursor) error
}

// Notificable receives lifecycle notifications: OnRegistryStart before the
// Start systems run, OnRegistryEnd after the End systems ran.
type Notificable interface {
	OnRegistryStart()
	OnRegistryEnd()
}

type systemEntry struct {
	sys    System
	name   string
	logger log.Logger
}

func systemName(s System) string {
	rt := reflect.TypeOf(s)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if name := rt.Name(); name != "" {
		return name
	}
	return rt.String()
}

func (r *Registry) newEntry(s System) *systemEntry {
	name := systemName(s)
	return &systemEntry{
		sys:    s,
		name:   name,
		logger: r.logger.CreateSystemLogger(name),
	}
}

// AddSystem registers a system for lifecycle dispatch. The system must
// implement at least one hook.
func (r *Registry) AddSystem(s System) error {
	if s == nil {
		return eris.New("cannot add a nil system")
	}
	if !implementsAnyHook(s) {
		return eris.Errorf("system %s implements no lifecycle hooks", systemName(s))
	}
	r.systems = append(r.systems, r.newEntry(s))
	return nil
}

func implementsAnyHook(s System) bool {
	switch s.(type) {
	case StartSystem, PreProcessSystem, ProcessSystem, PostProcessSystem, SingleFrameSystem, EndSystem:
		return true
	}
	return false
}

// RemoveSystem unregisters every system of concrete type T from every hook
// list and returns whether any was removed.
func RemoveSystem[T any](r *Registry) bool {
	removed := false
	kept := r.systems[:0]
	for _, entry := range r.systems {
		if isSystemType[T](entry.sys) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	r.systems = kept
	return removed
}

// GetSystem returns the first registered system whose concrete type is T.
func GetSystem[T any](r *Registry) (T, bool) {
	for _, entry := range r.systems {
		if isSystemType[T](entry.sys) {
			if s, ok := entry.sys.(T); ok {
				return s, true
			}
		}
	}
	var zero T
	return zero, false
}

// HasSystem reports whether a system of concrete type T is registered.
func HasSystem[T any](r *Registry) bool {
	for _, entry := range r.systems {
		if isSystemType[T](entry.sys) {
			return true
		}
	}
	return false
}

// isSystemType matches a registered system against T, tolerating the usual
// value/pointer registration mismatch.
func isSystemType[T any](s System) bool {
	want := reflect.TypeOf((*T)(nil)).Elem()
	got := reflect.TypeOf(s)
	if got == want {
		return true
	}
	for got.Kind() == reflect.Pointer {
		got = got.Elem()
	}
	for want.Kind() == reflect.Pointer {
		want = want.Elem()
	}
	return got == want
}

// Subscribe registers a lifecycle notificable.
func (r *Registry) Subscribe(n Notificable) {
	r.notificables = append(r.notificables, n)
}

// Unsubscribe removes a previously subscribed notificable.
func (r *Registry) Unsubscribe(n Notificable) {
	kept := r.notificables[:0]
	for _, v := range r.notificables {
		if v != n {
			kept = append(kept, v)
		}
	}
	r.notificables = kept
}

// EnqueueSingleFrame queues s for one-shot execution at the next
// single-frame drain point. Legal from any system body.
func (r *Registry) EnqueueSingleFrame(s SingleFrameSystem) {
	r.singleFrame = append(r.singleFrame, r.newEntry(s))
}

// EnqueuePreProcess queues s for one-shot execution at the start of the
// next Process call.
func (r *Registry) EnqueuePreProcess(s PreProcessSystem) {
	r.preProcess = append(r.preProcess, r.newEntry(s))
}

// EnqueuePostProcess queues s for one-shot execution at the end of the
// current or next Process call.
func (r *Registry) EnqueuePostProcess(s PostProcessSystem) {
	r.postProcess = append(r.postProcess, r.newEntry(s))
}
