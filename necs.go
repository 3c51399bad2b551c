// Package necs is a data-oriented entity-component-system registry: an
// in-process store that associates arbitrarily typed component values with
// lightweight entity handles, partitions entities by the exact set of
// component types they own (their archetype), answers include/exclude
// queries over those sets, and drives a lifecycle of user-supplied systems
// that iterate the matching entities.
//
// The Registry is the single public surface. Component types register
// themselves the first time they are used:
//
//	r := necs.NewRegistry()
//	e := r.Create()
//	necs.AddValue(r, e, Position{X: 1, Y: 2})
//	necs.AddValue(r, e, Velocity{X: 1})
//
//	v, _ := necs.NewView().With(necs.C[Position](), necs.C[Velocity]()).Build(r)
//	v.EachCursor(func(c *necs.Cursor) bool {
//		pos, _ := necs.CursorRef[Position](c)
//		vel, _ := necs.CursorGet[Velocity](c)
//		pos.X += vel.X
//		return true
//	})
//
// Dispatch is sequential and single-threaded; a Registry must not be
// shared between goroutines without external synchronization.
package necs
