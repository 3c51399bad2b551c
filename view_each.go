package necs

import (
	"github.com/MissaelAnda/necs/types"
)

// The EachN family unpacks the requested component types for every visited
// entity. Entities that lost one of the requested components mid-iteration
// are skipped. The callback returns false to stop.

func Each1[T1 any](v *View, fn func(types.Entity, *T1) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1) {
			return errStopIteration
		}
		return nil
	})
}

func Each2[T1, T2 any](v *View, fn func(types.Entity, *T1, *T2) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2) {
			return errStopIteration
		}
		return nil
	})
}

func Each3[T1, T2, T3 any](v *View, fn func(types.Entity, *T1, *T2, *T3) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3) {
			return errStopIteration
		}
		return nil
	})
}

func Each4[T1, T2, T3, T4 any](v *View, fn func(types.Entity, *T1, *T2, *T3, *T4) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		p4, err := CursorRef[T4](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3, p4) {
			return errStopIteration
		}
		return nil
	})
}

func Each5[T1, T2, T3, T4, T5 any](v *View, fn func(types.Entity, *T1, *T2, *T3, *T4, *T5) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		p4, err := CursorRef[T4](c)
		if err != nil {
			return skipOrFail(err)
		}
		p5, err := CursorRef[T5](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3, p4, p5) {
			return errStopIteration
		}
		return nil
	})
}

func Each6[T1, T2, T3, T4, T5, T6 any](v *View, fn func(types.Entity, *T1, *T2, *T3, *T4, *T5, *T6) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		p4, err := CursorRef[T4](c)
		if err != nil {
			return skipOrFail(err)
		}
		p5, err := CursorRef[T5](c)
		if err != nil {
			return skipOrFail(err)
		}
		p6, err := CursorRef[T6](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3, p4, p5, p6) {
			return errStopIteration
		}
		return nil
	})
}

func Each7[T1, T2, T3, T4, T5, T6, T7 any](v *View, fn func(types.Entity, *T1, *T2, *T3, *T4, *T5, *T6, *T7) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		p4, err := CursorRef[T4](c)
		if err != nil {
			return skipOrFail(err)
		}
		p5, err := CursorRef[T5](c)
		if err != nil {
			return skipOrFail(err)
		}
		p6, err := CursorRef[T6](c)
		if err != nil {
			return skipOrFail(err)
		}
		p7, err := CursorRef[T7](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3, p4, p5, p6, p7) {
			return errStopIteration
		}
		return nil
	})
}

func Each8[T1, T2, T3, T4, T5, T6, T7, T8 any](v *View, fn func(types.Entity, *T1, *T2, *T3, *T4, *T5, *T6, *T7, *T8) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		p4, err := CursorRef[T4](c)
		if err != nil {
			return skipOrFail(err)
		}
		p5, err := CursorRef[T5](c)
		if err != nil {
			return skipOrFail(err)
		}
		p6, err := CursorRef[T6](c)
		if err != nil {
			return skipOrFail(err)
		}
		p7, err := CursorRef[T7](c)
		if err != nil {
			return skipOrFail(err)
		}
		p8, err := CursorRef[T8](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3, p4, p5, p6, p7, p8) {
			return errStopIteration
		}
		return nil
	})
}

func Each9[T1, T2, T3, T4, T5, T6, T7, T8, T9 any](v *View, fn func(types.Entity, *T1, *T2, *T3, *T4, *T5, *T6, *T7, *T8, *T9) bool) error {
	return v.eachCursorErr(func(c *Cursor) error {
		p1, err := CursorRef[T1](c)
		if err != nil {
			return skipOrFail(err)
		}
		p2, err := CursorRef[T2](c)
		if err != nil {
			return skipOrFail(err)
		}
		p3, err := CursorRef[T3](c)
		if err != nil {
			return skipOrFail(err)
		}
		p4, err := CursorRef[T4](c)
		if err != nil {
			return skipOrFail(err)
		}
		p5, err := CursorRef[T5](c)
		if err != nil {
			return skipOrFail(err)
		}
		p6, err := CursorRef[T6](c)
		if err != nil {
			return skipOrFail(err)
		}
		p7, err := CursorRef[T7](c)
		if err != nil {
			return skipOrFail(err)
		}
		p8, err := CursorRef[T8](c)
		if err != nil {
			return skipOrFail(err)
		}
		p9, err := CursorRef[T9](c)
		if err != nil {
			return skipOrFail(err)
		}
		if !fn(c.Entity(), p1, p2, p3, p4, p5, p6, p7, p8, p9) {
			return errStopIteration
		}
		return nil
	})
}

// skipOrFail keeps walking when the current entity merely lost a requested
// component, and aborts on structural errors (unregistered types).
func skipOrFail(err error) error {
	if isMissingComponent(err) {
		return nil
	}
	return err
}
