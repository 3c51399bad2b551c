package necs

import (
	"github.com/MissaelAnda/necs/types"
)

// The GetN family resolves several components of one entity in a single
// call. Every requested type must be owned; the first absence aborts with
// the same error Get would raise.

func Get2[T1, T2 any](r *Registry, e types.Entity) (T1, T2, error) {
	v1, err := Get[T1](r, e)
	if err != nil {
		var z2 T2
		return v1, z2, err
	}
	v2, err := Get[T2](r, e)
	return v1, v2, err
}

func Get3[T1, T2, T3 any](r *Registry, e types.Entity) (T1, T2, T3, error) {
	v1, v2, err := Get2[T1, T2](r, e)
	if err != nil {
		var z3 T3
		return v1, v2, z3, err
	}
	v3, err := Get[T3](r, e)
	return v1, v2, v3, err
}

func Get4[T1, T2, T3, T4 any](r *Registry, e types.Entity) (T1, T2, T3, T4, error) {
	v1, v2, v3, err := Get3[T1, T2, T3](r, e)
	if err != nil {
		var z4 T4
		return v1, v2, v3, z4, err
	}
	v4, err := Get[T4](r, e)
	return v1, v2, v3, v4, err
}

func Get5[T1, T2, T3, T4, T5 any](r *Registry, e types.Entity) (T1, T2, T3, T4, T5, error) {
	v1, v2, v3, v4, err := Get4[T1, T2, T3, T4](r, e)
	if err != nil {
		var z5 T5
		return v1, v2, v3, v4, z5, err
	}
	v5, err := Get[T5](r, e)
	return v1, v2, v3, v4, v5, err
}

func Get6[T1, T2, T3, T4, T5, T6 any](r *Registry, e types.Entity) (T1, T2, T3, T4, T5, T6, error) {
	v1, v2, v3, v4, v5, err := Get5[T1, T2, T3, T4, T5](r, e)
	if err != nil {
		var z6 T6
		return v1, v2, v3, v4, v5, z6, err
	}
	v6, err := Get[T6](r, e)
	return v1, v2, v3, v4, v5, v6, err
}

func Get7[T1, T2, T3, T4, T5, T6, T7 any](r *Registry, e types.Entity) (T1, T2, T3, T4, T5, T6, T7, error) {
	v1, v2, v3, v4, v5, v6, err := Get6[T1, T2, T3, T4, T5, T6](r, e)
	if err != nil {
		var z7 T7
		return v1, v2, v3, v4, v5, v6, z7, err
	}
	v7, err := Get[T7](r, e)
	return v1, v2, v3, v4, v5, v6, v7, err
}

func Get8[T1, T2, T3, T4, T5, T6, T7, T8 any](r *Registry, e types.Entity) (T1, T2, T3, T4, T5, T6, T7, T8, error) {
	v1, v2, v3, v4, v5, v6, v7, err := Get7[T1, T2, T3, T4, T5, T6, T7](r, e)
	if err != nil {
		var z8 T8
		return v1, v2, v3, v4, v5, v6, v7, z8, err
	}
	v8, err := Get[T8](r, e)
	return v1, v2, v3, v4, v5, v6, v7, v8, err
}

func Get9[T1, T2, T3, T4, T5, T6, T7, T8, T9 any](r *Registry, e types.Entity) (T1, T2, T3, T4, T5, T6, T7, T8, T9, error) {
	v1, v2, v3, v4, v5, v6, v7, v8, err := Get8[T1, T2, T3, T4, T5, T6, T7, T8](r, e)
	if err != nil {
		var z9 T9
		return v1, v2, v3, v4, v5, v6, v7, v8, z9, err
	}
	v9, err := Get[T9](r, e)
	return v1, v2, v3, v4, v5, v6, v7, v8, v9, err
}
