package types

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestEntityPacking(t *testing.T) {
	e := NewEntity(42, 7)
	assert.Equal(t, uint32(42), e.Index())
	assert.Equal(t, uint32(7), e.Version())
	assert.Check(t, e.Valid())

	// identity is the full 64-bit value
	assert.Check(t, e == NewEntity(42, 7))
	assert.Check(t, e != NewEntity(42, 8))
	assert.Check(t, e != NewEntity(43, 7))
}

func TestInvalidSentinel(t *testing.T) {
	assert.Check(t, !Invalid.Valid())
	assert.Check(t, !NewEntity(99, math.MaxUint32).Valid())
}

func TestNextVersionSkipsSentinel(t *testing.T) {
	assert.Equal(t, uint32(1), NextVersion(0))
	assert.Equal(t, uint32(0), NextVersion(math.MaxUint32-1))
}

func TestRefNames(t *testing.T) {
	type Position struct{ X int }
	assert.Equal(t, "Position", Ref[Position]().Name())
	assert.Equal(t, Ref[Position]().Type(), RefOf(Ref[Position]().Type()).Type())
}
