package necs_test

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"

	necs "github.com/MissaelAnda/necs"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := necs.NewRegistry()
	a, err := necs.CreateWithValue(src, Pos{1, 2})
	require.NoError(t, err)
	require.NoError(t, necs.AddValue(src, a, Vel{3, 4}))
	b, err := necs.CreateWithValue(src, Pos{5, 6})
	require.NoError(t, err)
	empty := src.Create()

	// a destroyed entity's slot version must survive the round trip
	doomed := src.Create()
	require.NoError(t, src.Destroy(doomed))

	bz, err := src.Snapshot()
	require.NoError(t, err)

	dst := necs.NewRegistry()
	require.NoError(t, necs.Register[Pos](dst))
	require.NoError(t, necs.Register[Vel](dst))
	require.NoError(t, dst.Restore(bz))

	require.Equal(t, src.EntitiesCount(), dst.EntitiesCount())
	require.True(t, dst.Alive(a))
	require.True(t, dst.Alive(b))
	require.True(t, dst.Alive(empty))
	require.False(t, dst.Alive(doomed))

	pos, vel, err := necs.Get2[Pos, Vel](dst, a)
	require.NoError(t, err)
	require.Equal(t, Pos{1, 2}, pos)
	require.Equal(t, Vel{3, 4}, vel)

	pos, err = necs.Get[Pos](dst, b)
	require.NoError(t, err)
	require.Equal(t, Pos{5, 6}, pos)

	isEmpty, err := dst.IsEmpty(empty)
	require.NoError(t, err)
	require.True(t, isEmpty)

	// the freed slot reuses with a bumped version, exactly as the source
	// would have
	next := dst.Create()
	require.Equal(t, doomed.Index(), next.Index())
	require.Equal(t, doomed.Version()+1, next.Version())

	// restored archetypes answer queries
	v, err := dst.View(necs.C[Pos](), necs.C[Vel]())
	require.NoError(t, err)
	require.Equal(t, []necs.Entity{a}, v.Entities())
}

func TestRestoreRequiresRegisteredComponents(t *testing.T) {
	src := necs.NewRegistry()
	_, err := necs.CreateWithValue(src, Pos{1, 1})
	require.NoError(t, err)
	bz, err := src.Snapshot()
	require.NoError(t, err)

	dst := necs.NewRegistry()
	err = dst.Restore(bz)
	require.True(t, eris.Is(err, necs.ErrInvalidComponent))
}

func TestRestoreRefusesLiveEntities(t *testing.T) {
	src := necs.NewRegistry()
	bz, err := src.Snapshot()
	require.NoError(t, err)

	dst := necs.NewRegistry()
	dst.Create()
	require.Error(t, dst.Restore(bz))
}

func TestDumpEntity(t *testing.T) {
	r := necs.NewRegistry()
	e, err := necs.CreateWithValue(r, Pos{7, 8})
	require.NoError(t, err)

	dump, err := r.DumpEntity(e)
	require.NoError(t, err)
	require.Contains(t, string(dump["Pos"]), "7")

	_, err = r.DumpEntity(necs.Invalid)
	require.True(t, eris.Is(err, necs.ErrInvalidEntity))
}
