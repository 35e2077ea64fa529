package picture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/types"
)

func TestNewManager_DefaultPictureCount(t *testing.T) {
	m := NewManager(0, 1)
	assert.Equal(t, DefaultPictureCount, m.NPictures())
}

func TestNewManager_ExplicitPictureCount(t *testing.T) {
	m := NewManager(3, 1)
	assert.Equal(t, 3, m.NPictures())
	assert.Len(t, m.Pictures(), 3)
}

func TestManager_AddLoose_Point_PopulatesEveryPicture(t *testing.T) {
	m := NewManager(4, 123)
	spec := LooseSpec{ID: 1, Kind: types.KindPoint}

	require.NoError(t, m.AddLoose(spec))
	for _, pic := range m.Pictures() {
		assert.True(t, pic.Has(construction.ObjectID(1)))
		assert.Equal(t, 1, pic.Len())
	}
}

func TestManager_AddLoose_DeterministicAcrossSeeds(t *testing.T) {
	spec := LooseSpec{ID: 1, Kind: types.KindPoint}

	a := NewManager(2, 99)
	require.NoError(t, a.AddLoose(spec))

	b := NewManager(2, 99)
	require.NoError(t, b.AddLoose(spec))

	for i := range a.Pictures() {
		va, _ := a.Pictures()[i].GetAnalytic(1)
		vb, _ := b.Pictures()[i].GetAnalytic(1)
		assert.True(t, va.Eq(vb))
	}
}

func TestManager_AddLoose_PicturesDifferIndependently(t *testing.T) {
	m := NewManager(3, 7)
	require.NoError(t, m.AddLoose(LooseSpec{ID: 1, Kind: types.KindPoint}))

	v0, _ := m.Pictures()[0].GetAnalytic(1)
	v1, _ := m.Pictures()[1].GetAnalytic(1)
	assert.False(t, v0.Eq(v1))
}

func TestManager_AddLoose_LineAndCircleKinds(t *testing.T) {
	m := NewManager(2, 55)

	require.NoError(t, m.AddLoose(LooseSpec{ID: 1, Kind: types.KindLine}))
	require.NoError(t, m.AddLoose(LooseSpec{ID: 2, Kind: types.KindCircle}))

	for _, pic := range m.Pictures() {
		assert.True(t, pic.Has(1))
		assert.True(t, pic.Has(2))
	}
}

func TestManager_Clone_IsIndependentAndPreservesContent(t *testing.T) {
	m := NewManager(2, 10)
	require.NoError(t, m.AddLoose(LooseSpec{ID: 1, Kind: types.KindPoint}))

	clone := m.Clone()
	clone.Pictures()[0].Add(2, analytic.ObjectFromPoint(analytic.NewPoint(2, 2)))

	assert.Equal(t, 1, m.Pictures()[0].Len())
	assert.Equal(t, 2, clone.Pictures()[0].Len())

	orig, _ := m.Pictures()[0].GetAnalytic(1)
	cloned, _ := clone.Pictures()[0].GetAnalytic(1)
	assert.True(t, orig.Eq(cloned))
}
