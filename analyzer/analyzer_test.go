package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/constructors"
	"github.com/mikenye/geogen/contextual"
	"github.com/mikenye/geogen/picture"
	"github.com/mikenye/geogen/registrar"
	"github.com/mikenye/geogen/runner"
	"github.com/mikenye/geogen/theorem"
	"github.com/mikenye/geogen/types"
)

func looseTriangle() []construction.ConfigurationObject {
	return []construction.ConfigurationObject{
		construction.Loose(1, types.KindPoint),
		construction.Loose(2, types.KindPoint),
		construction.Loose(3, types.KindPoint),
	}
}

func TestConstruct_RealizesEveryLooseObject(t *testing.T) {
	m, cd, err := Construct(looseTriangle(), 3, 42)
	require.NoError(t, err)
	assert.Nil(t, cd.InconstructibleObject)
	assert.Empty(t, cd.Duplicates)
	assert.Equal(t, 3, m.NPictures())
	for _, pic := range m.Pictures() {
		assert.True(t, pic.Has(1))
		assert.True(t, pic.Has(2))
		assert.True(t, pic.Has(3))
	}
}

func TestConstructByCloning_DetectsDuplicatePoint(t *testing.T) {
	base := []construction.ConfigurationObject{
		construction.Loose(1, types.KindPoint),
		construction.Loose(2, types.KindPoint),
	}
	m, cd, err := Construct(base, 2, 7)
	require.NoError(t, err)
	require.Nil(t, cd.InconstructibleObject)

	midpoint, err := construction.Constructed(3, constructors.Catalog["Midpoint"], []construction.ObjectID{1, 2})
	require.NoError(t, err)

	clone, cd2, err := ConstructByCloning(m, []construction.ConfigurationObject{midpoint})
	require.NoError(t, err)
	assert.Nil(t, cd2.InconstructibleObject)
	assert.Empty(t, cd2.Duplicates)
	assert.NotSame(t, m, clone)

	// Cloning again and constructing the same midpoint twice in a row
	// duplicates the second time.
	midpointAgain, err := construction.Constructed(4, constructors.Catalog["Midpoint"], []construction.ObjectID{1, 2})
	require.NoError(t, err)
	_, cd3, err := ConstructByCloning(clone, []construction.ConfigurationObject{midpointAgain})
	require.NoError(t, err)
	assert.Equal(t, construction.ObjectID(3), cd3.Duplicates[4])
}

func TestProbe_ReturnsPerPictureValueWithoutMutating(t *testing.T) {
	m, _, err := Construct(looseTriangle(), 2, 3)
	require.NoError(t, err)

	midpoint, err := construction.Constructed(4, constructors.Catalog["Midpoint"], []construction.ObjectID{1, 2})
	require.NoError(t, err)

	vals, ok, err := Probe(m, midpoint)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, vals, 2)
	for _, pic := range m.Pictures() {
		assert.False(t, pic.Has(4), "Probe must not mutate pictures")
	}
}

func TestCreate_BuildsContextualPictureOverManagerPictures(t *testing.T) {
	m, _, err := Construct(looseTriangle(), 2, 9)
	require.NoError(t, err)

	cp := Create(m)
	assert.Equal(t, 2, cp.NPictures())
	assert.True(t, cp.Contains(1))
	assert.True(t, cp.Contains(2))
	assert.True(t, cp.Contains(3))
}

func TestAnalyze_RegistersNewObjectsAndFindsTheorems(t *testing.T) {
	configuration := []construction.ConfigurationObject{
		construction.Loose(1, types.KindPoint),
		construction.Loose(2, types.KindPoint),
		construction.Loose(3, types.KindPoint),
	}
	m, cd, err := Construct(configuration, 1, 5)
	require.NoError(t, err)
	require.Nil(t, cd.InconstructibleObject)

	cp := Create(m)
	for _, obj := range configuration {
		require.NoError(t, cp.Add(obj))
	}

	known := runner.NewSet()
	midpoint, err := construction.Constructed(4, constructors.Catalog["Midpoint"], []construction.ObjectID{1, 2})
	require.NoError(t, err)

	result, err := Analyze(m, cp, known, []construction.ConfigurationObject{midpoint})
	require.NoError(t, err)
	assert.True(t, result.UnambiguouslyConstructible)
	assert.Equal(t, known.Len(), len(result.Theorems))
}

func TestAnalyze_DuplicateProducesSameObjectsTheoremOnly(t *testing.T) {
	configuration := []construction.ConfigurationObject{
		construction.Loose(1, types.KindPoint),
		construction.Loose(2, types.KindPoint),
		construction.Loose(3, types.KindPoint), // deliberately placed at the midpoint below
	}
	m, cd, err := Construct(configuration, 1, 11)
	require.NoError(t, err)
	require.Nil(t, cd.InconstructibleObject)

	// Force point 3's picture value to equal the midpoint of 1 and 2, so the
	// upcoming Midpoint construction is a guaranteed duplicate regardless of
	// the random layout.
	pic := m.Pictures()[0]
	p1, _ := pic.GetAnalytic(1)
	p2, _ := pic.GetAnalytic(2)
	mid := analytic.NewPoint((p1.Point().X()+p2.Point().X())/2, (p1.Point().Y()+p2.Point().Y())/2)
	pic.Add(3, analytic.ObjectFromPoint(mid))

	cp := Create(m)
	for _, obj := range configuration {
		require.NoError(t, cp.Add(obj))
	}

	known := runner.NewSet()
	midpoint, err := construction.Constructed(4, constructors.Catalog["Midpoint"], []construction.ObjectID{1, 2})
	require.NoError(t, err)

	result, err := Analyze(m, cp, known, []construction.ConfigurationObject{midpoint})
	require.NoError(t, err)
	assert.False(t, result.UnambiguouslyConstructible)
	require.Len(t, result.Theorems, 1)
	assert.Equal(t, theorem.SameObjects, result.Theorems[0].Kind)
	assert.Equal(t, 0, known.Len(), "no producer work runs on a duplicate, so nothing is added to the known set")
}

// TestScenario_MidpointTriangle exercises the full pipeline over a fixed,
// non-random two-picture layout: a midpoint triangle plus the line through
// the two base vertices, checking the defining parallel and incidence facts
// hold in both pictures (a fixed-coordinate instance of the midpoint-triangle
// configuration named in spec.md §8).
func TestScenario_MidpointTriangle(t *testing.T) {
	m := picture.NewManager(2, 21)
	layouts := []struct{ ax, ay, bx, by, cx, cy float64 }{
		{0, 0, 6, 0, 0, 4},
		{0, 0, 5, 0, 0, 6},
	}
	for i, pic := range m.Pictures() {
		l := layouts[i]
		pic.Add(1, analytic.ObjectFromPoint(analytic.NewPoint(l.ax, l.ay)))
		pic.Add(2, analytic.ObjectFromPoint(analytic.NewPoint(l.bx, l.by)))
		pic.Add(3, analytic.ObjectFromPoint(analytic.NewPoint(l.cx, l.cy)))
	}

	configuration := []construction.ConfigurationObject{
		construction.Loose(1, types.KindPoint),
		construction.Loose(2, types.KindPoint),
		construction.Loose(3, types.KindPoint),
	}
	addConstructed := func(id construction.ObjectID, name string, args []construction.ObjectID) construction.ConfigurationObject {
		obj, err := construction.Constructed(id, constructors.Catalog[name], args)
		require.NoError(t, err)
		_, err = registrar.Add(obj, m.Pictures())
		require.NoError(t, err)
		configuration = append(configuration, obj)
		return obj
	}
	addConstructed(4, "Midpoint", []construction.ObjectID{1, 2}) // D
	addConstructed(5, "Midpoint", []construction.ObjectID{1, 3}) // E
	addConstructed(6, "Midpoint", []construction.ObjectID{4, 5}) // F
	addConstructed(7, "LineFromPoints", []construction.ObjectID{2, 3})

	cp := Create(m)
	for _, obj := range configuration {
		require.NoError(t, cp.Add(obj))
	}

	all := FindAll(cp)

	hB, ok := cp.HandleFor(2)
	require.True(t, ok)
	hD, ok := cp.HandleFor(4)
	require.True(t, ok)
	hE, ok := cp.HandleFor(5)
	require.True(t, ok)
	hLineBC, ok := cp.HandleFor(7)
	require.True(t, ok)

	var deHandle theorem.TheoremObject
	found := false
	for _, l := range cp.GetLines(contextual.FilterAll) {
		if l.ID == hLineBC {
			continue
		}
		_, hasD := l.Points[hD]
		_, hasE := l.Points[hE]
		if hasD && hasE {
			deHandle = theorem.Line(int(l.ID))
			found = true
			break
		}
	}
	require.True(t, found, "expected an implicit line through D and E")

	wantParallel := theorem.New(theorem.ParallelLines, []theorem.TheoremObject{theorem.Line(int(hLineBC)), deHandle})
	wantIncidence := theorem.New(theorem.Incidence, []theorem.TheoremObject{theorem.Point(int(hB)), theorem.Line(int(hLineBC))})

	hasParallel, hasIncidence := false, false
	for _, th := range all {
		if th.Equal(wantParallel) {
			hasParallel = true
		}
		if th.Equal(wantIncidence) {
			hasIncidence = true
		}
	}
	assert.True(t, hasParallel, "expected line BC parallel to the DE midsegment")
	assert.True(t, hasIncidence, "expected B incident to line BC")
}

func TestFindAll_ScansWholeConfigurationRegardlessOfNewBookkeeping(t *testing.T) {
	configuration := []construction.ConfigurationObject{
		construction.Loose(1, types.KindPoint),
		construction.Loose(2, types.KindPoint),
	}
	m, _, err := Construct(configuration, 1, 13)
	require.NoError(t, err)

	line, err := construction.Constructed(3, constructors.Catalog["LineFromPoints"], []construction.ObjectID{1, 2})
	require.NoError(t, err)
	_, err = registrar.Add(line, m.Pictures())
	require.NoError(t, err)
	configuration = append(configuration, line)

	cp := Create(m)
	for _, obj := range configuration {
		require.NoError(t, cp.Add(obj))
	}

	all := FindAll(cp)
	assert.NotPanics(t, func() { _ = FindAll(cp) })
	assert.IsType(t, []theorem.Theorem{}, all)
}
