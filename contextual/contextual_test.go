package contextual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikenye/geogen/analytic"
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/constructors"
	"github.com/mikenye/geogen/geogenerr"
	"github.com/mikenye/geogen/picture"
	"github.com/mikenye/geogen/registrar"
	"github.com/mikenye/geogen/types"
)

// addLoose realizes a loose point with the same value in every picture
// (these tests don't need picture-to-picture variation to exercise the
// contextual layer) and registers it with the contextual picture.
func addLoose(t *testing.T, cp *ContextualPicture, pics []*picture.Picture, id construction.ObjectID, vals []analytic.Object) {
	t.Helper()
	for i, pic := range pics {
		pic.Add(id, vals[i])
	}
	obj := construction.Loose(id, types.KindPoint)
	require.NoError(t, cp.Add(obj))
}

func addConstructed(t *testing.T, cp *ContextualPicture, pics []*picture.Picture, id construction.ObjectID, name string, args []construction.ObjectID) registrar.Result {
	t.Helper()
	obj, err := construction.Constructed(id, constructors.Catalog[name], args)
	require.NoError(t, err)
	res, err := registrar.Add(obj, pics)
	require.NoError(t, err)
	require.True(t, res.CanBeConstructed)
	require.NoError(t, cp.Add(obj))
	return res
}

func twoIdenticalPictures() []*picture.Picture {
	return []*picture.Picture{picture.New(), picture.New()}
}

func pt(x, y float64) analytic.Object { return analytic.ObjectFromPoint(analytic.NewPoint(x, y)) }

func TestAdd_NewPointHasNoIncidencesYet(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})

	points := cp.GetPoints(FilterAll)
	require.Len(t, points, 1)
	assert.Empty(t, points[0].Lines)
	assert.Empty(t, points[0].Circles)
	assert.True(t, cp.Contains(1))
}

func TestAdd_SecondPointFormsImplicitLine(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})
	addLoose(t, cp, pics, 2, []analytic.Object{pt(4, 0), pt(4, 0)})

	lines := cp.GetLines(FilterAll)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0].Points, 2)

	points := cp.GetPoints(FilterAll)
	for _, p := range points {
		assert.Contains(t, p.Lines, lines[0].ID)
	}
}

func TestAdd_ThirdNonCollinearPointFormsCircumcircle(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})
	addLoose(t, cp, pics, 2, []analytic.Object{pt(4, 0), pt(4, 0)})
	addLoose(t, cp, pics, 3, []analytic.Object{pt(0, 4), pt(0, 4)})

	circles := cp.GetCircles(FilterAll)
	require.Len(t, circles, 1)
	assert.Len(t, circles[0].Points, 3)

	// Three implicit lines (1-2, 1-3, 2-3), no two of them coincide here.
	assert.Len(t, cp.GetLines(FilterAll), 3)
}

func TestAdd_CollinearTripleFormsNoCircle(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})
	addLoose(t, cp, pics, 2, []analytic.Object{pt(1, 0), pt(1, 0)})
	addLoose(t, cp, pics, 3, []analytic.Object{pt(2, 0), pt(2, 0)})

	assert.Empty(t, cp.GetCircles(FilterAll))
	// All three points and segments collapse onto one implicit line.
	lines := cp.GetLines(FilterAll)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0].Points, 3)
}

func TestAdd_ConstructedPointReusesExistingHandle(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})
	addLoose(t, cp, pics, 2, []analytic.Object{pt(4, 0), pt(4, 0)})
	addLoose(t, cp, pics, 3, []analytic.Object{pt(2, 0), pt(2, 0)}) // already the midpoint

	res := addConstructed(t, cp, pics, 4, "Midpoint", []construction.ObjectID{1, 2})
	assert.True(t, res.IsDuplicate)
	assert.Equal(t, construction.ObjectID(3), res.DuplicateOf)

	// No new point handle: object 4 attaches to object 3's existing handle.
	assert.Len(t, cp.GetPoints(FilterAll), 3)
	h4, ok := cp.backing[4]
	require.True(t, ok)
	h3, ok := cp.backing[3]
	require.True(t, ok)
	assert.Equal(t, h3, h4)
}

func TestAdd_LineIncidentToExistingPoint(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})
	addLoose(t, cp, pics, 2, []analytic.Object{pt(4, 0), pt(4, 0)})
	addLoose(t, cp, pics, 3, []analytic.Object{pt(2, 5), pt(2, 5)})

	addConstructed(t, cp, pics, 4, "Midpoint", []construction.ObjectID{1, 2}) // (2,0)

	linesBefore := len(cp.GetLines(FilterAll))

	// The perpendicular bisector of 1,2 is the vertical line x=2. The
	// implicit line through the midpoint and point 3 (also at x=2) already
	// exists from linking the midpoint in, so this construction must reuse
	// that handle rather than create a new one.
	obj, err := construction.Constructed(5, constructors.Catalog["PerpendicularBisector"], []construction.ObjectID{1, 2})
	require.NoError(t, err)
	res, err := registrar.Add(obj, pics)
	require.NoError(t, err)
	require.True(t, res.CanBeConstructed)
	require.NoError(t, cp.Add(obj))

	assert.Equal(t, linesBefore, len(cp.GetLines(FilterAll)))

	handle, ok := cp.backing[5]
	require.True(t, ok)
	lh := cp.line(handle)
	assert.Len(t, lh.Points, 2) // the midpoint and point 3
}

func TestAdd_FilterNewOnlyTracksMostRecentStep(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(0, 0), pt(0, 0)})
	assert.Len(t, cp.GetPoints(FilterNew), 1)

	cp.BeginStep()
	addLoose(t, cp, pics, 2, []analytic.Object{pt(1, 0), pt(1, 0)})
	assert.Len(t, cp.GetPoints(FilterNew), 1)
	assert.Len(t, cp.GetPoints(FilterOld), 1)
	assert.Len(t, cp.GetPoints(FilterAll), 2)
}

func TestAdd_InconsistentIncidenceAcrossPictures(t *testing.T) {
	p1 := picture.New()
	p2 := picture.New()
	pics := []*picture.Picture{p1, p2}
	cp := New(pics)

	p1.Add(1, pt(0, 0))
	p2.Add(1, pt(0, 0))
	require.NoError(t, cp.Add(construction.Loose(1, types.KindPoint)))

	p1.Add(2, pt(4, 0))
	p2.Add(2, pt(4, 0))
	require.NoError(t, cp.Add(construction.Loose(2, types.KindPoint)))

	// Point 3 lies on line(1,2) in picture 1 but not in picture 2.
	p1.Add(3, pt(2, 0))
	p2.Add(3, pt(2, 1))

	err := cp.Add(construction.Loose(3, types.KindPoint))
	assert.ErrorIs(t, err, geogenerr.ErrInconsistentPictures)
}

func TestAnalyticOf(t *testing.T) {
	pics := twoIdenticalPictures()
	cp := New(pics)

	addLoose(t, cp, pics, 1, []analytic.Object{pt(3, 4), pt(3, 4)})

	v, ok := cp.AnalyticOf(1, 0)
	require.True(t, ok)
	assert.True(t, v.Eq(pt(3, 4)))

	_, ok = cp.AnalyticOf(99, 0)
	assert.False(t, ok)
}
