package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"globe/globe/canvas"
	"globe/globe/mapdata"
	"globe/globe/projection"
	"globe/hal"
)

const size = 220 // fitted scale 100 around (110, 110)

var testPoints = []mapdata.Point{
	{Longitude: 0, Latitude: 0, Label: "Null Island"},
	{Longitude: 90, Latitude: 0, Label: "East"},
	{Longitude: 0, Latitude: 60, Label: "North"},
	{Longitude: -120, Latitude: -30, Label: "South West"},
}

func newView(t *testing.T) *View {
	t.Helper()
	rounds := []mapdata.Round{
		{Longitude: 10, Latitude: 5},
		{Longitude: 85, Latitude: 2},
	}
	return New(DefaultOptions(size, size), testPoints, mapdata.Basemap{}, rounds, nil, nil)
}

func ev(kind hal.PointerKind, pts ...[2]float64) *hal.PointerEvent {
	e := &hal.PointerEvent{Kind: kind, N: len(pts)}
	for i, p := range pts {
		e.Contacts[i] = hal.Contact{ID: i, X: p[0], Y: p[1]}
	}
	return e
}

func TestFoundFollowsRound(t *testing.T) {
	v := newView(t)
	assert.Equal(t, 0, v.Found())
	assert.Equal(t, -1, v.Frame().Found, "no highlight before the target is revealed")

	v.NextRound()
	assert.Equal(t, 1, v.Found())
}

func TestDragRotates(t *testing.T) {
	v := newView(t)
	v.HandlePointer(ev(hal.PointerDown, [2]float64{110, 110}))
	assert.True(t, v.Dragging())
	v.HandlePointer(ev(hal.PointerMove, [2]float64{160, 110}))

	r := v.Projection().Rotation()
	assert.InDelta(t, 30, r[0], 1e-6)
	assert.Equal(t, 0.0, r[2])

	v.HandlePointer(ev(hal.PointerUp))
	assert.False(t, v.Dragging())
	_, ok := v.Guess()
	assert.False(t, ok, "a drag is not a click")
}

func TestClickPlacesGuessAndEnterSubmits(t *testing.T) {
	v := newView(t)
	v.HandlePointer(ev(hal.PointerDown, [2]float64{110, 110}))
	v.HandlePointer(ev(hal.PointerMove, [2]float64{111, 110}))
	v.HandlePointer(ev(hal.PointerUp))

	// The 1 px wiggle turned the globe by about half a degree.
	g, ok := v.Guess()
	require.True(t, ok)
	assert.InDelta(t, 0, g.Latitude, 1e-9)
	assert.InDelta(t, 0, g.Longitude, 1)

	v.HandleKey(hal.KeyEvent{Code: hal.KeyEnter, Press: true})
	res, ok := v.Result()
	require.True(t, ok)
	assert.Equal(t, 1, res.Submission.Round)
	assert.Greater(t, float64(res.Distance), 0.0)

	f := v.Frame()
	require.NotNil(t, f.Target)
	assert.Equal(t, 10.0, f.Target.Longitude)
	assert.Equal(t, v.Found(), f.Found)

	// A second submit is rejected.
	assert.False(t, v.Submit())
}

func TestTwoFingerTapIsNotAClick(t *testing.T) {
	v := newView(t)
	v.HandlePointer(ev(hal.PointerDown, [2]float64{100, 110}))
	v.HandlePointer(ev(hal.PointerDown, [2]float64{100, 110}, [2]float64{120, 110}))
	v.HandlePointer(ev(hal.PointerUp, [2]float64{120, 110}))
	assert.True(t, v.Dragging())
	v.HandlePointer(ev(hal.PointerUp))
	_, ok := v.Guess()
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	v := newView(t)
	v.HandlePointer(ev(hal.PointerDown, [2]float64{110, 110}))
	v.HandlePointer(ev(hal.PointerMove, [2]float64{160, 110}))
	v.HandlePointer(ev(hal.PointerUp))
	require.NotEqual(t, projection.Rotation{}, v.Projection().Rotation())

	v.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: false})
	assert.NotEqual(t, projection.Rotation{}, v.Projection().Rotation(), "releases are ignored")

	v.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true})
	assert.Equal(t, projection.Rotation{}, v.Projection().Rotation())

	v.HandleKey(hal.KeyEvent{Code: hal.KeySpace, Press: true})
	assert.Equal(t, 2, v.Session().Number())
	_, ok := v.Guess()
	assert.False(t, ok)
}

func TestHoverAndLeave(t *testing.T) {
	v := newView(t)
	v.HandlePointer(ev(hal.PointerHover, [2]float64{111, 111}))
	h, ok := v.Hover()
	require.True(t, ok)
	assert.Equal(t, "Null Island", h.Point.Label)
	assert.InDelta(t, 110, h.X, 1e-9)

	v.HandlePointer(ev(hal.PointerHover, [2]float64{130, 130}))
	_, ok = v.Hover()
	assert.False(t, ok)

	v.HandlePointer(ev(hal.PointerHover, [2]float64{110, 110}))
	v.HandlePointer(ev(hal.PointerLeave))
	_, ok = v.Hover()
	assert.False(t, ok)
}

func TestClientScaling(t *testing.T) {
	v := newView(t)
	v.SetClientSize(2*size, 2*size)
	v.HandlePointer(ev(hal.PointerHover, [2]float64{221, 219}))
	h, ok := v.Hover()
	require.True(t, ok)
	assert.Equal(t, "Null Island", h.Point.Label)
}

func TestStepRendersWhenDirty(t *testing.T) {
	v := newView(t)
	rec := canvas.NewRecorder(size, size)
	assert.True(t, v.Step(rec))
	assert.False(t, v.Step(rec))

	v.HandlePointer(ev(hal.PointerHover, [2]float64{5, 5}))
	assert.False(t, v.Step(rec), "hover over nothing changes nothing")

	v.Spin(10)
	assert.True(t, v.Step(rec))
	assert.InDelta(t, 10, v.Projection().Rotation()[0], 1e-12)
	assert.Equal(t, "clearRect", rec.Ops[0].Name)
}

func TestWheelZoomClamped(t *testing.T) {
	v := newView(t)
	base := v.Projection().Scale()
	v.HandlePointer(&hal.PointerEvent{Kind: hal.PointerWheel, WheelY: 1})
	assert.Greater(t, v.Projection().Scale(), base)

	for i := 0; i < 200; i++ {
		v.HandlePointer(&hal.PointerEvent{Kind: hal.PointerWheel, WheelY: 1})
	}
	assert.InDelta(t, base*8, v.Projection().Scale(), 1e-9)

	v.ResetView()
	assert.Equal(t, base, v.Projection().Scale())
}

func TestSetDatasetReplacesTessellation(t *testing.T) {
	v := newView(t)
	assert.Len(t, v.Frame().Cells.Cells(), 4)

	v.SetDataset(testPoints[:2], mapdata.Basemap{})
	assert.Empty(t, v.Frame().Cells.Cells())
	assert.Equal(t, 0, v.Found())
}

func contacts(kind hal.PointerKind, cs ...hal.Contact) *hal.PointerEvent {
	e := &hal.PointerEvent{Kind: kind, N: len(cs)}
	copy(e.Contacts[:], cs)
	return e
}

func TestReplacedContactReanchors(t *testing.T) {
	v := newView(t)
	v.HandlePointer(contacts(hal.PointerDown, hal.Contact{ID: 1, X: 110, Y: 110}))
	v.HandlePointer(contacts(hal.PointerMove, hal.Contact{ID: 1, X: 130, Y: 110}))
	before := v.Projection().Rotation()

	// Contact 1 lifted and contact 2 landed between two polls.
	v.HandlePointer(contacts(hal.PointerUp))
	v.HandlePointer(contacts(hal.PointerDown, hal.Contact{ID: 2, X: 160, Y: 140}))
	assert.True(t, v.Dragging())
	assert.Equal(t, before, v.Projection().Rotation())
	_, placed := v.Guess()
	assert.False(t, placed)

	v.HandlePointer(contacts(hal.PointerMove, hal.Contact{ID: 2, X: 161, Y: 140}))
	after := v.Projection().Rotation()
	assert.InDelta(t, before[0], after[0], 1.5)
	assert.InDelta(t, before[1], after[1], 1.5)
	assert.Equal(t, 0.0, after[2])
}

func TestReplacedSecondContactKeepsRotation(t *testing.T) {
	v := newView(t)
	a := hal.Contact{ID: 1, X: 90, Y: 110}
	b := hal.Contact{ID: 2, X: 130, Y: 110}
	v.HandlePointer(contacts(hal.PointerDown, a, b))
	b.X = 135
	v.HandlePointer(contacts(hal.PointerMove, a, b))
	before := v.Projection().Rotation()

	// Contact 1 replaced by contact 3 on the opposite side: no twist jump.
	c := hal.Contact{ID: 3, X: 135, Y: 150}
	v.HandlePointer(contacts(hal.PointerUp, b))
	v.HandlePointer(contacts(hal.PointerDown, b, c))
	got := v.Projection().Rotation()
	for i := range before {
		assert.InDelta(t, before[i], got[i], 1e-9)
	}

	c.Y = 151
	v.HandlePointer(contacts(hal.PointerMove, b, c))
	got = v.Projection().Rotation()
	assert.InDelta(t, before[0], got[0], 2)
	assert.InDelta(t, before[1], got[1], 2)
}

func TestRevealKeyShowsTarget(t *testing.T) {
	v := newView(t)
	require.Nil(t, v.Frame().Target)

	v.HandleKey(hal.KeyEvent{Code: hal.KeyR, Press: true})
	f := v.Frame()
	require.NotNil(t, f.Target)
	assert.Equal(t, 10.0, f.Target.Longitude)
	assert.Equal(t, v.Found(), f.Found)
	assert.False(t, v.Reveal(), "already revealed")

	// Revealing does not close the round.
	v.HandlePointer(ev(hal.PointerDown, [2]float64{110, 110}))
	v.HandlePointer(ev(hal.PointerUp))
	assert.True(t, v.Submit())

	v.NextRound()
	assert.Nil(t, v.Frame().Target)
}

func TestSessionScoreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rounds := []mapdata.Round{{Longitude: 10, Latitude: 5}}
	v := New(DefaultOptions(size, size), testPoints, mapdata.Basemap{}, rounds, nil, zap.New(core))

	v.HandlePointer(ev(hal.PointerDown, [2]float64{110, 110}))
	v.HandlePointer(ev(hal.PointerUp))
	require.True(t, v.Submit())
	res, _ := v.Result()

	assert.False(t, v.NextRound())
	entries := logs.FilterMessage("session score").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["submitted"])
	assert.Equal(t, res.Distance.String(), fields["total"])

	v.NextRound()
	assert.Equal(t, 1, logs.FilterMessage("session score").Len())
}

func TestRollIsIgnored(t *testing.T) {
	opts := DefaultOptions(size, size)
	opts.Rotation = projection.Rotation{20, 10, 45}
	v := New(opts, testPoints, mapdata.Basemap{}, nil, nil, nil)
	assert.Equal(t, projection.Rotation{20, 10, 0}, v.Projection().Rotation())

	v.Spin(5)
	v.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true})
	assert.Equal(t, projection.Rotation{20, 10, 0}, v.Projection().Rotation())
}
