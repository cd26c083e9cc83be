package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globe/globe/geomath"
	"globe/globe/mapdata"
)

func rounds() []mapdata.Round {
	return []mapdata.Round{
		{Longitude: 0, Latitude: 0, Number: 1},
		{Longitude: 2.35, Latitude: 48.86, Water: true},
	}
}

func TestSubmitScoresAndClosesRound(t *testing.T) {
	s := NewSession(rounds(), nil)
	r, ok := s.Current()
	require.True(t, ok)
	assert.True(t, r.Ongoing)
	assert.False(t, s.Revealed())

	res, err := s.Submit(180, 0)
	require.NoError(t, err)
	assert.Equal(t, mapdata.Submission{Round: 1, Longitude: 180, Latitude: 0}, res.Submission)
	assert.InDelta(t, 20015087, float64(res.Distance), 1)
	assert.False(t, res.Target.Ongoing)
	assert.True(t, s.Revealed())

	_, err = s.Submit(1, 1)
	assert.ErrorIs(t, err, ErrRoundClosed)
	assert.Len(t, s.Results(), 1)
}

func TestNextNumbersAndResets(t *testing.T) {
	s := NewSession(rounds(), nil)
	_, err := s.Submit(0, 0)
	require.NoError(t, err)

	require.True(t, s.Next())
	assert.False(t, s.Revealed())
	r, _ := s.Current()
	assert.Equal(t, 2, r.Number)
	assert.True(t, r.Ongoing)
	assert.Equal(t, 2, s.Number())

	_, ok := s.Target()
	assert.False(t, ok)
	s.Reveal()
	target, ok := s.Target()
	require.True(t, ok)
	assert.Equal(t, mapdata.Point{Longitude: 2.35, Latitude: 48.86}, target)

	res, err := s.Submit(2.35, 48.86)
	require.NoError(t, err)
	assert.Equal(t, geomath.Length(0), res.Distance)

	assert.False(t, s.Next())
	assert.Equal(t, 0, s.Number())
	_, err = s.Submit(0, 0)
	assert.ErrorIs(t, err, ErrNoRound)
	assert.False(t, s.Next())
	assert.Len(t, s.Results(), 2)
	assert.InDelta(t, 0, float64(s.Total()), 1e-9)
}

func TestEmptySession(t *testing.T) {
	s := NewSession(nil, nil)
	_, ok := s.Current()
	assert.False(t, ok)
	s.Reveal()
	assert.False(t, s.Revealed())
	assert.Equal(t, 0, s.Len())
}

func TestRoundsAreCopied(t *testing.T) {
	in := rounds()
	s := NewSession(in, nil)
	_, err := s.Submit(0, 0)
	require.NoError(t, err)
	assert.False(t, in[0].Ongoing)
	assert.Equal(t, 0, in[1].Number)
	assert.Equal(t, 2, s.Len())
}
