// Package game runs the rounds of a guessing session and scores guesses by
// great-circle distance.
package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"globe/globe/geomath"
	"globe/globe/mapdata"
)

var (
	// ErrRoundClosed is returned when submitting to a round that already
	// has an accepted submission.
	ErrRoundClosed = errors.New("game: round closed")
	// ErrNoRound is returned when the session has no current round.
	ErrNoRound = errors.New("game: no round")
)

// Result is an accepted submission and its score.
type Result struct {
	Submission mapdata.Submission
	Target     mapdata.Round
	Distance   geomath.Length
}

// Session steps through a fixed list of rounds.
type Session struct {
	rounds   []mapdata.Round
	cur      int
	revealed bool
	results  []Result
	log      *zap.Logger
}

// NewSession starts at the first round. Rounds are copied; each round is
// marked ongoing when it starts and numbered by position if unnumbered.
func NewSession(rounds []mapdata.Round, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{rounds: append([]mapdata.Round(nil), rounds...), log: log}
	if len(s.rounds) > 0 {
		s.started()
	}
	return s
}

// Current returns the active round.
func (s *Session) Current() (mapdata.Round, bool) {
	if s.cur >= len(s.rounds) {
		return mapdata.Round{}, false
	}
	return s.rounds[s.cur], true
}

// Number is the 1-based position of the active round, 0 when finished.
func (s *Session) Number() int {
	if s.cur >= len(s.rounds) {
		return 0
	}
	return s.cur + 1
}

// Len is the number of rounds.
func (s *Session) Len() int { return len(s.rounds) }

// Revealed reports whether the current target is shown on the map.
func (s *Session) Revealed() bool { return s.revealed }

// Reveal shows the current target.
func (s *Session) Reveal() {
	if _, ok := s.Current(); ok {
		s.revealed = true
	}
}

// Target returns the current round target when it is revealed.
func (s *Session) Target() (mapdata.Point, bool) {
	r, ok := s.Current()
	if !ok || !s.revealed {
		return mapdata.Point{}, false
	}
	return r.Point(), true
}

// Submit scores a guess against the current round, closes the round and
// reveals its target.
func (s *Session) Submit(lon, lat float64) (Result, error) {
	r, ok := s.Current()
	if !ok {
		return Result{}, ErrNoRound
	}
	if !r.Ongoing {
		return Result{}, fmt.Errorf("round %d: %w", r.Number, ErrRoundClosed)
	}
	res := Result{
		Submission: mapdata.Submission{Round: r.Number, Longitude: lon, Latitude: lat},
		Distance:   geomath.Distance(r.Latitude, r.Longitude, lat, lon),
	}
	s.rounds[s.cur].Ongoing = false
	res.Target = s.rounds[s.cur]
	s.revealed = true
	s.results = append(s.results, res)

	s.log.Info("submission accepted",
		zap.Int("round", r.Number),
		zap.Float64("lon", lon),
		zap.Float64("lat", lat),
		zap.Stringer("distance", res.Distance))
	return res, nil
}

// Next moves to the following round. It reports false once past the last
// round.
func (s *Session) Next() bool {
	if s.cur >= len(s.rounds) {
		return false
	}
	s.cur++
	s.revealed = false
	if s.cur >= len(s.rounds) {
		s.log.Info("session finished", zap.Int("rounds", len(s.rounds)))
		return false
	}
	s.started()
	return true
}

// Results returns the accepted submissions in order.
func (s *Session) Results() []Result { return s.results }

// Total is the summed distance of all results.
func (s *Session) Total() geomath.Length {
	var sum geomath.Length
	for _, r := range s.results {
		sum += r.Distance
	}
	return sum
}

func (s *Session) started() {
	r := &s.rounds[s.cur]
	if r.Number == 0 {
		r.Number = s.cur + 1
	}
	r.Ongoing = true
	s.log.Info("round started", zap.Int("round", r.Number), zap.Bool("water", r.Water))
}
