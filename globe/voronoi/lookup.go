package voronoi

import (
	"sync/atomic"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Lookup holds the current tessellation. Replace swaps it whole so a
// reader never observes a half-built diagram.
type Lookup struct {
	cur atomic.Pointer[holder]
	log *zap.Logger
}

type holder struct{ t Tessellation }

var _ Tessellation = (*Lookup)(nil)

// NewLookup returns a Lookup holding Empty.
func NewLookup(log *zap.Logger) *Lookup {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Lookup{log: log}
	l.cur.Store(&holder{Empty})
	return l
}

// Load returns the current tessellation. Callers that need several answers
// from one diagram should Load once and query the result.
func (l *Lookup) Load() Tessellation {
	if h := l.cur.Load(); h != nil {
		return h.t
	}
	return Empty
}

// Replace installs t; a nil t installs Empty.
func (l *Lookup) Replace(t Tessellation) {
	if t == nil {
		t = Empty
	}
	l.cur.Store(&holder{t})
	_, hull := t.Hull()
	l.log.Info("tessellation replaced",
		zap.Int("sites", t.Len()),
		zap.Int("cells", len(t.Cells())),
		zap.Bool("hull", hull))
}

// Rebuild builds a diagram for sites and installs it.
func (l *Lookup) Rebuild(sites [][2]float64) Tessellation {
	t := Build(sites)
	l.Replace(t)
	return t
}

func (l *Lookup) Find(lon, lat float64) int   { return l.Load().Find(lon, lat) }
func (l *Lookup) Cells() []Cell               { return l.Load().Cells() }
func (l *Lookup) Hull() (*geom.Polygon, bool) { return l.Load().Hull() }
func (l *Lookup) Len() int                    { return l.Load().Len() }
