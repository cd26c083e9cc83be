package hal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(p *hostPointer) []PointerEvent {
	var out []PointerEvent
	for {
		select {
		case ev := <-p.ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPointerTransitions(t *testing.T) {
	p := newHostPointer()

	p.update(nil, 10, 10, true, 0)
	evs := drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerHover, evs[0].Kind)
	assert.Equal(t, []Contact{{X: 10, Y: 10}}, evs[0].Active())

	// Unchanged cursor: nothing.
	p.update(nil, 10, 10, true, 0)
	assert.Empty(t, drain(p))

	p.update([]Contact{{ID: 0, X: 10, Y: 10}}, 10, 10, true, 0)
	evs = drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerDown, evs[0].Kind)
	assert.Equal(t, 1, evs[0].N)

	p.update([]Contact{{ID: 0, X: 12, Y: 10}}, 12, 10, true, 0)
	evs = drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerMove, evs[0].Kind)

	p.update([]Contact{{ID: 0, X: 12, Y: 10}, {ID: 1, X: 50, Y: 50}}, 12, 10, true, 0)
	evs = drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerDown, evs[0].Kind)
	assert.Equal(t, 2, evs[0].N)

	p.update([]Contact{{ID: 1, X: 50, Y: 50}}, 12, 10, true, 0)
	evs = drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerUp, evs[0].Kind)
	assert.Equal(t, []Contact{{ID: 1, X: 50, Y: 50}}, evs[0].Active())

	p.update(nil, 12, 10, true, 0)
	evs = drain(p)
	require.Len(t, evs, 2)
	assert.Equal(t, PointerUp, evs[0].Kind)
	assert.Equal(t, 0, evs[0].N)
	assert.Equal(t, PointerHover, evs[1].Kind)

	p.update(nil, -1, 10, false, 0)
	evs = drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerLeave, evs[0].Kind)
}

func TestPointerWheel(t *testing.T) {
	p := newHostPointer()
	p.update(nil, 5, 5, false, -1.5)
	evs := drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerWheel, evs[0].Kind)
	assert.Equal(t, -1.5, evs[0].WheelY)
}

func TestPointerContactReplacedInOneFrame(t *testing.T) {
	p := newHostPointer()
	p.update([]Contact{{ID: 1, X: 100, Y: 100}}, 0, 0, false, 0)
	drain(p)

	p.update([]Contact{{ID: 2, X: 400, Y: 300}}, 0, 0, false, 0)
	evs := drain(p)
	require.Len(t, evs, 2)
	assert.Equal(t, PointerUp, evs[0].Kind)
	assert.Equal(t, 0, evs[0].N)
	assert.Equal(t, PointerDown, evs[1].Kind)
	assert.Equal(t, []Contact{{ID: 2, X: 400, Y: 300}}, evs[1].Active())

	// One of two contacts replaced: the survivor stays held across the Up.
	p.update([]Contact{{ID: 2, X: 400, Y: 300}, {ID: 3, X: 10, Y: 10}}, 0, 0, false, 0)
	drain(p)
	p.update([]Contact{{ID: 4, X: 20, Y: 20}, {ID: 2, X: 401, Y: 300}}, 0, 0, false, 0)
	evs = drain(p)
	require.Len(t, evs, 2)
	assert.Equal(t, PointerUp, evs[0].Kind)
	assert.Equal(t, []Contact{{ID: 2, X: 401, Y: 300}}, evs[0].Active())
	assert.Equal(t, PointerDown, evs[1].Kind)
	assert.Equal(t, []Contact{{ID: 2, X: 401, Y: 300}, {ID: 4, X: 20, Y: 20}}, evs[1].Active())
}

func TestPointerContactOrderIsStable(t *testing.T) {
	p := newHostPointer()
	p.update([]Contact{{ID: 2, X: 50, Y: 50}, {ID: 1, X: 10, Y: 10}}, 0, 0, false, 0)
	evs := drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, []Contact{{ID: 1, X: 10, Y: 10}, {ID: 2, X: 50, Y: 50}}, evs[0].Active())

	// Same contacts polled in the other order: nothing moved.
	p.update([]Contact{{ID: 1, X: 10, Y: 10}, {ID: 2, X: 50, Y: 50}}, 0, 0, false, 0)
	assert.Empty(t, drain(p))

	p.update([]Contact{{ID: 2, X: 55, Y: 50}, {ID: 1, X: 10, Y: 10}}, 0, 0, false, 0)
	evs = drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, PointerMove, evs[0].Kind)
	assert.Equal(t, []Contact{{ID: 1, X: 10, Y: 10}, {ID: 2, X: 55, Y: 50}}, evs[0].Active())
}

func TestPointerContactsBounded(t *testing.T) {
	p := newHostPointer()
	cur := make([]Contact, MaxContacts+3)
	p.update(cur, 0, 0, false, 0)
	evs := drain(p)
	require.Len(t, evs, 1)
	assert.Equal(t, MaxContacts, evs[0].N)
}

func TestFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	assert.Equal(t, PixelFormatRGBA8888, fb.Format())
	assert.Equal(t, 8, fb.StrideBytes())

	fb.ClearRGB(1, 2, 3)
	front := make([]byte, 16)
	assert.Equal(t, uint64(0), fb.snapshot(front))
	assert.Equal(t, make([]byte, 16), front)

	require.NoError(t, fb.Present())
	assert.Equal(t, uint64(1), fb.snapshot(front))
	assert.Equal(t, []byte{1, 2, 3, 0xff}, front[:4])
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("warn", &buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = NewLogger("loud", nil)
	assert.Error(t, err)
}

func TestHostTime(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTime()
	ht.now = func() time.Time { return now }

	ht.step(1)
	assert.Equal(t, uint64(1), <-ht.Ticks())

	now = now.Add(2500 * time.Microsecond)
	ht.step(1)
	assert.Equal(t, uint64(2), <-ht.Ticks())
	assert.Equal(t, uint64(3), <-ht.Ticks())
	assert.Len(t, ht.ch, 0)
	assert.Equal(t, 500*time.Microsecond, ht.acc)
}

func TestNewDefaults(t *testing.T) {
	h := New(Config{})
	require.NotNil(t, h.Logger())
	fb := h.Display().Framebuffer()
	assert.Equal(t, 640, fb.Width())
	assert.Len(t, fb.Buffer(), 640*640*4)
	assert.NotNil(t, h.Input().Pointer())
	assert.NotNil(t, h.Input().Keyboard())
}
