package hal

import (
	"errors"

	"go.uber.org/zap"
)

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp premultiplied r, g, b, a bytes, the
	// layout of image.RGBA.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	// Present publishes the buffer contents to the display.
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeySpace
	KeyR
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind classifies a pointer event.
type PointerKind uint8

const (
	// PointerDown: a contact was added.
	PointerDown PointerKind = iota + 1
	// PointerMove: contacts moved, their number unchanged.
	PointerMove
	// PointerUp: a contact was released; Contacts holds the remaining ones.
	PointerUp
	// PointerHover: the cursor moved with no button held.
	PointerHover
	// PointerLeave: the cursor left the display.
	PointerLeave
	// PointerWheel: the wheel turned by WheelY.
	PointerWheel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerHover:
		return "hover"
	case PointerLeave:
		return "leave"
	case PointerWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// MaxContacts bounds the simultaneous contacts a PointerEvent carries.
const MaxContacts = 10

// Contact is one active pointer in framebuffer pixels. The mouse is ID 0;
// touches are numbered from 1.
type Contact struct {
	ID   int
	X, Y float64
}

// PointerEvent carries the full set of active contacts after the change it
// reports. Hover events carry the cursor as the single contact.
type PointerEvent struct {
	Kind     PointerKind
	N        int
	Contacts [MaxContacts]Contact
	WheelY   float64
}

// Active returns the first N contacts.
func (e *PointerEvent) Active() []Contact { return e.Contacts[:e.N] }

// Pointer provides mouse and touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the map and the outside world.
type HAL interface {
	Logger() *zap.Logger
	Display() Display
	Input() Input
	Time() Time
}
