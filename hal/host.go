package hal

import (
	"go.uber.org/zap"
)

// Config sizes the host display.
type Config struct {
	Width, Height int
	// Scale multiplies the window size relative to the framebuffer.
	Scale  int
	Logger *zap.Logger
}

func (c *Config) defaults() {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 640
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

type hostHAL struct {
	log *zap.Logger
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
	t   *hostTime
}

// New returns a host HAL implementation.
func New(cfg Config) HAL {
	return newHost(cfg)
}

func newHost(cfg Config) *hostHAL {
	cfg.defaults()
	return &hostHAL{
		log: cfg.Logger,
		fb:  newHostFramebuffer(cfg.Width, cfg.Height),
		kbd: newHostKeyboard(),
		ptr: newHostPointer(),
		t:   newHostTime(),
	}
}

func (h *hostHAL) Logger() *zap.Logger { return h.log }
func (h *hostHAL) Display() Display    { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input        { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time          { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }
