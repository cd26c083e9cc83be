package hal

import "sync"

// hostFramebuffer is drawn into through Buffer and copied to a front buffer
// on Present, which the window reads.
type hostFramebuffer struct {
	width  int
	height int
	stride int
	buf    []byte

	mu       sync.Mutex
	front    []byte
	presents uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 4
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i] = r
		f.buf[i+1] = g
		f.buf[i+2] = b
		f.buf[i+3] = 0xff
	}
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	f.presents++
	return nil
}

// snapshot copies the last presented frame into dst and returns the number
// of presents so far.
func (f *hostFramebuffer) snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.presents
}
