//go:build !cgo

package hal

type pollState struct{}

func (s *pollState) poll(_ *hostPointer, _, _ int) {
	// No pointer support without the window backend.
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
