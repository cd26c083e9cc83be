package hal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless runs the app without opening a window. It returns nil after
// cfg.Ticks steps, or ctx.Err() when ctx ends first.
func RunHeadless(ctx context.Context, hc Config, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(hc)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	h.log.Info("headless run", zap.Int("hz", cfg.Hz), zap.Uint64("ticks", cfg.Ticks))
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				h.log.Info("headless done", zap.Uint64("ticks", tick), zap.Uint64("frames", h.fb.snapshot(nil)))
				return nil
			}
		}
	}
}
