package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"globe/app"
	"globe/hal"
	"globe/internal/buildinfo"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := app.ParseArgs("globe", args)
	if err != nil {
		return err
	}
	log, err := hal.NewLogger(cfg.LogLevel, nil)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("globe starting",
		append(buildinfo.Get().Fields(), zap.Bool("headless", cfg.Headless.Enabled))...)

	hc := cfg.HAL()
	hc.Logger = log
	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, hc, app.Runner(cfg), cfg.HeadlessRun())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return hal.RunWindow(hc, app.Runner(cfg))
}
