package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"scrollspace/app"
	"scrollspace/hal"
	"scrollspace/internal/buildinfo"
	"scrollspace/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var headless hal.HeadlessConfig
	var term hal.TerminalConfig
	var termMode, showVersion bool
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless and terminal mode (0 = run forever).")
	flag.Float64Var(&headless.ScrollPerTick, "scroll-per-tick", 0, "Wheel notches injected before every headless tick.")
	flag.StringVar(&headless.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.BoolVar(&termMode, "term", false, "Render into the terminal.")
	flag.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "Texture directory.")
	flag.IntVar(&cfg.Stars, "stars", cfg.Stars, "Number of stars.")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Star field seed.")
	flag.BoolVar(&cfg.Wireframe, "wireframe", cfg.Wireframe, "Start in wireframe mode.")
	flag.BoolVar(&cfg.Helpers, "helpers", cfg.Helpers, "Show the grid and light helpers.")
	flag.BoolVar(&cfg.HUD, "hud", cfg.HUD, "Show the status overlay.")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String())
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	newApp := func(h hal.HAL) (func() error, error) {
		return app.NewWithConfig(h, app.Config{Config: cfg})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case termMode:
		term.Hz = headless.Hz
		term.Ticks = headless.Ticks
		err = hal.RunTerminal(ctx, newApp, term)
	case headless.Enabled:
		headless.Width = cfg.Width
		headless.Height = cfg.Height
		err = hal.RunHeadless(ctx, newApp, headless)
	default:
		err = hal.RunWindow(hal.WindowConfig{
			Width:  cfg.Width,
			Height: cfg.Height,
			Scale:  cfg.Scale,
			TPS:    cfg.TPS,
		}, newApp)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
