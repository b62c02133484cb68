package hal

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int
	Ticks   uint64

	// ScrollPerTick injects a wheel event of this many notches before every tick.
	ScrollPerTick float64

	// Snapshot, if set, receives the last presented frame as PNG.
	Snapshot string

	// Log receives log lines; stdout if nil.
	Log io.Writer
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp NewAppFunc, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height, PixelFormatRGBA8888, cfg.Log)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	err = runHeadlessLoop(ctx, h, step, cfg, d)
	if cfg.Snapshot != "" {
		if serr := writeSnapshot(h.fb, cfg.Snapshot); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runHeadlessLoop(ctx context.Context, h *hostHAL, step func() error, cfg HeadlessConfig, d time.Duration) error {
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.ScrollPerTick != 0 {
				h.ptr.emit(PointerEvent{Kind: PointerWheel, DY: cfg.ScrollPerTick})
			}
			if err := h.refresh(step); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	if err := png.Encode(f, fb.image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("snapshot %s: encode: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}
