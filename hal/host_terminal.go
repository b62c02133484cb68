package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal host.
type TerminalConfig struct {
	Hz    int
	Ticks uint64

	// Log receives buffered log lines after the screen is released; stderr if nil.
	Log io.Writer
}

// RunTerminal renders the framebuffer into the terminal with half-block cells,
// two pixels per cell. Mouse wheel and keys are forwarded to the app.
func RunTerminal(ctx context.Context, newApp NewAppFunc, cfg TerminalConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	logs := &bufferedLog{}
	err = runTerminal(ctx, screen, newApp, cfg, logs)
	screen.Fini()

	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	logs.flushTo(cfg.Log)
	return err
}

func runTerminal(ctx context.Context, screen tcell.Screen, newApp NewAppFunc, cfg TerminalConfig, logs io.Writer) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	cols, rows := screen.Size()
	h := newHost(cols, rows*2, PixelFormatRGB565, logs)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	events := startEventReader(screen.PollEvent, done)
	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if stop := h.handleTerminalEvent(screen, ev); stop {
				return nil
			}

		case <-t.C:
			if err := h.refresh(step); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			blitHalfBlocks(screen, h.fb)
			screen.Show()

			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// startEventReader forwards poll results until poll returns nil or done is closed.
func startEventReader(poll func() tcell.Event, done <-chan struct{}) <-chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go func() {
		defer close(ch)
		for {
			ev := poll()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-done:
				return
			}
		}
	}()
	return ch
}

// handleTerminalEvent translates one tcell event; it reports true on Ctrl-C.
func (h *hostHAL) handleTerminalEvent(screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			h.kbd.emit(KeyEvent{Press: true, Rune: ev.Rune()})
		case tcell.KeyUp:
			h.kbd.emit(KeyEvent{Code: KeyUp, Press: true})
		case tcell.KeyDown:
			h.kbd.emit(KeyEvent{Code: KeyDown, Press: true})
		case tcell.KeyLeft:
			h.kbd.emit(KeyEvent{Code: KeyLeft, Press: true})
		case tcell.KeyRight:
			h.kbd.emit(KeyEvent{Code: KeyRight, Press: true})
		case tcell.KeyEnter:
			h.kbd.emit(KeyEvent{Code: KeyEnter, Press: true})
		case tcell.KeyEscape:
			h.kbd.emit(KeyEvent{Code: KeyEscape, Press: true})
		case tcell.KeyPgUp:
			h.kbd.emit(KeyEvent{Code: KeyPageUp, Press: true})
		case tcell.KeyPgDn:
			h.kbd.emit(KeyEvent{Code: KeyPageDown, Press: true})
		case tcell.KeyHome:
			h.kbd.emit(KeyEvent{Code: KeyHome, Press: true})
		case tcell.KeyEnd:
			h.kbd.emit(KeyEvent{Code: KeyEnd, Press: true})
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			h.ptr.emit(PointerEvent{Kind: PointerWheel, DY: -1})
		}
		if buttons&tcell.WheelDown != 0 {
			h.ptr.emit(PointerEvent{Kind: PointerWheel, DY: 1})
		}

	case *tcell.EventResize:
		screen.Sync()
		cols, rows := screen.Size()
		h.fb.resize(cols, rows*2)
	}
	return false
}

// blitHalfBlocks draws the presented frame: each cell's foreground is the upper
// pixel and its background the lower one.
func blitHalfBlocks(screen tcell.Screen, fb *hostFramebuffer) {
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			tr, tg, tb := fb.pixelAt(x, y*2)
			br, bg, bb := fb.pixelAt(x, y*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			screen.SetContent(x, y, '▀', nil, style)
		}
	}
}
