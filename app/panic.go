package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
)

// panicScreen logs a recovered panic, paints it over the framebuffer and returns
// it as an error for the host.
func (a *app) panicScreen(v any) error {
	stack := debug.Stack()
	a.log.WriteLineString(fmt.Sprintf("scrollspace panic: %v", v))
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		a.log.WriteLineString(line)
	}

	err := fmt.Errorf("app panic: %v", v)
	fb := a.fb
	if fb == nil {
		return err
	}
	fb.ClearRGB(255, 255, 255)

	_, outboxWidth := tinyfont.LineWidth(hudFont, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return err
	}

	d := fbDisplay{fb: fb}
	lines := []string{
		"scrollspace panic:",
		fmt.Sprintf("%v", v),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}

	fg := color.RGBA{A: 255}
	maxW, maxH := d.Size()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
draw:
	for _, line := range lines {
		for len(line) > 0 {
			if y+hudLineHeight > maxH {
				break draw
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, hudFont, 0, y+hudBaseline, chunk, fg)
			y += hudLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}

	_ = fb.Present()
	return err
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
