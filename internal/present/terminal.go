package present

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// upperHalfBlock draws the top pixel in the foreground colour and the bottom
// pixel in the background colour of one character cell.
const upperHalfBlock = "▀"

// TerminalSurface draws images on a truecolor terminal, two pixel rows per
// text row. SizeFunc reports the terminal size in cells; it is consulted on
// every Size call so that resizing the terminal changes the next frame.
type TerminalSurface struct {
	Out      io.Writer
	SizeFunc func() (cols, rows int, err error)

	// Reserve keeps this many text rows free below the image for a status line.
	Reserve int

	buf bytes.Buffer
}

// Size returns the drawable area in pixels. A failing SizeFunc yields 0×0,
// which makes the pipeline skip the cycle.
func (t *TerminalSurface) Size() (int, int) {
	cols, rows, err := t.SizeFunc()
	if err != nil {
		return 0, 0
	}
	return cols, (rows - t.Reserve) * 2
}

// Blit repaints the terminal from the home position in a single write.
func (t *TerminalSurface) Blit(img Image, w, h int) error {
	t.buf.Reset()
	t.buf.WriteString(ansi.CursorHomePosition)

	var lastFg, lastBg color.RGBA
	first := true
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			fg := rgbaAt(img, w, x, y)
			bg := color.RGBA{A: 255}
			if y+1 < h {
				bg = rgbaAt(img, w, x, y+1)
			}
			if first || fg != lastFg || bg != lastBg {
				t.buf.WriteString(ansi.Style{}.ForegroundColor(fg).BackgroundColor(bg).String())
				lastFg, lastBg, first = fg, bg, false
			}
			t.buf.WriteString(upperHalfBlock)
		}
		t.buf.WriteString(ansi.ResetStyle)
		t.buf.WriteString("\r\n")
		first = true
	}

	if _, err := t.Out.Write(t.buf.Bytes()); err != nil {
		return fmt.Errorf("present: terminal write: %w", err)
	}
	return nil
}

// Status writes a line of text below the image area.
func (t *TerminalSurface) Status(text string) error {
	_, rows, err := t.SizeFunc()
	if err != nil {
		return err
	}
	line := ansi.CursorPosition(1, rows) + ansi.EraseEntireLine + text
	_, err = io.WriteString(t.Out, line)
	return err
}

func rgbaAt(img Image, w, x, y int) color.RGBA {
	i := (y*w + x) * BytesPerPixel
	return color.RGBA{R: img[i], G: img[i+1], B: img[i+2], A: img[i+3]}
}
