package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ANSI sequences.
const (
	clearScreen = "\033[H\033[2J"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// maxChunkSize keeps individual writes below a typical MTU so frames flow
// smoothly over SSH.
const maxChunkSize = 1400

// Frame accumulates one frame of terminal output and writes it in chunks on
// Flush.
type Frame struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
}

// NewFrame returns a frame writing to w.
func NewFrame(w io.Writer) *Frame {
	return &Frame{out: bufio.NewWriterSize(w, 8192)}
}

// MoveCursor appends a cursor position sequence. col and row are 1-based.
func (f *Frame) MoveCursor(col, row int) {
	f.buf.WriteString("\033[")
	f.buf.Write(strconv.AppendInt(f.numBuf[:0], int64(row), 10))
	f.buf.WriteByte(';')
	f.buf.Write(strconv.AppendInt(f.numBuf[:0], int64(col), 10))
	f.buf.WriteByte('H')
}

// WriteAt writes s starting at col, row.
func (f *Frame) WriteAt(col, row int, s string) {
	if col < 1 || row < 1 {
		return
	}
	f.MoveCursor(col, row)
	f.buf.WriteString(s)
}

// WriteCentered writes s centred on col.
func (f *Frame) WriteCentered(col, row int, s string) {
	f.WriteAt(col-utf8.RuneCountInString(s)/2, row, s)
}

func (f *Frame) WriteString(s string) { f.buf.WriteString(s) }
func (f *Frame) WriteRune(r rune)     { f.buf.WriteRune(r) }

// ClearScreen blanks the terminal and homes the cursor.
func (f *Frame) ClearScreen() { f.buf.WriteString(clearScreen) }

// HideCursor and ShowCursor toggle cursor visibility.
func (f *Frame) HideCursor() { f.buf.WriteString(hideCursor) }
func (f *Frame) ShowCursor() { f.buf.WriteString(showCursor) }

// Flush writes the accumulated output and resets the frame.
func (f *Frame) Flush() error {
	data := f.buf.String()
	f.buf.Reset()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := f.out.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return f.out.Flush()
}

// TermSizeFunc reports the terminal dimensions in cells.
type TermSizeFunc func() (cols, rows int, err error)

// DefaultTermSizeFunc asks the terminal attached to stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
