package lexer

import (
	"bufio"
	"io"

	"github.com/vasyharan/dravid/internal/token"
)

// Reader is a line-buffered character stream with location tracking. It
// reads exactly once, front-to-back, from the underlying io.Reader.
type Reader struct {
	in     *bufio.Reader
	line   []byte
	off    int
	lineno uint32
	atEOF  bool
}

// NewReader wraps in for character-at-a-time reading with line/column
// tracking.
func NewReader(in io.Reader) *Reader {
	return &Reader{in: bufio.NewReader(in)}
}

// good reports whether the cursor currently points at a valid character.
func (r *Reader) good() bool {
	return r.off < len(r.line)
}

// requireLine advances to the next non-empty line if the cursor is at
// end-of-line. It returns false only once the underlying input is
// exhausted.
func (r *Reader) requireLine() bool {
	for !r.good() && !r.atEOF {
		line, err := r.in.ReadString('\n')
		if len(line) == 0 && err != nil {
			r.atEOF = true
			r.line = nil
			r.off = 0
			break
		}
		if n := len(line); n > 0 && line[n-1] == '\n' {
			line = line[:n-1]
		}
		r.line = []byte(line)
		r.off = 0
		r.lineno++
		if err != nil {
			// Final line with no trailing newline: still usable once.
			if len(r.line) == 0 {
				r.atEOF = true
			}
		}
	}
	return r.good()
}

// read returns the current character without consuming it. Idempotent.
func (r *Reader) read() byte {
	return r.line[r.off]
}

// advance moves the cursor forward by one column. Newlines are consumed by
// requireLine, never here.
func (r *Reader) advance() {
	r.off++
}

// loc returns the Location of the current cursor position.
func (r *Reader) loc() token.Location {
	return token.Location{Line: r.lineno, Col: uint32(r.off)}
}
