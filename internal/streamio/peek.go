// Package streamio holds the Peekable abstraction the coder and blockcodec
// packages use alongside plain io.Reader/io.Writer values to stay agnostic
// of what backs a shard: a file, an in-memory buffer, or a pipe. None of it depends on os
// or net directly; the CLI front end in cmd/erasurecore supplies the
// concrete os.File readers and writers.
package streamio

import (
	"bufio"
	"io"
)

// Peeker answers "is at least one more byte available?" without consuming
// it. The decoder's shard readers need exactly one byte of lookahead to
// detect end of stream after consuming a full code block.
type Peeker struct {
	r *bufio.Reader
}

// NewPeeker wraps r with one byte of lookahead.
func NewPeeker(r io.Reader) *Peeker {
	return &Peeker{r: bufio.NewReaderSize(r, 1)}
}

// Read implements io.Reader, satisfying reads from the lookahead buffer
// transparently.
func (p *Peeker) Read(buf []byte) (int, error) {
	return p.r.Read(buf)
}

// HasMore reports whether at least one more byte is available without
// consuming it.
func (p *Peeker) HasMore() (bool, error) {
	_, err := p.r.Peek(1)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
