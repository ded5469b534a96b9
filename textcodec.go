// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"io"
	"runtime"
)

// lineSep is the platform line separator used by the text-mode write codec
// (spec §4.1: "on write a single LF becomes the platform line separator").
func lineSep() []byte {
	if runtime.GOOS == "windows" {
		return []byte{'\r', '\n'}
	}
	return []byte{'\n'}
}

// textDecoder folds CR, LF, and CR LF into a single LF on read. It holds one
// byte of lookahead to resolve a CR that might be followed by LF on the next
// raw read, distinct from the user-visible ungetc buffer. Direction switches
// and seeks reset it (spec §4.1: "Direction-switching and seeks reset the
// text decoder.").
type textDecoder struct {
	pending    byte
	hasPending bool
}

func (d *textDecoder) reset() {
	d.hasPending = false
}

// decode produces one output byte from the raw input read via rawNext,
// reading one byte ahead after a CR. ok is false only when rawNext fails
// (other than with EOF right after a CR); err then carries the failure.
func (d *textDecoder) decode(rawNext func() (byte, error)) (out byte, ok bool, err error) {
	var c byte
	if d.hasPending {
		c = d.pending
		d.hasPending = false
	} else {
		c, err = rawNext()
		if err != nil {
			return 0, false, err
		}
	}
	if c == '\r' {
		nc, nerr := rawNext()
		if nerr != nil {
			if nerr == io.EOF {
				// A lone CR at EOF still folds to LF (spec §7: look-ahead
				// failures on eof are silently converted to end-of-stream);
				// the EOF itself resurfaces on the next call.
				return '\n', true, nil
			}
			return 0, false, nerr
		}
		if nc != '\n' {
			d.pending = nc
			d.hasPending = true
		}
		return '\n', true, nil
	}
	return c, true, nil
}
