// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// NewCString wraps an immutable byte slice as a read-only Stream (spec §3's
// "CString (read-only)" variant). Ungetc may not reintroduce a NUL byte:
// push-back into this variant must not resurrect the terminator.
func NewCString(data []byte) Stream {
	pos := 0
	ops := Ops{
		Read: func(scratch *Scratch, p []byte) (int, error) {
			if pos >= len(data) {
				return 0, io.EOF
			}
			n := copy(p, data[pos:])
			pos += n
			return n, nil
		},
		Seek: func(scratch *Scratch, offset int64) (int64, error) {
			if offset < 0 || offset > int64(len(data)) {
				return 0, ErrInvalidArgument
			}
			pos = int(offset)
			return offset, nil
		},
		Size: func(scratch *Scratch) (int64, error) {
			return int64(len(data)), nil
		},
	}
	s := newStream(KindCString, ModeRead|ModeBinary, ops)
	s.noNulUngetc = true
	return s
}
