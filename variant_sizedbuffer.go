// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// sizedBufferState is the scratch payload for the fixed-size buffer variant
// (spec §4.2): a caller-supplied array of known size. Writes past the end
// fail atomically with ErrNoBufferSpace, leaving prior content untouched.
type sizedBufferState struct {
	buf []byte
	pos int
}

// NewSizedBuffer wraps buf as a fixed-capacity Stream. Reads and writes are
// bounds-checked against len(buf); the buffer never grows.
func NewSizedBuffer(buf []byte, mode Mode) Stream {
	st := &sizedBufferState{buf: buf}
	ops := Ops{
		Read: func(scratch *Scratch, p []byte) (int, error) {
			if st.pos >= len(st.buf) {
				return 0, io.EOF
			}
			n := copy(p, st.buf[st.pos:])
			st.pos += n
			return n, nil
		},
		Write: func(scratch *Scratch, p []byte) (int, error) {
			if st.pos+len(p) > len(st.buf) {
				return 0, ErrNoBufferSpace
			}
			n := copy(st.buf[st.pos:], p)
			st.pos += n
			return n, nil
		},
		Seek: func(scratch *Scratch, offset int64) (int64, error) {
			if offset < 0 || offset > int64(len(st.buf)) {
				return 0, ErrInvalidArgument
			}
			st.pos = int(offset)
			return offset, nil
		},
		Size: func(scratch *Scratch) (int64, error) {
			return int64(len(st.buf)), nil
		},
	}
	s := newStream(KindSizedBuffer, mode, ops)
	s.scratch.Any = st
	return s
}
