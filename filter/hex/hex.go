// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hex provides hex-encode and hex-decode codec filters (spec
// §4.4.1): custom-callback streams stacked over a borrowed inner
// stream.Stream, producing or consuming lowercase ASCII hex digits two
// characters per byte.
package hex

import (
	"io"

	"code.hybscloud.com/stream"
)

const digits = "0123456789abcdef"

// noPending is the sentinel meaning "no pending nibble", stored alongside
// the actual 0-15 nibble value (spec §4.4.1's "pending nibble" scratch
// state).
const noPending = 16

func nibbleValue(c byte) (int, bool) {
	if c >= 'A' && c <= 'F' {
		c += 'a' - 'A'
	}
	i := int(c)
	switch {
	case c >= '0' && c <= '9':
		return i - '0', true
	case c >= 'a' && c <= 'f':
		return i - 'a' + 10, true
	default:
		return 0, false
	}
}

// NewEncoder wraps inner so that reads yield its bytes as lowercase hex
// digits and writes accept bytes and emit their hex digits to inner.
func NewEncoder(inner stream.Stream) stream.Stream {
	pending := noPending

	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			n := 0
			for n < len(p) {
				if pending != noPending {
					p[n] = digits[pending]
					pending = noPending
					n++
					continue
				}
				var b [1]byte
				rn, err := inner.Read(b[:])
				if rn == 0 {
					if n > 0 {
						return n, nil
					}
					if err == nil {
						err = io.ErrNoProgress
					}
					return 0, err
				}
				p[n] = digits[b[0]>>4]
				n++
				pending = int(b[0] & 0xF)
			}
			return n, nil
		},
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			var pair [2]byte
			for i, b := range p {
				pair[0] = digits[b>>4]
				pair[1] = digits[b&0xF]
				if _, err := inner.Write(pair[:]); err != nil {
					return i, err
				}
			}
			return len(p), nil
		},
		Seek: func(scratch *stream.Scratch, offset int64) (int64, error) {
			bytePos := offset / 2
			if _, err := inner.Seek(bytePos, io.SeekStart); err != nil {
				return 0, err
			}
			pending = noPending
			if offset%2 != 0 {
				var b [1]byte
				rn, err := inner.Read(b[:])
				if rn == 1 {
					pending = int(b[0] & 0xF)
				} else if err != nil && err != io.EOF {
					return 0, err
				}
			}
			return offset, nil
		},
		Flush: func(scratch *stream.Scratch) error { return inner.Flush() },
		Close: func(scratch *stream.Scratch) error { return nil },
	}
	return stream.NewCustomKind(stream.Kind("hex_encode"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary, ops)
}

// NewDecoder wraps inner so that reads consume pairs of hex digits and
// yield the decoded bytes, and writes accept hex digits (ignoring any
// non-hex byte) and emit decoded bytes to inner.
func NewDecoder(inner stream.Stream) stream.Stream {
	pending := noPending

	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			n := 0
			for n < len(p) {
				var cbuf [2]byte
				rn, err := io.ReadFull(inner, cbuf[:])
				if rn == 0 {
					if n > 0 {
						return n, nil
					}
					if err == io.EOF {
						return 0, io.EOF
					}
					return 0, err
				}
				if err == io.ErrUnexpectedEOF {
					return n, stream.ErrBadMessage
				}
				if err != nil {
					return n, err
				}
				hi, ok1 := nibbleValue(cbuf[0])
				lo, ok2 := nibbleValue(cbuf[1])
				if !ok1 || !ok2 {
					return n, stream.ErrBadMessage
				}
				p[n] = byte(hi<<4 | lo)
				n++
			}
			return n, nil
		},
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			out := make([]byte, 0, len(p)/2+1)
			for _, c := range p {
				v, ok := nibbleValue(c)
				if !ok {
					continue
				}
				if pending == noPending {
					pending = v
				} else {
					out = append(out, byte(pending<<4|v))
					pending = noPending
				}
			}
			if len(out) > 0 {
				if _, err := inner.Write(out); err != nil {
					return len(p), err
				}
			}
			return len(p), nil
		},
		Seek: func(scratch *stream.Scratch, offset int64) (int64, error) {
			if _, err := inner.Seek(offset*2, io.SeekStart); err != nil {
				return 0, err
			}
			pending = noPending
			return offset, nil
		},
		Flush: func(scratch *stream.Scratch) error { return inner.Flush() },
		Close: func(scratch *stream.Scratch) error { return nil },
	}
	return stream.NewCustomKind(stream.Kind("hex_decode"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary, ops)
}
