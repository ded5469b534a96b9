// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"code.hybscloud.com/stream"
)

// NewStreamReader adapts inner into a read-only stream.Stream that yields
// one decoded frame payload per logical message, so frame composes with
// the other filters in this module the same way hex/aes/pkcs7/sha1 do.
func NewStreamReader(inner stream.Stream, opts ...Option) stream.Stream {
	r := NewReader(inner, opts...)
	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			n, err := r.Read(p)
			return n, translateErr(err)
		},
	}
	return stream.NewCustomKind(stream.Kind("frame_reader"), stream.ModeRead|stream.ModeBinary, ops)
}

// NewStreamWriter adapts inner into a write-only stream.Stream where each
// Write call becomes one framed message.
func NewStreamWriter(inner stream.Stream, opts ...Option) stream.Stream {
	w := NewWriter(inner, opts...)
	ops := stream.Ops{
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			n, err := w.Write(p)
			return n, translateErr(err)
		},
		Flush: func(scratch *stream.Scratch) error {
			return translateErr(inner.Flush())
		},
	}
	return stream.NewCustomKind(stream.Kind("frame_writer"), stream.ModeWrite|stream.ModeBinary, ops)
}

// NewStreamReadWriter adapts inner into a read+write stream.Stream, framing
// both directions independently over the same underlying stream.Stream
// (which must itself support full-duplex use, e.g. a socket or pipe).
func NewStreamReadWriter(inner stream.Stream, opts ...Option) stream.Stream {
	fr := newFramer(inner, inner, opts...)
	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			n, err := fr.read(p)
			return n, translateErr(err)
		},
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			n, err := fr.write(p)
			return n, translateErr(err)
		},
	}
	return stream.NewCustomKind(stream.Kind("frame_readwriter"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary, ops)
}
