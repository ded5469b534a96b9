// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package teelimiter provides three small structural filters (spec
// §4.4.6): Tee (write-only fan-out to two inner streams), Concat (two
// inner streams spliced into one logical sequential surface), and Limiter
// (a fixed [offset, offset+length) window onto an inner stream).
package teelimiter

import (
	"io"

	"code.hybscloud.com/stream"
)

// NewTee returns a write-only Stream that duplicates every write to both a
// and b. An error from either side marks the tee errored; Read is not
// supported.
func NewTee(a, b stream.Stream) stream.Stream {
	ops := stream.Ops{
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			na, erra := a.Write(p)
			nb, errb := b.Write(p)
			if erra != nil {
				return na, erra
			}
			if errb != nil {
				return nb, errb
			}
			return na, nil
		},
		Flush: func(scratch *stream.Scratch) error {
			if err := a.Flush(); err != nil {
				return err
			}
			return b.Flush()
		},
	}
	return stream.NewCustomKind(stream.Kind("tee"), stream.ModeWrite|stream.ModeBinary, ops)
}

// NewConcat splices a and b into a single logical stream: reads drain a
// entirely, then b; writes fill a, then b, once a reports no buffer space.
func NewConcat(a, b stream.Stream) stream.Stream {
	onA := true
	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			if onA {
				n, err := a.Read(p)
				if err == io.EOF {
					onA = false
					if n > 0 {
						return n, nil
					}
					return b.Read(p)
				}
				return n, err
			}
			return b.Read(p)
		},
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			if onA {
				n, err := a.Write(p)
				if err == stream.ErrNoBufferSpace {
					onA = false
					return b.Write(p)
				}
				return n, err
			}
			return b.Write(p)
		},
	}
	return stream.NewCustomKind(stream.Kind("concat"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary, ops)
}

// NewLimiter caps reads and writes on inner to the window [offset,
// offset+length). Seeks within the window are translated to inner
// coordinates; seeks outside the window fail without touching inner.
func NewLimiter(inner stream.Stream, offset, length int64) (stream.Stream, error) {
	if _, err := inner.Seek(offset, stream.OriginStart); err != nil {
		return nil, err
	}
	pos := int64(0)

	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			if pos >= length {
				return 0, io.EOF
			}
			remain := length - pos
			if int64(len(p)) > remain {
				p = p[:remain]
			}
			n, err := inner.Read(p)
			pos += int64(n)
			return n, err
		},
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			if pos >= length {
				return 0, stream.ErrNoBufferSpace
			}
			remain := length - pos
			truncated := false
			if int64(len(p)) > remain {
				p = p[:remain]
				truncated = true
			}
			n, err := inner.Write(p)
			pos += int64(n)
			if err == nil && truncated {
				err = stream.ErrNoBufferSpace
			}
			return n, err
		},
		Seek: func(scratch *stream.Scratch, abs int64) (int64, error) {
			if abs < 0 || abs > length {
				return 0, stream.ErrInvalidArgument
			}
			if _, err := inner.Seek(offset+abs, stream.OriginStart); err != nil {
				return 0, err
			}
			pos = abs
			return abs, nil
		},
		Size: func(scratch *stream.Scratch) (int64, error) { return length, nil },
	}
	return stream.NewCustomKind(stream.Kind("limiter"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary, ops), nil
}
