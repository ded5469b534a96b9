// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package zlib provides deflate/inflate codec filters over zlib, gzip, and
// raw-deflate framing (spec §4.4.5), backed by github.com/klauspost/compress
// — a drop-in, faster replacement for the standard library's
// compress/zlib, compress/gzip, and compress/flate that several repos in
// this module's dependency graph already pull in for the same purpose.
package zlib

import (
	"io"

	kzlib "github.com/klauspost/compress/zlib"

	"code.hybscloud.com/stream"
)

// Framing selects the container format wrapped around the deflate stream.
// The names mirror zlib's windowBits convention: positive selects Zlib,
// negative selects Raw, +16 selects Gzip, and +32 (Auto) tells inflate to
// sniff the header and accept either Zlib or Gzip.
type Framing uint8

const (
	Raw Framing = iota
	Zlib
	Gzip
	// Auto is valid only for NewInflateReader: it peeks the first two bytes
	// of inner to tell a gzip member from a zlib stream before picking the
	// matching reader, then un-reads them so the chosen reader sees them
	// again from the start.
	Auto
)

// NewDeflateWriter wraps inner so that writes are deflated (per framing)
// and pushed to inner; Close flushes and finalizes the compressed stream.
// Auto is not a valid writer framing, since there is nothing to sniff when
// producing a stream.
func NewDeflateWriter(inner stream.Stream, framing Framing, level int) (stream.Stream, error) {
	var w io.WriteCloser
	var err error
	switch framing {
	case Zlib:
		w, err = kzlib.NewWriterLevel(inner, level)
	case Gzip:
		w, err = gzipWriter(inner, level)
	case Auto:
		return nil, stream.ErrInvalidArgument
	default:
		w, err = flateWriter(inner, level)
	}
	if err != nil {
		return nil, err
	}

	ops := stream.Ops{
		Write: func(scratch *stream.Scratch, p []byte) (int, error) { return w.Write(p) },
		Flush: func(scratch *stream.Scratch) error {
			if f, ok := w.(interface{ Flush() error }); ok {
				return f.Flush()
			}
			return nil
		},
		Close: func(scratch *stream.Scratch) error { return w.Close() },
	}
	return stream.NewCustomKind(stream.Kind("zlib_deflate"), stream.ModeWrite|stream.ModeBinary, ops), nil
}

// NewInflateReader wraps inner so that reads yield the inflated bytes of
// inner's compressed content (per framing).
func NewInflateReader(inner stream.Stream, framing Framing) (stream.Stream, error) {
	var r io.ReadCloser
	var err error
	switch framing {
	case Zlib:
		r, err = kzlib.NewReader(inner)
	case Gzip:
		r, err = gzipReader(inner)
	case Auto:
		var detected Framing
		detected, err = sniffFraming(inner)
		if err != nil {
			return nil, err
		}
		if detected == Gzip {
			r, err = gzipReader(inner)
		} else {
			r, err = kzlib.NewReader(inner)
		}
	default:
		r = flateReader(inner)
	}
	if err != nil {
		return nil, err
	}

	ops := stream.Ops{
		Read:  func(scratch *stream.Scratch, p []byte) (int, error) { return r.Read(p) },
		Close: func(scratch *stream.Scratch) error { return r.Close() },
	}
	return stream.NewCustomKind(stream.Kind("zlib_inflate"), stream.ModeRead|stream.ModeBinary, ops), nil
}

// Deflate is a one-shot convenience wrapper returning src deflated in the
// given framing.
func Deflate(src []byte, framing Framing, level int) ([]byte, error) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeWrite, false)
	w, err := NewDeflateWriter(sink, framing, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	out := stream.Bytes(sink)
	cp := make([]byte, len(out))
	copy(cp, out)
	return cp, nil
}

// Inflate is a one-shot convenience wrapper returning src inflated from the
// given framing.
func Inflate(src []byte, framing Framing) ([]byte, error) {
	source := stream.NewCString(src)
	r, err := NewInflateReader(source, framing)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
