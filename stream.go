// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stream provides a polymorphic, stackable stream abstraction: every
// data source, sink, and transformation (file, buffer, socket, or codec
// filter) is a uniform Stream value with a directional read/write state
// machine, sticky error/eof flags, an ungetc push-back buffer, and an
// optional per-variant scratch area for filter private state.
//
// Concrete variants (NewEmpty, NewFile, NewNativeHandle, NewCString,
// NewSizedBuffer, NewMinimalGrowableBuffer, NewAmortizedGrowableBuffer,
// NewCustom) are all, internally, a custom-callback stream: every Stream is
// built from an Ops vtable, so codec filters under the filter/ subtree
// compose with buffer and file variants without a separate interface to
// satisfy.
package stream

import (
	"io"
	"time"

	"code.hybscloud.com/stream/descriptor"
)

// Stream is the polymorphic handle described by spec §3/§4.1.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
	io.Seeker

	Flush() error
	Tell() (int64, error)
	GetPos() (int64, error)
	SetPos(pos int64) error

	Getc() (byte, error)
	Ungetc(c byte) error
	Putc(c byte) error
	Puts(s string) (int, error)
	Gets(p []byte) (int, error)

	// Printf and Scanf expand/parse the %{...} generic serialization
	// directives (descriptor.Printf/descriptor.Scanf) against this stream.
	Printf(format string, args ...any) (int, error)
	Scanf(format string, args ...any) (int, error)

	Copy(dst Stream) (int64, error)

	Shutdown(how ShutdownHow) error
	Clearerr()
	Error() error
	EOF() bool

	Size() (int64, error)
	Truncate(size int64) error

	SetReadTimeout(d time.Duration) error
	SetWriteTimeout(d time.Duration) error

	Kind() Kind
	Readable() bool
	Writable() bool

	// Scratch exposes the private per-stream scratch area to codec filters
	// built atop this stream (spec §4.3).
	Scratch() *Scratch
}

// coreStream is the single concrete implementation backing every variant.
type coreStream struct {
	ops  Ops
	kind Kind
	mode Mode

	scratch Scratch

	dir Direction
	err error
	eof bool

	pos int64

	unget       ungetcBuffer
	dec         textDecoder
	noNulUngetc bool // set by the read-only CString variant
}

// newStream constructs the shared core for every variant.
func newStream(kind Kind, mode Mode, ops Ops) *coreStream {
	return &coreStream{kind: kind, mode: mode, ops: ops}
}

func (s *coreStream) setErr(err error) {
	s.err = err
	s.dir = Errored
}

func (s *coreStream) Scratch() *Scratch { return &s.scratch }

func (s *coreStream) Kind() Kind     { return s.kind }
func (s *coreStream) Readable() bool { return s.mode.Readable() }
func (s *coreStream) Writable() bool { return s.mode.Writable() }
func (s *coreStream) Error() error   { return s.err }
func (s *coreStream) EOF() bool      { return s.eof }

func (s *coreStream) Clearerr() {
	s.err = nil
	s.eof = false
	if s.dir == Errored {
		s.dir = Fresh
	}
}

func (s *coreStream) Read(p []byte) (int, error) {
	if s.dir == Errored {
		return 0, s.err
	}
	if s.dir == Writing {
		s.setErr(ErrReadForbidden)
		return 0, ErrReadForbidden
	}
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(p) {
		c, ok := s.unget.pop()
		if !ok {
			break
		}
		p[n] = c
		n++
	}
	if n > 0 {
		s.dir = Reading
		s.pos += int64(n)
		return n, nil
	}

	if s.eof {
		return 0, io.EOF
	}
	if s.ops.Read == nil {
		s.setErr(ErrNotSupported)
		return 0, s.err
	}

	var rn int
	var err error
	if s.mode&ModeText != 0 && s.mode&ModeBinary == 0 {
		rn, err = s.textRead(p)
	} else {
		rn, err = s.ops.Read(&s.scratch, p)
	}
	if rn > 0 {
		s.dir = Reading
		s.pos += int64(rn)
	}
	if err != nil {
		if err == io.EOF {
			s.eof = true
		} else {
			s.setErr(err)
		}
	}
	return rn, err
}

func (s *coreStream) textRead(p []byte) (int, error) {
	rawNext := func() (byte, error) {
		var b [1]byte
		rn, err := s.ops.Read(&s.scratch, b[:])
		if rn > 0 {
			return b[0], nil
		}
		if err == nil {
			err = io.ErrNoProgress
		}
		return 0, err
	}
	n := 0
	for n < len(p) {
		c, ok, err := s.dec.decode(rawNext)
		if !ok {
			return n, err
		}
		p[n] = c
		n++
	}
	return n, nil
}

func (s *coreStream) Write(p []byte) (int, error) {
	if s.dir == Errored {
		return 0, s.err
	}
	if s.dir == Reading {
		s.setErr(ErrWriteForbidden)
		return 0, ErrWriteForbidden
	}
	if s.ops.Write == nil {
		s.setErr(ErrNotSupported)
		return 0, s.err
	}

	var wn int
	var err error
	if s.mode&ModeText != 0 && s.mode&ModeBinary == 0 {
		wn, err = s.textWrite(p)
	} else {
		wn, err = s.ops.Write(&s.scratch, p)
	}
	if wn > 0 {
		s.dir = Writing
		s.pos += int64(wn)
	}
	if err != nil {
		s.setErr(err)
	}
	return wn, err
}

func (s *coreStream) textWrite(p []byte) (int, error) {
	start := 0
	consumed := 0
	for i := 0; i < len(p); i++ {
		if p[i] != '\n' {
			continue
		}
		if i > start {
			if _, err := s.ops.Write(&s.scratch, p[start:i]); err != nil {
				return consumed, err
			}
			consumed += i - start
		}
		if _, err := s.ops.Write(&s.scratch, lineSep()); err != nil {
			return consumed, err
		}
		consumed++
		start = i + 1
	}
	if start < len(p) {
		if _, err := s.ops.Write(&s.scratch, p[start:]); err != nil {
			return consumed, err
		}
		consumed += len(p) - start
	}
	return consumed, nil
}

func (s *coreStream) Seek(offset int64, whence int) (int64, error) {
	if s.dir == Errored {
		return 0, s.err
	}
	if s.ops.Seek == nil {
		s.setErr(ErrSeekNotSupported)
		return 0, s.err
	}

	var abs int64
	switch whence {
	case OriginStart:
		abs = offset
	case OriginCurrent:
		abs = s.pos + offset
	case OriginEnd:
		sz, err := s.sizeLocked()
		if err != nil {
			return 0, err
		}
		abs = sz + offset
	default:
		s.setErr(ErrInvalidArgument)
		return 0, s.err
	}

	newPos, err := s.ops.Seek(&s.scratch, abs)
	if err != nil {
		s.setErr(err)
		return 0, err
	}
	s.pos = newPos
	s.dir = Fresh
	s.eof = false
	s.unget.reset()
	s.dec.reset()
	return newPos, nil
}

func (s *coreStream) sizeLocked() (int64, error) {
	if s.ops.Size == nil {
		s.setErr(ErrSeekNotSupported)
		return 0, s.err
	}
	sz, err := s.ops.Size(&s.scratch)
	if err != nil {
		s.setErr(err)
		return 0, err
	}
	return sz, nil
}

func (s *coreStream) Flush() error {
	if s.dir == Errored {
		return s.err
	}
	if s.ops.Flush != nil {
		if err := s.ops.Flush(&s.scratch); err != nil {
			s.setErr(err)
			return err
		}
	}
	// A successful flush, with or without a Flush op, commits the current
	// direction: the next call may read or write.
	s.dir = Fresh
	s.dec.reset()
	return nil
}

func (s *coreStream) Close() error {
	if s.ops.Close == nil {
		return nil
	}
	return s.ops.Close(&s.scratch)
}

func (s *coreStream) Tell() (int64, error) {
	if s.dir == Errored {
		return 0, s.err
	}
	return s.pos, nil
}

func (s *coreStream) GetPos() (int64, error) { return s.Tell() }

func (s *coreStream) SetPos(pos int64) error {
	_, err := s.Seek(pos, OriginStart)
	return err
}

func (s *coreStream) Getc() (byte, error) {
	var b [1]byte
	n, err := s.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

func (s *coreStream) Ungetc(c byte) error {
	if s.dir == Errored {
		return s.err
	}
	if s.noNulUngetc && c == 0 {
		return ErrInvalidArgument
	}
	if !s.unget.push(c) {
		// "Ungetc-buffer full is reported (not a stream error)" (spec §7):
		// deliberately not routed through setErr.
		return ErrNoBufferSpace
	}
	s.dir = Reading
	s.pos--
	return nil
}

func (s *coreStream) Putc(c byte) error {
	var b [1]byte
	b[0] = c
	_, err := s.Write(b[:])
	return err
}

func (s *coreStream) Puts(str string) (int, error) {
	return s.Write([]byte(str))
}

func (s *coreStream) Gets(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		c, err := s.Getc()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = c
		n++
		if c == '\n' {
			break
		}
	}
	return n, nil
}

// Printf expands format against this stream's descriptor %{...} directives,
// writing the result (spec §4.5). It delegates to descriptor.Printf; s
// satisfies descriptor.Writer structurally via Write.
func (s *coreStream) Printf(format string, args ...any) (int, error) {
	return descriptor.Printf(s, format, args...)
}

// Scanf parses format's descriptor %{...} directives from this stream into
// the *any destinations that follow each directive's other arguments.
func (s *coreStream) Scanf(format string, args ...any) (int, error) {
	return descriptor.Scanf(s, format, args...)
}

func (s *coreStream) Copy(dst Stream) (int64, error) {
	return Copy(dst, s)
}

func (s *coreStream) Shutdown(how ShutdownHow) error {
	if s.ops.Shutdown == nil {
		return ErrNotSupported
	}
	return s.ops.Shutdown(&s.scratch, how)
}

func (s *coreStream) Size() (int64, error) {
	if s.ops.Size == nil {
		return 0, ErrNotSupported
	}
	return s.ops.Size(&s.scratch)
}

func (s *coreStream) Truncate(size int64) error {
	if s.ops.Truncate == nil {
		return ErrNotSupported
	}
	return s.ops.Truncate(&s.scratch, size)
}

func (s *coreStream) SetReadTimeout(d time.Duration) error {
	if s.ops.SetReadTimeout == nil {
		return ErrNotSupported
	}
	return s.ops.SetReadTimeout(&s.scratch, d)
}

func (s *coreStream) SetWriteTimeout(d time.Duration) error {
	if s.ops.SetWriteTimeout == nil {
		return ErrNotSupported
	}
	return s.ops.SetWriteTimeout(&s.scratch, d)
}

// NewCustom builds a Stream from a caller-supplied vtable (spec §4.3). A nil
// Read, Write, Size, Truncate, Shutdown or timeout field makes the
// corresponding method fail with ErrNotSupported; a nil Seek fails with
// ErrSeekNotSupported, and a nil Flush or Close succeeds as a no-op.
func NewCustom(mode Mode, ops Ops) Stream {
	return newStream(KindCustom, mode, ops)
}

// NewCustomKind is NewCustom with a caller-supplied Kind tag, used by codec
// filters that advertise a specific machine-readable type name (spec §6:
// "plus codec-provided names like hex_encode, hex_decode, sha1,
// zlib_deflate, zlib_inflate") instead of the generic "custom" tag.
func NewCustomKind(kind Kind, mode Mode, ops Ops) Stream {
	return newStream(kind, mode, ops)
}
