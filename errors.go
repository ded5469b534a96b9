// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"
	"io"

	"code.hybscloud.com/iox"
)

// ErrorKind classifies a Stream failure into the user-visible taxonomy.
//
// A Stream never exposes raw OS error codes directly; Classify maps the
// sentinel (or wrapped sentinel) returned by an operation onto one of these
// kinds, which is what callers should switch on.
type ErrorKind uint8

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindReadForbidden
	ErrorKindWriteForbidden
	ErrorKindWouldBlock
	ErrorKindTimeout
	ErrorKindNoMemory
	ErrorKindNoBufferSpace
	ErrorKindBadMessage
	ErrorKindInvalidArgument
	ErrorKindSeekNotSupported
	ErrorKindIO
	ErrorKindNotSupported
	ErrorKindAlreadyOpen
	ErrorKindEndOfStream
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindReadForbidden:
		return "read-forbidden"
	case ErrorKindWriteForbidden:
		return "write-forbidden"
	case ErrorKindWouldBlock:
		return "would-block"
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindNoMemory:
		return "no-memory"
	case ErrorKindNoBufferSpace:
		return "no-buffer-space"
	case ErrorKindBadMessage:
		return "bad-message"
	case ErrorKindInvalidArgument:
		return "invalid-argument"
	case ErrorKindSeekNotSupported:
		return "seek-not-supported"
	case ErrorKindIO:
		return "i/o-error"
	case ErrorKindNotSupported:
		return "not-supported"
	case ErrorKindAlreadyOpen:
		return "already-open"
	case ErrorKindEndOfStream:
		return "end-of-stream"
	default:
		return "none"
	}
}

// Sentinel errors forming the user-visible taxonomy from spec §6.
//
// ErrWouldBlock is re-exported from code.hybscloud.com/iox rather than minted
// fresh, so non-blocking control flow compares equal across every layer of
// the stack.
var (
	ErrReadForbidden    = errors.New("stream: read forbidden, stream is in writing direction")
	ErrWriteForbidden   = errors.New("stream: write forbidden, stream is in reading direction")
	ErrWouldBlock       = iox.ErrWouldBlock
	ErrTimeout          = errors.New("stream: i/o timeout")
	ErrNoMemory         = errors.New("stream: no memory")
	ErrNoBufferSpace    = errors.New("stream: no buffer space")
	ErrBadMessage       = errors.New("stream: bad message")
	ErrInvalidArgument  = errors.New("stream: invalid argument")
	ErrSeekNotSupported = errors.New("stream: seek not supported")
	ErrIO               = errors.New("stream: i/o error")
	ErrNotSupported     = errors.New("stream: operation not supported")
	ErrAlreadyOpen      = errors.New("stream: already open")
	ErrEndOfStream      = io.EOF
)

var kindByErr = map[error]ErrorKind{
	ErrReadForbidden:    ErrorKindReadForbidden,
	ErrWriteForbidden:   ErrorKindWriteForbidden,
	ErrWouldBlock:       ErrorKindWouldBlock,
	ErrTimeout:          ErrorKindTimeout,
	ErrNoMemory:         ErrorKindNoMemory,
	ErrNoBufferSpace:    ErrorKindNoBufferSpace,
	ErrBadMessage:       ErrorKindBadMessage,
	ErrInvalidArgument:  ErrorKindInvalidArgument,
	ErrSeekNotSupported: ErrorKindSeekNotSupported,
	ErrIO:               ErrorKindIO,
	ErrNotSupported:     ErrorKindNotSupported,
	ErrAlreadyOpen:      ErrorKindAlreadyOpen,
	ErrEndOfStream:      ErrorKindEndOfStream,
}

// Classify maps err onto the user-visible ErrorKind taxonomy.
// It unwraps err looking for one of the package sentinels, returning
// ErrorKindNone when err is nil and ErrorKindIO for any unrecognized error.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	for sentinel, kind := range kindByErr {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ErrorKindIO
}
