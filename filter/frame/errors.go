// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"errors"
	"io"

	"code.hybscloud.com/stream"
)

var (
	// ErrInvalidArgument reports an invalid configuration or nil reader/writer.
	ErrInvalidArgument = errors.New("frame: invalid argument")

	// ErrTooLong reports that a frame length exceeds limits or the supported wire format.
	ErrTooLong = errors.New("frame: message too long")
)

// translateErr maps a framer-level error onto the stream package's
// ErrorKind taxonomy for callers reached through NewStreamReader/
// NewStreamWriter/NewStreamReadWriter. ErrWouldBlock needs no translation:
// it is iox.ErrWouldBlock under both names, so frame and stream already
// compare equal on it without this function's help.
func translateErr(err error) error {
	switch err {
	case nil, io.EOF:
		return err
	case ErrTooLong:
		return stream.ErrBadMessage
	case ErrInvalidArgument:
		return stream.ErrInvalidArgument
	default:
		return err
	}
}
