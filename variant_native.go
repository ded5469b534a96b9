// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"io"
	"net"
	"time"
)

// deadlineSetter is satisfied by net.Conn and other handles that expose
// independent read/write deadlines. Handles that don't implement it simply
// report ErrNotSupported from SetReadTimeout/SetWriteTimeout, matching spec
// §3's "applicable only when the backing handle is a socket."
type deadlineSetter interface {
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

// NewNativeHandle wraps an arbitrary native handle (a socket, pipe, or any
// io.ReadWriteCloser obtained from outside this package) as a Stream. When
// owned is true, Close releases the handle; otherwise the caller retains
// ownership (spec §3's Borrowed/Owned native-handle pair).
func NewNativeHandle(h io.ReadWriteCloser, mode Mode, owned bool) Stream {
	kind := KindNativeFile
	if owned {
		kind = KindOwnedNative
	}
	ds, hasDeadlines := h.(deadlineSetter)
	ops := Ops{
		Read:  func(scratch *Scratch, p []byte) (int, error) { return h.Read(p) },
		Write: func(scratch *Scratch, p []byte) (int, error) { return h.Write(p) },
		Close: func(scratch *Scratch) error {
			if !owned {
				return nil
			}
			return h.Close()
		},
		Shutdown: func(scratch *Scratch, how ShutdownHow) error {
			conn, ok := h.(interface{ CloseWrite() error })
			if !ok {
				return ErrNotSupported
			}
			switch how {
			case ShutdownWrite, ShutdownBoth:
				return conn.CloseWrite()
			default:
				return ErrNotSupported
			}
		},
	}
	if hasDeadlines {
		ops.SetReadTimeout = func(scratch *Scratch, d time.Duration) error {
			if d <= 0 {
				return ds.SetReadDeadline(time.Time{})
			}
			return ds.SetReadDeadline(time.Now().Add(d))
		}
		ops.SetWriteTimeout = func(scratch *Scratch, d time.Duration) error {
			if d <= 0 {
				return ds.SetWriteDeadline(time.Time{})
			}
			return ds.SetWriteDeadline(time.Now().Add(d))
		}
	}
	return newStream(kind, mode, ops)
}

// NewConn is a convenience wrapper for the common case of an owned
// net.Conn, e.g. a dialed or accepted socket.
func NewConn(conn net.Conn, mode Mode) Stream {
	return NewNativeHandle(conn, mode, true)
}
