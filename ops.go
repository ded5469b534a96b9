// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "time"

// Scratch is the per-stream private-state area described in spec §3 and §4.3:
// "an optional per-variant scratch area (>= two-pointer aligned) used by
// filter implementations to store their private state". It is passed to
// every Ops callback, so a filter (hex's pending nibble, a cipher's block
// buffer) can keep state here instead of a separate heap allocation for
// small cases, or stash a pointer to a larger heap-owned struct in Any for
// bigger ones.
type Scratch struct {
	Words [2]uintptr
	Any   any
}

// Ops is the custom-callback vtable backing every Stream variant (spec §4.3).
// Any field may be nil. A nil Read, Write, Size, Truncate, Shutdown or
// timeout field makes the corresponding Stream method fail with
// ErrNotSupported; a nil Seek fails with ErrSeekNotSupported, and a nil Flush
// or Close succeeds as a no-op. Implementations receive the stream's Scratch so they can
// hold private state without a second allocation.
type Ops struct {
	Read  func(scratch *Scratch, p []byte) (int, error)
	Write func(scratch *Scratch, p []byte) (int, error)

	// Seek repositions the backing device to an absolute logical offset and
	// returns the resulting offset. It is only called with an already
	// resolved absolute offset; Origin math happens in the core.
	Seek func(scratch *Scratch, offset int64) (int64, error)

	Flush    func(scratch *Scratch) error
	Close    func(scratch *Scratch) error
	Shutdown func(scratch *Scratch, how ShutdownHow) error

	Size     func(scratch *Scratch) (int64, error)
	Truncate func(scratch *Scratch, size int64) error

	SetReadTimeout  func(scratch *Scratch, d time.Duration) error
	SetWriteTimeout func(scratch *Scratch, d time.Duration) error
}
