// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Kind is the machine-readable stream-type tag from spec §6.
type Kind string

const (
	KindEmpty         Kind = "empty"
	KindFile          Kind = "file"
	KindOwnedFile     Kind = "owned_file"
	KindNativeFile    Kind = "native_file"
	KindOwnedNative   Kind = "owned_native_file"
	KindCString       Kind = "cstring"
	KindSizedBuffer   Kind = "sized_buffer"
	KindMinimalBuffer Kind = "minimal_buffer"
	KindDynamicBuffer Kind = "dynamic_buffer"
	KindCustom        Kind = "custom"
)

// ShutdownHow selects which half of a duplex stream to shut down (spec §5).
type ShutdownHow uint8

const (
	ShutdownRead ShutdownHow = iota
	ShutdownWrite
	ShutdownBoth
)

// Origin selects the reference point for Seek, matching io.Seeker's
// whence argument (spec §4.1: "32- and 64-bit signed offsets; origins
// start/current/end" — realized here as plain int64 offsets, since Go has
// no native 32-bit file-offset API worth mirroring).
type Origin = int

const (
	OriginStart   = 0 // io.SeekStart
	OriginCurrent = 1 // io.SeekCurrent
	OriginEnd     = 2 // io.SeekEnd
)
