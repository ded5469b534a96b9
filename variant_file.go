// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"fmt"
	"os"
)

// fileFlags translates the closed mode grammar (spec §6) into os.OpenFile
// flags. Update ('+') always implies read+write without truncation, even
// when combined with 'w'; a plain write without update truncates, matching
// the conventional meaning of "w" across C-like mode strings.
func fileFlags(mode Mode) int {
	var flags int
	switch {
	case mode&ModeUpdate != 0:
		flags = os.O_RDWR
	case mode&ModeWrite != 0:
		flags = os.O_WRONLY
	default:
		flags = os.O_RDONLY
	}
	if mode.Writable() {
		flags |= os.O_CREATE
		if mode&ModeUpdate == 0 && mode&ModeAppend == 0 {
			flags |= os.O_TRUNC
		}
	}
	if mode&ModeAppend != 0 {
		flags |= os.O_APPEND
	}
	if mode&ModeExclusive != 0 {
		flags |= os.O_EXCL
	}
	return flags
}

// Open opens path per the mode grammar and returns an owned file Stream:
// Close releases the underlying os.File.
func Open(path string, mode Mode) (Stream, error) {
	f, err := os.OpenFile(path, fileFlags(mode), 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return NewFile(f, mode, true), nil
}

// NewFile wraps an already-open *os.File as a Stream. When owned is true,
// Close releases f; otherwise f outlives the Stream (spec §3: "Owned handles
// are closed on stream close; borrowed are not.").
func NewFile(f *os.File, mode Mode, owned bool) Stream {
	kind := KindFile
	if owned {
		kind = KindOwnedFile
	}
	ops := Ops{
		Read:  func(scratch *Scratch, p []byte) (int, error) { return f.Read(p) },
		Write: func(scratch *Scratch, p []byte) (int, error) { return f.Write(p) },
		Seek: func(scratch *Scratch, offset int64) (int64, error) {
			return f.Seek(offset, 0)
		},
		Flush: func(scratch *Scratch) error { return f.Sync() },
		Close: func(scratch *Scratch) error {
			if !owned {
				return nil
			}
			return f.Close()
		},
		Size: func(scratch *Scratch) (int64, error) {
			st, err := f.Stat()
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrIO, err)
			}
			return st.Size(), nil
		},
		Truncate: func(scratch *Scratch, size int64) error {
			return f.Truncate(size)
		},
	}
	return newStream(kind, mode, ops)
}
