// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pkcs7 provides PKCS#7 padding codec filters (spec §4.4.3): a
// block-size parameter B (1 <= B <= 255), an encoder that appends the
// padding exactly once at end-of-input, and a decoder that buffers one
// trailing block so the padding count can be validated before the stripped
// plaintext is released.
package pkcs7

import (
	"io"

	"code.hybscloud.com/stream"
)

// NewEncoder wraps inner so that writes pass through unchanged and, on
// Close, padding is appended once: B - (n mod B) bytes (1 to B), each equal
// to that count, so a full block of value B is added when n is already a
// multiple of B.
func NewEncoder(inner stream.Stream, blockSize int) stream.Stream {
	if blockSize < 1 || blockSize > 255 {
		blockSize = 16
	}
	pending := 0

	ops := stream.Ops{
		Write: func(scratch *stream.Scratch, p []byte) (int, error) {
			if len(p) > 0 {
				pending += len(p)
				if _, err := inner.Write(p); err != nil {
					return 0, err
				}
			}
			return len(p), nil
		},
		Flush: func(scratch *stream.Scratch) error { return inner.Flush() },
		Close: func(scratch *stream.Scratch) error {
			padLen := blockSize - (pending % blockSize)
			pad := make([]byte, padLen)
			for i := range pad {
				pad[i] = byte(padLen)
			}
			if _, err := inner.Write(pad); err != nil {
				return err
			}
			pending = 0
			return nil
		},
	}
	return stream.NewCustomKind(stream.Kind("pkcs7_encode"), stream.ModeWrite|stream.ModeBinary, ops)
}

// NewDecoder wraps inner so that reads yield its bytes with the trailing
// PKCS#7 padding removed. Removal happens lazily: up to one block is held
// back internally until end-of-input is reached and the padding byte can be
// validated, since the final block cannot be told apart from an interior
// one until then.
func NewDecoder(inner stream.Stream, blockSize int) stream.Stream {
	if blockSize < 1 || blockSize > 255 {
		blockSize = 16
	}
	var held []byte   // stripped plaintext ready to hand to the caller
	var pending []byte // most recently read full block, not yet known to be the last
	done := false

	stripPadding := func(block []byte) error {
		k := int(block[len(block)-1])
		if k < 1 || k > blockSize || k > len(block) {
			return stream.ErrBadMessage
		}
		for i := len(block) - k; i < len(block)-1; i++ {
			if block[i] != byte(k) {
				return stream.ErrBadMessage
			}
		}
		held = append(held, block[:len(block)-k]...)
		return nil
	}

	// fill reads one more block from inner, releasing the previously pending
	// block to held once a further block proves it wasn't the last one. The
	// last block is only unmasked and pad-stripped once io.ReadFull reports a
	// clean end-of-input, so an interior block is never mistaken for the
	// padded tail.
	fill := func() error {
		if done {
			return nil
		}
		chunk := make([]byte, blockSize)
		_, err := io.ReadFull(inner, chunk)
		switch err {
		case nil:
			if pending != nil {
				held = append(held, pending...)
			}
			pending = chunk
			return nil
		case io.EOF:
			done = true
			if pending == nil {
				return stream.ErrBadMessage
			}
			return stripPadding(pending)
		case io.ErrUnexpectedEOF:
			done = true
			return stream.ErrBadMessage
		default:
			return err
		}
	}

	ops := stream.Ops{
		Read: func(scratch *stream.Scratch, p []byte) (int, error) {
			for len(held) == 0 && !done {
				if err := fill(); err != nil {
					return 0, err
				}
			}
			if len(held) == 0 {
				return 0, io.EOF
			}
			n := copy(p, held)
			held = held[n:]
			return n, nil
		},
	}
	return stream.NewCustomKind(stream.Kind("pkcs7_decode"), stream.ModeRead|stream.ModeBinary, ops)
}
