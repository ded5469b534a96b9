// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aes

import (
	"io"

	"code.hybscloud.com/stream"
)

// BlockMode selects one of the five chaining modes this package implements
// (spec §4.4.2). All operate on 16-byte blocks; padding is a separate
// concern (see the pkcs7 package).
type BlockMode uint8

const (
	ECB BlockMode = iota
	CBC
	PCBC
	CFB
	OFB
)

const blockSize = 16

func xorBlock(dst []byte, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

type direction uint8

const (
	dirEncrypt direction = iota
	dirDecrypt
)

// cipherFilter is the shared engine behind NewEncrypter and NewDecrypter: it
// aggregates whole blocks on write and pulls whole blocks from inner on
// read, applying transformBlock's per-mode feedback algebra. The final
// partial block is never emitted; a padding layer above is responsible for
// it (spec §4.4.2's streaming contract).
type cipherFilter struct {
	inner stream.Stream
	sched *schedule
	mode  BlockMode
	dir   direction
	prev  [blockSize]byte

	wbuf []byte

	rbuf  []byte
	rdone bool
}

func newCipherFilter(inner stream.Stream, key, iv []byte, mode BlockMode, dir direction) (*cipherFilter, error) {
	sched, err := expandKey(key)
	if err != nil {
		return nil, err
	}
	f := &cipherFilter{inner: inner, sched: sched, mode: mode, dir: dir}
	if mode != ECB {
		if len(iv) != blockSize {
			return nil, ErrInvalidIVSize
		}
		copy(f.prev[:], iv)
	}
	return f, nil
}

// transformBlock encrypts or decrypts a single 16-byte block according to
// f.mode and f.dir, updating the feedback state (f.prev) as each mode
// defines. CFB and OFB deliberately invoke the forward (encrypt) block
// transform on f.prev even when f.dir is dirDecrypt: that is the
// definition of those two modes, not a bug.
func (f *cipherFilter) transformBlock(in []byte) []byte {
	out := make([]byte, blockSize)
	switch f.mode {
	case ECB:
		if f.dir == dirEncrypt {
			copy(out, f.sched.encryptBlock(in))
		} else {
			copy(out, f.sched.decryptBlock(in))
		}
	case CBC:
		if f.dir == dirEncrypt {
			x := make([]byte, blockSize)
			xorBlock(x, in, f.prev[:])
			copy(out, f.sched.encryptBlock(x))
			copy(f.prev[:], out)
		} else {
			d := f.sched.decryptBlock(in)
			xorBlock(out, d, f.prev[:])
			copy(f.prev[:], in)
		}
	case PCBC:
		if f.dir == dirEncrypt {
			x := make([]byte, blockSize)
			xorBlock(x, in, f.prev[:])
			copy(out, f.sched.encryptBlock(x))
			np := make([]byte, blockSize)
			xorBlock(np, in, out)
			copy(f.prev[:], np)
		} else {
			d := f.sched.decryptBlock(in)
			xorBlock(out, d, f.prev[:])
			np := make([]byte, blockSize)
			xorBlock(np, out, in)
			copy(f.prev[:], np)
		}
	case CFB:
		e := f.sched.encryptBlock(f.prev[:])
		xorBlock(out, in, e)
		if f.dir == dirEncrypt {
			copy(f.prev[:], out)
		} else {
			copy(f.prev[:], in)
		}
	case OFB:
		e := f.sched.encryptBlock(f.prev[:])
		copy(f.prev[:], e)
		xorBlock(out, in, e)
	}
	return out
}

func (f *cipherFilter) write(p []byte) (int, error) {
	f.wbuf = append(f.wbuf, p...)
	for len(f.wbuf) >= blockSize {
		out := f.transformBlock(f.wbuf[:blockSize])
		if _, err := f.inner.Write(out); err != nil {
			return len(p), err
		}
		f.wbuf = f.wbuf[blockSize:]
	}
	return len(p), nil
}

func (f *cipherFilter) read(p []byte) (int, error) {
	for len(f.rbuf) == 0 {
		if f.rdone {
			return 0, io.EOF
		}
		block := make([]byte, blockSize)
		n, err := io.ReadFull(f.inner, block)
		switch {
		case n == blockSize:
			f.rbuf = f.transformBlock(block)
		case err == io.EOF, err == io.ErrUnexpectedEOF:
			f.rdone = true
			return 0, io.EOF
		default:
			return 0, err
		}
	}
	n := copy(p, f.rbuf)
	f.rbuf = f.rbuf[n:]
	return n, nil
}

func newFilterStream(f *cipherFilter, kind stream.Kind, streamMode stream.Mode) stream.Stream {
	ops := stream.Ops{
		Read:  func(scratch *stream.Scratch, p []byte) (int, error) { return f.read(p) },
		Write: func(scratch *stream.Scratch, p []byte) (int, error) { return f.write(p) },
		Flush: func(scratch *stream.Scratch) error { return f.inner.Flush() },
	}
	return stream.NewCustomKind(kind, streamMode, ops)
}

// NewEncrypter wraps inner (the ciphertext side) with an AES encrypter:
// Write accepts plaintext and pushes whole encrypted blocks to inner; Read
// pulls whole plaintext blocks from inner and yields ciphertext.
func NewEncrypter(inner stream.Stream, key, iv []byte, mode BlockMode) (stream.Stream, error) {
	f, err := newCipherFilter(inner, key, iv, mode, dirEncrypt)
	if err != nil {
		return nil, err
	}
	return newFilterStream(f, stream.Kind("aes_encrypt"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary), nil
}

// NewDecrypter wraps inner (the ciphertext side) with an AES decrypter:
// Read pulls whole ciphertext blocks from inner and yields plaintext; Write
// accepts ciphertext and pushes whole decrypted blocks to inner.
func NewDecrypter(inner stream.Stream, key, iv []byte, mode BlockMode) (stream.Stream, error) {
	f, err := newCipherFilter(inner, key, iv, mode, dirDecrypt)
	if err != nil {
		return nil, err
	}
	return newFilterStream(f, stream.Kind("aes_decrypt"), stream.ModeRead|stream.ModeWrite|stream.ModeBinary), nil
}
