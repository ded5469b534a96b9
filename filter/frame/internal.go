// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/binary"
	"io"
	"runtime"
	"time"
)

const (
	frameHeaderLen          = 1
	framePayloadMaxLen8Bits = 1<<8 - 3
	framePayloadMaxLen16    = 1<<16 - 1
	framePayloadMaxLen56    = 1<<56 - 1
)

// framer keeps entirely separate mutable state for its read side and its
// write side (rHeader/rLength/rOffset vs. wHeader/wLength/wOffset). A single
// shared header/offset pair would race the moment a caller drives Read and
// Write concurrently on the same framer — the documented NewReadWriter/
// NewPipe full-duplex usage does exactly that.
type framer struct {
	rd  io.Reader
	rbo binary.ByteOrder
	rpr Protocol
	wr  io.Writer
	wbo binary.ByteOrder
	wpr Protocol

	readLimit int64

	retryDelay time.Duration

	// read-side stream state
	rHeader [8]byte
	rLength int64 // payload length for current message
	rOffset int64 // bytes processed in (header+payload)

	// reusable scratch buffer for Reader.WriteTo fast path
	rbuf []byte

	// WriteTo partial-write resume state: when dst.Write returns a
	// partial result with ErrWouldBlock/ErrMore, wtOff..wtLen marks
	// the unwritten region inside rbuf so the next WriteTo call can
	// finish draining before reading a new message.
	wtOff int
	wtLen int

	// write-side stream state
	wHeader [8]byte
	wLength int64
	wOffset int64

	// reusable scratch buffer for Writer.ReadFrom fast path
	wbuf []byte
}

func newFramer(r io.Reader, w io.Writer, opts ...Option) *framer {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}

	fr := &framer{
		rd:        r,
		wr:        w,
		rbo:       o.ReadByteOrder,
		wbo:       o.WriteByteOrder,
		rpr:       o.ReadProto,
		wpr:       o.WriteProto,
		readLimit: int64(o.ReadLimit),

		retryDelay: o.RetryDelay,
	}
	return fr
}

func (fr *framer) resetRead() {
	fr.rOffset = 0
	fr.rLength = 0
}

func (fr *framer) resetWrite() {
	fr.wOffset = 0
	fr.wLength = 0
}

func (fr *framer) yieldOnce() {
	// Cooperative yield to avoid burning a full core when emulating blocking
	// on top of a non-blocking transport.
	runtime.Gosched()
}

func (fr *framer) read(p []byte) (n int, err error) {
	if fr.rd == nil {
		return 0, ErrInvalidArgument
	}
	if fr.rpr.preserveBoundary() {
		return fr.readPacket(p)
	}
	return fr.readStream(p)
}

func (fr *framer) write(p []byte) (n int, err error) {
	if fr.wr == nil {
		return 0, ErrInvalidArgument
	}
	if fr.wpr.preserveBoundary() {
		return fr.writePacket(p)
	}
	return fr.writeStream(p)
}

func (fr *framer) waitOnceOnWouldBlock() bool {
	// returns whether the caller should retry
	if fr.retryDelay < 0 {
		return false
	}
	if fr.retryDelay == 0 {
		fr.yieldOnce()
		return true
	}
	time.Sleep(fr.retryDelay)
	return true
}

func (fr *framer) readOnce(p []byte) (n int, err error) {
	for {
		n, err = fr.rd.Read(p)
		// Guard against broken Readers that violate the io.Reader contract by
		// returning (0, nil) on a non-empty buffer. Without this, the stream
		// state machine can spin indefinitely.
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 {
			return n, err
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !fr.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

func (fr *framer) writeOnce(p []byte) (n int, err error) {
	for {
		n, err = fr.wr.Write(p)
		// Guard against broken Writers that violate the io.Writer contract by
		// returning (0, nil) on a non-empty buffer. Without this, the stream
		// writer can spin indefinitely.
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrShortWrite
		}
		if n > 0 {
			return n, err
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !fr.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

func (fr *framer) readPacket(p []byte) (n int, err error) {
	n, err = fr.readOnce(p)
	if fr.readLimit > 0 && int64(n) > fr.readLimit {
		return n, ErrTooLong
	}
	return n, err
}

func (fr *framer) writePacket(p []byte) (n int, err error) {
	if int64(len(p)) > framePayloadMaxLen56 {
		return 0, ErrTooLong
	}
	n, err = fr.writeOnce(p)
	if err != nil {
		return n, err
	}
	if n != len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (fr *framer) readStream(p []byte) (n int, err error) {
	// Stream framing contract:
	// In Nonblock mode, partial progress may be returned with iox.ErrWouldBlock.
	// The caller must retry with the same buffer to preserve already-copied bytes.

	// 1) Read minimal header byte.
	for fr.rOffset < frameHeaderLen {
		rn, re := fr.readOnce(fr.rHeader[fr.rOffset:frameHeaderLen])
		fr.rOffset += int64(rn)
		if re != nil {
			if re == io.EOF {
				if fr.rOffset == 0 {
					// Clean EOF at message boundary.
					return 0, io.EOF
				}
				if fr.rOffset < frameHeaderLen {
					// Partial header read; stream truncated.
					return 0, io.ErrUnexpectedEOF
				}
				break
			}
			return 0, re
		}
	}

	// 2) Determine extended length bytes.
	exLen := int64(0)
	if fr.rOffset >= frameHeaderLen {
		switch fr.rHeader[0] {
		case framePayloadMaxLen8Bits + 1:
			exLen = 2
		case framePayloadMaxLen8Bits + 2:
			exLen = 7
		}
	}

	// 3) Read extended length bytes (if any).
	for fr.rOffset < frameHeaderLen+exLen {
		rn, re := fr.readOnce(fr.rHeader[fr.rOffset : frameHeaderLen+exLen])
		fr.rOffset += int64(rn)
		if re != nil {
			if re == io.EOF {
				if fr.rOffset < frameHeaderLen+exLen {
					return 0, io.ErrUnexpectedEOF
				}
				break
			}
			return 0, re
		}
	}

	// 4) Parse payload length.
	if fr.rOffset == frameHeaderLen+exLen {
		if exLen == 2 {
			fr.rLength = int64(fr.rbo.Uint16(fr.rHeader[frameHeaderLen : frameHeaderLen+exLen]))
		} else if exLen == 7 {
			u64 := fr.rbo.Uint64(fr.rHeader[:])
			if fr.rbo == binary.LittleEndian {
				fr.rLength = int64(u64 >> 8)
			} else {
				fr.rLength = int64(u64 & framePayloadMaxLen56)
			}
		} else {
			fr.rLength = int64(fr.rHeader[0])
		}
	}

	if fr.rLength < 0 || fr.rLength > framePayloadMaxLen56 {
		return 0, ErrTooLong
	}
	if fr.readLimit > 0 && fr.rLength > fr.readLimit {
		return 0, ErrTooLong
	}
	if int64(len(p)) < fr.rLength {
		return 0, io.ErrShortBuffer
	}

	// 5) Read payload directly into p.
	hdrSize := frameHeaderLen + exLen
	for fr.rOffset < hdrSize+fr.rLength {
		payloadOff := fr.rOffset - hdrSize
		rn, re := fr.readOnce(p[payloadOff:fr.rLength])
		fr.rOffset += int64(rn)
		n += rn
		if re != nil {
			if re == io.EOF {
				if fr.rOffset < hdrSize+fr.rLength {
					return n, io.ErrUnexpectedEOF
				}
				break
			}
			// Preserve semantic control-flow errors.
			return n, re
		}
	}

	fr.resetRead()
	return n, nil
}

func (fr *framer) writeStream(p []byte) (n int, err error) {
	if int64(len(p)) > framePayloadMaxLen56 {
		return 0, ErrTooLong
	}

	// Initialize per-message state on the first call.
	if fr.wOffset == 0 {
		fr.wLength = int64(len(p))
	}
	if fr.wLength != int64(len(p)) {
		// The caller changed the message buffer mid-frame.
		return 0, io.ErrShortWrite
	}

	exLen := int64(0)
	if fr.wLength <= framePayloadMaxLen8Bits {
		exLen = 0
	} else if fr.wLength <= framePayloadMaxLen16 {
		exLen = 2
	} else {
		exLen = 7
	}

	// Fill header once.
	if fr.wOffset == 0 {
		if fr.wLength <= framePayloadMaxLen8Bits {
			fr.wHeader[0] = byte(fr.wLength)
		} else if fr.wLength <= framePayloadMaxLen16 {
			fr.wHeader[0] = framePayloadMaxLen8Bits + 1
			fr.wbo.PutUint16(fr.wHeader[frameHeaderLen:frameHeaderLen+exLen], uint16(fr.wLength))
		} else {
			if fr.wbo == binary.LittleEndian {
				fr.wbo.PutUint64(fr.wHeader[:], uint64(fr.wLength)<<8)
			} else {
				fr.wbo.PutUint64(fr.wHeader[:], uint64(fr.wLength&framePayloadMaxLen56))
			}
			fr.wHeader[0] = framePayloadMaxLen8Bits + 2
		}
	}

	hdrSize := frameHeaderLen + exLen
	for fr.wOffset < hdrSize {
		wn, we := fr.writeOnce(fr.wHeader[fr.wOffset:hdrSize])
		fr.wOffset += int64(wn)
		if we != nil {
			return 0, we
		}
	}

	for fr.wOffset < hdrSize+fr.wLength {
		payloadOff := fr.wOffset - hdrSize
		wn, we := fr.writeOnce(p[payloadOff:])
		fr.wOffset += int64(wn)
		n += wn
		if we != nil {
			return n, we
		}
	}

	fr.resetWrite()
	return n, nil
}
