// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// growBufferState backs both growable buffer variants (spec §4.2). The two
// differ only in growCapacity's policy: minimal grows exactly to the bytes
// required, amortized grows by max(delta, 1.5x current capacity, 16 bytes).
type growBufferState struct {
	buf        []byte
	size       int // valid-bytes
	pos        int
	appendMode bool
	amortized  bool
}

func (g *growBufferState) growCapacity(required int) {
	if required <= cap(g.buf) {
		return
	}
	newCap := required
	if g.amortized {
		// max(requested-delta, 1.5x current-capacity, 16-byte floor), all
		// expressed as candidate total capacities rather than deltas.
		newCap = max(required, max(cap(g.buf)+cap(g.buf)/2, cap(g.buf)+16))
	}
	nb := make([]byte, len(g.buf), newCap)
	copy(nb, g.buf)
	g.buf = nb
}

func (g *growBufferState) ensureLen(n int) {
	g.growCapacity(n)
	if n > len(g.buf) {
		g.buf = g.buf[:n]
	}
}

func (g *growBufferState) read(p []byte) (int, error) {
	if g.pos >= g.size {
		return 0, io.EOF
	}
	n := copy(p, g.buf[g.pos:g.size])
	g.pos += n
	return n, nil
}

func (g *growBufferState) write(p []byte) (int, error) {
	writePos := g.pos
	if g.appendMode {
		writePos = g.size
	}
	required := writePos + len(p)
	g.ensureLen(required)
	if writePos > g.size {
		for i := g.size; i < writePos; i++ {
			g.buf[i] = 0
		}
	}
	copy(g.buf[writePos:required], p)
	if required > g.size {
		g.size = required
	}
	g.pos = required
	return len(p), nil
}

func (g *growBufferState) seek(offset int64) (int64, error) {
	if offset < 0 {
		return 0, ErrInvalidArgument
	}
	g.pos = int(offset)
	return offset, nil
}

func (g *growBufferState) truncate(size int64) error {
	if size < 0 {
		return ErrInvalidArgument
	}
	n := int(size)
	if n > len(g.buf) {
		g.ensureLen(n)
	}
	if n > g.size {
		for i := g.size; i < n; i++ {
			g.buf[i] = 0
		}
	}
	g.size = n
	if g.pos > n {
		g.pos = n
	}
	return nil
}

func newGrowBuffer(kind Kind, mode Mode, amortized, appendMode bool) Stream {
	g := &growBufferState{amortized: amortized, appendMode: appendMode}
	ops := Ops{
		Read:  func(scratch *Scratch, p []byte) (int, error) { return g.read(p) },
		Write: func(scratch *Scratch, p []byte) (int, error) { return g.write(p) },
		Seek:  func(scratch *Scratch, offset int64) (int64, error) { return g.seek(offset) },
		Size:  func(scratch *Scratch) (int64, error) { return int64(g.size), nil },
		Truncate: func(scratch *Scratch, size int64) error {
			return g.truncate(size)
		},
	}
	s := newStream(kind, mode, ops)
	s.scratch.Any = g
	return s
}

// NewMinimalGrowableBuffer returns a Stream whose backing buffer grows
// exactly to the bytes required on each overflow (spec §4.2): appropriate
// when the final size is known or the buffer fills once.
func NewMinimalGrowableBuffer(mode Mode, appendMode bool) Stream {
	return newGrowBuffer(KindMinimalBuffer, mode, false, appendMode)
}

// NewAmortizedGrowableBuffer returns a Stream whose backing buffer grows by
// max(requested-delta, 1.5x current-capacity, 16-byte floor) on overflow,
// giving amortized O(1) cost per byte written (spec §4.2).
func NewAmortizedGrowableBuffer(mode Mode, appendMode bool) Stream {
	return newGrowBuffer(KindDynamicBuffer, mode, true, appendMode)
}

// Bytes returns a view of the growable buffer's valid content. The slice
// aliases the buffer's backing array; callers must not retain it across a
// subsequent write that may reallocate.
func Bytes(s Stream) []byte {
	cs, ok := s.(*coreStream)
	if !ok {
		return nil
	}
	g, ok := cs.scratch.Any.(*growBufferState)
	if !ok {
		return nil
	}
	return g.buf[:g.size]
}
