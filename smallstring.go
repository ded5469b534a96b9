// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// smallStringInline is the inline capacity before SmallString migrates to a
// heap allocation, chosen from spec §4.2's 16-to-64-byte range: large enough
// to hold a raw 20-byte SHA-1 digest or a handful of descriptor field names
// without allocating (a 40-character hex digest does not fit inline).
const smallStringInline = 32

// SmallString is an append-only string builder holding its first
// smallStringInline bytes inline; it migrates to a single heap allocation on
// overflow and never returns to the inline form.
type SmallString struct {
	inline [smallStringInline]byte
	n      int
	heap   []byte
}

func (s *SmallString) onHeap() bool { return s.heap != nil }

func (s *SmallString) cur() []byte {
	if s.onHeap() {
		return s.heap[:s.n]
	}
	return s.inline[:s.n]
}

func (s *SmallString) migrate(extra int) {
	nb := make([]byte, s.n, s.n+extra)
	copy(nb, s.inline[:s.n])
	s.heap = nb
}

// AppendN appends raw bytes.
func (s *SmallString) AppendN(p []byte) {
	if len(p) == 0 {
		return
	}
	if !s.onHeap() && s.n+len(p) > smallStringInline {
		s.migrate(len(p))
	}
	if s.onHeap() {
		s.heap = append(s.heap, p...)
	} else {
		copy(s.inline[s.n:], p)
	}
	s.n += len(p)
}

// AppendString appends s to the builder.
func (s *SmallString) AppendString(str string) {
	s.AppendN([]byte(str))
}

// AppendChar appends a single byte.
func (s *SmallString) AppendChar(c byte) {
	if !s.onHeap() && s.n+1 > smallStringInline {
		s.migrate(1)
	}
	if s.onHeap() {
		s.heap = append(s.heap, c)
	} else {
		s.inline[s.n] = c
	}
	s.n++
}

// Len reports the number of bytes accumulated so far.
func (s *SmallString) Len() int { return s.n }

// Bytes returns a view of the accumulated content. The slice is invalidated
// by the next mutating call.
func (s *SmallString) Bytes() []byte { return s.cur() }

// String returns a copy of the accumulated content without resetting the
// builder.
func (s *SmallString) String() string { return string(s.cur()) }

// Take returns a copy of the accumulated content and resets the builder to
// empty. As with Clear, a heap allocation stays with the builder for reuse;
// it is not handed over to the returned string.
func (s *SmallString) Take() string {
	out := string(s.cur())
	s.Clear()
	return out
}

// Clear resets the builder to empty without releasing the heap allocation,
// so a subsequent append sequence of similar size reuses it.
func (s *SmallString) Clear() {
	if s.onHeap() {
		s.heap = s.heap[:0]
	}
	s.n = 0
}

// Destroy resets the builder and zeroes both the inline array and any heap
// allocation, for builders that may have held key material or other
// sensitive data.
func (s *SmallString) Destroy() {
	for i := range s.inline {
		s.inline[i] = 0
	}
	for i := range s.heap {
		s.heap[i] = 0
	}
	s.heap = nil
	s.n = 0
}
