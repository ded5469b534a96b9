// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// ungetcCapacity is the guaranteed push-back depth (spec §3: "at least four
// bytes of push-back are guaranteed").
const ungetcCapacity = 8

// ungetcBuffer is a small fixed-capacity LIFO of pushed-back bytes.
type ungetcBuffer struct {
	buf [ungetcCapacity]byte
	n   int
}

func (u *ungetcBuffer) push(c byte) bool {
	if u.n >= len(u.buf) {
		return false
	}
	u.buf[u.n] = c
	u.n++
	return true
}

// pop returns the most recently pushed byte, draining LIFO.
func (u *ungetcBuffer) pop() (byte, bool) {
	if u.n == 0 {
		return 0, false
	}
	u.n--
	return u.buf[u.n], true
}

func (u *ungetcBuffer) empty() bool { return u.n == 0 }

// reset discards all push-back content. Called on any absolute seek
// (spec §3: "its contents are discarded by any absolute seek").
func (u *ungetcBuffer) reset() { u.n = 0 }
