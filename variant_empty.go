// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// NewEmpty returns a Stream with no backing device at all: every operation
// that would need one fails with ErrNotSupported, matching spec §3's
// "Empty" variant tag. It is mainly useful as a placeholder or as the "no
// inner stream" default before a filter chain is wired up.
func NewEmpty() Stream {
	return newStream(KindEmpty, 0, Ops{})
}
