// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Direction is the Stream's directional state machine (spec §4.1).
type Direction uint8

const (
	// Fresh is the state immediately after open or a successful absolute seek.
	Fresh Direction = iota
	// Reading means the most recent operation was a read; a write now fails
	// with ErrWriteForbidden until a commit.
	Reading
	// Writing means the most recent operation was a write; a read now fails
	// with ErrReadForbidden until a commit.
	Writing
	// Errored means the stream's sticky error flag is set; every operation
	// short-circuits to failure until Clearerr.
	Errored
)

func (d Direction) String() string {
	switch d {
	case Reading:
		return "reading"
	case Writing:
		return "writing"
	case Errored:
		return "errored"
	default:
		return "fresh"
	}
}
