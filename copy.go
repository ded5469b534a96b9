// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// copyBufSize is the stack-sized scratch buffer used by Copy, reused across
// the loop's iterations to keep the steady-state copy allocation-free.
const copyBufSize = 32 * 1024

// Copy reads from src and writes to dst until src reports EOF or either side
// errors, returning the total bytes copied and the first error encountered
// (spec §4.1: "loops reading into a stack buffer and writing until the
// source reports eof or error; returns the first error encountered").
func Copy(dst, src Stream) (int64, error) {
	var buf [copyBufSize]byte
	var total int64
	for {
		rn, rerr := src.Read(buf[:])
		if rn > 0 {
			off := 0
			for off < rn {
				wn, werr := dst.Write(buf[off:rn])
				total += int64(wn)
				off += wn
				if werr != nil {
					return total, werr
				}
				if wn == 0 {
					return total, io.ErrShortWrite
				}
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
	}
}
