// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sha1

import "golang.org/x/sys/cpu"

// HardwareAccelerated reports whether the running CPU advertises the SHA
// extensions used to accelerate the compression function. The compression
// function in this package always runs the portable Go path; see the
// equivalent note in the aes package.
func HardwareAccelerated() bool {
	return cpu.X86.HasSHA
}
