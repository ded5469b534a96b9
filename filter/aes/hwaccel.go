// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aes

import "golang.org/x/sys/cpu"

// HardwareAccelerated reports whether the running CPU advertises the AES-NI
// instruction set (CPUID.01H:ECX.bit25). It only reports: block transforms
// in this package always run the portable Go path, whatever this returns
// and whether or not the '<' open-mode flag is given.
func HardwareAccelerated() bool {
	return cpu.X86.HasAES
}
