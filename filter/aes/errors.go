// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aes

import "errors"

// ErrInvalidKeySize is returned when a key is not 16, 24, or 32 bytes
// (AES-128/192/256).
var ErrInvalidKeySize = errors.New("aes: invalid key size")

// ErrInvalidIVSize is returned when a mode other than ECB is constructed
// with an IV that is not exactly one block (16 bytes).
var ErrInvalidIVSize = errors.New("aes: invalid iv size")
