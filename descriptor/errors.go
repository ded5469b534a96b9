// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

import "errors"

var (
	// ErrFormat means a %{...} directive was malformed or referenced a
	// type/format that does not resolve.
	ErrFormat = errors.New("descriptor: malformed directive")
	// ErrValueType means a value passed to a serializer did not match the
	// shape its Descriptor claims.
	ErrValueType = errors.New("descriptor: value does not match descriptor")
)
