// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aes is a from-scratch AES-128/192/256 block cipher with ECB, CBC,
// PCBC, CFB, and OFB modes (spec §4.4.2). crypto/aes is not used: PCBC has
// no crypto/cipher equivalent, and the CFB/OFB "decrypt calls the forward
// cipher" quirk is the deliverable, not incidental plumbing a library could
// paper over. Decryption runs the plain inverse cipher over the same
// expanded key schedule as encryption; no transformed decryption schedule
// is built.
package aes

var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var invSbox [256]byte

var rcon = [11]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

func init() {
	for i, v := range sbox {
		invSbox[v] = byte(i)
	}
}

func xtime(a byte) byte {
	if a&0x80 != 0 {
		return (a << 1) ^ 0x1b
	}
	return a << 1
}

func gmul(a, b byte) byte {
	var p byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		hi := a&0x80 != 0
		a <<= 1
		if hi {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// schedule holds the expanded round keys for one key, plus the chosen
// round count (10/12/14 for 128/192/256-bit keys).
type schedule struct {
	roundKeys []byte
	nr        int
}

func expandKey(key []byte) (*schedule, error) {
	nk := len(key) / 4
	var nr int
	switch len(key) {
	case 16:
		nr = 10
	case 24:
		nr = 12
	case 32:
		nr = 14
	default:
		return nil, ErrInvalidKeySize
	}
	nb := 4
	totalWords := nb * (nr + 1)
	w := make([][4]byte, totalWords)
	for i := range nk {
		copy(w[i][:], key[4*i:4*i+4])
	}
	for i := nk; i < totalWords; i++ {
		temp := w[i-1]
		switch {
		case i%nk == 0:
			temp = [4]byte{temp[1], temp[2], temp[3], temp[0]}
			for j := range temp {
				temp[j] = sbox[temp[j]]
			}
			temp[0] ^= rcon[i/nk]
		case nk > 6 && i%nk == 4:
			for j := range temp {
				temp[j] = sbox[temp[j]]
			}
		}
		for j := range 4 {
			w[i][j] = w[i-nk][j] ^ temp[j]
		}
	}
	rk := make([]byte, totalWords*4)
	for i, word := range w {
		copy(rk[i*4:], word[:])
	}
	return &schedule{roundKeys: rk, nr: nr}, nil
}

func addRoundKey(state, rk []byte) {
	for i := range 16 {
		state[i] ^= rk[i]
	}
}

func subBytes(state []byte) {
	for i, b := range state {
		state[i] = sbox[b]
	}
}

func invSubBytes(state []byte) {
	for i, b := range state {
		state[i] = invSbox[b]
	}
}

// shiftRows and invShiftRows operate on the flat 16-byte state laid out
// column-major (index = col*4+row), matching the order input bytes arrive
// in. Row 2's left rotation by two is its own inverse.
func shiftRows(s []byte) {
	s[1], s[5], s[9], s[13] = s[5], s[9], s[13], s[1]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[15], s[3], s[7], s[11]
}

func invShiftRows(s []byte) {
	s[1], s[5], s[9], s[13] = s[13], s[1], s[5], s[9]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[7], s[11], s[15], s[3]
}

func mixColumns(s []byte) {
	for c := range 4 {
		a0, a1, a2, a3 := s[c*4], s[c*4+1], s[c*4+2], s[c*4+3]
		s[c*4] = xtime(a0) ^ (xtime(a1) ^ a1) ^ a2 ^ a3
		s[c*4+1] = a0 ^ xtime(a1) ^ (xtime(a2) ^ a2) ^ a3
		s[c*4+2] = a0 ^ a1 ^ xtime(a2) ^ (xtime(a3) ^ a3)
		s[c*4+3] = (xtime(a0) ^ a0) ^ a1 ^ a2 ^ xtime(a3)
	}
}

func invMixColumns(s []byte) {
	for c := range 4 {
		a0, a1, a2, a3 := s[c*4], s[c*4+1], s[c*4+2], s[c*4+3]
		s[c*4] = gmul(a0, 14) ^ gmul(a1, 11) ^ gmul(a2, 13) ^ gmul(a3, 9)
		s[c*4+1] = gmul(a0, 9) ^ gmul(a1, 14) ^ gmul(a2, 11) ^ gmul(a3, 13)
		s[c*4+2] = gmul(a0, 13) ^ gmul(a1, 9) ^ gmul(a2, 14) ^ gmul(a3, 11)
		s[c*4+3] = gmul(a0, 11) ^ gmul(a1, 13) ^ gmul(a2, 9) ^ gmul(a3, 14)
	}
}

func (s *schedule) encryptBlock(in []byte) []byte {
	state := make([]byte, 16)
	copy(state, in)
	addRoundKey(state, s.roundKeys[0:16])
	for round := 1; round < s.nr; round++ {
		subBytes(state)
		shiftRows(state)
		mixColumns(state)
		addRoundKey(state, s.roundKeys[round*16:(round+1)*16])
	}
	subBytes(state)
	shiftRows(state)
	addRoundKey(state, s.roundKeys[s.nr*16:(s.nr+1)*16])
	return state
}

func (s *schedule) decryptBlock(in []byte) []byte {
	state := make([]byte, 16)
	copy(state, in)
	addRoundKey(state, s.roundKeys[s.nr*16:(s.nr+1)*16])
	for round := s.nr - 1; round >= 1; round-- {
		invShiftRows(state)
		invSubBytes(state)
		addRoundKey(state, s.roundKeys[round*16:(round+1)*16])
		invMixColumns(state)
	}
	invShiftRows(state)
	invSubBytes(state)
	addRoundKey(state, s.roundKeys[0:16])
	return state
}
