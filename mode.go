// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "strings"

// Mode is the parsed form of an Open mode string (spec §6's closed grammar).
type Mode uint16

const (
	ModeRead Mode = 1 << iota
	ModeWrite
	ModeUpdate
	ModeAppend
	ModeExclusive
	ModeBinary
	ModeText
	ModeNoHWAccel
	ModeGrabOwnership
	ModeNativeCodepage
)

// Readable reports whether m grants read access.
func (m Mode) Readable() bool { return m&(ModeRead|ModeUpdate) != 0 }

// Writable reports whether m grants write access.
func (m Mode) Writable() bool { return m&(ModeWrite|ModeUpdate|ModeAppend) != 0 }

// ParseMode parses an Open mode string per the grammar in spec §6:
// letters r w + a x t b < g, and the multi-character token @ncp.
// Unknown letters are silently ignored.
func ParseMode(s string) Mode {
	var m Mode
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r':
			m |= ModeRead
		case 'w':
			m |= ModeWrite
		case '+':
			m |= ModeUpdate
		case 'a':
			m |= ModeAppend
		case 'x':
			m |= ModeExclusive
		case 'b':
			m |= ModeBinary
		case 't':
			m |= ModeText
		case '<':
			m |= ModeNoHWAccel
		case 'g':
			m |= ModeGrabOwnership
		case '@':
			if strings.HasPrefix(s[i:], "@ncp") {
				m |= ModeNativeCodepage
				i += 3
			}
		}
	}
	if m&ModeUpdate != 0 {
		m |= ModeRead | ModeWrite
	}
	if m&ModeAppend != 0 {
		m |= ModeWrite
	}
	return m
}
