// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package json

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"code.hybscloud.com/stream/container"
	"code.hybscloud.com/stream/descriptor"
)

// parser reads a JSON document byte by byte from a descriptor.Reader, which
// offers no seek or buffered peek of its own, so the parser keeps a single
// pending byte for its one-byte lookahead.
type parser struct {
	src     descriptor.Reader
	pending byte
	hasByte bool
	eof     bool
}

func newParser(src descriptor.Reader) *parser {
	return &parser{src: src}
}

func (p *parser) readByte() (byte, error) {
	if p.hasByte {
		p.hasByte = false
		return p.pending, nil
	}
	if p.eof {
		return 0, fmt.Errorf("%w: unexpected end of input", descriptor.ErrFormat)
	}
	var buf [1]byte
	n, err := p.src.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err != nil {
		p.eof = true
	}
	return 0, fmt.Errorf("%w: unexpected end of input", descriptor.ErrFormat)
}

func (p *parser) peekByte() (byte, error) {
	if !p.hasByte {
		b, err := p.readByte()
		if err != nil {
			return 0, err
		}
		p.pending = b
		p.hasByte = true
	}
	return p.pending, nil
}

func (p *parser) unreadByte() { p.hasByte = true }

func (p *parser) skipWS() error {
	for {
		b, err := p.peekByte()
		if err != nil {
			return err
		}
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return nil
		}
		if _, err := p.readByte(); err != nil {
			return err
		}
	}
}

func (p *parser) parseValue() (container.Variant, error) {
	if err := p.skipWS(); err != nil {
		return container.Variant{}, err
	}
	b, err := p.peekByte()
	if err != nil {
		return container.Variant{}, err
	}
	switch {
	case b == '"':
		s, err := p.parseString()
		if err != nil {
			return container.Variant{}, err
		}
		return container.NewString(s), nil
	case b == '{':
		return p.parseObject()
	case b == '[':
		return p.parseArray()
	case b == 't':
		return container.NewBool(true), p.expectLiteral("true")
	case b == 'f':
		return container.NewBool(false), p.expectLiteral("false")
	case b == 'n':
		return container.NewNull(), p.expectLiteral("null")
	case b == '-' || (b >= '0' && b <= '9'):
		return p.parseNumber()
	default:
		return container.Variant{}, fmt.Errorf("%w: unexpected character %q", descriptor.ErrFormat, b)
	}
}

func (p *parser) expectLiteral(word string) error {
	for i := range len(word) {
		b, err := p.readByte()
		if err != nil {
			return err
		}
		if b != word[i] {
			return fmt.Errorf("%w: expected literal %q", descriptor.ErrFormat, word)
		}
	}
	return nil
}

func (p *parser) parseString() (string, error) {
	if b, err := p.readByte(); err != nil {
		return "", err
	} else if b != '"' {
		return "", fmt.Errorf("%w: expected '\"'", descriptor.ErrFormat)
	}
	var sb strings.Builder
	for {
		b, err := p.readByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, err := p.readByte()
			if err != nil {
				return "", err
			}
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '/':
				sb.WriteByte('/')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'u':
				r, err := p.readUEscape()
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) {
					b2, err := p.readByte()
					if err != nil || b2 != '\\' {
						sb.WriteRune(utf8.RuneError)
						if err == nil {
							p.unreadByte()
						}
						continue
					}
					b3, err := p.readByte()
					if err != nil || b3 != 'u' {
						sb.WriteRune(utf8.RuneError)
						continue
					}
					r2, err := p.readUEscape()
					if err != nil {
						return "", err
					}
					combined := utf16.DecodeRune(r, r2)
					if combined == utf8.RuneError {
						sb.WriteRune(utf8.RuneError)
						sb.WriteRune(utf8.RuneError)
					} else {
						sb.WriteRune(combined)
					}
				} else {
					sb.WriteRune(r)
				}
			default:
				return "", fmt.Errorf("%w: invalid escape \\%c", descriptor.ErrFormat, esc)
			}
		default:
			if b < 0x20 {
				return "", fmt.Errorf("%w: unescaped control character in string", descriptor.ErrFormat)
			}
			sb.WriteByte(b)
		}
	}
}

func (p *parser) readUEscape() (rune, error) {
	var v int32
	for range 4 {
		b, err := p.readByte()
		if err != nil {
			return 0, err
		}
		var digit int32
		switch {
		case b >= '0' && b <= '9':
			digit = int32(b - '0')
		case b >= 'a' && b <= 'f':
			digit = int32(b-'a') + 10
		case b >= 'A' && b <= 'F':
			digit = int32(b-'A') + 10
		default:
			return 0, fmt.Errorf("%w: invalid \\u escape", descriptor.ErrFormat)
		}
		v = v<<4 | digit
	}
	return rune(v), nil
}

func (p *parser) parseNumber() (container.Variant, error) {
	var sb strings.Builder
	isFloat := false
	for {
		b, err := p.peekByte()
		if err != nil {
			break
		}
		if b == '-' || b == '+' || (b >= '0' && b <= '9') {
			sb.WriteByte(b)
			if _, err := p.readByte(); err != nil {
				return container.Variant{}, err
			}
			continue
		}
		if b == '.' || b == 'e' || b == 'E' {
			isFloat = true
			sb.WriteByte(b)
			if _, err := p.readByte(); err != nil {
				return container.Variant{}, err
			}
			continue
		}
		break
	}
	text := sb.String()
	if text == "" {
		return container.Variant{}, fmt.Errorf("%w: malformed number", descriptor.ErrFormat)
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return container.Variant{}, fmt.Errorf("%w: %v", descriptor.ErrFormat, err)
		}
		return container.NewFloat(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return container.Variant{}, fmt.Errorf("%w: %v", descriptor.ErrFormat, err)
		}
		return container.NewFloat(f), nil
	}
	return container.NewInt(i), nil
}

func (p *parser) parseArray() (container.Variant, error) {
	if b, err := p.readByte(); err != nil {
		return container.Variant{}, err
	} else if b != '[' {
		return container.Variant{}, fmt.Errorf("%w: expected '['", descriptor.ErrFormat)
	}
	l := container.NewList[container.Variant](0)
	if err := p.skipWS(); err != nil {
		return container.Variant{}, err
	}
	if b, err := p.peekByte(); err == nil && b == ']' {
		p.readByte()
		return container.NewList(l), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return container.Variant{}, err
		}
		l.Append(v)
		if err := p.skipWS(); err != nil {
			return container.Variant{}, err
		}
		b, err := p.readByte()
		if err != nil {
			return container.Variant{}, err
		}
		if b == ']' {
			return container.NewList(l), nil
		}
		if b != ',' {
			return container.Variant{}, fmt.Errorf("%w: expected ',' or ']'", descriptor.ErrFormat)
		}
		if err := p.skipWS(); err != nil {
			return container.Variant{}, err
		}
	}
}

func (p *parser) parseObject() (container.Variant, error) {
	if b, err := p.readByte(); err != nil {
		return container.Variant{}, err
	} else if b != '{' {
		return container.Variant{}, fmt.Errorf("%w: expected '{'", descriptor.ErrFormat)
	}
	m := container.NewOrderedMap[string, container.Variant]()
	if err := p.skipWS(); err != nil {
		return container.Variant{}, err
	}
	if b, err := p.peekByte(); err == nil && b == '}' {
		p.readByte()
		return container.NewMap(m), nil
	}
	for {
		if err := p.skipWS(); err != nil {
			return container.Variant{}, err
		}
		key, err := p.parseString()
		if err != nil {
			return container.Variant{}, err
		}
		if err := p.skipWS(); err != nil {
			return container.Variant{}, err
		}
		b, err := p.readByte()
		if err != nil {
			return container.Variant{}, err
		}
		if b != ':' {
			return container.Variant{}, fmt.Errorf("%w: expected ':'", descriptor.ErrFormat)
		}
		if err := p.skipWS(); err != nil {
			return container.Variant{}, err
		}
		v, err := p.parseValue()
		if err != nil {
			return container.Variant{}, err
		}
		m.Set(key, v)
		if err := p.skipWS(); err != nil {
			return container.Variant{}, err
		}
		b, err = p.readByte()
		if err != nil {
			return container.Variant{}, err
		}
		if b == '}' {
			return container.NewMap(m), nil
		}
		if b != ',' {
			return container.Variant{}, fmt.Errorf("%w: expected ',' or '}'", descriptor.ErrFormat)
		}
	}
}
