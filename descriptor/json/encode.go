// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package json

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"code.hybscloud.com/stream/container"
	"code.hybscloud.com/stream/descriptor"
)

func writeVariant(out descriptor.Writer, v container.Variant, asciiOnly bool) error {
	switch v.Kind {
	case container.VariantNull:
		return writeRaw(out, "null")
	case container.VariantBool:
		b, _ := v.Bool()
		return writeRaw(out, strconv.FormatBool(b))
	case container.VariantInt:
		i, _ := v.Int()
		return writeRaw(out, strconv.FormatInt(i, 10))
	case container.VariantFloat:
		f, _ := v.Float()
		return writeNumber(out, f)
	case container.VariantString:
		s, _ := v.String()
		return writeString(out, s, asciiOnly)
	case container.VariantBytes:
		b, _ := v.Bytes()
		return writeString(out, string(b), asciiOnly)
	case container.VariantList:
		l, _ := v.List()
		return writeArray(out, l.Len(), func(i int) error { return writeVariant(out, l.At(i), asciiOnly) })
	case container.VariantMap:
		m, _ := v.Map()
		return writeObject(out, m.Len(),
			func(i int) string { return m.KeyAt(i) },
			func(i int) error { return writeVariant(out, m.ValueAt(i), asciiOnly) },
			asciiOnly,
		)
	default:
		return fmt.Errorf("%w: unsupported variant kind %d", descriptor.ErrValueType, v.Kind)
	}
}

// writeValue serializes a plain Go value against a static descriptor.Descriptor
// (no container.Variant wrapper), recursing via d.Collection the same way
// Variant recursion uses *List/*OrderedMap.
func writeValue(out descriptor.Writer, value any, d *descriptor.Descriptor, asciiOnly bool) error {
	switch d.Kind {
	case descriptor.KindNull:
		return writeRaw(out, "null")
	case descriptor.KindBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", descriptor.ErrValueType, value)
		}
		return writeRaw(out, strconv.FormatBool(b))
	case descriptor.KindInt:
		i, ok := toInt64(value)
		if !ok {
			return fmt.Errorf("%w: expected int, got %T", descriptor.ErrValueType, value)
		}
		return writeRaw(out, strconv.FormatInt(i, 10))
	case descriptor.KindFloat:
		f, ok := toFloat64(value)
		if !ok {
			return fmt.Errorf("%w: expected float, got %T", descriptor.ErrValueType, value)
		}
		return writeNumber(out, f)
	case descriptor.KindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", descriptor.ErrValueType, value)
		}
		return writeString(out, s, asciiOnly)
	case descriptor.KindBytes:
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("%w: expected []byte, got %T", descriptor.ErrValueType, value)
		}
		return writeString(out, string(b), asciiOnly)
	case descriptor.KindList:
		n := d.Collection.Len(value)
		return writeArray(out, n, func(i int) error {
			return writeValue(out, d.Collection.ValueChild(value, i), d.Elem, asciiOnly)
		})
	case descriptor.KindMap:
		n := d.Collection.Len(value)
		return writeObject(out, n,
			func(i int) string {
				k := d.Collection.KeyChild(value, i)
				if s, ok := k.(string); ok {
					return s
				}
				return fmt.Sprint(k)
			},
			func(i int) error {
				return writeValue(out, d.Collection.ValueChild(value, i), d.Value, asciiOnly)
			},
			asciiOnly,
		)
	default:
		return fmt.Errorf("%w: unknown kind %v", descriptor.ErrValueType, d.Kind)
	}
}

func writeRaw(out descriptor.Writer, s string) error {
	_, err := out.Write([]byte(s))
	return err
}

func writeNumber(out descriptor.Writer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: JSON cannot represent NaN or Infinity", descriptor.ErrValueType)
	}
	return writeRaw(out, strconv.FormatFloat(f, 'g', -1, 64))
}

func writeArray(out descriptor.Writer, n int, elem func(i int) error) error {
	if err := writeRaw(out, "["); err != nil {
		return err
	}
	for i := range n {
		if i > 0 {
			if err := writeRaw(out, ","); err != nil {
				return err
			}
		}
		if err := elem(i); err != nil {
			return err
		}
	}
	return writeRaw(out, "]")
}

func writeObject(out descriptor.Writer, n int, key func(i int) string, value func(i int) error, asciiOnly bool) error {
	if err := writeRaw(out, "{"); err != nil {
		return err
	}
	for i := range n {
		if i > 0 {
			if err := writeRaw(out, ","); err != nil {
				return err
			}
		}
		if err := writeString(out, key(i), asciiOnly); err != nil {
			return err
		}
		if err := writeRaw(out, ":"); err != nil {
			return err
		}
		if err := value(i); err != nil {
			return err
		}
	}
	return writeRaw(out, "}")
}

const hexDigits = "0123456789abcdef"

// writeString emits s as a quoted JSON string, escaping control characters,
// '"', '\\' per RFC 8259 §7, and, when asciiOnly is set, every code point
// above U+007F as a \uXXXX escape (with a surrogate pair above U+FFFF).
func writeString(out descriptor.Writer, s string, asciiOnly bool) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for _, r := range s {
		switch {
		case r == '"':
			buf = append(buf, '\\', '"')
		case r == '\\':
			buf = append(buf, '\\', '\\')
		case r == '\n':
			buf = append(buf, '\\', 'n')
		case r == '\r':
			buf = append(buf, '\\', 'r')
		case r == '\t':
			buf = append(buf, '\\', 't')
		case r == '\b':
			buf = append(buf, '\\', 'b')
		case r == '\f':
			buf = append(buf, '\\', 'f')
		case r < 0x20:
			buf = appendUEscape(buf, uint16(r))
		case r == utf8.RuneError:
			buf = appendUEscape(buf, 0xFFFD)
		case r < 0x80:
			buf = append(buf, byte(r))
		case r < 0x10000:
			if asciiOnly {
				buf = appendUEscape(buf, uint16(r))
			} else {
				buf = utf8.AppendRune(buf, r)
			}
		default:
			if asciiOnly {
				hi, lo := utf16SurrogatePair(r)
				buf = appendUEscape(buf, hi)
				buf = appendUEscape(buf, lo)
			} else {
				buf = utf8.AppendRune(buf, r)
			}
		}
	}
	buf = append(buf, '"')
	return writeRaw(out, string(buf))
}

func appendUEscape(buf []byte, v uint16) []byte {
	buf = append(buf, '\\', 'u')
	buf = append(buf, hexDigits[(v>>12)&0xf], hexDigits[(v>>8)&0xf], hexDigits[(v>>4)&0xf], hexDigits[v&0xf])
	return buf
}

func utf16SurrogatePair(r rune) (hi, lo uint16) {
	r -= 0x10000
	hi = uint16(0xD800 + (r >> 10))
	lo = uint16(0xDC00 + (r & 0x3FF))
	return
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
