// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

import (
	"fmt"
	"strconv"
)

// defaultSerialize implements the "default (UTF-8) serializer" the
// %{type} and %{type[]} forms fall back to when no named format is given:
// a plain, human-readable UTF-8 rendering, recursing through a container's
// CollectionOps the same way a named format's serializer would.
func defaultSerialize(out Writer, value any, d *Descriptor, identity *Identity) error {
	if identity != nil {
		*identity = Identity{Name: "default", IsUTF8: true}
	}
	if out == nil {
		return nil
	}
	s, err := defaultRender(value, d)
	if err != nil {
		return err
	}
	_, err = out.Write([]byte(s))
	return err
}

func defaultRender(value any, d *Descriptor) (string, error) {
	switch d.Kind {
	case KindNull:
		return "null", nil
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return "", fmt.Errorf("%w: expected bool, got %T", ErrValueType, value)
		}
		return strconv.FormatBool(b), nil
	case KindInt:
		i, ok := toInt64(value)
		if !ok {
			return "", fmt.Errorf("%w: expected int, got %T", ErrValueType, value)
		}
		return strconv.FormatInt(i, 10), nil
	case KindFloat:
		f, ok := toFloat64(value)
		if !ok {
			return "", fmt.Errorf("%w: expected float, got %T", ErrValueType, value)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case KindString:
		s, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("%w: expected string, got %T", ErrValueType, value)
		}
		return s, nil
	case KindBytes:
		b, ok := value.([]byte)
		if !ok {
			return "", fmt.Errorf("%w: expected []byte, got %T", ErrValueType, value)
		}
		return fmt.Sprintf("%x", b), nil
	case KindList:
		if d.Collection.Len == nil || d.Collection.ValueChild == nil {
			return "", fmt.Errorf("%w: list descriptor missing collection ops", ErrValueType)
		}
		n := d.Collection.Len(value)
		out := "["
		for i := range n {
			if i > 0 {
				out += ","
			}
			child, err := defaultRender(d.Collection.ValueChild(value, i), d.Elem)
			if err != nil {
				return "", err
			}
			out += child
		}
		return out + "]", nil
	case KindMap:
		if d.Collection.Len == nil || d.Collection.ValueChild == nil || d.Collection.KeyChild == nil {
			return "", fmt.Errorf("%w: map descriptor missing collection ops", ErrValueType)
		}
		n := d.Collection.Len(value)
		out := "{"
		for i := range n {
			if i > 0 {
				out += ","
			}
			k, err := defaultRender(d.Collection.KeyChild(value, i), d.Key)
			if err != nil {
				return "", err
			}
			v, err := defaultRender(d.Collection.ValueChild(value, i), d.Value)
			if err != nil {
				return "", err
			}
			out += k + ":" + v
		}
		return out + "}", nil
	default:
		return "", fmt.Errorf("%w: unknown kind %v", ErrValueType, d.Kind)
	}
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
