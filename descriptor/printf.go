// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

import (
	"fmt"
	"strings"
)

// Printf writes format to out, expanding each %{...} directive (spec
// §4.5's generic printf-style serialization syntax) by resolving a
// Descriptor and Serializer from the directive and the next argument(s),
// then invoking the serializer on the value argument that follows. Text
// outside %{...} is copied through verbatim; a literal '%' not starting a
// "%{" directive is copied through unchanged rather than treated as a
// classic fmt verb, keeping the directive grammar unambiguous.
func Printf(out Writer, format string, args ...any) (int, error) {
	total := 0
	argi := 0
	nextArg := func() (any, error) {
		if argi >= len(args) {
			return nil, fmt.Errorf("%w: not enough arguments", ErrFormat)
		}
		v := args[argi]
		argi++
		return v, nil
	}

	i := 0
	for i < len(format) {
		if !(format[i] == '%' && i+1 < len(format) && format[i+1] == '{') {
			start := i
			for i < len(format) && !(format[i] == '%' && i+1 < len(format) && format[i+1] == '{') {
				i++
			}
			n, err := out.Write([]byte(format[start:i]))
			total += n
			if err != nil {
				return total, err
			}
			continue
		}

		closeIdx := strings.IndexByte(format[i+2:], '}')
		if closeIdx < 0 {
			return total, fmt.Errorf("%w: unterminated directive", ErrFormat)
		}
		spec := format[i+2 : i+2+closeIdx]
		i = i + 2 + closeIdx + 1

		d, formatName, customSer, err := resolveDirective(spec, nextArg)
		if err != nil {
			return total, err
		}
		value, err := nextArg()
		if err != nil {
			return total, err
		}

		var n int
		switch {
		case customSer != nil:
			n, err = writeViaSerializer(out, customSer, value, d)
		case formatName == "":
			n, err = writeViaSerializer(out, defaultSerialize, value, d)
		default:
			f, ok := LookupFormat(formatName)
			if !ok {
				return total, fmt.Errorf("%w: unknown format %q", ErrFormat, formatName)
			}
			n, err = writeViaSerializer(out, f.Serializer, value, d)
		}
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func writeViaSerializer(out Writer, ser Serializer, value any, d *Descriptor) (int, error) {
	counting := &countingWriter{inner: out}
	err := ser(counting, value, d, nil)
	return counting.n, err
}

type countingWriter struct {
	inner Writer
	n     int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	c.n += n
	return n, err
}

// resolveDirective parses the content of one %{...} directive and resolves
// its Descriptor and format, consuming arguments via nextArg for every
// "from argument" token (`*` for type name, `?` for caller descriptor/
// function) left to right: type-source argument first, then format-source
// argument. The value argument itself is consumed by the caller afterward.
func resolveDirective(spec string, nextArg func() (any, error)) (*Descriptor, string, Serializer, error) {
	typePart := spec
	bracketPart := ""
	hasBracket := false
	if idx := strings.IndexByte(spec, '['); idx >= 0 {
		if !strings.HasSuffix(spec, "]") {
			return nil, "", nil, fmt.Errorf("%w: malformed directive %q", ErrFormat, spec)
		}
		typePart = spec[:idx]
		bracketPart = spec[idx+1 : len(spec)-1]
		hasBracket = true
	}

	var d *Descriptor
	switch typePart {
	case "*":
		a, err := nextArg()
		if err != nil {
			return nil, "", nil, err
		}
		name, ok := a.(string)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: expected type name string, got %T", ErrFormat, a)
		}
		d, ok = LookupType(name)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: unknown type %q", ErrFormat, name)
		}
	case "?":
		a, err := nextArg()
		if err != nil {
			return nil, "", nil, err
		}
		dd, ok := a.(*Descriptor)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: expected *descriptor.Descriptor, got %T", ErrFormat, a)
		}
		d = dd
	default:
		dd, ok := LookupType(typePart)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: unknown type %q", ErrFormat, typePart)
		}
		d = dd
	}

	if !hasBracket {
		return d, "", nil, nil
	}
	switch bracketPart {
	case "*":
		a, err := nextArg()
		if err != nil {
			return nil, "", nil, err
		}
		name, ok := a.(string)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: expected format name string, got %T", ErrFormat, a)
		}
		return d, name, nil, nil
	case "?":
		a, err := nextArg()
		if err != nil {
			return nil, "", nil, err
		}
		ser, ok := a.(Serializer)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: expected descriptor.Serializer, got %T", ErrFormat, a)
		}
		return d, "", ser, nil
	default:
		return d, bracketPart, nil, nil
	}
}

// Scanf reads format from src, resolving each %{...} directive exactly as
// Printf does, and stores the parsed value into the *any destination that
// follows the directive's other arguments (in place of Printf's
// caller-supplied value).
func Scanf(src Reader, format string, args ...any) (int, error) {
	count := 0
	argi := 0
	nextArg := func() (any, error) {
		if argi >= len(args) {
			return nil, fmt.Errorf("%w: not enough arguments", ErrFormat)
		}
		v := args[argi]
		argi++
		return v, nil
	}

	i := 0
	for i < len(format) {
		if !(format[i] == '%' && i+1 < len(format) && format[i+1] == '{') {
			i++
			continue
		}
		closeIdx := strings.IndexByte(format[i+2:], '}')
		if closeIdx < 0 {
			return count, fmt.Errorf("%w: unterminated directive", ErrFormat)
		}
		spec := format[i+2 : i+2+closeIdx]
		i = i + 2 + closeIdx + 1

		d, formatName, _, err := resolveDirective(spec, nextArg)
		if err != nil {
			return count, err
		}
		dest, err := nextArg()
		if err != nil {
			return count, err
		}
		destPtr, ok := dest.(*any)
		if !ok {
			return count, fmt.Errorf("%w: expected *any destination, got %T", ErrFormat, dest)
		}
		if formatName == "" {
			return count, fmt.Errorf("%w: Scanf requires a named format (no default parser)", ErrFormat)
		}
		f, ok := LookupFormat(formatName)
		if !ok || f.Parser == nil {
			return count, fmt.Errorf("%w: unknown or unparseable format %q", ErrFormat, formatName)
		}
		v, err := f.Parser(src, d)
		if err != nil {
			return count, err
		}
		*destPtr = v
		count++
	}
	return count, nil
}
