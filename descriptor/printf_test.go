// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func upperSerializer(out Writer, value any, d *Descriptor, identity *Identity) error {
	if identity != nil {
		*identity = Identity{Name: "upper", IsUTF8: true}
		if out == nil {
			return nil
		}
	}
	s, ok := value.(string)
	if !ok {
		return ErrValueType
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	_, err := out.Write(b)
	return err
}

func upperParser(src Reader, d *Descriptor) (any, error) {
	buf := make([]byte, 64)
	n, err := src.Read(buf)
	if err != nil && n == 0 {
		return nil, err
	}
	return string(buf[:n]), nil
}

func init() {
	RegisterType("printf_test.greeting", String)
	RegisterFormat(Format{Name: "printf_test.upper", Parser: upperParser, Serializer: upperSerializer})
}

func TestPrintfLiteralTypeDefaultFormat(t *testing.T) {
	s := &sink{}
	n, err := Printf(s, "hi %{printf_test.greeting}!", "world")
	require.NoError(t, err)
	require.Equal(t, "hi world!", string(s.buf))
	require.Equal(t, len("hi world!"), n)
}

func TestPrintfLiteralTypeLiteralFormat(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{printf_test.greeting[printf_test.upper]}", "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfLiteralTypeFormatFromArg(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{printf_test.greeting[*]}", "printf_test.upper", "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfLiteralTypeSerializerFromArg(t *testing.T) {
	s := &sink{}
	var ser Serializer = upperSerializer
	_, err := Printf(s, "%{printf_test.greeting[?]}", ser, "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfTypeFromArgDefaultFormat(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{*}", "printf_test.greeting", "world")
	require.NoError(t, err)
	require.Equal(t, "world", string(s.buf))
}

func TestPrintfTypeFromArgLiteralFormat(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{*[printf_test.upper]}", "printf_test.greeting", "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfTypeFromArgFormatFromArg(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{*[*]}", "printf_test.greeting", "printf_test.upper", "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfTypeFromArgSerializerFromArg(t *testing.T) {
	s := &sink{}
	var ser Serializer = upperSerializer
	_, err := Printf(s, "%{*[?]}", "printf_test.greeting", ser, "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfDescriptorFromArgDefaultFormat(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{?}", String, "world")
	require.NoError(t, err)
	require.Equal(t, "world", string(s.buf))
}

func TestPrintfDescriptorFromArgLiteralFormat(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{?[printf_test.upper]}", String, "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfDescriptorFromArgFormatFromArg(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{?[*]}", String, "printf_test.upper", "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfDescriptorFromArgSerializerFromArg(t *testing.T) {
	s := &sink{}
	var ser Serializer = upperSerializer
	_, err := Printf(s, "%{?[?]}", String, ser, "world")
	require.NoError(t, err)
	require.Equal(t, "WORLD", string(s.buf))
}

func TestPrintfLiteralTextPassesThrough(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "no directives here")
	require.NoError(t, err)
	require.Equal(t, "no directives here", string(s.buf))
}

func TestPrintfUnknownTypeErrors(t *testing.T) {
	s := &sink{}
	_, err := Printf(s, "%{printf_test.does-not-exist}", "x")
	require.ErrorIs(t, err, ErrFormat)
}

func TestScanfParsesNamedFormat(t *testing.T) {
	r := &stringReader{data: []byte("hello")}
	var dest any
	n, err := Scanf(r, "%{printf_test.greeting[printf_test.upper]}", &dest)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "hello", dest)
}

type stringReader struct {
	data []byte
	pos  int
}

func (r *stringReader) Read(p []byte) (int, error) {
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
