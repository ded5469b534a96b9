// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package json

import (
	"bytes"
	"strings"
	"testing"

	"code.hybscloud.com/stream/container"
	"code.hybscloud.com/stream/descriptor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// variantEqual lets cmp.Diff walk two container.Variant trees through their
// accessor methods instead of reflecting into Variant's unexported fields.
func variantEqual(a, b container.Variant) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case container.VariantNull:
		return true
	case container.VariantBool:
		av, _ := a.Bool()
		bv, _ := b.Bool()
		return av == bv
	case container.VariantInt:
		av, _ := a.Int()
		bv, _ := b.Int()
		return av == bv
	case container.VariantFloat:
		av, _ := a.Float()
		bv, _ := b.Float()
		return av == bv
	case container.VariantString:
		av, _ := a.String()
		bv, _ := b.String()
		return av == bv
	case container.VariantBytes:
		av, _ := a.Bytes()
		bv, _ := b.Bytes()
		return bytes.Equal(av, bv)
	case container.VariantList:
		al, _ := a.List()
		bl, _ := b.List()
		if al.Len() != bl.Len() {
			return false
		}
		for i := 0; i < al.Len(); i++ {
			if !variantEqual(al.At(i), bl.At(i)) {
				return false
			}
		}
		return true
	case container.VariantMap:
		am, _ := a.Map()
		bm, _ := b.Map()
		if am.Len() != bm.Len() {
			return false
		}
		for i := 0; i < am.Len(); i++ {
			if am.KeyAt(i) != bm.KeyAt(i) {
				return false
			}
			if !variantEqual(am.ValueAt(i), bm.ValueAt(i)) {
				return false
			}
		}
		return true
	}
	return false
}

type byteSink struct{ buf []byte }

func (s *byteSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func encodeVariant(t *testing.T, v container.Variant, formatName string) string {
	t.Helper()
	f, ok := descriptor.LookupFormat(formatName)
	require.True(t, ok)
	sink := &byteSink{}
	require.NoError(t, f.Serializer(sink, v, container.Describe(v), nil))
	return string(sink.buf)
}

func decodeVariant(t *testing.T, text string) container.Variant {
	t.Helper()
	f, ok := descriptor.LookupFormat("json")
	require.True(t, ok)
	r := strings.NewReader(text)
	v, err := f.Parser(r, nil)
	require.NoError(t, err)
	return v.(container.Variant)
}

func TestEncodeScalars(t *testing.T) {
	require.Equal(t, "null", encodeVariant(t, container.NewNull(), "json"))
	require.Equal(t, "true", encodeVariant(t, container.NewBool(true), "json"))
	require.Equal(t, "42", encodeVariant(t, container.NewInt(42), "json"))
	require.Equal(t, `"hello"`, encodeVariant(t, container.NewString("hello"), "json"))
}

func TestEncodeStringEscapesControlAndQuote(t *testing.T) {
	got := encodeVariant(t, container.NewString("a\"b\\c\nd"), "json")
	require.Equal(t, `"a\"b\\c\nd"`, got)
}

func TestEncodeObjectPreservesInsertionOrder(t *testing.T) {
	m := container.NewOrderedMap[string, container.Variant]()
	m.Set("z", container.NewInt(1))
	m.Set("a", container.NewInt(2))
	got := encodeVariant(t, container.NewMap(m), "json")
	require.Equal(t, `{"z":1,"a":2}`, got)
}

func TestEncodeArray(t *testing.T) {
	l := container.NewList[container.Variant](0)
	l.Append(container.NewInt(1))
	l.Append(container.NewInt(2))
	l.Append(container.NewInt(3))
	got := encodeVariant(t, container.NewList(l), "json")
	require.Equal(t, "[1,2,3]", got)
}

func TestEncodeAsciiEscapesNonASCII(t *testing.T) {
	got := encodeVariant(t, container.NewString("café"), "json_ascii")
	require.Equal(t, "\"caf\\u00e9\"", got)
}

func TestDecodeRoundTripObject(t *testing.T) {
	v := decodeVariant(t, `{"name":"alice","age":30,"tags":["a","b"],"active":true,"meta":null}`)
	m, ok := v.Map()
	require.True(t, ok)
	require.Equal(t, []string{"name", "age", "tags", "active", "meta"}, m.Keys())

	sv, ok := m.ValueAt(0).String()
	require.True(t, ok)
	require.Equal(t, "alice", sv)

	age, ok := m.ValueAt(1).Int()
	require.True(t, ok)
	require.Equal(t, int64(30), age)

	active, ok := m.ValueAt(3).Bool()
	require.True(t, ok)
	require.True(t, active)

	require.Equal(t, container.VariantNull, m.ValueAt(4).Kind)
}

func TestDecodeUnicodeEscape(t *testing.T) {
	v := decodeVariant(t, "\"caf\x5cu00e9\"")
	s, ok := v.String()
	require.True(t, ok)
	require.Equal(t, "café", s)
}

func TestDecodeSurrogatePair(t *testing.T) {
	v := decodeVariant(t, "\"\x5cud83d\x5cude00\"")
	s, ok := v.String()
	require.True(t, ok)
	require.Equal(t, "😀", s)
}

func TestDecodeNumberVariants(t *testing.T) {
	i := decodeVariant(t, "123")
	iv, ok := i.Int()
	require.True(t, ok)
	require.Equal(t, int64(123), iv)

	f := decodeVariant(t, "1.5e2")
	fv, ok := f.Float()
	require.True(t, ok)
	require.Equal(t, 150.0, fv)
}

func TestDecodeNestedStructureMatchesHandBuiltTree(t *testing.T) {
	got := decodeVariant(t, `{"a":1,"b":[1,2,3],"c":{"d":true}}`)

	list := container.NewList[container.Variant](0)
	list.Append(container.NewInt(1))
	list.Append(container.NewInt(2))
	list.Append(container.NewInt(3))

	inner := container.NewOrderedMap[string, container.Variant]()
	inner.Set("d", container.NewBool(true))

	outer := container.NewOrderedMap[string, container.Variant]()
	outer.Set("a", container.NewInt(1))
	outer.Set("b", container.NewList(list))
	outer.Set("c", container.NewMap(inner))
	want := container.NewMap(outer)

	if diff := cmp.Diff(want, got, cmp.Comparer(variantEqual)); diff != "" {
		t.Errorf("decoded tree differs from hand-built tree (-want +got):\n%s", diff)
	}
}

func TestEncodeMapWithNestedArrayAndNull(t *testing.T) {
	inner := container.NewList[container.Variant](0)
	inner.Append(container.NewBool(true))
	inner.Append(container.NewNull())
	inner.Append(container.NewString("x"))

	m := container.NewOrderedMap[string, container.Variant]()
	m.Set("a", container.NewInt(1))
	m.Set("b", container.NewList(inner))

	got := encodeVariant(t, container.NewMap(m), "json")
	require.Equal(t, `{"a":1,"b":[true,null,"x"]}`, got)
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	original := `{"a":1,"b":[1,2,3],"c":{"d":true}}`
	v := decodeVariant(t, original)
	got := encodeVariant(t, v, "json")
	require.Equal(t, original, got)
}
