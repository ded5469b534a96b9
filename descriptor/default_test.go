// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sink struct{ buf []byte }

func (s *sink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func TestDefaultSerializeFillsIdentityWhenOutNil(t *testing.T) {
	var id Identity
	err := defaultSerialize(nil, 5, Int, &id)
	require.NoError(t, err)
	require.Equal(t, "default", id.Name)
	require.True(t, id.IsUTF8)
}

func TestDefaultSerializeScalars(t *testing.T) {
	cases := []struct {
		d    *Descriptor
		v    any
		want string
	}{
		{Bool, true, "true"},
		{Int, int64(7), "7"},
		{Float, 1.5, "1.5"},
		{String, "hi", "hi"},
		{Bytes, []byte{0xde, 0xad}, "dead"},
		{Null, nil, "null"},
	}
	for _, c := range cases {
		s := &sink{}
		require.NoError(t, defaultSerialize(s, c.v, c.d, nil))
		require.Equal(t, c.want, string(s.buf))
	}
}

func TestDefaultSerializeListRecurses(t *testing.T) {
	ops := CollectionOps{
		Len:        func(c any) int { return len(c.([]int)) },
		ValueChild: func(c any, i int) any { return c.([]int)[i] },
	}
	listDesc := BuildContainer(Int, ops)
	s := &sink{}
	require.NoError(t, defaultSerialize(s, []int{1, 2, 3}, listDesc, nil))
	require.Equal(t, "[1,2,3]", string(s.buf))
}

func TestDefaultSerializeMapRecurses(t *testing.T) {
	type entry struct {
		k string
		v int
	}
	entries := []entry{{"a", 1}, {"b", 2}}
	ops := CollectionOps{
		Len:        func(c any) int { return len(c.([]entry)) },
		KeyChild:   func(c any, i int) any { return c.([]entry)[i].k },
		ValueChild: func(c any, i int) any { return c.([]entry)[i].v },
	}
	mapDesc := BuildKeyValueContainer(String, Int, ops)
	s := &sink{}
	require.NoError(t, defaultSerialize(s, entries, mapDesc, nil))
	require.Equal(t, "{a:1,b:2}", string(s.buf))
}

func TestDefaultSerializeTypeMismatch(t *testing.T) {
	s := &sink{}
	err := defaultSerialize(s, "not a bool", Bool, nil)
	require.ErrorIs(t, err, ErrValueType)
}
