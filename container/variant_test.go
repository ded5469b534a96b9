// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import (
	"testing"

	"code.hybscloud.com/stream/descriptor"
	"github.com/stretchr/testify/require"
)

func TestDescribeScalars(t *testing.T) {
	require.Equal(t, descriptor.Int, Describe(NewInt(5)))
	require.Equal(t, descriptor.String, Describe(NewString("x")))
	require.Equal(t, descriptor.Null, Describe(NewNull()))
}

func TestDescribeListRecurses(t *testing.T) {
	l := NewList[Variant](0)
	l.Append(NewInt(1))
	l.Append(NewInt(2))
	v := NewList(l)
	d := Describe(v)
	require.Equal(t, descriptor.KindList, d.Kind)
	require.Equal(t, descriptor.KindInt, d.Elem.Kind)
	require.Equal(t, 2, d.Collection.Len(RawValue(v)))
}

func TestDescribeMapUsesStringKeys(t *testing.T) {
	m := NewOrderedMap[string, Variant]()
	m.Set("a", NewBool(true))
	v := NewMap(m)
	d := Describe(v)
	require.Equal(t, descriptor.KindMap, d.Kind)
	require.Equal(t, descriptor.String, d.Key)
	require.Equal(t, descriptor.KindBool, d.Value.Kind)
}

func TestRawValueRoundTripsThroughCollectionOps(t *testing.T) {
	m := NewOrderedMap[string, Variant]()
	m.Set("k", NewInt(7))
	v := NewMap(m)
	d := Describe(v)
	raw := RawValue(v)
	require.Equal(t, "k", d.Collection.KeyChild(raw, 0))
	require.Equal(t, int64(7), d.Collection.ValueChild(raw, 0))
}
