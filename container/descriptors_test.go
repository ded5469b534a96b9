// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/stream/descriptor"
)

func TestListDescriptorWalksScalarElements(t *testing.T) {
	l := ListOf([]int64{10, 20, 30})
	d := ListDescriptor[int64](descriptor.Int)

	require.Equal(t, descriptor.KindList, d.Kind)
	require.Same(t, descriptor.Int, d.Elem)
	require.Equal(t, 3, d.Collection.Len(l))
	require.Equal(t, int64(20), d.Collection.ValueChild(l, 1))
}

func TestMapDescriptorWalksInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int64]()
	m.Set("b", 2)
	m.Set("a", 1)
	d := MapDescriptor[string, int64](descriptor.String, descriptor.Int)

	require.Equal(t, descriptor.KindMap, d.Kind)
	require.Equal(t, 2, d.Collection.Len(m))
	require.Equal(t, "b", d.Collection.KeyChild(m, 0))
	require.Equal(t, int64(2), d.Collection.ValueChild(m, 0))
	require.Equal(t, "a", d.Collection.KeyChild(m, 1))
}
