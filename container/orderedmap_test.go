// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("m", 3)
	require.Equal(t, []string{"z", "a", "m"}, m.Keys())
}

func TestOrderedMapUpdateKeepsPosition(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 99)
	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 99, v)
}

func TestOrderedMapDeleteShiftsIndex(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")
	require.Equal(t, []string{"a", "c"}, m.Keys())
	require.Equal(t, "c", m.KeyAt(1))
	require.Equal(t, 3, m.ValueAt(1))
}
