// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import "code.hybscloud.com/stream/descriptor"

// ListDescriptor builds a descriptor.Descriptor for an arbitrary *List[T],
// so a caller with a concrete scalar-element list (not routed through
// Variant) can still drive it through the generic serializer: ValueChild
// returns the element unwrapped as T, which already matches elem's Kind for
// every scalar T (int64, bool, float64, string, []byte).
func ListDescriptor[T any](elem *descriptor.Descriptor) *descriptor.Descriptor {
	return descriptor.BuildContainer(elem, descriptor.CollectionOps{
		Len:        func(c any) int { return c.(*List[T]).Len() },
		ValueChild: func(c any, i int) any { return c.(*List[T]).At(i) },
	})
}

// MapDescriptor builds a descriptor.Descriptor for an arbitrary
// *OrderedMap[K,V], the key/value-container counterpart to ListDescriptor.
func MapDescriptor[K comparable, V any](key, value *descriptor.Descriptor) *descriptor.Descriptor {
	return descriptor.BuildKeyValueContainer(key, value, descriptor.CollectionOps{
		Len:        func(c any) int { return c.(*OrderedMap[K, V]).Len() },
		KeyChild:   func(c any, i int) any { return c.(*OrderedMap[K, V]).KeyAt(i) },
		ValueChild: func(c any, i int) any { return c.(*OrderedMap[K, V]).ValueAt(i) },
	})
}
