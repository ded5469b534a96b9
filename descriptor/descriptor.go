// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package descriptor provides a type-descriptor ("container base") layer
// (spec §4.5): a Descriptor describes the shape of a value (scalar or
// container) well enough that a generic serializer can walk it without
// compile-time knowledge of the concrete Go type, and process-wide type and
// format registries let a name resolve to a Descriptor or a (parser,
// serializer) pair at runtime.
package descriptor

// Kind classifies what a Descriptor describes.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// CollectionOps is the collection vtable a List/Map-kind Descriptor carries
// so a generic walker (the default and JSON serializers) can
// iterate an arbitrary concrete container without knowing its Go type.
// Container is the concrete container value (e.g. *container.List[T] or
// *container.OrderedMap[K,V]), passed and returned as any.
type CollectionOps struct {
	Len func(container any) int
	// ValueChild returns the i'th element's value.
	ValueChild func(container any, i int) any
	// KeyChild returns the i'th element's key; nil for list-kind descriptors.
	KeyChild func(container any, i int) any
}

// Descriptor describes the shape of a value: its Kind, and for List/Map
// kinds the element/key/value Descriptors plus a CollectionOps vtable.
//
// A Descriptor is either static (a long-lived, typically package-level
// value shared by every value of that shape — safe to alias freely) or
// dynamic (heap-allocated and uniquely owned, built by BuildContainer/
// BuildKeyValueContainer or produced by CopyDescriptor/CopyIfStatic).
// DestroyIfDynamic is the matching release operation for the dynamic case.
type Descriptor struct {
	Name    string
	Kind    Kind
	Dynamic bool

	Elem  *Descriptor // KindList: element descriptor
	Key   *Descriptor // KindMap: key descriptor
	Value *Descriptor // KindMap: value descriptor

	Collection CollectionOps

	destroyed bool
}

// Scalar descriptors are immutable and shared (never Dynamic); they need no
// CopyDescriptor/DestroyIfDynamic bookkeeping.
var (
	Bool   = &Descriptor{Name: "bool", Kind: KindBool}
	Int    = &Descriptor{Name: "int", Kind: KindInt}
	Float  = &Descriptor{Name: "float", Kind: KindFloat}
	String = &Descriptor{Name: "string", Kind: KindString}
	Bytes  = &Descriptor{Name: "bytes", Kind: KindBytes}
	Null   = &Descriptor{Name: "null", Kind: KindNull}
)
