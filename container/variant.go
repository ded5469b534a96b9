// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import (
	"fmt"

	"code.hybscloud.com/stream/descriptor"
)

// VariantKind tags the alternative currently held by a Variant.
type VariantKind uint8

const (
	VariantNull VariantKind = iota
	VariantBool
	VariantInt
	VariantFloat
	VariantString
	VariantBytes
	VariantList
	VariantMap
)

// Variant is a tagged union over the value shapes a schema-less format like
// JSON (spec §4.6) can produce: exactly one of the typed fields is valid,
// selected by Kind.
type Variant struct {
	Kind VariantKind

	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string
	bytesVal  []byte
	listVal   *List[Variant]
	mapVal    *OrderedMap[string, Variant]
}

func NewNull() Variant { return Variant{Kind: VariantNull} }

func NewBool(b bool) Variant { return Variant{Kind: VariantBool, boolVal: b} }

func NewInt(i int64) Variant { return Variant{Kind: VariantInt, intVal: i} }

func NewFloat(f float64) Variant { return Variant{Kind: VariantFloat, floatVal: f} }

func NewString(s string) Variant { return Variant{Kind: VariantString, stringVal: s} }

func NewBytes(b []byte) Variant { return Variant{Kind: VariantBytes, bytesVal: b} }

func NewList(l *List[Variant]) Variant { return Variant{Kind: VariantList, listVal: l} }

func NewMap(m *OrderedMap[string, Variant]) Variant { return Variant{Kind: VariantMap, mapVal: m} }

func (v Variant) Bool() (bool, bool) { return v.boolVal, v.Kind == VariantBool }

func (v Variant) Int() (int64, bool) { return v.intVal, v.Kind == VariantInt }

func (v Variant) Float() (float64, bool) { return v.floatVal, v.Kind == VariantFloat }

func (v Variant) String() (string, bool) { return v.stringVal, v.Kind == VariantString }

func (v Variant) Bytes() ([]byte, bool) { return v.bytesVal, v.Kind == VariantBytes }

func (v Variant) List() (*List[Variant], bool) { return v.listVal, v.Kind == VariantList }

func (v Variant) Map() (*OrderedMap[string, Variant], bool) { return v.mapVal, v.Kind == VariantMap }

// Describe returns the Descriptor for v, recursing into lists and maps so
// a serializer can walk v generically via descriptor.CollectionOps.
func Describe(v Variant) *descriptor.Descriptor {
	switch v.Kind {
	case VariantNull:
		return descriptor.Null
	case VariantBool:
		return descriptor.Bool
	case VariantInt:
		return descriptor.Int
	case VariantFloat:
		return descriptor.Float
	case VariantString:
		return descriptor.String
	case VariantBytes:
		return descriptor.Bytes
	case VariantList:
		return descriptor.BuildContainer(variantElemDescriptor(v.listVal), variantListOps)
	case VariantMap:
		return descriptor.BuildKeyValueContainer(descriptor.String, variantElemDescriptor(v.mapVal), variantMapOps)
	default:
		panic(fmt.Sprintf("container: unknown variant kind %d", v.Kind))
	}
}

// variantElemDescriptor picks a representative element Descriptor: the
// first child's shape if non-empty, else the Null descriptor (an empty
// container's element type cannot be observed from its values alone).
func variantElemDescriptor(backing any) *descriptor.Descriptor {
	switch c := backing.(type) {
	case *List[Variant]:
		if c.Len() == 0 {
			return descriptor.Null
		}
		return Describe(c.At(0))
	case *OrderedMap[string, Variant]:
		if c.Len() == 0 {
			return descriptor.Null
		}
		return Describe(c.ValueAt(0))
	default:
		panic(fmt.Sprintf("container: unsupported container type %T", backing))
	}
}

// RawValue unwraps v to the concrete Go value matching Describe(v)'s Kind,
// the pairing a Serializer expects ((value, Descriptor) must agree on shape).
func RawValue(v Variant) any { return variantRawValue(v) }

// variantRawValue unwraps v to the concrete Go value its Kind's Descriptor
// expects: scalars unwrap to their native type, containers unwrap to their
// backing *List/*OrderedMap so recursive CollectionOps calls see the same
// shape Describe built the Descriptor from.
func variantRawValue(v Variant) any {
	switch v.Kind {
	case VariantNull:
		return nil
	case VariantBool:
		return v.boolVal
	case VariantInt:
		return v.intVal
	case VariantFloat:
		return v.floatVal
	case VariantString:
		return v.stringVal
	case VariantBytes:
		return v.bytesVal
	case VariantList:
		return v.listVal
	case VariantMap:
		return v.mapVal
	default:
		panic(fmt.Sprintf("container: unknown variant kind %d", v.Kind))
	}
}

var variantListOps = descriptor.CollectionOps{
	Len: func(c any) int { return c.(*List[Variant]).Len() },
	ValueChild: func(c any, i int) any {
		return variantRawValue(c.(*List[Variant]).At(i))
	},
}

var variantMapOps = descriptor.CollectionOps{
	Len: func(c any) int { return c.(*OrderedMap[string, Variant]).Len() },
	KeyChild: func(c any, i int) any {
		return c.(*OrderedMap[string, Variant]).KeyAt(i)
	},
	ValueChild: func(c any, i int) any {
		return variantRawValue(c.(*OrderedMap[string, Variant]).ValueAt(i))
	},
}
