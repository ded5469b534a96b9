// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

// CopyDescriptor returns a fresh deep copy of d with every node marked
// Dynamic, regardless of whether d itself was static or dynamic (spec
// §4.5: "fresh dynamic deep copy, all children dynamic").
func CopyDescriptor(d *Descriptor) *Descriptor {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Dynamic = true
	cp.destroyed = false
	cp.Elem = CopyDescriptor(d.Elem)
	cp.Key = CopyDescriptor(d.Key)
	cp.Value = CopyDescriptor(d.Value)
	return &cp
}

// CopyIfDynamic returns d unchanged if it is already static (shared,
// read-only); otherwise it deep-copies it, since a dynamic Descriptor has a
// single logical owner and must not be aliased into a second owner without
// copying.
func CopyIfDynamic(d *Descriptor) *Descriptor {
	if d == nil || !d.Dynamic {
		return d
	}
	return CopyDescriptor(d)
}

// CopyIfStatic deep-copies only the top `levels` levels of d if it is
// static, sharing everything below that depth; an already-dynamic d is
// returned unchanged (it is already uniquely owned).
func CopyIfStatic(d *Descriptor, levels int) *Descriptor {
	if d == nil || d.Dynamic || levels <= 0 {
		return d
	}
	cp := *d
	cp.Dynamic = true
	cp.destroyed = false
	cp.Elem = CopyIfStatic(d.Elem, levels-1)
	cp.Key = CopyIfStatic(d.Key, levels-1)
	cp.Value = CopyIfStatic(d.Value, levels-1)
	return &cp
}

// BuildContainer composes a dynamic List-kind Descriptor with the given
// element Descriptor and collection vtable.
func BuildContainer(elem *Descriptor, ops CollectionOps) *Descriptor {
	return &Descriptor{Name: "list<" + elem.Name + ">", Kind: KindList, Dynamic: true, Elem: elem, Collection: ops}
}

// BuildKeyValueContainer composes a dynamic Map-kind Descriptor with the
// given key/value Descriptors and collection vtable.
func BuildKeyValueContainer(keys, values *Descriptor, ops CollectionOps) *Descriptor {
	return &Descriptor{
		Name:       "map<" + keys.Name + "," + values.Name + ">",
		Kind:       KindMap,
		Dynamic:    true,
		Key:        keys,
		Value:      values,
		Collection: ops,
	}
}

// DestroyIfDynamic releases d if it is dynamic; it is a safe no-op on a
// static Descriptor and, crucially, on a Descriptor already destroyed —
// every owner of a shared dynamic DAG may call this exactly once on their
// reference without coordinating with the other owners.
func DestroyIfDynamic(d *Descriptor) {
	if d == nil || !d.Dynamic || d.destroyed {
		return
	}
	d.destroyed = true
	DestroyIfDynamic(d.Elem)
	DestroyIfDynamic(d.Key)
	DestroyIfDynamic(d.Value)
}

// TypesCompatible reports whether a and b describe structurally identical
// shapes: same Kind, recursively identical Elem/Key/Value. Name and
// Dynamic are not considered part of the shape.
func TypesCompatible(a, b *Descriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindList:
		return TypesCompatible(a.Elem, b.Elem)
	case KindMap:
		return TypesCompatible(a.Key, b.Key) && TypesCompatible(a.Value, b.Value)
	default:
		return true
	}
}
