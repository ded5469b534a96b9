// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package container provides generic dynamic-sized collections and a
// tagged-union Variant type, wired to code.hybscloud.com/stream/descriptor's
// generic container vtable so descriptors can walk them without depending
// on the concrete Go types.
package container

// List is a slice-backed, append-only-from-the-outside dynamic list.
type List[T any] struct {
	items []T
}

// NewList returns an empty List, optionally pre-sized.
func NewList[T any](capHint int) *List[T] {
	return &List[T]{items: make([]T, 0, capHint)}
}

// ListOf wraps an existing slice without copying it.
func ListOf[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) At(i int) T { return l.items[i] }

func (l *List[T]) Set(i int, v T) { l.items[i] = v }

func (l *List[T]) Append(v T) { l.items = append(l.items, v) }

func (l *List[T]) Slice() []T { return l.items }

func (l *List[T]) Clone() *List[T] {
	cp := make([]T, len(l.items))
	copy(cp, l.items)
	return &List[T]{items: cp}
}
