// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package json registers a "json" descriptor.Format implementing RFC 8259
// serialization and parsing against the generic descriptor.Descriptor/
// CollectionOps machinery, with an "json_ascii" variant that escapes every
// non-ASCII code point instead of emitting UTF-8 directly.
package json

import (
	"code.hybscloud.com/stream/container"
	"code.hybscloud.com/stream/descriptor"
)

func init() {
	if err := descriptor.RegisterFormat(descriptor.Format{
		Name:       "json",
		Serializer: serialize(false),
		Parser:     parse,
	}); err != nil {
		panic(err)
	}
	if err := descriptor.RegisterFormat(descriptor.Format{
		Name:       "json_ascii",
		Serializer: serialize(true),
		Parser:     parse,
	}); err != nil {
		panic(err)
	}
}

// serialize returns a descriptor.Serializer bound to asciiOnly, dispatching
// through container.Variant when value is one (the common case for a
// schema-less format) and falling back to the plain descriptor.Kind switch
// otherwise, so a caller can also serialize a plain Go bool/int64/etc.
// against a static descriptor without wrapping it in a Variant first.
func serialize(asciiOnly bool) descriptor.Serializer {
	return func(out descriptor.Writer, value any, d *descriptor.Descriptor, identity *descriptor.Identity) error {
		if identity != nil {
			name := "json"
			if asciiOnly {
				name = "json_ascii"
			}
			*identity = descriptor.Identity{Name: name, IsUTF8: !asciiOnly}
			if out == nil {
				return nil
			}
		}
		if v, ok := value.(container.Variant); ok {
			return writeVariant(out, v, asciiOnly)
		}
		return writeValue(out, value, d, asciiOnly)
	}
}

func parse(src descriptor.Reader, d *descriptor.Descriptor) (any, error) {
	p := newParser(src)
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return v, nil
}
