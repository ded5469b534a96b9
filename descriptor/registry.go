// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package descriptor

import (
	"fmt"
	"sync"
)

// Identity is what a Serializer reports when asked to describe itself
// instead of emit a value (spec §4.5's "if output is null, fill *identity").
type Identity struct {
	Name   string
	IsUTF8 bool
}

// Serializer emits value's bytes, described by d, to out. When out is nil,
// the serializer must instead fill identity and return nil: this is how a
// format advertises its name and UTF-8-ness without performing I/O.
type Serializer func(out Writer, value any, d *Descriptor, identity *Identity) error

// Parser reads a value described by d from src.
type Parser func(src Reader, d *Descriptor) (any, error)

// Writer and Reader are the minimal byte-stream surface the descriptor
// layer depends on; code.hybscloud.com/stream.Stream satisfies both without
// this package importing it directly, avoiding an import cycle (stream's
// Printf/Scanf convenience methods live in the stream package and call
// into this one, not the reverse).
type Writer interface {
	Write(p []byte) (int, error)
}
type Reader interface {
	Read(p []byte) (int, error)
}

// Format pairs a named serializer/parser, as registered in the format
// registry (spec §4.5: "a format registry mapping a format name to
// (parser, serializer) pair, e.g. JSON").
type Format struct {
	Name       string
	Parser     Parser
	Serializer Serializer
}

var (
	typeMu     sync.RWMutex
	typeRegs   = map[string]*Descriptor{}
	formatMu   sync.RWMutex
	formatRegs = map[string]Format{}
)

// RegisterType adds name to the process-wide type registry, used at parse
// time to instantiate values by name (the `*`-typename forms of the
// %{...} syntax and format parsers that need to resolve a nested type).
func RegisterType(name string, d *Descriptor) error {
	typeMu.Lock()
	defer typeMu.Unlock()
	if _, exists := typeRegs[name]; exists {
		return fmt.Errorf("descriptor: type %q already registered", name)
	}
	typeRegs[name] = d
	return nil
}

// LookupType resolves a previously registered type name.
func LookupType(name string) (*Descriptor, bool) {
	typeMu.RLock()
	defer typeMu.RUnlock()
	d, ok := typeRegs[name]
	return d, ok
}

// RegisterFormat adds a named (parser, serializer) pair to the process-wide
// format registry.
func RegisterFormat(f Format) error {
	formatMu.Lock()
	defer formatMu.Unlock()
	if _, exists := formatRegs[f.Name]; exists {
		return fmt.Errorf("descriptor: format %q already registered", f.Name)
	}
	formatRegs[f.Name] = f
	return nil
}

// LookupFormat resolves a previously registered format name.
func LookupFormat(name string) (Format, bool) {
	formatMu.RLock()
	defer formatMu.RUnlock()
	f, ok := formatRegs[name]
	return f, ok
}
