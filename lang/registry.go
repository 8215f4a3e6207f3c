package lang

import (
	"maps"
	"slices"
)

// Registry is an immutable mapping from name to raw, unparsed definition
// text. A registry is never mutated once constructed: Merge produces a
// new registry, and shadowing is the only override mechanism — no
// deletion primitive exists.
//
// The zero value is an empty registry, usable without initialization.
// Because registries are immutable, a single value may be read
// concurrently by any number of resolve calls without synchronization.
type Registry struct {
	defs map[string]string
}

// NewRegistry constructs a registry from the given entries. The input
// map is cloned, so later mutation of it does not affect the registry.
func NewRegistry(entries map[string]string) Registry {
	if len(entries) == 0 {
		return Registry{}
	}

	return Registry{defs: maps.Clone(entries)}
}

// Lookup returns the raw definition text bound to name.
func (r Registry) Lookup(name string) (string, bool) {
	text, ok := r.defs[name]

	return text, ok
}

// Merge returns a new registry containing every entry of r, with every
// entry of overlay replacing same-named entries of r. Neither input is
// modified, and keys absent from overlay are never removed.
func (r Registry) Merge(overlay Registry) Registry {
	if len(overlay.defs) == 0 {
		return r
	}

	if len(r.defs) == 0 {
		return overlay
	}

	defs := maps.Clone(r.defs)
	maps.Copy(defs, overlay.defs)

	return Registry{defs: defs}
}

// Len returns the number of entries in the registry.
func (r Registry) Len() int {
	return len(r.defs)
}

// Names returns the sorted names of every registry entry.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.defs))
}

// Build constructs the effective registry from its four ordered sources:
// built-in primitives, externally supplied schema, inline same-document
// definitions, and user-declared compositional types. Each later
// source's entries win on key collision.
func Build(builtins, schema, inline, user Registry) Registry {
	return builtins.Merge(schema).Merge(inline).Merge(user)
}

// Builtins returns the built-in primitive definitions. These form the
// lowest-precedence registry layer and may be shadowed by any other
// source.
func Builtins() Registry {
	return NewRegistry(map[string]string{
		"null":   "null",
		"bool":   "false",
		"int":    "0",
		"num":    "0",
		"string": `""`,
		"unique": "$string",
		"any":    "?",
	})
}
