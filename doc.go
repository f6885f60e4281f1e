/*
Package multimap implements an ordered keyed multimap: an outer key may map
to more than one value, values are kept in an ordering supplied by their own
key, and the whole collection is backed by a persistent summarized B+ tree.

Composite entries are ordered lexicographically by (outer key, value key);
that composite key is unique, so inserting a value whose outer key and value
key both already exist replaces the stored value rather than duplicating it.

Typical usage:

	var m multimap.Multimap[string, int, entry]
	m = m.Insert("a", entry{ID: 1, Data: "x"})
	m.Get("a", func(v entry) bool {
		fmt.Println(v)
		return true
	})

Package `sumtree` contains the generic persistent summarized B+ tree that
this package is built on.
*/
package multimap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'multimap'.
func tracer() tracing.Trace {
	return tracing.Select("multimap")
}
