/*
Package sumtree implements an experimental, domain-agnostic B+ sum-tree.

The package is not specialized to any particular item type. An item only has
to know how to summarize itself (Item.Summary), and a Monoid only has to know
how to combine two summaries associatively. Everything else -- node shape,
path-copy mutation, cursor-guided seeking -- works the same regardless of
what is being summarized.

Current status:
  - package skeleton and invariants framework,
  - summary, dimension and seek-target interfaces,
  - item-to-summary linkage at the type level (Item.Summary),
  - distinct leafNode and innerNode representations,
  - tree API surface and summary-guided cursor seek,
  - recursive path-copy push with split propagation,
  - baseline concat implementation (correctness-first, not optimized),
  - cursor-driven edit (slice / skip / append) in place of index delete.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package sumtree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
