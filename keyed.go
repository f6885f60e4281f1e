package multimap

import "cmp"

// KeyedItem is a value that carries its own ordering key, independent of the
// outer key it is filed under in a Multimap.
type KeyedItem[Vk cmp.Ordered] interface {
	Key() Vk
}

// mapKey is the composite (outer, inner) key of a single multimap entry.
// valid is false for the zero/identity key of an empty subtree.
type mapKey[K cmp.Ordered, Vk cmp.Ordered] struct {
	outer K
	inner Vk
	valid bool
}

func (a mapKey[K, Vk]) less(b mapKey[K, Vk]) bool {
	if c := cmp.Compare(a.outer, b.outer); c != 0 {
		return c < 0
	}
	return cmp.Compare(a.inner, b.inner) < 0
}

// mapKeySummary is the per-node summary: the composite key of the rightmost
// item in the subtree. Because the tree is always built and mutated in
// composite-key order, a subtree's rightmost item's key is its maximum key,
// which is exactly what routes seeks without needing a full running fold.
type mapKeySummary[K cmp.Ordered, Vk cmp.Ordered] struct {
	maxKey mapKey[K, Vk]
}

type mapKeyMonoid[K cmp.Ordered, Vk cmp.Ordered] struct{}

func (mapKeyMonoid[K, Vk]) Zero(ctx any) mapKeySummary[K, Vk] {
	return mapKeySummary[K, Vk]{}
}

// Add implements the "rightmost wins" fold: a non-empty right summary always
// overrides the left one, since the tree's summary of a subtree is defined
// to be the composite key of its rightmost item, not an accumulation.
func (mapKeyMonoid[K, Vk]) Add(left, right mapKeySummary[K, Vk], ctx any) mapKeySummary[K, Vk] {
	if right.maxKey.valid {
		return right
	}
	return left
}

// mapEntry is the leaf item type stored in the underlying sum-tree.
type mapEntry[K cmp.Ordered, Vk cmp.Ordered, V KeyedItem[Vk]] struct {
	outerKey K
	value    V
}

func (e mapEntry[K, Vk, V]) Summary(ctx any) mapKeySummary[K, Vk] {
	return mapKeySummary[K, Vk]{maxKey: mapKey[K, Vk]{outer: e.outerKey, inner: e.value.Key(), valid: true}}
}

// OuterKeyRef is the cursor coordinate produced by OuterKeyDimension: the
// outer key of the rightmost item seen so far, or the invalid zero value
// before the first item.
type OuterKeyRef[K cmp.Ordered] struct {
	Key   K
	Valid bool
}

type outerKeyDimension[K cmp.Ordered, Vk cmp.Ordered] struct{}

func (outerKeyDimension[K, Vk]) Zero(ctx any) OuterKeyRef[K] {
	return OuterKeyRef[K]{}
}

func (outerKeyDimension[K, Vk]) Add(acc OuterKeyRef[K], summary mapKeySummary[K, Vk], ctx any) OuterKeyRef[K] {
	if summary.maxKey.valid {
		return OuterKeyRef[K]{Key: summary.maxKey.outer, Valid: true}
	}
	return acc
}

// CompositeKeyRef is the cursor coordinate for exact (outer, inner) seeking.
type CompositeKeyRef[K cmp.Ordered, Vk cmp.Ordered] struct {
	Outer K
	Inner Vk
	Valid bool
}

type compositeKeyDimension[K cmp.Ordered, Vk cmp.Ordered] struct{}

func (compositeKeyDimension[K, Vk]) Zero(ctx any) CompositeKeyRef[K, Vk] {
	return CompositeKeyRef[K, Vk]{}
}

func (compositeKeyDimension[K, Vk]) Add(acc CompositeKeyRef[K, Vk], summary mapKeySummary[K, Vk], ctx any) CompositeKeyRef[K, Vk] {
	if summary.maxKey.valid {
		return CompositeKeyRef[K, Vk]{Outer: summary.maxKey.outer, Inner: summary.maxKey.inner, Valid: true}
	}
	return acc
}
