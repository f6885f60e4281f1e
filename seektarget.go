package multimap

import (
	"cmp"

	"github.com/anthill-editor/sumtree/sumtree"
)

// MapSeekTarget is a comparator against an outer key, used to drive Closest,
// Range, RemoveRange and similar traversals that need more than a plain
// ordinal comparison (for instance "is this key a descendant of a path
// prefix", which cannot be expressed as a single K value to compare against).
type MapSeekTarget[K cmp.Ordered] interface {
	// Compare reports how the target relates to key: Greater if the target
	// is still ahead of key, Equal if key satisfies the target exactly, Less
	// if key has already overshot the target.
	Compare(key K, ctx any) sumtree.Ordering
}

// KeyTarget is the identity MapSeekTarget for any ordered K: seeking for
// KeyTarget{Key: k} with Left bias lands on the first item whose outer key is
// >= k.
type KeyTarget[K cmp.Ordered] struct {
	Key K
}

func (t KeyTarget[K]) Compare(key K, ctx any) sumtree.Ordering {
	switch c := cmp.Compare(t.Key, key); {
	case c > 0:
		return sumtree.Greater
	case c < 0:
		return sumtree.Less
	default:
		return sumtree.Equal
	}
}

// compositeTarget seeks the exact (outer, inner) composite key, used by
// Insert/Remove to locate or displace a single entry.
type compositeTarget[K cmp.Ordered, Vk cmp.Ordered] struct {
	outer K
	inner Vk
}

func (t compositeTarget[K, Vk]) Compare(dim CompositeKeyRef[K, Vk], ctx any) sumtree.Ordering {
	if !dim.Valid {
		return sumtree.Greater
	}
	if c := cmp.Compare(t.outer, dim.Outer); c != 0 {
		if c > 0 {
			return sumtree.Greater
		}
		return sumtree.Less
	}
	switch c := cmp.Compare(t.inner, dim.Inner); {
	case c > 0:
		return sumtree.Greater
	case c < 0:
		return sumtree.Less
	default:
		return sumtree.Equal
	}
}

// mapSeekAdaptor lifts a MapSeekTarget[K] into a full sumtree.SeekTarget over
// the running OuterKeyRef dimension, treating "nothing accumulated yet" (the
// start of the tree) as strictly ahead of any target.
type mapSeekAdaptor[K cmp.Ordered, Vk cmp.Ordered] struct {
	inner MapSeekTarget[K]
}

func (a mapSeekAdaptor[K, Vk]) Compare(dim OuterKeyRef[K], ctx any) sumtree.Ordering {
	if !dim.Valid {
		return sumtree.Greater
	}
	return a.inner.Compare(dim.Key, ctx)
}
