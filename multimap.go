package multimap

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"cmp"

	"github.com/anthill-editor/sumtree/sumtree"
)

// Multimap is an ordered keyed multimap backed by a persistent sum-tree.
//
// The zero value is an empty, usable Multimap.
type Multimap[K cmp.Ordered, Vk cmp.Ordered, V KeyedItem[Vk]] struct {
	tree *sumtree.Tree[mapEntry[K, Vk, V], mapKeySummary[K, Vk]]
}

func (m Multimap[K, Vk, V]) cfg() sumtree.Config[mapKeySummary[K, Vk]] {
	return sumtree.Config[mapKeySummary[K, Vk]]{Monoid: mapKeyMonoid[K, Vk]{}}
}

func (m Multimap[K, Vk, V]) ensureTree() *sumtree.Tree[mapEntry[K, Vk, V], mapKeySummary[K, Vk]] {
	if m.tree != nil {
		return m.tree
	}
	t, err := sumtree.New[mapEntry[K, Vk, V], mapKeySummary[K, Vk]](m.cfg())
	if err != nil {
		panic(err)
	}
	return t
}

func (m Multimap[K, Vk, V]) outerCursor() *sumtree.Cursor[mapEntry[K, Vk, V], mapKeySummary[K, Vk], OuterKeyRef[K]] {
	c, err := sumtree.NewCursor[mapEntry[K, Vk, V], mapKeySummary[K, Vk]](m.ensureTree(), outerKeyDimension[K, Vk]{})
	if err != nil {
		panic(err)
	}
	return c
}

func (m Multimap[K, Vk, V]) compositeCursor() *sumtree.Cursor[mapEntry[K, Vk, V], mapKeySummary[K, Vk], CompositeKeyRef[K, Vk]] {
	c, err := sumtree.NewCursor[mapEntry[K, Vk, V], mapKeySummary[K, Vk]](m.ensureTree(), compositeKeyDimension[K, Vk]{})
	if err != nil {
		panic(err)
	}
	return c
}

// IsEmpty reports whether the multimap holds no entries.
func (m Multimap[K, Vk, V]) IsEmpty() bool {
	return m.tree == nil || m.tree.IsEmpty()
}

// Len returns the number of stored entries.
func (m Multimap[K, Vk, V]) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Insert stores value under outerKey, keyed further by value.Key(). If an
// entry with the same composite (outerKey, value.Key()) already exists, it is
// replaced.
func (m Multimap[K, Vk, V]) Insert(outerKey K, value V) Multimap[K, Vk, V] {
	tracer().Debugf("insert outerKey=%v innerKey=%v", outerKey, value.Key())
	entry := mapEntry[K, Vk, V]{outerKey: outerKey, value: value}
	target := compositeTarget[K, Vk]{outer: outerKey, inner: value.Key()}
	cur := m.compositeCursor()
	prefix := cur.Slice(target, sumtree.Left, nil)
	if item, ok := cur.Item(); ok {
		if cmp.Compare(item.value.Key(), value.Key()) == 0 && cmp.Compare(item.outerKey, outerKey) == 0 {
			cur.Next(nil) // drop the replaced entry
		}
	}
	suffix := cur.Suffix(nil)
	out := prefix.Push(entry, nil)
	out = out.Append(suffix, nil)
	return Multimap[K, Vk, V]{tree: out}
}

// Get calls fn for every value stored under outerKey, in inner-key order,
// until fn returns false.
func (m Multimap[K, Vk, V]) Get(outerKey K, fn func(value V) bool) {
	if m.IsEmpty() {
		return
	}
	cur := m.outerCursor()
	if !cur.Seek(outerTarget[K, Vk](outerKey), sumtree.Left, nil) {
		return
	}
	for !cur.End(nil) {
		item, ok := cur.Item()
		if !ok || cmp.Compare(item.outerKey, outerKey) != 0 {
			return
		}
		if !fn(item.value) {
			return
		}
		cur.Next(nil)
	}
}

// getExact returns the value stored under the exact composite key
// (outerKey, innerKey), if any.
func (m Multimap[K, Vk, V]) getExact(outerKey K, innerKey Vk) (V, bool) {
	var zero V
	if m.IsEmpty() {
		return zero, false
	}
	cur := m.compositeCursor()
	target := compositeTarget[K, Vk]{outer: outerKey, inner: innerKey}
	if !cur.Seek(target, sumtree.Left, nil) {
		return zero, false
	}
	item, ok := cur.Item()
	if !ok || cmp.Compare(item.outerKey, outerKey) != 0 || cmp.Compare(item.value.Key(), innerKey) != 0 {
		return zero, false
	}
	return item.value, true
}

// ContainsKey reports whether any entry exists under outerKey.
func (m Multimap[K, Vk, V]) ContainsKey(outerKey K) bool {
	found := false
	m.Get(outerKey, func(V) bool {
		found = true
		return false
	})
	return found
}

// Remove deletes the entry stored under (outerKey, innerKey), if any.
func (m Multimap[K, Vk, V]) Remove(outerKey K, innerKey Vk) Multimap[K, Vk, V] {
	if m.IsEmpty() {
		return m
	}
	target := compositeTarget[K, Vk]{outer: outerKey, inner: innerKey}
	cur := m.compositeCursor()
	prefix := cur.Slice(target, sumtree.Left, nil)
	item, ok := cur.Item()
	if !ok || cmp.Compare(item.outerKey, outerKey) != 0 || cmp.Compare(item.value.Key(), innerKey) != 0 {
		return m
	}
	cur.Next(nil)
	suffix := cur.Suffix(nil)
	return Multimap[K, Vk, V]{tree: prefix.Append(suffix, nil)}
}

// RemoveRange deletes every entry landed on by start up to (but not
// including) the entry landed on by end, where start and end are seek
// targets over the outer key rather than materializable keys — e.g. end may
// be "any key no longer a descendant of this path", which has no single K
// value to represent it.
func (m Multimap[K, Vk, V]) RemoveRange(start, end MapSeekTarget[K]) Multimap[K, Vk, V] {
	if m.IsEmpty() {
		return m
	}
	cur := m.outerCursor()
	prefix := cur.Slice(mapSeekAdaptor[K, Vk]{inner: start}, sumtree.Left, nil)
	_ = cur.Slice(mapSeekAdaptor[K, Vk]{inner: end}, sumtree.Left, nil)
	suffix := cur.Suffix(nil)
	return Multimap[K, Vk, V]{tree: prefix.Append(suffix, nil)}
}

// Closest returns the entry with the greatest outer key <= outerKey, if any.
func (m Multimap[K, Vk, V]) Closest(outerKey K) (K, V, bool) {
	var zeroK K
	var zeroV V
	if m.IsEmpty() {
		return zeroK, zeroV, false
	}
	cur := m.outerCursor()
	cur.Seek(outerTarget[K, Vk](outerKey), sumtree.Right, nil)
	cur.Prev(nil)
	item, ok := cur.Item()
	if !ok {
		return zeroK, zeroV, false
	}
	return item.outerKey, item.value, true
}

// Range calls fn for every entry whose outer key falls in [start, end), in
// composite-key order. fn returning false stops the traversal early.
func (m Multimap[K, Vk, V]) Range(start, end K, fn func(outerKey K, value V) bool) {
	if m.IsEmpty() {
		return
	}
	cur := m.outerCursor()
	cur.Seek(outerTarget[K, Vk](start), sumtree.Left, nil)
	for !cur.End(nil) {
		item, ok := cur.Item()
		if !ok || cmp.Compare(item.outerKey, end) >= 0 {
			return
		}
		if !fn(item.outerKey, item.value) {
			return
		}
		cur.Next(nil)
	}
}

// IterFrom calls fn for every entry at or after outerKey, in composite-key
// order, until fn returns false.
func (m Multimap[K, Vk, V]) IterFrom(outerKey K, fn func(outerKey K, value V) bool) {
	if m.IsEmpty() {
		return
	}
	cur := m.outerCursor()
	cur.Seek(outerTarget[K, Vk](outerKey), sumtree.Left, nil)
	for !cur.End(nil) {
		item, ok := cur.Item()
		if !ok {
			return
		}
		if !fn(item.outerKey, item.value) {
			return
		}
		cur.Next(nil)
	}
}

// Update applies fn to the value stored under (outerKey, innerKey) and
// stores the result, if an entry exists there; it reports whether one did.
func (m Multimap[K, Vk, V]) Update(outerKey K, innerKey Vk, fn func(V) V) (Multimap[K, Vk, V], bool) {
	v, ok := m.getExact(outerKey, innerKey)
	if !ok {
		return m, false
	}
	return m.Insert(outerKey, fn(v)), true
}

// Retain keeps only the entries for which keep returns true.
func (m Multimap[K, Vk, V]) Retain(keep func(outerKey K, value V) bool) Multimap[K, Vk, V] {
	if m.IsEmpty() {
		return m
	}
	var kept []mapEntry[K, Vk, V]
	m.Iter(func(outerKey K, value V) bool {
		if keep(outerKey, value) {
			kept = append(kept, mapEntry[K, Vk, V]{outerKey: outerKey, value: value})
		}
		return true
	})
	out, err := sumtree.BuildFromOrdered[mapEntry[K, Vk, V], mapKeySummary[K, Vk]](m.cfg(), nil, kept)
	if err != nil {
		panic(err)
	}
	return Multimap[K, Vk, V]{tree: out}
}

// Iter calls fn for every entry in composite-key order until fn returns false.
func (m Multimap[K, Vk, V]) Iter(fn func(outerKey K, value V) bool) {
	if m.IsEmpty() {
		return
	}
	cur := m.outerCursor()
	for !cur.End(nil) {
		item, ok := cur.Item()
		if !ok {
			return
		}
		if !fn(item.outerKey, item.value) {
			return
		}
		cur.Next(nil)
	}
}

// Values calls fn for every value in composite-key order until fn returns false.
func (m Multimap[K, Vk, V]) Values(fn func(value V) bool) {
	m.Iter(func(_ K, value V) bool { return fn(value) })
}

// InsertTree merges another Multimap's entries into this one, in bulk.
//
// It walks both trees' composite-key order the same way a merge sort would,
// preferring other's value where both define the same composite key.
func (m Multimap[K, Vk, V]) InsertTree(other Multimap[K, Vk, V]) Multimap[K, Vk, V] {
	if other.IsEmpty() {
		return m
	}
	if m.IsEmpty() {
		return other
	}
	var merged []mapEntry[K, Vk, V]
	a := m.compositeCursor()
	b := other.compositeCursor()
	for !a.End(nil) && !b.End(nil) {
		ai, _ := a.Item()
		bi, _ := b.Item()
		ak := mapKey[K, Vk]{outer: ai.outerKey, inner: ai.value.Key(), valid: true}
		bk := mapKey[K, Vk]{outer: bi.outerKey, inner: bi.value.Key(), valid: true}
		switch {
		case ak.less(bk):
			merged = append(merged, ai)
			a.Next(nil)
		case bk.less(ak):
			merged = append(merged, bi)
			b.Next(nil)
		default:
			merged = append(merged, bi)
			a.Next(nil)
			b.Next(nil)
		}
	}
	for !a.End(nil) {
		item, _ := a.Item()
		merged = append(merged, item)
		a.Next(nil)
	}
	for !b.End(nil) {
		item, _ := b.Item()
		merged = append(merged, item)
		b.Next(nil)
	}
	out, err := sumtree.BuildFromOrdered[mapEntry[K, Vk, V], mapKeySummary[K, Vk]](m.cfg(), nil, merged)
	if err != nil {
		panic(err)
	}
	return Multimap[K, Vk, V]{tree: out}
}

// ToOrderedMap converts the multimap to a plain Go map keyed by the
// composite value key, for interop and testing.
func (m Multimap[K, Vk, V]) ToOrderedMap() map[Vk]V {
	out := make(map[Vk]V, m.Len())
	m.Values(func(v V) bool {
		out[v.Key()] = v
		return true
	})
	return out
}

// FromOrderedEntries builds a Multimap from entries already in composite-key
// order, in O(n). The caller is responsible for the ordering invariant.
func FromOrderedEntries[K cmp.Ordered, Vk cmp.Ordered, V KeyedItem[Vk]](outerKeys []K, values []V) (Multimap[K, Vk, V], error) {
	entries := make([]mapEntry[K, Vk, V], len(values))
	for i, v := range values {
		entries[i] = mapEntry[K, Vk, V]{outerKey: outerKeys[i], value: v}
	}
	var zero Multimap[K, Vk, V]
	out, err := sumtree.BuildFromOrdered[mapEntry[K, Vk, V], mapKeySummary[K, Vk]](zero.cfg(), nil, entries)
	if err != nil {
		return Multimap[K, Vk, V]{}, err
	}
	return Multimap[K, Vk, V]{tree: out}, nil
}

// Check validates the underlying tree's structural invariants and the
// composite-key ordering invariant.
func (m Multimap[K, Vk, V]) Check() error {
	if m.tree == nil {
		return nil
	}
	if err := m.tree.Check(); err != nil {
		return err
	}
	var prev mapKey[K, Vk]
	var first = true
	var checkErr error
	m.Iter(func(outerKey K, value V) bool {
		k := mapKey[K, Vk]{outer: outerKey, inner: value.Key(), valid: true}
		if !first && !prev.less(k) {
			checkErr = ErrInvalidRange
			return false
		}
		prev, first = k, false
		return true
	})
	return checkErr
}

func outerTarget[K cmp.Ordered, Vk cmp.Ordered](key K) mapSeekAdaptor[K, Vk] {
	return mapSeekAdaptor[K, Vk]{inner: KeyTarget[K]{Key: key}}
}
