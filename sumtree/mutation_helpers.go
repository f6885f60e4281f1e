package sumtree

import "fmt"

// cloneLeaf clones a leaf for path-copy updates.
func (t *Tree[I, S]) cloneLeaf(leaf *leafNode[I, S]) *leafNode[I, S] {
	if leaf == nil {
		return nil
	}
	return &leafNode[I, S]{
		summary: leaf.summary,
		items:   append([]I(nil), leaf.items...),
	}
}

// cloneInner clones an internal node for path-copy updates.
func (t *Tree[I, S]) cloneInner(inner *innerNode[I, S]) *innerNode[I, S] {
	if inner == nil {
		return nil
	}
	return &innerNode[I, S]{
		summary:  inner.summary,
		children: append([]treeNode[I, S](nil), inner.children...),
	}
}

func (t *Tree[I, S]) recomputeLeafSummary(leaf *leafNode[I, S], ctx any) {
	assert(leaf != nil, "recomputeLeafSummary called with nil leaf")
	leaf.summary = t.cfg.Monoid.Zero(ctx)
	for _, item := range leaf.items {
		leaf.summary = t.cfg.Monoid.Add(leaf.summary, item.Summary(ctx), ctx)
	}
}

func (t *Tree[I, S]) recomputeInnerSummary(inner *innerNode[I, S], ctx any) {
	assert(inner != nil, "recomputeInnerSummary called with nil inner node")
	inner.summary = t.cfg.Monoid.Zero(ctx)
	for _, child := range inner.children {
		if child != nil {
			inner.summary = t.cfg.Monoid.Add(inner.summary, child.Summary(), ctx)
		}
	}
}

// insertAt inserts values into a slice at idx and returns a new slice.
func insertAt[T any](src []T, idx int, values ...T) []T {
	assert(idx >= 0 && idx <= len(src), "insertAt index out of range")
	if len(values) == 0 {
		return append([]T(nil), src...)
	}
	out := make([]T, 0, len(src)+len(values))
	out = append(out, src[:idx]...)
	out = append(out, values...)
	out = append(out, src[idx:]...)
	return out
}

func (t *Tree[I, S]) insertChildAt(inner *innerNode[I, S], idx int, child treeNode[I, S], ctx any) {
	assert(inner != nil, "insertChildAt called with nil inner node")
	assert(idx >= 0 && idx <= len(inner.children), "insertChildAt index out of range")
	inner.children = insertAt(inner.children, idx, child)
	t.recomputeInnerSummary(inner, ctx)
}

func (t *Tree[I, S]) maxLeafItems() int { return t.cfg.Degree }
func (t *Tree[I, S]) minLeafItems() int { return t.cfg.MinFill }
func (t *Tree[I, S]) maxChildren() int  { return t.cfg.Degree }
func (t *Tree[I, S]) minChildren() int  { return t.cfg.MinFill }

func (t *Tree[I, S]) leafOverflow(leaf *leafNode[I, S]) bool {
	return leaf != nil && len(leaf.items) > t.maxLeafItems()
}

func (t *Tree[I, S]) innerOverflow(inner *innerNode[I, S]) bool {
	return inner != nil && len(inner.children) > t.maxChildren()
}

// insertIntoLeafLocal inserts items at a local leaf offset.
//
// It returns the updated (left) leaf and optionally a promoted right sibling
// if a split occurred.
func (t *Tree[I, S]) insertIntoLeafLocal(leaf *leafNode[I, S], index int, ctx any, items ...I) (*leafNode[I, S], *leafNode[I, S], error) {
	if leaf == nil {
		return nil, nil, fmt.Errorf("%w: nil leaf", ErrInvalidConfig)
	}
	cloned := t.cloneLeaf(leaf)
	cloned.items = insertAt(cloned.items, index, items...)
	t.recomputeLeafSummary(cloned, ctx)
	if !t.leafOverflow(cloned) {
		return cloned, nil, nil
	}
	return t.splitLeaf(cloned, ctx)
}

// splitLeaf splits an overflowing leaf into two siblings.
func (t *Tree[I, S]) splitLeaf(leaf *leafNode[I, S], ctx any) (*leafNode[I, S], *leafNode[I, S], error) {
	n := len(leaf.items)
	maxItems := t.maxLeafItems()
	if n <= maxItems {
		return t.cloneLeaf(leaf), nil, nil
	}
	assert(n <= 2*maxItems, "splitLeaf requires more than one sibling")
	mid := n / 2
	left := t.makeLeaf(leaf.items[:mid], ctx)
	right := t.makeLeaf(leaf.items[mid:], ctx)
	return left, right, nil
}

func (t *Tree[I, S]) splitInner(inner *innerNode[I, S], ctx any) (*innerNode[I, S], *innerNode[I, S], error) {
	n := len(inner.children)
	maxChildren := t.maxChildren()
	if n <= maxChildren {
		return t.cloneInner(inner), nil, nil
	}
	assert(n <= 2*maxChildren, "splitInner requires more than one promoted sibling")
	mid := n / 2
	leftChildren := append([]treeNode[I, S](nil), inner.children[:mid]...)
	rightChildren := append([]treeNode[I, S](nil), inner.children[mid:]...)
	left := t.makeInternal(ctx, leftChildren...)
	right := t.makeInternal(ctx, rightChildren...)
	return left, right, nil
}

func (t *Tree[I, S]) makeLeaf(items []I, ctx any) *leafNode[I, S] {
	leaf := &leafNode[I, S]{items: append([]I(nil), items...)}
	t.recomputeLeafSummary(leaf, ctx)
	return leaf
}

func (t *Tree[I, S]) makeInternal(ctx any, children ...treeNode[I, S]) *innerNode[I, S] {
	inner := &innerNode[I, S]{children: append([]treeNode[I, S](nil), children...)}
	t.recomputeInnerSummary(inner, ctx)
	return inner
}

func (t *Tree[I, S]) countItems(n treeNode[I, S]) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return len(n.(*leafNode[I, S]).items)
	}
	total := 0
	for _, child := range n.(*innerNode[I, S]).children {
		total += t.countItems(child)
	}
	return total
}
