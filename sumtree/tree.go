package sumtree

// Tree is a persistent, path-copied B+ sum-tree.
//
// I is the leaf item type, S is the summary type aggregated through the
// tree. The item type is tied to the summary type via Item[S].
type Tree[I Item[S], S any] struct {
	cfg    Config[S]
	root   treeNode[I, S]
	height int // 0 means empty tree
}

// New creates an empty tree with validated configuration.
func New[I Item[S], S any](cfg Config[S]) (*Tree[I, S], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &Tree[I, S]{cfg: cfg}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[I, S]) Config() Config[S] {
	return t.cfg
}

// Clone returns a shallow clone of the tree root container.
//
// Node contents are shared intentionally; mutating operations use path-copy
// semantics so the original tree is never disturbed.
func (t *Tree[I, S]) Clone() *Tree[I, S] {
	if t == nil {
		return nil
	}
	cloned := *t
	return &cloned
}

// IsEmpty reports whether the tree has no items.
func (t *Tree[I, S]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Len returns the number of items in the tree.
func (t *Tree[I, S]) Len() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.countItems(t.root)
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree[I, S]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Summary returns the root summary, or Zero(ctx) for an empty tree.
func (t *Tree[I, S]) Summary(ctx any) S {
	if t == nil || t.root == nil {
		return t.cfg.Monoid.Zero(ctx)
	}
	return t.root.Summary()
}

// chunkSizes splits n into chunk sizes that are as equal as possible, each
// at most maxSize; when n > maxSize every chunk is also at least minSize, so
// a bulk load never produces an underfull non-root node. A single chunk of
// size n (which may be below minSize) is returned when n <= maxSize, since
// that chunk becomes the sole node of its level and is promoted to root.
func chunkSizes(n, maxSize, minSize int) []int {
	if n <= maxSize {
		return []int{n}
	}
	numChunks := (n + maxSize - 1) / maxSize
	base := n / numChunks
	extra := n % numChunks
	sizes := make([]int, numChunks)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// BuildFromOrdered builds a tree in O(n) from items already in final order.
//
// Items are chunked into leaves and then combined level by level, each
// level built the same way; chunkSizes keeps every produced non-root node
// within [MinFill, Degree] without ever invoking the split path, including
// the tail chunk of a level that doesn't divide evenly by Degree.
func BuildFromOrdered[I Item[S], S any](cfg Config[S], ctx any, items []I) (*Tree[I, S], error) {
	t, err := New[I, S](cfg)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return t, nil
	}
	degree := t.cfg.Degree
	minFill := t.cfg.MinFill
	level := make([]treeNode[I, S], 0, (len(items)+degree-1)/degree)
	remainingItems := items
	for _, size := range chunkSizes(len(items), degree, minFill) {
		level = append(level, t.makeLeaf(remainingItems[:size], ctx))
		remainingItems = remainingItems[size:]
	}
	height := 1
	for len(level) > 1 {
		next := make([]treeNode[I, S], 0, (len(level)+degree-1)/degree)
		remainingNodes := level
		for _, size := range chunkSizes(len(level), degree, minFill) {
			next = append(next, t.makeInternal(ctx, remainingNodes[:size]...))
			remainingNodes = remainingNodes[size:]
		}
		level = next
		height++
	}
	t.root = level[0]
	t.height = height
	return t, nil
}

// Push appends a single item, which must sort at or after every item already
// in the tree under the tree's intended key ordering; the caller is
// responsible for that invariant, Push itself only manages tree shape.
func (t *Tree[I, S]) Push(item I, ctx any) *Tree[I, S] {
	cloned := t.Clone()
	if cloned.root == nil {
		cloned.root = cloned.makeLeaf([]I{item}, ctx)
		cloned.height = 1
		return cloned
	}
	updated, promoted := cloned.pushRecursive(cloned.root, cloned.height, item, ctx)
	promoted = normalizeNode[I, S](promoted)
	if promoted != nil {
		T().Debugf("push split root at height %d", cloned.height)
		cloned.root = cloned.makeInternal(ctx, updated, promoted)
		cloned.height++
	} else {
		cloned.root = updated
	}
	return cloned
}

func (t *Tree[I, S]) pushRecursive(n treeNode[I, S], height int, item I, ctx any) (treeNode[I, S], treeNode[I, S]) {
	assert(n != nil, "pushRecursive called with nil node")
	if height == 1 {
		leaf, ok := n.(*leafNode[I, S])
		assert(ok, "pushRecursive expected leaf at height 1")
		left, right, err := t.insertIntoLeafLocal(leaf, len(leaf.items), ctx, item)
		assert(err == nil, "pushRecursive: insertIntoLeafLocal failed")
		return left, normalizeNode[I, S](right)
	}
	inner, ok := n.(*innerNode[I, S])
	assert(ok, "pushRecursive expected internal node")
	cloned := t.cloneInner(inner)
	last := len(cloned.children) - 1
	updatedChild, promotedChild := t.pushRecursive(cloned.children[last], height-1, item, ctx)
	promotedChild = normalizeNode[I, S](promotedChild)
	cloned.children[last] = updatedChild
	if promotedChild != nil {
		t.insertChildAt(cloned, last+1, promotedChild, ctx)
	} else {
		t.recomputeInnerSummary(cloned, ctx)
	}
	if !t.innerOverflow(cloned) {
		return cloned, nil
	}
	left, right, err := t.splitInner(cloned, ctx)
	assert(err == nil, "pushRecursive: splitInner failed")
	return left, normalizeNode[I, S](right)
}

// Append concatenates other onto t and returns a new tree.
func (t *Tree[I, S]) Append(other *Tree[I, S], ctx any) *Tree[I, S] {
	if t.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return t
	}
	T().Debugf("append: heights %d and %d", t.height, other.height)
	left, right, height := t.concatNodes(t.root, t.height, other.root, other.height, ctx)
	combined := t.Clone()
	left = normalizeNode[I, S](left)
	right = normalizeNode[I, S](right)
	switch {
	case left == nil:
		combined.root = right
		combined.height = height
	case right == nil:
		combined.root = left
		combined.height = height
	default:
		combined.root = t.makeInternal(ctx, left, right)
		combined.height = height + 1
	}
	combined.normalizeRoot()
	return combined
}

func (t *Tree[I, S]) concatNodes(
	left treeNode[I, S], leftHeight int,
	right treeNode[I, S], rightHeight int,
	ctx any,
) (mergedLeft treeNode[I, S], mergedRight treeNode[I, S], outHeight int) {
	left = normalizeNode[I, S](left)
	right = normalizeNode[I, S](right)
	switch {
	case left == nil && right == nil:
		return nil, nil, 0
	case left == nil:
		return right, nil, rightHeight
	case right == nil:
		return left, nil, leftHeight
	}

	if leftHeight == rightHeight {
		l, r := t.concatSameHeight(left, right, leftHeight, ctx)
		return normalizeNode[I, S](l), normalizeNode[I, S](r), leftHeight
	}

	if leftHeight > rightHeight {
		inner, ok := left.(*innerNode[I, S])
		assert(ok, "concatNodes expected internal left node at greater height")
		cloned := t.cloneInner(inner)
		last := len(cloned.children) - 1
		childLeft, childRight, _ := t.concatNodes(cloned.children[last], leftHeight-1, right, rightHeight, ctx)
		cloned.children[last] = childLeft
		childRight = normalizeNode[I, S](childRight)
		if childRight != nil {
			t.insertChildAt(cloned, last+1, childRight, ctx)
		} else {
			t.recomputeInnerSummary(cloned, ctx)
		}
		if t.innerOverflow(cloned) {
			l, r, err := t.splitInner(cloned, ctx)
			assert(err == nil, "concatNodes: splitInner failed")
			return l, r, leftHeight
		}
		return cloned, nil, leftHeight
	}

	inner, ok := right.(*innerNode[I, S])
	assert(ok, "concatNodes expected internal right node at greater height")
	cloned := t.cloneInner(inner)
	childLeft, childRight, _ := t.concatNodes(left, leftHeight, cloned.children[0], rightHeight-1, ctx)
	cloned.children[0] = childLeft
	childRight = normalizeNode[I, S](childRight)
	if childRight != nil {
		t.insertChildAt(cloned, 1, childRight, ctx)
	} else {
		t.recomputeInnerSummary(cloned, ctx)
	}
	if t.innerOverflow(cloned) {
		l, r, err := t.splitInner(cloned, ctx)
		assert(err == nil, "concatNodes: splitInner failed")
		return l, r, rightHeight
	}
	return cloned, nil, rightHeight
}

func (t *Tree[I, S]) concatSameHeight(left, right treeNode[I, S], height int, ctx any) (treeNode[I, S], treeNode[I, S]) {
	assert(height > 0, "concatSameHeight called with non-positive height")
	if height == 1 {
		leftLeaf, lok := left.(*leafNode[I, S])
		rightLeaf, rok := right.(*leafNode[I, S])
		assert(lok && rok, "concatSameHeight expected leaf nodes at height 1")
		total := len(leftLeaf.items) + len(rightLeaf.items)
		merged := make([]I, 0, total)
		merged = append(merged, leftLeaf.items...)
		merged = append(merged, rightLeaf.items...)
		if total <= t.maxLeafItems() {
			return t.makeLeaf(merged, ctx), nil
		}
		return t.makeLeaf(merged[:total/2], ctx), t.makeLeaf(merged[total/2:], ctx)
	}
	leftInner, lok := left.(*innerNode[I, S])
	rightInner, rok := right.(*innerNode[I, S])
	assert(lok && rok, "concatSameHeight expected internal nodes")
	total := len(leftInner.children) + len(rightInner.children)
	children := make([]treeNode[I, S], 0, total)
	children = append(children, leftInner.children...)
	children = append(children, rightInner.children...)
	if total <= t.maxChildren() {
		return t.makeInternal(ctx, children...), nil
	}
	return t.makeInternal(ctx, children[:total/2]...), t.makeInternal(ctx, children[total/2:]...)
}

func (t *Tree[I, S]) subtreeHeight(n treeNode[I, S]) int {
	h := 0
	cur := normalizeNode[I, S](n)
	for cur != nil {
		h++
		if cur.isLeaf() {
			return h
		}
		inner := cur.(*innerNode[I, S])
		if len(inner.children) == 0 {
			return h
		}
		cur = normalizeNode[I, S](inner.children[0])
	}
	return 0
}

func (t *Tree[I, S]) normalizeRoot() {
	if t == nil {
		return
	}
	t.root = normalizeNode[I, S](t.root)
	if t.root == nil {
		t.height = 0
		return
	}
	for {
		inner, ok := t.root.(*innerNode[I, S])
		if !ok {
			t.height = 1
			return
		}
		if len(inner.children) != 1 {
			if t.height == 0 {
				t.height = t.subtreeHeight(t.root)
			}
			return
		}
		t.root = normalizeNode[I, S](inner.children[0])
		if t.height > 0 {
			t.height--
		}
		if t.root == nil {
			t.height = 0
			return
		}
	}
}
