package sumtree

import "testing"

// countTarget seeks the first item whose accumulated item count reaches n.
type countTarget struct{ n int }

func (tgt countTarget) Compare(dim intSummary, ctx any) Ordering {
	switch {
	case dim.count < tgt.n:
		return Greater
	case dim.count > tgt.n:
		return Less
	default:
		return Equal
	}
}

func buildSeq(t *testing.T, n int) *Tree[intItem, intSummary] {
	t.Helper()
	items := make([]intItem, n)
	for i := range items {
		items[i] = intItem(i)
	}
	tree, err := BuildFromOrdered[intItem, intSummary](smallConfig(), nil, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func TestCursorSeekLandsOnTarget(t *testing.T) {
	tree := buildSeq(t, 50)
	cur, err := NewCursor[intItem, intSummary, intSummary](tree, IdentityDimension[intSummary](intMonoid{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cur.Seek(countTarget{n: 10}, Left, nil) {
		t.Fatalf("expected seek to land")
	}
	item, ok := cur.Item()
	if !ok || int(item) != 9 {
		t.Fatalf("expected item 9 (0-indexed count 10), got %v ok=%v", item, ok)
	}
}

func TestCursorSeekPastEndFails(t *testing.T) {
	tree := buildSeq(t, 5)
	cur, err := NewCursor[intItem, intSummary, intSummary](tree, IdentityDimension[intSummary](intMonoid{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.Seek(countTarget{n: 1000}, Left, nil) {
		t.Fatalf("expected seek beyond tree to fail")
	}
	if !cur.End(nil) {
		t.Fatalf("expected cursor to report End after failed seek")
	}
}

func TestCursorNextPrevRoundTrip(t *testing.T) {
	tree := buildSeq(t, 41)
	cur, err := NewCursor[intItem, intSummary, intSummary](tree, IdentityDimension[intSummary](intMonoid{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var forward []int
	for !cur.End(nil) {
		item, _ := cur.Item()
		forward = append(forward, int(item))
		cur.Next(nil)
	}
	if len(forward) != 41 {
		t.Fatalf("expected 41 items, got %d", len(forward))
	}
	cur.Prev(nil)
	var backward []int
	for i := 0; i < len(forward); i++ {
		item, ok := cur.Item()
		if !ok {
			t.Fatalf("expected item walking backward at step %d", i)
		}
		backward = append(backward, int(item))
		cur.Prev(nil)
	}
	for i := range forward {
		if forward[i] != backward[len(backward)-1-i] {
			t.Fatalf("forward/backward mismatch at %d: %d vs %d", i, forward[i], backward[len(backward)-1-i])
		}
	}
}

func TestSliceAndSuffixPartitionTree(t *testing.T) {
	tree := buildSeq(t, 30)
	cur, err := NewCursor[intItem, intSummary, intSummary](tree, IdentityDimension[intSummary](intMonoid{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// countTarget lands (Left bias) on the item whose cumulative count first
	// equals n, i.e. at 0-based index n-1; a target of 13 therefore leaves
	// exactly the first 12 items (indices 0..11) in the collected prefix.
	prefix := cur.Slice(countTarget{n: 13}, Left, nil)
	if err := prefix.Check(); err != nil {
		t.Fatalf("prefix invariant violated: %v", err)
	}
	if prefix.Len() != 12 {
		t.Fatalf("expected prefix of length 12, got %d", prefix.Len())
	}
	suffix := cur.Suffix(nil)
	if err := suffix.Check(); err != nil {
		t.Fatalf("suffix invariant violated: %v", err)
	}
	if suffix.Len() != 18 {
		t.Fatalf("expected suffix of length 18, got %d", suffix.Len())
	}
	rejoined := prefix.Append(suffix, nil)
	if rejoined.Len() != 30 {
		t.Fatalf("expected rejoined length 30, got %d", rejoined.Len())
	}
}
