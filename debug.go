package multimap

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/anthill-editor/sumtree/sumtree"
)

// Dump writes a structural outline of the underlying tree: one line per
// node, indented by depth, internal nodes colored distinctly from leaves
// when color is true.
func (m Multimap[K, Vk, V]) Dump(w io.Writer, useColor bool) {
	if m.tree == nil {
		io.WriteString(w, "(empty)\n")
		return
	}
	innerStyle := color.New(color.FgCyan)
	leafStyle := color.New(color.FgGreen)
	m.tree.Walk(func(info sumtree.NodeInfo[mapKeySummary[K, Vk]]) {
		indent := strings.Repeat("  ", info.Depth)
		if info.IsLeaf {
			line := fmt.Sprintf("%sleaf items=%d maxKey=(%v,%v)\n",
				indent, info.ItemCount, info.Summary.maxKey.outer, info.Summary.maxKey.inner)
			if useColor {
				leafStyle.Fprint(w, line)
			} else {
				io.WriteString(w, line)
			}
			return
		}
		line := fmt.Sprintf("%sinner children=%d maxKey=(%v,%v)\n",
			indent, info.ChildCount, info.Summary.maxKey.outer, info.Summary.maxKey.inner)
		if useColor {
			innerStyle.Fprint(w, line)
		} else {
			io.WriteString(w, line)
		}
	})
}

// WriteDOT emits the tree's nodes in Graphviz DOT format, labeled with shape
// and summary; it does not draw edges, since Walk does not expose parent
// identity, only a depth-first visiting order.
func (m Multimap[K, Vk, V]) WriteDOT(w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	id := 0
	var nodelist strings.Builder
	if m.tree != nil {
		m.tree.Walk(func(info sumtree.NodeInfo[mapKeySummary[K, Vk]]) {
			id++
			if info.IsLeaf {
				fmt.Fprintf(&nodelist, "\"%d\" [label=\"leaf(%d) %v\" shape=box];\n", id, info.ItemCount, info.Summary.maxKey.outer)
				return
			}
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"inner(%d) %v\"];\n", id, info.ChildCount, info.Summary.maxKey.outer)
		})
	}
	io.WriteString(w, nodelist.String())
	io.WriteString(w, "}\n")
}
