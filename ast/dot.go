package ast

import (
	"fmt"
	"io"
	"strconv"
)

// ExportDOT writes a Graphviz digraph of the tree under n to w. Child edges
// are solid and numbered; prefix comments hang off their owner by a dashed
// edge.
func ExportDOT(w io.Writer, n Node) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    node [shape=box, fontname=monospace];")

	ids := map[Node]int{}
	id := func(n Node) int {
		if i, ok := ids[n]; ok {
			return i
		}
		ids[n] = len(ids)
		return ids[n]
	}

	var visit func(Node)
	visit = func(n Node) {
		fmt.Fprintf(w, "    n%d [label=%s];\n", id(n), strconv.Quote(Kind(n)+"\n"+own(n)))
		owner := n
		for p := n.Prefix(); p != nil; p = p.Prefix() {
			fmt.Fprintf(w, "    n%d [label=%s, style=dashed];\n", id(p), strconv.Quote(own(p)))
			fmt.Fprintf(w, "    n%d -> n%d [style=dashed, label=\"prefix\"];\n", id(owner), id(p))
			owner = p
		}
		for i, c := range n.base().children {
			visit(c)
			fmt.Fprintf(w, "    n%d -> n%d [label=\"%d\"];\n", id(n), id(c), i)
		}
	}
	visit(n)

	fmt.Fprintln(w, "}")
}
