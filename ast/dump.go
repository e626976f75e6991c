package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Dump renders n and its descendants one per line, indented by depth, with
// each node's span and text. Prefix comments are listed above their owner.
func Dump(n Node) string {
	var out bytes.Buffer
	dump(&out, n, 0)
	return out.String()
}

func dump(out *bytes.Buffer, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	var chain []*CommentNode
	for p := n.Prefix(); p != nil; p = p.Prefix() {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		p := chain[i]
		start, length := p.Span()
		fmt.Fprintf(out, "%s# %s [%d,%d) %q\n", indent, Kind(p), start, start+length, p.comment)
	}
	start, length := n.Span()
	fmt.Fprintf(out, "%s%s [%d,%d) %q\n", indent, Kind(n), start, start+length, own(n))
	for _, c := range n.base().children {
		dump(out, c, depth+1)
	}
}

// Kind returns the short variant name of n, e.g. "Character" or "CaptureGroup".
func Kind(n Node) string {
	name := fmt.Sprintf("%T", n)
	name = name[strings.LastIndexByte(name, '.')+1:]
	return strings.TrimSuffix(name, "Node")
}

// own renders n without its prefix.
func own(n Node) string {
	w := &writer{bare: n}
	n.render(w)
	return w.String()
}
