package parser

import (
	"strconv"

	"regexast/ast"
)

// captureSlots returns the group numbers a parsed pattern defines. Unnamed
// groups are numbered first, left to right; named groups then take the next
// numbers not claimed by a group with an explicit numeric name.
func captureSlots(root ast.Node) map[int]bool {
	slots := map[int]bool{0: true}
	unnamed := 0
	var names []string
	seen := map[string]bool{}

	name := func(s string) {
		if s == "" {
			return
		}
		if n, err := strconv.Atoi(s); err == nil {
			slots[n] = true
			return
		}
		if !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}

	var visit func(ast.Node) bool
	visit = func(n ast.Node) bool {
		switch g := n.(type) {
		case *ast.CaptureGroupNode:
			unnamed++
		case *ast.NamedGroupNode:
			name(g.Name())
		case *ast.BalancingGroupNode:
			name(g.Name())
		case *ast.ConditionalGroupNode:
			// the condition is a test, not a group
			kids := g.ChildNodes()
			for i := 1; i < len(kids); i++ {
				ast.Walk(kids[i], visit)
			}
			return false
		}
		return true
	}
	ast.Walk(root, visit)

	for i := 1; i <= unnamed; i++ {
		slots[i] = true
	}
	next := unnamed + 1
	for range names {
		for slots[next] {
			next++
		}
		slots[next] = true
	}
	return slots
}
