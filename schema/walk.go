// schema/walk.go

package schema

// Walk visits n and its descendants depth-first, parents before children,
// passing each node's identity (explicit or derived from its position).
// Returning false from fn skips that node's children.
func Walk(n *Node, fn func(id string, n *Node) bool) {
	walk(n, RootID, fn)
}

func walk(n *Node, path string, fn func(string, *Node) bool) {
	id := n.ID
	if id == "" {
		id = path
	}
	if !fn(id, n) {
		return
	}
	for i := range n.Children {
		walk(&n.Children[i], ChildID(path, i), fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(string, *Node) bool {
		total++
		return true
	})
	return total
}
